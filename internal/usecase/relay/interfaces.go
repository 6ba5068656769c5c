package relay

import (
	"context"

	"github.com/futig/ums-chatbot/internal/entity"
)

type AnswerConnector interface {
	Query(ctx context.Context, question string) (*entity.UpstreamAnswer, error)
	Health(ctx context.Context) (*entity.UpstreamAnswer, error)
}
