package relay

import (
	"context"

	"github.com/futig/ums-chatbot/internal/entity"
)

type RelayUsecase interface {
	HandleQuery(ctx context.Context, question string) (*entity.UpstreamAnswer, error)
	Health() *entity.HealthResponse
	UpstreamHealth(ctx context.Context) (*entity.UpstreamHealthResponse, bool)
}
