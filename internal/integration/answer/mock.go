package answer

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// MockConnector answers locally so the relay can be demoed without the answer service
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

func (m *MockConnector) Query(ctx context.Context, question string) (*entity.UpstreamAnswer, error) {
	ctxzap.Info(ctx, "[MOCK] answering question", zap.String("question", question))

	body, err := json.Marshal(entity.QueryResponse{
		Answer: fmt.Sprintf("[MOCK] The answer service is not connected. You asked: %q", question),
	})
	if err != nil {
		return nil, err
	}

	return &entity.UpstreamAnswer{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        body,
	}, nil
}

func (m *MockConnector) Health(ctx context.Context) (*entity.UpstreamAnswer, error) {
	ctxzap.Info(ctx, "[MOCK] health check")

	return &entity.UpstreamAnswer{
		StatusCode:  http.StatusOK,
		ContentType: "application/json",
		Body:        []byte(`{"status":"Mock answer service is running","vectorstore_ready":false,"total_documents":0}`),
	}, nil
}
