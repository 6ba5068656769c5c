package answer

import (
	"context"
	"net/http"

	"github.com/futig/ums-chatbot/internal/config"
	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/futig/ums-chatbot/internal/integration/common"
	pkghttp "github.com/futig/ums-chatbot/pkg/http"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the upstream answer-generation service
type Connector struct {
	config    config.AnswerConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.AnswerConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// Query forwards the question and returns the upstream 2xx response verbatim.
// POST {query_endpoint} {"question": ...}
func (c *Connector) Query(ctx context.Context, question string) (*entity.UpstreamAnswer, error) {
	ctxzap.Debug(ctx, "forwarding question to answer service", zap.Int("question_length", len(question)))

	raw, err := c.connector.DoRaw(ctx, http.MethodPost, c.config.QueryEndpoint,
		&entity.QueryRequest{Question: question},
		pkghttp.WithHeader("X-Request-ID", requestID(ctx)),
	)
	if err != nil {
		return nil, err
	}

	ctxzap.Debug(ctx, "answer received",
		zap.Int("status", raw.StatusCode),
		zap.Int("body_length", len(raw.Body)),
	)

	return toUpstreamAnswer(raw), nil
}

// Health calls the answer service's own liveness endpoint
func (c *Connector) Health(ctx context.Context) (*entity.UpstreamAnswer, error) {
	raw, err := c.connector.DoRaw(ctx, http.MethodGet, c.config.HealthEndpoint, nil,
		pkghttp.WithHeader("X-Request-ID", requestID(ctx)),
	)
	if err != nil {
		return nil, err
	}

	return toUpstreamAnswer(raw), nil
}

func toUpstreamAnswer(raw *pkghttp.RawResponse) *entity.UpstreamAnswer {
	return &entity.UpstreamAnswer{
		StatusCode:  raw.StatusCode,
		ContentType: raw.ContentType,
		Body:        raw.Body,
	}
}

// requestID propagates the inbound request ID, or mints one for calls made outside a request
func requestID(ctx context.Context) string {
	if id := chimiddleware.GetReqID(ctx); id != "" {
		return id
	}
	return uuid.NewString()
}
