package relay

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/ums-chatbot/internal/config"
	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/go-resty/resty/v2"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	queryEndpoint  = "/api/query"
	healthEndpoint = "/health"
)

// Connector is the presentation clients' view of the relay
type Connector struct {
	client *resty.Client
	logger *zap.Logger
}

func NewConnector(cfg config.ClientConfig, logger *zap.Logger) *Connector {
	client := resty.New().
		SetBaseURL(strings.TrimRight(cfg.RelayURL, "/")).
		SetHeader("Accept", "application/json")

	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	return &Connector{
		client: client,
		logger: logger,
	}
}

// Ask sends one question and returns the answer field of a 2xx response,
// which may be empty
func (c *Connector) Ask(ctx context.Context, question string) (string, error) {
	var result entity.QueryResponse

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(&entity.QueryRequest{Question: question}).
		SetResult(&result).
		Post(queryEndpoint)
	if err != nil {
		return "", fmt.Errorf("%w: %v", entity.ErrRelayUnreachable, err)
	}

	if !resp.IsSuccess() {
		return "", fmt.Errorf("%w: status %d", entity.ErrRelayStatus, resp.StatusCode())
	}

	ctxzap.Debug(ctx, "relay answered",
		zap.Int("status", resp.StatusCode()),
		zap.Duration("duration", resp.Time()),
	)

	return result.Answer, nil
}

// Ping checks relay liveness
func (c *Connector) Ping(ctx context.Context) error {
	resp, err := c.client.R().
		SetContext(ctx).
		Get(healthEndpoint)
	if err != nil {
		return fmt.Errorf("%w: %v", entity.ErrRelayUnreachable, err)
	}

	if !resp.IsSuccess() {
		return fmt.Errorf("%w: status %d", entity.ErrRelayStatus, resp.StatusCode())
	}

	return nil
}
