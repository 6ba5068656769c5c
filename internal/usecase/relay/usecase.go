package relay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/futig/ums-chatbot/internal/entity"
	pkghttp "github.com/futig/ums-chatbot/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	StatusRelayRunning        = "Relay server is running"
	StatusUpstreamConnected   = "Python API is connected"
	StatusUpstreamUnavailable = "Python API is unavailable"
)

// isoMillis matches the timestamps browsers produce with Date.toISOString
const isoMillis = "2006-01-02T15:04:05.000Z"

// RelayUsecase forwards questions to the answer service. It keeps no state
// between calls and never retries.
type RelayUsecase struct {
	answerConnector AnswerConnector
	logger          *zap.Logger
	now             func() time.Time
}

func NewUsecase(answerConnector AnswerConnector, logger *zap.Logger) *RelayUsecase {
	return &RelayUsecase{
		answerConnector: answerConnector,
		logger:          logger,
		now:             time.Now,
	}
}

// HandleQuery validates the question and relays it. Every failure is a *entity.RelayError.
func (uc *RelayUsecase) HandleQuery(ctx context.Context, question string) (*entity.UpstreamAnswer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, entity.NewValidationError(fmt.Errorf("%w: question", entity.ErrMissingField))
	}

	answer, err := uc.answerConnector.Query(ctx, question)
	if err != nil {
		relayErr := classify(err)
		ctxzap.Error(ctx, "error forwarding to answer service",
			zap.String("kind", relayErr.Kind.String()),
			zap.Error(err),
		)
		return nil, relayErr
	}

	return answer, nil
}

func classify(err error) *entity.RelayError {
	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError

	switch {
	case errors.As(err, &httpErr):
		return entity.NewUpstreamError(httpErr.StatusCode, err)
	case errors.As(err, &netErr),
		errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, context.Canceled):
		return entity.NewUpstreamUnavailableError(err)
	default:
		return entity.NewInternalError(err)
	}
}

// Health reports local liveness
func (uc *RelayUsecase) Health() *entity.HealthResponse {
	return &entity.HealthResponse{
		Status:    StatusRelayRunning,
		Timestamp: uc.now().UTC().Format(isoMillis),
	}
}

// UpstreamHealth probes the answer service's health endpoint. ok is false when
// it is unreachable or answered with a non-2xx status.
func (uc *RelayUsecase) UpstreamHealth(ctx context.Context) (resp *entity.UpstreamHealthResponse, ok bool) {
	answer, err := uc.answerConnector.Health(ctx)
	if err != nil {
		ctxzap.Warn(ctx, "answer service health check failed", zap.Error(err))
		return &entity.UpstreamHealthResponse{
			Status: StatusUpstreamUnavailable,
			Error:  failureReason(err),
		}, false
	}

	return &entity.UpstreamHealthResponse{
		Status:         StatusUpstreamConnected,
		PythonResponse: asJSON(answer.Body),
	}, true
}

func failureReason(err error) string {
	var httpErr *pkghttp.HTTPError
	var netErr *pkghttp.NetworkError

	switch {
	case errors.As(err, &httpErr):
		return fmt.Sprintf("Request failed with status code %d", httpErr.StatusCode)
	case errors.As(err, &netErr):
		return netErr.Err.Error()
	default:
		return err.Error()
	}
}

// asJSON embeds a JSON body as-is and quotes anything else as a JSON string
func asJSON(body []byte) json.RawMessage {
	if len(body) == 0 {
		return nil
	}
	if json.Valid(body) {
		return json.RawMessage(body)
	}

	quoted, err := json.Marshal(string(body))
	if err != nil {
		return nil
	}
	return quoted
}
