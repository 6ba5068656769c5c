package relay

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/futig/ums-chatbot/internal/entity"
	"github.com/futig/ums-chatbot/internal/pkg/logger"
	"github.com/futig/ums-chatbot/internal/pkg/response"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// maxQueryBodySize bounds POST /api/query bodies
const maxQueryBodySize = 1 << 20

type Handler struct {
	usecase RelayUsecase
}

func NewHandler(usecase RelayUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// Health handles GET /health - relay liveness
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.usecase.Health())
}

// UpstreamHealth handles GET /api/python-health - answer service liveness
func (h *Handler) UpstreamHealth(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "UpstreamHealth")

	resp, ok := h.usecase.UpstreamHealth(ctx)
	if !ok {
		response.JSON(w, http.StatusServiceUnavailable, resp)
		return
	}

	response.Success(w, resp)
}

// Query handles POST /api/query - relay a question to the answer service
func (h *Handler) Query(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Query")

	var req entity.QueryRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxQueryBodySize)).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode request body", zap.Error(err))
		response.RelayError(w, entity.NewValidationError(fmt.Errorf("%w: %v", entity.ErrInvalidRequest, err)))
		return
	}

	answer, err := h.usecase.HandleQuery(ctx, req.Question)
	if err != nil {
		response.RelayError(w, err)
		return
	}

	ctxzap.Info(ctx, "question answered",
		zap.Int("upstream_status", answer.StatusCode),
		zap.Int("body_length", len(answer.Body)),
	)

	response.Raw(w, answer.StatusCode, answer.ContentType, answer.Body)
}
