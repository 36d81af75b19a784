package review

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/frahmantamala/performance-review/internal/transport"
	"github.com/frahmantamala/performance-review/pkg/logger"
)

type ServiceAPI interface {
	SubmitReview(dto SubmitReviewDTO) (*SubmitResult, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) SubmitReview(w http.ResponseWriter, r *http.Request) {
	var dto SubmitReviewDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if _, err := h.Service.SubmitReview(dto); err != nil {
		h.Logger.Error("SubmitReview: service error", "error", err, "employee_id", dto.EmployeeID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]bool{"success": true})
}
