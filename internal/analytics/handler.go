package analytics

import (
	"net/http"

	"github.com/frahmantamala/performance-review/internal/transport"
)

type ServiceAPI interface {
	Dashboard() (*Dashboard, error)
	Analytics() (*Summary, error)
}

type Handler struct {
	*transport.BaseHandler
	service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		service:     service,
	}
}

func (h *Handler) Dashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.service.Dashboard()
	if err != nil {
		h.Logger.Error("failed to get dashboard data", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get dashboard data")
		return
	}

	h.WriteJSON(w, http.StatusOK, dashboard)
}

func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Analytics()
	if err != nil {
		h.Logger.Error("failed to get analytics data", "error", err)
		h.WriteError(w, http.StatusInternalServerError, "failed to get analytics data")
		return
	}

	h.WriteJSON(w, http.StatusOK, summary)
}
