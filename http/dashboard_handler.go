package http

import (
	"net/http"

	"prospection-agent/service"
)

type DashboardHandler struct {
	service *service.DashboardService
}

func NewDashboardHandler(service *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{service: service}
}

func (h *DashboardHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.service.Summary(r.Context(), SessionID(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, summary)
}

func (h *DashboardHandler) Demo(w http.ResponseWriter, r *http.Request) {
	RespondOK(w, r, h.service.Demo())
}
