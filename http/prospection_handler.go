package http

import (
	"mime"
	"net/http"

	"prospection-agent/domain"
	"prospection-agent/service"
)

type ProspectionHandler struct {
	service *service.ProspectionService
}

func NewProspectionHandler(service *service.ProspectionService) *ProspectionHandler {
	return &ProspectionHandler{service: service}
}

type historyResponse struct {
	Entries []domain.HistoryEntry `json:"entries"`
	Rows    []domain.HistoryRow   `json:"rows"`
}

func (h *ProspectionHandler) Defaults(w http.ResponseWriter, r *http.Request) {
	RespondOK(w, r, h.service.Defaults())
}

func (h *ProspectionHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	input, err := bindInput(r, h.service.Defaults())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	calc, err := h.service.Calculate(r.Context(), SessionID(r.Context()), input)
	if err != nil {
		RespondError(w, r, err)
		return
	}
	RespondOK(w, r, calc)
}

func (h *ProspectionHandler) History(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.History(r.Context(), SessionID(r.Context()))
	if err != nil {
		RespondError(w, r, err)
		return
	}
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	RespondOK(w, r, historyResponse{
		Entries: entries,
		Rows:    service.HistoryRows(entries),
	})
}

// Export sends the plain-text summary as a file download
func (h *ProspectionHandler) Export(w http.ResponseWriter, r *http.Request) {
	input, err := bindInput(r, h.service.Defaults())
	if err != nil {
		RespondError(w, r, err)
		return
	}

	filename, body, err := h.service.Export(input)
	if err != nil {
		RespondError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(body))
}
