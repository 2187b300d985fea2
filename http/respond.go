package http

import (
	"bytes"
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"prospection-agent/errs"
	"prospection-agent/logger"
)

// Envelope is the response body of every JSON endpoint
type Envelope struct {
	StatusCode int    `json:"status_code"`
	Status     string `json:"status"`
	Code       string `json:"code,omitempty"`
	Error      string `json:"error,omitempty"`
	Field      string `json:"field,omitempty"`
	RequestID  string `json:"request_id,omitempty"`
	Data       any    `json:"data,omitempty"`
}

// writeJSON encodes v before writing the header. A v that cannot be encoded
// is replaced by a 500 envelope.
func writeJSON(w http.ResponseWriter, status int, v any) {
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(v); err != nil {
		buf.Reset()
		status = http.StatusInternalServerError
		_ = json.NewEncoder(&buf).Encode(Envelope{
			StatusCode: status,
			Status:     http.StatusText(status),
			Code:       errs.CodeInternal.String(),
			Error:      "response could not be encoded",
		})
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

// RespondOK writes a 200 envelope carrying data
func RespondOK(w http.ResponseWriter, r *http.Request, data any) {
	writeJSON(w, http.StatusOK, Envelope{
		StatusCode: http.StatusOK,
		Status:     http.StatusText(http.StatusOK),
		RequestID:  chimw.GetReqID(r.Context()),
		Data:       data,
	})
}

// RespondError maps err onto its status and writes the error envelope
func RespondError(w http.ResponseWriter, r *http.Request, err error) {
	status := errs.HTTPStatus(err)
	wire := errs.WireFrom(err)

	log := logger.C(r.Context())
	evt := log.Debug()
	if status >= http.StatusInternalServerError {
		evt = log.Error()
	}
	evt.Err(err).Int("status", status).Msg("request failed")

	writeJSON(w, status, Envelope{
		StatusCode: status,
		Status:     http.StatusText(status),
		Code:       wire.Code,
		Error:      wire.Message,
		Field:      wire.Field,
		RequestID:  chimw.GetReqID(r.Context()),
	})
}
