package webhook

import (
	"io"
	"net/http"

	"github.com/wolfman30/lead-webhook/internal/leads"
)

// maxBodyBytes caps request bodies accepted by ServeHTTP.
const maxBodyBytes = 1 << 20

// ServeHTTP lets the local API server drive the same pipeline as the Lambda.
// The request body is the lead payload and the URL path gives its origin; an
// empty body is an empty lead.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		h.logger.Error("failed to read request body", "error", err)
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	resp := h.invoke(r.Context(), func() (Event, error) {
		event := Event{Payload: leads.Value{Kind: leads.Null}, Path: r.URL.Path}
		if len(body) == 0 {
			return event, nil
		}
		payload, err := leads.Decode(body)
		if err != nil {
			return Event{}, err
		}
		event.Payload = payload
		return event, nil
	})
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	_, _ = io.WriteString(w, resp.Body)
}
