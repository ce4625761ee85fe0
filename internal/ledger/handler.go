package ledger

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

// Handler serves stored ledgers over HTTP.
type Handler struct {
	store  *Store
	logger *logging.Logger
}

// NewHandler creates a new ledger handler
func NewHandler(store *Store, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{store: store, logger: logger}
}

// DayResponse is the response for reading a day's ledger
type DayResponse struct {
	Day     string            `json:"day"`
	Count   int               `json:"count"`
	Records []json.RawMessage `json:"records"`
}

// ReadDay handles GET /leads/{day} requests
func (h *Handler) ReadDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")

	records, err := h.store.Read(r.Context(), day)
	if err != nil {
		if errors.Is(err, ErrInvalidDay) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.logger.Error("failed to read ledger", "error", err, "day", day)
		http.Error(w, "failed to read ledger", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DayResponse{
		Day:     day,
		Count:   len(records),
		Records: records,
	}); err != nil {
		h.logger.Error("failed to encode ledger response", "error", err, "day", day)
	}
}
