package forecast

import (
	"encoding/json"
	"net/http"
	"strings"
)

// HandleRuns returns the persisted run history for a ticker, newest first.
// Query parameter: ?ticker=MSFT
func (h *Handler) HandleRuns(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

	if h.Repo == nil {
		http.Error(w, "run history requires a configured database", http.StatusServiceUnavailable)
		return
	}

	ticker := strings.ToUpper(r.URL.Query().Get("ticker"))
	if ticker == "" {
		http.Error(w, "missing ticker parameter", http.StatusBadRequest)
		return
	}

	runs, err := h.Repo.ListByTicker(r.Context(), ticker)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	json.NewEncoder(w).Encode(runs)
}
