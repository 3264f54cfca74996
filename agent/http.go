package agent

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/nstehr/vimy/tactics-core/model"
)

const maxTurnBody = 1 << 20

// TurnHandler serves the per-team endpoint: POST a NextTurnInput, get back
// a Decision. Malformed bodies are rejected; everything else answers 200.
func TurnHandler(a *Agent) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		var in model.NextTurnInput
		dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxTurnBody))
		if err := dec.Decode(&in); err != nil {
			slog.Warn("bad turn request", "remote", r.RemoteAddr, "error", err)
			http.Error(w, "invalid turn input", http.StatusBadRequest)
			return
		}

		d := a.Decide(in)

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(d); err != nil {
			slog.Error("failed to write decision", "error", err)
		}
	})
}
