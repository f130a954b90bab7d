package routes

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult finishes a successful operation (full run or short circuit).
func (h *Handlers) writeResult(w http.ResponseWriter, r *http.Request, op string, payload any) {
	h.recordUsage(r.Context(), op, "", "ok")
	writeJSON(w, http.StatusOK, payload)
}

// writeFailure maps an internal error to the client-visible response. The
// mapping is total over the failure taxonomy: validation failures become 400
// with their validation message, every other failure becomes 500 with the
// operation's user-safe message. Raw downstream detail goes to the structured
// log only.
func (h *Handlers) writeFailure(w http.ResponseWriter, r *http.Request, op, safeMessage string, err error) {
	server.AddError(r.Context(), err)

	f, ok := pipeline.AsFailure(err)
	if !ok {
		h.logger.Error("operation failed",
			slog.String("request_id", server.GetRequestID(r.Context())),
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
		h.recordUsage(r.Context(), op, "", "error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: safeMessage})
		return
	}

	if f.Kind == pipeline.KindBadRequest {
		h.recordUsage(r.Context(), op, "", string(f.Kind))
		writeJSON(w, http.StatusBadRequest, errorBody{Error: f.Detail})
		return
	}

	h.logger.Error("downstream failure",
		slog.String("request_id", server.GetRequestID(r.Context())),
		slog.String("operation", op),
		slog.String("kind", string(f.Kind)),
		slog.String("step", f.Step),
		slog.Int("status", f.Status),
		slog.String("detail", f.Detail),
	)
	h.recordUsage(r.Context(), op, "", string(f.Kind))
	writeJSON(w, http.StatusInternalServerError, errorBody{Error: safeMessage})
}
