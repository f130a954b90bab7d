package routes

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sahayata-app/gateway/internal/server"
	"github.com/sahayata-app/gateway/internal/storage"
)

// GetPreferences returns the stored preference object for a user.
func (h *Handlers) GetPreferences(w http.ResponseWriter, r *http.Request) {
	const op = "preferences-read"
	userID := chi.URLParam(r, "userID")
	server.AddLogField(r.Context(), "operation", op)

	prefs, err := h.store.GetPreferences(r.Context(), userID)
	if errors.Is(err, storage.ErrNotFound) {
		h.recordUsage(r.Context(), op, userID, "not_found")
		writeJSON(w, http.StatusNotFound, errorBody{Error: "no preferences stored for this user"})
		return
	}
	if err != nil {
		server.AddError(r.Context(), err)
		h.logger.Error("preference read failed",
			slog.String("request_id", server.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		h.recordUsage(r.Context(), op, userID, "error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Could not load preferences right now."})
		return
	}

	h.recordUsage(r.Context(), op, userID, "ok")
	writeJSON(w, http.StatusOK, prefs)
}

// PutPreferences replaces the stored preference object for a user.
func (h *Handlers) PutPreferences(w http.ResponseWriter, r *http.Request) {
	const op = "preferences-write"
	userID := chi.URLParam(r, "userID")
	server.AddLogField(r.Context(), "operation", op)

	var prefs storage.Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		h.recordUsage(r.Context(), op, userID, "bad_request")
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "request body must be a JSON object"})
		return
	}

	if err := h.store.PutPreferences(r.Context(), userID, prefs); err != nil {
		server.AddError(r.Context(), err)
		h.logger.Error("preference write failed",
			slog.String("request_id", server.GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		h.recordUsage(r.Context(), op, userID, "error")
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "Could not save preferences right now."})
		return
	}

	h.recordUsage(r.Context(), op, userID, "ok")
	writeJSON(w, http.StatusOK, prefs)
}
