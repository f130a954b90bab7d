package routes

import (
	"encoding/json"
	"net/http"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

// TextToIcon maps a phrase to communication-board icons.
func (h *Handlers) TextToIcon(w http.ResponseWriter, r *http.Request) {
	const op = "text-to-icon"
	const safe = "Could not convert the text to icons right now."
	server.AddLogField(r.Context(), "operation", op)

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Text == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("text is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "text-to-icon",
		Target: "/api/text-to-icon",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"text": req.Text}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"icons":      stringField(outcome.Value, "icons"),
		"foundWords": outcome.Value["found_words"],
	})
}

// VoiceCommand recognizes the intent of a spoken command.
func (h *Handlers) VoiceCommand(w http.ResponseWriter, r *http.Request) {
	const op = "voice-command"
	const safe = "Could not recognize the command right now."
	server.AddLogField(r.Context(), "operation", op)

	var req struct {
		Command string `json:"command"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Command == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("command is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "recognize-command",
		Target: "/api/recognize-command",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"command": req.Command}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"intent": stringField(outcome.Value, "intent"),
	})
}

// PredictShortcut suggests the feature a user profile is most likely to want
// next.
func (h *Handlers) PredictShortcut(w http.ResponseWriter, r *http.Request) {
	const op = "predict-shortcut"
	const safe = "Could not predict a shortcut right now."
	server.AddLogField(r.Context(), "operation", op)

	var req struct {
		ProfileType string `json:"profileType"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProfileType == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("profileType is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "predict-shortcut",
		Target: "/predict-shortcut",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"profileType": req.ProfileType}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"predictedFeature": stringField(outcome.Value, "predicted_feature"),
	})
}
