package routes

import (
	"encoding/json"
	"net/http"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

type imageRequest struct {
	ImageData string `json:"imageData"`
}

// DescribeImage captions a camera frame so it can be read aloud.
func (h *Handlers) DescribeImage(w http.ResponseWriter, r *http.Request) {
	const op = "image-description"
	const safe = "Could not describe the image right now."
	server.AddLogField(r.Context(), "operation", op)

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("imageData is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "image-to-speech",
		Target: "/api/image-to-speech",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"imageData": req.ImageData}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"description": stringField(outcome.Value, "caption"),
	})
}

// ReadDocument extracts the text of a photographed document.
func (h *Handlers) ReadDocument(w http.ResponseWriter, r *http.Request) {
	const op = "read-document"
	const safe = "Could not read the document right now."
	server.AddLogField(r.Context(), "operation", op)

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("imageData is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "read-document",
		Target: "/api/read-document",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"imageData": req.ImageData}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"text": stringField(outcome.Value, "text"),
	})
}

// SignToSpeech recognizes a hand sign in a video frame.
func (h *Handlers) SignToSpeech(w http.ResponseWriter, r *http.Request) {
	const op = "sign-to-speech"
	const safe = "Could not recognize the sign right now."
	server.AddLogField(r.Context(), "operation", op)

	var req imageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("imageData is required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "sign-to-speech",
		Target: "/api/sign-to-speech",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"imageData": req.ImageData}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"word": stringField(outcome.Value, "word"),
	})
}
