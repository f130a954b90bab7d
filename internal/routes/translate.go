package routes

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

const (
	// noTextSentinel is the prefix the OCR service uses when a document
	// image contains nothing readable.
	noTextSentinel = "No readable text"
	// noTranslationReply is returned when the translate step was skipped.
	noTranslationReply = "No text to translate."
)

type translateDocumentRequest struct {
	ImageData      string `json:"imageData"`
	TargetLanguage string `json:"targetLanguage"`
}

// TranslateDocument reads a photographed document and translates the
// extracted text. When the OCR step finds no usable text the pipeline stops
// there: the translate call is skipped entirely and the response says so.
func (h *Handlers) TranslateDocument(w http.ResponseWriter, r *http.Request) {
	const op = "translate-document"
	const safe = "Could not translate the document right now."
	server.AddLogField(r.Context(), "operation", op)

	var req translateDocumentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ImageData == "" || req.TargetLanguage == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("imageData and targetLanguage are required"))
		return
	}

	// original is captured by the translate step's transform; on the
	// short-circuit path it is read from the OCR response instead.
	var original string

	readStep := pipeline.Step{
		Name:   "read-document",
		Target: "/api/read-document",
		Transform: func(map[string]any) map[string]any {
			return map[string]any{"imageData": req.ImageData}
		},
		ShortCircuit: func(resp map[string]any) bool {
			text := strings.TrimSpace(stringField(resp, "text"))
			return text == "" || strings.HasPrefix(text, noTextSentinel)
		},
	}
	translateStep := pipeline.Step{
		Name:   "translate-text",
		Target: "/api/translate-text",
		Transform: func(current map[string]any) map[string]any {
			original = stringField(current, "text")
			return map[string]any{
				"text":        original,
				"target_lang": req.TargetLanguage,
			}
		},
	}

	outcome, err := h.run(r.Context(), readStep, translateStep)
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	if outcome.ShortCircuited {
		h.writeResult(w, r, op, map[string]any{
			"original":   stringField(outcome.Value, "text"),
			"translated": noTranslationReply,
		})
		return
	}

	h.writeResult(w, r, op, map[string]any{
		"original":   original,
		"translated": stringField(outcome.Value, "translated_text"),
	})
}
