package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

const (
	answerPersona  = "You are a patient, friendly assistant for elderly and differently-abled users. Answer in one or two short, plain sentences."
	answerFallback = "Sorry, I couldn't find an answer for that."
)

type askRequest struct {
	Query string `json:"query"`
}

// Ask sends a question to the conversational-answer provider with a fixed
// persona and bounded output length.
func (h *Handlers) Ask(w http.ResponseWriter, r *http.Request) {
	const op = "conversational-answer"
	const safe = "Could not answer that right now."
	server.AddLogField(r.Context(), "operation", op)

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Query) == "" {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("query is required"))
		return
	}

	target := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s",
		h.cfg.Answers.BaseURL, h.cfg.Answers.Model, url.QueryEscape(h.cfg.Answers.APIKey))

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "generate-answer",
		Target: target,
		Transform: func(map[string]any) map[string]any {
			return map[string]any{
				"contents": []any{
					map[string]any{"parts": []any{map[string]any{"text": req.Query}}},
				},
				"systemInstruction": map[string]any{
					"parts": []any{map[string]any{"text": answerPersona}},
				},
				"generationConfig": map[string]any{
					"maxOutputTokens": h.cfg.Answers.MaxOutputTokens,
				},
			}
		},
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	h.writeResult(w, r, op, map[string]any{"answer": answerText(outcome.Value)})
}

// answerText pulls candidates[0].content.parts[0].text out of the provider
// response. The provider varies its shape across models and safety blocks; a
// missing path yields the fixed fallback phrase, never a failure.
func answerText(resp map[string]any) string {
	candidates, ok := resp["candidates"].([]any)
	if !ok || len(candidates) == 0 {
		return answerFallback
	}
	candidate, ok := candidates[0].(map[string]any)
	if !ok {
		return answerFallback
	}
	content, ok := candidate["content"].(map[string]any)
	if !ok {
		return answerFallback
	}
	parts, ok := content["parts"].([]any)
	if !ok || len(parts) == 0 {
		return answerFallback
	}
	part, ok := parts[0].(map[string]any)
	if !ok {
		return answerFallback
	}
	text := strings.TrimSpace(stringField(part, "text"))
	if text == "" {
		return answerFallback
	}
	return text
}
