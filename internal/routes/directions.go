package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

type directionsRequest struct {
	// Pointers distinguish a missing coordinate from a zero one.
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type directionStep struct {
	Instruction string `json:"instruction"`
	Distance    string `json:"distance"`
	Icon        string `json:"icon"`
}

// Directions fetches a walking route from the caller's position to the
// configured assistance point and reshapes it into glyph-annotated steps.
func (h *Handlers) Directions(w http.ResponseWriter, r *http.Request) {
	const op = "directions"
	const safe = "Could not fetch directions right now."
	server.AddLogField(r.Context(), "operation", op)

	var req directionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Latitude == nil || req.Longitude == nil {
		h.writeFailure(w, r, op, safe, pipeline.BadRequest("latitude and longitude are required"))
		return
	}

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "route",
		Method: http.MethodGet,
		Target: h.routeURL(*req.Latitude, *req.Longitude),
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	steps, ok := routeSteps(outcome.Value)
	if !ok {
		h.writeFailure(w, r, op, safe, &pipeline.Failure{
			Kind:   pipeline.KindMalformedResponse,
			Step:   "route",
			Detail: "response missing paths[0].instructions",
		})
		return
	}

	h.writeResult(w, r, op, map[string]any{"steps": steps})
}

func (h *Handlers) routeURL(lat, lng float64) string {
	dest := h.cfg.Routing.Destination
	q := url.Values{}
	q.Add("point", fmt.Sprintf("%f,%f", lat, lng))
	q.Add("point", fmt.Sprintf("%f,%f", dest.Latitude, dest.Longitude))
	q.Set("profile", h.cfg.Routing.Profile)
	q.Set("locale", "en")
	q.Set("points_encoded", "false")
	q.Set("key", h.cfg.Routing.APIKey)
	return h.cfg.Routing.BaseURL + "/route?" + q.Encode()
}

// routeSteps reshapes the provider's instruction list. It is defensive about
// the response nesting and total over maneuver signs.
func routeSteps(resp map[string]any) ([]directionStep, bool) {
	paths, ok := resp["paths"].([]any)
	if !ok || len(paths) == 0 {
		return nil, false
	}
	first, ok := paths[0].(map[string]any)
	if !ok {
		return nil, false
	}
	instructions, ok := first["instructions"].([]any)
	if !ok {
		return nil, false
	}

	steps := make([]directionStep, 0, len(instructions))
	for _, item := range instructions {
		ins, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sign := 0
		if v, ok := ins["sign"].(float64); ok {
			sign = int(v)
		}
		distance, _ := ins["distance"].(float64)
		steps = append(steps, directionStep{
			Instruction: stringField(ins, "text"),
			Distance:    formatDistance(distance),
			Icon:        maneuverGlyph(sign),
		})
	}
	return steps, true
}

// maneuverGlyph maps a provider maneuver-sign code to a directional glyph.
// The mapping is total: an unrecognized code reads as "continue straight"
// rather than failing the route.
func maneuverGlyph(sign int) string {
	switch sign {
	case -98, -8, 8: // u-turns
		return "↩️"
	case -7, -1: // keep left, slight left
		return "↖️"
	case -3, -2: // sharp left, left
		return "⬅️"
	case 1, 7: // slight right, keep right
		return "↗️"
	case 2, 3: // right, sharp right
		return "➡️"
	case 4: // arrive
		return "🏁"
	case 5: // via point reached
		return "📍"
	case 6: // roundabout
		return "🔄"
	default: // continue straight, plus any code we don't know
		return "⬆️"
	}
}

func formatDistance(meters float64) string {
	if meters >= 1000 {
		return fmt.Sprintf("%.1f km", meters/1000)
	}
	return fmt.Sprintf("%.0f m", meters)
}
