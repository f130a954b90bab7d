package routes

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestDirectionsMissingCoordinates(t *testing.T) {
	cases := []string{
		`{}`,
		`{"latitude": 13.0}`,
		`{"longitude": 75.3}`,
	}
	for _, body := range cases {
		ml := newMockDownstream(t)
		router, _ := newTestRouter(t, ml)

		rr := doJSON(t, router, http.MethodPost, "/api/directions", body)

		if rr.Code != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, rr.Code)
		}
		if got := ml.totalCalls(); got != 0 {
			t.Errorf("body %s: expected zero downstream calls, got %d", body, got)
		}
	}
}

func TestDirectionsZeroCoordinatesAreValid(t *testing.T) {
	ml := newMockDownstream(t)
	ml.respond("/route", `{"paths":[{"instructions":[]}]}`)
	router, _ := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodPost, "/api/directions", `{"latitude": 0, "longitude": 0}`)

	if rr.Code != http.StatusOK {
		t.Errorf("expected 200 for the null island, got %d", rr.Code)
	}
}

func TestDirectionsEndToEnd(t *testing.T) {
	ml := newMockDownstream(t)
	ml.respond("/route", `{"paths":[{"instructions":[
		{"text":"Turn left","distance":120.4,"sign":-2},
		{"text":"Arrive at destination","distance":0,"sign":4}
	]}]}`)
	router, _ := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodPost, "/api/directions", `{"latitude": 13.0, "longitude": 75.3}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var resp struct {
		Steps []directionStep `json:"steps"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(resp.Steps) != 2 {
		t.Fatalf("expected 2 steps, got %d", len(resp.Steps))
	}

	first := resp.Steps[0]
	if first.Instruction != "Turn left" {
		t.Errorf("unexpected instruction: %q", first.Instruction)
	}
	if first.Distance != "120 m" {
		t.Errorf("unexpected distance: %q", first.Distance)
	}
	if first.Icon != maneuverGlyph(-2) {
		t.Errorf("unexpected icon: %q", first.Icon)
	}
	if resp.Steps[1].Icon != maneuverGlyph(4) {
		t.Errorf("expected arrival glyph, got %q", resp.Steps[1].Icon)
	}
}

func TestDirectionsMalformedProviderResponse(t *testing.T) {
	ml := newMockDownstream(t)
	ml.respond("/route", `{"message":"no route found"}`)
	router, _ := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodPost, "/api/directions", `{"latitude": 13.0, "longitude": 75.3}`)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rr.Code)
	}
}

func TestManeuverGlyphIsTotal(t *testing.T) {
	// Every integer maps to some glyph; unknown codes read as "continue
	// straight" rather than failing.
	for sign := -100; sign <= 100; sign++ {
		if maneuverGlyph(sign) == "" {
			t.Fatalf("sign %d mapped to empty glyph", sign)
		}
	}
	straight := maneuverGlyph(0)
	if maneuverGlyph(999) != straight {
		t.Errorf("unmapped code must default to the straight-ahead glyph")
	}
	if maneuverGlyph(-2) == straight {
		t.Errorf("left turn must not map to the straight-ahead glyph")
	}
	if maneuverGlyph(-2) != maneuverGlyph(-3) {
		t.Errorf("left and sharp left should share a glyph")
	}
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{120.4, "120 m"},
		{0, "0 m"},
		{999.4, "999 m"},
		{1000, "1.0 km"},
		{1540, "1.5 km"},
	}
	for _, tc := range cases {
		if got := formatDistance(tc.meters); got != tc.want {
			t.Errorf("formatDistance(%v) = %q, want %q", tc.meters, got, tc.want)
		}
	}
}
