package routes

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestPreferencesReadMissingUser(t *testing.T) {
	ml := newMockDownstream(t)
	router, _ := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodGet, "/api/preferences/nobody", "")

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}

func TestPreferencesWriteThenRead(t *testing.T) {
	ml := newMockDownstream(t)
	router, store := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodPut, "/api/preferences/u42",
		`{"language":"ta","highContrast":true}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on write, got %d: %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, router, http.MethodGet, "/api/preferences/u42", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 on read, got %d", rr.Code)
	}

	var prefs map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &prefs); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if prefs["language"] != "ta" || prefs["highContrast"] != true {
		t.Errorf("unexpected preferences: %v", prefs)
	}

	entries := store.UsageEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 usage entries, got %d", len(entries))
	}
	if entries[0].UserID != "u42" || entries[0].Operation != "preferences-write" {
		t.Errorf("unexpected usage entry: %+v", entries[0])
	}
}

func TestPreferencesWriteRejectsMalformedBody(t *testing.T) {
	ml := newMockDownstream(t)
	router, _ := newTestRouter(t, ml)

	rr := doJSON(t, router, http.MethodPut, "/api/preferences/u1", `not json`)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}
}
