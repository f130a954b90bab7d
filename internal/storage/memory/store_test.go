package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/sahayata-app/gateway/internal/storage"
)

func TestPreferencesRoundTrip(t *testing.T) {
	s := New()
	ctx := context.Background()

	if _, err := s.GetPreferences(ctx, "u1"); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	prefs := storage.Preferences{"language": "kn", "fontSize": "large"}
	if err := s.PutPreferences(ctx, "u1", prefs); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := s.GetPreferences(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got["language"] != "kn" {
		t.Errorf("unexpected preferences: %v", got)
	}

	// The stored object must not alias the caller's map.
	prefs["language"] = "hi"
	got, _ = s.GetPreferences(ctx, "u1")
	if got["language"] != "kn" {
		t.Error("stored preferences mutated through caller's map")
	}
}

func TestUsageAppend(t *testing.T) {
	s := New()
	ctx := context.Background()

	for _, op := range []string{"directions", "ask"} {
		if err := s.AppendUsage(ctx, storage.UsageEntry{ID: op, Operation: op, Status: "ok"}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	entries := s.UsageEntries()
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Operation != "directions" || entries[1].Operation != "ask" {
		t.Errorf("unexpected order: %v", entries)
	}
}
