// Package routes implements the gateway's client-facing operations. Each
// handler validates its request envelope, declares a pipeline of downstream
// steps, and shapes the final outcome into the normalized response.
package routes

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/sahayata-app/gateway/internal/config"
	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/storage"
)

// Handlers holds the collaborators shared by every route.
type Handlers struct {
	caller pipeline.Caller
	cfg    *config.Config
	store  storage.Store
	logger *slog.Logger
}

// New wires the handlers. The caller is the single downstream client used by
// all pipelines; the store is the injected preference/usage boundary.
func New(caller pipeline.Caller, cfg *config.Config, store storage.Store, logger *slog.Logger) *Handlers {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handlers{
		caller: caller,
		cfg:    cfg,
		store:  store,
		logger: logger,
	}
}

// Register mounts one endpoint per logical operation.
func (h *Handlers) Register(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/image-description", h.DescribeImage)
		r.Post("/read-document", h.ReadDocument)
		r.Post("/translate-document", h.TranslateDocument)
		r.Post("/text-to-icon", h.TextToIcon)
		r.Post("/voice-command", h.VoiceCommand)
		r.Post("/sign-to-speech", h.SignToSpeech)
		r.Post("/predict-shortcut", h.PredictShortcut)
		r.Post("/directions", h.Directions)
		r.Post("/ask", h.Ask)
		r.Get("/news", h.NewsDigest)
		r.Get("/preferences/{userID}", h.GetPreferences)
		r.Put("/preferences/{userID}", h.PutPreferences)
	})
}

func (h *Handlers) run(ctx context.Context, steps ...pipeline.Step) (pipeline.Outcome, error) {
	p, err := pipeline.New(steps...)
	if err != nil {
		return pipeline.Outcome{}, err
	}
	return p.Run(ctx, h.caller, nil)
}

// recordUsage appends a usage-log entry. Appends are advisory: the entry is
// written outside the request's cancellation scope and a failed append only
// warns.
func (h *Handlers) recordUsage(ctx context.Context, op, userID, status string) {
	if h.store == nil {
		return
	}
	entry := storage.UsageEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		Operation: op,
		Status:    status,
		CreatedAt: time.Now(),
	}
	if err := h.store.AppendUsage(context.WithoutCancel(ctx), entry); err != nil {
		h.logger.Warn("usage log append failed",
			slog.String("operation", op),
			slog.String("error", err.Error()),
		)
	}
}

// stringField returns m[key] when it is a string, else "".
func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
