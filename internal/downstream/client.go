// Package downstream is the single way the gateway talks to the services it
// fronts: the ML inference sidecar, the routing provider, the answer provider
// and the news feed. Every call gets a bounded timeout and every non-success
// outcome is normalized into a typed pipeline.Failure.
package downstream

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/sahayata-app/gateway/internal/pipeline"
)

const (
	defaultTimeout   = 15 * time.Second
	maxRetryJitter   = 250 * time.Millisecond
	maxLoggedBodyLen = 512
)

// Client calls external HTTP services with JSON payloads.
type Client struct {
	baseURL string
	retries int
	http    *http.Client
	logger  *slog.Logger
}

// Config configures a Client.
type Config struct {
	// BaseURL is prepended to relative targets. Absolute targets pass
	// through untouched.
	BaseURL string
	// Timeout bounds each individual attempt. Defaults to 15s.
	Timeout time.Duration
	// Retries is the number of additional attempts after an unreachable
	// target. Rejections are never retried; a non-success status is
	// typically not transient.
	Retries int
	Logger  *slog.Logger
}

// New creates a client for one gateway process. The same client serves all
// pipelines; it holds no per-request state.
func New(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		baseURL: strings.TrimSuffix(cfg.BaseURL, "/"),
		retries: cfg.Retries,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// Call performs one downstream call and returns the parsed JSON object body.
// Failures come back as *pipeline.Failure: unreachable targets, non-2xx
// statuses, and undecodable bodies each map to their own kind. Unreachable
// targets are retried with jitter up to the configured budget; the retry loop
// stops as soon as the request context is done.
func (c *Client) Call(ctx context.Context, method, target string, payload map[string]any) (map[string]any, error) {
	url := c.resolve(target)

	var lastErr error
	attempts := c.retries + 1
	for attempt := 0; attempt < attempts; attempt++ {
		start := time.Now()
		resp, err := c.do(ctx, method, url, payload)
		latency := time.Since(start)

		if err == nil {
			c.logger.Debug("downstream call",
				slog.String("target", target),
				slog.String("outcome", "ok"),
				slog.Duration("latency", latency),
			)
			return resp, nil
		}
		lastErr = err

		f, ok := pipeline.AsFailure(err)
		kind := "error"
		if ok {
			kind = string(f.Kind)
		}
		c.logger.Warn("downstream call failed",
			slog.String("target", target),
			slog.String("outcome", kind),
			slog.Int("attempt", attempt+1),
			slog.Duration("latency", latency),
			slog.String("error", err.Error()),
		)

		// Only an unreachable target is worth another attempt.
		if !ok || f.Kind != pipeline.KindUnreachable {
			return nil, err
		}
		if ctx.Err() != nil {
			break
		}
		if attempt < attempts-1 {
			select {
			case <-time.After(time.Duration(rand.Int63n(int64(maxRetryJitter)))):
			case <-ctx.Done():
				return nil, lastErr
			}
		}
	}
	return nil, lastErr
}

func (c *Client) do(ctx context.Context, method, url string, payload map[string]any) (map[string]any, error) {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return nil, &pipeline.Failure{Kind: pipeline.KindBadRequest, Detail: "encode payload: " + err.Error()}
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &pipeline.Failure{Kind: pipeline.KindUnreachable, Detail: err.Error()}
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &pipeline.Failure{Kind: pipeline.KindUnreachable, Detail: err.Error()}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &pipeline.Failure{Kind: pipeline.KindMalformedResponse, Detail: "read body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &pipeline.Failure{
			Kind:   pipeline.KindDownstreamRejected,
			Status: resp.StatusCode,
			Detail: truncate(string(respBody), maxLoggedBodyLen),
		}
	}

	var out map[string]any
	if err := json.Unmarshal(respBody, &out); err != nil {
		return nil, &pipeline.Failure{
			Kind:   pipeline.KindMalformedResponse,
			Detail: "decode body: " + err.Error(),
		}
	}
	return out, nil
}

func (c *Client) resolve(target string) string {
	if strings.HasPrefix(target, "http://") || strings.HasPrefix(target, "https://") {
		return target
	}
	return c.baseURL + target
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

var _ pipeline.Caller = (*Client)(nil)
