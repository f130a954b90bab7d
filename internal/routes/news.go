package routes

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/sahayata-app/gateway/internal/pipeline"
	"github.com/sahayata-app/gateway/internal/server"
)

const (
	newsDigestSize = 5
	// defaultSourceName labels articles whose feed entry omits attribution.
	defaultSourceName = "NewsAPI"
)

// NewsDigest fetches the configured headline feed and reduces it to a short,
// read-aloud-friendly digest.
func (h *Handlers) NewsDigest(w http.ResponseWriter, r *http.Request) {
	const op = "news-digest"
	const safe = "Could not fetch the news right now."
	server.AddLogField(r.Context(), "operation", op)

	target := fmt.Sprintf("%s/v2/top-headlines?country=%s&pageSize=%d&apiKey=%s",
		h.cfg.News.BaseURL, url.QueryEscape(h.cfg.News.Country), newsDigestSize,
		url.QueryEscape(h.cfg.News.APIKey))

	outcome, err := h.run(r.Context(), pipeline.Step{
		Name:   "top-headlines",
		Method: http.MethodGet,
		Target: target,
	})
	if err != nil {
		h.writeFailure(w, r, op, safe, err)
		return
	}

	articles, _ := outcome.Value["articles"].([]any)
	if len(articles) > newsDigestSize {
		articles = articles[:newsDigestSize]
	}

	digest := make([]map[string]string, 0, len(articles))
	for _, item := range articles {
		article, ok := item.(map[string]any)
		if !ok {
			continue
		}
		sourceName := defaultSourceName
		if source, ok := article["source"].(map[string]any); ok {
			if name := strings.TrimSpace(stringField(source, "name")); name != "" {
				sourceName = name
			}
		}
		digest = append(digest, map[string]string{
			"title":  stringField(article, "title"),
			"source": sourceName,
		})
	}

	h.writeResult(w, r, op, map[string]any{"articles": digest})
}
