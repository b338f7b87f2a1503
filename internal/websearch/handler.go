// internal/websearch/handler.go
package websearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	apperrors "availability-api/internal/common/errors"
	commonhttp "availability-api/internal/common/http"
	"availability-api/internal/common/logger"
	"availability-api/internal/common/metrics"
	"availability-api/internal/models"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/time/rate"
)

const maxPageBytes = 5 << 20

// Handler scrapes the storefront search page for product links.
type Handler struct {
	config  *Config
	client  *commonhttp.Client
	limiter *rate.Limiter
	logger  logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	limit := rate.Inf
	if config.RateLimit > 0 {
		limit = rate.Every(config.RateLimit)
	}
	return &Handler{
		config:  config,
		client:  commonhttp.NewClient(config.Timeout).WithUserAgent(config.UserAgent),
		limiter: rate.NewLimiter(limit, 1),
		logger:  log.With(map[string]interface{}{"component": "websearch"}),
	}
}

// Search never returns an error: failures are reported in Outcome.Error.
func (h *Handler) Search(ctx context.Context, query string) Outcome {
	query = strings.TrimSpace(query)
	outcome := Outcome{Candidates: []models.SearchCandidate{}}

	if h.config.BaseURL == "" {
		outcome.Error = apperrors.NewWebSearchNotConfiguredError().Error()
		metrics.WebSearchRequests.WithLabelValues(string(apperrors.ErrCodeWebSearchNotConfigured)).Inc()
		return outcome
	}

	searchURL, err := h.BuildSearchURL(query)
	if err != nil {
		return h.fail(outcome, query, apperrors.NewWebSearchFailedError(err))
	}
	outcome.SourceURL = searchURL

	if h.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.Timeout)
		defer cancel()
	}

	candidates, err := h.execute(ctx, searchURL)
	if err != nil {
		return h.fail(outcome, query, err)
	}

	metrics.WebSearchRequests.WithLabelValues("ok").Inc()
	h.logger.Info("storefront search completed", map[string]interface{}{
		"query":       query,
		"resultCount": len(candidates),
	})
	outcome.Candidates = candidates
	return outcome
}

func (h *Handler) fail(outcome Outcome, query string, err error) Outcome {
	code := apperrors.CodeOf(err)
	metrics.WebSearchRequests.WithLabelValues(string(code)).Inc()
	h.logger.Warn("storefront search failed, returning empty results", map[string]interface{}{
		"query":     query,
		"error":     err.Error(),
		"errorCode": string(code),
	})
	outcome.Candidates = []models.SearchCandidate{}
	outcome.Error = err.Error()
	return outcome
}

func (h *Handler) execute(ctx context.Context, searchURL string) ([]models.SearchCandidate, error) {
	if err := h.limiter.Wait(ctx); err != nil {
		return nil, classify(ctx, fmt.Errorf("rate limit wait: %w", err))
	}

	resp, err := h.client.Get(ctx, searchURL, map[string]string{
		"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8",
		"Accept-Language": "es-CO,es;q=0.9,en;q=0.8",
	})
	if err != nil {
		return nil, classify(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, apperrors.NewWebSearchFailedError(fmt.Errorf("unexpected status code: %d", resp.StatusCode))
	}

	doc, err := goquery.NewDocumentFromReader(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return nil, classify(ctx, fmt.Errorf("parse html: %w", err))
	}

	base := resp.Request.URL
	return h.extractCandidates(doc, base), nil
}

func classify(ctx context.Context, err error) error {
	if commonhttp.IsTimeout(ctx, err) {
		return apperrors.NewWebSearchTimeoutError(err)
	}
	return apperrors.NewWebSearchFailedError(err)
}

// BuildSearchURL renders the storefront search page address for query.
func (h *Handler) BuildSearchURL(query string) (string, error) {
	u, err := url.Parse(strings.TrimRight(h.config.BaseURL, "/") + h.config.SearchPath)
	if err != nil {
		return "", fmt.Errorf("parse storefront url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("storefront url must be absolute: %q", h.config.BaseURL)
	}
	params := u.Query()
	params.Set(h.config.QueryParam, query)
	u.RawQuery = params.Encode()
	return u.String(), nil
}

func (h *Handler) extractCandidates(doc *goquery.Document, base *url.URL) []models.SearchCandidate {
	candidates := make([]models.SearchCandidate, 0)
	seen := make(map[string]bool)

	doc.Find(h.config.ResultSelector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if h.config.MaxResults > 0 && len(candidates) >= h.config.MaxResults {
			return false
		}

		link, ok := resolveLink(base, s.AttrOr("href", ""))
		if !ok || seen[link] {
			return true
		}
		seen[link] = true

		candidates = append(candidates, models.SearchCandidate{
			Title: titleOf(s, link),
			URL:   link,
		})
		return true
	})

	return candidates
}

func resolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
		return "", false
	}
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	resolved.Fragment = ""
	return resolved.String(), true
}

func titleOf(s *goquery.Selection, link string) string {
	if title := collapse(s.AttrOr("title", "")); title != "" {
		return title
	}
	if text := collapse(s.Text()); text != "" {
		return text
	}
	return link
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
