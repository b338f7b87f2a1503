// internal/inventory/fetcher/fetcher.go
package fetcher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	apperrors "availability-api/internal/common/errors"
	commonhttp "availability-api/internal/common/http"
	"availability-api/internal/common/logger"
	"availability-api/internal/common/metrics"
	"availability-api/internal/common/validation"
	"availability-api/internal/models"
)

const DefaultMaxBodyBytes int64 = 32 << 20

// envelopeSchema only pins the container; individual records are checked by
// the eligibility filter so one bad entry cannot sink the batch.
var envelopeSchema = validation.MustCompile(`{
  "type": "object",
  "properties": {
    "listado": {"type": ["array", "null"]}
  }
}`)

// Result is what a fetch produced. Degraded results carry an empty record list
// and the cause; callers that only need records can ignore the rest.
type Result struct {
	Records  []models.RawRecord
	Degraded bool
	Cause    error
}

type Fetcher struct {
	config *Config
	client *commonhttp.Client
	logger logger.Logger
}

func NewFetcher(config *Config, log logger.Logger) *Fetcher {
	return &Fetcher{
		config: config,
		client: commonhttp.NewClient(config.Timeout),
		logger: log.With(map[string]interface{}{"component": "inventory-fetcher"}),
	}
}

// FetchInventory returns the raw upstream records, or an empty list on any failure.
func (f *Fetcher) FetchInventory(ctx context.Context) []models.RawRecord {
	return f.Fetch(ctx).Records
}

// Fetch issues a single GET against the inventory listing. It never returns an
// error: failures are logged and reported as a degraded, empty Result.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	start := time.Now()
	records, err := f.execute(ctx)
	metrics.UpstreamFetchDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		code := apperrors.CodeOf(err)
		metrics.UpstreamFetches.WithLabelValues(string(code)).Inc()
		metrics.UpstreamRecords.Set(0)
		f.logger.Error("inventory fetch failed, returning empty list", map[string]interface{}{
			"error":     err.Error(),
			"errorCode": string(code),
			"retryable": apperrors.IsRetryable(err),
		})
		return Result{Records: []models.RawRecord{}, Degraded: true, Cause: err}
	}

	metrics.UpstreamFetches.WithLabelValues("ok").Inc()
	metrics.UpstreamRecords.Set(float64(len(records)))
	f.logger.Debug("inventory fetched", map[string]interface{}{
		"records":    len(records),
		"durationMs": time.Since(start).Milliseconds(),
	})
	return Result{Records: records}
}

func (f *Fetcher) execute(ctx context.Context) ([]models.RawRecord, error) {
	listURL, err := f.buildURL()
	if err != nil {
		return nil, apperrors.NewUpstreamUnavailableError(err)
	}

	f.logger.Debug("requesting inventory", map[string]interface{}{
		"path": f.config.Path,
	})

	resp, err := f.client.Get(ctx, listURL, map[string]string{"Accept": "application/json"})
	if err != nil {
		if commonhttp.IsTimeout(ctx, err) {
			return nil, apperrors.NewUpstreamTimeoutError(err)
		}
		return nil, apperrors.NewUpstreamUnavailableError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, apperrors.NewUpstreamBadStatusError(resp.StatusCode)
	}

	limit := f.bodyLimit()
	body, err := io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		if commonhttp.IsTimeout(ctx, err) {
			return nil, apperrors.NewUpstreamTimeoutError(err)
		}
		return nil, apperrors.NewUpstreamUnavailableError(err)
	}
	if int64(len(body)) > limit {
		return nil, apperrors.NewUpstreamTooLargeError(limit)
	}

	return decodeListing(body)
}

func (f *Fetcher) bodyLimit() int64 {
	if f.config.MaxBodyBytes > 0 {
		return f.config.MaxBodyBytes
	}
	return DefaultMaxBodyBytes
}

func (f *Fetcher) buildURL() (string, error) {
	base, err := url.Parse(strings.TrimRight(f.config.BaseURL, "/") + f.config.Path)
	if err != nil {
		return "", fmt.Errorf("parse upstream url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return "", errors.New("upstream url must be absolute")
	}
	params := base.Query()
	params.Set("userKey", f.config.UserKey)
	base.RawQuery = params.Encode()
	return base.String(), nil
}

// decodeListing extracts the "listado" array. A missing or null array is an
// empty inventory, not a failure. Entries that are not JSON objects become
// empty records, which the filter rejects as malformed.
func decodeListing(body []byte) ([]models.RawRecord, error) {
	if err := envelopeSchema.ValidateBytes(body); err != nil {
		return nil, apperrors.NewUpstreamMalformedError(err)
	}

	var envelope struct {
		Listado []json.RawMessage `json:"listado"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, apperrors.NewUpstreamMalformedError(err)
	}

	records := make([]models.RawRecord, 0, len(envelope.Listado))
	for _, raw := range envelope.Listado {
		var rec models.RawRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			rec = models.RawRecord{}
		}
		records = append(records, rec)
	}
	return records, nil
}
