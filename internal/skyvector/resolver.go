// Package skyvector resolves airport identifiers against SkyVector's search
// endpoint. The endpoint answers a known identifier with a redirect straight
// to that airport's page, so probing it with redirects disabled doubles as a
// free existence check: no second round-trip, no local airport database.
package skyvector

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mtowers/approach-control/internal/domain"
	"github.com/mtowers/approach-control/internal/metrics"
)

const (
	defaultBaseURL = "https://skyvector.com"
	searchPath     = "/api/airportSearch"
	fallbackPath   = "/airports"
)

// Resolver maps airport codes (or free text) to SkyVector URLs.
type Resolver struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	collector  *metrics.Collector
}

// NewResolver creates a resolver against the given base URL. An empty base
// defaults to https://skyvector.com. The collector may be nil.
func NewResolver(baseURL string, logger *slog.Logger, collector *metrics.Collector) *Resolver {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Resolver{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
			// The redirect itself is the answer; never follow it.
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		logger:    logger,
		collector: collector,
	}
}

// Resolve looks up query and reports where the reply should link. A 301/302
// whose target is an airport page means the identifier is recognized; a
// redirect elsewhere keeps the target but stays unrecognized. Resolve never
// returns an error: request failures and unexpected statuses degrade to the
// generic airports landing page.
func (r *Resolver) Resolve(ctx context.Context, query string) domain.EnrichmentResult {
	queryURL := r.baseURL + searchPath + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, queryURL, nil)
	if err != nil {
		r.logger.Warn("airport search request invalid", "url", queryURL, "error", err)
		return r.fallback()
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("airport search request failed", "url", queryURL, "error", err)
		return r.fallback()
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound:
		location := resp.Header.Get("Location")
		target, err := resp.Request.URL.Parse(location)
		if location == "" || err != nil {
			r.logger.Warn("airport search redirect had no usable location", "url", queryURL)
			return r.fallback()
		}
		recognized := strings.Contains(target.Path, "/airport")
		if !recognized {
			r.recordFallback()
		}
		return domain.EnrichmentResult{URL: target.String(), Recognized: recognized}

	case http.StatusOK:
		// The search endpoint answers known queries with a redirect; a 200
		// means it did not understand this one.
		r.logger.Warn("unexpected 200 response from airport search", "url", queryURL)
		r.recordFallback()
		return domain.EnrichmentResult{URL: queryURL}

	default:
		r.logger.Warn("airport search returned unexpected status", "url", queryURL, "status", resp.StatusCode)
		return r.fallback()
	}
}

func (r *Resolver) fallback() domain.EnrichmentResult {
	r.recordFallback()
	return domain.EnrichmentResult{URL: r.baseURL + fallbackPath}
}

func (r *Resolver) recordFallback() {
	if r.collector != nil {
		r.collector.RecordResolverFallback()
	}
}
