// Package offacts implements lookup engines for the Open Food Facts
// family of catalogs. Open Food Facts, Open Beauty Facts and Open Pet
// Food Facts share one wire format, so a single client serves all three;
// only the base URL, category and mapping differ.
package offacts

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/scanlens/backend/internal/barcode"
	"github.com/scanlens/backend/internal/domain"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const userAgent = "ScanLens/1.0 (https://github.com/scanlens/backend)"

// Options configures one engine of the *Facts family.
type Options struct {
	Name              string
	BaseURL           string
	Priority          int
	Category          domain.ProductCategory
	RequestsPerMinute int
}

// Engine queries one *Facts catalog by barcode.
type Engine struct {
	name        string
	baseURL     string
	priority    int
	category    domain.ProductCategory
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// New creates an engine for one *Facts catalog. The HTTP client is shared
// across engines and must be safe for concurrent use.
func New(opts Options, httpClient *http.Client, log *logrus.Logger) *Engine {
	rpm := opts.RequestsPerMinute
	if rpm <= 0 {
		// The *Facts APIs ask product clients to stay under 100 req/min.
		rpm = 100
	}
	return &Engine{
		name:        opts.Name,
		baseURL:     opts.BaseURL,
		priority:    opts.Priority,
		category:    opts.Category,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(float64(rpm)/60.0), 5),
		log:         log.WithField("engine", opts.Name),
	}
}

// Name returns the engine's unique identifier.
func (e *Engine) Name() string { return e.name }

// Priority returns the engine's fallback tier.
func (e *Engine) Priority() int { return e.priority }

// Category returns the product category this engine produces.
func (e *Engine) Category() domain.ProductCategory { return e.category }

// Supports accepts any all-digit code in the EAN-8 through EAN-13/UPC-A
// range; the *Facts catalogs key products by GTIN.
func (e *Engine) Supports(bc string) bool {
	return barcode.IsEANGeneric(bc)
}

// Lookup fetches the product record for the barcode. The catalog answers
// an unknown barcode with status 0 (or a plain 404), which maps to the
// not-found variant.
func (e *Engine) Lookup(ctx context.Context, bc string) domain.LookupResult {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(e.name, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err))
	}

	code := barcode.Normalize(bc)
	reqURL := fmt.Sprintf("%s/api/v2/product/%s.json", e.baseURL, url.PathEscape(code))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Failure(e.name, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.log.WithError(err).Warn("request failed")
		return domain.Failure(e.name, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFound(e.name)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return domain.Failure(e.name, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body)))
	}

	var payload productResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Failure(e.name, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}

	if payload.Status == 0 || payload.Product == nil {
		e.log.WithField("barcode", code).Debug("no product record")
		return domain.NotFound(e.name)
	}

	return domain.Found(e.name, mapProduct(code, e.name, e.category, payload.Product))
}
