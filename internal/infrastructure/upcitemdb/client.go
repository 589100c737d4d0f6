// Package upcitemdb implements the generic product lookup engine backed
// by UPCitemdb, the last-resort fallback when no category-specific
// catalog answers.
package upcitemdb

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

const (
	// EngineName identifies this engine in attempt trails and products.
	EngineName = "upcitemdb"

	userAgent = "ScanLens/1.0 (https://github.com/scanlens/backend)"
)

// Engine queries the UPCitemdb lookup API.
type Engine struct {
	baseURL     string
	priority    int
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// New creates a UPCitemdb engine.
func New(baseURL string, priority int, httpClient *http.Client, log *logrus.Logger) *Engine {
	return &Engine{
		baseURL:    baseURL,
		priority:   priority,
		httpClient: httpClient,
		// The trial plan allows 100 requests per day; pace hard.
		rateLimiter: rate.NewLimiter(rate.Limit(0.1), 3),
		log:         log.WithField("engine", EngineName),
	}
}

func (e *Engine) Name() string                     { return EngineName }
func (e *Engine) Priority() int                    { return e.priority }
func (e *Engine) Category() domain.ProductCategory { return domain.CategoryGeneric }

// Supports accepts any all-digit GTIN-range code.
func (e *Engine) Supports(bc string) bool {
	return barcode.IsEANGeneric(bc)
}

// Lookup fetches the item record for the barcode. A well-formed response
// with zero items maps to the not-found variant.
func (e *Engine) Lookup(ctx context.Context, bc string) domain.LookupResult {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err))
	}

	code := barcode.Normalize(bc)
	params := url.Values{}
	params.Add("upc", code)
	reqURL := fmt.Sprintf("%s/prod/trial/lookup?%s", e.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Failure(EngineName, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.log.WithError(err).Warn("request failed")
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFound(EngineName)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return domain.Failure(EngineName, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body)))
	}

	var payload lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}

	if payload.Code != "OK" {
		return domain.Failure(EngineName, fmt.Errorf("%w: response code %q: %s", domain.ErrUpstreamFailure, payload.Code, payload.Message))
	}
	if payload.Total == 0 || len(payload.Items) == 0 {
		e.log.WithField("barcode", code).Debug("no item record")
		return domain.NotFound(EngineName)
	}

	return domain.Found(EngineName, mapItem(code, &payload.Items[0]))
}
