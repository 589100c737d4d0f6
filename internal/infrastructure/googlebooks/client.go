// Package googlebooks implements the Google Books volume lookup engine,
// the second-tier book catalog behind Open Library.
package googlebooks

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
	EngineName = "googlebooks"

	userAgent = "ScanLens/1.0 (https://github.com/scanlens/backend)"
)

// Engine queries the Google Books volumes API by ISBN.
type Engine struct {
	baseURL     string
	priority    int
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// New creates a Google Books engine. apiKey may be empty; the volumes
// endpoint serves unauthenticated requests at a lower quota.
func New(baseURL string, priority int, apiKey string, httpClient *http.Client, log *logrus.Logger) *Engine {
	return &Engine{
		baseURL:    baseURL,
		priority:   priority,
		apiKey:     apiKey,
		httpClient: httpClient,
		// Unauthenticated quota is 1000/day; keep a conservative pace.
		rateLimiter: rate.NewLimiter(rate.Limit(1), 3),
		log:         log.WithField("engine", EngineName),
	}
}

func (e *Engine) Name() string                     { return EngineName }
func (e *Engine) Priority() int                    { return e.priority }
func (e *Engine) Category() domain.ProductCategory { return domain.CategoryBook }

// Supports accepts ISBN-10 and ISBN-13 codes.
func (e *Engine) Supports(bc string) bool {
	return barcode.IsISBN10(bc) || barcode.IsISBN13(bc)
}

// Lookup searches volumes by ISBN. Zero total items maps to the
// not-found variant.
func (e *Engine) Lookup(ctx context.Context, bc string) domain.LookupResult {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err))
	}

	isbn := barcode.Normalize(bc)
	params := url.Values{}
	params.Add("q", "isbn:"+isbn)
	params.Add("maxResults", "1")
	if e.apiKey != "" {
		params.Add("key", e.apiKey)
	}
	reqURL := fmt.Sprintf("%s/books/v1/volumes?%s", e.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return domain.Failure(EngineName, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := e.httpClient.Do(req)
	if err != nil {
		e.log.WithError(err).Warn("request failed")
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return domain.Failure(EngineName, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body)))
	}

	var payload volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}

	if payload.TotalItems == 0 || len(payload.Items) == 0 {
		e.log.WithField("isbn", isbn).Debug("no volume record")
		return domain.NotFound(EngineName)
	}

	return domain.Found(EngineName, mapVolume(isbn, &payload.Items[0].VolumeInfo))
}
