// Package openlibrary implements the Open Library book lookup engine.
package openlibrary

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
	EngineName = "openlibrary"

	userAgent = "ScanLens/1.0 (https://github.com/scanlens/backend)"
)

// Engine queries the Open Library Books API by ISBN.
type Engine struct {
	baseURL     string
	priority    int
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// New creates an Open Library engine.
func New(baseURL string, priority int, httpClient *http.Client, log *logrus.Logger) *Engine {
	return &Engine{
		baseURL:    baseURL,
		priority:   priority,
		httpClient: httpClient,
		// Open Library asks bulk clients to stay well under 100 req/min.
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
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

// Lookup fetches book data for the ISBN. The API answers an unknown ISBN
// with an empty JSON object, which maps to the not-found variant.
func (e *Engine) Lookup(ctx context.Context, bc string) domain.LookupResult {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err))
	}

	isbn := barcode.Normalize(bc)
	bibkey := "ISBN:" + isbn

	params := url.Values{}
	params.Add("bibkeys", bibkey)
	params.Add("format", "json")
	params.Add("jscmd", "data")
	reqURL := fmt.Sprintf("%s/api/books?%s", e.baseURL, params.Encode())

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

	var payload map[string]rawBook
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}

	book, ok := payload[bibkey]
	if !ok {
		e.log.WithField("isbn", isbn).Debug("no book record")
		return domain.NotFound(EngineName)
	}

	return domain.Found(EngineName, mapBook(isbn, &book))
}
