// Package openfda implements the drug lookup engine backed by the openFDA
// NDC directory. Retail drug barcodes are UPCs with the NDC embedded, so
// one lookup issues up to two queries against the same endpoint: first by
// UPC, then by the NDC digits extracted from the code.
package openfda

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
	EngineName = "openfda"

	userAgent = "ScanLens/1.0 (https://github.com/scanlens/backend)"
)

// Engine queries the openFDA drug/ndc endpoint.
type Engine struct {
	baseURL     string
	priority    int
	apiKey      string
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	log         *logrus.Entry
}

// New creates an openFDA engine. apiKey may be empty; unauthenticated
// clients get 240 requests per minute.
func New(baseURL string, priority int, apiKey string, httpClient *http.Client, log *logrus.Logger) *Engine {
	return &Engine{
		baseURL:     baseURL,
		priority:    priority,
		apiKey:      apiKey,
		httpClient:  httpClient,
		rateLimiter: rate.NewLimiter(rate.Limit(4), 4),
		log:         log.WithField("engine", EngineName),
	}
}

func (e *Engine) Name() string                     { return EngineName }
func (e *Engine) Priority() int                    { return e.priority }
func (e *Engine) Category() domain.ProductCategory { return domain.CategoryMedicine }

// Supports accepts codes whose digit projection could embed an NDC.
func (e *Engine) Supports(bc string) bool {
	return barcode.IsNDCCandidate(bc)
}

// Lookup performs one logical lookup that may issue two HTTP requests:
// the UPC query first, then the extracted-NDC query if the UPC misses.
// Only a miss falls through; transport or payload errors surface
// immediately.
func (e *Engine) Lookup(ctx context.Context, bc string) domain.LookupResult {
	digits := barcode.DigitsOnly(bc)

	result := e.query(ctx, bc, fmt.Sprintf("openfda.upc:%q", digits))
	if result.Status != domain.StatusNotFound {
		return result
	}

	ndc := extractNDC(digits)
	if ndc == "" {
		return result
	}
	return e.query(ctx, bc, fmt.Sprintf("package_ndc:%q", ndc))
}

func (e *Engine) query(ctx context.Context, bc, search string) domain.LookupResult {
	if err := e.rateLimiter.Wait(ctx); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: rate limiter: %v", domain.ErrUpstreamFailure, err))
	}

	params := url.Values{}
	params.Add("search", search)
	params.Add("limit", "1")
	if e.apiKey != "" {
		params.Add("api_key", e.apiKey)
	}
	reqURL := fmt.Sprintf("%s/drug/ndc.json?%s", e.baseURL, params.Encode())

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

	// openFDA answers a query with no matches as a 404 with a NOT_FOUND
	// error document.
	if resp.StatusCode == http.StatusNotFound {
		return domain.NotFound(EngineName)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		e.log.WithField("status", resp.StatusCode).Warn("unexpected status")
		return domain.Failure(EngineName, fmt.Errorf("%w: status %d: %s", domain.ErrUpstreamFailure, resp.StatusCode, string(body)))
	}

	var payload searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return domain.Failure(EngineName, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}

	if len(payload.Results) == 0 {
		return domain.NotFound(EngineName)
	}

	return domain.Found(EngineName, mapDrug(bc, &payload.Results[0]))
}

// extractNDC pulls the 10-digit NDC out of a GTIN digit string: a
// 12-digit UPC carries it between the number-system digit and the check
// digit, a 13-digit GTIN adds one more leading packaging digit. Already
// 10- or 11-digit strings pass through unchanged.
func extractNDC(digits string) string {
	switch len(digits) {
	case 12:
		return digits[1:11]
	case 13:
		return digits[2:12]
	case 10, 11:
		return digits
	default:
		return ""
	}
}
