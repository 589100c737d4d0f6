package domain

import "errors"

var (
	// ErrProductNotFound is returned when a source is reachable but has no
	// record for the barcode
	ErrProductNotFound = errors.New("product not found")

	// ErrUpstreamFailure is returned when a catalog API request fails
	ErrUpstreamFailure = errors.New("upstream catalog request failed")

	// ErrMalformedPayload is returned when an upstream response cannot be parsed
	ErrMalformedPayload = errors.New("malformed upstream payload")

	// ErrInvalidBarcode is returned when a barcode is empty or unusable
	ErrInvalidBarcode = errors.New("invalid barcode")

	// ErrDuplicateEngine is returned when two engines register the same name
	ErrDuplicateEngine = errors.New("duplicate engine name")

	// ErrCategoryMismatch is returned when a product's sub-record does not
	// match its declared category
	ErrCategoryMismatch = errors.New("category sub-record mismatch")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
