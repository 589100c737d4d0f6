package domain

import (
	"context"
	"time"
)

// LookupEngine is a pluggable unit that queries one external catalog for
// one product category. Engines are stateless across calls (a shared HTTP
// client is the only shared resource) and safe for concurrent use.
type LookupEngine interface {
	// Name is the unique human-readable identifier, used as
	// ProductInfo.Source and in attempt trails.
	Name() string

	// Priority orders fallback: lower values are tried earlier. Engines
	// sharing a priority form one concurrent tier.
	Priority() int

	// Category is the single product category this engine produces.
	Category() ProductCategory

	// Supports reports whether this engine can plausibly answer for the
	// raw barcode. It must be fast, local, and side-effect free.
	Supports(barcode string) bool

	// Lookup performs one logical query against the remote catalog. It
	// never panics and never returns a partial result: every failure is
	// converted to the error variant, a valid no-match response to the
	// not-found variant.
	Lookup(ctx context.Context, barcode string) LookupResult
}

// CacheRepository defines the interface for caching resolved products.
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}
