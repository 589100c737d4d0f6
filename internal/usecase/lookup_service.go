package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/scanlens/backend/internal/barcode"
	"github.com/scanlens/backend/internal/domain"
	"github.com/scanlens/backend/internal/registry"
	"github.com/sirupsen/logrus"
)

// EngineSource provides the engines to orchestrate over. Satisfied by
// *registry.Registry; kept as an interface so tests can inject fakes.
type EngineSource interface {
	All() []domain.LookupEngine
}

// LookupServiceConfig holds configuration for the lookup service
type LookupServiceConfig struct {
	// CallTimeout bounds each individual engine lookup.
	CallTimeout time.Duration
	// CacheTTL controls how long resolved products stay cached.
	CacheTTL time.Duration
}

// LookupService orchestrates barcode resolution across all registered
// engines: candidate selection, priority-tiered concurrent fan-out,
// first-match short-circuit, and attempt-trail aggregation.
type LookupService struct {
	engines     EngineSource
	cache       domain.CacheRepository
	log         *logrus.Logger
	callTimeout time.Duration
	cacheTTL    time.Duration
}

// NewLookupService creates a new lookup service with dependencies. The
// cache may be nil, disabling outcome caching.
func NewLookupService(
	engines EngineSource,
	cache domain.CacheRepository,
	log *logrus.Logger,
	config LookupServiceConfig,
) *LookupService {
	callTimeout := config.CallTimeout
	if callTimeout == 0 {
		callTimeout = 10 * time.Second
	}
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	if log == nil {
		log = logrus.New()
	}

	return &LookupService{
		engines:     engines,
		cache:       cache,
		log:         log,
		callTimeout: callTimeout,
		cacheTTL:    cacheTTL,
	}
}

// Resolve looks up a barcode across every capable engine and aggregates
// the per-engine results into one outcome. It never returns an error:
// every failure mode is folded into the outcome taxonomy.
//
// Flow: check cache -> select candidates by Supports -> partition into
// priority tiers -> fan out each tier concurrently -> first Found wins
// (registration order breaks ties) -> otherwise accumulate the attempt
// trail and fall through to the next tier.
func (s *LookupService) Resolve(ctx context.Context, rawBarcode string) domain.Outcome {
	bc := strings.TrimSpace(rawBarcode)
	if bc == "" {
		return domain.NoCandidates()
	}

	if product := s.getFromCache(ctx, bc); product != nil {
		s.log.WithField("barcode", bc).Debug("resolved from cache")
		return domain.Resolved(product)
	}

	var candidates []domain.LookupEngine
	for _, e := range s.engines.All() {
		if e.Supports(bc) {
			candidates = append(candidates, e)
		}
	}
	if len(candidates) == 0 {
		s.log.WithField("barcode", bc).Info("no engine claims barcode format")
		return domain.NoCandidates()
	}

	var trail []domain.Attempt
	for _, tier := range registry.Tiers(candidates) {
		results := s.runTier(ctx, tier, bc)

		// Scan in registration order: the first Found short-circuits the
		// whole orchestration, later tiers are never started.
		for _, res := range results {
			if res.Status == domain.StatusFound {
				s.log.WithFields(logrus.Fields{
					"barcode": bc,
					"source":  res.Source,
				}).Info("barcode resolved")
				s.setInCache(ctx, bc, res.Product)
				return domain.Resolved(res.Product)
			}
		}

		for _, res := range results {
			trail = append(trail, attemptFrom(res))
		}
	}

	s.log.WithFields(logrus.Fields{
		"barcode":  bc,
		"attempts": len(trail),
	}).Info("all engines exhausted")
	return domain.Exhausted(trail)
}

// runTier invokes every engine in the tier concurrently and waits for all
// of them. Result order mirrors the tier's registration order.
func (s *LookupService) runTier(ctx context.Context, tier []domain.LookupEngine, bc string) []domain.LookupResult {
	results := make([]domain.LookupResult, len(tier))
	var wg sync.WaitGroup
	for i, engine := range tier {
		wg.Add(1)
		go func(i int, engine domain.LookupEngine) {
			defer wg.Done()
			results[i] = s.boundedLookup(ctx, engine, bc)
		}(i, engine)
	}
	wg.Wait()
	return results
}

// boundedLookup runs one engine lookup under the per-call timeout. A call
// that outlives its timeout is reported as an error; the goroutine behind
// it may finish later but its result is discarded (engines are stateless,
// so nothing needs forced cancellation beyond the context).
func (s *LookupService) boundedLookup(ctx context.Context, engine domain.LookupEngine, bc string) domain.LookupResult {
	callCtx, cancel := context.WithTimeout(ctx, s.callTimeout)
	defer cancel()

	done := make(chan domain.LookupResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- domain.Failure(engine.Name(), fmt.Errorf("%w: panic in lookup: %v", domain.ErrUpstreamFailure, r))
			}
		}()
		done <- engine.Lookup(callCtx, bc)
	}()

	select {
	case res := <-done:
		return res
	case <-callCtx.Done():
		s.log.WithFields(logrus.Fields{
			"engine":  engine.Name(),
			"barcode": bc,
		}).Warn("engine lookup timed out")
		return domain.Failure(engine.Name(), fmt.Errorf("%w: %v", domain.ErrUpstreamFailure, callCtx.Err()))
	}
}

func attemptFrom(res domain.LookupResult) domain.Attempt {
	attempt := domain.Attempt{Source: res.Source, Status: res.Status}
	if res.Err != nil {
		attempt.Reason = res.Err.Error()
	}
	return attempt
}

// cacheKey normalizes the barcode so hyphenated and plain forms of the
// same code share an entry.
func cacheKey(bc string) string {
	return "product:" + barcode.Normalize(bc)
}

func (s *LookupService) getFromCache(ctx context.Context, bc string) *domain.ProductInfo {
	if s.cache == nil {
		return nil
	}
	value, err := s.cache.Get(ctx, cacheKey(bc))
	if err != nil {
		return nil
	}
	product, ok := value.(*domain.ProductInfo)
	if !ok {
		return nil
	}
	// Hand each hit its own copy so callers never share the cached record.
	return product.Clone()
}

func (s *LookupService) setInCache(ctx context.Context, bc string, product *domain.ProductInfo) {
	if s.cache == nil || product == nil {
		return
	}
	if err := s.cache.Set(ctx, cacheKey(bc), product.Clone(), s.cacheTTL); err != nil {
		s.log.WithField("barcode", bc).WithError(err).Debug("failed to cache product")
	}
}
