// Package registry holds the process-wide set of lookup engines. The
// registry is built once at startup and never mutated afterwards, so
// concurrent reads need no locking.
package registry

import (
	"fmt"
	"sort"

	"github.com/scanlens/backend/internal/domain"
)

// Registry is an immutable collection of lookup engines ordered by
// ascending priority. Registration order is preserved among engines that
// share a priority value.
type Registry struct {
	engines []domain.LookupEngine
}

// New builds a registry from the given engines. Construction fails if two
// engines share a name, since names key fallback diagnostics.
func New(engines ...domain.LookupEngine) (*Registry, error) {
	seen := make(map[string]struct{}, len(engines))
	for _, e := range engines {
		if _, dup := seen[e.Name()]; dup {
			return nil, fmt.Errorf("%w: %q", domain.ErrDuplicateEngine, e.Name())
		}
		seen[e.Name()] = struct{}{}
	}

	ordered := make([]domain.LookupEngine, len(engines))
	copy(ordered, engines)
	// Stable sort keeps registration order within a priority tier.
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Priority() < ordered[j].Priority()
	})

	return &Registry{engines: ordered}, nil
}

// All returns every engine in ascending priority order.
func (r *Registry) All() []domain.LookupEngine {
	out := make([]domain.LookupEngine, len(r.engines))
	copy(out, r.engines)
	return out
}

// ForCategory returns the engines producing the given category, in
// ascending priority order.
func (r *Registry) ForCategory(category domain.ProductCategory) []domain.LookupEngine {
	var out []domain.LookupEngine
	for _, e := range r.engines {
		if e.Category() == category {
			out = append(out, e)
		}
	}
	return out
}

// Tiers groups an already priority-sorted engine slice into priority
// tiers, ascending. Engines within a tier keep their relative order.
func Tiers(engines []domain.LookupEngine) [][]domain.LookupEngine {
	var tiers [][]domain.LookupEngine
	for _, e := range engines {
		n := len(tiers)
		if n > 0 && tiers[n-1][0].Priority() == e.Priority() {
			tiers[n-1] = append(tiers[n-1], e)
			continue
		}
		tiers = append(tiers, []domain.LookupEngine{e})
	}
	return tiers
}
