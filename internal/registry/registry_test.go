package registry

import (
	"context"
	"testing"

	"github.com/scanlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubEngine is a minimal engine for registry tests.
type stubEngine struct {
	name     string
	priority int
	category domain.ProductCategory
}

func (s stubEngine) Name() string                     { return s.name }
func (s stubEngine) Priority() int                    { return s.priority }
func (s stubEngine) Category() domain.ProductCategory { return s.category }
func (s stubEngine) Supports(string) bool             { return true }
func (s stubEngine) Lookup(context.Context, string) domain.LookupResult {
	return domain.NotFound(s.name)
}

func TestNew_RejectsDuplicateNames(t *testing.T) {
	_, err := New(
		stubEngine{name: "openlibrary", priority: 1, category: domain.CategoryBook},
		stubEngine{name: "openlibrary", priority: 2, category: domain.CategoryBook},
	)

	assert.ErrorIs(t, err, domain.ErrDuplicateEngine)
	assert.Contains(t, err.Error(), "openlibrary")
}

func TestAll_OrdersByPriorityKeepingRegistrationOrder(t *testing.T) {
	reg, err := New(
		stubEngine{name: "generic", priority: 3, category: domain.CategoryGeneric},
		stubEngine{name: "books-a", priority: 1, category: domain.CategoryBook},
		stubEngine{name: "food", priority: 1, category: domain.CategoryFood},
		stubEngine{name: "books-b", priority: 2, category: domain.CategoryBook},
	)
	require.NoError(t, err)

	var names []string
	for _, e := range reg.All() {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"books-a", "food", "books-b", "generic"}, names)
}

func TestForCategory(t *testing.T) {
	reg, err := New(
		stubEngine{name: "books-b", priority: 2, category: domain.CategoryBook},
		stubEngine{name: "food", priority: 1, category: domain.CategoryFood},
		stubEngine{name: "books-a", priority: 1, category: domain.CategoryBook},
	)
	require.NoError(t, err)

	books := reg.ForCategory(domain.CategoryBook)
	require.Len(t, books, 2)
	assert.Equal(t, "books-a", books[0].Name())
	assert.Equal(t, "books-b", books[1].Name())

	assert.Empty(t, reg.ForCategory(domain.CategoryMedicine))
}

func TestTiers(t *testing.T) {
	reg, err := New(
		stubEngine{name: "a", priority: 1, category: domain.CategoryBook},
		stubEngine{name: "b", priority: 1, category: domain.CategoryFood},
		stubEngine{name: "c", priority: 2, category: domain.CategoryBook},
		stubEngine{name: "d", priority: 5, category: domain.CategoryGeneric},
	)
	require.NoError(t, err)

	tiers := Tiers(reg.All())
	require.Len(t, tiers, 3)
	assert.Equal(t, "a", tiers[0][0].Name())
	assert.Equal(t, "b", tiers[0][1].Name())
	assert.Equal(t, "c", tiers[1][0].Name())
	assert.Equal(t, "d", tiers[2][0].Name())
}

func TestTiers_Empty(t *testing.T) {
	assert.Empty(t, Tiers(nil))
}

func TestAll_ReturnsCopy(t *testing.T) {
	reg, err := New(
		stubEngine{name: "a", priority: 1, category: domain.CategoryBook},
		stubEngine{name: "b", priority: 2, category: domain.CategoryFood},
	)
	require.NoError(t, err)

	all := reg.All()
	all[0] = stubEngine{name: "mutated", priority: 9, category: domain.CategoryGeneric}

	assert.Equal(t, "a", reg.All()[0].Name())
}
