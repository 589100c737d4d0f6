package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProductInfoValidate(t *testing.T) {
	tests := []struct {
		name    string
		product ProductInfo
		wantErr bool
	}{
		{
			name: "matching food sub-record",
			product: ProductInfo{
				Category: CategoryFood,
				Food:     &FoodDetails{},
			},
		},
		{
			name: "matching book sub-record",
			product: ProductInfo{
				Category: CategoryBook,
				Book:     &BookDetails{},
			},
		},
		{
			name:    "generic product without sub-record",
			product: ProductInfo{Category: CategoryGeneric},
		},
		{
			name:    "pet food product without sub-record",
			product: ProductInfo{Category: CategoryPetFood},
		},
		{
			name: "sub-record on wrong category",
			product: ProductInfo{
				Category: CategoryBook,
				Food:     &FoodDetails{},
			},
			wantErr: true,
		},
		{
			name: "two sub-records is invalid even for the right category",
			product: ProductInfo{
				Category: CategoryFood,
				Food:     &FoodDetails{},
				Book:     &BookDetails{},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.product.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrCategoryMismatch)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOptionalString(t *testing.T) {
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalString("   "))

	got := OptionalString(" Nutella ")
	if assert.NotNil(t, got) {
		assert.Equal(t, "Nutella", *got)
	}
}

func TestSecureImageURL(t *testing.T) {
	assert.Nil(t, SecureImageURL(""))

	rewritten := SecureImageURL("http://images.example.com/a.jpg")
	if assert.NotNil(t, rewritten) {
		assert.Equal(t, "https://images.example.com/a.jpg", *rewritten)
	}

	untouched := SecureImageURL("https://images.example.com/a.jpg")
	if assert.NotNil(t, untouched) {
		assert.Equal(t, "https://images.example.com/a.jpg", *untouched)
	}
}

func TestProductInfoClone(t *testing.T) {
	name := "Nutella"
	quantity := "400g"
	original := &ProductInfo{
		Barcode:  "3017620422003",
		Source:   "openfoodfacts",
		Category: CategoryFood,
		Name:     &name,
		Food: &FoodDetails{
			Ingredients: []string{"sugar", "palm oil"},
			Quantity:    &quantity,
		},
		RawMetadata: map[string]string{"labels": "No gluten"},
	}

	clone := original.Clone()
	assert.Equal(t, original, clone)
	assert.NotSame(t, original, clone)

	*clone.Name = "changed"
	clone.Food.Ingredients[0] = "changed"
	clone.RawMetadata["labels"] = "changed"

	assert.Equal(t, "Nutella", *original.Name)
	assert.Equal(t, "sugar", original.Food.Ingredients[0])
	assert.Equal(t, "No gluten", original.RawMetadata["labels"])

	var missing *ProductInfo
	assert.Nil(t, missing.Clone())
}

func TestLookupResultConstructors(t *testing.T) {
	product := &ProductInfo{Barcode: "123", Source: "x", Category: CategoryGeneric}

	found := Found("x", product)
	assert.Equal(t, StatusFound, found.Status)
	assert.Same(t, product, found.Product)
	assert.NoError(t, found.Err)

	notFound := NotFound("x")
	assert.Equal(t, StatusNotFound, notFound.Status)
	assert.Nil(t, notFound.Product)

	failure := Failure("x", ErrUpstreamFailure)
	assert.Equal(t, StatusError, failure.Status)
	assert.ErrorIs(t, failure.Err, ErrUpstreamFailure)
}
