package offacts

import (
	"testing"

	"github.com/scanlens/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProduct_Food(t *testing.T) {
	kcal := 539.0
	raw := &rawProduct{
		ProductName:     "Nutella",
		GenericName:     "Hazelnut spread",
		Brands:          "Ferrero",
		ImageURL:        "http://images.openfoodfacts.org/nutella.jpg",
		Quantity:        "400 g",
		Ingredients:     []rawIngredient{{Text: "Sugar"}, {Text: "Palm oil"}},
		AllergensTags:   []string{"en:milk", "en:nuts"},
		NutriscoreGrade: "e",
		Nutriments:      rawNutriments{EnergyKcal100g: &kcal},
		Categories:      "Spreads",
	}

	product := mapProduct("3017620422003", "openfoodfacts", domain.CategoryFood, raw)

	assert.Equal(t, "3017620422003", product.Barcode)
	assert.Equal(t, "openfoodfacts", product.Source)
	assert.Equal(t, domain.CategoryFood, product.Category)
	require.NotNil(t, product.ImageURL)
	assert.Equal(t, "https://images.openfoodfacts.org/nutella.jpg", *product.ImageURL)

	require.NotNil(t, product.Food)
	assert.Nil(t, product.Book)
	assert.Nil(t, product.Medicine)
	assert.Nil(t, product.Cosmetics)
	assert.Equal(t, []string{"Sugar", "Palm oil"}, product.Food.Ingredients)
	assert.Equal(t, []string{"milk", "nuts"}, product.Food.Allergens)
	require.NotNil(t, product.Food.EnergyKcal100g)
	assert.Equal(t, 539.0, *product.Food.EnergyKcal100g)
	assert.Equal(t, "Spreads", product.RawMetadata["categories"])

	assert.NoError(t, product.Validate())
}

func TestMapProduct_Cosmetics(t *testing.T) {
	raw := &rawProduct{
		ProductName:         "Hand Cream",
		Ingredients:         []rawIngredient{{Text: "Aqua"}, {Text: "Glycerin"}},
		PeriodsAfterOpening: "12 months",
	}

	product := mapProduct("4005900000001", "openbeautyfacts", domain.CategoryCosmetics, raw)

	require.NotNil(t, product.Cosmetics)
	assert.Nil(t, product.Food)
	assert.Equal(t, []string{"Aqua", "Glycerin"}, product.Cosmetics.Ingredients)
	require.NotNil(t, product.Cosmetics.PeriodAfterOpening)
	assert.Equal(t, "12 months", *product.Cosmetics.PeriodAfterOpening)
	assert.NoError(t, product.Validate())
}

func TestMapProduct_PetFoodHasNoSubRecord(t *testing.T) {
	raw := &rawProduct{ProductName: "Dog Kibble", Quantity: "2 kg"}

	product := mapProduct("7613035799790", "openpetfoodfacts", domain.CategoryPetFood, raw)

	assert.Equal(t, domain.CategoryPetFood, product.Category)
	assert.Nil(t, product.Food)
	assert.Nil(t, product.Cosmetics)
	assert.Equal(t, "2 kg", product.RawMetadata["quantity"])
	assert.NoError(t, product.Validate())
}

func TestMapProduct_AbsentFieldsStayNil(t *testing.T) {
	product := mapProduct("3017620422003", "openfoodfacts", domain.CategoryFood, &rawProduct{})

	assert.Nil(t, product.Name)
	assert.Nil(t, product.Brand)
	assert.Nil(t, product.Description)
	assert.Nil(t, product.ImageURL)
	assert.Nil(t, product.RawMetadata)
	require.NotNil(t, product.Food)
	assert.Nil(t, product.Food.Ingredients)
	assert.Nil(t, product.Food.Allergens)
}

func TestMapProduct_EmptyIngredientListStaysEmptyNotNil(t *testing.T) {
	raw := &rawProduct{
		ProductName: "Water",
		Ingredients: []rawIngredient{},
	}

	product := mapProduct("3274080005003", "openfoodfacts", domain.CategoryFood, raw)

	require.NotNil(t, product.Food.Ingredients)
	assert.Empty(t, product.Food.Ingredients)
}

func TestIngredientTexts_SkipsBlankEntries(t *testing.T) {
	got := ingredientTexts([]rawIngredient{{Text: "Sugar"}, {Text: "  "}, {Text: "Salt"}})
	assert.Equal(t, []string{"Sugar", "Salt"}, got)
}

func TestStripTagPrefixes(t *testing.T) {
	got := stripTagPrefixes([]string{"en:milk", "fr:lait", "plain"})
	assert.Equal(t, []string{"milk", "lait", "plain"}, got)
}
