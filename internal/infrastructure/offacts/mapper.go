package offacts

import (
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

// productResponse is the *Facts lookup envelope. Unknown fields are
// ignored so upstream schema drift cannot break the engine.
type productResponse struct {
	Status  int         `json:"status"`
	Product *rawProduct `json:"product"`
}

type rawProduct struct {
	ProductName         string          `json:"product_name"`
	GenericName         string          `json:"generic_name"`
	Brands              string          `json:"brands"`
	ImageURL            string          `json:"image_url"`
	Quantity            string          `json:"quantity"`
	Ingredients         []rawIngredient `json:"ingredients"`
	AllergensTags       []string        `json:"allergens_tags"`
	NutriscoreGrade     string          `json:"nutriscore_grade"`
	Nutriments          rawNutriments   `json:"nutriments"`
	Categories          string          `json:"categories"`
	Countries           string          `json:"countries"`
	Labels              string          `json:"labels"`
	PeriodsAfterOpening string          `json:"periods_after_opening"`
}

type rawIngredient struct {
	Text string `json:"text"`
}

type rawNutriments struct {
	EnergyKcal100g *float64 `json:"energy-kcal_100g"`
}

// mapProduct normalizes a *Facts payload into the canonical record. The
// category decides which sub-record is populated: food and cosmetics get
// theirs, pet food has no sub-record of its own.
func mapProduct(code, source string, category domain.ProductCategory, raw *rawProduct) *domain.ProductInfo {
	product := &domain.ProductInfo{
		Barcode:     code,
		Source:      source,
		Category:    category,
		Name:        domain.OptionalString(raw.ProductName),
		Brand:       domain.OptionalString(raw.Brands),
		Description: domain.OptionalString(raw.GenericName),
		ImageURL:    domain.SecureImageURL(raw.ImageURL),
		RawMetadata: rawMetadata(raw),
	}

	switch category {
	case domain.CategoryFood:
		product.Food = &domain.FoodDetails{
			Ingredients:    ingredientTexts(raw.Ingredients),
			Allergens:      stripTagPrefixes(raw.AllergensTags),
			Quantity:       domain.OptionalString(raw.Quantity),
			NutriScore:     domain.OptionalString(raw.NutriscoreGrade),
			EnergyKcal100g: raw.Nutriments.EnergyKcal100g,
		}
	case domain.CategoryCosmetics:
		product.Cosmetics = &domain.CosmeticsDetails{
			Ingredients:        ingredientTexts(raw.Ingredients),
			Quantity:           domain.OptionalString(raw.Quantity),
			PeriodAfterOpening: domain.OptionalString(raw.PeriodsAfterOpening),
		}
	}

	return product
}

// ingredientTexts flattens the structured ingredient list into ordered
// names. A present-but-empty upstream list stays an empty slice, distinct
// from an absent one.
func ingredientTexts(ingredients []rawIngredient) []string {
	if ingredients == nil {
		return nil
	}
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		if text := strings.TrimSpace(ing.Text); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// stripTagPrefixes removes the language prefix from taxonomy tags like
// "en:milk", preserving upstream order.
func stripTagPrefixes(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		if idx := strings.Index(tag, ":"); idx >= 0 {
			tag = tag[idx+1:]
		}
		if tag = strings.TrimSpace(tag); tag != "" {
			out = append(out, tag)
		}
	}
	return out
}

func rawMetadata(raw *rawProduct) map[string]string {
	meta := make(map[string]string)
	if raw.Categories != "" {
		meta["categories"] = raw.Categories
	}
	if raw.Countries != "" {
		meta["countries"] = raw.Countries
	}
	if raw.Labels != "" {
		meta["labels"] = raw.Labels
	}
	if raw.Quantity != "" {
		meta["quantity"] = raw.Quantity
	}
	if len(meta) == 0 {
		return nil
	}
	return meta
}
