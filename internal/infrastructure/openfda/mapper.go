package openfda

import (
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

type searchResponse struct {
	Results []rawDrug `json:"results"`
}

type rawDrug struct {
	BrandName         string                `json:"brand_name"`
	GenericName       string                `json:"generic_name"`
	LabelerName       string                `json:"labeler_name"`
	DosageForm        string                `json:"dosage_form"`
	Route             []string              `json:"route"`
	ActiveIngredients []rawActiveIngredient `json:"active_ingredients"`
	ProductNDC        string                `json:"product_ndc"`
	ProductType       string                `json:"product_type"`
	Packaging         []rawPackaging        `json:"packaging"`
}

type rawActiveIngredient struct {
	Name     string `json:"name"`
	Strength string `json:"strength"`
}

type rawPackaging struct {
	Description string `json:"description"`
}

// mapDrug normalizes an NDC directory record into the canonical product.
// The directory has no product images.
func mapDrug(bc string, raw *rawDrug) *domain.ProductInfo {
	product := &domain.ProductInfo{
		Barcode:     bc,
		Source:      EngineName,
		Category:    domain.CategoryMedicine,
		Name:        domain.OptionalString(raw.BrandName),
		Brand:       domain.OptionalString(raw.LabelerName),
		Description: domain.OptionalString(raw.GenericName),
		Medicine: &domain.MedicineDetails{
			GenericName:       domain.OptionalString(raw.GenericName),
			Labeler:           domain.OptionalString(raw.LabelerName),
			DosageForm:        domain.OptionalString(raw.DosageForm),
			Routes:            copyRoutes(raw.Route),
			ActiveIngredients: ingredientStrengths(raw.ActiveIngredients),
			ProductNDC:        domain.OptionalString(raw.ProductNDC),
		},
	}

	meta := make(map[string]string)
	if raw.ProductType != "" {
		meta["productType"] = raw.ProductType
	}
	if len(raw.Packaging) > 0 && raw.Packaging[0].Description != "" {
		meta["packaging"] = raw.Packaging[0].Description
	}
	if len(meta) > 0 {
		product.RawMetadata = meta
	}

	return product
}

func copyRoutes(routes []string) []string {
	if routes == nil {
		return nil
	}
	out := make([]string, len(routes))
	copy(out, routes)
	return out
}

// ingredientStrengths flattens active ingredients into "name strength"
// strings, preserving upstream order.
func ingredientStrengths(ingredients []rawActiveIngredient) []string {
	if ingredients == nil {
		return nil
	}
	out := make([]string, 0, len(ingredients))
	for _, ing := range ingredients {
		parts := []string{}
		if ing.Name != "" {
			parts = append(parts, ing.Name)
		}
		if ing.Strength != "" {
			parts = append(parts, ing.Strength)
		}
		if len(parts) > 0 {
			out = append(out, strings.Join(parts, " "))
		}
	}
	return out
}
