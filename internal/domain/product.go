package domain

import "fmt"

// ProductCategory identifies which kind of catalog a product belongs to.
// It drives engine eligibility and which category sub-record is populated.
type ProductCategory string

const (
	CategoryFood      ProductCategory = "food"
	CategoryBook      ProductCategory = "book"
	CategoryMedicine  ProductCategory = "medicine"
	CategoryCosmetics ProductCategory = "cosmetics"
	CategoryPetFood   ProductCategory = "pet_food"
	CategoryGeneric   ProductCategory = "generic"
)

// ProductInfo is the canonical product record every engine normalizes into.
// Universal fields are pointers so that "upstream didn't say" (nil) stays
// distinguishable from "upstream said empty".
type ProductInfo struct {
	Barcode     string          `json:"barcode"`
	Source      string          `json:"source"`
	Category    ProductCategory `json:"category"`
	Name        *string         `json:"name,omitempty"`
	Brand       *string         `json:"brand,omitempty"`
	Description *string         `json:"description,omitempty"`
	ImageURL    *string         `json:"imageUrl,omitempty"`

	// At most one of these is set, and it must match Category.
	Food      *FoodDetails      `json:"food,omitempty"`
	Book      *BookDetails      `json:"book,omitempty"`
	Medicine  *MedicineDetails  `json:"medicine,omitempty"`
	Cosmetics *CosmeticsDetails `json:"cosmetics,omitempty"`

	// RawMetadata carries source-specific extras not modeled elsewhere.
	RawMetadata map[string]string `json:"rawMetadata,omitempty"`
}

// FoodDetails holds food-specific fields from grocery catalogs.
type FoodDetails struct {
	Ingredients    []string `json:"ingredients,omitempty"`
	Allergens      []string `json:"allergens,omitempty"`
	Quantity       *string  `json:"quantity,omitempty"`
	NutriScore     *string  `json:"nutriScore,omitempty"`
	EnergyKcal100g *float64 `json:"energyKcal100g,omitempty"`
}

// BookDetails holds book-specific fields from bibliographic catalogs.
type BookDetails struct {
	Authors     []string `json:"authors,omitempty"`
	Publisher   *string  `json:"publisher,omitempty"`
	PublishDate *string  `json:"publishDate,omitempty"`
	PageCount   *int     `json:"pageCount,omitempty"`
}

// MedicineDetails holds drug-specific fields from the NDC directory.
type MedicineDetails struct {
	GenericName       *string  `json:"genericName,omitempty"`
	Labeler           *string  `json:"labeler,omitempty"`
	DosageForm        *string  `json:"dosageForm,omitempty"`
	Routes            []string `json:"routes,omitempty"`
	ActiveIngredients []string `json:"activeIngredients,omitempty"`
	ProductNDC        *string  `json:"productNdc,omitempty"`
}

// CosmeticsDetails holds cosmetics-specific fields.
type CosmeticsDetails struct {
	Ingredients        []string `json:"ingredients,omitempty"`
	Quantity           *string  `json:"quantity,omitempty"`
	PeriodAfterOpening *string  `json:"periodAfterOpening,omitempty"`
}

// Clone returns a deep copy of the record. Cached products are cloned on
// both store and retrieval so callers can mutate their copy freely.
func (p *ProductInfo) Clone() *ProductInfo {
	if p == nil {
		return nil
	}
	out := *p
	out.Name = clonePtr(p.Name)
	out.Brand = clonePtr(p.Brand)
	out.Description = clonePtr(p.Description)
	out.ImageURL = clonePtr(p.ImageURL)
	if p.Food != nil {
		food := FoodDetails{
			Ingredients:    cloneSlice(p.Food.Ingredients),
			Allergens:      cloneSlice(p.Food.Allergens),
			Quantity:       clonePtr(p.Food.Quantity),
			NutriScore:     clonePtr(p.Food.NutriScore),
			EnergyKcal100g: clonePtr(p.Food.EnergyKcal100g),
		}
		out.Food = &food
	}
	if p.Book != nil {
		book := BookDetails{
			Authors:     cloneSlice(p.Book.Authors),
			Publisher:   clonePtr(p.Book.Publisher),
			PublishDate: clonePtr(p.Book.PublishDate),
			PageCount:   clonePtr(p.Book.PageCount),
		}
		out.Book = &book
	}
	if p.Medicine != nil {
		med := MedicineDetails{
			GenericName:       clonePtr(p.Medicine.GenericName),
			Labeler:           clonePtr(p.Medicine.Labeler),
			DosageForm:        clonePtr(p.Medicine.DosageForm),
			Routes:            cloneSlice(p.Medicine.Routes),
			ActiveIngredients: cloneSlice(p.Medicine.ActiveIngredients),
			ProductNDC:        clonePtr(p.Medicine.ProductNDC),
		}
		out.Medicine = &med
	}
	if p.Cosmetics != nil {
		cos := CosmeticsDetails{
			Ingredients:        cloneSlice(p.Cosmetics.Ingredients),
			Quantity:           clonePtr(p.Cosmetics.Quantity),
			PeriodAfterOpening: clonePtr(p.Cosmetics.PeriodAfterOpening),
		}
		out.Cosmetics = &cos
	}
	if p.RawMetadata != nil {
		out.RawMetadata = make(map[string]string, len(p.RawMetadata))
		for k, v := range p.RawMetadata {
			out.RawMetadata[k] = v
		}
	}
	return &out
}

func clonePtr[T any](v *T) *T {
	if v == nil {
		return nil
	}
	clone := *v
	return &clone
}

func cloneSlice(s []string) []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// Validate checks the sub-record invariant: at most one category
// sub-record is set and it must match the record's own category.
func (p *ProductInfo) Validate() error {
	type sub struct {
		category ProductCategory
		present  bool
	}
	subs := []sub{
		{CategoryFood, p.Food != nil},
		{CategoryBook, p.Book != nil},
		{CategoryMedicine, p.Medicine != nil},
		{CategoryCosmetics, p.Cosmetics != nil},
	}

	count := 0
	for _, s := range subs {
		if !s.present {
			continue
		}
		count++
		if s.category != p.Category {
			return fmt.Errorf("%w: %s sub-record on %s product", ErrCategoryMismatch, s.category, p.Category)
		}
	}
	if count > 1 {
		return fmt.Errorf("%w: %d sub-records populated", ErrCategoryMismatch, count)
	}
	return nil
}
