package upcitemdb

import "github.com/scanlens/backend/internal/domain"

type lookupResponse struct {
	Code    string    `json:"code"`
	Message string    `json:"message"`
	Total   int       `json:"total"`
	Items   []rawItem `json:"items"`
}

type rawItem struct {
	Title       string   `json:"title"`
	Brand       string   `json:"brand"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Model       string   `json:"model"`
	Color       string   `json:"color"`
	Size        string   `json:"size"`
	Images      []string `json:"images"`
	EAN         string   `json:"ean"`
	UPC         string   `json:"upc"`
}

// mapItem normalizes a UPCitemdb item into the canonical record. Generic
// products carry no category sub-record; catalog extras land in
// RawMetadata.
func mapItem(code string, raw *rawItem) *domain.ProductInfo {
	var image string
	if len(raw.Images) > 0 {
		image = raw.Images[0]
	}

	product := &domain.ProductInfo{
		Barcode:     code,
		Source:      EngineName,
		Category:    domain.CategoryGeneric,
		Name:        domain.OptionalString(raw.Title),
		Brand:       domain.OptionalString(raw.Brand),
		Description: domain.OptionalString(raw.Description),
		ImageURL:    domain.SecureImageURL(image),
	}

	meta := make(map[string]string)
	if raw.Category != "" {
		meta["category"] = raw.Category
	}
	if raw.Model != "" {
		meta["model"] = raw.Model
	}
	if raw.Color != "" {
		meta["color"] = raw.Color
	}
	if raw.Size != "" {
		meta["size"] = raw.Size
	}
	if raw.EAN != "" {
		meta["ean"] = raw.EAN
	}
	if len(meta) > 0 {
		product.RawMetadata = meta
	}

	return product
}
