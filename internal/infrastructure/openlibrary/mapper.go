package openlibrary

import "github.com/scanlens/backend/internal/domain"

// rawBook is the per-bibkey record from the Books API. Unknown fields are
// ignored.
type rawBook struct {
	Title         string     `json:"title"`
	Subtitle      string     `json:"subtitle"`
	Authors       []rawNamed `json:"authors"`
	Publishers    []rawNamed `json:"publishers"`
	PublishDate   string     `json:"publish_date"`
	NumberOfPages int        `json:"number_of_pages"`
	Cover         rawCover   `json:"cover"`
	URL           string     `json:"url"`
}

type rawNamed struct {
	Name string `json:"name"`
}

type rawCover struct {
	Small  string `json:"small"`
	Medium string `json:"medium"`
	Large  string `json:"large"`
}

// mapBook normalizes an Open Library record into the canonical product.
func mapBook(isbn string, raw *rawBook) *domain.ProductInfo {
	product := &domain.ProductInfo{
		Barcode:     isbn,
		Source:      EngineName,
		Category:    domain.CategoryBook,
		Name:        domain.OptionalString(raw.Title),
		Description: domain.OptionalString(raw.Subtitle),
		ImageURL:    domain.SecureImageURL(bestCover(raw.Cover)),
		Book: &domain.BookDetails{
			Authors:     names(raw.Authors),
			PublishDate: domain.OptionalString(raw.PublishDate),
		},
	}

	if len(raw.Publishers) > 0 {
		product.Book.Publisher = domain.OptionalString(raw.Publishers[0].Name)
	}
	if raw.NumberOfPages > 0 {
		pages := raw.NumberOfPages
		product.Book.PageCount = &pages
	}
	if raw.URL != "" {
		product.RawMetadata = map[string]string{"url": raw.URL}
	}

	return product
}

// bestCover prefers the largest available cover image.
func bestCover(cover rawCover) string {
	switch {
	case cover.Large != "":
		return cover.Large
	case cover.Medium != "":
		return cover.Medium
	default:
		return cover.Small
	}
}

// names flattens author/publisher objects into ordered names. A
// present-but-empty upstream list stays an empty slice.
func names(in []rawNamed) []string {
	if in == nil {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, n := range in {
		if n.Name != "" {
			out = append(out, n.Name)
		}
	}
	return out
}
