package googlebooks

import (
	"strings"

	"github.com/scanlens/backend/internal/domain"
)

type volumesResponse struct {
	TotalItems int         `json:"totalItems"`
	Items      []rawVolume `json:"items"`
}

type rawVolume struct {
	VolumeInfo rawVolumeInfo `json:"volumeInfo"`
}

type rawVolumeInfo struct {
	Title         string        `json:"title"`
	Subtitle      string        `json:"subtitle"`
	Authors       []string      `json:"authors"`
	Publisher     string        `json:"publisher"`
	PublishedDate string        `json:"publishedDate"`
	Description   string        `json:"description"`
	PageCount     int           `json:"pageCount"`
	Categories    []string      `json:"categories"`
	Language      string        `json:"language"`
	ImageLinks    rawImageLinks `json:"imageLinks"`
	InfoLink      string        `json:"infoLink"`
}

type rawImageLinks struct {
	Thumbnail      string `json:"thumbnail"`
	SmallThumbnail string `json:"smallThumbnail"`
}

// mapVolume normalizes a Google Books volume into the canonical product.
// Thumbnail links are served over plain http and get rewritten.
func mapVolume(isbn string, info *rawVolumeInfo) *domain.ProductInfo {
	image := info.ImageLinks.Thumbnail
	if image == "" {
		image = info.ImageLinks.SmallThumbnail
	}

	product := &domain.ProductInfo{
		Barcode:     isbn,
		Source:      EngineName,
		Category:    domain.CategoryBook,
		Name:        domain.OptionalString(info.Title),
		Description: domain.OptionalString(info.Description),
		ImageURL:    domain.SecureImageURL(image),
		Book: &domain.BookDetails{
			Authors:     copyAuthors(info.Authors),
			Publisher:   domain.OptionalString(info.Publisher),
			PublishDate: domain.OptionalString(info.PublishedDate),
		},
	}

	if info.PageCount > 0 {
		pages := info.PageCount
		product.Book.PageCount = &pages
	}

	meta := make(map[string]string)
	if info.Subtitle != "" {
		meta["subtitle"] = info.Subtitle
	}
	if len(info.Categories) > 0 {
		meta["categories"] = strings.Join(info.Categories, ", ")
	}
	if info.Language != "" {
		meta["language"] = info.Language
	}
	if info.InfoLink != "" {
		meta["infoLink"] = info.InfoLink
	}
	if len(meta) > 0 {
		product.RawMetadata = meta
	}

	return product
}

// copyAuthors preserves upstream order; a present-but-empty list stays an
// empty slice.
func copyAuthors(authors []string) []string {
	if authors == nil {
		return nil
	}
	out := make([]string, len(authors))
	copy(out, authors)
	return out
}
