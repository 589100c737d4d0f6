package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/scanlens/backend/internal/barcode"
	"github.com/scanlens/backend/internal/domain"
)

// Resolver runs the barcode orchestration. Satisfied by
// *usecase.LookupService; kept as an interface so handler tests can
// inject fakes.
type Resolver interface {
	Resolve(ctx context.Context, barcode string) domain.Outcome
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	resolver Resolver
}

// NewHandler creates a new HTTP handler
func NewHandler(resolver Resolver) *Handler {
	return &Handler{resolver: resolver}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "scanlens-backend",
		"version": "1.0.0",
	})
}

// LookupProduct resolves a scanned barcode across all capable engines.
// Status mapping: resolved -> 200 with the product, exhausted -> 404 with
// the attempt trail, no candidates -> 422.
func (h *Handler) LookupProduct(c *gin.Context) {
	bc := c.Param("barcode")

	outcome := h.resolver.Resolve(c.Request.Context(), bc)
	switch outcome.Kind {
	case domain.OutcomeResolved:
		c.JSON(http.StatusOK, outcome.Product)
	case domain.OutcomeExhausted:
		c.JSON(http.StatusNotFound, gin.H{
			"error":    "product not found in any catalog",
			"barcode":  bc,
			"attempts": outcome.Attempts,
		})
	default:
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":   "no engine recognizes this barcode format",
			"barcode": bc,
		})
	}
}

// ClassifyBarcode reports the plausible formats for a barcode without
// performing any lookup. Debugging aid for scanner clients.
func (h *Handler) ClassifyBarcode(c *gin.Context) {
	bc := c.Param("barcode")
	c.JSON(http.StatusOK, gin.H{
		"barcode": bc,
		"formats": barcode.Classify(bc).Tags(),
	})
}
