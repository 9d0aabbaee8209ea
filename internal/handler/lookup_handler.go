package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// LookupReader reads the reference tables a product form is built from.
type LookupReader interface {
	ListBrands(ctx context.Context) ([]models.BrandLookup, error)
	ListEcosystems(ctx context.Context) ([]models.Ecosystem, error)
	ListFulfillmentPlatforms(ctx context.Context) ([]models.FulfillmentPlatform, error)
	ListFeatures(ctx context.Context) ([]models.ProductFeature, error)
	ListLanguages(ctx context.Context) ([]models.LanguageLookup, error)
	ListCostCenters(ctx context.Context) ([]models.CostCenter, error)
}

// LookupHandler serves the reference tables.
type LookupHandler struct {
	lookups LookupReader
}

// NewLookupHandler constructs a LookupHandler.
func NewLookupHandler(lookups LookupReader) *LookupHandler {
	return &LookupHandler{lookups: lookups}
}

// ListBrands handles GET /api/brands
func (h *LookupHandler) ListBrands(c *gin.Context) {
	respondList(c, "retrieve brands", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListBrands(ctx)
	})
}

// ListEcosystems handles GET /api/ecosystems
func (h *LookupHandler) ListEcosystems(c *gin.Context) {
	respondList(c, "retrieve ecosystems", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListEcosystems(ctx)
	})
}

// ListFulfillmentPlatforms handles GET /api/fulfillment-platforms
func (h *LookupHandler) ListFulfillmentPlatforms(c *gin.Context) {
	respondList(c, "retrieve fulfillment platforms", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListFulfillmentPlatforms(ctx)
	})
}

// ListFeatures handles GET /api/product-features
func (h *LookupHandler) ListFeatures(c *gin.Context) {
	respondList(c, "retrieve product features", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListFeatures(ctx)
	})
}

// ListLanguages handles GET /api/languages
func (h *LookupHandler) ListLanguages(c *gin.Context) {
	respondList(c, "retrieve languages", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListLanguages(ctx)
	})
}

// ListCostCenters handles GET /api/cost-centers
func (h *LookupHandler) ListCostCenters(c *gin.Context) {
	respondList(c, "retrieve cost centers", func(ctx context.Context) (interface{}, error) {
		return h.lookups.ListCostCenters(ctx)
	})
}

func respondList(c *gin.Context, action string, read func(ctx context.Context) (interface{}, error)) {
	rows, err := read(c.Request.Context())
	if err != nil {
		respondError(c, err, action)
		return
	}
	utils.JSON(c, 200, rows)
}
