package handler

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// ProductHandler handles product catalog HTTP endpoints.
type ProductHandler struct {
	productService *service.ProductService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(productService *service.ProductService) *ProductHandler {
	return &ProductHandler{productService: productService}
}

// ListProducts handles GET /api/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := models.ProductFilter{
		Search: strings.TrimSpace(c.Query("search")),
	}

	var ok bool
	if filter.EcosystemID, ok = queryID(c, "ecosystem_id"); !ok {
		return
	}
	if filter.BrandID, ok = queryID(c, "brand_id"); !ok {
		return
	}

	if status := c.Query("status"); status != "" {
		switch s := models.ProductStatus(status); s {
		case models.ProductStatusActive, models.ProductStatusNotForSale, models.ProductStatusInactive, models.ProductStatusDraft:
			filter.Status = s
		default:
			utils.Error(c, 400, "INVALID_QUERY", "status must be one of: active, not_for_sale, inactive, draft")
			return
		}
	}

	products, err := h.productService.List(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err, "retrieve products")
		return
	}
	utils.JSON(c, 200, products)
}

// GetProduct handles GET /api/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}

	product, err := h.productService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "retrieve product")
		return
	}
	utils.JSON(c, 200, product)
}

// CreateProduct handles POST /api/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req models.ProductFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "create product")
		return
	}
	utils.JSON(c, 201, product)
}

// UpdateProduct handles PUT /api/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}

	var req models.ProductFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.Update(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "update product")
		return
	}
	utils.JSON(c, 200, product)
}

// DeleteProduct handles DELETE /api/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}

	if err := h.productService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err, "delete product")
		return
	}
	c.Status(204)
}

// CloneProduct handles POST /api/products/:id/clone
func (h *ProductHandler) CloneProduct(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}

	product, err := h.productService.Clone(c.Request.Context(), id)
	if err != nil {
		respondError(c, err, "clone product")
		return
	}
	utils.JSON(c, 201, product)
}

// AddVersion handles POST /api/products/:id/versions
func (h *ProductHandler) AddVersion(c *gin.Context) {
	id, ok := paramUUID(c)
	if !ok {
		return
	}

	var req models.VersionFormData
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.productService.AddVersion(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "add product version")
		return
	}
	utils.JSON(c, 201, product)
}

func paramUUID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.Error(c, 400, "INVALID_ID", "Invalid product ID")
		return uuid.Nil, false
	}
	return id, true
}

// queryID reads an optional positive integer query parameter. A missing
// parameter yields 0.
func queryID(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_QUERY", key+" must be a positive integer")
		return 0, false
	}
	return id, true
}

func paramInt(c *gin.Context, key, message string) (int, bool) {
	id, err := strconv.Atoi(c.Param(key))
	if err != nil || id <= 0 {
		utils.Error(c, 400, "INVALID_ID", message)
		return 0, false
	}
	return id, true
}
