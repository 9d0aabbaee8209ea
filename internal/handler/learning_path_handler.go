package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/GTDGit/catalog_api/internal/models"
	"github.com/GTDGit/catalog_api/internal/service"
	"github.com/GTDGit/catalog_api/internal/utils"
)

// LearningPathHandler handles learning path HTTP endpoints.
type LearningPathHandler struct {
	pathService *service.LearningPathService
}

// NewLearningPathHandler constructs a LearningPathHandler.
func NewLearningPathHandler(pathService *service.LearningPathService) *LearningPathHandler {
	return &LearningPathHandler{pathService: pathService}
}

// ListPaths handles GET /api/learning-paths
func (h *LearningPathHandler) ListPaths(c *gin.Context) {
	paths, err := h.pathService.List(c.Request.Context())
	if err != nil {
		respondError(c, err, "retrieve learning paths")
		return
	}
	utils.JSON(c, 200, paths)
}

// CreatePath handles POST /api/learning-paths
func (h *LearningPathHandler) CreatePath(c *gin.Context) {
	var req models.LearningPathForm
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	path, err := h.pathService.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "create learning path")
		return
	}
	utils.JSON(c, 201, path)
}

// AddItem handles POST /api/learning-paths/:id/items
func (h *LearningPathHandler) AddItem(c *gin.Context) {
	pathID, ok := paramInt(c, "id", "Invalid learning path ID")
	if !ok {
		return
	}

	var req models.LearningPathItemForm
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	item, err := h.pathService.AddItem(c.Request.Context(), pathID, &req)
	if err != nil {
		respondError(c, err, "add learning path item")
		return
	}
	utils.JSON(c, 201, item)
}

// RemoveItem handles DELETE /api/learning-paths/:id/items/:itemId
func (h *LearningPathHandler) RemoveItem(c *gin.Context) {
	pathID, ok := paramInt(c, "id", "Invalid learning path ID")
	if !ok {
		return
	}
	itemID, ok := paramInt(c, "itemId", "Invalid learning path item ID")
	if !ok {
		return
	}

	if err := h.pathService.RemoveItem(c.Request.Context(), pathID, itemID); err != nil {
		respondError(c, err, "remove learning path item")
		return
	}
	c.Status(204)
}
