package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/catalog_api/internal/utils"
)

// respondError maps a service error to its HTTP response. Unknown errors are
// logged and reported as 500 without detail.
func respondError(c *gin.Context, err error, action string) {
	var verr *utils.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.ValidationFailed(c, verr)
	case errors.Is(err, utils.ErrProductNotFound):
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
	case errors.Is(err, utils.ErrBrandNotFound):
		utils.Error(c, 400, "INVALID_BRAND", "Brand does not exist")
	case errors.Is(err, utils.ErrLearningPathNotFound):
		utils.Error(c, 404, "LEARNING_PATH_NOT_FOUND", "Learning path not found")
	case errors.Is(err, utils.ErrLearningPathItemNotFound):
		utils.Error(c, 404, "LEARNING_PATH_ITEM_NOT_FOUND", "Learning path item not found")
	default:
		log.Error().Err(err).
			Str("request_id", c.GetString("request_id")).
			Str("path", c.FullPath()).
			Msg("Failed to " + action)
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to "+action)
	}
}
