package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/internal/utils"
)

// parseItemRef reads the /:item_type/:item_id path segments. On failure it
// writes the error response and returns ok=false.
func parseItemRef(c *gin.Context) (uint, string, bool) {
	itemType := c.Param("item_type")
	if !utils.IsValidItemType(itemType) {
		utils.SendValidationError(c, "Item type must be 'trip' or 'hotel'")
		return 0, "", false
	}

	itemID, err := strconv.ParseUint(c.Param("item_id"), 10, 32)
	if err != nil || itemID == 0 {
		utils.SendValidationError(c, "Invalid item ID")
		return 0, "", false
	}

	return uint(itemID), itemType, true
}

func parsePagination(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	return page, limit
}

// sendServiceError maps the service error taxonomy onto HTTP statuses.
func sendServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidValue):
		utils.SendValidationError(c, services.ErrInvalidValue.Error())
	case errors.Is(err, services.ErrInvalidLength):
		utils.SendValidationError(c, services.ErrInvalidLength.Error())
	case errors.Is(err, services.ErrInvalidReviewID):
		utils.SendValidationError(c, services.ErrInvalidReviewID.Error())
	case errors.Is(err, services.ErrAlreadyRated):
		utils.SendConflict(c, services.ErrAlreadyRated.Error())
	case errors.Is(err, services.ErrNotOwner):
		utils.SendForbidden(c, services.ErrNotOwner.Error())
	case errors.Is(err, services.ErrRatingNotFound):
		utils.SendNotFound(c, services.ErrRatingNotFound.Error())
	case errors.Is(err, services.ErrCommentNotFound):
		utils.SendNotFound(c, services.ErrCommentNotFound.Error())
	case errors.Is(err, services.ErrServiceUnavailable):
		utils.SendServiceUnavailable(c, services.ErrServiceUnavailable.Error())
	default:
		utils.SendInternalError(c, "Unexpected error", err)
	}
}
