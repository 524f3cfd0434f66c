package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/internal/utils"
)

type AdminHandler struct {
	moderationService *services.ModerationService
}

func NewAdminHandler(moderationService *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderationService: moderationService}
}

func (h *AdminHandler) SearchReviews(c *gin.Context) {
	var filter services.ReviewSearchFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		utils.SendValidationError(c, "Invalid search parameters")
		return
	}

	result, err := h.moderationService.Search(filter)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", result)
}

func (h *AdminHandler) GetReviewStats(c *gin.Context) {
	stats, err := h.moderationService.GetStats()
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Statistics retrieved successfully", stats)
}

func (h *AdminHandler) GetDashboard(c *gin.Context) {
	stats, err := h.moderationService.GetStats()
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Dashboard data retrieved successfully", gin.H{
		"reviews": stats,
	})
}

func (h *AdminHandler) DeleteReview(c *gin.Context) {
	reviewID := c.Param("review_id")
	adminID := c.GetUint("user_id")

	var req struct {
		Reason string `json:"reason" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Deletion reason is required")
		return
	}

	if err := h.moderationService.DeleteReview(reviewID, adminID, req.Reason); err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Review deleted successfully", nil)
}

func (h *AdminHandler) BulkDeleteReviews(c *gin.Context) {
	adminID := c.GetUint("user_id")

	var req struct {
		IDs []string `json:"ids" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "At least one review ID is required")
		return
	}

	results := h.moderationService.BulkDelete(req.IDs, adminID)

	utils.SendSuccess(c, "Bulk delete processed", gin.H{
		"results": results,
	})
}
