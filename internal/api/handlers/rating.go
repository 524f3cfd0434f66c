package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/internal/utils"
)

type RatingHandler struct {
	ratingService *services.RatingService
}

func NewRatingHandler(ratingService *services.RatingService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService}
}

func (h *RatingHandler) SubmitRating(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	var req services.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	rating, err := h.ratingService.Submit(itemID, itemType, userID, req.Value, req.ItemTitle)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendCreated(c, "Rating submitted successfully", rating)
}

func (h *RatingHandler) GetMyRating(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}
	userID := c.GetUint("user_id")

	rating, err := h.ratingService.FetchUserRating(itemID, itemType, userID)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Rating retrieved successfully", rating)
}
