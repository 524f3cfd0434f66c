package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/internal/utils"
)

// ReviewHandler serves the public read side: the combined comment+rating
// feed and the per-item aggregate stats shown on listing pages.
type ReviewHandler struct {
	feedService       *services.ReviewFeedService
	aggregationEngine *services.AggregationEngine
}

func NewReviewHandler(feedService *services.ReviewFeedService, aggregationEngine *services.AggregationEngine) *ReviewHandler {
	return &ReviewHandler{feedService: feedService, aggregationEngine: aggregationEngine}
}

func (h *ReviewHandler) GetItemReviews(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}

	page, limit := parsePagination(c)

	feed, err := h.feedService.GetItemReviews(itemID, itemType, page, limit)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Reviews retrieved successfully", feed)
}

func (h *ReviewHandler) GetItemStats(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}

	stats, err := h.aggregationEngine.GetStats(itemID, itemType)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Stats retrieved successfully", stats)
}
