package services

import (
	"github.com/tripvista/travel-backend/internal/models"
)

// ReviewFeedService joins each commenter's star rating onto their comment for
// display. Ratings and comments stay independently-keyed records; the join
// happens here, on (item, user), purely for presentation.
type ReviewFeedService struct {
	comments *CommentService
	ratings  *RatingService
}

func NewReviewFeedService(comments *CommentService, ratings *RatingService) *ReviewFeedService {
	return &ReviewFeedService{comments: comments, ratings: ratings}
}

type ReviewFeedItem struct {
	Comment models.Comment `json:"comment"`
	Rating  *int           `json:"rating,omitempty"`
}

type ReviewFeedPage struct {
	Items       []ReviewFeedItem `json:"items"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	HasNextPage bool             `json:"has_next_page"`
}

func (s *ReviewFeedService) GetItemReviews(itemID uint, itemType string, page, pageSize int) (*ReviewFeedPage, error) {
	commentPage, err := s.comments.List(itemID, itemType, page, pageSize)
	if err != nil {
		return nil, err
	}

	userIDs := make([]uint, 0, len(commentPage.Items))
	for _, c := range commentPage.Items {
		userIDs = append(userIDs, c.UserID)
	}

	values, err := s.ratings.ListUserRatings(itemID, itemType, userIDs)
	if err != nil {
		return nil, err
	}

	items := make([]ReviewFeedItem, 0, len(commentPage.Items))
	for _, c := range commentPage.Items {
		item := ReviewFeedItem{Comment: c}
		if value, ok := values[c.UserID]; ok {
			v := value
			item.Rating = &v
		}
		items = append(items, item)
	}

	return &ReviewFeedPage{
		Items:       items,
		Total:       commentPage.Total,
		Page:        commentPage.Page,
		PageSize:    commentPage.PageSize,
		HasNextPage: commentPage.HasNextPage,
	}, nil
}
