package services

import (
	"errors"

	"github.com/tripvista/travel-backend/internal/models"
	"github.com/tripvista/travel-backend/internal/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrInvalidValue   = errors.New("rating must be between 1 and 5")
	ErrAlreadyRated   = errors.New("you have already rated this item")
	ErrRatingNotFound = errors.New("rating not found")
)

// RatingService persists one immutable rating per (item, user). Normal users
// can only create; removal is a moderation-only path.
type RatingService struct {
	db     *gorm.DB
	engine *AggregationEngine
}

func NewRatingService(db *gorm.DB, engine *AggregationEngine) *RatingService {
	return &RatingService{db: db, engine: engine}
}

type SubmitRatingRequest struct {
	Value     int    `json:"value"`
	ItemTitle string `json:"item_title"`
}

// Submit creates the rating and updates the item aggregate in one
// transaction. Uniqueness rides on the (item_id, item_type, user_id) unique
// index via an ON CONFLICT DO NOTHING insert, so two concurrent submits for
// the same pair cannot both succeed.
func (s *RatingService) Submit(itemID uint, itemType string, userID uint, value int, itemTitle string) (*models.Rating, error) {
	if !utils.IsValidRating(value) {
		return nil, ErrInvalidValue
	}

	rating := &models.Rating{
		ItemID:    itemID,
		ItemType:  itemType,
		UserID:    userID,
		Value:     value,
		ItemTitle: utils.SanitizeString(itemTitle),
	}

	err := withStorageRetry("rating.submit", func() error {
		rating.ID = 0
		return s.db.Transaction(func(tx *gorm.DB) error {
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "item_id"}, {Name: "item_type"}, {Name: "user_id"}},
				DoNothing: true,
			}).Create(rating)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected == 0 {
				return ErrAlreadyRated
			}
			return s.engine.OnRatingAdded(tx, itemID, itemType, value)
		})
	})
	if err != nil {
		return nil, err
	}

	return rating, nil
}

func (s *RatingService) FetchUserRating(itemID uint, itemType string, userID uint) (*models.Rating, error) {
	var rating models.Rating
	err := withStorageRetry("rating.fetch_user", func() error {
		return s.db.
			Where("item_id = ? AND item_type = ? AND user_id = ?", itemID, itemType, userID).
			First(&rating).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRatingNotFound
		}
		return nil, err
	}
	return &rating, nil
}

// ListRatings returns every rating for an item, newest first. Used for full
// recomputes and distribution display.
func (s *RatingService) ListRatings(itemID uint, itemType string) ([]models.Rating, error) {
	var ratings []models.Rating
	err := withStorageRetry("rating.list", func() error {
		return s.db.
			Where("item_id = ? AND item_type = ?", itemID, itemType).
			Order("created_at DESC").
			Find(&ratings).Error
	})
	if err != nil {
		return nil, err
	}
	return ratings, nil
}

// ListUserRatings fetches the ratings a set of users left on one item, for
// joining onto their comments in the review feed.
func (s *RatingService) ListUserRatings(itemID uint, itemType string, userIDs []uint) (map[uint]int, error) {
	if len(userIDs) == 0 {
		return map[uint]int{}, nil
	}

	var ratings []models.Rating
	err := withStorageRetry("rating.list_users", func() error {
		return s.db.
			Where("item_id = ? AND item_type = ? AND user_id IN ?", itemID, itemType, userIDs).
			Find(&ratings).Error
	})
	if err != nil {
		return nil, err
	}

	values := make(map[uint]int, len(ratings))
	for _, r := range ratings {
		values[r.UserID] = r.Value
	}
	return values, nil
}

// AdminDelete removes a rating and decrements the aggregate in the same
// transaction. It returns the deleted record so the caller can force a
// recompute of the affected item.
func (s *RatingService) AdminDelete(ratingID uint) (*models.Rating, error) {
	var rating models.Rating
	err := withStorageRetry("rating.admin_delete", func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&rating, ratingID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrRatingNotFound
				}
				return err
			}
			if err := tx.Delete(&models.Rating{}, ratingID).Error; err != nil {
				return err
			}
			return s.engine.OnRatingRemoved(tx, rating.ItemID, rating.ItemType, rating.Value)
		})
	})
	if err != nil {
		return nil, err
	}
	return &rating, nil
}
