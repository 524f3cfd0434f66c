package services

import (
	"errors"
	"math"
	"time"

	"github.com/tripvista/travel-backend/internal/models"
	"github.com/tripvista/travel-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AggregationEngine is the sole writer of the item_stats table. The OnXxx
// hooks run inside the transaction of the triggering store mutation, so an
// aggregate delta is never applied without its source write committing.
// Readers of GetStats may observe a value that lags a commit from another
// request by a moment; that staleness is accepted.
type AggregationEngine struct {
	db *gorm.DB
}

func NewAggregationEngine(db *gorm.DB) *AggregationEngine {
	return &AggregationEngine{db: db}
}

type ItemStats struct {
	ItemID        uint          `json:"item_id"`
	ItemType      string        `json:"item_type"`
	RatingCount   int64         `json:"rating_count"`
	AverageRating float64       `json:"average_rating"`
	CommentCount  int64         `json:"comment_count"`
	Distribution  map[int]int64 `json:"rating_distribution"`
	LastUpdated   time.Time     `json:"last_updated"`
}

type SiteStats struct {
	TotalRatings            int64   `json:"total_ratings"`
	AverageRatingAcrossSite float64 `json:"average_rating"`
	TotalReviews            int64   `json:"total_reviews"`
	ReviewsLastWeek         int64   `json:"reviews_last_week"`
}

// OnRatingAdded applies the incremental update inside the caller's
// transaction via a conflict-upsert, so concurrent submits on the same item
// never lose an increment to a stale read-modify-write.
func (e *AggregationEngine) OnRatingAdded(tx *gorm.DB, itemID uint, itemType string, value int) error {
	stats := models.AggregateStats{
		ItemID:      itemID,
		ItemType:    itemType,
		RatingCount: 1,
		RatingSum:   int64(value),
		LastUpdated: time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "item_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"rating_count": gorm.Expr("item_stats.rating_count + 1"),
			"rating_sum":   gorm.Expr("item_stats.rating_sum + ?", value),
			"last_updated": time.Now(),
		}),
	}).Create(&stats).Error
}

func (e *AggregationEngine) OnCommentAdded(tx *gorm.DB, itemID uint, itemType string) error {
	stats := models.AggregateStats{
		ItemID:       itemID,
		ItemType:     itemType,
		CommentCount: 1,
		LastUpdated:  time.Now(),
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "item_id"}, {Name: "item_type"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"comment_count": gorm.Expr("item_stats.comment_count + 1"),
			"last_updated":  time.Now(),
		}),
	}).Create(&stats).Error
}

// OnRatingRemoved decrements count and sum. The WHERE guard keeps the count
// from going negative; zero rows affected means the clamp fired.
func (e *AggregationEngine) OnRatingRemoved(tx *gorm.DB, itemID uint, itemType string, value int) error {
	res := tx.Model(&models.AggregateStats{}).
		Where("item_id = ? AND item_type = ? AND rating_count > 0", itemID, itemType).
		Updates(map[string]interface{}{
			"rating_count": gorm.Expr("rating_count - 1"),
			"rating_sum":   gorm.Expr("CASE WHEN rating_sum >= ? THEN rating_sum - ? ELSE 0 END", value, value),
			"last_updated": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"item_id":   itemID,
			"item_type": itemType,
			"counter":   "rating_count",
		}).Warn("aggregate counter clamped at zero")
	}
	return nil
}

func (e *AggregationEngine) OnCommentRemoved(tx *gorm.DB, itemID uint, itemType string) error {
	res := tx.Model(&models.AggregateStats{}).
		Where("item_id = ? AND item_type = ? AND comment_count > 0", itemID, itemType).
		Updates(map[string]interface{}{
			"comment_count": gorm.Expr("comment_count - 1"),
			"last_updated":  time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		logger.WithFields(map[string]interface{}{
			"item_id":   itemID,
			"item_type": itemType,
			"counter":   "comment_count",
		}).Warn("aggregate counter clamped at zero")
	}
	return nil
}

// GetStats returns the per-item summary plus the 1..5 rating distribution.
// Items with no activity yield zeroed stats rather than an error.
func (e *AggregationEngine) GetStats(itemID uint, itemType string) (*ItemStats, error) {
	var row models.AggregateStats
	err := withStorageRetry("stats.get", func() error {
		return e.db.
			Where("item_id = ? AND item_type = ?", itemID, itemType).
			First(&row).Error
	})
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	distribution := map[int]int64{1: 0, 2: 0, 3: 0, 4: 0, 5: 0}
	var buckets []struct {
		Value int
		Count int64
	}
	err = withStorageRetry("stats.distribution", func() error {
		return e.db.Model(&models.Rating{}).
			Select("value, COUNT(*) AS count").
			Where("item_id = ? AND item_type = ?", itemID, itemType).
			Group("value").
			Scan(&buckets).Error
	})
	if err != nil {
		return nil, err
	}
	for _, b := range buckets {
		distribution[b.Value] = b.Count
	}

	return &ItemStats{
		ItemID:        itemID,
		ItemType:      itemType,
		RatingCount:   row.RatingCount,
		AverageRating: roundRating(row.AverageRating()),
		CommentCount:  row.CommentCount,
		Distribution:  distribution,
		LastUpdated:   row.LastUpdated,
	}, nil
}

// GetSiteStats powers the admin dashboard. reviews_last_week counts comments
// created in [now-7d, now].
func (e *AggregationEngine) GetSiteStats(now time.Time) (*SiteStats, error) {
	stats := &SiteStats{}

	err := withStorageRetry("stats.site", func() error {
		var ratingAgg struct {
			Count int64
			Sum   int64
		}
		if err := e.db.Model(&models.Rating{}).
			Select("COUNT(*) AS count, COALESCE(SUM(value), 0) AS sum").
			Scan(&ratingAgg).Error; err != nil {
			return err
		}

		stats.TotalRatings = ratingAgg.Count
		stats.AverageRatingAcrossSite = 0
		if ratingAgg.Count > 0 {
			stats.AverageRatingAcrossSite = roundRating(float64(ratingAgg.Sum) / float64(ratingAgg.Count))
		}

		if err := e.db.Model(&models.Comment{}).
			Count(&stats.TotalReviews).Error; err != nil {
			return err
		}

		weekAgo := now.Add(-7 * 24 * time.Hour)
		return e.db.Model(&models.Comment{}).
			Where("created_at BETWEEN ? AND ?", weekAgo, now).
			Count(&stats.ReviewsLastWeek).Error
	})
	if err != nil {
		return nil, err
	}

	return stats, nil
}

// Recompute rebuilds an item's aggregate from the source records. Idempotent
// and safe to re-run; moderation forces it after every destructive change.
func (e *AggregationEngine) Recompute(itemID uint, itemType string) error {
	return withStorageRetry("stats.recompute", func() error {
		return e.db.Transaction(func(tx *gorm.DB) error {
			var ratingAgg struct {
				Count int64
				Sum   int64
			}
			if err := tx.Model(&models.Rating{}).
				Select("COUNT(*) AS count, COALESCE(SUM(value), 0) AS sum").
				Where("item_id = ? AND item_type = ?", itemID, itemType).
				Scan(&ratingAgg).Error; err != nil {
				return err
			}

			var commentCount int64
			if err := tx.Model(&models.Comment{}).
				Where("item_id = ? AND item_type = ?", itemID, itemType).
				Count(&commentCount).Error; err != nil {
				return err
			}

			stats := models.AggregateStats{
				ItemID:       itemID,
				ItemType:     itemType,
				RatingCount:  ratingAgg.Count,
				RatingSum:    ratingAgg.Sum,
				CommentCount: commentCount,
				LastUpdated:  time.Now(),
			}
			return tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "item_id"}, {Name: "item_type"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"rating_count":  ratingAgg.Count,
					"rating_sum":    ratingAgg.Sum,
					"comment_count": commentCount,
					"last_updated":  time.Now(),
				}),
			}).Create(&stats).Error
		})
	})
}

func roundRating(v float64) float64 {
	return math.Round(v*100) / 100
}
