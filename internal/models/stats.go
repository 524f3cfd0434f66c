package models

import (
	"time"
)

// AggregateStats is the derived per-item summary. It is written only by the
// aggregation engine, never directly by request handlers. The rating sum is
// persisted alongside the count so incremental updates stay exact; the
// average is computed on read.
type AggregateStats struct {
	ID           uint      `json:"-" gorm:"primaryKey"`
	ItemID       uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_item_stats_item"`
	ItemType     string    `json:"item_type" gorm:"not null;uniqueIndex:idx_item_stats_item"`
	RatingCount  int64     `json:"rating_count"`
	RatingSum    int64     `json:"-"`
	CommentCount int64     `json:"comment_count"`
	LastUpdated  time.Time `json:"last_updated"`
}

func (AggregateStats) TableName() string {
	return "item_stats"
}

// AverageRating returns 0 when no ratings exist.
func (s *AggregateStats) AverageRating() float64 {
	if s.RatingCount == 0 {
		return 0
	}
	return float64(s.RatingSum) / float64(s.RatingCount)
}
