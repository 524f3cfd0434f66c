package models

import (
	"time"
)

// Item types supplied by the external catalog.
const (
	ItemTypeTrip  = "trip"
	ItemTypeHotel = "hotel"
)

// Rating is immutable once created; only moderation may remove it.
// The composite unique index is what enforces one rating per (item, user)
// under concurrent submits.
type Rating struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemID    uint      `json:"item_id" gorm:"not null;uniqueIndex:idx_ratings_item_user"`
	ItemType  string    `json:"item_type" gorm:"not null;uniqueIndex:idx_ratings_item_user"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_ratings_item_user"`
	Value     int       `json:"value" gorm:"check:value >= 1 AND value <= 5"`
	ItemTitle string    `json:"item_title"` // denormalized from the catalog at write time
	CreatedAt time.Time `json:"created_at"`
}
