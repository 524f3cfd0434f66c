package models

import (
	"time"
)

// Comment body length bounds, enforced on create and edit.
const (
	CommentMinLength = 10
	CommentMaxLength = 2000
)

type Comment struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ItemID    uint      `json:"item_id" gorm:"not null;index:idx_comments_item"`
	ItemType  string    `json:"item_type" gorm:"not null;index:idx_comments_item"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Username  string    `json:"username"`
	AvatarURL string    `json:"avatar_url"`
	ItemTitle string    `json:"item_title"`
	Body      string    `json:"body" gorm:"not null"`
	Edited    bool      `json:"edited" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
