package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ModerationLog records every administrative delete with its reason.
type ModerationLog struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TargetKind string    `gorm:"not null" json:"target_kind"` // "rating" or "comment"
	TargetID   uint      `gorm:"not null" json:"target_id"`
	AdminID    uint      `gorm:"not null" json:"admin_id"`
	Reason     string    `json:"reason"`
	CreatedAt  time.Time `json:"created_at"`
}

func (m *ModerationLog) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
