package services

import (
	"github.com/tripvista/travel-backend/internal/models"
	"github.com/tripvista/travel-backend/pkg/logger"
	"gorm.io/gorm"
)

// AuditEntry describes a moderation action handed to the audit sink.
type AuditEntry struct {
	TargetKind string
	TargetID   uint
	AdminID    uint
	Reason     string
}

// AuditSink receives the reason for every moderation delete. The real sink is
// an external system; the default implementation persists locally and logs.
type AuditSink interface {
	Record(entry AuditEntry) error
}

type DatabaseAuditSink struct {
	db *gorm.DB
}

func NewDatabaseAuditSink(db *gorm.DB) *DatabaseAuditSink {
	return &DatabaseAuditSink{db: db}
}

func (s *DatabaseAuditSink) Record(entry AuditEntry) error {
	record := models.ModerationLog{
		TargetKind: entry.TargetKind,
		TargetID:   entry.TargetID,
		AdminID:    entry.AdminID,
		Reason:     entry.Reason,
	}
	if err := s.db.Create(&record).Error; err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{
		"audit_id":    record.ID.String(),
		"target_kind": entry.TargetKind,
		"target_id":   entry.TargetID,
		"admin_id":    entry.AdminID,
	}).Info("moderation action recorded")
	return nil
}
