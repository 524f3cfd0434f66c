package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/tripvista/travel-backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory database per test. A single pooled
// connection keeps sqlite from returning busy errors under the concurrency
// tests while leaving the transactional semantics intact.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.Rating{},
		&models.Comment{},
		&models.AggregateStats{},
		&models.ModerationLog{},
	))
	return db
}

func newTestServices(t *testing.T) (*gorm.DB, *AggregationEngine, *RatingService, *CommentService) {
	t.Helper()
	db := newTestDB(t)
	engine := NewAggregationEngine(db)
	ratings := NewRatingService(db, engine)
	comments := NewCommentService(db, engine)
	return db, engine, ratings, comments
}

func testAuthor(userID uint) Author {
	return Author{
		UserID:    userID,
		Username:  "traveler",
		AvatarURL: "https://cdn.example.com/avatar.png",
	}
}
