package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tripvista/travel-backend/internal/api/routes"
	"github.com/tripvista/travel-backend/internal/config"
	"github.com/tripvista/travel-backend/internal/models"
	"github.com/tripvista/travel-backend/internal/utils"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJWTSecret = "test-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + uuid.NewString() + "?mode=memory&cache=shared&_busy_timeout=10000"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Rating{},
		&models.Comment{},
		&models.AggregateStats{},
		&models.ModerationLog{},
	))

	cfg := &config.Config{
		Environment:    "test",
		JWTSecret:      testJWTSecret,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
		AllowedOrigins: []string{"*"},
	}

	router := gin.New()
	routes.SetupRoutes(router, db, cfg)
	return router
}

func signToken(t *testing.T, userID uint, username, role string) string {
	t.Helper()
	claims := &utils.Claims{
		UserID:    userID,
		Username:  username,
		AvatarURL: "https://cdn.example.com/" + username + ".png",
		Role:      role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Subject:   username,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return token
}

func doRequest(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRatingEndpoints(t *testing.T) {
	router := newTestRouter(t)
	token := signToken(t, 10, "ines", "member")

	// Unauthenticated submit is rejected.
	w := doRequest(router, http.MethodPost, "/api/v1/items/trip/1/rating", "", gin.H{"value": 5})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Out-of-range value.
	w = doRequest(router, http.MethodPost, "/api/v1/items/trip/1/rating", token, gin.H{"value": 6})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// First submit succeeds.
	w = doRequest(router, http.MethodPost, "/api/v1/items/trip/1/rating", token, gin.H{"value": 5, "item_title": "Lisbon Getaway"})
	assert.Equal(t, http.StatusCreated, w.Code)

	// Second submit conflicts and leaves stats unchanged.
	w = doRequest(router, http.MethodPost, "/api/v1/items/trip/1/rating", token, gin.H{"value": 1})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/items/trip/1/stats", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var statsResp struct {
		Data struct {
			RatingCount   int64   `json:"rating_count"`
			AverageRating float64 `json:"average_rating"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &statsResp))
	assert.Equal(t, int64(1), statsResp.Data.RatingCount)
	assert.Equal(t, 5.0, statsResp.Data.AverageRating)

	// Own rating is retrievable; another user's is not found.
	w = doRequest(router, http.MethodGet, "/api/v1/items/trip/1/rating/mine", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	other := signToken(t, 11, "jonas", "member")
	w = doRequest(router, http.MethodGet, "/api/v1/items/trip/1/rating/mine", other, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Unknown item type never reaches the store.
	w = doRequest(router, http.MethodPost, "/api/v1/items/cruise/1/rating", token, gin.H{"value": 5})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCommentEndpoints(t *testing.T) {
	router := newTestRouter(t)
	owner := signToken(t, 10, "ines", "member")
	intruder := signToken(t, 11, "jonas", "member")

	w := doRequest(router, http.MethodPost, "/api/v1/items/hotel/2/comments", owner, gin.H{"body": "short"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPost, "/api/v1/items/hotel/2/comments", owner, gin.H{
		"body":       "the rooftop bar was amazing",
		"item_title": "Hotel Aurora",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var createResp struct {
		Data models.Comment `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &createResp))
	commentID := createResp.Data.ID
	require.NotZero(t, commentID)

	// Listing is public.
	w = doRequest(router, http.MethodGet, "/api/v1/items/hotel/2/comments?page=1&limit=10", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the owner may edit.
	path := fmt.Sprintf("/api/v1/comments/%d", commentID)
	w = doRequest(router, http.MethodPut, path, intruder, gin.H{"body": "rewriting someone else's review"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodPut, path, owner, gin.H{"body": strings.Repeat("b", 2001)})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodPut, path, owner, gin.H{"body": "the rooftop bar was amazing, breakfast less so"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Only the owner (or an admin) may delete.
	w = doRequest(router, http.MethodDelete, path, intruder, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(router, http.MethodDelete, path, owner, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminEndpoints(t *testing.T) {
	router := newTestRouter(t)
	member := signToken(t, 10, "ines", "member")
	admin := signToken(t, 99, "mod", "admin")

	w := doRequest(router, http.MethodPost, "/api/v1/items/trip/1/rating", member, gin.H{"value": 4, "item_title": "Lisbon Getaway"})
	require.Equal(t, http.StatusCreated, w.Code)
	var ratingResp struct {
		Data models.Rating `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ratingResp))

	w = doRequest(router, http.MethodPost, "/api/v1/items/trip/1/comments", member, gin.H{"body": "unforgettable sunsets"})
	require.Equal(t, http.StatusCreated, w.Code)

	// Admin surface is closed to regular members.
	w = doRequest(router, http.MethodGet, "/api/v1/admin/reviews", member, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(router, http.MethodGet, "/api/v1/admin/reviews?item_type=trip", admin, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var searchResp struct {
		Data struct {
			Total int64 `json:"total"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &searchResp))
	assert.Equal(t, int64(2), searchResp.Data.Total)

	w = doRequest(router, http.MethodGet, "/api/v1/admin/reviews/stats", admin, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Delete requires a reason.
	deletePath := fmt.Sprintf("/api/v1/admin/reviews/rating:%d", ratingResp.Data.ID)
	w = doRequest(router, http.MethodDelete, deletePath, admin, gin.H{})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doRequest(router, http.MethodDelete, deletePath, admin, gin.H{"reason": "abusive rating pattern"})
	assert.Equal(t, http.StatusOK, w.Code)

	// Bulk delete reports per-id outcomes without aborting the batch.
	w = doRequest(router, http.MethodPost, "/api/v1/admin/reviews/bulk-delete", admin, gin.H{
		"ids": []string{"rating:9999", "bogus"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	var bulkResp struct {
		Data struct {
			Results []struct {
				ID      string `json:"id"`
				Success bool   `json:"success"`
			} `json:"results"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &bulkResp))
	require.Len(t, bulkResp.Data.Results, 2)
	assert.False(t, bulkResp.Data.Results[0].Success)
	assert.False(t, bulkResp.Data.Results[1].Success)
}
