package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/api/handlers"
	"github.com/tripvista/travel-backend/internal/api/middleware"
	"github.com/tripvista/travel-backend/internal/config"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/pkg/logger"
	"gorm.io/gorm"
)

func SetupRoutes(router *gin.Engine, db *gorm.DB, cfg *config.Config) {
	// Middleware
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORSMiddleware(cfg))
	router.Use(middleware.RateLimitMiddleware(cfg))

	// Initialize services
	aggregationEngine := services.NewAggregationEngine(db)
	ratingService := services.NewRatingService(db, aggregationEngine)
	commentService := services.NewCommentService(db, aggregationEngine)
	feedService := services.NewReviewFeedService(commentService, ratingService)
	auditSink := services.NewDatabaseAuditSink(db)
	moderationService := services.NewModerationService(db, aggregationEngine, ratingService, commentService, auditSink)

	// Initialize handlers
	ratingHandler := handlers.NewRatingHandler(ratingService)
	commentHandler := handlers.NewCommentHandler(commentService)
	reviewHandler := handlers.NewReviewHandler(feedService, aggregationEngine)
	adminHandler := handlers.NewAdminHandler(moderationService)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok", "message": "Server is running"})
	})

	// API routes
	api := router.Group("/api/v1")

	// Item-scoped routes
	items := api.Group("/items/:item_type/:item_id")
	{
		items.POST("/rating", middleware.AuthMiddleware(cfg), ratingHandler.SubmitRating)
		items.GET("/rating/mine", middleware.AuthMiddleware(cfg), ratingHandler.GetMyRating)
		items.POST("/comments", middleware.AuthMiddleware(cfg), commentHandler.CreateComment)
		items.GET("/comments", commentHandler.ListComments)
		items.GET("/reviews", reviewHandler.GetItemReviews)
		items.GET("/stats", reviewHandler.GetItemStats)
	}

	// Comment routes
	comments := api.Group("/comments", middleware.AuthMiddleware(cfg))
	{
		comments.PUT("/:comment_id", commentHandler.UpdateComment)
		comments.DELETE("/:comment_id", commentHandler.DeleteComment)
	}

	// Admin routes
	admin := api.Group("/admin", middleware.AuthMiddleware(cfg), middleware.AdminOnly())
	{
		admin.GET("/dashboard", adminHandler.GetDashboard)
		admin.GET("/reviews", adminHandler.SearchReviews)
		admin.GET("/reviews/stats", adminHandler.GetReviewStats)
		admin.DELETE("/reviews/:review_id", adminHandler.DeleteReview)
		admin.POST("/reviews/bulk-delete", adminHandler.BulkDeleteReviews)
	}

	logger.Info("Routes initialized successfully")
}
