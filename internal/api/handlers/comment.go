package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tripvista/travel-backend/internal/services"
	"github.com/tripvista/travel-backend/internal/utils"
)

type CommentHandler struct {
	commentService *services.CommentService
}

func NewCommentHandler(commentService *services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService}
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}

	var req services.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	author := services.Author{
		UserID:    c.GetUint("user_id"),
		Username:  c.GetString("username"),
		AvatarURL: c.GetString("avatar_url"),
	}

	comment, err := h.commentService.Create(itemID, itemType, author, req.Body, req.ItemTitle)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendCreated(c, "Comment created successfully", comment)
}

func (h *CommentHandler) ListComments(c *gin.Context) {
	itemID, itemType, ok := parseItemRef(c)
	if !ok {
		return
	}

	page, limit := parsePagination(c)

	comments, err := h.commentService.List(itemID, itemType, page, limit)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Comments retrieved successfully", comments)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid comment ID")
		return
	}
	userID := c.GetUint("user_id")

	var req services.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendValidationError(c, "Invalid request data")
		return
	}

	comment, err := h.commentService.Edit(uint(commentID), userID, req.Body)
	if err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Comment updated successfully", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.ParseUint(c.Param("comment_id"), 10, 32)
	if err != nil {
		utils.SendValidationError(c, "Invalid comment ID")
		return
	}

	requesterID := c.GetUint("user_id")
	isAdmin := c.GetString("user_role") == "admin"

	if _, err := h.commentService.Delete(uint(commentID), requesterID, isAdmin); err != nil {
		sendServiceError(c, err)
		return
	}

	utils.SendSuccess(c, "Comment deleted successfully", nil)
}
