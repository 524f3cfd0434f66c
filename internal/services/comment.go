package services

import (
	"errors"

	"github.com/tripvista/travel-backend/internal/models"
	"github.com/tripvista/travel-backend/internal/utils"
	"gorm.io/gorm"
)

var (
	ErrInvalidLength   = errors.New("comment must be between 10 and 2000 characters")
	ErrNotOwner        = errors.New("you can only modify your own comments")
	ErrCommentNotFound = errors.New("comment not found")
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 100
)

// Author is the identity metadata supplied by the external identity provider,
// denormalized onto each comment at write time.
type Author struct {
	UserID    uint
	Username  string
	AvatarURL string
}

type CommentService struct {
	db     *gorm.DB
	engine *AggregationEngine
}

func NewCommentService(db *gorm.DB, engine *AggregationEngine) *CommentService {
	return &CommentService{db: db, engine: engine}
}

type CreateCommentRequest struct {
	Body      string `json:"body"`
	ItemTitle string `json:"item_title"`
}

type UpdateCommentRequest struct {
	Body string `json:"body"`
}

type CommentPage struct {
	Items       []models.Comment `json:"items"`
	Total       int64            `json:"total"`
	Page        int              `json:"page"`
	PageSize    int              `json:"page_size"`
	HasNextPage bool             `json:"has_next_page"`
}

func (s *CommentService) Create(itemID uint, itemType string, author Author, body, itemTitle string) (*models.Comment, error) {
	body = utils.SanitizeString(body)
	if !utils.IsValidCommentBody(body) {
		return nil, ErrInvalidLength
	}

	comment := &models.Comment{
		ItemID:    itemID,
		ItemType:  itemType,
		UserID:    author.UserID,
		Username:  author.Username,
		AvatarURL: author.AvatarURL,
		ItemTitle: utils.SanitizeString(itemTitle),
		Body:      body,
	}

	err := withStorageRetry("comment.create", func() error {
		comment.ID = 0
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(comment).Error; err != nil {
				return err
			}
			return s.engine.OnCommentAdded(tx, itemID, itemType)
		})
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// Edit replaces the body and marks the comment edited. Concurrent edits on
// the same id resolve last-committed-wins; each commit is a single atomic
// update. Aggregate counts are unaffected.
func (s *CommentService) Edit(commentID, userID uint, newBody string) (*models.Comment, error) {
	newBody = utils.SanitizeString(newBody)
	if !utils.IsValidCommentBody(newBody) {
		return nil, ErrInvalidLength
	}

	var comment models.Comment
	err := withStorageRetry("comment.edit", func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&comment, commentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCommentNotFound
				}
				return err
			}
			if comment.UserID != userID {
				return ErrNotOwner
			}
			if err := tx.Model(&comment).Updates(map[string]interface{}{
				"body":   newBody,
				"edited": true,
			}).Error; err != nil {
				return err
			}
			return tx.First(&comment, commentID).Error
		})
	})
	if err != nil {
		return nil, err
	}

	return &comment, nil
}

// Delete removes a comment when the requester owns it or is a moderator, and
// decrements the aggregate in the same transaction. The deleted record is
// returned so moderation can force a recompute.
func (s *CommentService) Delete(commentID, requesterID uint, isAdmin bool) (*models.Comment, error) {
	var comment models.Comment
	err := withStorageRetry("comment.delete", func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.First(&comment, commentID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrCommentNotFound
				}
				return err
			}
			if comment.UserID != requesterID && !isAdmin {
				return ErrNotOwner
			}
			if err := tx.Delete(&models.Comment{}, commentID).Error; err != nil {
				return err
			}
			return s.engine.OnCommentRemoved(tx, comment.ItemID, comment.ItemType)
		})
	})
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// List pages through an item's comments, newest first. Offset pagination:
// comments arriving between page fetches may shift entries across pages;
// callers tolerate that staleness.
func (s *CommentService) List(itemID uint, itemType string, page, pageSize int) (*CommentPage, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = DefaultPageSize
	}
	if pageSize > MaxPageSize {
		pageSize = MaxPageSize
	}

	var comments []models.Comment
	var total int64

	err := withStorageRetry("comment.list", func() error {
		query := s.db.Model(&models.Comment{}).
			Where("item_id = ? AND item_type = ?", itemID, itemType)

		if err := query.Count(&total).Error; err != nil {
			return err
		}

		offset := (page - 1) * pageSize
		return query.
			Order("created_at DESC").
			Offset(offset).
			Limit(pageSize).
			Find(&comments).Error
	})
	if err != nil {
		return nil, err
	}

	if comments == nil {
		comments = []models.Comment{}
	}

	return &CommentPage{
		Items:       comments,
		Total:       total,
		Page:        page,
		PageSize:    pageSize,
		HasNextPage: int64(page*pageSize) < total,
	}, nil
}
