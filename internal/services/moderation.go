package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/tripvista/travel-backend/pkg/logger"
	"gorm.io/gorm"
)

var ErrInvalidReviewID = errors.New("invalid review id")

// ModerationService gives admins a combined view over ratings and comments.
// Every delete goes through the owning store and then forces a recompute of
// the affected item's aggregate.
type ModerationService struct {
	db       *gorm.DB
	engine   *AggregationEngine
	ratings  *RatingService
	comments *CommentService
	audit    AuditSink
}

func NewModerationService(db *gorm.DB, engine *AggregationEngine, ratings *RatingService, comments *CommentService, audit AuditSink) *ModerationService {
	return &ModerationService{
		db:       db,
		engine:   engine,
		ratings:  ratings,
		comments: comments,
		audit:    audit,
	}
}

type ReviewSearchFilter struct {
	Text      string `form:"search"`
	ItemType  string `form:"item_type"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
	Page      int    `form:"page"`
	Limit     int    `form:"limit"`
}

// Normalize applies defaults and whitelists the sort columns so filter input
// never reaches the query raw.
func (f *ReviewSearchFilter) Normalize() {
	f.Text = strings.TrimSpace(f.Text)
	f.ItemType = strings.TrimSpace(f.ItemType)

	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultPageSize
	}
	if f.Limit > MaxPageSize {
		f.Limit = MaxPageSize
	}

	switch f.SortBy {
	case "created_at", "rating":
	default:
		f.SortBy = "created_at"
	}
	switch strings.ToLower(f.SortOrder) {
	case "asc":
		f.SortOrder = "ASC"
	default:
		f.SortOrder = "DESC"
	}
}

// ReviewRecord is one row of the combined ratings+comments view. A rating row
// has Rating > 0 and an empty body; a comment row is the reverse.
type ReviewRecord struct {
	CompositeID string    `json:"id" gorm:"-"`
	Kind        string    `json:"kind"`
	ID          uint      `json:"-"`
	ItemID      uint      `json:"item_id"`
	ItemType    string    `json:"item_type"`
	ItemTitle   string    `json:"item_title"`
	UserID      uint      `json:"user_id"`
	Username    string    `json:"username,omitempty"`
	Rating      int       `json:"rating,omitempty"`
	Body        string    `json:"body,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ReviewSearchResult struct {
	Items []ReviewRecord `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Pages int            `json:"pages"`
}

type BulkDeleteResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

const combinedReviewsQuery = `
SELECT 'rating' AS kind, id, item_id, item_type, item_title, user_id, '' AS username, value AS rating, '' AS body, created_at FROM ratings
UNION ALL
SELECT 'comment' AS kind, id, item_id, item_type, item_title, user_id, username, 0 AS rating, body, created_at FROM comments`

// Search filters, sorts and paginates the combined view for the admin screen.
func (s *ModerationService) Search(filter ReviewSearchFilter) (*ReviewSearchResult, error) {
	filter.Normalize()

	var records []ReviewRecord
	var total int64

	err := withStorageRetry("moderation.search", func() error {
		query := s.db.Table("(?) AS reviews", s.db.Raw(combinedReviewsQuery))

		if filter.ItemType != "" {
			query = query.Where("item_type = ?", filter.ItemType)
		}
		if filter.Text != "" {
			term := "%" + strings.ToLower(filter.Text) + "%"
			query = query.Where(
				"LOWER(body) LIKE ? OR LOWER(username) LIKE ? OR LOWER(item_title) LIKE ?",
				term, term, term,
			)
		}

		if err := query.Count(&total).Error; err != nil {
			return err
		}

		offset := (filter.Page - 1) * filter.Limit
		return query.
			Order(filter.SortBy + " " + filter.SortOrder).
			Offset(offset).
			Limit(filter.Limit).
			Scan(&records).Error
	})
	if err != nil {
		return nil, err
	}

	if records == nil {
		records = []ReviewRecord{}
	}
	for i := range records {
		records[i].CompositeID = fmt.Sprintf("%s:%d", records[i].Kind, records[i].ID)
	}

	pages := int(total) / filter.Limit
	if int(total)%filter.Limit > 0 {
		pages++
	}

	return &ReviewSearchResult{
		Items: records,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
		Pages: pages,
	}, nil
}

// DeleteReview removes the record behind a composite id ("rating:42" or
// "comment:17"), forces a recompute of the affected item and hands the reason
// to the audit sink. Audit failures are logged, not surfaced; the delete has
// already committed.
func (s *ModerationService) DeleteReview(compositeID string, adminID uint, reason string) error {
	kind, id, err := parseReviewID(compositeID)
	if err != nil {
		return err
	}

	var itemID uint
	var itemType string

	switch kind {
	case "rating":
		rating, err := s.ratings.AdminDelete(id)
		if err != nil {
			return err
		}
		itemID, itemType = rating.ItemID, rating.ItemType
	case "comment":
		comment, err := s.comments.Delete(id, adminID, true)
		if err != nil {
			return err
		}
		itemID, itemType = comment.ItemID, comment.ItemType
	}

	if err := s.engine.Recompute(itemID, itemType); err != nil {
		return err
	}

	if err := s.audit.Record(AuditEntry{
		TargetKind: kind,
		TargetID:   id,
		AdminID:    adminID,
		Reason:     reason,
	}); err != nil {
		logger.WithFields(map[string]interface{}{
			"review_id": compositeID,
			"error":     err.Error(),
		}).Error("audit sink rejected moderation record")
	}

	return nil
}

// BulkDelete deletes each id independently; one failure never aborts the
// batch.
func (s *ModerationService) BulkDelete(ids []string, adminID uint) []BulkDeleteResult {
	results := make([]BulkDeleteResult, 0, len(ids))
	for _, id := range ids {
		result := BulkDeleteResult{ID: id, Success: true}
		if err := s.DeleteReview(id, adminID, "bulk moderation"); err != nil {
			result.Success = false
			result.Error = err.Error()
		}
		results = append(results, result)
	}
	return results
}

func (s *ModerationService) GetStats() (*SiteStats, error) {
	return s.engine.GetSiteStats(time.Now())
}

func parseReviewID(compositeID string) (string, uint, error) {
	kind, rawID, found := strings.Cut(compositeID, ":")
	if !found || (kind != "rating" && kind != "comment") {
		return "", 0, ErrInvalidReviewID
	}
	id, err := strconv.ParseUint(rawID, 10, 32)
	if err != nil || id == 0 {
		return "", 0, ErrInvalidReviewID
	}
	return kind, uint(id), nil
}
