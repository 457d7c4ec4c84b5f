package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/payday-community/riskengine/risk"

	"gorm.io/gorm"
)

// ErrNotFound indicates the referenced record does not exist (eg, content
// deleted before its evaluation ran).
var ErrNotFound = risk.ErrNotFound

// ContentStore reads posts and comments and writes risk verdicts back onto
// them. It is the only component that mutates the risk fields.
type ContentStore struct {
	DB *gorm.DB
}

func NewContentStore(db *gorm.DB) *ContentStore {
	return &ContentStore{DB: db}
}

func (s *ContentStore) GetContent(ctx context.Context, kind risk.ContentKind, id string) (*risk.Content, error) {
	switch kind {
	case risk.KindPost:
		var post Post
		if err := s.DB.WithContext(ctx).First(&post, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return post.ContentView(), nil
	case risk.KindComment:
		var comment Comment
		if err := s.DB.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return comment.ContentView(), nil
	}
	return nil, fmt.Errorf("unknown content kind: %q", kind)
}

// SetRiskVerdict overwrites the persisted risk fields for one record.
// Overwrite semantics make re-evaluation idempotent; last write wins.
func (s *ContentStore) SetRiskVerdict(ctx context.Context, kind risk.ContentKind, id string, status risk.Status, score int, reason string) error {
	updates := map[string]any{
		"risk_status": status.String(),
		"risk_score":  score,
		"risk_reason": reason,
	}
	var res *gorm.DB
	switch kind {
	case risk.KindPost:
		res = s.DB.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(updates)
	case risk.KindComment:
		res = s.DB.WithContext(ctx).Model(&Comment{}).Where("id = ?", id).Updates(updates)
	default:
		return fmt.Errorf("unknown content kind: %q", kind)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// PendingManualItem is one row of the human review queue.
type PendingManualItem struct {
	Kind      risk.ContentKind `json:"kind"`
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Text      string           `json:"text"`
	RiskScore int              `json:"risk_score"`
	Reason    string           `json:"reason"`
}

// PendingManual lists content resting in "pending" risk status with a
// populated score, ie items an evaluation routed to manual review.
func (s *ContentStore) PendingManual(ctx context.Context, limit int) ([]PendingManualItem, error) {
	if limit <= 0 {
		limit = 50
	}

	var posts []Post
	if err := s.DB.WithContext(ctx).
		Where("risk_status = ? AND risk_score IS NOT NULL", risk.StatusPending.String()).
		Order("updated_at desc").Limit(limit).Find(&posts).Error; err != nil {
		return nil, err
	}
	var comments []Comment
	if err := s.DB.WithContext(ctx).
		Where("risk_status = ? AND risk_score IS NOT NULL", risk.StatusPending.String()).
		Order("updated_at desc").Limit(limit).Find(&comments).Error; err != nil {
		return nil, err
	}

	items := make([]PendingManualItem, 0, len(posts)+len(comments))
	for _, p := range posts {
		items = append(items, PendingManualItem{
			Kind:      risk.KindPost,
			ID:        p.ID,
			UserID:    p.UserID,
			Text:      p.Content,
			RiskScore: *p.RiskScore,
			Reason:    p.RiskReason,
		})
	}
	for _, c := range comments {
		items = append(items, PendingManualItem{
			Kind:      risk.KindComment,
			ID:        c.ID,
			UserID:    c.UserID,
			Text:      c.Content,
			RiskScore: *c.RiskScore,
			Reason:    c.RiskReason,
		})
	}
	return items, nil
}

// ResolveManual records a human reviewer's decision on a pending item.
func (s *ContentStore) ResolveManual(ctx context.Context, kind risk.ContentKind, id string, approved bool, reason string) error {
	status := risk.StatusApproved
	if !approved {
		status = risk.StatusRejected
	}
	updates := map[string]any{
		"risk_status": status.String(),
	}
	if reason != "" {
		updates["risk_reason"] = reason
	}
	var res *gorm.DB
	switch kind {
	case risk.KindPost:
		res = s.DB.WithContext(ctx).Model(&Post{}).Where("id = ?", id).Updates(updates)
	case risk.KindComment:
		res = s.DB.WithContext(ctx).Model(&Comment{}).Where("id = ?", id).Updates(updates)
	default:
		return fmt.Errorf("unknown content kind: %q", kind)
	}
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
