package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/payday-community/riskengine/risk"

	"github.com/google/uuid"
)

// NewID returns a 32-char hex identifier (uuid4 without dashes), matching
// the id format used across the wider application.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}

// StringList stores a JSON-encoded list of strings in a text column.
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return nil, nil
	}
	return json.Marshal(l)
}

func (l *StringList) Scan(src any) error {
	if src == nil {
		*l = nil
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	}
	return fmt.Errorf("unsupported StringList column type %T", src)
}

type Post struct {
	ID      string `gorm:"primarykey;size:36"`
	UserID  string `gorm:"size:36;index"`
	Content string `gorm:"type:text"`
	// image URLs, up to 9
	Images StringList `gorm:"type:text"`
	Status string     `gorm:"size:16;default:normal"`

	RiskStatus string `gorm:"size:16;default:pending;index"`
	RiskScore  *int
	RiskReason string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Comment struct {
	ID      string `gorm:"primarykey;size:36"`
	PostID  string `gorm:"size:36;index"`
	UserID  string `gorm:"size:36;index"`
	Content string `gorm:"type:text"`

	RiskStatus string `gorm:"size:16;default:pending;index"`
	RiskScore  *int
	RiskReason string `gorm:"size:255"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// SensitiveWord categories.
const (
	CategoryIllegal  = "illegal"
	CategoryPorn     = "porn"
	CategoryViolence = "violence"
	CategoryPolitics = "politics"
	CategoryFraud    = "fraud"
	CategoryOther    = "other"
)

type SensitiveWord struct {
	ID       string `gorm:"primarykey;size:36"`
	Word     string `gorm:"size:100;uniqueIndex;not null"`
	Category string `gorm:"size:50;not null"`
	IsActive bool   `gorm:"default:true;not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

type Notification struct {
	ID        string `gorm:"primarykey;size:36"`
	UserID    string `gorm:"size:36;index"`
	Type      string `gorm:"size:32"`
	Title     string `gorm:"size:255"`
	Content   string `gorm:"type:text"`
	RelatedID string `gorm:"size:36"`
	IsRead    bool   `gorm:"default:false"`

	CreatedAt time.Time
}

// ContentView converts a post record to the engine's read-only view.
func (p *Post) ContentView() *risk.Content {
	return &risk.Content{
		Kind:   risk.KindPost,
		ID:     p.ID,
		UserID: p.UserID,
		Text:   p.Content,
		Images: p.Images,
	}
}

// ContentView converts a comment record to the engine's read-only view.
func (c *Comment) ContentView() *risk.Content {
	return &risk.Content{
		Kind:   risk.KindComment,
		ID:     c.ID,
		UserID: c.UserID,
		Text:   c.Content,
	}
}
