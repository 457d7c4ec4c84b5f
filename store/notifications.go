package store

import (
	"context"

	"gorm.io/gorm"
)

// NotificationStore creates system notifications toward content owners.
type NotificationStore struct {
	DB *gorm.DB
}

func NewNotificationStore(db *gorm.DB) *NotificationStore {
	return &NotificationStore{DB: db}
}

// CreateSystemNotification writes a "system" typed notification, eg the
// rejection notice sent when content fails evaluation.
func (s *NotificationStore) CreateSystemNotification(ctx context.Context, userID, title, content, relatedID string) error {
	rec := Notification{
		ID:        NewID(),
		UserID:    userID,
		Type:      "system",
		Title:     title,
		Content:   content,
		RelatedID: relatedID,
	}
	return s.DB.WithContext(ctx).Create(&rec).Error
}
