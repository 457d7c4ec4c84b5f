package engine

import (
	"context"
	"sync"

	"github.com/payday-community/riskengine/risk"
	"github.com/payday-community/riskengine/risk/wordlist"
)

// MemContentStore is a map-backed ContentStore for tests.
type MemContentStore struct {
	mu       sync.Mutex
	Items    map[string]*risk.Content
	Statuses map[string]risk.Status
	Scores   map[string]int
	Reasons  map[string]string
}

var _ ContentStore = (*MemContentStore)(nil)

func NewMemContentStore() *MemContentStore {
	return &MemContentStore{
		Items:    make(map[string]*risk.Content),
		Statuses: make(map[string]risk.Status),
		Scores:   make(map[string]int),
		Reasons:  make(map[string]string),
	}
}

func contentKey(kind risk.ContentKind, id string) string {
	return kind.String() + "/" + id
}

func (s *MemContentStore) Put(item *risk.Content) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Items[contentKey(item.Kind, item.ID)] = item
}

func (s *MemContentStore) GetContent(ctx context.Context, kind risk.ContentKind, id string) (*risk.Content, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	item, ok := s.Items[contentKey(kind, id)]
	if !ok {
		return nil, risk.ErrNotFound
	}
	return item, nil
}

func (s *MemContentStore) SetRiskVerdict(ctx context.Context, kind risk.ContentKind, id string, status risk.Status, score int, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := contentKey(kind, id)
	if _, ok := s.Items[key]; !ok {
		return risk.ErrNotFound
	}
	s.Statuses[key] = status
	s.Scores[key] = score
	s.Reasons[key] = reason
	return nil
}

// Verdict returns the persisted verdict fields for one item.
func (s *MemContentStore) Verdict(kind risk.ContentKind, id string) (risk.Status, int, string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := contentKey(kind, id)
	return s.Statuses[key], s.Scores[key], s.Reasons[key]
}

// MemNotifier records notifications for tests.
type MemNotifier struct {
	mu   sync.Mutex
	Sent []MemNotification
}

type MemNotification struct {
	UserID    string
	Title     string
	Content   string
	RelatedID string
}

var _ NotificationStore = (*MemNotifier)(nil)

func (n *MemNotifier) CreateSystemNotification(ctx context.Context, userID, title, content, relatedID string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Sent = append(n.Sent, MemNotification{
		UserID:    userID,
		Title:     title,
		Content:   content,
		RelatedID: relatedID,
	})
	return nil
}

func (n *MemNotifier) All() []MemNotification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]MemNotification{}, n.Sent...)
}

// EngineTestFixture returns a fully in-memory engine: static word list, no
// remote moderation, map-backed content store and notifier.
func EngineTestFixture() (*Engine, *MemContentStore, *MemNotifier) {
	content := NewMemContentStore()
	notifier := &MemNotifier{}
	eng := &Engine{
		Content:  content,
		Words:    wordlist.StaticSource{Words: []string{"赌博", "色情"}},
		Notifier: notifier,
	}
	return eng, content, notifier
}
