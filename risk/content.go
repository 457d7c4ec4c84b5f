package risk

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates referenced content does not exist, eg it was
// deleted before a scheduled evaluation ran. The orchestrator treats this
// as a normal termination, not a failure.
var ErrNotFound = errors.New("content not found")

// ContentKind distinguishes the two evaluated record types.
type ContentKind string

const (
	KindPost    ContentKind = "post"
	KindComment ContentKind = "comment"
)

func (k ContentKind) String() string {
	return string(k)
}

func ParseContentKind(raw string) (ContentKind, error) {
	switch ContentKind(raw) {
	case KindPost, KindComment:
		return ContentKind(raw), nil
	}
	return "", fmt.Errorf("unknown content kind: %q", raw)
}

// Content is the engine's read-only view of one piece of user-generated
// content. The engine never mutates content fields; it only writes back a
// verdict through the content store.
type Content struct {
	Kind   ContentKind
	ID     string
	UserID string
	Text   string
	Images []string
}
