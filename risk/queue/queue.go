// At-least-once task queue for scheduling risk evaluations.
//
// Content-creating services enqueue a task after a post or comment is
// written; riskd workers dequeue and evaluate. Delivery is at-least-once:
// evaluation is an idempotent overwrite, so duplicate delivery needs no
// deduplication machinery, and a task lost with a crashed worker can simply
// be re-enqueued.
//
// Includes an interface and implementations using redis and in-process
// memory.
package queue

import (
	"context"

	"github.com/payday-community/riskengine/risk"
)

// Task identifies one piece of content to evaluate.
type Task struct {
	Kind      risk.ContentKind `json:"kind"`
	ContentID string           `json:"content_id"`
}

type Queue interface {
	Enqueue(ctx context.Context, task Task) error
	// Dequeue blocks until a task is available or the context is
	// canceled.
	Dequeue(ctx context.Context) (*Task, error)
}
