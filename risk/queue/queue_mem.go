package queue

import (
	"context"
)

type MemQueue struct {
	tasks chan Task
}

var _ Queue = (*MemQueue)(nil)

func NewMemQueue(size int) *MemQueue {
	if size <= 0 {
		size = 1024
	}
	return &MemQueue{
		tasks: make(chan Task, size),
	}
}

func (q *MemQueue) Enqueue(ctx context.Context, task Task) error {
	select {
	case q.tasks <- task:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemQueue) Dequeue(ctx context.Context) (*Task, error) {
	select {
	case task := <-q.tasks:
		return &task, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Len returns the number of queued tasks (tests and admin introspection).
func (q *MemQueue) Len() int {
	return len(q.tasks)
}
