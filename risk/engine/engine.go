// Orchestrator for content risk evaluation.
//
// The engine combines local detectors (contact-info patterns,
// sensitive-word matching) with the remote moderation service into one
// verdict per piece of content, persists the verdict onto the content
// record, and notifies the owner on rejection. Every failure mode of a
// signal source degrades to an abstaining (neutral) score; nothing in here
// propagates an infrastructure error out of an evaluation, so a third-party
// outage can never silently block all publication. The local detectors
// remain the non-degradable safety net.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/payday-community/riskengine/risk"
	"github.com/payday-community/riskengine/risk/moderation"
	"github.com/payday-community/riskengine/risk/queue"
	"github.com/payday-community/riskengine/risk/wordlist"
)

// RejectionTitle is the notification title for auto-rejected content.
const RejectionTitle = "内容未通过审核"

// ContentStore loads content and writes risk verdicts back. GetContent
// returns an error matching risk.ErrNotFound when the record is gone.
type ContentStore interface {
	GetContent(ctx context.Context, kind risk.ContentKind, id string) (*risk.Content, error)
	SetRiskVerdict(ctx context.Context, kind risk.ContentKind, id string, status risk.Status, score int, reason string) error
}

// NotificationStore creates the rejection notice toward a content owner.
type NotificationStore interface {
	CreateSystemNotification(ctx context.Context, userID, title, content, relatedID string) error
}

// runtime for evaluating content risk and recording verdicts.
//
// All collaborators are injected at construction; the engine keeps no
// process-wide state, so separate engines (and concurrent evaluations on
// one engine) are fully independent.
type Engine struct {
	Logger  *slog.Logger
	Content ContentStore
	// word source for the sensitive-word matcher; may be nil (fallback
	// list only)
	Words wordlist.WordSource
	// remote moderation client; nil or unconfigured means local-only
	// evaluation
	Moderation *moderation.Client
	// optional; rejection notifications are skipped when nil
	Notifier NotificationStore

	// bound on concurrent per-image moderation calls for one batch
	ImageConcurrency int
	// overall budget for the remote calls of one evaluation
	RemoteTimeout time.Duration
}

// ProcessTask runs one scheduled evaluation: load content, evaluate,
// persist the verdict, notify on rejection. Safe to re-run on unchanged
// content (overwrite semantics), which licenses at-least-once scheduling.
//
// Returns an error only when persistence fails, so the caller may retry;
// missing content is a no-op.
func (eng *Engine) ProcessTask(ctx context.Context, task queue.Task) error {
	// similar to an HTTP server, we want to recover any panics from evaluation
	defer func() {
		if r := recover(); r != nil {
			eng.logger().Error("risk evaluation exception", "err", r, "kind", task.Kind, "contentId", task.ContentID)
		}
	}()

	logger := eng.logger().With("kind", task.Kind.String(), "contentId", task.ContentID)

	content, err := eng.Content.GetContent(ctx, task.Kind, task.ContentID)
	if err != nil {
		if errors.Is(err, risk.ErrNotFound) {
			// raced with a deletion; normal termination
			contentMissingCount.Inc()
			logger.Info("content missing, skipping evaluation")
			return nil
		}
		tasksFailedCount.Inc()
		return fmt.Errorf("loading content: %w", err)
	}

	result := eng.Evaluate(ctx, content.Text, content.Images)
	evaluationCount.WithLabelValues(result.Action.String()).Inc()

	err = eng.Content.SetRiskVerdict(ctx, task.Kind, task.ContentID, result.Action.Status(), result.Score, result.Reason)
	if err != nil {
		if errors.Is(err, risk.ErrNotFound) {
			contentMissingCount.Inc()
			logger.Info("content disappeared before verdict write, skipping")
			return nil
		}
		tasksFailedCount.Inc()
		return fmt.Errorf("persisting risk verdict: %w", err)
	}

	if result.Action == risk.ActionReject && result.Reason != "" && eng.Notifier != nil {
		err := eng.Notifier.CreateSystemNotification(ctx, content.UserID, RejectionTitle, result.Reason, content.ID)
		if err != nil {
			// the verdict is already persisted; notification failure is not worth a retry loop
			logger.Error("creating rejection notification failed", "err", err)
		}
	}

	logger.Info("risk evaluation complete", "score", result.Score, "action", result.Action.String(), "reason", result.Reason)
	return nil
}

func (eng *Engine) logger() *slog.Logger {
	if eng.Logger != nil {
		return eng.Logger
	}
	return slog.Default()
}
