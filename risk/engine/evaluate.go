package engine

import (
	"context"
	"slices"
	"strings"

	"github.com/payday-community/riskengine/risk"
	"github.com/payday-community/riskengine/risk/detector"
	"github.com/payday-community/riskengine/risk/wordlist"
)

// Evaluate combines all signal sources into one verdict for the given text
// and image URLs. Local detectors always run; the remote moderation service
// contributes only when configured. The combined score is the maximum of
// the individual signal scores (never an average), so any single strong
// signal dominates and adding signals can only raise the score. Reasons of
// every contributing signal are joined, deduplicated, in signal order.
//
// Evaluate never fails: remote errors abstain (fail-open) and store errors
// degrade to the embedded word list. Calling it twice with unchanged inputs
// and unchanged remote behavior yields an identical result.
func (eng *Engine) Evaluate(ctx context.Context, text string, images []string) risk.Result {
	maxScore := 0
	var reasons []string
	combine := func(score int, reason string) {
		if score > maxScore {
			maxScore = score
		}
		if reason != "" && !slices.Contains(reasons, reason) {
			reasons = append(reasons, reason)
		}
	}

	matcher := &wordlist.Matcher{Source: eng.Words, Logger: eng.Logger}
	combine(matcher.Match(ctx, text))
	combine(detector.DetectContact(text))

	if !eng.Moderation.Disabled() {
		mctx := ctx
		if eng.RemoteTimeout > 0 {
			var cancel context.CancelFunc
			mctx, cancel = context.WithTimeout(ctx, eng.RemoteTimeout)
			defer cancel()
		}

		verdict, err := eng.Moderation.CheckText(mctx, text)
		if err != nil {
			// fail-open: a broken moderation service must not be able
			// to reject all content
			eng.logger().Warn("text moderation failed, abstaining", "err", err)
			moderationDegradedCount.WithLabelValues("text").Inc()
		} else {
			combine(verdict.ScoreText())
		}

		if len(images) > 0 {
			combine(eng.Moderation.ScoreImages(mctx, images, eng.ImageConcurrency))
		}
	}

	return risk.Result{
		Score:  maxScore,
		Reason: strings.Join(reasons, "; "),
		Action: risk.ActionForScore(maxScore),
	}
}
