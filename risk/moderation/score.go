package moderation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/payday-community/riskengine/risk"

	"golang.org/x/sync/errgroup"
)

const (
	reasonTextReview  = "文本需要人工审核"
	reasonImageReview = "图片需要人工审核"
	textBlockPrefix   = "文本包含违规内容: "
	imageBlockPrefix  = "图片包含违规内容: "
)

// ScoreText maps a text verdict to a local risk score and reason:
// pass -> 0, review -> risk.ScoreReview, block -> risk.ScoreBlock with the
// taxonomy labels joined into the reason.
func (v *Verdict) ScoreText() (int, string) {
	return v.score(reasonTextReview, textBlockPrefix)
}

// ScoreImage is the per-image equivalent of ScoreText.
func (v *Verdict) ScoreImage() (int, string) {
	return v.score(reasonImageReview, imageBlockPrefix)
}

func (v *Verdict) score(reviewReason, blockPrefix string) (int, string) {
	switch v.Suggestion {
	case SuggestionBlock:
		return risk.ScoreBlock, blockPrefix + strings.Join(v.Labels, ", ")
	case SuggestionReview:
		return risk.ScoreReview, reviewReason
	default:
		return 0, ""
	}
}

type imageScore struct {
	score  int
	reason string
}

// ScoreImages evaluates every URL independently with bounded concurrency
// and reduces to the worst (maximum) individual score; ties keep the
// first-seen reason. A failing image call abstains rather than failing the
// batch, so this never returns an error: an unreachable moderation service
// degrades to (0, "").
func (c *Client) ScoreImages(ctx context.Context, urls []string, maxConcurrent int) (int, string) {
	if len(urls) == 0 {
		return 0, ""
	}
	if maxConcurrent <= 0 {
		maxConcurrent = 4
	}

	results := make([]imageScore, len(urls))

	var eg errgroup.Group
	eg.SetLimit(maxConcurrent)
	for i, url := range urls {
		eg.Go(func() error {
			verdict, err := c.CheckImage(ctx, url)
			if err != nil {
				// single image failure does not affect the batch
				c.logger().Warn("image moderation failed, skipping", "url", url, "err", err)
				return nil
			}
			score, reason := verdict.ScoreImage()
			results[i] = imageScore{score: score, reason: reason}
			return nil
		})
	}
	// workers never return errors
	_ = eg.Wait()

	maxScore := 0
	worstReason := ""
	for _, res := range results {
		if res.score > maxScore {
			maxScore = res.score
			worstReason = res.reason
		}
	}
	return maxScore, worstReason
}

func (c *Client) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
