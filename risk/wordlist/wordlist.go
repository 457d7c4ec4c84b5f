// Sensitive-word matching against an administrator-managed word list.
//
// Includes a source interface with store-backed, cached, and static
// implementations, plus an embedded fallback list used when the store is
// unreachable. Matching is plain lower-cased substring containment: the
// target content is primarily Chinese, so tokenization buys nothing here.
package wordlist

import (
	"context"
	"log/slog"
	"strings"

	"github.com/payday-community/riskengine/risk"
)

// SensitiveReason is the reason attached to any sensitive-word hit.
const SensitiveReason = "含违规内容"

// WordSource provides the active sensitive-word list. Implementations must
// be side-effect free and safe for concurrent use.
type WordSource interface {
	ActiveWords(ctx context.Context) ([]string, error)
}

// StaticSource is a fixed in-memory word list.
type StaticSource struct {
	Words []string
}

func (s StaticSource) ActiveWords(ctx context.Context) ([]string, error) {
	return s.Words, nil
}

// Matcher scans text for sensitive-word occurrences.
type Matcher struct {
	// Source may be nil, in which case only the embedded fallback list
	// is used.
	Source WordSource
	Logger *slog.Logger
}

// Match returns (risk.ScoreSensitiveWord, SensitiveReason) if the text
// contains any active sensitive word, first match wins. A source failure is
// non-fatal: the matcher degrades to the embedded fallback list rather than
// propagating the error, so a store outage can never abort an evaluation.
func (m *Matcher) Match(ctx context.Context, text string) (int, string) {
	text = strings.ToLower(strings.TrimSpace(text))
	if text == "" {
		return 0, ""
	}

	words := FallbackWords
	if m.Source != nil {
		loaded, err := m.Source.ActiveWords(ctx)
		if err != nil {
			m.logger().Warn("loading sensitive words failed, using fallback list", "err", err)
		} else {
			words = loaded
		}
	}

	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(text, strings.ToLower(word)) {
			return risk.ScoreSensitiveWord, SensitiveReason
		}
	}
	return 0, ""
}

func (m *Matcher) logger() *slog.Logger {
	if m.Logger != nil {
		return m.Logger
	}
	return slog.Default()
}
