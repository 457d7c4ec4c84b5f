package wordlist

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/payday-community/riskengine/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingSource struct{}

func (failingSource) ActiveWords(ctx context.Context) ([]string, error) {
	return nil, errors.New("connection refused")
}

type countingSource struct {
	words []string
	calls int
}

func (s *countingSource) ActiveWords(ctx context.Context) ([]string, error) {
	s.calls++
	return s.words, nil
}

func TestMatcherBasics(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	m := &Matcher{Source: StaticSource{Words: []string{"赌博", "spamword"}}}

	fixtures := []struct {
		text string
		hit  bool
	}{
		{hit: false, text: ""},
		{hit: false, text: "   "},
		{hit: false, text: "今天发工资了"},
		{hit: true, text: "线上赌博平台"},
		{hit: true, text: "check out SPAMWORD now"},
	}

	for _, fix := range fixtures {
		score, reason := m.Match(ctx, fix.text)
		if fix.hit {
			assert.Equal(risk.ScoreSensitiveWord, score, "text=%q", fix.text)
			assert.Equal(SensitiveReason, reason)
		} else {
			assert.Equal(0, score, "text=%q", fix.text)
			assert.Equal("", reason)
		}
	}
}

func TestMatcherSourceFailureFallsBack(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	m := &Matcher{Source: failingSource{}}

	// "赌博" is on the embedded fallback list
	score, reason := m.Match(ctx, "线上赌博平台")
	assert.Equal(risk.ScoreSensitiveWord, score)
	assert.Equal(SensitiveReason, reason)

	score, reason = m.Match(ctx, "完全正常的内容")
	assert.Equal(0, score)
	assert.Equal("", reason)
}

func TestMatcherNilSourceUsesFallback(t *testing.T) {
	assert := assert.New(t)

	m := &Matcher{}
	score, _ := m.Match(context.Background(), "这里卖假发票")
	assert.Equal(risk.ScoreSensitiveWord, score)
}

func TestCachedSource(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	inner := &countingSource{words: []string{"one", "two"}}
	src, err := NewCachedSource(inner, "", time.Minute)
	require.NoError(err)

	words, err := src.ActiveWords(ctx)
	require.NoError(err)
	assert.Equal([]string{"one", "two"}, words)
	assert.Equal(1, inner.calls)

	// second read served from cache
	words, err = src.ActiveWords(ctx)
	require.NoError(err)
	assert.Equal([]string{"one", "two"}, words)
	assert.Equal(1, inner.calls)

	// purge forces a reload
	require.NoError(src.Purge(ctx))
	_, err = src.ActiveWords(ctx)
	require.NoError(err)
	assert.Equal(2, inner.calls)
}
