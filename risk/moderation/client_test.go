package moderation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/payday-community/riskengine/risk"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// test server which picks the suggestion based on markers in the submitted
// text or image URL
func newMockModerationServer(t *testing.T) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") == "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var req moderationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		subject := req.Text + req.ImageURL

		switch {
		case strings.Contains(subject, "fail"):
			w.WriteHeader(http.StatusInternalServerError)
		case strings.Contains(subject, "garbage"):
			w.Write([]byte("{not json"))
		case strings.Contains(subject, "weird"):
			json.NewEncoder(w).Encode(moderationResponse{Suggestion: "maybe"})
		case strings.Contains(subject, "block"):
			json.NewEncoder(w).Encode(moderationResponse{Suggestion: "block", Labels: []string{"porn", "ad"}})
		case strings.Contains(subject, "review"):
			json.NewEncoder(w).Encode(moderationResponse{Suggestion: "review"})
		default:
			json.NewEncoder(w).Encode(moderationResponse{Suggestion: "pass"})
		}
	}))
}

func testClient(srv *httptest.Server) *Client {
	// plain http.Client so that 5xx fixtures are not retried
	return &Client{
		Client:  srv.Client(),
		Host:    srv.URL,
		APIKey:  "test-key",
		BizType: "payday_risk_check",
	}
}

func TestCheckTextMapping(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	ctx := context.Background()

	srv := newMockModerationServer(t)
	defer srv.Close()
	c := testClient(srv)

	verdict, err := c.CheckText(ctx, "perfectly fine text")
	require.NoError(err)
	assert.Equal(SuggestionPass, verdict.Suggestion)
	score, reason := verdict.ScoreText()
	assert.Equal(0, score)
	assert.Equal("", reason)

	verdict, err = c.CheckText(ctx, "please review this")
	require.NoError(err)
	score, reason = verdict.ScoreText()
	assert.Equal(risk.ScoreReview, score)
	assert.Equal("文本需要人工审核", reason)

	verdict, err = c.CheckText(ctx, "block this")
	require.NoError(err)
	score, reason = verdict.ScoreText()
	assert.Equal(risk.ScoreBlock, score)
	assert.Equal("文本包含违规内容: porn, ad", reason)
}

func TestCheckTextFailures(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := newMockModerationServer(t)
	defer srv.Close()
	c := testClient(srv)

	_, err := c.CheckText(ctx, "fail please")
	assert.Error(err)

	_, err = c.CheckText(ctx, "garbage response")
	assert.Error(err)

	_, err = c.CheckText(ctx, "weird suggestion")
	assert.Error(err)
}

func TestClientDisabled(t *testing.T) {
	assert := assert.New(t)

	var nilClient *Client
	assert.True(nilClient.Disabled())
	assert.True(NewClient("", "", "", 0).Disabled())
	assert.True(NewClient("https://yu.example.com", "", "", 0).Disabled())
	assert.False(NewClient("https://yu.example.com", "secret", "biz", 10).Disabled())
}

func TestScoreImagesAggregation(t *testing.T) {
	assert := assert.New(t)
	ctx := context.Background()

	srv := newMockModerationServer(t)
	defer srv.Close()
	c := testClient(srv)

	// worst individual result wins
	score, reason := c.ScoreImages(ctx, []string{
		"https://cdn.example.com/clean.jpg",
		"https://cdn.example.com/review.jpg",
		"https://cdn.example.com/block.jpg",
	}, 2)
	assert.Equal(risk.ScoreBlock, score)
	assert.Equal("图片包含违规内容: porn, ad", reason)

	// a failing image abstains, the batch falls back to the next-worst
	score, reason = c.ScoreImages(ctx, []string{
		"https://cdn.example.com/clean.jpg",
		"https://cdn.example.com/review.jpg",
		"https://cdn.example.com/fail-block.jpg",
	}, 2)
	assert.Equal(risk.ScoreReview, score)
	assert.Equal("图片需要人工审核", reason)

	// empty batch abstains
	score, reason = c.ScoreImages(ctx, nil, 2)
	assert.Equal(0, score)
	assert.Equal("", reason)
}

func TestParseSuggestion(t *testing.T) {
	assert := assert.New(t)

	for _, raw := range []string{"pass", "review", "block"} {
		s, err := ParseSuggestion(raw)
		assert.NoError(err)
		assert.Equal(raw, s.String())
	}
	_, err := ParseSuggestion("PASS")
	assert.Error(err)
	_, err = ParseSuggestion("")
	assert.Error(err)
}
