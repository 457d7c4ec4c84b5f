// Client for the remote content moderation API (text and image).
//
// The remote service answers with a ternary suggestion (pass/review/block)
// plus zero or more taxonomy labels. Scoring and the fail-open degradation
// policy live in score.go; this file is only transport and decoding, so
// call failures surface as ordinary errors.
package moderation

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/time/rate"
)

// Suggestion is the remote service's raw ternary verdict.
type Suggestion string

const (
	SuggestionPass   Suggestion = "pass"
	SuggestionReview Suggestion = "review"
	SuggestionBlock  Suggestion = "block"
)

func (s Suggestion) String() string {
	return string(s)
}

func ParseSuggestion(raw string) (Suggestion, error) {
	switch Suggestion(raw) {
	case SuggestionPass, SuggestionReview, SuggestionBlock:
		return Suggestion(raw), nil
	}
	return "", fmt.Errorf("unknown moderation suggestion: %q", raw)
}

// Verdict is one successful moderation answer. It is transient: it exists
// only for the duration of a single signal call and is never persisted.
type Verdict struct {
	Suggestion Suggestion
	Labels     []string
}

type Client struct {
	Client  *http.Client
	Host    string
	APIKey  string
	BizType string
	Logger  *slog.Logger
	// optional limiter shared across all calls from this client
	Limiter *rate.Limiter
}

func NewClient(host, apiKey, bizType string, qps int) *Client {
	var limiter *rate.Limiter
	if qps > 0 {
		limiter = rate.NewLimiter(rate.Limit(qps), qps)
	}
	return &Client{
		Client:  robustHTTPClient(),
		Host:    host,
		APIKey:  apiKey,
		BizType: bizType,
		Logger:  slog.Default().With("system", "moderation"),
		Limiter: limiter,
	}
}

// Disabled reports whether the remote service is unconfigured. A disabled
// client abstains from every evaluation; it never blocks content.
func (c *Client) Disabled() bool {
	return c == nil || c.Host == "" || c.APIKey == ""
}

type moderationRequest struct {
	Text     string `json:"text,omitempty"`
	ImageURL string `json:"image_url,omitempty"`
	BizType  string `json:"biz_type,omitempty"`
}

type moderationResponse struct {
	Suggestion string   `json:"suggestion"`
	Labels     []string `json:"labels"`
}

// CheckText submits text to the remote moderation endpoint.
func (c *Client) CheckText(ctx context.Context, text string) (*Verdict, error) {
	start := time.Now()
	defer func() {
		textAPIDuration.Observe(time.Since(start).Seconds())
	}()
	return c.check(ctx, "/v1/text/moderation", moderationRequest{Text: text, BizType: c.BizType}, textAPICount)
}

// CheckImage submits a single image URL to the remote moderation endpoint.
func (c *Client) CheckImage(ctx context.Context, imageURL string) (*Verdict, error) {
	start := time.Now()
	defer func() {
		imageAPIDuration.Observe(time.Since(start).Seconds())
	}()
	return c.check(ctx, "/v1/image/moderation", moderationRequest{ImageURL: imageURL, BizType: c.BizType}, imageAPICount)
}

func (c *Client) check(ctx context.Context, path string, reqBody moderationRequest, counter *prometheus.CounterVec) (*Verdict, error) {
	if c.Limiter != nil {
		if err := c.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Host+path, bytes.NewBuffer(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.APIKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "riskengine/"+versioninfo.Short())

	res, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("moderation request failed: %w", err)
	}
	defer res.Body.Close()

	counter.WithLabelValues(fmt.Sprint(res.StatusCode)).Inc()
	if res.StatusCode != 200 {
		return nil, fmt.Errorf("moderation request failed statusCode=%d", res.StatusCode)
	}

	respBytes, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read moderation resp body: %w", err)
	}
	var respObj moderationResponse
	if err := json.Unmarshal(respBytes, &respObj); err != nil {
		return nil, fmt.Errorf("failed to parse moderation resp JSON: %w", err)
	}
	suggestion, err := ParseSuggestion(respObj.Suggestion)
	if err != nil {
		return nil, err
	}
	return &Verdict{
		Suggestion: suggestion,
		Labels:     respObj.Labels,
	}, nil
}
