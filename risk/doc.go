// Content risk evaluation engine for user-generated posts and comments.
//
// This package (`github.com/payday-community/riskengine/risk`) holds the shared value types for risk evaluation: the ternary action (approve/manual/reject), the persisted risk status lifecycle, and the score threshold policy. The engine combines several imperfect signal sources (local contact-info detection, sensitive-word matching, and a remote moderation API for text and images) into a single auditable verdict by taking the worst individual score.
//
// See `risk/engine` for the orchestrator, and `cmd/riskd` for a daemon built on these packages.
package risk
