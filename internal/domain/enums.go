// Package domain defines the core domain models for the strategy engine.
package domain

import "strings"

// Action represents the negotiation action the engine instructs the caller to take.
type Action string

const (
	ActionAccept  Action = "ACCEPT"
	ActionReject  Action = "REJECT"
	ActionCounter Action = "COUNTER"
)

// Sentiment represents the counterparty sentiment signal attached to a request.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentNegative Sentiment = "negative"
	SentimentUnknown  Sentiment = "unknown"
)

// ParseSentiment normalizes a wire sentiment value. Anything unrecognized,
// including the empty string, maps to SentimentUnknown.
func ParseSentiment(s string) Sentiment {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "positive":
		return SentimentPositive
	case "neutral":
		return SentimentNeutral
	case "negative":
		return SentimentNegative
	}
	return SentimentUnknown
}

// Role identifies which side of the negotiation produced a turn.
type Role string

const (
	RoleCounterparty Role = "counterparty"
	RoleEngine       Role = "engine"
)

// ParseRole normalizes a wire role value. Matching is case-insensitive and
// accepts the aliases callers actually send: "assistant" and "bot" for the
// engine side, "user" and "customer" for the counterparty side.
func ParseRole(s string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "counterparty", "user", "customer":
		return RoleCounterparty, true
	case "engine", "assistant", "bot":
		return RoleEngine, true
	}
	return "", false
}

// PolicyType identifies the kind of policy that produced a decision.
type PolicyType string

const (
	PolicyTypeRuleBased PolicyType = "rule-based"
)
