package domain

import (
	"encoding/json"
	"time"
)

// Turn is one prior move in a negotiation session. Price is nil for turns
// that carried no numeric offer, such as a greeting.
type Turn struct {
	Role  string   `json:"role"`
	Price *float64 `json:"price,omitempty"`
}

// NegotiationContext is the full input to a single decide call. It is
// immutable for the duration of the call; History is read-only evidence used
// to reconstruct the engine's last quoted price and the offer count.
type NegotiationContext struct {
	FloorPrice   float64
	ListedPrice  float64
	CurrentOffer float64
	Sentiment    Sentiment
	Intent       string
	SessionID    string
	History      []Turn
}

// Decision is the engine's verdict for one offer. CounterPrice is set on
// ACCEPT (echoing the accepted offer) and COUNTER (the new quote), and nil
// on REJECT. Metadata stays server-side and must never be forwarded to the
// phrasing layer.
type Decision struct {
	Action        Action
	ResponseKey   string
	CounterPrice  *float64
	PolicyType    PolicyType
	PolicyVersion string
	Metadata      map[string]interface{}
}

// DecisionRecord is the persisted audit row for one decision.
type DecisionRecord struct {
	DecisionID    string
	SessionID     string
	Action        Action
	ResponseKey   string
	CounterPrice  *float64
	CurrentOffer  float64
	PolicyVersion string
	Metadata      json.RawMessage
	CreatedAt     time.Time
}
