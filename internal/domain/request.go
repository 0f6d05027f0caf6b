package domain

// DecideRequest represents the request to decide the next negotiation step.
// Required numeric fields are pointers so the transport can distinguish a
// missing field from a zero value before anything reaches the engine.
type DecideRequest struct {
	FloorPrice   *float64 `json:"floor_price"`
	ListedPrice  *float64 `json:"listed_price"`
	CurrentOffer *float64 `json:"current_offer"`
	Sentiment    string   `json:"sentiment,omitempty"`
	Intent       string   `json:"intent,omitempty"`
	SessionID    string   `json:"session_id"`
	History      []Turn   `json:"history,omitempty"`
}

// DecideResponse represents the decision returned to the orchestrator.
// DecisionMetadata is for the orchestrator's audit only; the orchestrator
// must not forward it, or any raw floor price value, to the phrasing layer.
type DecideResponse struct {
	DecisionID       string                 `json:"decision_id"`
	Action           Action                 `json:"action"`
	ResponseKey      string                 `json:"response_key"`
	CounterPrice     *float64               `json:"counter_price,omitempty"`
	PolicyType       PolicyType             `json:"policy_type"`
	PolicyVersion    string                 `json:"policy_version"`
	DecisionMetadata map[string]interface{} `json:"decision_metadata,omitempty"`
}

// DecisionListItem represents one decision in a session audit listing.
type DecisionListItem struct {
	DecisionID    string   `json:"decision_id"`
	Action        Action   `json:"action"`
	ResponseKey   string   `json:"response_key"`
	CounterPrice  *float64 `json:"counter_price,omitempty"`
	CurrentOffer  float64  `json:"current_offer"`
	PolicyVersion string   `json:"policy_version"`
	CreatedAt     int64    `json:"created_at"`
}

// SessionDecisionsResponse represents the audit trail for a session.
type SessionDecisionsResponse struct {
	SessionID string             `json:"session_id"`
	Decisions []DecisionListItem `json:"decisions"`
}
