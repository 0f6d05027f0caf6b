// Package policy implements the negotiation decision engine: an ordered rule
// cascade over a single immutable negotiation context. The engine is a pure
// function with no internal state; everything it needs is reconstructed from
// the request on every call.
package policy

import (
	"github.com/hagglekit/strategy-engine/internal/domain"
)

// Version is the rule-set revision stamped on every decision, for audit and
// A/B comparison.
const Version = "2.0.0"

// Response keys consumed by the downstream phrasing layer. Symbolic tags
// only; they must never carry the floor price or any derived value.
const (
	KeyAcceptSentimentClose = "ACCEPT_SENTIMENT_CLOSE"
	KeyAcceptFinal          = "ACCEPT_FINAL"
	KeyRejectLowball        = "REJECT_LOWBALL"
	KeyStandardCounter      = "STANDARD_COUNTER"
	KeyFinalOfferCounter    = "FINAL_OFFER_COUNTER"
)

// Policy maps a negotiation context to a decision. Implementations must be
// pure: no I/O, no mutable state, identical input yields identical output.
type Policy interface {
	Decide(nc domain.NegotiationContext) domain.Decision
}

// Config holds every threshold the rule cascade depends on. Values are
// injected at construction so the engine stays side-effect-free and testable
// with varied policies; none of them are read from globals.
type Config struct {
	// SentimentAcceptRatio is the fraction of the floor price at which a
	// negative-sentiment offer is accepted to save the deal.
	SentimentAcceptRatio float64 `yaml:"sentiment_accept_ratio"`
	// LowballRatio is the fraction of the floor price below which the
	// engine rejects without countering.
	LowballRatio float64 `yaml:"lowball_ratio"`
	// OfferThreshold is the counterparty offer count at which the engine
	// switches to the steeper final-offer concession.
	OfferThreshold int `yaml:"offer_threshold"`
	// StandardConcession and FinalConcession are the fractions of the
	// anchor-to-offer gap the engine gives up in a counter.
	StandardConcession float64 `yaml:"standard_concession"`
	FinalConcession    float64 `yaml:"final_concession"`
	// PriceStep is the smallest quotable price unit. Counters are rounded
	// up to it, never down.
	PriceStep float64 `yaml:"price_step"`
}

// DefaultConfig returns the production thresholds.
func DefaultConfig() Config {
	return Config{
		SentimentAcceptRatio: 0.95,
		LowballRatio:         0.70,
		OfferThreshold:       3,
		StandardConcession:   0.50,
		FinalConcession:      0.75,
		PriceStep:            1.0,
	}
}

// rule is one guard/act pair in the cascade. eval returns nil when the guard
// does not match, so later rules get a chance.
type rule struct {
	name string
	eval func(in ruleInput) *domain.Decision
}

// ruleInput bundles the context with the history-derived state shared by all
// rules in one call.
type ruleInput struct {
	ctx    domain.NegotiationContext
	anchor float64
	offers int
}

// RulePolicy is the rule-based cascade. Rules are evaluated strictly in
// order; the first satisfied guard determines the outcome.
type RulePolicy struct {
	cfg   Config
	rules []rule
}

// NewRulePolicy builds the cascade from the given thresholds. The rule order
// itself is data here, not control flow, so a future revision can reorder or
// retune without touching Decide.
func NewRulePolicy(cfg Config) *RulePolicy {
	p := &RulePolicy{cfg: cfg}
	p.rules = []rule{
		{name: "sentiment_accept_on_negative", eval: p.sentimentAccept},
		{name: "offer_gte_floor", eval: p.floorAccept},
		{name: "offer_lt_lowball_threshold", eval: p.lowballReject},
		{name: "weighted_gap_counter", eval: p.counter},
	}
	return p
}

// Decide evaluates the cascade top to bottom and returns the first match.
func (p *RulePolicy) Decide(nc domain.NegotiationContext) domain.Decision {
	anchor, offers := ScanHistory(nc.History, nc.ListedPrice)
	in := ruleInput{ctx: nc, anchor: anchor, offers: offers}

	for _, r := range p.rules {
		if d := r.eval(in); d != nil {
			return *d
		}
	}

	// The counter rule is total, so the cascade cannot fall through.
	d := p.counterDecision(in)
	return d
}

// decision stamps the policy identity onto a rule outcome.
func (p *RulePolicy) decision(action domain.Action, key string, price *float64, md map[string]interface{}) *domain.Decision {
	return &domain.Decision{
		Action:        action,
		ResponseKey:   key,
		CounterPrice:  price,
		PolicyType:    domain.PolicyTypeRuleBased,
		PolicyVersion: Version,
		Metadata:      md,
	}
}

// sentimentAccept saves a near-floor deal when the counterparty is frustrated:
// a negative-sentiment offer at or above SentimentAcceptRatio of the floor is
// taken rather than risking the sale on another counter.
func (p *RulePolicy) sentimentAccept(in ruleInput) *domain.Decision {
	threshold := in.ctx.FloorPrice * p.cfg.SentimentAcceptRatio
	if in.ctx.Sentiment != domain.SentimentNegative || in.ctx.CurrentOffer < threshold {
		return nil
	}

	price := in.ctx.CurrentOffer
	return p.decision(domain.ActionAccept, KeyAcceptSentimentClose, &price, map[string]interface{}{
		"rule":            "sentiment_accept_on_negative",
		"floor_price":     in.ctx.FloorPrice,
		"current_offer":   in.ctx.CurrentOffer,
		"sentiment":       string(in.ctx.Sentiment),
		"threshold_ratio": p.cfg.SentimentAcceptRatio,
		"threshold_value": threshold,
	})
}

// floorAccept is the unconditional hard financial guarantee: any offer at or
// above the floor is accepted, regardless of sentiment, intent, or history.
func (p *RulePolicy) floorAccept(in ruleInput) *domain.Decision {
	if in.ctx.CurrentOffer < in.ctx.FloorPrice {
		return nil
	}

	price := in.ctx.CurrentOffer
	return p.decision(domain.ActionAccept, KeyAcceptFinal, &price, map[string]interface{}{
		"rule":          "offer_gte_floor",
		"floor_price":   in.ctx.FloorPrice,
		"current_offer": in.ctx.CurrentOffer,
	})
}

// lowballReject ends engagement below LowballRatio of the floor. No counter
// price is offered on this path.
func (p *RulePolicy) lowballReject(in ruleInput) *domain.Decision {
	threshold := in.ctx.FloorPrice * p.cfg.LowballRatio
	if in.ctx.CurrentOffer >= threshold {
		return nil
	}

	return p.decision(domain.ActionReject, KeyRejectLowball, nil, map[string]interface{}{
		"rule":            "offer_lt_lowball_threshold",
		"floor_price":     in.ctx.FloorPrice,
		"current_offer":   in.ctx.CurrentOffer,
		"threshold_ratio": p.cfg.LowballRatio,
		"threshold_value": threshold,
	})
}

// counter is the cascade's terminal rule; it always matches.
func (p *RulePolicy) counter(in ruleInput) *domain.Decision {
	d := p.counterDecision(in)
	return &d
}
