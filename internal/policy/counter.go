package policy

import (
	"math"

	"github.com/hagglekit/strategy-engine/internal/domain"
)

// counterDecision computes the engine's next quote. The concession is a
// fraction of the gap between the anchor (the engine's last quoted price)
// and the current offer; negotiation fatigue past OfferThreshold switches to
// the steeper final-offer concession with its own response key.
func (p *RulePolicy) counterDecision(in ruleInput) domain.Decision {
	anchor := in.anchor
	gap := anchor - in.ctx.CurrentOffer

	factor := p.cfg.StandardConcession
	key := KeyStandardCounter
	ruleName := "weighted_gap_counter"
	if in.offers >= p.cfg.OfferThreshold {
		factor = p.cfg.FinalConcession
		key = KeyFinalOfferCounter
		ruleName = "final_offer_counter"
	}

	raw := anchor - gap*factor
	price, clamps := clampCounter(raw, in.ctx.FloorPrice, anchor, in.ctx.ListedPrice, p.cfg.PriceStep)

	md := map[string]interface{}{
		"rule":              ruleName,
		"floor_price":       in.ctx.FloorPrice,
		"current_offer":     in.ctx.CurrentOffer,
		"anchor":            anchor,
		"gap":               gap,
		"concession_factor": factor,
		"offer_count":       in.offers,
		"raw_counter":       raw,
		"counter_price":     price,
	}
	if len(clamps) > 0 {
		md["clamps_applied"] = clamps
	}

	d := p.decision(domain.ActionCounter, key, &price, md)
	return *d
}

// clampCounter applies the safety corrections in order: raise to the floor,
// round up to the smallest quotable unit, then the ratchet (never above the
// anchor) and the ceiling (never above the listed price). It is total over
// any numeric input and reports each correction by name instead of failing.
func clampCounter(raw, floor, anchor, listed, step float64) (float64, []string) {
	var applied []string
	price := raw

	if price < floor {
		price = floor
		applied = append(applied, "floor")
	}

	if step > 0 {
		rounded := math.Ceil(price/step) * step
		if rounded > price {
			applied = append(applied, "step")
		}
		price = rounded
	}

	if price > anchor {
		price = anchor
		applied = append(applied, "ratchet")
	}
	if price > listed {
		price = listed
		applied = append(applied, "ceiling")
	}

	return price, applied
}
