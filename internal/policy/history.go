package policy

import "github.com/hagglekit/strategy-engine/internal/domain"

// ScanHistory derives the engine's own last quoted price and the number of
// counterparty offers made so far, including the offer under evaluation in
// the current call (the history never contains that offer itself).
//
// The anchor scan walks newest to oldest; the first engine turn carrying a
// price wins. With no such turn the anchor falls back to the listed price,
// the negotiation's opening position. Turns with unrecognized roles are
// ignored, and the scan never fails.
func ScanHistory(history []domain.Turn, listedPrice float64) (lastEnginePrice float64, offerCount int) {
	lastEnginePrice = listedPrice

	anchorFound := false
	for i := len(history) - 1; i >= 0; i-- {
		role, ok := domain.ParseRole(history[i].Role)
		if !ok {
			continue
		}

		switch role {
		case domain.RoleEngine:
			if !anchorFound && history[i].Price != nil {
				lastEnginePrice = *history[i].Price
				anchorFound = true
			}
		case domain.RoleCounterparty:
			offerCount++
		}
	}

	// Plus one for the current call's offer.
	return lastEnginePrice, offerCount + 1
}
