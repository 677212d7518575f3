// Package stats turns raw action counters into the normalized
// percentage metrics the rest of the pipeline works with.
package stats

import (
	"math"

	"poker-tracker/internal/domain"
)

// Derive computes the fixed metric set for one player. It is pure and
// total: every record with a username produces a full stat line, and a
// zero opportunity count yields an undefined metric rather than 0%.
//
// WSD is intentionally chained: its denominator is the showdowns-seen
// counter, not a raw opportunity counter.
func Derive(raw domain.RawCounterRecord) domain.DerivedStats {
	return domain.DerivedStats{
		Username:       raw.Username,
		VPIP:           pct(raw.HandsVPIP, raw.HandsVPIPOpportunity),
		PFR:            pct(raw.HandsPFR, raw.HandsPFROpportunity),
		ThreeBet:       pct(raw.HandsThreeBet, raw.HandsThreeBetOpportunity),
		FoldToThreeBet: pct(raw.HandsFoldedThreeBet, raw.HandsThreeBetFoldOpportunity),
		Steal:          pct(raw.HandsStealAttempt, raw.HandsStealOpportunity),
		CheckRaise:     pct(raw.HandsCheckRaise, raw.HandsCheckRaiseOpportunity),
		Cbet:           pct(raw.HandsCbetSuccess, raw.HandsCbetOpportunity),
		FoldToCbet:     pct(raw.HandsFoldedToCbet, raw.HandsFoldToCbetOpportunity),
		Fold:           pct(raw.HandsFold, raw.HandsFoldOpportunity),
		WTSD:           pct(raw.HandsWTSD, raw.HandsFlopSeen),
		WSD:            pct(raw.HandsWonAtShowdown, raw.HandsWTSD),
	}
}

// pct is occurrences over opportunities as a percentage, rounded to two
// decimal places with ties away from zero.
func pct(numerator, denominator int) domain.Metric {
	if denominator == 0 {
		return domain.Metric{}
	}
	v := float64(numerator) / float64(denominator) * 100
	return domain.Metric{Value: math.Round(v*100) / 100, Valid: true}
}
