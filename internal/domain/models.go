package domain

import (
	"time"
)

// Metric is a percentage in [0,100] rounded to two decimal places.
// Valid is false when the metric is undefined, i.e. the player never had
// an opportunity for the decision (denominator was zero). An undefined
// metric is not the same thing as 0%.
type Metric struct {
	Value float64
	Valid bool
}

// OrZero flattens an undefined metric to 0 for storage paths that have
// no null representation (the stats snapshot table).
func (m Metric) OrZero() float64 {
	if !m.Valid {
		return 0
	}
	return m.Value
}

// RawCounterRecord is one player's action counters for a collection
// period, straight from the tracker export. Counters the export did not
// carry, or carried malformed, are zero.
type RawCounterRecord struct {
	Username string

	HandsVPIP                    int
	HandsVPIPOpportunity         int
	HandsPFR                     int
	HandsPFROpportunity          int
	HandsThreeBet                int
	HandsThreeBetOpportunity     int
	HandsFoldedThreeBet          int
	HandsThreeBetFoldOpportunity int
	HandsStealAttempt            int
	HandsStealOpportunity        int
	HandsCheckRaise              int
	HandsCheckRaiseOpportunity   int
	HandsCbetSuccess             int
	HandsCbetOpportunity         int
	HandsFoldedToCbet            int
	HandsFoldToCbetOpportunity   int
	HandsFold                    int
	HandsFoldOpportunity         int
	HandsWTSD                    int
	HandsFlopSeen                int
	HandsWonAtShowdown           int
}

// DerivedStats is the normalized per-player stat line produced from a
// RawCounterRecord. The metric set is fixed and ordered; see MetricColumns.
type DerivedStats struct {
	Username string

	VPIP           Metric
	PFR            Metric
	ThreeBet       Metric
	FoldToThreeBet Metric
	Steal          Metric
	CheckRaise     Metric
	Cbet           Metric
	FoldToCbet     Metric
	Fold           Metric
	WTSD           Metric
	WSD            Metric
}

// MetricColumns is the canonical column order for derived stat output
// and the stats snapshot table.
var MetricColumns = []string{
	"vpip",
	"pfr",
	"three_bet",
	"fold_to_three_bet",
	"steal",
	"check_raise",
	"cbet",
	"fold_to_cbet",
	"fold",
	"wtsd",
	"wsd",
}

// Metrics returns the metric values in MetricColumns order.
func (d DerivedStats) Metrics() []Metric {
	return []Metric{
		d.VPIP,
		d.PFR,
		d.ThreeBet,
		d.FoldToThreeBet,
		d.Steal,
		d.CheckRaise,
		d.Cbet,
		d.FoldToCbet,
		d.Fold,
		d.WTSD,
		d.WSD,
	}
}

// PlayerProfile is the durable player identity. Username is the natural
// key; one profile exists per distinct username.
type PlayerProfile struct {
	ID        string
	Username  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PlayerAlias binds a platform-qualified username to a profile.
// (player_id, platform, username) is unique.
type PlayerAlias struct {
	ID        string
	PlayerID  string
	Platform  string
	Username  string
	CreatedAt time.Time
}

// PlayerStats is one immutable stats snapshot taken at upload time.
// Undefined metrics are stored as 0. A player accumulates snapshots
// over time; rows are never updated.
type PlayerStats struct {
	ID             string
	PlayerID       string
	VPIP           float64
	PFR            float64
	ThreeBet       float64
	FoldToThreeBet float64
	Steal          float64
	CheckRaise     float64
	Cbet           float64
	FoldToCbet     float64
	Fold           float64
	WTSD           float64
	WSD            float64
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// UpsertOutcome reports what a single record's upsert actually did.
type UpsertOutcome struct {
	PlayerID       string
	ProfileCreated bool
	AliasInserted  bool
	SnapshotID     string
}

// PokerProfile holds a player's free-text table notes and the fields
// produced by the enrichment pass. Summary, tags and exploit strategy
// stay nil until enrichment has run for the row.
type PokerProfile struct {
	ID              string
	Username        string
	UserID          string
	RawNotes        string
	ProfileSummary  []string
	PlayerTags      []string
	ExploitStrategy []string
}
