package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"poker-tracker/internal/domain"
)

func TestPct(t *testing.T) {
	tests := []struct {
		name        string
		numerator   int
		denominator int
		wantValid   bool
		wantValue   float64
	}{
		{"zero over zero is undefined", 0, 0, false, 0},
		{"nonzero over zero is undefined", 7, 0, false, 0},
		{"zero over nonzero is 0%", 0, 42, true, 0},
		{"all opportunities taken is 100%", 42, 42, true, 100},
		{"simple fraction", 30, 100, true, 30},
		{"one third rounds to 33.33", 1, 3, true, 33.33},
		{"two thirds rounds to 66.67", 2, 3, true, 66.67},
		{"half tie rounds away from zero", 1, 32, true, 3.13},
		{"another tie away from zero", 3, 32, true, 9.38},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pct(tt.numerator, tt.denominator)
			assert.Equal(t, tt.wantValid, got.Valid)
			if tt.wantValid {
				assert.InDelta(t, tt.wantValue, got.Value, 1e-9)
			}
		})
	}
}

func TestDerive(t *testing.T) {
	raw := domain.RawCounterRecord{
		Username:             "Alice",
		HandsVPIP:            30,
		HandsVPIPOpportunity: 100,
		// PFR counters left at zero on purpose.
		HandsWTSD:          5,
		HandsFlopSeen:      20,
		HandsWonAtShowdown: 3,
	}

	got := Derive(raw)

	assert.Equal(t, "Alice", got.Username)
	assert.Equal(t, domain.Metric{Value: 30, Valid: true}, got.VPIP)
	assert.False(t, got.PFR.Valid, "no pfr opportunities means pfr is undefined, not 0")
	assert.Equal(t, domain.Metric{Value: 25, Valid: true}, got.WTSD)

	// WSD divides by the showdowns-seen counter, not an opportunity counter.
	assert.Equal(t, domain.Metric{Value: 60, Valid: true}, got.WSD)
}

func TestDeriveZeroRecordIsAllUndefined(t *testing.T) {
	got := Derive(domain.RawCounterRecord{Username: "Bob"})

	assert.Equal(t, "Bob", got.Username)
	for i, m := range got.Metrics() {
		assert.False(t, m.Valid, "metric %s should be undefined", domain.MetricColumns[i])
	}
}

func TestMetricOrZero(t *testing.T) {
	assert.Equal(t, 0.0, domain.Metric{}.OrZero())
	assert.Equal(t, 33.33, domain.Metric{Value: 33.33, Valid: true}.OrZero())
}
