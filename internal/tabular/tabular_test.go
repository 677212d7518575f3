package tabular

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poker-tracker/internal/domain"
)

func TestReadCounters(t *testing.T) {
	input := strings.Join([]string{
		"Username,hands_vpip,hands_vpip_opportunity,hands_pfr,hands_pfr_opportunity",
		"Alice,30,100,12,90",
		"  Bob  ,5,abc,,10",
		"   ,1,2,3,4",
		"",
	}, "\n")

	rows, dropped, err := ReadCounters(strings.NewReader(input))
	require.NoError(t, err)

	assert.Equal(t, 1, dropped, "whitespace-only username row is dropped")
	require.Len(t, rows, 2)

	alice := rows[0]
	assert.Equal(t, "Alice", alice.Record.Username)
	assert.Equal(t, 30, alice.Record.HandsVPIP)
	assert.Equal(t, 100, alice.Record.HandsVPIPOpportunity)
	assert.Equal(t, 12, alice.Record.HandsPFR)
	assert.Empty(t, alice.Diagnostics)

	bob := rows[1]
	assert.Equal(t, "Bob", bob.Record.Username, "username is trimmed")
	assert.Equal(t, 0, bob.Record.HandsVPIPOpportunity, "non-numeric cell coerces to 0")
	assert.Equal(t, 0, bob.Record.HandsPFR, "empty cell coerces to 0 silently")
	require.Len(t, bob.Diagnostics, 1)
	assert.Equal(t, "hands_vpip_opportunity", bob.Diagnostics[0].Column)
	assert.Equal(t, "abc", bob.Diagnostics[0].Value)
	assert.Equal(t, 3, bob.Diagnostics[0].Line)
}

func TestReadCountersMissingColumnsDefaultToZero(t *testing.T) {
	input := "Username,hands_vpip\nAlice,7\n"

	rows, _, err := ReadCounters(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, 7, rows[0].Record.HandsVPIP)
	assert.Equal(t, 0, rows[0].Record.HandsVPIPOpportunity)
	assert.Empty(t, rows[0].Diagnostics, "absent columns are not diagnosed")
}

func TestReadCountersRejectsMissingUsernameColumn(t *testing.T) {
	input := "hands_vpip,hands_vpip_opportunity\n30,100\n"

	_, _, err := ReadCounters(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestWriteDerivedHeaderAndNullCells(t *testing.T) {
	records := []domain.DerivedStats{
		{
			Username: "Alice",
			VPIP:     domain.Metric{Value: 30, Valid: true},
			WSD:      domain.Metric{Value: 66.67, Valid: true},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDerived(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "username,vpip,pfr,three_bet,fold_to_three_bet,steal,check_raise,cbet,fold_to_cbet,fold,wtsd,wsd", lines[0])
	assert.Equal(t, "Alice,30.00,,,,,,,,,,66.67", lines[1])
}

func TestWriteDerivedEmptyInputStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteDerived(&buf, nil))
	assert.Equal(t, "username,vpip,pfr,three_bet,fold_to_three_bet,steal,check_raise,cbet,fold_to_cbet,fold,wtsd,wsd\n", buf.String())
}

func TestDerivedRoundTrip(t *testing.T) {
	records := []domain.DerivedStats{
		{
			Username:   "Alice",
			VPIP:       domain.Metric{Value: 30, Valid: true},
			PFR:        domain.Metric{Value: 0, Valid: true},
			CheckRaise: domain.Metric{Value: 12.5, Valid: true},
		},
		{Username: "Bob"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDerived(&buf, records))

	got, dropped, err := ReadDerived(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, dropped)
	assert.Equal(t, records, got)
}

func TestReadDerivedRejectsMissingMetricColumn(t *testing.T) {
	input := "username,vpip\nAlice,30.00\n"

	_, _, err := ReadDerived(strings.NewReader(input))
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestReadDerivedDistinguishesZeroFromUndefined(t *testing.T) {
	input := strings.Join([]string{
		"username,vpip,pfr,three_bet,fold_to_three_bet,steal,check_raise,cbet,fold_to_cbet,fold,wtsd,wsd",
		"Alice,0.00,,,,,,,,,,",
	}, "\n")

	records, _, err := ReadDerived(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.True(t, records[0].VPIP.Valid)
	assert.Equal(t, 0.0, records[0].VPIP.Value)
	assert.False(t, records[0].PFR.Valid)
}
