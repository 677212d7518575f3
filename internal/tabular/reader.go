// Package tabular is the delimited-file boundary of the pipeline. It
// validates headers up front, decodes rows into typed records, and
// reports best-effort coercions as diagnostics instead of failing the
// run on dirty data.
package tabular

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"poker-tracker/internal/domain"
)

// ErrMissingColumn marks an input whose header lacks a required column.
// The whole file is rejected; nothing is decoded.
var ErrMissingColumn = errors.New("required column missing")

// The raw tracker export labels the username column with a capital U.
const rawUsernameColumn = "Username"

const derivedUsernameColumn = "username"

// Diagnostic records one best-effort coercion applied while decoding:
// a counter cell that was present but not numeric and was treated as 0.
type Diagnostic struct {
	Line   int
	Column string
	Value  string
}

// DecodedRow is one accepted raw counter row plus whatever coercions
// were applied to it.
type DecodedRow struct {
	Record      domain.RawCounterRecord
	Diagnostics []Diagnostic
}

var counterColumns = []struct {
	name string
	set  func(*domain.RawCounterRecord, int)
}{
	{"hands_vpip", func(r *domain.RawCounterRecord, v int) { r.HandsVPIP = v }},
	{"hands_vpip_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsVPIPOpportunity = v }},
	{"hands_pfr", func(r *domain.RawCounterRecord, v int) { r.HandsPFR = v }},
	{"hands_pfr_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsPFROpportunity = v }},
	{"hands_three_bet", func(r *domain.RawCounterRecord, v int) { r.HandsThreeBet = v }},
	{"hands_three_bet_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsThreeBetOpportunity = v }},
	{"hands_folded_three_bet", func(r *domain.RawCounterRecord, v int) { r.HandsFoldedThreeBet = v }},
	{"hands_three_bet_fold_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsThreeBetFoldOpportunity = v }},
	{"hands_steal_attempt", func(r *domain.RawCounterRecord, v int) { r.HandsStealAttempt = v }},
	{"hands_steal_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsStealOpportunity = v }},
	{"hands_check_n_raise", func(r *domain.RawCounterRecord, v int) { r.HandsCheckRaise = v }},
	{"hands_check_n_raise_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsCheckRaiseOpportunity = v }},
	{"hands_cbet_success", func(r *domain.RawCounterRecord, v int) { r.HandsCbetSuccess = v }},
	{"hands_cbet_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsCbetOpportunity = v }},
	{"hands_folded_to_cbet", func(r *domain.RawCounterRecord, v int) { r.HandsFoldedToCbet = v }},
	{"hands_fold_to_cbet_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsFoldToCbetOpportunity = v }},
	{"hands_fold", func(r *domain.RawCounterRecord, v int) { r.HandsFold = v }},
	{"hands_fold_opportunity", func(r *domain.RawCounterRecord, v int) { r.HandsFoldOpportunity = v }},
	{"hands_wtsd", func(r *domain.RawCounterRecord, v int) { r.HandsWTSD = v }},
	{"hands_flop_seen", func(r *domain.RawCounterRecord, v int) { r.HandsFlopSeen = v }},
	{"hands_won_at_showdown", func(r *domain.RawCounterRecord, v int) { r.HandsWonAtShowdown = v }},
}

// ReadCounters decodes a raw counter export. Rows with an empty or
// whitespace-only username are dropped; the dropped count is returned.
// Counter columns the export does not carry decode as 0, and non-numeric
// counter cells decode as 0 with a diagnostic attached to the row.
func ReadCounters(r io.Reader) ([]DecodedRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx := headerIndex(header)
	if _, ok := idx[rawUsernameColumn]; !ok {
		return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, rawUsernameColumn)
	}

	var rows []DecodedRow
	dropped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		username := strings.TrimSpace(cell(row, idx, rawUsernameColumn))
		if username == "" {
			dropped++
			continue
		}

		decoded := DecodedRow{Record: domain.RawCounterRecord{Username: username}}
		for _, col := range counterColumns {
			raw := strings.TrimSpace(cell(row, idx, col.name))
			if raw == "" {
				continue
			}
			v, err := strconv.Atoi(raw)
			if err != nil {
				decoded.Diagnostics = append(decoded.Diagnostics, Diagnostic{
					Line:   line,
					Column: col.name,
					Value:  raw,
				})
				continue
			}
			col.set(&decoded.Record, v)
		}
		rows = append(rows, decoded)
	}

	return rows, dropped, nil
}

// ReadCounterFile is ReadCounters over a file on disk.
func ReadCounterFile(path string) ([]DecodedRow, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return ReadCounters(f)
}

// ReadDerived decodes a derived stats file back into stat lines, for
// the upload stage. The header must carry the username column and the
// full metric set. Empty metric cells decode as undefined.
func ReadDerived(r io.Reader) ([]domain.DerivedStats, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read header: %w", err)
	}

	idx := headerIndex(header)
	required := append([]string{derivedUsernameColumn}, domain.MetricColumns...)
	for _, col := range required {
		if _, ok := idx[col]; !ok {
			return nil, 0, fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}

	var records []domain.DerivedStats
	dropped := 0
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("failed to read line %d: %w", line, err)
		}

		username := strings.TrimSpace(cell(row, idx, derivedUsernameColumn))
		if username == "" {
			dropped++
			continue
		}

		rec := domain.DerivedStats{Username: username}
		metrics := []*domain.Metric{
			&rec.VPIP, &rec.PFR, &rec.ThreeBet, &rec.FoldToThreeBet,
			&rec.Steal, &rec.CheckRaise, &rec.Cbet, &rec.FoldToCbet,
			&rec.Fold, &rec.WTSD, &rec.WSD,
		}
		for i, col := range domain.MetricColumns {
			raw := strings.TrimSpace(cell(row, idx, col))
			if raw == "" {
				continue
			}
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				*metrics[i] = domain.Metric{Value: v, Valid: true}
			}
		}
		records = append(records, rec)
	}

	return records, dropped, nil
}

// ReadDerivedFile is ReadDerived over a file on disk.
func ReadDerivedFile(path string) ([]domain.DerivedStats, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close()
	return ReadDerived(f)
}

func headerIndex(header []string) map[string]int {
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[strings.TrimSpace(name)] = i
	}
	return idx
}

func cell(row []string, idx map[string]int, column string) string {
	i, ok := idx[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}
