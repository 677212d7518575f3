package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/rs/zerolog"

	"poker-tracker/internal/config"
	"poker-tracker/internal/domain"
	"poker-tracker/internal/stats"
	"poker-tracker/internal/tabular"
)

// Cleaner is the stat-derivation stage: raw counter export in,
// normalized stat file out.
type Cleaner struct {
	cfg    *config.Config
	logger zerolog.Logger
}

func NewCleaner(cfg *config.Config, logger zerolog.Logger) *Cleaner {
	return &Cleaner{cfg: cfg, logger: logger}
}

func (c *Cleaner) Run(ctx context.Context) error {
	c.logger.Info().Str("input", c.cfg.RawStatsPath).Msg("deriving player stats")

	rows, dropped, err := tabular.ReadCounterFile(c.cfg.RawStatsPath)
	if errors.Is(err, fs.ErrNotExist) {
		c.logger.Error().Str("path", c.cfg.RawStatsPath).Msg("input file not found")
		return fmt.Errorf("input file not found: %s", c.cfg.RawStatsPath)
	}
	if errors.Is(err, tabular.ErrMissingColumn) {
		// Malformed input skips the whole file; that is not a failed run.
		c.logger.Warn().Err(err).Str("path", c.cfg.RawStatsPath).Msg("input file skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read raw stats: %w", err)
	}

	coerced := 0
	derived := make([]domain.DerivedStats, 0, len(rows))
	for _, row := range rows {
		for _, d := range row.Diagnostics {
			coerced++
			c.logger.Warn().
				Str("username", row.Record.Username).
				Str("column", d.Column).
				Str("value", d.Value).
				Int("line", d.Line).
				Msg("counter cell not numeric, treated as 0")
		}
		derived = append(derived, stats.Derive(row.Record))
	}

	if err := tabular.WriteDerivedFile(c.cfg.CleanStatsPath, derived); err != nil {
		return fmt.Errorf("failed to write derived stats: %w", err)
	}

	c.logger.Info().
		Int("rows", len(derived)).
		Int("dropped", dropped).
		Int("coerced_cells", coerced).
		Str("output", c.cfg.CleanStatsPath).
		Msg("derived stats written")
	return nil
}
