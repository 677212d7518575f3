package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/rs/zerolog"

	"poker-tracker/internal/config"
	"poker-tracker/internal/constants"
	"poker-tracker/internal/domain"
	"poker-tracker/internal/tabular"
)

// PlayerStore is the persistence surface the uploader drives.
type PlayerStore interface {
	BeginBatch(ctx context.Context) (StatsBatch, error)
}

// StatsBatch is one open upload window. Records applied to it become
// durable together on Commit.
type StatsBatch interface {
	Apply(ctx context.Context, rec domain.DerivedStats) (domain.UpsertOutcome, error)
	Commit() error
	Rollback() error
}

// UploadSummary is what one upload run actually did.
type UploadSummary struct {
	Processed       int
	Failed          int
	ProfilesCreated int
	AliasesInserted int
	Snapshots       int
	Commits         int
}

// Uploader is the identity-resolution and upsert stage. It consumes the
// derived stats file in input order, in committed windows, and never
// lets one bad record stop the run.
type Uploader struct {
	cfg    *config.Config
	store  PlayerStore
	logger zerolog.Logger
}

func NewUploader(cfg *config.Config, store PlayerStore, logger zerolog.Logger) *Uploader {
	return &Uploader{cfg: cfg, store: store, logger: logger}
}

func (u *Uploader) Run(ctx context.Context) error {
	records, dropped, err := tabular.ReadDerivedFile(u.cfg.CleanStatsPath)
	if errors.Is(err, fs.ErrNotExist) {
		u.logger.Error().Str("path", u.cfg.CleanStatsPath).Msg("derived stats file not found")
		return fmt.Errorf("derived stats file not found: %s", u.cfg.CleanStatsPath)
	}
	if errors.Is(err, tabular.ErrMissingColumn) {
		u.logger.Warn().Err(err).Str("path", u.cfg.CleanStatsPath).Msg("derived stats file skipped")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read derived stats: %w", err)
	}
	if dropped > 0 {
		u.logger.Warn().Int("dropped", dropped).Msg("rows without username dropped")
	}

	summary, err := u.Process(ctx, records, u.cfg.UploadResumeOffset, u.cfg.UploadBatchSize, u.cfg.UploadBatchDelay)
	u.logger.Info().
		Int("processed", summary.Processed).
		Int("failed", summary.Failed).
		Int("profiles_created", summary.ProfilesCreated).
		Int("aliases_inserted", summary.AliasesInserted).
		Int("snapshots", summary.Snapshots).
		Int("commits", summary.Commits).
		Msg("upload finished")
	return err
}

// Process uploads records[offset:] in committed windows of batchSize,
// throttling between windows. Records are handled strictly in input
// order, so resuming with the offset of the last committed window
// deterministically continues where the previous run stopped.
//
// A record that fails is logged with its username, counted, and
// skipped; it never aborts the window or the run.
func (u *Uploader) Process(ctx context.Context, records []domain.DerivedStats, offset, batchSize int, delay time.Duration) (UploadSummary, error) {
	var summary UploadSummary

	if batchSize <= 0 {
		batchSize = constants.UploadBatchSize
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(records) {
		u.logger.Info().Int("offset", offset).Int("records", len(records)).Msg("nothing to upload")
		return summary, nil
	}

	pending := records[offset:]
	for start := 0; start < len(pending); start += batchSize {
		end := min(start+batchSize, len(pending))

		batch, err := u.store.BeginBatch(ctx)
		if err != nil {
			return summary, fmt.Errorf("failed to open batch: %w", err)
		}

		for _, rec := range pending[start:end] {
			summary.Processed++
			out, err := batch.Apply(ctx, rec)
			if err != nil {
				summary.Failed++
				u.logger.Warn().Err(err).Str("username", rec.Username).Msg("record skipped")
				continue
			}
			if out.ProfileCreated {
				summary.ProfilesCreated++
			}
			if out.AliasInserted {
				summary.AliasesInserted++
			}
			summary.Snapshots++
		}

		if err := batch.Commit(); err != nil {
			return summary, fmt.Errorf("failed to commit batch: %w", err)
		}
		summary.Commits++

		u.logger.Info().
			Int("committed", offset+end).
			Int("total", len(records)).
			Msg("batch committed")

		if end < len(pending) && delay > 0 {
			time.Sleep(delay)
		}
	}

	return summary, nil
}
