package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"poker-tracker/internal/config"
	"poker-tracker/internal/domain"
	"poker-tracker/internal/notes"
)

// ProfileDirectory is the poker-profile surface the notes loader needs.
type ProfileDirectory interface {
	Exists(ctx context.Context, username string) (bool, error)
	Insert(ctx context.Context, profile domain.PokerProfile) error
}

// NotesLoader imports per-player note sheets into poker profiles.
// A username that already has a profile is left alone.
type NotesLoader struct {
	cfg    *config.Config
	store  ProfileDirectory
	logger zerolog.Logger
}

func NewNotesLoader(cfg *config.Config, store ProfileDirectory, logger zerolog.Logger) *NotesLoader {
	return &NotesLoader{cfg: cfg, store: store, logger: logger}
}

func (l *NotesLoader) Run(ctx context.Context) error {
	files, err := notes.ListSheetFiles(l.cfg.NotesDir)
	if err != nil {
		l.logger.Error().Err(err).Str("dir", l.cfg.NotesDir).Msg("notes directory not readable")
		return err
	}

	loaded, skipped := 0, 0
	for _, path := range files {
		sheet, err := notes.ReadSheet(path)
		if errors.Is(err, notes.ErrMissingColumns) {
			l.logger.Warn().Str("file", path).Msg("skipping note sheet, missing required columns")
			skipped++
			continue
		}
		if err != nil {
			l.logger.Warn().Err(err).Str("file", path).Msg("skipping unreadable note sheet")
			skipped++
			continue
		}

		exists, err := l.store.Exists(ctx, sheet.Username)
		if err != nil {
			l.logger.Warn().Err(err).Str("username", sheet.Username).Msg("existence check failed, skipping")
			skipped++
			continue
		}
		if exists {
			l.logger.Debug().Str("username", sheet.Username).Msg("profile already exists, skipping")
			skipped++
			continue
		}

		if err := l.store.Insert(ctx, domain.PokerProfile{
			Username: sheet.Username,
			UserID:   sheet.UserID,
			RawNotes: sheet.RawNotes,
		}); err != nil {
			l.logger.Warn().Err(err).Str("username", sheet.Username).Msg("failed to insert profile, skipping")
			skipped++
			continue
		}

		l.logger.Info().Str("username", sheet.Username).Msg("profile inserted")
		loaded++
	}

	l.logger.Info().
		Int("files", len(files)).
		Int("loaded", loaded).
		Int("skipped", skipped).
		Msg("note sheets processed")
	return nil
}
