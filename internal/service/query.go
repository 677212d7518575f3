package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"poker-tracker/internal/constants"
	"poker-tracker/internal/domain"
)

// PlayerReader is the read-side player surface.
type PlayerReader interface {
	GetProfileByUsername(ctx context.Context, username string) (*domain.PlayerProfile, error)
	ListSnapshots(ctx context.Context, playerID string, limit int) ([]domain.PlayerStats, error)
}

// NotesReader is the read-side poker-profile surface.
type NotesReader interface {
	GetByUsername(ctx context.Context, username string) (*domain.PokerProfile, error)
}

// PlayerOverview bundles everything the API serves for one player.
// Notes is nil when no note sheet was ever loaded for the username.
type PlayerOverview struct {
	Profile   domain.PlayerProfile
	Snapshots []domain.PlayerStats
	Notes     *domain.PokerProfile
}

type QueryService struct {
	players PlayerReader
	notes   NotesReader
	logger  zerolog.Logger
}

func NewQueryService(players PlayerReader, notes NotesReader, logger zerolog.Logger) *QueryService {
	return &QueryService{players: players, notes: notes, logger: logger}
}

// PlayerOverview resolves the identity, then fetches snapshot history
// and notes together. Returns sql.ErrNoRows for unknown usernames.
func (s *QueryService) PlayerOverview(ctx context.Context, username string) (*PlayerOverview, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	profile, err := s.players.GetProfileByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	overview := &PlayerOverview{Profile: *profile}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snapshots, err := s.players.ListSnapshots(gctx, profile.ID, constants.SnapshotFetchLimit)
		if err != nil {
			return err
		}
		overview.Snapshots = snapshots
		return nil
	})
	g.Go(func() error {
		notes, err := s.notes.GetByUsername(gctx, username)
		if errors.Is(err, sql.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		overview.Notes = notes
		return nil
	})
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("username", username).Msg("failed to load player overview")
		return nil, err
	}

	return overview, nil
}
