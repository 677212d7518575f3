package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"poker-tracker/internal/constants"
	"poker-tracker/internal/domain"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// BeginBatch opens the transaction covering one upload window. Records
// applied through the returned batch become durable together on Commit.
func (r *PlayerRepository) BeginBatch(ctx context.Context) (*StatsBatch, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return &StatsBatch{tx: tx, logger: r.logger}, nil
}

// GetProfileByUsername looks up the identity for an exact username.
// Returns sql.ErrNoRows when the player is unknown.
func (r *PlayerRepository) GetProfileByUsername(ctx context.Context, username string) (*domain.PlayerProfile, error) {
	var p domain.PlayerProfile
	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, created_at, updated_at FROM player_profiles WHERE username = $1`,
		username,
	).Scan(&p.ID, &p.Username, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ListSnapshots returns a player's most recent stats snapshots,
// newest first.
func (r *PlayerRepository) ListSnapshots(ctx context.Context, playerID string, limit int) ([]domain.PlayerStats, error) {
	if limit <= 0 {
		limit = constants.SnapshotFetchLimit
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT id, player_id, vpip, pfr, three_bet, fold_to_three_bet,
		        steal, check_raise, cbet, fold_to_cbet, fold, wtsd, wsd,
		        created_at, updated_at
		   FROM player_stats
		  WHERE player_id = $1
		  ORDER BY created_at DESC
		  LIMIT $2`,
		playerID, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.PlayerStats
	for rows.Next() {
		var s domain.PlayerStats
		if err := rows.Scan(
			&s.ID, &s.PlayerID, &s.VPIP, &s.PFR, &s.ThreeBet, &s.FoldToThreeBet,
			&s.Steal, &s.CheckRaise, &s.Cbet, &s.FoldToCbet, &s.Fold, &s.WTSD, &s.WSD,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// StatsBatch is one open upload transaction.
type StatsBatch struct {
	tx     *sql.Tx
	logger zerolog.Logger
}

// Apply runs the full per-record sequence inside a savepoint: resolve
// the identity, ensure the alias, append a snapshot. On failure the
// record's writes are rolled back to the savepoint and the rest of the
// window stays usable.
func (b *StatsBatch) Apply(ctx context.Context, rec domain.DerivedStats) (domain.UpsertOutcome, error) {
	if _, err := b.tx.ExecContext(ctx, "SAVEPOINT upsert_record"); err != nil {
		return domain.UpsertOutcome{}, fmt.Errorf("failed to create savepoint: %w", err)
	}

	out, err := b.apply(ctx, rec)
	if err != nil {
		if _, rbErr := b.tx.ExecContext(ctx, "ROLLBACK TO SAVEPOINT upsert_record"); rbErr != nil {
			return domain.UpsertOutcome{}, errors.Join(err, fmt.Errorf("failed to roll back record: %w", rbErr))
		}
		return domain.UpsertOutcome{}, err
	}

	if _, err := b.tx.ExecContext(ctx, "RELEASE SAVEPOINT upsert_record"); err != nil {
		return domain.UpsertOutcome{}, fmt.Errorf("failed to release savepoint: %w", err)
	}
	return out, nil
}

func (b *StatsBatch) apply(ctx context.Context, rec domain.DerivedStats) (domain.UpsertOutcome, error) {
	var out domain.UpsertOutcome

	playerID, created, err := b.resolveProfile(ctx, rec.Username)
	if err != nil {
		return out, err
	}
	out.PlayerID = playerID
	out.ProfileCreated = created

	inserted, err := b.ensureAlias(ctx, playerID, constants.Platform, rec.Username)
	if err != nil {
		return out, err
	}
	out.AliasInserted = inserted

	snapshotID, err := b.appendSnapshot(ctx, playerID, rec)
	if err != nil {
		return out, err
	}
	out.SnapshotID = snapshotID

	return out, nil
}

// resolveProfile is a read-then-write lookup; safe only because the
// pipeline is the sole writer (single sequential process).
func (b *StatsBatch) resolveProfile(ctx context.Context, username string) (string, bool, error) {
	var id string
	err := b.tx.QueryRowContext(ctx,
		`SELECT id FROM player_profiles WHERE username = $1`, username,
	).Scan(&id)
	if err == nil {
		return id, false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return "", false, fmt.Errorf("failed to look up profile: %w", err)
	}

	id = uuid.New().String()
	now := time.Now().UTC()
	if _, err := b.tx.ExecContext(ctx,
		`INSERT INTO player_profiles (id, username, created_at, updated_at) VALUES ($1, $2, $3, $3)`,
		id, username, now,
	); err != nil {
		return "", false, fmt.Errorf("failed to create profile: %w", err)
	}
	return id, true, nil
}

func (b *StatsBatch) ensureAlias(ctx context.Context, playerID, platform, username string) (bool, error) {
	var exists int
	err := b.tx.QueryRowContext(ctx,
		`SELECT 1 FROM player_aliases WHERE player_id = $1 AND platform = $2 AND username = $3`,
		playerID, platform, username,
	).Scan(&exists)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return false, fmt.Errorf("failed to look up alias: %w", err)
	}

	if _, err := b.tx.ExecContext(ctx,
		`INSERT INTO player_aliases (id, player_id, platform, username, created_at) VALUES ($1, $2, $3, $4, $5)`,
		uuid.New().String(), playerID, platform, username, time.Now().UTC(),
	); err != nil {
		return false, fmt.Errorf("failed to insert alias: %w", err)
	}
	return true, nil
}

// appendSnapshot always inserts; snapshots are history, never updated.
func (b *StatsBatch) appendSnapshot(ctx context.Context, playerID string, rec domain.DerivedStats) (string, error) {
	id := uuid.New().String()
	now := time.Now().UTC()
	if _, err := b.tx.ExecContext(ctx,
		`INSERT INTO player_stats (
		     id, player_id, vpip, pfr, three_bet, fold_to_three_bet,
		     steal, check_raise, cbet, fold_to_cbet, fold, wtsd, wsd,
		     created_at, updated_at
		 ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $14)`,
		id, playerID,
		rec.VPIP.OrZero(), rec.PFR.OrZero(), rec.ThreeBet.OrZero(), rec.FoldToThreeBet.OrZero(),
		rec.Steal.OrZero(), rec.CheckRaise.OrZero(), rec.Cbet.OrZero(), rec.FoldToCbet.OrZero(),
		rec.Fold.OrZero(), rec.WTSD.OrZero(), rec.WSD.OrZero(),
		now,
	); err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}
	return id, nil
}

func (b *StatsBatch) Commit() error {
	return b.tx.Commit()
}

func (b *StatsBatch) Rollback() error {
	return b.tx.Rollback()
}
