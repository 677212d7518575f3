package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"

	"poker-tracker/internal/domain"
)

type NotesRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewNotesRepository(sqlDB *sql.DB, logger zerolog.Logger) *NotesRepository {
	return &NotesRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *NotesRepository) Exists(ctx context.Context, username string) (bool, error) {
	var one int
	err := r.db.QueryRowContext(ctx,
		`SELECT 1 FROM poker_profiles WHERE username = $1`, username,
	).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check poker profile: %w", err)
	}
	return true, nil
}

func (r *NotesRepository) Insert(ctx context.Context, profile domain.PokerProfile) error {
	id := profile.ID
	if id == "" {
		var err error
		id, err = gonanoid.New()
		if err != nil {
			return fmt.Errorf("failed to generate nanoid: %w", err)
		}
	}

	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO poker_profiles (id, username, user_id, raw_notes) VALUES ($1, $2, $3, $4)`,
		id, profile.Username, profile.UserID, profile.RawNotes,
	); err != nil {
		return fmt.Errorf("failed to insert poker profile: %w", err)
	}
	return nil
}

// ListPending returns profiles that have notes but no summary yet,
// bounded by limit, in a stable order.
func (r *NotesRepository) ListPending(ctx context.Context, limit int) ([]domain.PokerProfile, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, username, user_id, raw_notes
		   FROM poker_profiles
		  WHERE profile_summary IS NULL AND raw_notes IS NOT NULL
		  ORDER BY username
		  LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending profiles: %w", err)
	}
	defer rows.Close()

	var result []domain.PokerProfile
	for rows.Next() {
		var p domain.PokerProfile
		if err := rows.Scan(&p.ID, &p.Username, &p.UserID, &p.RawNotes); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

// SaveEnrichment writes all three enrichment fields back in one statement.
func (r *NotesRepository) SaveEnrichment(ctx context.Context, id string, tags, summary, exploit []string) error {
	tagsJSON, err := json.Marshal(tags)
	if err != nil {
		return fmt.Errorf("failed to encode tags: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	exploitJSON, err := json.Marshal(exploit)
	if err != nil {
		return fmt.Errorf("failed to encode exploit strategy: %w", err)
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE poker_profiles
		    SET player_tags = $2, profile_summary = $3, exploit_strategy = $4
		  WHERE id = $1`,
		id, tagsJSON, summaryJSON, exploitJSON,
	); err != nil {
		return fmt.Errorf("failed to save enrichment: %w", err)
	}
	return nil
}

// GetByUsername loads one poker profile with its enrichment fields.
// Returns sql.ErrNoRows when absent.
func (r *NotesRepository) GetByUsername(ctx context.Context, username string) (*domain.PokerProfile, error) {
	var p domain.PokerProfile
	var rawNotes sql.NullString
	var tagsJSON, summaryJSON, exploitJSON []byte

	err := r.db.QueryRowContext(ctx,
		`SELECT id, username, user_id, raw_notes, player_tags, profile_summary, exploit_strategy
		   FROM poker_profiles
		  WHERE username = $1`,
		username,
	).Scan(&p.ID, &p.Username, &p.UserID, &rawNotes, &tagsJSON, &summaryJSON, &exploitJSON)
	if err != nil {
		return nil, err
	}

	p.RawNotes = rawNotes.String
	for _, field := range []struct {
		data []byte
		dst  *[]string
	}{
		{tagsJSON, &p.PlayerTags},
		{summaryJSON, &p.ProfileSummary},
		{exploitJSON, &p.ExploitStrategy},
	} {
		if len(field.data) == 0 {
			continue
		}
		if err := json.Unmarshal(field.data, field.dst); err != nil {
			return nil, fmt.Errorf("failed to decode enrichment field: %w", err)
		}
	}

	return &p, nil
}
