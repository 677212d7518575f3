package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"poker-tracker/internal/config"
	"poker-tracker/internal/domain"
)

type fakeProfileDirectory struct {
	existing map[string]bool
	inserted []domain.PokerProfile
}

func (d *fakeProfileDirectory) Exists(ctx context.Context, username string) (bool, error) {
	return d.existing[username], nil
}

func (d *fakeProfileDirectory) Insert(ctx context.Context, profile domain.PokerProfile) error {
	d.inserted = append(d.inserted, profile)
	return nil
}

func writeNoteSheet(t *testing.T, path string, rows [][]any) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cellRef, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cellRef, &row))
	}
	require.NoError(t, f.SaveAs(path))
}

func TestNotesLoader(t *testing.T) {
	dir := t.TempDir()
	writeNoteSheet(t, filepath.Join(dir, "Fresh.xlsx"), [][]any{
		{"opponent_username", "message_text"},
		{"u-1", "never folds top pair"},
	})
	writeNoteSheet(t, filepath.Join(dir, "Known.xlsx"), [][]any{
		{"opponent_username", "message_text"},
		{"u-2", "already seen"},
	})
	writeNoteSheet(t, filepath.Join(dir, "Broken.xlsx"), [][]any{
		{"wrong_column", "message_text"},
		{"u-3", "unusable"},
	})

	store := &fakeProfileDirectory{existing: map[string]bool{"Known": true}}
	loader := NewNotesLoader(&config.Config{NotesDir: dir}, store, zerolog.Nop())

	require.NoError(t, loader.Run(context.Background()))

	require.Len(t, store.inserted, 1)
	assert.Equal(t, "Fresh", store.inserted[0].Username)
	assert.Equal(t, "u-1", store.inserted[0].UserID)
	assert.Equal(t, "never folds top pair", store.inserted[0].RawNotes)
}

func TestNotesLoaderMissingDirFails(t *testing.T) {
	store := &fakeProfileDirectory{}
	loader := NewNotesLoader(&config.Config{NotesDir: filepath.Join(t.TempDir(), "absent")}, store, zerolog.Nop())

	assert.Error(t, loader.Run(context.Background()))
	assert.Empty(t, store.inserted)
}
