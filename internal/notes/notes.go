// Package notes reads per-player note sheets exported from the table
// client. Each .xlsx file is named after the player and carries one
// chat message per row.
package notes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrMissingColumns marks a sheet that lacks the required columns.
// The file is skipped; it is not a fatal condition.
var ErrMissingColumns = errors.New("note sheet missing required columns")

const (
	userIDColumn  = "opponent_username"
	messageColumn = "message_text"
)

// Sheet is the usable content of one player's note file.
type Sheet struct {
	// Username comes from the file name, not the sheet content.
	Username string
	// UserID is the platform id, constant across the sheet; the first
	// non-empty value wins.
	UserID string
	// RawNotes is every non-empty message cell joined by newlines.
	RawNotes string
}

// ListSheetFiles returns the .xlsx files under dir, in lexical order.
func ListSheetFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read notes directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".xlsx") {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	return files, nil
}

// ReadSheet loads one note file. The first sheet must carry the
// opponent_username and message_text columns; otherwise ErrMissingColumns
// is returned.
func ReadSheet(path string) (*Sheet, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open note sheet: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("failed to read note sheet rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: %s, %s", ErrMissingColumns, userIDColumn, messageColumn)
	}

	userIDIdx, messageIdx := -1, -1
	for i, name := range rows[0] {
		switch strings.TrimSpace(name) {
		case userIDColumn:
			userIDIdx = i
		case messageColumn:
			messageIdx = i
		}
	}
	if userIDIdx < 0 || messageIdx < 0 {
		return nil, fmt.Errorf("%w: %s, %s", ErrMissingColumns, userIDColumn, messageColumn)
	}

	sheet := &Sheet{
		Username: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}

	var messages []string
	for _, row := range rows[1:] {
		if sheet.UserID == "" {
			if v := strings.TrimSpace(cellAt(row, userIDIdx)); v != "" {
				sheet.UserID = v
			}
		}
		if msg := strings.TrimSpace(cellAt(row, messageIdx)); msg != "" {
			messages = append(messages, msg)
		}
	}
	sheet.RawNotes = strings.Join(messages, "\n")

	return sheet, nil
}

func cellAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return row[i]
}
