package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"poker-tracker/internal/config"
	"poker-tracker/internal/domain"
)

type savedEnrichment struct {
	ID      string
	Tags    []string
	Summary []string
	Exploit []string
}

type fakeEnrichmentStore struct {
	pending []domain.PokerProfile
	saved   []savedEnrichment
	saveErr error
}

func (s *fakeEnrichmentStore) ListPending(ctx context.Context, limit int) ([]domain.PokerProfile, error) {
	if limit < len(s.pending) {
		return s.pending[:limit], nil
	}
	return s.pending, nil
}

func (s *fakeEnrichmentStore) SaveEnrichment(ctx context.Context, id string, tags, summary, exploit []string) error {
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saved = append(s.saved, savedEnrichment{ID: id, Tags: tags, Summary: summary, Exploit: exploit})
	return nil
}

type fakeGenerator struct {
	response string
	err      error
	prompts  []string
}

func (g *fakeGenerator) Complete(ctx context.Context, system, user string) (string, error) {
	g.prompts = append(g.prompts, user)
	return g.response, g.err
}

func writePrompt(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Analyze these notes:\n{raw_notes}\n"), 0o644))
	return path
}

func newTestEnricher(promptPath string, store EnrichmentStore, gen TextGenerator) *Enricher {
	return NewEnricher(&config.Config{PromptPath: promptPath, EnrichLimit: 10}, store, gen, zerolog.Nop())
}

const goodResponse = `TAGS: loose, passive
SUMMARY:
- Calls too wide preflop.
EXPLOIT STRATEGY:
- Value bet relentlessly.`

func TestEnricherWritesParsedProfile(t *testing.T) {
	store := &fakeEnrichmentStore{pending: []domain.PokerProfile{
		{ID: "p1", Username: "villain", RawNotes: "limps everything"},
	}}
	gen := &fakeGenerator{response: goodResponse}

	err := newTestEnricher(writePrompt(t), store, gen).Run(context.Background())
	require.NoError(t, err)

	require.Len(t, store.saved, 1)
	assert.Equal(t, "p1", store.saved[0].ID)
	assert.Equal(t, []string{"loose", "passive"}, store.saved[0].Tags)
	assert.Equal(t, []string{"Calls too wide preflop."}, store.saved[0].Summary)
	assert.Equal(t, []string{"Value bet relentlessly."}, store.saved[0].Exploit)

	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], "limps everything", "raw notes are substituted into the prompt")
	assert.NotContains(t, gen.prompts[0], "{raw_notes}")
}

func TestEnricherSkipsEmptyGeneration(t *testing.T) {
	store := &fakeEnrichmentStore{pending: []domain.PokerProfile{
		{ID: "p1", Username: "a", RawNotes: "n"},
		{ID: "p2", Username: "b", RawNotes: "n"},
	}}
	gen := &fakeGenerator{response: "TAGS: aggro"}

	err := newTestEnricher(writePrompt(t), store, gen).Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, store.saved, "incomplete output must not be written back")
}

func TestEnricherSkipsGenerationFailure(t *testing.T) {
	store := &fakeEnrichmentStore{pending: []domain.PokerProfile{
		{ID: "p1", Username: "a", RawNotes: "n"},
	}}
	gen := &fakeGenerator{err: fmt.Errorf("rate limited")}

	err := newTestEnricher(writePrompt(t), store, gen).Run(context.Background())
	require.NoError(t, err, "a failed generation is a skip, not a run failure")
	assert.Empty(t, store.saved)
}

func TestEnricherContinuesPastSaveFailure(t *testing.T) {
	store := &fakeEnrichmentStore{
		pending: []domain.PokerProfile{{ID: "p1", Username: "a", RawNotes: "n"}},
		saveErr: fmt.Errorf("connection reset"),
	}
	gen := &fakeGenerator{response: goodResponse}

	err := newTestEnricher(writePrompt(t), store, gen).Run(context.Background())
	require.NoError(t, err)
}

func TestEnricherNothingPending(t *testing.T) {
	store := &fakeEnrichmentStore{}
	gen := &fakeGenerator{}

	err := newTestEnricher(writePrompt(t), store, gen).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gen.prompts, "no generation call without pending profiles")
}

func TestEnricherMissingPromptFails(t *testing.T) {
	store := &fakeEnrichmentStore{pending: []domain.PokerProfile{{ID: "p1"}}}
	gen := &fakeGenerator{}

	err := newTestEnricher(filepath.Join(t.TempDir(), "missing.txt"), store, gen).Run(context.Background())
	assert.Error(t, err)
	assert.Empty(t, gen.prompts)
}
