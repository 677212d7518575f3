package service

import (
	"context"

	"github.com/rs/zerolog"

	"poker-tracker/internal/config"
	"poker-tracker/internal/constants"
	"poker-tracker/internal/domain"
	"poker-tracker/internal/enrich"
)

const coachSystemPrompt = "You are a professional poker coach and analyst."

// TextGenerator produces one completion for a system/user prompt pair.
type TextGenerator interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// EnrichmentStore is the poker-profile surface the enricher needs.
type EnrichmentStore interface {
	ListPending(ctx context.Context, limit int) ([]domain.PokerProfile, error)
	SaveEnrichment(ctx context.Context, id string, tags, summary, exploit []string) error
}

// Enricher summarizes raw player notes into tags, summary bullets and an
// exploit strategy. Profiles whose generation fails or parses empty are
// skipped and picked up again on a later run.
type Enricher struct {
	cfg    *config.Config
	store  EnrichmentStore
	gen    TextGenerator
	logger zerolog.Logger
}

func NewEnricher(cfg *config.Config, store EnrichmentStore, gen TextGenerator, logger zerolog.Logger) *Enricher {
	return &Enricher{cfg: cfg, store: store, gen: gen, logger: logger}
}

func (e *Enricher) Run(ctx context.Context) error {
	template, err := enrich.LoadPrompt(e.cfg.PromptPath)
	if err != nil {
		e.logger.Error().Err(err).Str("path", e.cfg.PromptPath).Msg("prompt template not readable")
		return err
	}

	pending, err := e.store.ListPending(ctx, e.cfg.EnrichLimit)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		e.logger.Info().Msg("no profiles to enrich")
		return nil
	}

	enriched, skipped := 0, 0
	for _, profile := range pending {
		e.logger.Info().Str("username", profile.Username).Msg("enriching profile")

		genCtx, cancel := context.WithTimeout(ctx, constants.GenerationTimeout)
		text, err := e.gen.Complete(genCtx, coachSystemPrompt, enrich.RenderPrompt(template, profile.RawNotes))
		cancel()
		if err != nil {
			e.logger.Warn().Err(err).Str("username", profile.Username).Msg("generation failed, skipping")
			skipped++
			continue
		}

		parsed := enrich.Parse(text)
		if !parsed.Complete() {
			e.logger.Warn().Str("username", profile.Username).Msg("generation output empty, skipping")
			skipped++
			continue
		}

		if err := e.store.SaveEnrichment(ctx, profile.ID, parsed.Tags, parsed.Summary, parsed.ExploitStrategy); err != nil {
			e.logger.Warn().Err(err).Str("username", profile.Username).Msg("failed to save enrichment, skipping")
			skipped++
			continue
		}

		e.logger.Info().Str("username", profile.Username).Msg("profile enriched")
		enriched++
	}

	e.logger.Info().
		Int("pending", len(pending)).
		Int("enriched", enriched).
		Int("skipped", skipped).
		Msg("enrichment finished")
	return nil
}
