package fx

import (
	"context"

	"go.uber.org/fx"

	"poker-tracker/internal/api"
	"poker-tracker/internal/config"
	"poker-tracker/internal/database"
	"poker-tracker/internal/logger"
	"poker-tracker/internal/repository"
	"poker-tracker/internal/server"
	"poker-tracker/internal/service"
)

// playerStoreAdapter narrows the concrete repository to the interface
// the uploader runs against.
type playerStoreAdapter struct {
	repo *repository.PlayerRepository
}

func (a playerStoreAdapter) BeginBatch(ctx context.Context) (service.StatsBatch, error) {
	return a.repo.BeginBatch(ctx)
}

func ProvidePlayerStore(r *repository.PlayerRepository) service.PlayerStore {
	return playerStoreAdapter{repo: r}
}

func ProvidePlayerReader(r *repository.PlayerRepository) service.PlayerReader { return r }

func ProvideProfileDirectory(r *repository.NotesRepository) service.ProfileDirectory { return r }

func ProvideEnrichmentStore(r *repository.NotesRepository) service.EnrichmentStore { return r }

func ProvideNotesReader(r *repository.NotesRepository) service.NotesReader { return r }

func ProvideTextGenerator(c *api.GenerationClient) service.TextGenerator { return c }

var Module = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(database.New),
	// repos
	fx.Provide(repository.NewPlayerRepository),
	fx.Provide(repository.NewNotesRepository),
	fx.Provide(ProvidePlayerStore),
	fx.Provide(ProvidePlayerReader),
	fx.Provide(ProvideProfileDirectory),
	fx.Provide(ProvideEnrichmentStore),
	fx.Provide(ProvideNotesReader),
	// api client
	fx.Provide(api.NewGenerationClient),
	fx.Provide(ProvideTextGenerator),
	// svc
	fx.Provide(service.NewCleaner),
	fx.Provide(service.NewUploader),
	fx.Provide(service.NewNotesLoader),
	fx.Provide(service.NewEnricher),
	fx.Provide(service.NewQueryService),
	// server
	fx.Provide(server.New),
)
