package main

import (
	"context"
	"database/sql"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	fxmodules "poker-tracker/internal/fx"
	"poker-tracker/internal/service"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runEnricher),
	).Run()
}

func runEnricher(lc fx.Lifecycle, shutdowner fx.Shutdowner, enricher *service.Enricher, db *sql.DB, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if err := enricher.Run(context.Background()); err != nil {
					logger.Error().Err(err).Msg("profile enrichment failed")
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if err := db.Close(); err != nil {
				logger.Warn().Err(err).Msg("error closing database connection")
			}
			return nil
		},
	})
}
