package main

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	fxmodules "poker-tracker/internal/fx"
	"poker-tracker/internal/service"
)

func main() {
	fx.New(
		fxmodules.Module,
		fx.Invoke(runCleaner),
	).Run()
}

func runCleaner(lc fx.Lifecycle, shutdowner fx.Shutdowner, cleaner *service.Cleaner, logger zerolog.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				code := 0
				if err := cleaner.Run(context.Background()); err != nil {
					logger.Error().Err(err).Msg("stat derivation failed")
					code = 1
				}
				_ = shutdowner.Shutdown(fx.ExitCode(code))
			}()
			return nil
		},
	})
}
