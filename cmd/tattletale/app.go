package main

import (
	"context"

	"github.com/joho/godotenv"
	"go.uber.org/fx"

	"tattletale/internal/constants"
	fxmodules "tattletale/internal/fx"
	"tattletale/internal/logger"
)

// startApp builds the dependency container and starts it, populating targets
// from it. quiet routes logs away from the terminal for the interactive grid.
// The caller must stop the returned app.
func startApp(ctx context.Context, quiet bool, targets ...any) (*fx.App, error) {
	// Loaded here so the logger options see the same .env the config does.
	_ = godotenv.Load()

	app := fx.New(
		fx.NopLogger,
		fx.Supply(logger.OptionsFromEnv(quiet)),
		fxmodules.Module,
		fx.Populate(targets...),
	)
	if err := app.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(ctx, constants.ShutdownTimeout)
	defer cancel()
	if err := app.Start(startCtx); err != nil {
		return nil, err
	}
	return app, nil
}

func stopApp(app *fx.App) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
	defer cancel()
	_ = app.Stop(ctx)
}
