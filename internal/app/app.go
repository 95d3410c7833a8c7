package app

import (
	"context"

	"github.com/abdulachik/novelcards/internal/config"
	"github.com/abdulachik/novelcards/internal/db"
	"github.com/abdulachik/novelcards/internal/pipeline"
)

// App is the main application container holding all dependencies.
type App struct {
	Config *config.Config
	Store  *db.Store // nil when DATABASE_PATH is empty
	Runner *pipeline.Runner
}

// Options tweak how the app is wired for one command.
type Options struct {
	DryRun bool
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	var store *db.Store
	if cfg.DatabasePath != "" {
		var err error
		store, err = db.NewStore(ctx, cfg.DatabasePath)
		if err != nil {
			return nil, err
		}

		if err := store.Migrate(ctx); err != nil {
			store.Close()
			return nil, err
		}
	}

	runner := pipeline.New(pipeline.Config{
		Store:    store,
		Encoding: cfg.InputEncoding,
		DryRun:   opts.DryRun,
	})

	return &App{
		Config: cfg,
		Store:  store,
		Runner: runner,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
