package fx

import (
	"context"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/config"
	"github.com/robalobadob/emojile/internal/daily"
	"github.com/robalobadob/emojile/internal/database"
	"github.com/robalobadob/emojile/internal/httpserver"
	"github.com/robalobadob/emojile/internal/logger"
	"github.com/robalobadob/emojile/internal/stats"
	"github.com/robalobadob/emojile/internal/store"
)

// ProvideDatabase opens the configured database, brings the schema up to
// date and closes the pool when the app stops.
func ProvideDatabase(lc fx.Lifecycle, cfg *config.Config, logger zerolog.Logger) (*database.DB, error) {
	db, err := database.Open(cfg, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(context.Background(), db, logger); err != nil {
		_ = db.Close()
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			return db.Close()
		},
	})
	return db, nil
}

func ProvideSelector(riddles *catalog.Repository, logger zerolog.Logger) *daily.Selector {
	return daily.NewSelector(riddles, logger)
}

func ProvideServer(
	cfg *config.Config,
	logger zerolog.Logger,
	sessions store.Store,
	selector *daily.Selector,
	riddles *catalog.Repository,
	statsRepo *stats.Repository,
) (*httpserver.Server, error) {
	return httpserver.New(httpserver.Deps{
		Config:   cfg,
		Logger:   logger,
		Sessions: sessions,
		Selector: selector,
		Riddles:  riddles,
		Stats:    statsRepo,
	})
}

// Core is everything except the HTTP server; the admin commands use it.
var Core = fx.Options(
	fx.Provide(logger.New),
	fx.Provide(config.Load),
	fx.Provide(ProvideDatabase),
	// repos
	fx.Provide(catalog.NewRepository),
	fx.Provide(catalog.NewInitializer),
	fx.Provide(stats.NewRepository),
)

var Module = fx.Options(
	Core,
	fx.Provide(ProvideSelector),
	fx.Provide(store.New),
	// server
	fx.Provide(ProvideServer),
)
