package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/fx"

	"github.com/robalobadob/emojile/internal/catalog"
	"github.com/robalobadob/emojile/internal/config"
	"github.com/robalobadob/emojile/internal/database"
	"github.com/robalobadob/emojile/internal/emojis"
	"github.com/robalobadob/emojile/internal/game"
	"github.com/robalobadob/emojile/internal/httpserver"
)

const shutdownTimeout = 10 * time.Second

// runServer binds the router to an http.Server and ties it to the fx lifecycle.
func runServer(lc fx.Lifecycle, srv *httpserver.Server, cfg *config.Config, logger zerolog.Logger) {
	hs := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				logger.Info().Str("addr", hs.Addr).Msg("starting emojile")
				if err := hs.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Fatal().Err(err).Msg("server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("shutting down server")
			if err := hs.Shutdown(ctx); err != nil {
				logger.Error().Err(err).Msg("server shutdown failed")
				return err
			}
			logger.Info().Msg("server stopped gracefully")
			return nil
		},
	})
}

// runMigrate reports the schema version; opening the database already
// applied anything pending.
func runMigrate(db *database.DB, logger zerolog.Logger) error {
	v, err := database.Version(context.Background(), db, logger)
	if err != nil {
		return err
	}
	logger.Info().Int64("version", v).Msg("database is up to date")
	return nil
}

type initOptions struct {
	EmojiFile string
}

func parseInitFlags(args []string) (initOptions, error) {
	var opts initOptions
	fs := flag.NewFlagSet("init-db", flag.ContinueOnError)
	fs.StringVar(&opts.EmojiFile, "emojis", "", "TSV emoji list (emoji, name, category); defaults to EMOJI_FILE or the built-in list")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		err := fmt.Errorf("unexpected arguments: %v", fs.Args())
		fmt.Fprintln(fs.Output(), err)
		return opts, err
	}
	return opts, nil
}

// runInitDB clears the catalog and writes one riddle per day and mode.
func runInitDB(opts initOptions, cfg *config.Config, initializer *catalog.Initializer, logger zerolog.Logger) error {
	path := opts.EmojiFile
	if path == "" {
		path = cfg.EmojiFile
	}
	list, err := emojis.Load(path)
	if err != nil {
		return err
	}
	source := path
	if source == "" {
		source = "built-in"
	}
	logger.Info().Str("source", source).Int("emojis", len(list)).Msg("loaded emoji list")

	n, err := initializer.Run(context.Background(), list, game.ModeList())
	if err != nil {
		return fmt.Errorf("initialize catalog: %w", err)
	}
	logger.Info().Int("riddles", n).Msg("riddle catalog regenerated")
	return nil
}
