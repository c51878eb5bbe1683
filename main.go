package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/fx"

	fxmodules "github.com/robalobadob/emojile/internal/fx"
	"github.com/robalobadob/emojile/internal/logger"
)

const usage = `usage: emojile [command] [flags]

commands:
  serve              run the web server (default)
  migrate            apply pending database migrations
  init-db [-emojis]  regenerate the riddle catalog from the emoji list
`

func main() {
	cmd, args := "serve", os.Args[1:]
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	switch cmd {
	case "serve":
		fx.New(
			fxmodules.Module,
			fx.Invoke(runServer),
		).Run()
	case "migrate":
		exitOnError(runOnce(fx.Invoke(runMigrate)))
	case "init-db":
		opts, err := parseInitFlags(args)
		if err != nil {
			os.Exit(2)
		}
		exitOnError(runOnce(fx.Supply(opts), fx.Invoke(runInitDB)))
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		os.Exit(2)
	}
}

// runOnce builds the core graph, runs the invoked command and releases the
// database again.
func runOnce(opts ...fx.Option) error {
	app := fx.New(append([]fx.Option{fxmodules.Core, fx.NopLogger}, opts...)...)
	if err := app.Err(); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("start: %w", err)
	}
	if err := app.Stop(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// exitOnError reports a failed admin command through the configured logger.
func exitOnError(err error) {
	if err == nil {
		return
	}
	log := logger.New()
	log.Fatal().Err(err).Msg("command failed")
}
