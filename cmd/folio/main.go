package main

import (
	"context"
	"fmt"
	"os"

	"github.com/gompdf/folio/internal/config"
	"github.com/gompdf/folio/internal/logging"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"
)

// Populated at build-time via -ldflags flag.
var version = "dev"

func main() {
	ctx := context.Background()

	var logCloser func()
	flags := &Flags{}

	app := &cli.Command{
		Name:      "folio",
		Usage:     "Paginate reflowable HTML documents",
		UsageText: "folio [global options] command [command options]",
		Version:   version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Usage:       "log level (trace, debug, info, warn, error, fatal, panic)",
				Sources:     cli.EnvVars("FOLIO_LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "log-file",
				Usage:       "path to log file (defaults to stderr)",
				Sources:     cli.EnvVars("FOLIO_LOG_FILE"),
				Destination: &flags.LogFile,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to config file",
				Sources:     cli.EnvVars("FOLIO_CONFIG"),
				Value:       "folio.yaml",
				Destination: &flags.ConfigPath,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			cfg, err := config.Load(flags.ConfigPath)
			if err != nil {
				return ctx, fmt.Errorf("load config: %w", err)
			}
			flags.Config = cfg

			// Flags override the config file
			level, file := cfg.Log.Level, cfg.Log.File
			if flags.LogLevel != "" {
				level = flags.LogLevel
			}
			if flags.LogFile != "" {
				file = flags.LogFile
			}
			logger, closer, err := logging.New(level, file)
			if err != nil {
				return ctx, fmt.Errorf("setup logger: %w", err)
			}
			log.Logger = logger
			logCloser = closer

			log.Debug().Str("config", flags.ConfigPath).Msg("config loaded")
			return ctx, nil
		},
		After: func(ctx context.Context, c *cli.Command) error {
			if logCloser != nil {
				logCloser()
			}
			return nil
		},
	}

	app = NewPagesCmd(flags).Register(app)
	app = NewRenderCmd(flags).Register(app)
	app = NewSearchCmd(flags).Register(app)

	exitCode := 0
	if err := app.Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		exitCode = 1
	}
	os.Exit(exitCode)
}
