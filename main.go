package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/okra-platform/effectschema/internal/commands"
	"github.com/okra-platform/effectschema/internal/config"
)

var (
	// Build information. Populated at build-time via -ldflags flag.
	version = "dev"
	commit  = "HEAD"
	date    = "now"
)

func build() string {
	short := commit
	if len(commit) > 7 {
		short = commit[:7]
	}

	return fmt.Sprintf("%s (%s) %s", version, short, date)
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "effectschema",
		Usage:   "Generate Effect Schema classes from a data model",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
			&cli.StringFlag{
				Name:  "schema",
				Usage: "path of the schema file",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "directory the generated code is written to",
				Sources: cli.EnvVars(config.EnvOutput),
			},
			&cli.StringFlag{
				Name:  "target",
				Usage: "output language (typescript, javascript)",
			},
			&cli.BoolFlag{
				Name:    "disable",
				Usage:   "skip generation",
				Sources: cli.EnvVars(config.EnvDisable),
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "maximum number of files written concurrently (0 means unlimited)",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)
			ctrl.Logger = log.Logger

			ctrl.Flags.LogLevel = c.String("log-level")
			ctrl.Flags.Schema = c.String("schema")
			ctrl.Flags.Output = c.String("output")
			ctrl.Flags.Target = c.String("target")
			ctrl.Flags.Disable = c.Bool("disable")
			ctrl.Flags.Workers = int(c.Int("workers"))

			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return ctrl.Generate(ctx)
		},
		Commands: []*cli.Command{
			{
				Name:  "generate",
				Usage: "Generate Effect Schema code once",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Generate(ctx)
				},
			},
			{
				Name:  "watch",
				Usage: "Regenerate whenever the schema changes",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx)
				},
			},
			{
				Name:  "init",
				Usage: "Create an effectschema.json and a starter schema",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run effectschema")
	}
}
