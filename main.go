package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/hexload-tools/hexload/internal/commands"
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

func runOptions(c *cli.Command) commands.RunOptions {
	return commands.RunOptions{
		Script:     c.String("script"),
		File:       c.String("file"),
		Lib:        c.String("lib"),
		Output:     c.String("output"),
		PatchedOut: c.String("patched-out"),
	}
}

func runFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "script", Aliases: []string{"s"}, Usage: "loader script to execute"},
		&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Usage: "data file under analysis"},
		&cli.StringFlag{Name: "lib", Usage: "script module directory (prepended to the search path)"},
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "pattern-language output file"},
		&cli.StringFlag{Name: "patched-out", Usage: "write the patched data image to this path"},
	}
}

func main() {
	ctrl := &commands.Controller{
		Flags: &commands.Flags{},
	}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	app := &cli.Command{
		Name:    "hexload",
		Usage:   "Run loader scripts against a binary under analysis: query it, patch it, bookmark it, declare pattern-language layouts for it.",
		Version: build(),
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "log level (debug, info, warn, error, fatal, panic)",
				Sources: cli.EnvVars("LOG_LEVEL"),
				Value:   "info",
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(c.String("log-level"))
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}

			log.Logger = log.Level(level)

			return ctx, nil
		},
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create a new loader-script project from a template",
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Init(ctx)
				},
			},
			{
				Name:  "run",
				Usage: "Execute a loader script once",
				Flags: runFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Run(ctx, runOptions(c))
				},
			},
			{
				Name:  "watch",
				Usage: "Execute a loader script and re-run it on changes",
				Flags: runFlags(),
				Action: func(ctx context.Context, c *cli.Command) error {
					return ctrl.Watch(ctx, runOptions(c))
				},
			},
		},
	}

	ctx := context.Background()

	if err := app.Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("failed to run hexload")
	}
}
