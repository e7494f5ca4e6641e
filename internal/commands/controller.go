// Package commands contains the CLI commands for the application
package commands

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/hexload-tools/hexload/internal/config"
)

type Flags struct {
	LogLevel string
}

type Controller struct {
	Flags *Flags
}

// RunOptions describes one loader-script execution. Empty fields fall back to
// the hexload.json configuration.
type RunOptions struct {
	Script     string
	File       string
	Lib        string
	Output     string
	PatchedOut string
	Watch      config.WatchConfig
}

// newLogger builds the controller's console logger.
func newLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

// resolveOptions fills empty options from hexload.json when one is present.
// The data file is the one required input without a default.
func resolveOptions(opts RunOptions) (RunOptions, error) {
	cfg, _, err := config.LoadConfig()
	if err == nil {
		if opts.Script == "" {
			opts.Script = cfg.Script
		}
		if opts.File == "" {
			opts.File = cfg.File
		}
		if opts.Lib == "" {
			opts.Lib = cfg.Lib
		}
		if opts.Output == "" {
			opts.Output = cfg.Output
		}
		opts.Watch = cfg.Watch
	}
	if len(opts.Watch.Patterns) == 0 {
		opts.Watch = config.DefaultWatchConfig()
	}

	if opts.Script == "" {
		return opts, fmt.Errorf("no loader script given: pass --script or add one to hexload.json")
	}
	if opts.File == "" {
		return opts, fmt.Errorf("no data file given: pass --file or add one to hexload.json")
	}
	return opts, nil
}
