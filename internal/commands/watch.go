package commands

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hexload-tools/hexload/internal/watch"
)

// debounceDelay coalesces editor save bursts into one re-run.
const debounceDelay = 200 * time.Millisecond

// Watch runs the loader script, then re-runs it whenever the script or its
// lib modules change. Each run gets a fresh runtime and a fresh copy of the
// data; a failing script is logged and watching continues.
func (c *Controller) Watch(ctx context.Context, opts RunOptions) error {
	opts, err := resolveOptions(opts)
	if err != nil {
		return err
	}

	logger := newLogger()

	rerun := func() {
		art, err := executeScript(logger, opts)
		if err != nil {
			logger.Error().Err(err).Msg("script run failed")
			return
		}
		if err := writeArtifacts(logger, opts, art); err != nil {
			logger.Error().Err(err).Msg("failed to write artifacts")
		}
	}

	rerun()

	changes := make(chan string, 16)
	fw, err := watch.NewFileWatcher(opts.Watch.Patterns, opts.Watch.Exclude, logger, func(path string, op fsnotify.Op) {
		select {
		case changes <- path:
		default:
		}
	})
	if err != nil {
		return err
	}
	defer fw.Close()

	if err := fw.AddDirectory(filepath.Dir(opts.Script)); err != nil {
		return err
	}
	if info, err := os.Stat(opts.Lib); err == nil && info.IsDir() {
		if err := fw.AddDirectory(opts.Lib); err != nil {
			return err
		}
	}

	go func() {
		if err := fw.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
			logger.Error().Err(err).Msg("watcher stopped")
		}
	}()

	logger.Info().Str("script", opts.Script).Msg("watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case path := <-changes:
			// Debounce, then drain whatever else arrived in the burst.
			time.Sleep(debounceDelay)
			for {
				select {
				case <-changes:
					continue
				default:
				}
				break
			}
			logger.Info().Str("path", path).Msg("change detected, re-running")
			rerun()
		}
	}
}
