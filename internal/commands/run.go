package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hexload-tools/hexload/internal/event"
	"github.com/hexload-tools/hexload/internal/provider"
	"github.com/hexload-tools/hexload/internal/script"
)

// runArtifacts collects what one script execution produced.
type runArtifacts struct {
	PatternCode []string
	Bookmarks   []event.Bookmark
	Provider    *provider.Memory
}

// Run executes a loader script once and writes its artifacts: emitted
// pattern-language declarations to the output file, bookmarks to the log, and
// optionally the patched data image.
func (c *Controller) Run(ctx context.Context, opts RunOptions) error {
	opts, err := resolveOptions(opts)
	if err != nil {
		return err
	}

	logger := newLogger()
	art, err := executeScript(logger, opts)
	if err != nil {
		return err
	}

	return writeArtifacts(logger, opts, art)
}

// executeScript runs one script to completion with a fresh provider, event
// bus and runtime; the runtime is released on every exit path.
func executeScript(logger zerolog.Logger, opts RunOptions) (*runArtifacts, error) {
	prov, err := provider.Open(opts.File)
	if err != nil {
		return nil, err
	}

	art := &runArtifacts{Provider: prov}

	bus := event.NewBus()
	bus.Subscribe(event.AppendPatternLanguageCode, func(payload interface{}) {
		if code, ok := payload.(string); ok {
			art.PatternCode = append(art.PatternCode, code)
		}
	})
	bus.Subscribe(event.AddBookmark, func(payload interface{}) {
		bookmark, ok := payload.(event.Bookmark)
		if !ok {
			return
		}
		art.Bookmarks = append(art.Bookmarks, bookmark)
		logger.Info().
			Uint64("address", bookmark.Region.Address).
			Uint64("size", bookmark.Region.Size).
			Str("name", bookmark.Name).
			Str("comment", bookmark.Comment).
			Msg("bookmark added")
	})

	rt, err := script.New(script.Config{
		Provider: prov,
		Bus:      bus,
		LibDir:   opts.Lib,
		Logger:   logger,
	})
	if err != nil {
		return nil, err
	}
	defer rt.Close()

	if err := rt.Run(opts.Script); err != nil {
		return nil, err
	}
	return art, nil
}

func writeArtifacts(logger zerolog.Logger, opts RunOptions, art *runArtifacts) error {
	if len(art.PatternCode) > 0 && opts.Output != "" {
		if err := os.MkdirAll(filepath.Dir(opts.Output), 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
		code := strings.Join(art.PatternCode, "")
		if err := os.WriteFile(opts.Output, []byte(code), 0644); err != nil {
			return fmt.Errorf("failed to write pattern output: %w", err)
		}
		logger.Info().Str("path", opts.Output).Int("declarations", len(art.PatternCode)).Msg("pattern code written")
	}

	if opts.PatchedOut != "" {
		f, err := os.Create(opts.PatchedOut)
		if err != nil {
			return fmt.Errorf("failed to create patched output: %w", err)
		}
		defer f.Close()
		if err := art.Provider.SaveTo(f); err != nil {
			return err
		}
		logger.Info().Str("path", opts.PatchedOut).Msg("patched image written")
	}

	return nil
}
