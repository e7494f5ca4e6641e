package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldWatch(t *testing.T) {
	// Test: pattern and exclude matching
	fw := &FileWatcher{
		patterns: []string{"*.lua", "**/*.lua"},
		exclude:  []string{"*.hexpat"},
	}

	assert.True(t, fw.shouldWatch("loader.lua"))
	assert.True(t, fw.shouldWatch(filepath.Join("lib", "imhex.lua")))
	assert.False(t, fw.shouldWatch("sample.bin"))
	assert.False(t, fw.shouldWatch("patterns.hexpat"))
}

func TestFileWatcher_DeliversChanges(t *testing.T) {
	// Test: a matching file change reaches the callback
	dir := t.TempDir()
	script := filepath.Join(dir, "loader.lua")
	require.NoError(t, os.WriteFile(script, []byte("-- v1"), 0644))

	changes := make(chan string, 4)
	fw, err := NewFileWatcher([]string{"*.lua"}, nil, zerolog.Nop(), func(path string, op fsnotify.Op) {
		select {
		case changes <- path:
		default:
		}
	})
	require.NoError(t, err)
	defer fw.Close()

	require.NoError(t, fw.AddDirectory(dir))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() { _ = fw.Start(ctx) }()

	require.NoError(t, os.WriteFile(script, []byte("-- v2"), 0644))

	select {
	case path := <-changes:
		assert.Equal(t, script, path)
	case <-time.After(3 * time.Second):
		t.Fatal("no change event delivered")
	}
}
