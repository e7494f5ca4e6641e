package script

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hexload-tools/hexload/internal/event"
	"github.com/hexload-tools/hexload/internal/provider"
)

// testHost wires a runtime to an in-memory provider and records everything
// the script posts.
type testHost struct {
	rt        *Runtime
	prov      *provider.Memory
	code      []string
	bookmarks []event.Bookmark
}

func newTestHost(t *testing.T, data []byte) *testHost {
	t.Helper()

	h := &testHost{prov: provider.NewMemory("/tmp/sample.bin", data)}

	bus := event.NewBus()
	bus.Subscribe(event.AppendPatternLanguageCode, func(payload interface{}) {
		h.code = append(h.code, payload.(string))
	})
	bus.Subscribe(event.AddBookmark, func(payload interface{}) {
		h.bookmarks = append(h.bookmarks, payload.(event.Bookmark))
	})

	rt, err := New(Config{Provider: h.prov, Bus: bus, Logger: zerolog.Nop()})
	require.NoError(t, err)
	t.Cleanup(rt.Close)

	h.rt = rt
	return h
}

func TestNew_RequiresCollaborators(t *testing.T) {
	// Test: a runtime cannot be acquired without its host collaborators
	_, err := New(Config{Bus: event.NewBus()})
	assert.Error(t, err)

	_, err = New(Config{Provider: provider.NewMemory("x", nil)})
	assert.Error(t, err)
}

func TestRuntime_PreludeDefinesBuiltins(t *testing.T) {
	// Test: the prelude publishes the marker and the builtin pattern types
	h := newTestHost(t, []byte{1})

	err := h.rt.RunString(`
		assert(imhex.ImHexType ~= nil)
		assert(imhex.u8 ~= nil and imhex.u128 ~= nil)
		assert(imhex.s64 ~= nil and imhex.float ~= nil and imhex.str ~= nil)
		assert(type(imhex.class) == "function")
	`)
	require.NoError(t, err)
}

func TestRuntime_GetFilePath(t *testing.T) {
	// Test: get_file_path returns the loaded file's path
	h := newTestHost(t, []byte{1})

	err := h.rt.RunString(`
		if imhex.get_file_path() ~= "/tmp/sample.bin" then
			error("unexpected path")
		end
	`)
	require.NoError(t, err)
}

func TestRuntime_RunFile(t *testing.T) {
	// Test: a script file runs to completion under the command table
	h := newTestHost(t, []byte{1, 2, 3, 4})

	path := filepath.Join(t.TempDir(), "loader.lua")
	require.NoError(t, os.WriteFile(path, []byte(`imhex.add_bookmark(0, 2, "head", "first bytes")`), 0644))

	require.NoError(t, h.rt.Run(path))
	assert.Len(t, h.bookmarks, 1)
}

func TestRuntime_RunMissingFile(t *testing.T) {
	// Test: a missing script is an error, not a crash
	h := newTestHost(t, []byte{1})
	assert.Error(t, h.rt.Run(filepath.Join(t.TempDir(), "absent.lua")))
}

func TestRuntime_Closed(t *testing.T) {
	// Test: a released runtime refuses to run
	h := newTestHost(t, []byte{1})
	h.rt.Close()
	assert.Error(t, h.rt.RunString(`print("hi")`))
}

func TestRuntime_ScriptErrorDoesNotKillHost(t *testing.T) {
	// Test: a raised script error unwinds into a Go error and the host survives
	h := newTestHost(t, []byte{1})

	err := h.rt.RunString(`error("script gave up")`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "script gave up")

	// The same runtime keeps working afterwards.
	require.NoError(t, h.rt.RunString(`imhex.add_bookmark(0, 1, "ok", "still alive")`))
	assert.Len(t, h.bookmarks, 1)
}
