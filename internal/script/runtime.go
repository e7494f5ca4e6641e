// Package script hosts the embedded Lua runtime that executes loader scripts,
// registers the native command table and adapts scripted types to the codegen
// core's reflection interface.
package script

import (
	_ "embed"
	"errors"
	"fmt"
	"path/filepath"

	lua "github.com/Shopify/go-lua"
	"github.com/rs/zerolog"

	"github.com/hexload-tools/hexload/internal/event"
	"github.com/hexload-tools/hexload/internal/pattern"
	"github.com/hexload-tools/hexload/internal/provider"
)

//go:embed lib/imhex.lua
var prelude string

// DefaultLibDir is the relative module directory prepended to the script
// search path before the user script runs.
const DefaultLibDir = "lib"

// Config wires a Runtime to its host collaborators.
type Config struct {
	Provider provider.Provider
	Bus      *event.Bus
	LibDir   string // defaults to DefaultLibDir
	Logger   zerolog.Logger
}

// Runtime is the scoped scripting environment for one loader-script
// execution: acquired with New, released with Close on every exit path. All
// commands run synchronously on the goroutine that calls Run.
type Runtime struct {
	state    *lua.State
	provider provider.Provider
	bus      *event.Bus
	bridge   *pattern.Bridge
	logger   zerolog.Logger
}

// New acquires a runtime: fresh Lua state, standard libraries, extended
// module search path, the imhex command table and the prelude.
func New(cfg Config) (*Runtime, error) {
	if cfg.Provider == nil {
		return nil, errors.New("provider cannot be nil")
	}
	if cfg.Bus == nil {
		return nil, errors.New("event bus cannot be nil")
	}

	libDir := cfg.LibDir
	if libDir == "" {
		libDir = DefaultLibDir
	}

	l := lua.NewState()
	lua.OpenLibraries(l)

	r := &Runtime{
		state:    l,
		provider: cfg.Provider,
		bus:      cfg.Bus,
		bridge:   pattern.NewBridge(cfg.Bus),
		logger:   cfg.Logger,
	}

	r.prependModulePath(libDir)
	r.registerCommands()

	if err := lua.DoString(l, prelude); err != nil {
		r.Close()
		return nil, fmt.Errorf("failed to load prelude: %w", err)
	}

	r.logger.Debug().Str("lib", libDir).Msg("script runtime ready")
	return r, nil
}

// Run executes one script file to completion. A script-raised error
// terminates that script's remaining execution and is returned here; the host
// keeps running.
func (r *Runtime) Run(path string) error {
	if r.state == nil {
		return errors.New("runtime is closed")
	}

	r.logger.Debug().Str("script", path).Msg("running loader script")

	if err := lua.LoadFile(r.state, path, ""); err != nil {
		r.state.Pop(1)
		return fmt.Errorf("failed to load script %s: %w", path, err)
	}
	if err := r.state.ProtectedCall(0, 0, 0); err != nil {
		return fmt.Errorf("script %s failed: %w", path, err)
	}
	return nil
}

// RunString executes script source given as a string, with the same
// semantics as Run.
func (r *Runtime) RunString(src string) error {
	if r.state == nil {
		return errors.New("runtime is closed")
	}
	if err := lua.DoString(r.state, src); err != nil {
		return fmt.Errorf("script failed: %w", err)
	}
	return nil
}

// Close releases the runtime. It is idempotent; the Lua state holds no
// external resources beyond Go memory.
func (r *Runtime) Close() {
	r.state = nil
}

// prependModulePath puts <dir>/?.lua in front of package.path so scripts can
// require modules shipped next to them.
func (r *Runtime) prependModulePath(dir string) {
	l := r.state
	l.Global("package")
	l.Field(-1, "path")
	path, _ := l.ToString(-1)
	l.Pop(1)
	l.PushString(filepath.Join(dir, "?.lua") + ";" + path)
	l.SetField(-2, "path")
	l.Pop(1)
}

// registerCommands publishes the native command table as the global `imhex`.
func (r *Runtime) registerCommands() {
	l := r.state
	l.NewTable()
	lua.SetFunctions(l, []lua.RegistryFunction{
		{Name: "get_file_path", Function: r.getFilePath},
		{Name: "patch", Function: r.patch},
		{Name: "add_bookmark", Function: r.addBookmark},
		{Name: "add_struct", Function: r.addStruct},
		{Name: "add_union", Function: r.addUnion},
	}, 0)
	l.SetGlobal("imhex")
}
