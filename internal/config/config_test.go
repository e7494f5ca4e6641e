package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromPath_Defaults(t *testing.T) {
	// Test: omitted fields fall back to defaults
	path := filepath.Join(t.TempDir(), "hexload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"file": "./sample.bin"}`), 0644))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "./loader.lua", cfg.Script)
	assert.Equal(t, "./sample.bin", cfg.File)
	assert.Equal(t, "./lib", cfg.Lib)
	assert.Equal(t, "./out/patterns.hexpat", cfg.Output)
	assert.Equal(t, []string{"*.lua", "**/*.lua"}, cfg.Watch.Patterns)
}

func TestLoadConfigFromPath_Explicit(t *testing.T) {
	// Test: explicit values survive loading
	path := filepath.Join(t.TempDir(), "hexload.json")
	content := `{
		"script": "./scripts/main.lua",
		"file": "./firmware.bin",
		"lib": "./modules",
		"output": "./patterns/firmware.hexpat",
		"watch": {"patterns": ["*.lua"], "exclude": ["vendor/"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := LoadConfigFromPath(path)
	require.NoError(t, err)

	assert.Equal(t, "./scripts/main.lua", cfg.Script)
	assert.Equal(t, "./modules", cfg.Lib)
	assert.Equal(t, []string{"vendor/"}, cfg.Watch.Exclude)
}

func TestLoadConfigFromPath_Invalid(t *testing.T) {
	// Test: malformed JSON is an error
	path := filepath.Join(t.TempDir(), "hexload.json")
	require.NoError(t, os.WriteFile(path, []byte(`{not json`), 0644))

	_, err := LoadConfigFromPath(path)
	assert.Error(t, err)
}

func TestLoadConfigFromDir_SearchesParents(t *testing.T) {
	// Test: the config is found from a nested working directory
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "hexload.json"), []byte(`{}`), 0644))

	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0755))

	cfg, foundDir, err := loadConfigFromDir(nested)
	require.NoError(t, err)
	assert.Equal(t, root, foundDir)
	assert.Equal(t, "./loader.lua", cfg.Script)
}

func TestLoadConfigFromDir_NotFound(t *testing.T) {
	// Test: no config anywhere up the tree is an error
	_, _, err := loadConfigFromDir(t.TempDir())
	assert.Error(t, err)
}
