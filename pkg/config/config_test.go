package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, 300*time.Millisecond, cfg.Debounce)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
debounce: 150ms
workers: 2
default_task_type: Reviewer
task_types:
  - Reviewer
instructions:
  - name: Tests First
    body: Write the tests before the code.
fence: "~~~"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 150*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 2, cfg.Workers)
	assert.Equal(t, "~~~", cfg.Fence)

	tt, err := cfg.TaskTypeCatalog()
	require.NoError(t, err)
	assert.Equal(t, []string{catalog.TaskArchitect, catalog.TaskEngineer, catalog.TaskAtomicTaskList, "Reviewer"}, tt.Names())
	assert.Equal(t, "Reviewer", tt.Active())

	instructions, err := cfg.InstructionCatalog()
	require.NoError(t, err)
	list := instructions.List()
	require.Len(t, list, len(catalog.DefaultInstructions())+1)
	assert.Equal(t, "Tests First", list[len(list)-1].Name)
	assert.Equal(t, list[0].ID, instructions.ActiveID())
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "debounce: 1s\n")
	t.Setenv(EnvDebounce, "50ms")
	t.Setenv(EnvWorkers, "3")
	t.Setenv(EnvTaskType, catalog.TaskEngineer)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50*time.Millisecond, cfg.Debounce)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, catalog.TaskEngineer, cfg.DefaultTaskType)
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err, "explicit path must exist")

	_, err = Load(writeConfig(t, "debounce: [\n"))
	assert.Error(t, err)

	_, err = Load(writeConfig(t, "debounce: 0s\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeConfig(t, "workers: 0\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeConfig(t, "default_task_type: Nope\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = Load(writeConfig(t, "task_types: [Engineer]\n"))
	assert.ErrorIs(t, err, ErrInvalid, "duplicates a built-in")

	_, err = Load(writeConfig(t, "instructions:\n  - body: nameless\n"))
	assert.ErrorIs(t, err, ErrInvalid)

	t.Setenv(EnvWorkers, "many")
	_, err = Load(writeConfig(t, ""))
	assert.ErrorIs(t, err, ErrInvalid)
}
