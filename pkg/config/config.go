// Package config loads grove-prompt settings from an optional YAML file and
// environment overrides. Configuration is only ever read; nothing is
// written back.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/recompute"
	"github.com/mattsolo1/grove-prompt/pkg/render"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid config")

// Environment overrides.
const (
	EnvDebounce = "GROVE_PROMPT_DEBOUNCE"
	EnvWorkers  = "GROVE_PROMPT_WORKERS"
	EnvTaskType = "GROVE_PROMPT_TASK_TYPE"
)

// Instruction is an instruction template declared in the config file.
type Instruction struct {
	Name string `yaml:"name"`
	Body string `yaml:"body"`
}

// Config holds all settings.
type Config struct {
	Debounce        time.Duration `yaml:"debounce"`
	Workers         int           `yaml:"workers"`
	DefaultTaskType string        `yaml:"default_task_type"`
	TaskTypes       []string      `yaml:"task_types"`
	Instructions    []Instruction `yaml:"instructions"`
	Fence           string        `yaml:"fence"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Debounce:        recompute.DefaultWindow,
		Workers:         filetree.DefaultWorkers,
		DefaultTaskType: catalog.TaskArchitect,
		Fence:           render.DefaultFence,
	}
}

// DefaultPath returns the per-user config file location.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("finding config directory: %w", err)
	}
	return filepath.Join(dir, "grove-prompt", "config.yml"), nil
}

// Load reads path on top of the defaults and applies environment overrides.
// An empty path loads DefaultPath if that file exists; an explicit path must exist.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
			}
		case explicit || !errors.Is(err, os.ErrNotExist):
			return Config{}, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDebounce); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvDebounce, err)
		}
		c.Debounce = d
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalid, EnvWorkers, err)
		}
		c.Workers = n
	}
	if v := os.Getenv(EnvTaskType); v != "" {
		c.DefaultTaskType = v
	}
	return nil
}

// Validate checks the configuration for consistency.
func (c Config) Validate() error {
	if c.Debounce <= 0 {
		return fmt.Errorf("%w: debounce must be positive, got %s", ErrInvalid, c.Debounce)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	if strings.TrimSpace(c.Fence) == "" {
		return fmt.Errorf("%w: fence must not be empty", ErrInvalid)
	}
	if _, err := c.TaskTypeCatalog(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	for i, in := range c.Instructions {
		if strings.TrimSpace(in.Name) == "" {
			return fmt.Errorf("%w: instruction %d has no name", ErrInvalid, i+1)
		}
	}
	return nil
}

// TaskTypeCatalog builds the task types: the built-ins followed by the
// configured extras, with DefaultTaskType active.
func (c Config) TaskTypeCatalog() (*catalog.TaskTypes, error) {
	names := append(catalog.DefaultTaskTypes(), c.TaskTypes...)
	tt, err := catalog.NewTaskTypes(names...)
	if err != nil {
		return nil, err
	}
	if c.DefaultTaskType != "" {
		if err := tt.SetActive(c.DefaultTaskType); err != nil {
			return nil, fmt.Errorf("default task type: %w", err)
		}
	}
	return tt, nil
}

// InstructionCatalog builds the instruction templates: the predefined
// defaults followed by the configured ones.
func (c Config) InstructionCatalog() (*catalog.Instructions, error) {
	templates := catalog.DefaultInstructions()
	for _, in := range c.Instructions {
		templates = append(templates, catalog.InstructionTemplate{Name: in.Name, Body: in.Body})
	}
	return catalog.NewInstructions(templates...)
}
