package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/config"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/session"
)

// selectFlags are the file selection flags of the headless commands.
type selectFlags struct {
	paths []string
	all   bool
}

func (f *selectFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.paths, "select", "s", nil, "Select a file or folder, relative to the directory (repeatable)")
	cmd.Flags().BoolVarP(&f.all, "all", "a", false, "Select every file in the directory")
}

// newSession builds the catalogs from cfg and returns an empty session.
func newSession(cfg config.Config) (*session.Session, error) {
	taskTypes, err := cfg.TaskTypeCatalog()
	if err != nil {
		return nil, err
	}
	instructions, err := cfg.InstructionCatalog()
	if err != nil {
		return nil, err
	}
	return session.New(taskTypes, instructions, cfg.Fence), nil
}

// loadFolder builds dir and installs it into s.
func loadFolder(ctx context.Context, cfg config.Config, s *session.Session, dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("resolving %s: %w", dir, err)
	}
	res, err := filetree.Build(ctx, abs, filetree.Options{
		Workers: cfg.Workers,
		Logger:  newLogger("filetree"),
	})
	if err != nil {
		return err
	}
	s.ReplaceFolder(abs, res)
	return nil
}

// openSession loads dir and applies the selection flags.
func openSession(ctx context.Context, cfg config.Config, dir string, sel selectFlags) (*session.Session, error) {
	s, err := newSession(cfg)
	if err != nil {
		return nil, err
	}
	if err := loadFolder(ctx, cfg, s, dir); err != nil {
		return nil, err
	}

	if sel.all {
		if err := s.SelectAll(); err != nil {
			return nil, err
		}
	}
	for _, p := range sel.paths {
		if err := s.SelectPath(p); err != nil {
			return nil, err
		}
	}
	log.WithField("selected", s.Selection().Len()).Debug("Session ready")
	return s, nil
}
