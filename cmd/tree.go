package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

func NewTreeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tree <dir>",
		Short: "Print the directory tree used by the Atomic Task List prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cfg)
			if err != nil {
				return err
			}
			if err := loadFolder(cmd.Context(), cfg, s, args[0]); err != nil {
				return err
			}

			dirs, files := filetree.Count(s.Tree().Root)
			log.WithField("dirs", dirs).WithField("files", files).Debug("Tree built")

			fmt.Fprint(cmd.OutOrStdout(), filetree.RenderTree(s.Tree().Root))
			return nil
		},
	}
}
