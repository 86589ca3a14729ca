package cmd

import (
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/cmd/view"
	"github.com/mattsolo1/grove-prompt/pkg/config"
)

// startPage is the page the view opens on.
var startPage string

// NewViewCmd creates the view command
func NewViewCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "view [dir]",
		Short: "Build a prompt interactively",
		Long: `Launch an interactive terminal UI to select files from a folder, pick a task type
and an instruction template, and preview the resulting prompt with its difficulty.

The folder defaults to the current directory; press o inside the view to open another.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}
			return runView(cfg, dir)
		},
	}
	cmd.Flags().StringVarP(&startPage, "page", "p", "tree", "The page to open on startup (tree, prompt, instructions, stats)")
	return cmd
}

func runView(cfg config.Config, dir string) error {
	s, err := newSession(cfg)
	if err != nil {
		return err
	}
	return view.Run(view.Options{
		Config:    cfg,
		Session:   s,
		Dir:       dir,
		StartPage: startPage,
		Logger:    newLogger("view"),
	})
}
