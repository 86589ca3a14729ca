package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func NewListCmd() *cobra.Command {
	var sel selectFlags

	cmd := &cobra.Command{
		Use:   "list <dir>",
		Short: "List the selected files",
		Long:  `Lists the absolute paths of the selected text files, in the order they appear in the prompt.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg, args[0], sel)
			if err != nil {
				return err
			}

			for _, file := range s.Snapshot().SelectedFiles() {
				fmt.Fprintln(cmd.OutOrStdout(), file.Path)
			}
			return nil
		},
	}

	sel.register(cmd)
	return cmd
}
