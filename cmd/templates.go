package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

type templatesOutput struct {
	TaskTypes      []string                      `json:"task_types"`
	ActiveTaskType string                        `json:"active_task_type"`
	Instructions   []catalog.InstructionTemplate `json:"instructions"`
	ActiveTemplate string                        `json:"active_template,omitempty"`
}

func NewTemplatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "templates",
		Short: "List task types and instruction templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := GetOptions(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := newSession(cfg)
			if err != nil {
				return err
			}

			out := templatesOutput{
				TaskTypes:      s.TaskTypes.Names(),
				ActiveTaskType: s.TaskTypes.Active(),
				Instructions:   s.Instructions.List(),
			}
			if active, ok := s.Instructions.Active(); ok {
				out.ActiveTemplate = active.Name
			}

			w := cmd.OutOrStdout()
			if opts.JSONOutput {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal templates: %w", err)
				}
				fmt.Fprintln(w, string(data))
				return nil
			}

			t := theme.DefaultTheme
			fmt.Fprintln(w, t.Header.Render("Task types:"))
			for _, name := range out.TaskTypes {
				fmt.Fprintln(w, "  "+marker(name == out.ActiveTaskType)+name)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, t.Header.Render("Instruction templates:"))
			for _, in := range out.Instructions {
				fmt.Fprintf(w, "  %s%s\n", marker(in.Name == out.ActiveTemplate), in.Name)
				fmt.Fprintln(w, t.Muted.Render("      "+firstLine(in.Body)))
			}
			return nil
		},
	}
}

func marker(active bool) string {
	if active {
		return "* "
	}
	return "  "
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i] + " ..."
	}
	return s
}
