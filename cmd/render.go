package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/session"
)

// noTemplate deselects the active instruction template.
const noTemplate = "none"

func NewRenderCmd() *cobra.Command {
	var (
		sel         selectFlags
		taskType    string
		instruction string
		template    string
		copyPrompt  bool
	)

	cmd := &cobra.Command{
		Use:   "render <dir>",
		Short: "Print the prompt for a selection of files",
		Long: `Build the prompt for the files selected from <dir> without opening the
interactive view.

An unknown task type is accepted and rendered with a generic task block.

Examples:
  gprompt render . --all
  gprompt render . -s cmd -s main.go --task-type Engineer --instruction "Add a flag"
  gprompt render . -s pkg --template "Explain Reasoning" --copy`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := GetOptions(cmd)
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			s, err := openSession(cmd.Context(), cfg, args[0], sel)
			if err != nil {
				return err
			}

			if taskType != "" {
				if err := chooseTaskType(s.TaskTypes, taskType); err != nil {
					return err
				}
			}
			if cmd.Flags().Changed("template") {
				if err := chooseTemplate(s.Instructions, template); err != nil {
					return err
				}
			}
			s.SetInstruction(instruction)

			res := session.Compute(s.Snapshot())
			log.WithField("tokens", res.Tokens).Debug("Rendered prompt")

			if copyPrompt {
				if err := clipboard.WriteAll(res.Prompt); err != nil {
					return fmt.Errorf("copying prompt: %w", err)
				}
			}

			out := cmd.OutOrStdout()
			if opts.JSONOutput {
				data, err := json.MarshalIndent(res, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal result: %w", err)
				}
				fmt.Fprintln(out, string(data))
				return nil
			}
			fmt.Fprint(out, res.Prompt)
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().StringVarP(&taskType, "task-type", "t", "", "Task type to render (default from config)")
	cmd.Flags().StringVarP(&instruction, "instruction", "i", "", "Free-form task instruction")
	cmd.Flags().StringVar(&template, "template", "", `Instruction template name, or "none"`)
	cmd.Flags().BoolVar(&copyPrompt, "copy", false, "Also copy the prompt to the clipboard")

	return cmd
}

// chooseTaskType activates name, adding it to the catalog when it is not known.
func chooseTaskType(tt *catalog.TaskTypes, name string) error {
	name = strings.TrimSpace(name)
	if !tt.Contains(name) {
		if err := tt.Add(name); err != nil {
			return err
		}
	}
	return tt.SetActive(name)
}

// chooseTemplate selects the instruction template called name.
func chooseTemplate(in *catalog.Instructions, name string) error {
	if strings.EqualFold(name, noTemplate) {
		in.Deselect()
		return nil
	}
	t, ok := in.FindByName(name)
	if !ok {
		return fmt.Errorf("instruction template %q: %w", name, catalog.ErrNotFound)
	}
	return in.Select(t.ID)
}
