package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/session"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

// statsOutput is the JSON shape of the stats command.
type statsOutput struct {
	Folder       string            `json:"folder"`
	PromptTokens int               `json:"prompt_tokens"`
	Report       difficulty.Report `json:"report"`
}

func NewStatsCmd() *cobra.Command {
	var (
		sel  selectFlags
		topN int
	)

	cmd := &cobra.Command{
		Use:   "stats <dir>",
		Short: "Analyze the difficulty and composition of a selection",
		Long: `Show the difficulty estimate, the prompt token estimate, the language
breakdown and the largest files for the files selected from <dir>.

Examples:
  gprompt stats . --all
  gprompt stats . -s pkg --json`,
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

			snap := s.Snapshot()
			res := session.Compute(snap)
			out := statsOutput{
				Folder:       s.Folder(),
				PromptTokens: res.Tokens,
				Report:       difficulty.NewReport(snap.SelectedFiles(), topN),
			}

			if opts.JSONOutput {
				data, err := json.MarshalIndent(out, "", "  ")
				if err != nil {
					return fmt.Errorf("failed to marshal stats: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if out.Report.Difficulty.FileCount == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), theme.DefaultTheme.Warning.Render("No files selected. Use --select or --all."))
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), formatStats(out))
			return nil
		},
	}

	sel.register(cmd)
	cmd.Flags().IntVar(&topN, "top", 5, "Number of largest files to show")

	return cmd
}

// labelStyle colors a difficulty label.
func labelStyle(label difficulty.Label) lipgloss.Style {
	t := theme.DefaultTheme
	switch label {
	case difficulty.Hard:
		return t.Error
	case difficulty.Medium:
		return t.Warning
	default:
		return t.Success
	}
}

func formatStats(out statsOutput) string {
	t := theme.DefaultTheme
	r := out.Report
	var b strings.Builder

	b.WriteString(t.Title.Render("Selection Statistics") + "\n\n")

	summaryItems := []string{
		fmt.Sprintf("Folder:         %s", out.Folder),
		fmt.Sprintf("Difficulty:     %s (score %.2f)", labelStyle(r.Difficulty.Label).Render(string(r.Difficulty.Label)), r.Difficulty.Score),
		fmt.Sprintf("Files:          %d", r.Difficulty.FileCount),
		fmt.Sprintf("Total Lines:    %s", humanize.Comma(int64(r.Difficulty.TotalLines))),
		fmt.Sprintf("Total Size:     %s", humanize.Bytes(uint64(r.TotalSize))),
		fmt.Sprintf("Prompt Tokens:  ~%s", difficulty.FormatTokens(out.PromptTokens)),
	}
	summaryBox := t.Box.
		BorderForeground(t.Colors.Cyan).
		Padding(1, 2).
		Render(strings.Join(summaryItems, "\n"))
	b.WriteString(summaryBox + "\n\n")

	b.WriteString(t.Header.Render("Language Distribution:") + "\n")
	for _, lang := range r.Languages {
		name := t.Info.Render(fmt.Sprintf("%-12s", lang.Name))
		percentage := t.Highlight.Render(fmt.Sprintf("%5.1f%%", lang.Percentage))
		details := t.Muted.Render(fmt.Sprintf("(%s tokens, %d files, %d lines)",
			difficulty.FormatTokenCount(lang.Tokens),
			lang.FileCount,
			lang.Lines,
		))
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", name, percentage, details))
	}

	b.WriteString("\n" + t.Header.Render("Largest Files (by tokens):") + "\n")
	for i, file := range r.LargestFiles {
		displayPath := shortenPath(file.Path, 50)

		var tokenStyle lipgloss.Style
		if file.Tokens > 10000 {
			tokenStyle = t.Error
		} else if file.Tokens > 5000 {
			tokenStyle = t.Warning
		} else {
			tokenStyle = t.Info
		}

		b.WriteString(fmt.Sprintf("  %2d. %-50s %s (%4.1f%%)\n",
			i+1,
			displayPath,
			tokenStyle.Render(difficulty.FormatTokenCount(file.Tokens)+" tokens"),
			file.Percentage,
		))
	}

	b.WriteString("\n" + t.Header.Render("Token Distribution:") + "\n")
	for _, dist := range r.Distribution {
		bar := t.Success.Render(strings.Repeat("█", int(dist.Percentage/5)))
		b.WriteString(fmt.Sprintf("  %-15s %3d files (%5.1f%%) %s\n",
			dist.RangeLabel+":",
			dist.FileCount,
			dist.Percentage,
			bar,
		))
	}

	b.WriteString(fmt.Sprintf("\nAverage tokens per file: %s\n", t.Highlight.Render(difficulty.FormatTokenCount(r.AvgTokens))))
	b.WriteString(fmt.Sprintf("Median tokens per file: %s\n", t.Highlight.Render(difficulty.FormatTokenCount(r.MedianTokens))))

	return b.String()
}

// shortenPath keeps the last limit-3 runes of path behind "...".
func shortenPath(path string, limit int) string {
	runes := []rune(path)
	if len(runes) <= limit {
		return path
	}
	return "..." + string(runes[len(runes)-(limit-3):])
}
