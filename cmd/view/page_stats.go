package view

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

// statsPage summarizes the last applied recompute.
type statsPage struct {
	sharedState   *sharedState
	width, height int
}

func NewStatsPage(state *sharedState) Page {
	return &statsPage{sharedState: state}
}

func (p *statsPage) Name() string { return "stats" }

func (p *statsPage) Init() tea.Cmd { return nil }

func (p *statsPage) Focus() tea.Cmd { return nil }

func (p *statsPage) Blur() {}

func (p *statsPage) SetSize(width, height int) {
	p.width, p.height = width, height
}

func (p *statsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	return p, nil
}

func (p *statsPage) View() string {
	t := theme.DefaultTheme
	res, ok := p.sharedState.result()
	if !ok {
		return t.Muted.Render("Waiting for the first prompt...")
	}

	var b strings.Builder
	d := res.Difficulty

	summary := []string{
		fmt.Sprintf("Difficulty:     %s", difficultyStyle(d.Label).Render(string(d.Label))),
		fmt.Sprintf("Score:          %.2f", d.Score),
		fmt.Sprintf("Files:          %d", d.FileCount),
		fmt.Sprintf("Total Lines:    %d", d.TotalLines),
		fmt.Sprintf("Prompt Tokens:  ~%s", difficulty.FormatTokens(res.Tokens)),
	}
	if tree := p.sharedState.session.Tree(); tree != nil {
		dirs, files := filetree.Count(tree.Root)
		summary = append(summary, fmt.Sprintf("Folder:         %d folders, %d files, %d text", dirs, files, len(tree.Files)))
	}
	b.WriteString(t.Box.BorderForeground(t.Colors.Cyan).Padding(0, 2).Render(strings.Join(summary, "\n")) + "\n\n")

	b.WriteString(t.Header.Render("Bands:") + "\n")
	for _, band := range []struct {
		label difficulty.Label
		rule  string
	}{
		{difficulty.Easy, fmt.Sprintf("score ≤ %.0f", difficulty.EasyMax)},
		{difficulty.Medium, fmt.Sprintf("%.0f < score ≤ %.0f", difficulty.EasyMax, difficulty.MediumMax)},
		{difficulty.Hard, fmt.Sprintf("score > %.0f", difficulty.MediumMax)},
	} {
		marker := "  "
		if band.label == d.Label {
			marker = theme.IconArrowRight + " "
		}
		b.WriteString(fmt.Sprintf("%s%s %s\n", marker, difficultyStyle(band.label).Render(fmt.Sprintf("%-7s", band.label)), t.Muted.Render(band.rule)))
	}

	if len(res.Languages) > 0 {
		b.WriteString("\n" + t.Header.Render("Language Distribution:") + "\n")
		for _, lang := range res.Languages {
			name := t.Info.Render(fmt.Sprintf("%-12s", lang.Name))
			percentage := t.Highlight.Render(fmt.Sprintf("%5.1f%%", lang.Percentage))
			details := t.Muted.Render(fmt.Sprintf("(%s tokens, %d files, %d lines)",
				difficulty.FormatTokenCount(lang.Tokens), lang.FileCount, lang.Lines))
			b.WriteString(fmt.Sprintf("  %s %s  %s\n", name, percentage, details))
		}
	}

	return strings.TrimSuffix(b.String(), "\n")
}
