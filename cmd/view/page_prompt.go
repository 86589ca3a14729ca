package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

// promptPage previews the last applied prompt.
type promptPage struct {
	sharedState *sharedState
	viewport    viewport.Model
	seq         uint64
}

func NewPromptPage(state *sharedState) Page {
	return &promptPage{
		sharedState: state,
		viewport:    viewport.New(80, 20),
	}
}

func (p *promptPage) Name() string { return "prompt" }

func (p *promptPage) Init() tea.Cmd { return nil }

func (p *promptPage) Focus() tea.Cmd {
	p.refresh()
	return nil
}

func (p *promptPage) Blur() {}

func (p *promptPage) SetSize(width, height int) {
	p.viewport.Width = width
	p.viewport.Height = height - 1
	if p.viewport.Height < 1 {
		p.viewport.Height = 1
	}
}

// refresh loads the published prompt into the viewport once per recompute.
func (p *promptPage) refresh() {
	res, ok := p.sharedState.result()
	if !ok || p.sharedState.published.Seq == p.seq {
		return
	}
	p.seq = p.sharedState.published.Seq
	p.viewport.SetContent(res.Prompt)
}

func (p *promptPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg.(type) {
	case resultAppliedMsg:
		p.refresh()
		return p, nil
	case tea.KeyMsg:
		var cmd tea.Cmd
		p.viewport, cmd = p.viewport.Update(msg)
		return p, cmd
	}
	return p, nil
}

func (p *promptPage) View() string {
	if _, ok := p.sharedState.result(); !ok {
		return theme.DefaultTheme.Muted.Render("Waiting for the first prompt...")
	}
	footer := theme.DefaultTheme.Muted.Render(fmt.Sprintf("%3.f%%  (y to copy)", p.viewport.ScrollPercent()*100))
	return p.viewport.View() + "\n" + footer
}
