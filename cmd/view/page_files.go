package view

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

type fileItem struct {
	id     string
	path   string
	lines  int
	tokens int
	text   bool
}

func (i fileItem) Title() string { return i.path }
func (i fileItem) Description() string {
	if !i.text {
		return "not text, left out of the prompt"
	}
	return fmt.Sprintf("%d lines, ~%s tokens", i.lines, difficulty.FormatTokenCount(i.tokens))
}
func (i fileItem) FilterValue() string { return i.path }

type itemDelegate struct{}

func (d itemDelegate) Height() int { return 1 }
func (d itemDelegate) Spacing() int { return 0 }
func (d itemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d itemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	i, ok := item.(fileItem)
	if !ok {
		return
	}

	str := i.Title()
	fn := lipgloss.NewStyle().Padding(0, 0, 0, 2)
	if index == m.Index() {
		str = theme.IconArrowRight + " " + str
	} else {
		str = "  " + str
	}

	fmt.Fprint(w, fn.Render(str)+" "+theme.DefaultTheme.Muted.Render(i.Description()))
}

// filesPage lists the selected files in prompt order. x drops the file
// under the cursor from the selection.
type filesPage struct {
	sharedState *sharedState
	list        list.Model
	width       int
	height      int
}

func NewFilesPage(state *sharedState) Page {
	l := list.New([]list.Item{}, itemDelegate{}, 0, 0)
	l.Title = "Selected Files"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)
	l.SetShowHelp(false)
	l.DisableQuitKeybindings()
	return &filesPage{
		sharedState: state,
		list:        l,
	}
}

func (p *filesPage) Name() string { return "files" }

func (p *filesPage) Init() tea.Cmd { return nil }

func (p *filesPage) Focus() tea.Cmd {
	p.refresh()
	return nil
}

func (p *filesPage) Blur() {}

// Capturing reports whether the filter input owns the keyboard.
func (p *filesPage) Capturing() bool {
	return p.list.FilterState() == list.Filtering
}

func (p *filesPage) SetSize(width, height int) {
	p.width = width
	p.height = height
	p.list.SetWidth(width)
	p.list.SetHeight(height)
}

// refresh rebuilds the items from the live selection.
func (p *filesPage) refresh() tea.Cmd {
	p.list.SetItems(nil)
	tree := p.sharedState.session.Tree()
	if tree == nil {
		return nil
	}
	sel := p.sharedState.session.Selection()

	var items []list.Item
	for _, leaf := range filetree.Leaves(tree.Root) {
		if !sel.Contains(leaf.ID) {
			continue
		}
		item := fileItem{id: leaf.ID, path: p.relative(leaf.Path)}
		if rec, ok := tree.Lookup(leaf.Path); ok {
			item.text = true
			item.lines = rec.LineCount
			item.tokens = difficulty.EstimateTokens(rec.Content)
		}
		items = append(items, item)
	}
	return p.list.SetItems(items)
}

func (p *filesPage) relative(path string) string {
	if rel, err := filepath.Rel(p.sharedState.session.Folder(), path); err == nil {
		return rel
	}
	return path
}

func (p *filesPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case resultAppliedMsg, folderChangedMsg:
		return p, p.refresh()
	case tea.KeyMsg:
		if !p.Capturing() && msg.String() == "x" {
			item, ok := p.list.SelectedItem().(fileItem)
			if !ok {
				return p, nil
			}
			p.sharedState.session.Selection().Remove(item.id)
			return p, tea.Batch(p.refresh(), p.sharedState.changed())
		}
	}

	var cmd tea.Cmd
	p.list, cmd = p.list.Update(msg)
	return p, cmd
}

func (p *filesPage) View() string {
	if len(p.list.Items()) == 0 && p.list.FilterState() == list.Unfiltered {
		return theme.DefaultTheme.Muted.Render("No files selected. Pick some on the tree page.")
	}
	return p.list.View()
}
