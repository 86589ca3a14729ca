// Package view is the interactive prompt builder. The bubbletea program is the
// single owner of the session: every mutation happens in Update, while folder
// loads and recomputes run as commands on bubbletea's goroutines.
package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-prompt/pkg/config"
	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/recompute"
	"github.com/mattsolo1/grove-prompt/pkg/session"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

// Options configure a TUI run.
type Options struct {
	Config    config.Config
	Session   *session.Session
	Dir       string // loaded on startup when set
	StartPage string
	Logger    *logrus.Entry
}

// Run starts the TUI and blocks until the user quits.
func Run(opts Options) error {
	m := newPagerModel(opts)
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// inputKind is what the pager's text input is collecting.
type inputKind int

const (
	inputNone inputKind = iota
	inputFolder
	inputInstruction
)

type pagerModel struct {
	pages      []Page
	activePage int
	state      *sharedState
	width      int
	height     int
	keys       pagerKeyMap
	help       help.Model

	input       textinput.Model
	inputKind   inputKind
	showDetails bool
	initialDir  string
}

func newPagerModel(opts Options) *pagerModel {
	if opts.Logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		opts.Logger = logrus.NewEntry(l)
	}
	state := newSharedState(opts.Config, opts.Session, opts.Logger)

	pages := []Page{
		NewTreePage(state),
		NewPromptPage(state),
		NewInstructionsPage(state),
		NewStatsPage(state),
		NewFilesPage(state),
	}

	activePage := 0
	for i, p := range pages {
		if p.Name() == opts.StartPage {
			activePage = i
			break
		}
	}

	m := &pagerModel{
		pages:      pages,
		activePage: activePage,
		state:      state,
		keys:       pagerKeys,
		help:       help.New(),
		input:      newInput(),
	}
	m.initialDir = opts.Dir
	return m
}

func newInput() textinput.Model {
	ti := textinput.New()
	ti.Cursor.SetMode(cursor.CursorStatic)
	return ti
}

func (m *pagerModel) Init() tea.Cmd {
	return tea.Batch(
		m.pages[m.activePage].Init(),
		m.state.loadFolderCmd(m.initialDir),
		m.state.changed(),
	)
}

func (m *pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if pub, cmd, ok := m.state.orch.Update(msg); ok {
		if pub == nil {
			return m, cmd
		}
		m.state.apply(*pub)
		return m, tea.Batch(cmd, m.broadcast(resultAppliedMsg{}))
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizePages()
		return m, nil

	case folderLoadedMsg:
		installed, cmd := m.state.applyFolder(msg)
		if !installed {
			return m, cmd
		}
		return m, tea.Batch(cmd, m.broadcast(folderChangedMsg{}))

	case statusMsg:
		m.state.status = string(msg)
		return m, nil

	case tea.KeyMsg:
		if m.inputKind != inputNone {
			return m, m.updateInput(msg)
		}
		if c, ok := m.pages[m.activePage].(capturer); ok && c.Capturing() {
			return m, m.updateActive(msg)
		}

		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextPage):
			m.nextPage()
			return m, m.pages[m.activePage].Focus()
		case key.Matches(msg, m.keys.PrevPage):
			m.prevPage()
			return m, m.pages[m.activePage].Focus()
		case key.Matches(msg, m.keys.Details):
			m.showDetails = !m.showDetails
			m.help.ShowAll = m.showDetails
			m.resizePages()
			return m, nil
		case key.Matches(msg, m.keys.OpenFolder):
			return m, m.openInput(inputFolder, "Folder: ", m.state.session.Folder())
		case key.Matches(msg, m.keys.Instruction):
			return m, m.openInput(inputInstruction, "Task: ", m.state.session.Instruction())
		case key.Matches(msg, m.keys.NextTaskType):
			name := m.state.session.TaskTypes.Next()
			m.state.status = "Task type: " + name
			return m, m.state.changed()
		case key.Matches(msg, m.keys.Copy):
			return m, m.copyPrompt()
		}
	}

	return m, m.updateActive(msg)
}

func (m *pagerModel) updateActive(msg tea.Msg) tea.Cmd {
	page, cmd := m.pages[m.activePage].Update(msg)
	m.pages[m.activePage] = page
	return cmd
}

// broadcast delivers msg to every page, not just the active one.
func (m *pagerModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, p := range m.pages {
		page, cmd := p.Update(msg)
		m.pages[i] = page
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *pagerModel) openInput(kind inputKind, prompt, value string) tea.Cmd {
	m.inputKind = kind
	m.input.Prompt = prompt
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *pagerModel) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeInput()
		return nil
	case tea.KeyEnter:
		kind, value := m.inputKind, m.input.Value()
		m.closeInput()
		switch kind {
		case inputFolder:
			return m.state.loadFolderCmd(value)
		case inputInstruction:
			if value == m.state.session.Instruction() {
				return nil
			}
			m.state.session.SetInstruction(value)
			return m.state.changed()
		}
		return nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *pagerModel) closeInput() {
	m.inputKind = inputNone
	m.input.Blur()
	m.input.SetValue("")
}

// copyPrompt hands the displayed prompt to the clipboard.
func (m *pagerModel) copyPrompt() tea.Cmd {
	res, ok := m.state.result()
	if !ok {
		m.state.status = "Nothing to copy yet"
		return nil
	}
	text := res.Prompt
	return func() tea.Msg {
		if err := clipboard.WriteAll(text); err != nil {
			return statusMsg(fmt.Sprintf("Error: copying prompt: %v", err))
		}
		return statusMsg(fmt.Sprintf("Copied prompt (~%s tokens)", difficulty.FormatTokens(res.Tokens)))
	}
}

// resizePages gives the pages whatever the header, tabs, status line and
// help footer leave free.
func (m *pagerModel) resizePages() {
	h := m.height - lipgloss.Height(m.renderHeader()) - 2 - lipgloss.Height(m.renderHelp())
	if m.showDetails {
		h -= lipgloss.Height(m.renderDetails())
	}
	if h < 1 {
		h = 1
	}
	for _, p := range m.pages {
		p.SetSize(m.width, h)
	}
}

func (m *pagerModel) nextPage() {
	m.pages[m.activePage].Blur()
	m.activePage = (m.activePage + 1) % len(m.pages)
	m.resizePages()
}

func (m *pagerModel) prevPage() {
	m.pages[m.activePage].Blur()
	m.activePage--
	if m.activePage < 0 {
		m.activePage = len(m.pages) - 1
	}
	m.resizePages()
}

func (m *pagerModel) View() string {
	parts := []string{m.renderHeader()}
	if m.showDetails {
		parts = append(parts, m.renderDetails())
	}
	parts = append(parts, m.renderTabs(), m.pages[m.activePage].View(), m.renderStatus(), m.renderHelp())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *pagerModel) renderHeader() string {
	t := theme.DefaultTheme
	s := m.state.session

	folder := s.Folder()
	if folder == "" {
		folder = t.Muted.Render("no folder (press o)")
	}
	title := t.Title.Render("gprompt") + "  " + folder

	template := "none"
	if active, ok := s.Instructions.Active(); ok {
		template = active.Name
	}

	fields := []string{
		"Task: " + t.Bold.Render(s.TaskTypes.Active()),
		"Template: " + t.Bold.Render(template),
	}
	if res, ok := m.state.result(); ok {
		label := res.Difficulty.Label
		fields = append(fields,
			"Difficulty: "+difficultyStyle(label).Render(string(label)),
			fmt.Sprintf("~%s tokens", difficulty.FormatTokens(res.Tokens)),
		)
	} else {
		fields = append(fields, t.Muted.Render("computing..."))
	}
	if m.state.orch.State() == recompute.Recomputing || m.state.orch.Pending() {
		fields = append(fields, t.Muted.Render("•"))
	}

	return title + "\n" + strings.Join(fields, t.Muted.Render(" │ "))
}

// renderDetails renders the difficulty tooltip.
func (m *pagerModel) renderDetails() string {
	t := theme.DefaultTheme
	tip := "No result yet"
	if res, ok := m.state.result(); ok {
		tip = res.Difficulty.Tooltip()
	}
	return t.Box.Padding(0, 1).Render(tip)
}

// renderHelp shows the active page's bindings, if any, above the pager's.
func (m *pagerModel) renderHelp() string {
	pager := m.help.View(m.keys)
	if k, ok := m.pages[m.activePage].(keyed); ok {
		return m.help.View(k.Keys()) + "\n" + pager
	}
	return pager
}

func (m *pagerModel) renderTabs() string {
	t := theme.DefaultTheme

	inactiveTab := lipgloss.NewStyle().
		Foreground(t.Colors.MutedText).
		Padding(0, 2)

	activeTab := lipgloss.NewStyle().
		Foreground(t.Colors.Green).
		Bold(true).
		Padding(0, 2)

	var tabs []string
	for i, p := range m.pages {
		style := inactiveTab
		if i == m.activePage {
			style = activeTab
		}
		tabs = append(tabs, style.Render(strings.ToUpper(p.Name())))
	}

	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m *pagerModel) renderStatus() string {
	if m.inputKind != inputNone {
		return m.input.View()
	}
	return statusStyle(m.state.status).Render(m.state.status)
}

func statusStyle(status string) lipgloss.Style {
	if strings.HasPrefix(status, "Error") {
		return theme.DefaultTheme.Error
	}
	return theme.DefaultTheme.Muted
}

func difficultyStyle(label difficulty.Label) lipgloss.Style {
	t := theme.DefaultTheme
	switch label {
	case difficulty.Hard:
		return t.Error.Bold(true)
	case difficulty.Medium:
		return t.Warning.Bold(true)
	default:
		return t.Success.Bold(true)
	}
}
