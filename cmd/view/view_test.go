package view

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/config"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/render"
	"github.com/mattsolo1/grove-prompt/pkg/session"
)

func fixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"b.txt":       "bravo\n",
		"c.txt":       "charlie",
		"pkg/main.go": "package main\n\nfunc main() {}\n",
	}
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func newTestModel(t *testing.T, dir string) *pagerModel {
	t.Helper()
	cfg := config.Default()
	cfg.Debounce = time.Millisecond
	taskTypes, err := cfg.TaskTypeCatalog()
	require.NoError(t, err)
	instructions, err := cfg.InstructionCatalog()
	require.NoError(t, err)

	m := newPagerModel(Options{
		Config:  cfg,
		Session: session.New(taskTypes, instructions, cfg.Fence),
		Dir:     dir,
	})
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

// drain runs cmd and every command that follows from it through Update,
// the way the bubbletea runtime would, until nothing is left to do.
func drain(t *testing.T, m *pagerModel, cmd tea.Cmd) {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 1000, "command loop did not settle")
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}

		done := make(chan tea.Msg, 1)
		go func() { done <- next() }()
		var msg tea.Msg
		select {
		case msg = <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("command did not return")
		}

		switch msg := msg.(type) {
		case nil, tea.QuitMsg:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		default:
			_, c := m.Update(msg)
			queue = append(queue, c)
		}
	}
}

func press(t *testing.T, m *pagerModel, keys ...tea.KeyMsg) {
	t.Helper()
	for _, k := range keys {
		_, cmd := m.Update(k)
		drain(t, m, cmd)
	}
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	space = tea.KeyMsg{Type: tea.KeySpace}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	tab   = tea.KeyMsg{Type: tea.KeyTab}
)

func prompt(t *testing.T, m *pagerModel) string {
	t.Helper()
	res, ok := m.state.result()
	require.True(t, ok, "no result applied")
	return res.Prompt
}

func TestPager_InitLoadsFolder(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())

	assert.Equal(t, dir, m.state.session.Folder())
	assert.True(t, strings.HasPrefix(m.state.status, "Loaded "), m.state.status)
	assert.False(t, m.state.loading)
	assert.Contains(t, prompt(t, m), "<files>\n"+render.NoFilesMarker+"\n</files>")
	// Only Atomic Task List embeds the directory tree.
	assert.NotContains(t, prompt(t, m), "└── pkg")

	tree := m.pages[0].(*treePage)
	require.Len(t, tree.visibleNodes, 3)
	assert.Equal(t, "b.txt", tree.visibleNodes[0].node.Name)
	assert.Equal(t, "pkg", tree.visibleNodes[2].node.Name)

	view := m.View()
	assert.Contains(t, view, "gprompt")
	assert.Contains(t, view, "TREE")
	assert.Contains(t, view, "Difficulty: Easy")
}

func TestPager_NoFolder(t *testing.T) {
	m := newTestModel(t, "")
	drain(t, m, m.Init())

	assert.Empty(t, m.state.session.Folder())
	assert.Contains(t, prompt(t, m), render.NoFilesMarker)
	assert.Contains(t, m.View(), "no folder (press o)")
}

func TestPager_SelectingFilesRecomputes(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())

	// Cursor starts on b.txt.
	press(t, m, space)
	p := prompt(t, m)
	assert.Contains(t, p, "File: "+filepath.Join(dir, "b.txt")+"\n```\nbravo\n\n```")
	assert.NotContains(t, p, "charlie")

	// A folder selects every file beneath it.
	press(t, m, runes("G"), space)
	p = prompt(t, m)
	assert.Contains(t, p, "File: "+filepath.Join(dir, "pkg", "main.go"))

	res, _ := m.state.result()
	assert.Equal(t, 2, res.Difficulty.FileCount)
	assert.Equal(t, m.state.orch.AppliedSeq(), m.state.published.Seq)

	// Toggling the folder again clears it.
	press(t, m, space)
	res, _ = m.state.result()
	assert.Equal(t, 1, res.Difficulty.FileCount)

	press(t, m, runes("A"))
	res, _ = m.state.result()
	assert.Equal(t, 3, res.Difficulty.FileCount)
}

func TestPager_BurstOfChangesAppliesLatest(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())

	// Three toggles without letting the timers fire.
	var cmds []tea.Cmd
	for _, k := range []tea.KeyMsg{space, runes("j"), space, runes("j"), space} {
		_, cmd := m.Update(k)
		cmds = append(cmds, cmd)
	}
	before := m.state.orch.Stats().Dispatched
	drain(t, m, tea.Batch(cmds...))

	assert.Equal(t, before+1, m.state.orch.Stats().Dispatched)
	res, _ := m.state.result()
	assert.Equal(t, 3, res.Difficulty.FileCount)
}

func TestPager_StaleFolderLoadIgnored(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())
	press(t, m, space)

	_, cmd := m.Update(folderLoadedMsg{
		seq:    m.state.loadSeq - 1,
		folder: "/elsewhere",
		result: &filetree.Result{Root: &filetree.Node{Name: "elsewhere", Children: []*filetree.Node{}}},
	})
	assert.Nil(t, cmd)
	assert.Equal(t, dir, m.state.session.Folder())
	assert.Equal(t, 1, m.state.session.Selection().Len())
}

func TestPager_OpenFolder(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, "")
	drain(t, m, m.Init())

	// An empty path does nothing.
	press(t, m, runes("o"))
	assert.Equal(t, inputFolder, m.inputKind)
	press(t, m, enter)
	assert.Equal(t, inputNone, m.inputKind)
	assert.Empty(t, m.state.session.Folder())

	// Esc abandons the input.
	press(t, m, runes("o"), runes(dir), esc)
	assert.Empty(t, m.state.session.Folder())

	press(t, m, runes("o"), runes(dir), enter)
	assert.Equal(t, dir, m.state.session.Folder())

	// A missing folder keeps the current one.
	press(t, m, runes("o"), tea.KeyMsg{Type: tea.KeyCtrlU}, runes(filepath.Join(dir, "missing")), enter)
	assert.Equal(t, dir, m.state.session.Folder())
	assert.True(t, strings.HasPrefix(m.state.status, "Error:"), m.state.status)
}

func TestPager_ReloadClearsSelection(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())
	press(t, m, space)
	require.Equal(t, 1, m.state.session.Selection().Len())

	drain(t, m, m.state.loadFolderCmd(dir))
	assert.Equal(t, 0, m.state.session.Selection().Len())
	assert.Contains(t, prompt(t, m), render.NoFilesMarker)
}

func TestPager_TaskInstruction(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())

	press(t, m, runes("i"), runes("Rename bravo"), enter)
	assert.Equal(t, "Rename bravo", m.state.session.Instruction())
	assert.Contains(t, prompt(t, m), "<task_instruction>\nRename bravo\n</task_instruction>")
}

func TestPager_CycleTaskType(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	tt := m.state.session.TaskTypes
	require.Equal(t, catalog.TaskArchitect, tt.Active())

	press(t, m, runes("t"))
	assert.Equal(t, catalog.TaskEngineer, tt.Active())
	assert.Equal(t, "Task type: "+catalog.TaskEngineer, m.state.status)
	assert.Contains(t, prompt(t, m), render.EngineerPrompt)
	assert.NotContains(t, prompt(t, m), "└── pkg")

	press(t, m, runes("t"))
	assert.Equal(t, catalog.TaskAtomicTaskList, tt.Active())
	assert.Contains(t, prompt(t, m), "└── pkg\n    └── main.go")
}

func TestPager_Tabs(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())

	press(t, m, tab)
	assert.Equal(t, "prompt", m.pages[m.activePage].Name())
	assert.Contains(t, m.View(), "task_type")

	shiftTab := tea.KeyMsg{Type: tea.KeyShiftTab}
	press(t, m, shiftTab, shiftTab)
	assert.Equal(t, "files", m.pages[m.activePage].Name())
	press(t, m, shiftTab)
	assert.Equal(t, "stats", m.pages[m.activePage].Name())
	assert.Contains(t, m.View(), "Difficulty:")

	press(t, m, runes("?"))
	assert.True(t, m.showDetails)
}

func TestPager_TreeSearchCapturesKeys(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	tree := m.pages[0].(*treePage)

	// While searching, "t" and "q" are query text rather than commands.
	press(t, m, runes("/"), runes("pkg"), enter)
	assert.False(t, tree.isSearching)
	assert.Equal(t, "pkg", tree.visibleNodes[tree.cursor].node.Name)

	press(t, m, runes("/"), runes("tq"), esc)
	assert.Equal(t, catalog.TaskArchitect, m.state.session.TaskTypes.Active())
}

func TestPager_InstructionTemplates(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	press(t, m, tab, tab)
	require.Equal(t, "instructions", m.pages[m.activePage].Name())
	page := m.pages[m.activePage].(*instructionsPage)
	c := m.state.session.Instructions
	first := c.List()[0]

	press(t, m, runes("n"), runes("Mine"), enter)
	assert.True(t, page.Capturing())
	press(t, m, runes("Be brief"), enter)
	assert.False(t, page.Capturing())

	added, ok := c.FindByName("Mine")
	require.True(t, ok)
	assert.Equal(t, "Be brief", added.Body)
	assert.Equal(t, c.Len(), page.cursor)

	// Adding does not activate; enter does.
	assert.Equal(t, first.ID, c.ActiveID())
	press(t, m, enter)
	assert.Equal(t, added.ID, c.ActiveID())
	assert.Contains(t, prompt(t, m), "<custom_instruction>\nBe brief\n</custom_instruction>")

	// Deleting the active template falls back to the first one.
	press(t, m, runes("D"))
	_, ok = c.FindByName("Mine")
	assert.False(t, ok)
	assert.Equal(t, first.ID, c.ActiveID())
	assert.Contains(t, prompt(t, m), "<custom_instruction>\n"+first.Body+"\n</custom_instruction>")

	// Row 0 deselects.
	page.cursor = 0
	press(t, m, enter)
	assert.Empty(t, c.ActiveID())
	assert.Contains(t, prompt(t, m), "<custom_instruction>\n\n</custom_instruction>")
}

func TestPager_TaskTypeEditing(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	press(t, m, tab, tab)
	tt := m.state.session.TaskTypes

	press(t, m, runes("+"), runes("Refactor"), enter)
	assert.Equal(t, "Refactor", tt.Active())
	assert.Contains(t, prompt(t, m), "Complete the following refactor task")

	press(t, m, runes("-"))
	assert.False(t, tt.Contains("Refactor"))
	assert.NotContains(t, prompt(t, m), "refactor task")
}

func TestPager_Quit(t *testing.T) {
	m := newTestModel(t, "")
	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestPager_FilesPage(t *testing.T) {
	dir := fixture(t)
	m := newTestModel(t, dir)
	drain(t, m, m.Init())
	page := m.pages[len(m.pages)-1].(*filesPage)
	m.activePage = len(m.pages) - 1
	page.Focus()
	assert.Contains(t, m.View(), "No files selected")

	require.NoError(t, m.state.session.SelectAll())
	drain(t, m, m.state.changed())
	require.Len(t, page.list.Items(), 3)
	first := page.list.Items()[0].(fileItem)
	assert.Equal(t, "b.txt", first.path)
	assert.Equal(t, 2, first.lines)
	assert.Equal(t, filepath.Join("pkg", "main.go"), page.list.Items()[2].(fileItem).path)

	press(t, m, runes("x"))
	assert.Len(t, page.list.Items(), 2)
	assert.Equal(t, 2, m.state.session.Selection().Len())
	res, _ := m.state.result()
	assert.Equal(t, 2, res.Difficulty.FileCount)
	assert.NotContains(t, res.Prompt, "bravo")
}

func TestPager_HelpFollowsActivePage(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())

	view := m.View()
	assert.Contains(t, view, "select all/none")
	assert.Contains(t, view, "difficulty details")

	press(t, m, tab)
	view = m.View()
	assert.NotContains(t, view, "select all/none")
	assert.Contains(t, view, "difficulty details")

	press(t, m, tab)
	assert.Contains(t, m.View(), "new template")
}

func TestPager_TreeBindings(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	tree := m.pages[0].(*treePage)

	press(t, m, runes("x"))
	assert.Equal(t, 1, m.state.session.Selection().Len())

	press(t, m, runes("j"), runes("j"))
	require.Equal(t, "pkg", tree.visibleNodes[tree.cursor].node.Name)
	press(t, m, runes("l"))
	assert.Len(t, tree.visibleNodes, 4)
	press(t, m, runes("z"), runes("c"))
	assert.Len(t, tree.visibleNodes, 3)
}

func TestPager_DeletingInactiveTemplateKeepsResult(t *testing.T) {
	m := newTestModel(t, fixture(t))
	drain(t, m, m.Init())
	press(t, m, tab, tab)
	c := m.state.session.Instructions
	active := c.ActiveID()

	press(t, m, runes("n"), runes("Scratch"), enter, runes("notes"), enter)
	triggers := m.state.orch.Stats().Triggers
	seq := m.state.published.Seq

	press(t, m, runes("D"))
	_, ok := c.FindByName("Scratch")
	assert.False(t, ok)
	assert.Equal(t, active, c.ActiveID())
	assert.Equal(t, triggers, m.state.orch.Stats().Triggers)
	assert.Equal(t, seq, m.state.published.Seq)
}
