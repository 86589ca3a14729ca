package view

import (
	"github.com/charmbracelet/bubbles/key"
)

// pagerKeyMap defines the key bindings for the main pager view.
type pagerKeyMap struct {
	Quit         key.Binding
	Details      key.Binding
	NextPage     key.Binding
	PrevPage     key.Binding
	OpenFolder   key.Binding
	Instruction  key.Binding
	NextTaskType key.Binding
	Copy         key.Binding
}

// ShortHelp returns keybindings to be shown in the footer.
func (k pagerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Details, k.NextPage, k.OpenFolder, k.Instruction, k.NextTaskType, k.Copy, k.Quit}
}

// FullHelp returns keybindings for the expanded help view.
func (k pagerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextPage, k.PrevPage, k.Details, k.Quit},
		{k.OpenFolder, k.Instruction, k.NextTaskType, k.Copy},
	}
}

var pagerKeys = pagerKeyMap{
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
	Details: key.NewBinding(
		key.WithKeys("?"),
		key.WithHelp("?", "difficulty details"),
	),
	NextPage: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next page"),
	),
	PrevPage: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "prev page"),
	),
	OpenFolder: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open folder"),
	),
	Instruction: key.NewBinding(
		key.WithKeys("i"),
		key.WithHelp("i", "task instruction"),
	),
	NextTaskType: key.NewBinding(
		key.WithKeys("t"),
		key.WithHelp("t", "next task type"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy prompt"),
	),
}

// treeKeyMap defines the tree page bindings.
type treeKeyMap struct {
	Toggle    key.Binding
	Expand    key.Binding
	SelectAll key.Binding
	Fold      key.Binding
	Search    key.Binding
	Up        key.Binding
	Down      key.Binding
}

func (k treeKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Expand, k.SelectAll}
}

func (k treeKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Toggle, k.Expand, k.SelectAll},
		{k.Fold, k.Search},
	}
}

var treeKeys = treeKeyMap{
	Toggle: key.NewBinding(
		key.WithKeys(" ", "x"),
		key.WithHelp("space/x", "select"),
	),
	Expand: key.NewBinding(
		key.WithKeys("enter", "l"),
		key.WithHelp("enter", "expand/collapse"),
	),
	SelectAll: key.NewBinding(
		key.WithKeys("A"),
		key.WithHelp("A", "select all/none"),
	),
	Fold: key.NewBinding(
		key.WithKeys("z"),
		key.WithHelp("za/zO/zc/zR/zM", "fold operations"),
	),
	Search: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/ n N", "search"),
	),
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j gg/G ctrl-d/u", "down"),
	),
}

// instructionsKeyMap defines the instructions page bindings.
type instructionsKeyMap struct {
	Up          key.Binding
	Down        key.Binding
	Select      key.Binding
	New         key.Binding
	Edit        key.Binding
	Delete      key.Binding
	AddTaskType key.Binding
	DelTaskType key.Binding
}

func (k instructionsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Select, k.New, k.Edit, k.Delete}
}

func (k instructionsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Select, k.New, k.Edit, k.Delete},
		{k.AddTaskType, k.DelTaskType},
	}
}

var instructionsKeys = instructionsKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter", " "),
		key.WithHelp("enter", "use template"),
	),
	New: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n", "new template"),
	),
	Edit: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "edit template"),
	),
	Delete: key.NewBinding(
		key.WithKeys("D"),
		key.WithHelp("D", "delete template"),
	),
	AddTaskType: key.NewBinding(
		key.WithKeys("+"),
		key.WithHelp("+", "add task type"),
	),
	DelTaskType: key.NewBinding(
		key.WithKeys("-"),
		key.WithHelp("-", "remove active task type"),
	),
}
