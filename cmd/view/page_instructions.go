package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

type editStage int

const (
	editNone editStage = iota
	editName
	editBody
	editTaskType
)

// instructionsPage manages the instruction templates and the task types.
// Row 0 is "no template"; row i is template i-1.
type instructionsPage struct {
	sharedState *sharedState
	cursor      int
	width       int
	height      int

	stage       editStage
	input       textinput.Model
	editingID   string // empty while creating a template
	pendingName string
	message     string
}

func NewInstructionsPage(state *sharedState) Page {
	return &instructionsPage{
		sharedState: state,
		input:       newInput(),
	}
}

func (p *instructionsPage) Name() string { return "instructions" }

func (p *instructionsPage) Init() tea.Cmd { return nil }

func (p *instructionsPage) Focus() tea.Cmd {
	p.clampCursor()
	return nil
}

func (p *instructionsPage) Blur() {
	p.cancelEdit()
	p.message = ""
}

func (p *instructionsPage) SetSize(width, height int) {
	p.width, p.height = width, height
	p.input.Width = width - 20
}

// Capturing reports whether a text input owns the keyboard.
func (p *instructionsPage) Capturing() bool { return p.stage != editNone }

func (p *instructionsPage) catalog() *catalog.Instructions {
	return p.sharedState.session.Instructions
}

func (p *instructionsPage) templates() []catalog.InstructionTemplate {
	return p.catalog().List()
}

// selected returns the template under the cursor, if any.
func (p *instructionsPage) selected() (catalog.InstructionTemplate, bool) {
	list := p.templates()
	if p.cursor < 1 || p.cursor > len(list) {
		return catalog.InstructionTemplate{}, false
	}
	return list[p.cursor-1], true
}

func (p *instructionsPage) clampCursor() {
	if n := len(p.templates()); p.cursor > n {
		p.cursor = n
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *instructionsPage) Update(msg tea.Msg) (Page, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	if p.stage != editNone {
		return p, p.updateEdit(keyMsg)
	}

	p.message = ""
	switch {
	case key.Matches(keyMsg, instructionsKeys.Up):
		if p.cursor > 0 {
			p.cursor--
		}
	case key.Matches(keyMsg, instructionsKeys.Down):
		if p.cursor < len(p.templates()) {
			p.cursor++
		}
	case key.Matches(keyMsg, instructionsKeys.Select):
		return p, p.activate()
	case key.Matches(keyMsg, instructionsKeys.New):
		p.editingID = ""
		return p, p.startEdit(editName, "Name: ", "")
	case key.Matches(keyMsg, instructionsKeys.Edit):
		t, ok := p.selected()
		if !ok {
			return p, nil
		}
		p.editingID = t.ID
		return p, p.startEdit(editName, "Name: ", t.Name)
	case key.Matches(keyMsg, instructionsKeys.Delete):
		return p, p.delete()
	case key.Matches(keyMsg, instructionsKeys.AddTaskType):
		return p, p.startEdit(editTaskType, "Task type: ", "")
	case key.Matches(keyMsg, instructionsKeys.DelTaskType):
		return p, p.removeTaskType()
	}
	return p, nil
}

// Keys returns the page bindings for the help footer.
func (p *instructionsPage) Keys() help.KeyMap { return instructionsKeys }

func (p *instructionsPage) activate() tea.Cmd {
	c := p.catalog()
	t, ok := p.selected()
	if !ok {
		if c.ActiveID() == "" {
			return nil
		}
		c.Deselect()
		return p.sharedState.changed()
	}
	if c.ActiveID() == t.ID {
		return nil
	}
	if err := c.Select(t.ID); err != nil {
		p.message = fmt.Sprintf("Error: %v", err)
		return nil
	}
	return p.sharedState.changed()
}

func (p *instructionsPage) delete() tea.Cmd {
	t, ok := p.selected()
	if !ok {
		return nil
	}
	c := p.catalog()
	before := c.ActiveID()
	if err := c.Delete(t.ID); err != nil {
		p.message = fmt.Sprintf("Error: %v", err)
		return nil
	}
	p.message = fmt.Sprintf("Deleted %q", t.Name)
	p.clampCursor()
	if c.ActiveID() == before {
		return nil
	}
	return p.sharedState.changed()
}

func (p *instructionsPage) removeTaskType() tea.Cmd {
	tt := p.sharedState.session.TaskTypes
	name := tt.Active()
	if err := tt.Remove(name); err != nil {
		p.message = fmt.Sprintf("Error: %v", err)
		return nil
	}
	p.message = fmt.Sprintf("Removed task type %q, now %q", name, tt.Active())
	return p.sharedState.changed()
}

func (p *instructionsPage) startEdit(stage editStage, prompt, value string) tea.Cmd {
	p.stage = stage
	p.input.Prompt = prompt
	p.input.SetValue(value)
	p.input.CursorEnd()
	return p.input.Focus()
}

func (p *instructionsPage) cancelEdit() {
	p.stage = editNone
	p.editingID = ""
	p.pendingName = ""
	p.input.Blur()
	p.input.SetValue("")
}

func (p *instructionsPage) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch msg.Type {
	case tea.KeyEsc:
		p.cancelEdit()
		p.message = "Cancelled"
		return nil
	case tea.KeyEnter:
		return p.submitEdit()
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return cmd
}

func (p *instructionsPage) submitEdit() tea.Cmd {
	value := p.input.Value()

	switch p.stage {
	case editName:
		if strings.TrimSpace(value) == "" {
			p.message = "Error: name must not be empty"
			return nil
		}
		p.pendingName = value
		body := ""
		if t, ok := p.catalog().Get(p.editingID); ok {
			body = t.Body
		}
		return p.startEdit(editBody, "Body: ", body)

	case editBody:
		c := p.catalog()
		name, id := p.pendingName, p.editingID
		p.cancelEdit()
		if id == "" {
			t, err := c.Add(name, value)
			if err != nil {
				p.message = fmt.Sprintf("Error: %v", err)
				return nil
			}
			p.message = fmt.Sprintf("Added %q", t.Name)
			p.cursor = len(c.List())
			return nil
		}
		if err := c.Update(id, name, value); err != nil {
			p.message = fmt.Sprintf("Error: %v", err)
			return nil
		}
		p.message = fmt.Sprintf("Updated %q", name)
		if c.ActiveID() == id {
			return p.sharedState.changed()
		}
		return nil

	case editTaskType:
		p.cancelEdit()
		tt := p.sharedState.session.TaskTypes
		if err := tt.Add(value); err != nil {
			p.message = fmt.Sprintf("Error: %v", err)
			return nil
		}
		name := strings.TrimSpace(value)
		if err := tt.SetActive(name); err != nil {
			p.message = fmt.Sprintf("Error: %v", err)
			return nil
		}
		p.message = fmt.Sprintf("Added task type %q", name)
		return p.sharedState.changed()
	}
	return nil
}

func (p *instructionsPage) View() string {
	t := theme.DefaultTheme
	var b strings.Builder

	tt := p.sharedState.session.TaskTypes
	var names []string
	for _, name := range tt.Names() {
		if name == tt.Active() {
			names = append(names, t.Selected.Render(name))
		} else {
			names = append(names, t.Muted.Render(name))
		}
	}
	b.WriteString(t.Header.Render("Task types") + "  " + strings.Join(names, t.Muted.Render(" · ")) + "\n\n")

	b.WriteString(t.Header.Render("Instruction templates") + "\n")
	activeID := p.catalog().ActiveID()
	b.WriteString(p.renderRow(0, "(no template)", activeID == "") + "\n")
	for i, tmpl := range p.templates() {
		b.WriteString(p.renderRow(i+1, tmpl.Name, tmpl.ID == activeID) + "\n")
	}

	if tmpl, ok := p.selected(); ok {
		width := p.width - 4
		if width < 20 {
			width = 20
		}
		b.WriteString("\n" + t.Box.Width(width).Padding(0, 1).Render(tmpl.Body) + "\n")
	}

	switch {
	case p.stage != editNone:
		b.WriteString("\n" + p.input.View())
	case p.message != "":
		b.WriteString("\n" + statusStyle(p.message).Render(p.message))
	}
	return b.String()
}

func (p *instructionsPage) renderRow(index int, name string, active bool) string {
	t := theme.DefaultTheme
	cursor := "  "
	if index == p.cursor {
		cursor = theme.IconArrowRight + " "
	}
	check := theme.IconUnchecked
	style := lipgloss.NewStyle()
	if active {
		check = theme.IconChecked
		style = t.Selected
	}
	return cursor + check + " " + style.Render(name)
}
