package catalog

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// InstructionTemplate is a named, reusable block of prompt text.
type InstructionTemplate struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Body string `json:"body"`
}

// DefaultInstructions returns the predefined templates available at startup.
func DefaultInstructions() []InstructionTemplate {
	return []InstructionTemplate{
		{
			Name: "Concise",
			Body: "Keep the answer concise. Only include the code and the explanation that are strictly necessary to complete the task.",
		},
		{
			Name: "Explain Reasoning",
			Body: "Before writing any code, explain your reasoning step by step and call out every assumption you make about the existing code.",
		},
		{
			Name: "Preserve Style",
			Body: "Match the existing code style, naming and formatting of the provided files. Do not reformat or rename code that is unrelated to the task.",
		},
	}
}

// Instructions is the mutable collection of instruction templates with an
// optional active selection.
type Instructions struct {
	items    []InstructionTemplate
	activeID string // empty when no template is active
}

// NewInstructions creates a catalog from templates, assigning ids to entries
// that have none. The first template is active.
func NewInstructions(templates ...InstructionTemplate) (*Instructions, error) {
	c := &Instructions{}
	for _, t := range templates {
		if _, err := c.add(t); err != nil {
			return nil, err
		}
	}
	if len(c.items) > 0 {
		c.activeID = c.items[0].ID
	}
	return c, nil
}

// Add appends a new template and returns it with its assigned id.
func (c *Instructions) Add(name, body string) (InstructionTemplate, error) {
	return c.add(InstructionTemplate{Name: name, Body: body})
}

func (c *Instructions) add(t InstructionTemplate) (InstructionTemplate, error) {
	t.Name = strings.TrimSpace(t.Name)
	if t.Name == "" {
		return InstructionTemplate{}, ErrEmptyName
	}
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	c.items = append(c.items, t)
	return t, nil
}

// Update replaces the name and body of an existing template.
func (c *Instructions) Update(id, name, body string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("instruction %s: %w", id, ErrNotFound)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	c.items[i].Name = name
	c.items[i].Body = body
	return nil
}

// Delete removes a template. If it was active, the first remaining template
// becomes active, or none when the catalog is now empty.
func (c *Instructions) Delete(id string) error {
	i := c.index(id)
	if i < 0 {
		return fmt.Errorf("instruction %s: %w", id, ErrNotFound)
	}
	c.items = append(c.items[:i], c.items[i+1:]...)
	if c.activeID == id {
		c.activeID = ""
		if len(c.items) > 0 {
			c.activeID = c.items[0].ID
		}
	}
	return nil
}

// Select makes the template with id active.
func (c *Instructions) Select(id string) error {
	if c.index(id) < 0 {
		return fmt.Errorf("instruction %s: %w", id, ErrNotFound)
	}
	c.activeID = id
	return nil
}

// Deselect clears the active template.
func (c *Instructions) Deselect() {
	c.activeID = ""
}

// ActiveID returns the active template id, empty when none.
func (c *Instructions) ActiveID() string {
	return c.activeID
}

// Active returns the active template, if any.
func (c *Instructions) Active() (InstructionTemplate, bool) {
	i := c.index(c.activeID)
	if i < 0 {
		return InstructionTemplate{}, false
	}
	return c.items[i], true
}

// ActiveBody returns the body of the active template, or "" when none.
func (c *Instructions) ActiveBody() string {
	t, _ := c.Active()
	return t.Body
}

// Get returns the template with id.
func (c *Instructions) Get(id string) (InstructionTemplate, bool) {
	i := c.index(id)
	if i < 0 {
		return InstructionTemplate{}, false
	}
	return c.items[i], true
}

// FindByName returns the first template whose name matches case-insensitively.
func (c *Instructions) FindByName(name string) (InstructionTemplate, bool) {
	for _, t := range c.items {
		if strings.EqualFold(t.Name, name) {
			return t, true
		}
	}
	return InstructionTemplate{}, false
}

// List returns a copy of all templates in order.
func (c *Instructions) List() []InstructionTemplate {
	out := make([]InstructionTemplate, len(c.items))
	copy(out, c.items)
	return out
}

func (c *Instructions) Len() int {
	return len(c.items)
}

func (c *Instructions) index(id string) int {
	if id == "" {
		return -1
	}
	for i, t := range c.items {
		if t.ID == id {
			return i
		}
	}
	return -1
}
