// Package catalog holds the user-editable task types and instruction
// templates. Catalogs are explicitly owned objects passed to whoever needs
// them; there is no package-level state.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// Built-in task types.
const (
	TaskArchitect      = "Architect"
	TaskEngineer       = "Engineer"
	TaskAtomicTaskList = "Atomic Task List"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrEmptyName         = errors.New("name must not be empty")
	ErrDuplicateTaskType = errors.New("task type already exists")
	ErrLastTaskType      = errors.New("cannot remove the last task type")
)

// DefaultTaskTypes returns the built-in task types in display order.
func DefaultTaskTypes() []string {
	return []string{TaskArchitect, TaskEngineer, TaskAtomicTaskList}
}

// TaskTypes is an ordered list of distinct task-type names with one active.
type TaskTypes struct {
	names  []string
	active int
}

// NewTaskTypes creates a catalog from names. Duplicates and blank names are
// rejected. The first name is active.
func NewTaskTypes(names ...string) (*TaskTypes, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("task types: %w", ErrEmptyName)
	}
	c := &TaskTypes{}
	for _, name := range names {
		if err := c.Add(name); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Add appends a task type.
func (c *TaskTypes) Add(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if c.index(name) >= 0 {
		return fmt.Errorf("%q: %w", name, ErrDuplicateTaskType)
	}
	c.names = append(c.names, name)
	return nil
}

// Remove deletes a task type. When the active one is removed, the first
// remaining task type becomes active.
func (c *TaskTypes) Remove(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("task type %q: %w", name, ErrNotFound)
	}
	if len(c.names) == 1 {
		return ErrLastTaskType
	}
	c.names = append(c.names[:i], c.names[i+1:]...)
	switch {
	case c.active == i:
		c.active = 0
	case c.active > i:
		c.active--
	}
	return nil
}

// SetActive makes name the active task type.
func (c *TaskTypes) SetActive(name string) error {
	i := c.index(name)
	if i < 0 {
		return fmt.Errorf("task type %q: %w", name, ErrNotFound)
	}
	c.active = i
	return nil
}

// Next activates the following task type, wrapping around, and returns it.
func (c *TaskTypes) Next() string {
	c.active = (c.active + 1) % len(c.names)
	return c.names[c.active]
}

// Active returns the active task type name.
func (c *TaskTypes) Active() string {
	return c.names[c.active]
}

// Names returns a copy of the task types in order.
func (c *TaskTypes) Names() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

func (c *TaskTypes) Contains(name string) bool {
	return c.index(name) >= 0
}

func (c *TaskTypes) index(name string) int {
	for i, n := range c.names {
		if n == name {
			return i
		}
	}
	return -1
}
