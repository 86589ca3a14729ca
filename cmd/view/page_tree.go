package view

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/theme"
)

// --- Page Implementation ---

type treePage struct {
	sharedState *sharedState

	// Tree view state
	cursor        int
	visibleNodes  []*nodeWithLevel
	expandedPaths map[string]bool
	scrollOffset  int

	// Search state
	searchQuery   string
	isSearching   bool
	searchResults []int
	searchCursor  int

	// Other state
	width, height int
	lastKey       string
}

type nodeWithLevel struct {
	node  *filetree.Node
	level int
}

// checkState is the selection state of a node: files are on or off,
// folders can also be partially selected.
type checkState int

const (
	checkNone checkState = iota
	checkSome
	checkAll
)

// --- Constructor ---

func NewTreePage(state *sharedState) Page {
	return &treePage{
		sharedState:   state,
		expandedPaths: make(map[string]bool),
	}
}

// --- Page Interface ---

func (p *treePage) Name() string { return "tree" }

func (p *treePage) Init() tea.Cmd { return nil }

func (p *treePage) Focus() tea.Cmd { return nil }

func (p *treePage) Blur() {
	p.isSearching = false
	p.searchQuery = ""
	p.searchResults = nil
}

func (p *treePage) SetSize(width, height int) {
	p.width, p.height = width, height
	p.ensureCursorVisible()
}

// Keys returns the page bindings for the help footer.
func (p *treePage) Keys() help.KeyMap { return treeKeys }

// Capturing reports whether the search bar owns the keyboard.
func (p *treePage) Capturing() bool { return p.isSearching }

func (p *treePage) root() *filetree.Node {
	if t := p.sharedState.session.Tree(); t != nil {
		return t.Root
	}
	return nil
}

// --- Update ---

func (p *treePage) Update(msg tea.Msg) (Page, tea.Cmd) {
	switch msg := msg.(type) {
	case folderChangedMsg:
		// Expansion is keyed by path, so it survives reloading the same folder.
		var restore string
		if p.cursor < len(p.visibleNodes) {
			restore = p.visibleNodes[p.cursor].node.Path
		}
		p.searchResults = nil
		if root := p.root(); root != nil {
			p.autoExpandToContent(root)
		}
		p.updateVisibleNodes()
		p.restoreCursorPosition(restore)
		return p, nil

	case tea.KeyMsg:
		if p.isSearching {
			switch msg.String() {
			case "enter":
				p.isSearching = false
				p.performSearch()
				if len(p.searchResults) > 0 {
					p.searchCursor = 0
					p.cursor = p.searchResults[0]
					p.ensureCursorVisible()
				}
			case "esc":
				p.isSearching = false
				p.searchQuery = ""
			case "backspace":
				if len(p.searchQuery) > 0 {
					runes := []rune(p.searchQuery)
					p.searchQuery = string(runes[:len(runes)-1])
				}
			default:
				switch msg.Type {
				case tea.KeyRunes:
					p.searchQuery += string(msg.Runes)
				case tea.KeySpace:
					p.searchQuery += " "
				}
			}
			return p, nil
		}

		switch {
		case key.Matches(msg, treeKeys.Up):
			if p.cursor > 0 {
				p.cursor--
				p.ensureCursorVisible()
			}
			p.lastKey = ""
			return p, nil
		case key.Matches(msg, treeKeys.Down):
			if p.cursor < len(p.visibleNodes)-1 {
				p.cursor++
				p.ensureCursorVisible()
			}
			p.lastKey = ""
			return p, nil
		case key.Matches(msg, treeKeys.Expand):
			p.toggleExpanded()
			p.lastKey = ""
			return p, nil
		case key.Matches(msg, treeKeys.Toggle):
			p.lastKey = ""
			return p, p.toggleSelection()
		case key.Matches(msg, treeKeys.SelectAll):
			p.lastKey = ""
			return p, p.toggleAll()
		case key.Matches(msg, treeKeys.Fold):
			p.lastKey = "z"
			return p, nil
		case key.Matches(msg, treeKeys.Search):
			p.isSearching = true
			p.searchQuery = ""
			p.searchResults = nil
			p.searchCursor = 0
			p.lastKey = ""
			return p, nil
		}

		switch msg.String() {
		case "pgup":
			p.moveCursor(-10)
		case "pgdown":
			p.moveCursor(10)
		case "ctrl+d":
			p.moveCursor(p.viewportHeight() / 2)
		case "ctrl+u":
			p.moveCursor(-p.viewportHeight() / 2)
		case "home":
			p.cursor = 0
			p.scrollOffset = 0
		case "end", "G":
			p.cursor = len(p.visibleNodes) - 1
			if p.cursor < 0 {
				p.cursor = 0
			}
			p.ensureCursorVisible()
		case "g":
			if p.lastKey == "g" {
				// gg - go to top
				p.cursor = 0
				p.scrollOffset = 0
				p.lastKey = ""
			} else {
				p.lastKey = "g"
			}
			return p, nil
		case "R":
			if p.lastKey == "z" {
				p.expandAll()
			}
		case "M":
			if p.lastKey == "z" {
				p.collapseAll()
			}
		case "a":
			if p.lastKey == "z" {
				p.toggleExpanded()
			}
		case "c":
			if p.lastKey == "z" {
				p.setExpanded(false)
			}
		case "O":
			if p.lastKey == "z" {
				p.setExpanded(true)
			}
		case "n":
			if len(p.searchResults) > 0 {
				p.searchCursor = (p.searchCursor + 1) % len(p.searchResults)
				p.cursor = p.searchResults[p.searchCursor]
				p.ensureCursorVisible()
			}
		case "N":
			if len(p.searchResults) > 0 {
				p.searchCursor--
				if p.searchCursor < 0 {
					p.searchCursor = len(p.searchResults) - 1
				}
				p.cursor = p.searchResults[p.searchCursor]
				p.ensureCursorVisible()
			}
		}
		p.lastKey = ""
	}

	return p, nil
}

// --- Selection ---

// toggleSelection flips the node under the cursor. A folder selects all the
// files beneath it, or clears them when they are all selected already.
func (p *treePage) toggleSelection() tea.Cmd {
	if p.cursor >= len(p.visibleNodes) {
		return nil
	}
	node := p.visibleNodes[p.cursor].node
	sel := p.sharedState.session.Selection()

	if node.IsLeaf() {
		sel.Toggle(node.ID)
		return p.sharedState.changed()
	}

	leaves := filetree.Leaves(node)
	if len(leaves) == 0 {
		return nil
	}
	ids := make([]string, len(leaves))
	for i, leaf := range leaves {
		ids[i] = leaf.ID
	}
	sel.SetMany(ids, p.checkState(node) != checkAll)
	return p.sharedState.changed()
}

func (p *treePage) toggleAll() tea.Cmd {
	root := p.root()
	if root == nil {
		return nil
	}
	sel := p.sharedState.session.Selection()
	if p.checkState(root) == checkAll {
		sel.Clear()
	} else if err := p.sharedState.session.SelectAll(); err != nil {
		return nil
	}
	return p.sharedState.changed()
}

func (p *treePage) checkState(node *filetree.Node) checkState {
	sel := p.sharedState.session.Selection()
	if node.IsLeaf() {
		if sel.Contains(node.ID) {
			return checkAll
		}
		return checkNone
	}

	leaves := filetree.Leaves(node)
	selected := 0
	for _, leaf := range leaves {
		if sel.Contains(leaf.ID) {
			selected++
		}
	}
	switch {
	case selected == 0:
		return checkNone
	case selected == len(leaves):
		return checkAll
	default:
		return checkSome
	}
}

// --- View ---

func (p *treePage) View() string {
	if p.sharedState.loading && p.root() == nil {
		return "Loading tree..."
	}
	if p.root() == nil {
		return theme.DefaultTheme.Muted.Render("No folder loaded. Press o to open one.")
	}
	if len(p.visibleNodes) == 0 {
		return theme.DefaultTheme.Muted.Render("The folder is empty.")
	}

	var b strings.Builder
	viewportHeight := p.viewportHeight()
	for i := p.scrollOffset; i < len(p.visibleNodes) && i < p.scrollOffset+viewportHeight; i++ {
		b.WriteString(p.renderNode(i) + "\n")
	}
	content := strings.TrimSuffix(b.String(), "\n")

	if p.isSearching {
		content += "\n" + theme.DefaultTheme.Bold.Render(fmt.Sprintf("/%s_", p.searchQuery))
	} else if len(p.searchResults) > 0 {
		content += "\n" + theme.DefaultTheme.Muted.Render(fmt.Sprintf("Found %d results (%d of %d) - n/N to navigate",
			len(p.searchResults), p.searchCursor+1, len(p.searchResults)))
	}
	return content
}

func (p *treePage) renderNode(index int) string {
	if index >= len(p.visibleNodes) {
		return ""
	}
	t := theme.DefaultTheme
	nl := p.visibleNodes[index]
	node := nl.node

	cursor := "  "
	if index == p.cursor {
		cursor = theme.IconArrowRight + " "
	}
	indent := strings.Repeat("  ", nl.level)

	var check string
	switch p.checkState(node) {
	case checkAll:
		check = theme.IconChecked
	case checkSome:
		check = "[-]"
	default:
		check = theme.IconUnchecked
	}

	name := node.Name
	var label string
	if node.IsLeaf() {
		if rec, ok := p.sharedState.session.Tree().Lookup(node.Path); ok {
			label = t.Muted.Render(fmt.Sprintf(" (%d lines)", rec.LineCount))
		} else {
			label = t.Muted.Render(" " + theme.IconUnreadable + " not text")
		}
	} else {
		icon := theme.IconFolderShut
		if p.expandedPaths[node.Path] {
			icon = theme.IconFolderOpen
		}
		name = icon + " " + name + "/"
	}

	var style lipgloss.Style
	switch {
	case p.isSearchMatch(index):
		style = lipgloss.NewStyle().Reverse(true)
	case p.checkState(node) == checkAll:
		style = t.Selected
	case !node.IsLeaf():
		style = t.Info
	default:
		style = lipgloss.NewStyle()
	}

	return fmt.Sprintf("%s%s%s %s%s", cursor, indent, check, style.Render(name), label)
}

func (p *treePage) isSearchMatch(index int) bool {
	for _, i := range p.searchResults {
		if i == index {
			return true
		}
	}
	return false
}

// --- Helper Functions ---

func (p *treePage) viewportHeight() int {
	if p.isSearching || len(p.searchResults) > 0 {
		if p.height > 2 {
			return p.height - 1
		}
	}
	if p.height < 1 {
		return 1
	}
	return p.height
}

func (p *treePage) moveCursor(delta int) {
	p.cursor += delta
	if p.cursor >= len(p.visibleNodes) {
		p.cursor = len(p.visibleNodes) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
	p.ensureCursorVisible()
}

func (p *treePage) updateVisibleNodes() {
	p.visibleNodes = nil
	if root := p.root(); root != nil {
		// Start with the children of the root, not the root itself
		for _, child := range root.Children {
			p.collectVisibleNodes(child, 0)
		}
	}

	if p.cursor >= len(p.visibleNodes) {
		p.cursor = len(p.visibleNodes) - 1
	}
	if p.cursor < 0 {
		p.cursor = 0
	}
}

func (p *treePage) collectVisibleNodes(node *filetree.Node, level int) {
	p.visibleNodes = append(p.visibleNodes, &nodeWithLevel{
		node:  node,
		level: level,
	})

	if !node.IsLeaf() && p.expandedPaths[node.Path] {
		for _, child := range node.Children {
			p.collectVisibleNodes(child, level+1)
		}
	}
}

func (p *treePage) ensureCursorVisible() {
	viewportHeight := p.viewportHeight()
	if p.cursor < p.scrollOffset {
		p.scrollOffset = p.cursor
	} else if p.cursor >= p.scrollOffset+viewportHeight {
		p.scrollOffset = p.cursor - viewportHeight + 1
	}
}

func (p *treePage) toggleExpanded() {
	if p.cursor >= len(p.visibleNodes) {
		return
	}
	node := p.visibleNodes[p.cursor].node
	if node.IsLeaf() || len(node.Children) == 0 {
		return
	}
	p.setExpanded(!p.expandedPaths[node.Path])
}

func (p *treePage) setExpanded(open bool) {
	if p.cursor >= len(p.visibleNodes) {
		return
	}
	node := p.visibleNodes[p.cursor].node
	if node.IsLeaf() {
		return
	}
	if open {
		p.expandedPaths[node.Path] = true
	} else {
		delete(p.expandedPaths, node.Path)
	}
	p.updateVisibleNodes()
}

func (p *treePage) expandAll() {
	for _, node := range filetree.Flatten(p.root()) {
		if !node.IsLeaf() && len(node.Children) > 0 {
			p.expandedPaths[node.Path] = true
		}
	}
	p.updateVisibleNodes()
}

func (p *treePage) collapseAll() {
	p.expandedPaths = make(map[string]bool)
	p.updateVisibleNodes()
}

// autoExpandToContent opens chains of folders that hold a single folder each.
func (p *treePage) autoExpandToContent(node *filetree.Node) {
	for len(node.Children) == 1 && !node.Children[0].IsLeaf() {
		node = node.Children[0]
		p.expandedPaths[node.Path] = true
	}
}

func (p *treePage) performSearch() {
	p.searchResults = []int{}
	if p.searchQuery == "" {
		return
	}

	query := strings.ToLower(p.searchQuery)
	for i, nl := range p.visibleNodes {
		if strings.Contains(strings.ToLower(nl.node.Name), query) {
			p.searchResults = append(p.searchResults, i)
		}
	}
}

// restoreCursorPosition moves the cursor back to path after a reload, or to
// its closest visible parent.
func (p *treePage) restoreCursorPosition(path string) {
	if path == "" || len(p.visibleNodes) == 0 {
		return
	}

	for {
		for i, vn := range p.visibleNodes {
			if vn.node.Path == path {
				p.cursor = i
				p.ensureCursorVisible()
				return
			}
		}
		parent := filepath.Dir(path)
		if parent == path || parent == "." || parent == "/" {
			break
		}
		path = parent
	}
	p.cursor = 0
	p.scrollOffset = 0
}
