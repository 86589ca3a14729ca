package session

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

var (
	ErrNoFolder     = errors.New("no folder loaded")
	ErrUnknownEntry = errors.New("no such entry in the loaded folder")
)

// SelectPath selects the file at rel, a path relative to the loaded folder.
// Selecting a folder selects every file beneath it; the folder id itself is
// never stored.
func (s *Session) SelectPath(rel string) error {
	if s.tree == nil {
		return ErrNoFolder
	}
	path := filepath.Join(s.folder, filepath.FromSlash(rel))
	node := filetree.Find(s.tree.Root, path)
	if node == nil {
		return fmt.Errorf("%s: %w", rel, ErrUnknownEntry)
	}
	s.selection.SetMany(leafIDs(node), true)
	return nil
}

// SelectAll selects every file in the loaded folder.
func (s *Session) SelectAll() error {
	if s.tree == nil {
		return ErrNoFolder
	}
	s.selection.SetMany(leafIDs(s.tree.Root), true)
	return nil
}

func leafIDs(n *filetree.Node) []string {
	leaves := filetree.Leaves(n)
	ids := make([]string, len(leaves))
	for i, leaf := range leaves {
		ids[i] = leaf.ID
	}
	return ids
}
