package session

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/render"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	taskTypes, err := catalog.NewTaskTypes(catalog.DefaultTaskTypes()...)
	require.NoError(t, err)
	instructions, err := catalog.NewInstructions(catalog.DefaultInstructions()...)
	require.NoError(t, err)
	return New(taskTypes, instructions, "")
}

func loadFolder(t *testing.T, s *Session, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	res, err := filetree.Build(context.Background(), root, filetree.Options{})
	require.NoError(t, err)
	s.ReplaceFolder(root, res)
	return root
}

func TestCompute_NoFolder(t *testing.T) {
	s := newSession(t)
	res := Compute(s.Snapshot())

	assert.Equal(t, difficulty.Easy, res.Difficulty.Label)
	assert.Contains(t, res.Prompt, "<files>\n"+render.NoFilesMarker+"\n</files>")
	assert.Equal(t, difficulty.EstimateTokens(res.Prompt), res.Tokens)
}

func TestCompute_SelectedFilesInTreeOrder(t *testing.T) {
	s := newSession(t)
	root := loadFolder(t, s, map[string]string{
		"b.txt":     "b\nb",
		"a/z.go":    "z",
		"a/y.go":    "y",
		"image.bin": "\x00\x01",
	})

	require.NoError(t, s.SelectPath("b.txt"))
	require.NoError(t, s.SelectPath("a"))
	require.NoError(t, s.SelectPath("image.bin"))

	snap := s.Snapshot()
	files := snap.SelectedFiles()
	require.Len(t, files, 3)
	assert.Equal(t, filepath.Join(root, "a", "y.go"), files[0].Path)
	assert.Equal(t, filepath.Join(root, "a", "z.go"), files[1].Path)
	assert.Equal(t, filepath.Join(root, "b.txt"), files[2].Path)

	res := Compute(snap)
	assert.Equal(t, 3, res.Difficulty.FileCount)
	assert.Equal(t, 4, res.Difficulty.TotalLines)
	assert.Less(t, strings.Index(res.Prompt, "y.go"), strings.Index(res.Prompt, "z.go"))
}

func TestSnapshot_IsolatedFromLaterMutation(t *testing.T) {
	s := newSession(t)
	loadFolder(t, s, map[string]string{"a.txt": "a", "b.txt": "b"})
	require.NoError(t, s.SelectPath("a.txt"))
	s.SetInstruction("first")

	snap := s.Snapshot()
	before := Compute(snap)

	require.NoError(t, s.SelectPath("b.txt"))
	s.SetInstruction("second")
	require.NoError(t, s.TaskTypes.SetActive(catalog.TaskEngineer))
	s.Instructions.Deselect()

	after := Compute(snap)
	assert.Equal(t, before, after)
	assert.Equal(t, catalog.TaskArchitect, snap.TaskType)
	assert.Contains(t, after.Prompt, "first")
	assert.NotContains(t, after.Prompt, "b.txt")
}

func TestReplaceFolder_ClearsSelection(t *testing.T) {
	s := newSession(t)
	loadFolder(t, s, map[string]string{"a.txt": "a"})
	require.NoError(t, s.SelectAll())
	assert.Equal(t, 1, s.Selection().Len())

	loadFolder(t, s, map[string]string{"a.txt": "a"})
	assert.Equal(t, 0, s.Selection().Len())
	assert.Empty(t, s.Snapshot().SelectedFiles())
}

func TestCompute_UsesActiveTemplateAndTree(t *testing.T) {
	s := newSession(t)
	loadFolder(t, s, map[string]string{"b.txt": "", "c.txt": ""})
	require.NoError(t, s.TaskTypes.SetActive(catalog.TaskAtomicTaskList))

	res := Compute(s.Snapshot())
	assert.Contains(t, res.Prompt, "├── b.txt\n└── c.txt\n")
	assert.Contains(t, res.Prompt, s.Instructions.ActiveBody())

	s.Instructions.Deselect()
	res = Compute(s.Snapshot())
	assert.Contains(t, res.Prompt, "<custom_instruction>\n\n</custom_instruction>")
}

func TestSelectPath_Errors(t *testing.T) {
	s := newSession(t)
	assert.ErrorIs(t, s.SelectPath("x"), ErrNoFolder)
	assert.ErrorIs(t, s.SelectAll(), ErrNoFolder)

	loadFolder(t, s, map[string]string{"a.txt": "a"})
	assert.ErrorIs(t, s.SelectPath("missing.txt"), ErrUnknownEntry)
}
