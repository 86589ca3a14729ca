// Package session holds the single source of truth for one interactive run:
// the loaded folder, the selection, the catalogs and the free-form task
// instruction. A Session is only mutated on the interactive context;
// background work operates on immutable Snapshots.
package session

import (
	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/difficulty"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/render"
	"github.com/mattsolo1/grove-prompt/pkg/selection"
)

// Session is the mutable state a prompt is derived from.
type Session struct {
	TaskTypes    *catalog.TaskTypes
	Instructions *catalog.Instructions

	folder      string
	tree        *filetree.Result
	selection   *selection.Store
	instruction string
	fence       string
}

// New creates a session with no folder loaded.
func New(taskTypes *catalog.TaskTypes, instructions *catalog.Instructions, fence string) *Session {
	return &Session{
		TaskTypes:    taskTypes,
		Instructions: instructions,
		selection:    selection.NewStore(),
		fence:        fence,
	}
}

// Folder returns the loaded folder path, empty before the first load.
func (s *Session) Folder() string { return s.folder }

// Tree returns the current folder load, nil before the first load.
func (s *Session) Tree() *filetree.Result { return s.tree }

// Selection returns the selection store.
func (s *Session) Selection() *selection.Store { return s.selection }

// Instruction returns the free-form task instruction.
func (s *Session) Instruction() string { return s.instruction }

// SetInstruction replaces the free-form task instruction.
func (s *Session) SetInstruction(text string) { s.instruction = text }

// ReplaceFolder swaps in a new folder load as a whole. Node ids are minted
// per build, so the previous selection cannot carry over and is cleared.
func (s *Session) ReplaceFolder(folder string, tree *filetree.Result) {
	s.folder = folder
	s.tree = tree
	s.selection.Clear()
}

// Snapshot is an immutable copy of every input to one recompute.
type Snapshot struct {
	Tree              *filetree.Result
	Selected          selection.Set
	TaskType          string
	TaskInstruction   string
	CustomInstruction string
	Fence             string
}

// Snapshot captures the current inputs. The folder load is shared rather than
// copied because it is never mutated after it is built.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tree:              s.tree,
		Selected:          s.selection.Snapshot(),
		TaskType:          s.TaskTypes.Active(),
		TaskInstruction:   s.instruction,
		CustomInstruction: s.Instructions.ActiveBody(),
		Fence:             s.fence,
	}
}

// SelectedFiles resolves the selected file records of the snapshot in tree order.
func (snap Snapshot) SelectedFiles() []filetree.FileRecord {
	return snap.Tree.Selected(snap.Selected.Contains)
}

// Result pairs the difficulty and the prompt computed from one snapshot.
type Result struct {
	Difficulty difficulty.Result          `json:"difficulty"`
	Prompt     string                     `json:"prompt"`
	Tokens     int                        `json:"tokens"`
	Languages  []difficulty.LanguageStats `json:"languages,omitempty"`
}

// Compute derives difficulty and prompt from snap. It performs no I/O and
// is safe to call off the interactive context.
func Compute(snap Snapshot) Result {
	files := snap.SelectedFiles()

	var tree string
	if snap.Tree != nil {
		tree = filetree.RenderTree(snap.Tree.Root)
	}

	prompt := render.Render(render.Input{
		TaskType:          snap.TaskType,
		Files:             files,
		TaskInstruction:   snap.TaskInstruction,
		CustomInstruction: snap.CustomInstruction,
		Tree:              tree,
		Fence:             snap.Fence,
	})

	return Result{
		Difficulty: difficulty.Estimate(files),
		Prompt:     prompt,
		Tokens:     difficulty.EstimateTokens(prompt),
		Languages:  difficulty.Breakdown(files),
	}
}
