// Package render assembles the final prompt text from the selected files,
// the active task type and the instructions.
package render

import (
	"fmt"
	"strings"

	"github.com/mattsolo1/grove-prompt/pkg/catalog"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
)

// NoFilesMarker fills the files block when nothing is selected.
const NoFilesMarker = "No files selected."

// DefaultFence delimits file contents.
const DefaultFence = "```"

// Block tags, in output order.
const (
	TagFiles             = "files"
	TagTaskType          = "task_type"
	TagTaskInstruction   = "task_instruction"
	TagCustomInstruction = "custom_instruction"
)

// Input is everything one rendering depends on.
type Input struct {
	TaskType          string
	Files             []filetree.FileRecord
	TaskInstruction   string
	CustomInstruction string
	// Tree is the rendered directory tree, used only by the Atomic Task List prompt.
	Tree string
	// Fence overrides DefaultFence when set.
	Fence string
}

// Render produces the prompt: a files block, a task-type block, a task
// instruction block and a custom instruction block, in that order. Output is
// a pure function of in.
func Render(in Input) string {
	var b strings.Builder
	writeBlock(&b, TagFiles, FilesBlock(in.Files, in.Fence))
	b.WriteString("\n\n")
	writeBlock(&b, TagTaskType, TaskTypeBlock(in.TaskType, in.Tree))
	b.WriteString("\n\n")
	writeBlock(&b, TagTaskInstruction, in.TaskInstruction)
	b.WriteString("\n\n")
	writeBlock(&b, TagCustomInstruction, in.CustomInstruction)
	b.WriteString("\n")
	return b.String()
}

func writeBlock(b *strings.Builder, tag, content string) {
	fmt.Fprintf(b, "<%s>\n%s\n</%s>", tag, content, tag)
}

// FilesBlock renders each file as a path header followed by its fenced
// content, in the given order, separated by blank lines.
func FilesBlock(files []filetree.FileRecord, fence string) string {
	if len(files) == 0 {
		return NoFilesMarker
	}
	if fence == "" {
		fence = DefaultFence
	}
	parts := make([]string, len(files))
	for i, f := range files {
		parts[i] = fmt.Sprintf("File: %s\n%s\n%s\n%s", f.Path, fence, f.Content, fence)
	}
	return strings.Join(parts, "\n\n")
}

// TaskTypeBlock returns the boilerplate for a task type. Unknown task types
// get a one-line instruction naming the task type in lower case.
func TaskTypeBlock(taskType, tree string) string {
	switch taskType {
	case catalog.TaskArchitect:
		return ArchitectPrompt
	case catalog.TaskEngineer:
		return EngineerPrompt
	case catalog.TaskAtomicTaskList:
		return strings.Replace(AtomicTaskListPrompt, treeMarker, tree, 1)
	default:
		return fmt.Sprintf(genericPrompt, strings.ToLower(taskType))
	}
}
