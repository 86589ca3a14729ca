package filetree

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ErrNotDirectory is returned by Build when the root is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// DefaultWorkers is the number of files decoded concurrently when Options.Workers is unset.
const DefaultWorkers = 8

// FileRecord is a decoded text file found under the build root.
type FileRecord struct {
	Path      string
	Content   string
	LineCount int
}

// NewFileRecord creates a record and derives its line count.
func NewFileRecord(path, content string) FileRecord {
	return FileRecord{
		Path:      path,
		Content:   content,
		LineCount: CountLines(content),
	}
}

// CountLines returns the number of newline-delimited segments in content.
// Empty content is one (empty) segment, and a trailing newline opens another.
func CountLines(content string) int {
	return strings.Count(content, "\n") + 1
}

// Node is an entry in the directory tree. Directories always carry a non-nil
// Children slice, files carry nil.
type Node struct {
	ID       string
	Name     string
	Path     string
	Children []*Node
}

// IsLeaf reports whether the node represents a file.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Options configures Build.
type Options struct {
	// Workers bounds concurrent file reads. Zero means DefaultWorkers.
	Workers int
	// Logger receives skipped-entry diagnostics. Nil discards them.
	Logger *logrus.Entry
}

// Result is the output of a single folder load. It is never mutated after
// Build returns, so it can be shared with background work freely.
type Result struct {
	Root  *Node
	Files []FileRecord
	index map[string]int
}

// Lookup returns the file record for an exact path.
func (r *Result) Lookup(path string) (FileRecord, bool) {
	if r == nil {
		return FileRecord{}, false
	}
	i, ok := r.index[path]
	if !ok {
		return FileRecord{}, false
	}
	return r.Files[i], true
}

// Selected resolves the selected file records: the tree is flattened depth
// first, filtered to leaves whose id is selected, and each leaf path is mapped
// to its record. Leaves without a record (undecodable files) contribute nothing.
func (r *Result) Selected(contains func(id string) bool) []FileRecord {
	if r == nil || r.Root == nil {
		return nil
	}
	var files []FileRecord
	for _, node := range Flatten(r.Root) {
		if !node.IsLeaf() || !contains(node.ID) {
			continue
		}
		if rec, ok := r.Lookup(node.Path); ok {
			files = append(files, rec)
		}
	}
	return files
}

// Build walks root and returns its tree together with the flat list of text
// files in depth-first order. Hidden entries are skipped. Entries that cannot
// be read, broken symlinks and symlink loops are skipped rather than failing
// the build; only an unusable root or a cancelled ctx returns an error.
func Build(ctx context.Context, root string, opts Options) (*Result, error) {
	root = filepath.Clean(root)
	logger := opts.Logger
	if logger == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		logger = logrus.NewEntry(l)
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("failed to stat folder %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", root, ErrNotDirectory)
	}

	b := &builder{
		ctx:       ctx,
		log:       logger,
		ancestors: make(map[string]bool),
	}
	rootNode := &Node{
		ID:       uuid.NewString(),
		Name:     filepath.Base(root),
		Path:     root,
		Children: []*Node{},
	}
	if real, err := filepath.EvalSymlinks(root); err == nil {
		b.ancestors[real] = true
	}
	if err := b.walk(rootNode); err != nil {
		return nil, err
	}

	files, err := decodeAll(ctx, b.leaves, workers, logger)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Root:  rootNode,
		Files: files,
		index: make(map[string]int, len(files)),
	}
	for i, f := range files {
		res.index[f.Path] = i
	}

	logger.WithFields(logrus.Fields{
		"root":       root,
		"leaves":     len(b.leaves),
		"text_files": len(files),
		"skipped":    b.skipped,
	}).Debug("Built file tree")

	return res, nil
}

type builder struct {
	ctx       context.Context
	log       *logrus.Entry
	ancestors map[string]bool // resolved paths of directories on the current walk chain
	leaves    []string        // file paths in depth-first order
	skipped   int
}

func (b *builder) walk(dir *Node) error {
	if err := b.ctx.Err(); err != nil {
		return err
	}

	entries, err := os.ReadDir(dir.Path)
	if err != nil {
		// Keep the directory as an empty node
		b.skip(dir.Path, "read directory", err)
		return nil
	}
	sortEntries(entries)

	for _, entry := range entries {
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}
		path := filepath.Join(dir.Path, name)

		// Stat follows symlinks so linked files and folders are treated as their targets
		info, err := os.Stat(path)
		if err != nil {
			b.skip(path, "stat", err)
			continue
		}

		switch {
		case info.IsDir():
			real, err := filepath.EvalSymlinks(path)
			if err != nil {
				b.skip(path, "resolve", err)
				continue
			}
			if b.ancestors[real] {
				b.skip(path, "symlink loop", nil)
				continue
			}
			child := &Node{
				ID:       uuid.NewString(),
				Name:     name,
				Path:     path,
				Children: []*Node{},
			}
			dir.Children = append(dir.Children, child)

			b.ancestors[real] = true
			err = b.walk(child)
			delete(b.ancestors, real)
			if err != nil {
				return err
			}
		case info.Mode().IsRegular():
			dir.Children = append(dir.Children, &Node{
				ID:   uuid.NewString(),
				Name: name,
				Path: path,
			})
			b.leaves = append(b.leaves, path)
		default:
			b.skip(path, "not a regular file", nil)
		}
	}
	return nil
}

func (b *builder) skip(path, reason string, err error) {
	b.skipped++
	fields := logrus.Fields{"path": path, "reason": reason}
	if err != nil {
		fields["error"] = err.Error()
	}
	b.log.WithFields(fields).Debug("Skipping entry")
}

// sortEntries orders siblings case-insensitively by name. Folders and files
// are interleaved; ties fall back to the exact name for a stable order.
func sortEntries(entries []os.DirEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, b := strings.ToLower(entries[i].Name()), strings.ToLower(entries[j].Name())
		if a != b {
			return a < b
		}
		return entries[i].Name() < entries[j].Name()
	})
}

// decodeAll reads paths concurrently and keeps the ones that decode as text,
// preserving the input order.
func decodeAll(ctx context.Context, paths []string, workers int, logger *logrus.Entry) ([]FileRecord, error) {
	slots := make([]*FileRecord, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rec, err := readText(path)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"path":  path,
					"error": err.Error(),
				}).Debug("Skipping file")
				return nil
			}
			slots[i] = &rec
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	files := make([]FileRecord, 0, len(paths))
	for _, rec := range slots {
		if rec != nil {
			files = append(files, *rec)
		}
	}
	return files, nil
}

var errNotText = errors.New("content is not valid text")

func readText(path string) (FileRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return FileRecord{}, err
	}
	if !utf8.Valid(data) || bytes.IndexByte(data, 0) >= 0 {
		return FileRecord{}, errNotText
	}
	return NewFileRecord(path, string(data)), nil
}
