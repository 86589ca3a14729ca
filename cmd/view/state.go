package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-prompt/pkg/config"
	"github.com/mattsolo1/grove-prompt/pkg/filetree"
	"github.com/mattsolo1/grove-prompt/pkg/recompute"
	"github.com/mattsolo1/grove-prompt/pkg/session"
)

// sharedState holds all the data that is shared across different pages of the TUI.
// It is only touched from the bubbletea Update loop.
type sharedState struct {
	cfg     config.Config
	log     *logrus.Entry
	session *session.Session
	orch    *recompute.Orchestrator

	// Last applied recompute; difficulty and prompt always come from the same snapshot.
	published recompute.Published
	hasResult bool

	loading bool
	loadSeq uint64
	status  string
	err     error
}

func newSharedState(cfg config.Config, s *session.Session, log *logrus.Entry) *sharedState {
	st := &sharedState{
		cfg:     cfg,
		log:     log,
		session: s,
	}
	st.orch = recompute.New(cfg.Debounce, s.Snapshot,
		recompute.WithLogger(log.WithField("component", "recompute")))
	return st
}

// folderLoadedMsg carries the result of a background folder load.
type folderLoadedMsg struct {
	seq    uint64
	folder string
	result *filetree.Result
	err    error
}

// resultAppliedMsg is broadcast to every page after a recompute is applied.
type resultAppliedMsg struct{}

// folderChangedMsg is broadcast to every page after a folder load is installed.
type folderChangedMsg struct{}

// statusMsg replaces the status line.
type statusMsg string

// changed must be called after every mutation of a recompute input.
func (s *sharedState) changed() tea.Cmd {
	return s.orch.Trigger()
}

// loadFolderCmd starts loading dir in the background. A blank dir is a no-op.
func (s *sharedState) loadFolderCmd(dir string) tea.Cmd {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return nil
	}
	s.loadSeq++
	seq := s.loadSeq
	s.loading = true
	s.status = fmt.Sprintf("Loading %s...", dir)

	workers, log := s.cfg.Workers, s.log.WithField("component", "filetree")
	return func() tea.Msg {
		abs, err := resolveDir(dir)
		if err != nil {
			return folderLoadedMsg{seq: seq, err: err}
		}
		res, err := filetree.Build(context.Background(), abs, filetree.Options{
			Workers: workers,
			Logger:  log,
		})
		return folderLoadedMsg{seq: seq, folder: abs, result: res, err: err}
	}
}

// applyFolder installs a finished load. Loads superseded by a newer request
// are dropped so an older folder never replaces a newer one.
func (s *sharedState) applyFolder(msg folderLoadedMsg) (bool, tea.Cmd) {
	if msg.seq != s.loadSeq {
		s.log.WithFields(logrus.Fields{
			"seq":    msg.seq,
			"latest": s.loadSeq,
		}).Debug("Discarding superseded folder load")
		return false, nil
	}
	s.loading = false
	if msg.err != nil {
		s.status = fmt.Sprintf("Error: %v", msg.err)
		return false, nil
	}

	s.session.ReplaceFolder(msg.folder, msg.result)
	dirs, files := filetree.Count(msg.result.Root)
	s.status = fmt.Sprintf("Loaded %s: %d folders, %d files (%d text)", msg.folder, dirs, files, len(msg.result.Files))
	s.log.WithFields(logrus.Fields{
		"folder": msg.folder,
		"files":  len(msg.result.Files),
	}).Info("Folder loaded")
	return true, s.changed()
}

// apply stores a published recompute.
func (s *sharedState) apply(pub recompute.Published) {
	s.published = pub
	s.hasResult = true
}

// result returns the last applied recompute.
func (s *sharedState) result() (session.Result, bool) {
	return s.published.Result, s.hasResult
}

func resolveDir(dir string) (string, error) {
	if dir == "~" || strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("expanding %s: %w", dir, err)
		}
		dir = filepath.Join(home, strings.TrimPrefix(dir, "~"))
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", dir, err)
	}
	return abs, nil
}
