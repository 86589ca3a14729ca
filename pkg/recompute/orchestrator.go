// Package recompute keeps the derived difficulty and prompt consistent with
// rapidly changing inputs.
//
// The Orchestrator is driven by a bubbletea program, whose Update loop is the
// single interactive context. Every input mutation calls Trigger, which
// (re)starts the debounce timer. When the timer for the latest trigger fires,
// a snapshot is taken on the interactive context and handed to a tea.Cmd,
// which bubbletea runs on its own goroutine. The completion message comes
// back through Update, where the result is applied only if it is newer than
// the last applied one.
package recompute

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"github.com/mattsolo1/grove-prompt/pkg/session"
)

// DefaultWindow is the quiet period required before a recompute starts.
const DefaultWindow = 300 * time.Millisecond

// State is the orchestrator's logical state.
type State int

const (
	Idle State = iota
	Recomputing
)

func (s State) String() string {
	if s == Recomputing {
		return "recomputing"
	}
	return "idle"
}

// SnapshotFunc captures the current inputs. It is always called on the
// interactive context.
type SnapshotFunc func() session.Snapshot

// ComputeFunc derives a result from a snapshot. It runs in the background.
type ComputeFunc func(session.Snapshot) session.Result

// Published is a difficulty and prompt pair ready to be shown. Both values
// come from the same snapshot, identified by Seq.
type Published struct {
	Seq    uint64
	Result session.Result
}

// Stats counts orchestrator events.
type Stats struct {
	Triggers   int
	Coalesced  int // timer firings superseded by a later trigger
	Deferred   int // firings that arrived while a recompute was in flight
	Dispatched int
	Applied    int
	Discarded  int // completions older than the applied result
}

type firedMsg struct {
	gen uint64
}

type doneMsg struct {
	seq    uint64
	result session.Result
}

// Orchestrator debounces triggers and serializes recomputes.
type Orchestrator struct {
	window   time.Duration
	snapshot SnapshotFunc
	compute  ComputeFunc
	log      *logrus.Entry

	state   State
	gen     uint64 // latest trigger
	seq     uint64 // latest dispatched snapshot
	applied uint64 // latest applied snapshot
	pending bool   // a trigger fired while recomputing
	stats   Stats
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithCompute replaces session.Compute, mainly for tests.
func WithCompute(fn ComputeFunc) Option {
	return func(o *Orchestrator) { o.compute = fn }
}

// WithLogger sets the logger for debug events.
func WithLogger(log *logrus.Entry) Option {
	return func(o *Orchestrator) { o.log = log }
}

// New creates an orchestrator. A non-positive window uses DefaultWindow.
func New(window time.Duration, snapshot SnapshotFunc, opts ...Option) *Orchestrator {
	if window <= 0 {
		window = DefaultWindow
	}
	o := &Orchestrator{
		window:   window,
		snapshot: snapshot,
		compute:  session.Compute,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = logrus.NewEntry(l)
	}
	return o
}

// Trigger records an input mutation and returns the debounce timer command.
// Earlier timers still fire but are ignored, so only the last trigger in a
// burst leads to a recompute.
func (o *Orchestrator) Trigger() tea.Cmd {
	o.gen++
	o.stats.Triggers++
	gen := o.gen
	return tea.Tick(o.window, func(time.Time) tea.Msg {
		return firedMsg{gen: gen}
	})
}

// Update handles orchestrator messages. ok is false for messages that do not
// belong to the orchestrator. A non-nil pub must be applied by the caller as
// a whole.
func (o *Orchestrator) Update(msg tea.Msg) (pub *Published, cmd tea.Cmd, ok bool) {
	switch msg := msg.(type) {
	case firedMsg:
		return nil, o.fire(msg.gen), true
	case doneMsg:
		pub, cmd := o.complete(msg)
		return pub, cmd, true
	}
	return nil, nil, false
}

func (o *Orchestrator) fire(gen uint64) tea.Cmd {
	if gen != o.gen {
		o.stats.Coalesced++
		return nil
	}
	if o.state == Recomputing {
		o.stats.Deferred++
		o.pending = true
		o.log.WithField("gen", gen).Debug("Recompute deferred until in-flight work completes")
		return nil
	}

	snap := o.snapshot()
	o.seq++
	seq := o.seq
	o.state = Recomputing
	o.stats.Dispatched++
	o.log.WithField("seq", seq).Debug("Dispatching recompute")

	compute := o.compute
	return func() tea.Msg {
		return doneMsg{seq: seq, result: compute(snap)}
	}
}

func (o *Orchestrator) complete(msg doneMsg) (*Published, tea.Cmd) {
	if msg.seq == o.seq {
		o.state = Idle
	}

	var pub *Published
	if msg.seq > o.applied {
		o.applied = msg.seq
		o.stats.Applied++
		pub = &Published{Seq: msg.seq, Result: msg.result}
		o.log.WithField("seq", msg.seq).Debug("Applied recompute")
	} else {
		o.stats.Discarded++
		o.log.WithFields(logrus.Fields{
			"seq":     msg.seq,
			"applied": o.applied,
		}).Debug("Discarded stale recompute")
	}

	if o.pending && o.state == Idle {
		o.pending = false
		return pub, o.Trigger()
	}
	return pub, nil
}

// State returns the current state.
func (o *Orchestrator) State() State { return o.state }

// Pending reports whether another recompute is owed once the in-flight one completes.
func (o *Orchestrator) Pending() bool { return o.pending }

// AppliedSeq returns the sequence number of the last applied result.
func (o *Orchestrator) AppliedSeq() uint64 { return o.applied }

// Stats returns event counters.
func (o *Orchestrator) Stats() Stats { return o.stats }

// Window returns the debounce window.
func (o *Orchestrator) Window() time.Duration { return o.window }
