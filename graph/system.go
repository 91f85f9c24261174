package graph

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SystemID identifies one System instance. Ids are minted once per System
// and compared by equality only; every node and mutation window carries the
// id of the System that created it.
type SystemID struct {
	id uuid.UUID
}

func newSystemID() SystemID {
	return SystemID{id: uuid.New()}
}

func (sid SystemID) String() string {
	return sid.id.String()
}

// checkSystem panics when a node created under sid is used with s.
func (sid SystemID) checkSystem(s *System) {
	if sid != s.id {
		panic(fmt.Errorf("%w: node of system %s read through system %s", ErrSystemMismatch, sid, s.id))
	}
}

// checkModify panics when a cell created under sid is written through m.
func (sid SystemID) checkModify(m *Modify) {
	if sid != m.system.id {
		panic(fmt.Errorf("%w: cell of system %s written through window of system %s", ErrSystemMismatch, sid, m.system.id))
	}
}

// System owns one value graph: its identity, its version clock, and whatever
// observability the host attached. A System must outlive every node created
// against it. It is not a hidden singleton; every operation takes it
// explicitly, so independent graphs coexist freely.
//
// Reads through a System are safe from multiple goroutines as long as no
// mutation window is open on it. Opening a mutation window while reads are in
// flight is a caller contract, the same exclusivity an exclusive lock would
// give.
type System struct {
	id        SystemID
	version   Version
	modifying bool
	logger    *zap.Logger
	observer  Observer
	history   *historyLog
}

// SystemOption configures a System at construction.
type SystemOption func(*System)

// WithLogger attaches a zap logger; window and node lifecycle events are
// emitted at debug level. Defaults to a nop logger.
func WithLogger(logger *zap.Logger) SystemOption {
	return func(s *System) { s.logger = logger }
}

// WithObserver attaches an Observer for node recompute/commit/cutoff events.
func WithObserver(o Observer) SystemOption {
	return func(s *System) { s.observer = o }
}

// WithHistoryLimit bounds the in-memory mutation history. Zero disables
// recording entirely.
func WithHistoryLimit(n int) SystemOption {
	return func(s *System) { s.history = newHistoryLog(n) }
}

// NewSystem creates a fresh value graph with a fresh id at version 1.
func NewSystem(opts ...SystemOption) *System {
	s := &System{
		id:      newSystemID(),
		version: 1,
		logger:  zap.NewNop(),
		history: newHistoryLog(defaultHistoryLimit),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ID returns the System's identifier.
func (s *System) ID() SystemID {
	return s.id
}

// Version returns the current version of the clock.
func (s *System) Version() Version {
	return s.version
}

// Read evaluates a node against the System's current version and returns a
// pointer to its committed value, recomputing memoized dependencies on
// demand. The pointer stays valid until the next mutation window opens.
//
// Read panics with ErrSystemMismatch when the node belongs to another System.
func Read[T any](s *System, n Node[T]) *T {
	_, value := n.value(&evalFrame{system: s})
	return value
}

// Modify advances the version clock exactly once and opens the exclusive
// mutation window that authorizes writes to this System's input cells. The
// caller must End the window before opening another or reading through the
// System again; a second Modify before End panics with ErrModifyInProgress.
func (s *System) Modify() *Modify {
	if s.modifying {
		panic(fmt.Errorf("%w: system %s", ErrModifyInProgress, s.id))
	}
	s.version = s.version.next()
	s.modifying = true
	s.logger.Debug("mutation window opened",
		zap.Stringer("system", s.id),
		zap.Stringer("version", s.version),
	)
	if s.observer != nil {
		s.observer.VersionAdvanced(s.version)
	}
	return &Modify{system: s, openedAt: time.Now()}
}

// noteRecompute records that a memo node is about to run its recompute
// function at the given context version.
func (s *System) noteRecompute(name string, v Version) {
	s.logger.Debug("memo recompute", zap.String("node", name), zap.Stringer("version", v))
	if s.observer != nil {
		s.observer.NodeRecomputed(name, v)
	}
}

// noteCommitted records that a recompute stored a new (version, value) pair.
func (s *System) noteCommitted(name string, v Version) {
	s.logger.Debug("memo committed", zap.String("node", name), zap.Stringer("version", v))
	if s.observer != nil {
		s.observer.NodeCommitted(name, v)
	}
}

// noteCutoff records an early cutoff: the recompute ran but the previous
// value stayed committed.
func (s *System) noteCutoff(name string, v Version) {
	s.logger.Debug("memo cutoff", zap.String("node", name), zap.Stringer("version", v))
	if s.observer != nil {
		s.observer.NodeCutoff(name, v)
	}
}

// Modify is the exclusive mutation window of one System. It exists between
// System.Modify and End; writes through an ended window panic with
// ErrModifyEnded.
type Modify struct {
	system   *System
	openedAt time.Time
	ended    bool
}

func (m *Modify) mustBeOpen() {
	if m.ended {
		panic(fmt.Errorf("%w: system %s", ErrModifyEnded, m.system.id))
	}
}

// SystemID returns the id of the System this window mutates.
func (m *Modify) SystemID() SystemID {
	m.mustBeOpen()
	return m.system.id
}

// Version returns the version stamped on every write through this window.
// The clock already advanced when the window opened.
func (m *Modify) Version() Version {
	m.mustBeOpen()
	return m.system.version
}

// End closes the window, records its wall-clock span in the System's
// mutation history, and releases the System for reads and further windows.
// End is idempotent.
func (m *Modify) End() {
	if m.ended {
		return
	}
	m.ended = true
	m.system.modifying = false
	m.system.history.record(m.system.version, NewTimeSpan(m.openedAt, time.Now()))
	m.system.logger.Debug("mutation window closed",
		zap.Stringer("system", m.system.id),
		zap.Stringer("version", m.system.version),
	)
}
