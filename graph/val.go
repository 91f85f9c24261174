package graph

import "fmt"

// NodeOption configures a memo node at construction.
type NodeOption func(*nodeMeta)

type nodeMeta struct {
	name string
}

// WithName gives a memo node a debug name used in log and observer events.
func WithName(name string) NodeOption {
	return func(m *nodeMeta) { m.name = name }
}

// Val is the single-threaded memoized node: a derived value cached against
// the System's version clock, recomputed lazily on read when stale.
//
// The recompute function runs every time the node is read at a context
// version it has not checked yet; whether the stored value actually changes
// is the Update transaction's early-cutoff decision. Reading the node from
// its own recompute function, directly or transitively, panics with
// ErrUpdateRecursion.
//
// Val assumes single-threaded use. Sharing one across goroutines is
// unchecked misuse; use SyncVal for that.
type Val[T any] struct {
	systemID  SystemID
	meta      nodeMeta
	checked   Version // context version of the last freshness check, 0 = never
	computing bool
	fn        func(*Update[T])
	slot      memoSlot[T]
}

// NewVal creates a lazy memo node owned by s. fn must read every dependency
// through Track on the given Update and finish with exactly one commit
// variant. No computation happens until the node is first read.
func NewVal[T any](s *System, fn func(*Update[T]), opts ...NodeOption) *Val[T] {
	v := &Val[T]{systemID: s.id, fn: fn}
	for _, opt := range opts {
		opt(&v.meta)
	}
	return v
}

func (v *Val[T]) value(fr *evalFrame) (Version, *T) {
	s := fr.system
	v.systemID.checkSystem(s)
	if v.checked != s.version {
		if v.computing {
			panic(fmt.Errorf("%w: val %q", ErrUpdateRecursion, v.meta.name))
		}
		v.recompute(fr)
		// Freshness is "verified as of this version", not "value changed":
		// it advances even when the commit was an early-cutoff no-op.
		v.checked = s.version
	}
	if !v.slot.has {
		panic(fmt.Errorf("%w: val %q", ErrNoCommit, v.meta.name))
	}
	return v.slot.version, &v.slot.val
}

func (v *Val[T]) recompute(fr *evalFrame) {
	v.computing = true
	defer func() { v.computing = false }()

	s := fr.system
	s.noteRecompute(v.meta.name, s.version)
	v.fn(&Update[T]{
		frame:   &evalFrame{system: s, node: v, parent: fr},
		name:    v.meta.name,
		current: v.slot.committedVersion(),
		slot:    &v.slot,
	})
}
