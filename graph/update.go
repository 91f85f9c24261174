package graph

import "fmt"

// Update is the dependency-tracking transaction handed to a memo node's
// recompute function. It is ephemeral: it lives for exactly one recompute
// invocation, accumulates the maximum version among everything read through
// Track, and decides, exactly once, whether the node's stored value actually
// changes.
//
// Every dependency read during a recompute must go through Track; reading
// another node with Read from inside a recompute function bypasses version
// tracking and is a protocol violation the runtime cannot detect.
type Update[T any] struct {
	frame   *evalFrame
	name    string
	current Version // node's previously committed version, 0 when none
	max     Version // max version across tracked reads, 0 when none yet
	slot    *memoSlot[T]
	done    bool
}

// System returns the System this update evaluates against.
func (u *Update[T]) System() *System {
	return u.frame.system
}

// Track reads a dependency through the transaction: it evaluates the node,
// folds the node's committed version into the running maximum, and returns a
// pointer to the value.
func Track[T, D any](u *Update[T], n Node[D]) *D {
	version, value := n.value(u.frame)
	u.max = maxVersion(u.max, version)
	return value
}

// decide applies the early-cutoff rule and reports the effective version to
// commit at, or ok=false when the previous value stays committed. The
// effective version is the accumulated dependency maximum, or the System's
// current version when nothing was tracked.
func (u *Update[T]) decide() (Version, bool) {
	if u.done {
		panic(fmt.Errorf("%w: node %q", ErrCommitTwice, u.name))
	}
	u.done = true
	effective := u.max
	if effective == 0 {
		effective = u.frame.system.version
	}
	if u.current != 0 && effective <= u.current {
		u.frame.system.noteCutoff(u.name, effective)
		return 0, false
	}
	return effective, true
}

// Commit ends the transaction. When the effective version has moved past the
// node's previously committed version, produce is invoked and its result is
// stored as the node's new committed state; otherwise nothing happens and
// the previous value remains committed as-is (early cutoff).
//
// Exactly one commit variant must be called per recompute invocation; a
// second call panics with ErrCommitTwice.
func (u *Update[T]) Commit(produce func() T) {
	effective, ok := u.decide()
	if !ok {
		return
	}
	u.slot.val = produce()
	u.slot.version = effective
	u.slot.has = true
	u.frame.system.noteCommitted(u.name, effective)
}

// CommitWithPrevious is Commit with the node's previous committed value
// handed to produce (ok=false on first computation). The previous value is
// passed by value and no longer owned by the slot, enabling accumulate-in-
// place recomputation instead of recomputing from dependencies alone.
func (u *Update[T]) CommitWithPrevious(produce func(prev T, ok bool) T) {
	effective, ok := u.decide()
	if !ok {
		return
	}
	prev, had := u.slot.val, u.slot.has
	u.slot.val = produce(prev, had)
	u.slot.version = effective
	u.slot.has = true
	u.frame.system.noteCommitted(u.name, effective)
}
