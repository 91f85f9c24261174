package graph

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// SyncVal is the thread-safe memoized node: the same caching and
// early-cutoff contract as Val, safe to read and recompute from multiple
// goroutines concurrently.
//
// A published checked-version in an atomic slot gives already-fresh reads a
// lock-free fast path: a goroutine that observes the current version through
// the atomic also observes the fully written value that made it fresh.
// Stale readers serialize on an internal mutex and re-check freshness after
// acquiring it, so at most one recomputation is ever in flight per node;
// the recompute function itself is never invoked concurrently, but the
// stored value type must tolerate being read on one goroutine after being
// written on another.
//
// A node found in its own evaluation chain panics with ErrUpdateRecursion
// before touching the lock, mirroring Val's cycle guard; goroutines merely
// contending block until the lock is free.
type SyncVal[T any] struct {
	systemID SystemID
	meta     nodeMeta
	checked  atomic.Uint64 // published context version of the last check, 0 = never
	mu       sync.Mutex
	fn       func(*Update[T])
	slot     memoSlot[T]
}

// NewSyncVal creates a lazy thread-safe memo node owned by s, under the same
// recompute-function contract as NewVal.
func NewSyncVal[T any](s *System, fn func(*Update[T]), opts ...NodeOption) *SyncVal[T] {
	v := &SyncVal[T]{systemID: s.id, fn: fn}
	for _, opt := range opts {
		opt(&v.meta)
	}
	return v
}

func (v *SyncVal[T]) value(fr *evalFrame) (Version, *T) {
	s := fr.system
	v.systemID.checkSystem(s)
	current := uint64(s.version)
	if v.checked.Load() != current {
		if fr.inFlight(v) {
			panic(fmt.Errorf("%w: syncval %q", ErrUpdateRecursion, v.meta.name))
		}
		v.lockedRecheck(fr, current)
	}
	if !v.slot.has {
		panic(fmt.Errorf("%w: syncval %q", ErrNoCommit, v.meta.name))
	}
	return v.slot.version, &v.slot.val
}

// lockedRecheck serializes recomputation: whoever wins the lock re-checks
// freshness (another goroutine may have just finished) and only then runs
// the recompute function. The version is published after the slot write, so
// fast-path readers that see it also see the value.
func (v *SyncVal[T]) lockedRecheck(fr *evalFrame, current uint64) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.checked.Load() == current {
		return
	}

	s := fr.system
	s.noteRecompute(v.meta.name, s.version)
	v.fn(&Update[T]{
		frame:   &evalFrame{system: s, node: v, parent: fr},
		name:    v.meta.name,
		current: v.slot.committedVersion(),
		slot:    &v.slot,
	})
	v.checked.Store(current)
}
