package graph

// Node is the uniform read contract of every value-graph node: given a
// context snapshot, yield the node's committed version and a pointer to its
// current value, recomputing first when stale.
//
// The interface is sealed; Var, Val, and SyncVal are the only
// implementations. Nodes never reference each other directly; a derived
// node only reaches its dependencies through an Update transaction.
type Node[T any] interface {
	value(fr *evalFrame) (Version, *T)
}

// evalFrame threads one evaluation through nested recomputations: every memo
// node pushes itself onto the chain before invoking its recompute function,
// so a node can tell "I am being read by my own recomputation" (a dependency
// cycle) apart from a read by another goroutine. node is nil for reads
// entering from the host.
type evalFrame struct {
	system *System
	node   any
	parent *evalFrame
}

// inFlight reports whether node is already mid-recompute somewhere up this
// evaluation chain.
func (fr *evalFrame) inFlight(node any) bool {
	for f := fr; f != nil; f = f.parent {
		if f.node == node {
			return true
		}
	}
	return false
}

// memoSlot is a memo node's committed state: at most one (version, value)
// pair, or nothing when the node has never committed. Exclusive write access
// during recomputation is what the node's reentrancy guard (Val) or lock
// (SyncVal) provides; between recomputations the slot is read-only.
type memoSlot[T any] struct {
	has     bool
	version Version
	val     T
}

// committedVersion returns the slot's version, or zero when empty.
func (m *memoSlot[T]) committedVersion() Version {
	if !m.has {
		return 0
	}
	return m.version
}
