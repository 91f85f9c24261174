// Package graph is a small runtime for demand-driven, versioned incremental
// computation.
//
// Memo-ive Go organizes a program's derived state as a graph of values: input
// cells (Var) hold mutable leaves, memoized nodes (Val, SyncVal) hold lazily
// recomputed functions of other nodes, and a System owns the logical clock
// that decides what "up to date" means.
//
// # What is a versioned value graph?
//
// Every mutation of an input cell happens inside a mutation window, which
// advances the System's version exactly once. Every node remembers the
// version at which its value was committed. A derived node recomputes only
// when read, and only keeps a new value when something it actually read has
// a newer version than what it last committed. This is the early-cutoff rule.
//
// # Why use Memo-ive Go?
//
// Go has no built-in way to say "this value is a function of those values,
// keep it fresh but never recompute it needlessly". This package leverages
// generics, atomics, and plain mutexes to implement that contract:
//   - Readers always observe a value consistent with the latest committed inputs
//   - A derived value never recomputes unless a read dependency changed
//   - Thread-safe nodes publish results so concurrent readers race safely
//   - Dependency cycles are detected, not deadlocked on
//
// # How does it work?
//
// Hosts create a System, hang Vars and Vals off it, and read them through
// package-level Read. A recompute function receives an Update transaction and
// must read every dependency through Track and finish with exactly one Commit
// variant; the transaction folds dependency versions into the commit decision.
//
// All misuse (cross-system reads, dependency cycles, missing commits,
// overlapping mutation windows) is a programming error and panics with a
// sentinel error from this package rather than limping along.
//
// Example:
//
//	s := graph.NewSystem()
//	x := graph.NewVar(s, 0)
//	a := graph.NewVal(s, func(u *graph.Update[int]) {
//		v := *graph.Track(u, x)
//		u.Commit(func() int { return v + 1 })
//	})
//
//	_ = *graph.Read(s, a) // 1
//
//	m := s.Modify()
//	x.Set(m, 10)
//	m.End()
//
//	_ = *graph.Read(s, a) // 11
package graph
