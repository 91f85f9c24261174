package graph

import "errors"

// Every failure mode in this package is a programming-contract violation,
// not a recoverable runtime condition. They are delivered by panic, wrapping
// one of these sentinels so recovered values answer errors.Is.
var (
	// ErrSystemMismatch reports a node, cell, or mutation window used with a
	// System it was not created against.
	ErrSystemMismatch = errors.New("graph: system mismatch")

	// ErrUpdateRecursion reports a memo node whose recompute function,
	// directly or transitively, read the node itself.
	ErrUpdateRecursion = errors.New("graph: update recursion")

	// ErrVersionOverflow reports a System whose version clock ran out of
	// representable versions.
	ErrVersionOverflow = errors.New("graph: version overflow")

	// ErrNoCommit reports a memo node whose recompute function returned
	// without committing while the node had no previous value.
	ErrNoCommit = errors.New("graph: update function committed nothing")

	// ErrCommitTwice reports a recompute function that called a commit
	// variant more than once on the same Update.
	ErrCommitTwice = errors.New("graph: update already committed")

	// ErrModifyInProgress reports a second mutation window opened before the
	// previous one ended.
	ErrModifyInProgress = errors.New("graph: mutation window already open")

	// ErrModifyEnded reports a mutation window used after End.
	ErrModifyEnded = errors.New("graph: mutation window already ended")
)
