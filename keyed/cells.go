// Package keyed provides a named collection of input cells over one System.
//
// Hosts that feed a value graph from keyed data (rows, files, topics) need a
// Var per key, created on demand. Cells gives them that without a global
// lock: lookups and creations are striped across buckets by key hash, so
// concurrent readers ensuring different keys rarely contend.
package keyed

import (
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/on-the-ground/memo_ive_go/graph"
)

// DefaultBuckets is the stripe count used when New is given a non-positive
// one.
const DefaultBuckets = 16

// Cells is a keyed collection of input cells belonging to a single System.
// Ensure and Lookup are safe for concurrent use between mutation windows;
// writes to the underlying Vars follow the usual mutation-window contract.
type Cells[K comparable, V any] struct {
	systemID graph.SystemID
	buckets  []bucket[K, V]
}

type bucket[K comparable, V any] struct {
	mu    sync.RWMutex
	cells map[K]*graph.Var[V]
}

// New creates an empty collection owned by s with the given stripe count.
func New[K comparable, V any](s *graph.System, numBuckets int) *Cells[K, V] {
	if numBuckets <= 0 {
		numBuckets = DefaultBuckets
	}
	c := &Cells[K, V]{
		systemID: s.ID(),
		buckets:  make([]bucket[K, V], numBuckets),
	}
	for i := range c.buckets {
		c.buckets[i].cells = map[K]*graph.Var[V]{}
	}
	return c
}

func (c *Cells[K, V]) bucketOf(key K) *bucket[K, V] {
	idx := xxhash.Sum64String(fmt.Sprintf("%v", key)) % uint64(len(c.buckets))
	return &c.buckets[idx]
}

// Ensure returns the cell for key, creating it stamped at the System's
// current version when absent. Concurrent Ensure calls for the same key
// return the same cell; initial is only used by whichever call creates it.
//
// Panics with graph.ErrSystemMismatch when s is not the owning System.
func (c *Cells[K, V]) Ensure(s *graph.System, key K, initial V) *graph.Var[V] {
	if s.ID() != c.systemID {
		panic(fmt.Errorf("%w: cells of system %s ensured through system %s", graph.ErrSystemMismatch, c.systemID, s.ID()))
	}
	b := c.bucketOf(key)

	b.mu.RLock()
	v, ok := b.cells[key]
	b.mu.RUnlock()
	if ok {
		return v
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if v, ok := b.cells[key]; ok {
		return v
	}
	v = graph.NewVar(s, initial)
	b.cells[key] = v
	return v
}

// Lookup returns the cell for key without creating one.
func (c *Cells[K, V]) Lookup(key K) (*graph.Var[V], bool) {
	b := c.bucketOf(key)
	b.mu.RLock()
	defer b.mu.RUnlock()
	v, ok := b.cells[key]
	return v, ok
}

// Len counts the cells across all buckets.
func (c *Cells[K, V]) Len() int {
	n := 0
	for i := range c.buckets {
		b := &c.buckets[i]
		b.mu.RLock()
		n += len(b.cells)
		b.mu.RUnlock()
	}
	return n
}
