package graph_test

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/on-the-ground/memo_ive_go/graph"
)

func TestSyncVal_EndToEnd(t *testing.T) {
	s := graph.NewSystem()
	x := graph.NewVar(s, 0)
	b := graph.NewSyncVal(s, func(u *graph.Update[int]) {
		v := *graph.Track(u, x)
		u.Commit(func() int { return v + 2 })
	})

	require.Equal(t, 2, *graph.Read(s, b))

	m := s.Modify()
	x.Set(m, 10)
	m.End()

	done := make(chan int)
	go func() {
		done <- *graph.Read(s, b)
	}()
	require.Equal(t, 12, <-done)
}

func TestSyncVal_ConcurrentReadsRecomputeOnce(t *testing.T) {
	const readers = 16

	s := graph.NewSystem()
	x := graph.NewVar(s, 5)

	var recomputes atomic.Int32
	b := graph.NewSyncVal(s, func(u *graph.Update[int]) {
		recomputes.Add(1)
		v := *graph.Track(u, x)
		u.Commit(func() int { return v * v })
	})

	results := make([]int, readers)
	start := make(chan struct{})
	var wg sync.WaitGroup
	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			results[i] = *graph.Read(s, b)
		}(i)
	}
	close(start)
	wg.Wait()

	assert.Equal(t, int32(1), recomputes.Load(), "at most one recomputation in flight")
	for _, got := range results {
		require.Equal(t, 25, got)
	}
}

func TestSyncVal_RecomputesOncePerVersionAcrossGoroutines(t *testing.T) {
	const readers = 8

	s := graph.NewSystem()
	x := graph.NewVar(s, 1)

	var recomputes atomic.Int32
	b := graph.NewSyncVal(s, func(u *graph.Update[int]) {
		recomputes.Add(1)
		v := *graph.Track(u, x)
		u.Commit(func() int { return v })
	})

	readAll := func(want int) {
		start := make(chan struct{})
		var wg sync.WaitGroup
		for i := 0; i < readers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				<-start
				assert.Equal(t, want, *graph.Read(s, b))
			}()
		}
		close(start)
		wg.Wait()
	}

	readAll(1)
	require.Equal(t, int32(1), recomputes.Load())

	m := s.Modify()
	x.Set(m, 2)
	m.End()

	readAll(2)
	require.Equal(t, int32(2), recomputes.Load())
}

func TestSyncVal_FastPathSkipsRecompute(t *testing.T) {
	s := graph.NewSystem()
	var recomputes atomic.Int32
	b := graph.NewSyncVal(s, func(u *graph.Update[int]) {
		recomputes.Add(1)
		u.Commit(func() int { return 1 })
	})

	for i := 0; i < 100; i++ {
		require.Equal(t, 1, *graph.Read(s, b))
	}
	assert.Equal(t, int32(1), recomputes.Load())
}

func TestSyncVal_DirectRecursionPanics(t *testing.T) {
	s := graph.NewSystem()

	var b *graph.SyncVal[int]
	b = graph.NewSyncVal(s, func(u *graph.Update[int]) {
		graph.Track(u, b)
		u.Commit(func() int { return 0 })
	}, graph.WithName("self"))

	requirePanicsIs(t, graph.ErrUpdateRecursion, func() {
		graph.Read(s, b)
	})
}

func TestSyncVal_MixedChainRecursionPanics(t *testing.T) {
	s := graph.NewSystem()

	var a *graph.Val[int]
	var b *graph.SyncVal[int]
	a = graph.NewVal(s, func(u *graph.Update[int]) {
		graph.Track(u, b)
		u.Commit(func() int { return 0 })
	})
	b = graph.NewSyncVal(s, func(u *graph.Update[int]) {
		graph.Track(u, a)
		u.Commit(func() int { return 0 })
	})

	requirePanicsIs(t, graph.ErrUpdateRecursion, func() {
		graph.Read(s, b)
	})
}

func TestSyncVal_GuardResetsAfterPanic(t *testing.T) {
	s := graph.NewSystem()

	var b *graph.SyncVal[int]
	broken := true
	b = graph.NewSyncVal(s, func(u *graph.Update[int]) {
		if broken {
			graph.Track(u, b)
		}
		u.Commit(func() int { return 9 })
	})

	requirePanicsIs(t, graph.ErrUpdateRecursion, func() {
		graph.Read(s, b)
	})

	broken = false
	require.Equal(t, 9, *graph.Read(s, b))
}

func TestSyncVal_MissingCommitPanics(t *testing.T) {
	s := graph.NewSystem()
	b := graph.NewSyncVal(s, func(u *graph.Update[int]) {})

	requirePanicsIs(t, graph.ErrNoCommit, func() {
		graph.Read(s, b)
	})
}
