package graph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/on-the-ground/memo_ive_go/graph"
)

type countingObserver struct {
	advanced   []graph.Version
	recomputed []string
	committed  []string
	cutoff     []string
}

func (o *countingObserver) VersionAdvanced(v graph.Version) {
	o.advanced = append(o.advanced, v)
}
func (o *countingObserver) NodeRecomputed(name string, _ graph.Version) {
	o.recomputed = append(o.recomputed, name)
}
func (o *countingObserver) NodeCommitted(name string, _ graph.Version) {
	o.committed = append(o.committed, name)
}
func (o *countingObserver) NodeCutoff(name string, _ graph.Version) {
	o.cutoff = append(o.cutoff, name)
}

func TestObserver_NodeLifecycleEvents(t *testing.T) {
	obs := &countingObserver{}
	s := graph.NewSystem(graph.WithObserver(obs))

	x := graph.NewVar(s, 1)
	y := graph.NewVar(s, 1)
	a := graph.NewVal(s, func(u *graph.Update[int]) {
		v := *graph.Track(u, x)
		u.Commit(func() int { return v })
	}, graph.WithName("a"))

	require.Equal(t, 1, *graph.Read(s, a))
	assert.Equal(t, []string{"a"}, obs.recomputed)
	assert.Equal(t, []string{"a"}, obs.committed)
	assert.Empty(t, obs.cutoff)

	m := s.Modify()
	y.Set(m, 2)
	m.End()
	assert.Equal(t, []graph.Version{2}, obs.advanced)

	// Unrelated mutation: the recheck runs but hits the early cutoff.
	require.Equal(t, 1, *graph.Read(s, a))
	assert.Equal(t, []string{"a", "a"}, obs.recomputed)
	assert.Equal(t, []string{"a"}, obs.committed)
	assert.Equal(t, []string{"a"}, obs.cutoff)
}

func TestLogObserver_EmitsDebugEvents(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := graph.NewSystem(
		graph.WithLogger(zap.New(core)),
		graph.WithObserver(graph.LogObserver(zap.New(core))),
	)

	x := graph.NewVar(s, 0)
	a := graph.NewVal(s, func(u *graph.Update[int]) {
		v := *graph.Track(u, x)
		u.Commit(func() int { return v + 1 })
	}, graph.WithName("plusone"))

	_ = *graph.Read(s, a)
	m := s.Modify()
	x.Set(m, 1)
	m.End()
	_ = *graph.Read(s, a)

	assert.NotZero(t, logs.FilterMessage("node recomputed").Len())
	assert.NotZero(t, logs.FilterMessage("node committed").Len())
	assert.NotZero(t, logs.FilterMessage("mutation window opened").Len())
	assert.NotZero(t, logs.FilterMessage("mutation window closed").Len())
}
