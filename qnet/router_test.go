package qnet

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond() *Router {
	r := NewRouter(4)
	r.AddEdge("A", "B")
	r.AddEdge("B", "C")
	r.AddEdge("A", "D")
	r.AddEdge("D", "C")
	return r
}

func TestAddEdgeIsSymmetric(t *testing.T) {
	r := NewRouter(4)
	r.AddEdge("A", "B")

	assert.Equal(t, []NodeID{"B"}, r.Neighbors("A"))
	assert.Equal(t, []NodeID{"A"}, r.Neighbors("B"))
	assert.Equal(t, []NodeID{"A", "B"}, r.Nodes())
}

func TestParallelEdgesYieldDuplicatePaths(t *testing.T) {
	r := NewRouter(4)
	r.AddEdge("A", "B")
	r.AddEdge("A", "B")

	paths := r.EnumeratePaths("A", "B", 4)
	assert.Equal(t, []Path{{"A", "B"}, {"A", "B"}}, paths)
}

func TestEnumeratePathsDiscoveryOrder(t *testing.T) {
	r := diamond()
	r.AddEdge("B", "D")

	paths := r.EnumeratePaths("A", "C", 10)
	require.Len(t, paths, 4)
	assert.Equal(t, Path{"A", "B", "C"}, paths[0])
	assert.Equal(t, Path{"A", "D", "C"}, paths[1])
	assert.Equal(t, Path{"A", "B", "D", "C"}, paths[2])
	assert.Equal(t, Path{"A", "D", "B", "C"}, paths[3])

	assert.Len(t, r.EnumeratePaths("A", "C", 1), 1)
	assert.Empty(t, r.EnumeratePaths("A", "C", 0))
}

func TestEnumeratePathsSameNode(t *testing.T) {
	r := diamond()
	assert.Equal(t, []Path{{"A"}}, r.EnumeratePaths("A", "A", 4))
}

func TestSelectRouteExploresAllCandidates(t *testing.T) {
	r := diamond()

	seen := map[string]int{}
	for i := 0; i < 1000; i++ {
		path, err := r.SelectRoute("A", "C")
		require.NoError(t, err)
		seen[path.String()]++
	}

	assert.Len(t, seen, 2)
	assert.Positive(t, seen["A->B->C"])
	assert.Positive(t, seen["A->D->C"])
}

func TestSelectRouteNoRoute(t *testing.T) {
	r := NewRouter(4)
	r.AddEdge("A", "B")

	_, err := r.SelectRoute("A", "Z")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNoRoute))

	var noRoute *NoRouteError
	require.ErrorAs(t, err, &noRoute)
	assert.Equal(t, NodeID("A"), noRoute.Src)
	assert.Equal(t, NodeID("Z"), noRoute.Dst)

	_, err = NewRouter(4).SelectRoute("X", "Y")
	assert.ErrorIs(t, err, ErrNoRoute)
}

func TestSelectRouteUnreachableOnDenseGraph(t *testing.T) {
	// Enumerating every simple path of a complete graph this size would not
	// finish, so an unreachable destination must be rejected up front.
	r := NewRouter(4)
	const n = 12
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			r.AddEdge(NodeID(fmt.Sprintf("n%d", i)), NodeID(fmt.Sprintf("n%d", j)))
		}
	}
	r.AddEdge("island", "atoll")

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, err := r.SelectRoute("n0", "missing")
		assert.ErrorIs(t, err, ErrNoRoute)
		_, err = r.SelectRoute("n0", "island")
		assert.ErrorIs(t, err, ErrNoRoute)
		_, err = r.SelectRoute("missing", "n0")
		assert.ErrorIs(t, err, ErrNoRoute)
		assert.Nil(t, r.EnumeratePaths("atoll", "n3", 4))
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("unreachable destination was not rejected promptly")
	}

	paths := r.EnumeratePaths("n0", "n1", 3)
	require.Len(t, paths, 3)
	assert.Equal(t, Path{"n0", "n1"}, paths[0])
}

func TestIndexWidth(t *testing.T) {
	cases := map[int]int{1: 1, 2: 1, 9: 1, 10: 1, 11: 2, 100: 2, 101: 3}
	for k, want := range cases {
		assert.Equal(t, want, indexWidth(k), "k=%d", k)
	}
}

func TestBuildSuperposition(t *testing.T) {
	single := BuildSuperposition(nil)
	assert.Equal(t, 1, single.Len())
	assert.Equal(t, []uint8{0}, single.Measure())

	paths := make([]Path, 3)
	q := BuildSuperposition(paths)
	p := q.Probabilities(0)
	for i := 0; i < 3; i++ {
		assert.InDelta(t, 1.0/3, p[i], 1e-12)
	}

	wide := BuildSuperposition(make([]Path, 12))
	assert.Equal(t, 2, wide.Len())
}

func TestPathInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 50

	properties := gopter.NewProperties(parameters)

	genEdges := gen.SliceOfN(12, gen.SliceOfN(2, gen.IntRange(0, 5)))

	properties.Property("paths start at src, end at dst and never repeat a node", prop.ForAll(
		func(edges [][]int, k int) bool {
			r := NewRouter(k)
			for _, e := range edges {
				r.AddEdge(nodeName(e[0]), nodeName(e[1]))
			}

			paths := r.EnumeratePaths("n0", "n5", k)
			if len(paths) > k {
				return false
			}
			prevLen := 0
			for _, p := range paths {
				if p[0] != "n0" || p[len(p)-1] != "n5" {
					return false
				}
				seen := map[NodeID]bool{}
				for _, n := range p {
					if seen[n] {
						return false
					}
					seen[n] = true
				}
				if len(p) < prevLen {
					return false
				}
				prevLen = len(p)
			}
			return true
		},
		genEdges,
		gen.IntRange(1, 6),
	))

	properties.Property("selected route is one of the candidates", prop.ForAll(
		func(edges [][]int) bool {
			r := NewRouter(4)
			for _, e := range edges {
				r.AddEdge(nodeName(e[0]), nodeName(e[1]))
			}

			candidates := r.EnumeratePaths("n0", "n5", 4)
			path, err := r.SelectRoute("n0", "n5")
			if len(candidates) == 0 {
				return errors.Is(err, ErrNoRoute)
			}
			return err == nil && slices.ContainsFunc(candidates, func(c Path) bool {
				return slices.Equal(c, path)
			})
		},
		genEdges,
	))

	properties.TestingRun(t)
}

func nodeName(i int) NodeID {
	return NodeID(fmt.Sprintf("n%d", i))
}
