package qnet

import (
	"slices"
	"sync"

	"github.com/VanDung-dev/QNetX-Engine/qnum"
)

// Router selects routes by collapsing a superposition of candidate paths.
//
// Candidates are enumerated breadth first, so shorter paths come first and
// equal-length paths follow neighbor insertion order.
type Router struct {
	kPaths int
	graph  map[NodeID][]NodeID
	mu     sync.RWMutex
}

// NewRouter creates an empty router that considers up to kPaths candidates.
func NewRouter(kPaths int) *Router {
	if kPaths <= 0 {
		kPaths = DefaultConfig().KPaths
	}
	return &Router{
		kPaths: kPaths,
		graph:  make(map[NodeID][]NodeID),
	}
}

// AddEdge connects a and b in both directions. Repeated calls add parallel
// edges, which show up as duplicate candidate paths.
func (r *Router) AddEdge(a, b NodeID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.graph[a] = append(r.graph[a], b)
	r.graph[b] = append(r.graph[b], a)
}

// Neighbors returns a copy of n's adjacency list in insertion order.
func (r *Router) Neighbors(n NodeID) []NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.graph[n])
}

// Nodes returns every node with at least one edge, sorted.
func (r *Router) Nodes() []NodeID {
	r.mu.RLock()
	defer r.mu.RUnlock()

	nodes := make([]NodeID, 0, len(r.graph))
	for n := range r.graph {
		nodes = append(nodes, n)
	}
	slices.Sort(nodes)
	return nodes
}

// KPaths returns the configured candidate limit.
func (r *Router) KPaths() int {
	return r.kPaths
}

// EnumeratePaths returns up to k simple paths from src to dst in
// breadth-first discovery order. It returns nil without walking any paths
// when dst cannot be reached from src.
func (r *Router) EnumeratePaths(src, dst NodeID, k int) []Path {
	if k <= 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.reachable(src, dst) {
		return nil
	}

	var found []Path
	queue := []Path{{src}}

	for len(queue) > 0 && len(found) < k {
		path := queue[0]
		queue = queue[1:]

		last := path[len(path)-1]
		if last == dst {
			found = append(found, path)
			continue
		}

		for _, next := range r.graph[last] {
			if slices.Contains(path, next) {
				continue
			}
			extended := make(Path, len(path)+1)
			copy(extended, path)
			extended[len(path)] = next
			queue = append(queue, extended)
		}
	}

	return found
}

// reachable reports whether dst is connected to src. A node always reaches
// itself. Callers hold r.mu.
func (r *Router) reachable(src, dst NodeID) bool {
	if src == dst {
		return true
	}
	if _, ok := r.graph[src]; !ok {
		return false
	}
	if _, ok := r.graph[dst]; !ok {
		return false
	}

	seen := map[NodeID]bool{src: true}
	queue := []NodeID{src}
	for len(queue) > 0 {
		n := queue[0]
		queue = queue[1:]
		for _, next := range r.graph[n] {
			if next == dst {
				return true
			}
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	return false
}

// BuildSuperposition returns an equal-weight superposition over the candidate
// indices. Each index is encoded as fixed-width decimal digits, most
// significant first. An empty candidate list yields the single index 0.
func BuildSuperposition(paths []Path) *qnum.QNum {
	k := max(len(paths), 1)
	width := indexWidth(k)

	states := make([]qnum.State, k)
	for i := 0; i < k; i++ {
		states[i] = qnum.State{Digits: encodeIndex(i, width), Weight: 1}
	}

	q, err := qnum.FromSuperposed(states)
	if err != nil {
		// Unreachable: widths are uniform and weights positive.
		panic(err)
	}
	return q
}

// SelectRoute chooses one of the candidate paths from src to dst.
func (r *Router) SelectRoute(src, dst NodeID) (Path, error) {
	paths := r.EnumeratePaths(src, dst, r.kPaths)
	if len(paths) == 0 {
		return nil, &NoRouteError{Src: src, Dst: dst}
	}

	digits := BuildSuperposition(paths).Measure()
	index := 0
	for _, d := range digits {
		index = index*10 + int(d)
	}

	return paths[index%len(paths)], nil
}

// indexWidth returns the number of decimal digits needed for indices 0..k-1,
// which equals max(1, ceil(log10(k))).
func indexWidth(k int) int {
	width := 1
	for n := k - 1; n >= 10; n /= 10 {
		width++
	}
	return width
}

func encodeIndex(i, width int) []uint8 {
	digits := make([]uint8, width)
	for pos := width - 1; pos >= 0; pos-- {
		digits[pos] = uint8(i % 10)
		i /= 10
	}
	return digits
}
