package quadtree

import (
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/galaxyquad/pkg/geom"
)

// StopFunc decides whether traversal should stop descending at n for viewport vp.
type StopFunc func(n *Node, vp geom.OBB) bool

// StopAtDepth stops at the given depth.
func StopAtDepth(depth int) StopFunc {
	return func(n *Node, _ geom.OBB) bool {
		return n.depth >= depth
	}
}

// walkStats collects per-query counters. A nil *walkStats ignores updates.
type walkStats struct {
	pruned atomic.Int64
}

func (s *walkStats) addPruned() {
	if s != nil {
		s.pruned.Add(1)
	}
}

// Traverse visits n and its descendants that intersect vp, appending them to visited in
// depth-first pre-order, and returns the extended slice.
//
// Subtrees outside vp, and subtrees below nodes where stop fires or maxDepth is reached,
// are discarded. Missing children along the way are created. maxDepth is capped at
// MaxSupportedDepth.
func (n *Node) Traverse(vp geom.OBB, stop StopFunc, maxDepth int, visited []*Node) []*Node {
	return n.traverse(vp, stop, min(maxDepth, MaxSupportedDepth), visited, nil)
}

func (n *Node) traverse(vp geom.OBB, stop StopFunc, maxDepth int, visited []*Node, st *walkStats) []*Node {
	if !vp.IntersectsAABB(n.box) {
		if n.prune() {
			st.addPruned()
		}
		return visited
	}

	visited = append(visited, n)

	if stop(n, vp) || n.depth >= maxDepth {
		if n.prune() {
			st.addPruned()
		}
		return visited
	}

	n.Subdivide()
	for _, child := range n.children {
		visited = child.traverse(vp, stop, maxDepth, visited, st)
	}
	return visited
}

// segment is a run of visited nodes written by exactly one goroutine.
type segment struct {
	nodes []*Node
}

// fanOut walks the tree like traverse, but hands every subtree rooted at splitDepth to g.
// Results are kept in pre-order by reserving a segment per subtree.
type fanOut struct {
	vp         geom.OBB
	stop       StopFunc
	maxDepth   int
	splitDepth int
	st         *walkStats
	g          *errgroup.Group
	segments   []*segment
}

func (f *fanOut) current() *segment {
	if len(f.segments) == 0 {
		f.segments = append(f.segments, &segment{})
	}
	return f.segments[len(f.segments)-1]
}

func (f *fanOut) walk(n *Node) {
	if n.depth >= f.splitDepth {
		seg := &segment{}
		f.segments = append(f.segments, seg, &segment{})
		f.g.Go(func() error {
			seg.nodes = n.traverse(f.vp, f.stop, f.maxDepth, nil, f.st)
			return nil
		})
		return
	}

	if !f.vp.IntersectsAABB(n.box) {
		if n.prune() {
			f.st.addPruned()
		}
		return
	}

	cur := f.current()
	cur.nodes = append(cur.nodes, n)

	if f.stop(n, f.vp) || n.depth >= f.maxDepth {
		if n.prune() {
			f.st.addPruned()
		}
		return
	}

	n.Subdivide()
	for _, child := range n.children {
		f.walk(child)
	}
}

// traverseParallel produces the same result as traverse. Subtrees at splitDepth run on up
// to workers goroutines; each node is still touched by a single goroutine.
func (n *Node) traverseParallel(vp geom.OBB, stop StopFunc, maxDepth, splitDepth, workers int, st *walkStats) []*Node {
	g := new(errgroup.Group)
	g.SetLimit(workers)

	f := &fanOut{
		vp:         vp,
		stop:       stop,
		maxDepth:   min(maxDepth, MaxSupportedDepth),
		splitDepth: splitDepth,
		st:         st,
		g:          g,
	}
	f.walk(n)
	_ = g.Wait()

	total := 0
	for _, s := range f.segments {
		total += len(s.nodes)
	}
	visited := make([]*Node, 0, total)
	for _, s := range f.segments {
		visited = append(visited, s.nodes...)
	}
	return visited
}
