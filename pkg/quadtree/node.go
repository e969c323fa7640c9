// Package quadtree implements an unbounded, self-pruning quadtree whose shape follows an
// oriented viewport, with deterministic star content generated per cell.
//
// Querying reshapes the tree. Tree.Update subdivides cells that enter the viewport and
// discards subtrees that leave it or sit deeper than needed, so *Node values returned by
// one query may be detached by the next. Content on a discarded node is regenerated
// bit-identically if the same cell is visited again.
package quadtree

import (
	"sync"

	"github.com/Faultbox/galaxyquad/internal/metrics"
	"github.com/Faultbox/galaxyquad/pkg/geom"
	"github.com/Faultbox/galaxyquad/pkg/hash"
)

// Node is one cell of the hierarchy. A node is owned by its parent and keeps no
// back-reference to it.
type Node struct {
	box   geom.AABB
	depth int
	path  []uint8
	seed  uint64

	children *[4]*Node

	starsOnce sync.Once
	stars     []Star
}

func newNode(box geom.AABB, depth int, path []uint8, seed uint64) *Node {
	return &Node{box: box, depth: depth, path: path, seed: seed}
}

// Box returns the cell bounds.
func (n *Node) Box() geom.AABB { return n.box }

// Depth returns the distance from the root; the root is 0.
func (n *Node) Depth() int { return n.depth }

// Path returns a copy of the quadrant indices leading from the root to n.
func (n *Node) Path() []uint8 {
	p := make([]uint8, len(n.path))
	copy(p, n.path)
	return p
}

// IsLeaf reports whether n currently has no children.
func (n *Node) IsLeaf() bool { return n.children == nil }

// Children returns the NW, NE, SW, SE children, or nil for a leaf.
func (n *Node) Children() []*Node {
	if n.children == nil {
		return nil
	}
	return n.children[:]
}

// Subdivide creates the four children if they do not exist yet. It does not recurse.
// Nodes at MaxSupportedDepth stay leaves.
func (n *Node) Subdivide() {
	if n.children != nil || n.depth >= MaxSupportedDepth {
		return
	}
	var kids [4]*Node
	for i, b := range n.box.Quadrants() {
		p := make([]uint8, len(n.path)+1)
		copy(p, n.path)
		p[len(n.path)] = uint8(i)
		kids[i] = newNode(b, n.depth+1, p, n.seed)
	}
	n.children = &kids
	metrics.Subdivisions.Inc()
}

// prune drops the subtree below n and reports whether there was one.
func (n *Node) prune() bool {
	if n.children == nil {
		return false
	}
	n.children = nil
	return true
}

// GridPosition returns the cell column and row at this depth. Row 0 is the top (+Y) edge.
func (n *Node) GridPosition() (x, y uint64) {
	for _, q := range n.path {
		x = x<<1 | uint64(q&1)
		y = y<<1 | uint64(q>>1&1)
	}
	return x, y
}

// MortonCode interleaves the grid position bits, x in even bits and y in odd bits.
func (n *Node) MortonCode() uint64 {
	x, y := n.GridPosition()
	var code uint64
	for i := 0; i < n.depth; i++ {
		code |= (x >> i & 1) << (2 * i)
		code |= (y >> i & 1) << (2*i + 1)
	}
	return code
}

// TileID is the stable hash of (world seed, depth, grid position).
func (n *Node) TileID() uint64 {
	x, y := n.GridPosition()
	return hash.TileKey(n.seed, n.depth, x, y)
}
