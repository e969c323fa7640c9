package quadtree

import (
	"fmt"
	"io"
	"strings"
)

// Stats returns the number of live nodes at each depth, visited or not.
func (t *Tree) Stats() map[int]int {
	t.mu.Lock()
	defer t.mu.Unlock()

	counts := make(map[int]int)
	var rec func(n *Node)
	rec = func(n *Node) {
		counts[n.depth]++
		for _, c := range n.Children() {
			rec(c)
		}
	}
	rec(t.root)
	return counts
}

// Print writes the live hierarchy, one node per line, indented by depth.
// Nodes deeper than maxDepth are skipped; a negative maxDepth prints everything.
func (t *Tree) Print(w io.Writer, maxDepth int) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	var rec func(n *Node) error
	rec = func(n *Node) error {
		if maxDepth >= 0 && n.depth > maxDepth {
			return nil
		}
		pad := strings.Repeat("  ", n.depth)
		if _, err := fmt.Fprintf(w, "%s- depth=%d, path=%v\n", pad, n.depth, n.path); err != nil {
			return err
		}
		for _, c := range n.Children() {
			if err := rec(c); err != nil {
				return err
			}
		}
		return nil
	}
	return rec(t.root)
}
