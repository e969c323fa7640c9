package quadtree

import (
	"io"

	"github.com/segmentio/encoding/json"

	"github.com/Faultbox/galaxyquad/pkg/geom"
)

// Snapshot is the JSON form of one query, handed to renderers outside this process.
type Snapshot struct {
	Viewport ViewportJSON `json:"viewport"`
	Nodes    []NodeJSON   `json:"nodes"`
}

// ViewportJSON describes the oriented viewport of a query.
type ViewportJSON struct {
	CX      float64       `json:"cx"`
	CY      float64       `json:"cy"`
	HW      float64       `json:"hw"`
	HH      float64       `json:"hh"`
	Theta   float64       `json:"theta"`
	Corners [4][2]float64 `json:"corners"`
}

// NodeJSON describes one visited node.
type NodeJSON struct {
	Depth  int        `json:"depth"`
	Path   []int      `json:"path"`
	TileID uint64     `json:"tile_id,string"`
	Morton uint64     `json:"morton,string"`
	Box    [4]float64 `json:"box"` // cx, cy, hw, hh
	Stars  []StarJSON `json:"stars,omitempty"`
}

// StarJSON describes one star.
type StarJSON struct {
	ID         uint64  `json:"id,string"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Brightness float64 `json:"brightness"`
}

// NewSnapshot captures vp and visited. Stars are generated on demand when withStars is set.
func NewSnapshot(vp geom.OBB, visited []*Node, withStars bool) Snapshot {
	snap := Snapshot{
		Viewport: ViewportJSON{
			CX:    vp.Center.X,
			CY:    vp.Center.Y,
			HW:    vp.Half.X,
			HH:    vp.Half.Y,
			Theta: vp.Theta,
		},
		Nodes: make([]NodeJSON, 0, len(visited)),
	}
	for i, c := range vp.Corners() {
		snap.Viewport.Corners[i] = [2]float64{c.X, c.Y}
	}

	for _, n := range visited {
		path := make([]int, len(n.path))
		for i, q := range n.path {
			path[i] = int(q)
		}
		nj := NodeJSON{
			Depth:  n.depth,
			Path:   path,
			TileID: n.TileID(),
			Morton: n.MortonCode(),
			Box:    [4]float64{n.box.Center.X, n.box.Center.Y, n.box.Half.X, n.box.Half.Y},
		}
		if withStars {
			for _, s := range n.Stars() {
				nj.Stars = append(nj.Stars, StarJSON{
					ID:         s.ID,
					X:          s.Position.X,
					Y:          s.Position.Y,
					Brightness: s.Brightness,
				})
			}
		}
		snap.Nodes = append(snap.Nodes, nj)
	}
	return snap
}

// WriteSnapshot encodes a snapshot of the query to w.
func WriteSnapshot(w io.Writer, vp geom.OBB, visited []*Node, withStars bool) error {
	return json.NewEncoder(w).Encode(NewSnapshot(vp, visited, withStars))
}
