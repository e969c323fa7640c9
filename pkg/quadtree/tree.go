package quadtree

import (
	"errors"
	"fmt"
	gomath "math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/galaxyquad/internal/logger"
	"github.com/Faultbox/galaxyquad/internal/metrics"
	"github.com/Faultbox/galaxyquad/pkg/geom"
	"github.com/Faultbox/galaxyquad/pkg/math"
)

// MaxSupportedDepth keeps Morton codes (two bits per level) inside 64 bits.
const MaxSupportedDepth = 32

// DefaultWorldSeed is the world seed DefaultOptions uses.
const DefaultWorldSeed uint64 = 8675309

// depthEpsilon floors the viewport size so degenerate viewports resolve to MaxDepth.
const depthEpsilon = 1e-9

var (
	ErrInvalidCellsAcross = errors.New("cells across must be at least 1")
	ErrInvalidDepthRange  = errors.New("invalid depth range")
	ErrInvalidParallelism = errors.New("parallel depth must be at least 1")
)

// Options configures a Tree.
type Options struct {
	WorldSeed uint64
	Root      geom.AABB

	// CellsAcross is the number of cells the LOD policy aims to fit across the
	// shorter viewport side.
	CellsAcross int
	MinDepth    int
	MaxDepth    int

	// Workers > 1 enables parallel traversal of the subtrees rooted at ParallelDepth.
	Workers       int
	ParallelDepth int
}

// DefaultOptions returns the options used by FromCenter, minus the root box.
func DefaultOptions() Options {
	return Options{
		WorldSeed:     DefaultWorldSeed,
		CellsAcross:   4,
		MinDepth:      0,
		MaxDepth:      20,
		Workers:       1,
		ParallelDepth: 2,
	}
}

// Validate checks the options without building a tree.
func (o Options) Validate() error {
	if !(o.Root.Half.X > 0) || !(o.Root.Half.Y > 0) {
		return fmt.Errorf("root half-extents (%g, %g): %w", o.Root.Half.X, o.Root.Half.Y, geom.ErrInvalidExtent)
	}
	if o.CellsAcross < 1 {
		return fmt.Errorf("cells across %d: %w", o.CellsAcross, ErrInvalidCellsAcross)
	}
	if o.MinDepth < 0 || o.MaxDepth < o.MinDepth || o.MaxDepth > MaxSupportedDepth {
		return fmt.Errorf("min %d, max %d (limit %d): %w", o.MinDepth, o.MaxDepth, MaxSupportedDepth, ErrInvalidDepthRange)
	}
	if o.Workers > 1 && o.ParallelDepth < 1 {
		return fmt.Errorf("parallel depth %d: %w", o.ParallelDepth, ErrInvalidParallelism)
	}
	return nil
}

// Tree owns the root node and the LOD policy.
//
// Update mutates the tree: concurrent calls are serialized. Nodes returned by a query must
// not be retained across queries.
type Tree struct {
	mu   sync.Mutex
	root *Node
	opts Options
}

// New validates opts and creates a tree with a single leaf root.
func New(opts Options) (*Tree, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("quadtree: %w", err)
	}
	if opts.Workers < 1 {
		opts.Workers = 1
	}

	logger.Info("quadtree created",
		zap.Uint64("world_seed", opts.WorldSeed),
		zap.Float64("root_width", opts.Root.Width()),
		zap.Float64("root_height", opts.Root.Height()),
		zap.Int("cells_across", opts.CellsAcross),
		zap.Int("min_depth", opts.MinDepth),
		zap.Int("max_depth", opts.MaxDepth),
		zap.Int("workers", opts.Workers))

	return &Tree{
		root: newNode(opts.Root, 0, nil, opts.WorldSeed),
		opts: opts,
	}, nil
}

// FromCenter creates a tree over the box centered at (cx, cy) with default LOD settings.
func FromCenter(cx, cy, hw, hh float64, cellsAcross int) (*Tree, error) {
	opts := DefaultOptions()
	opts.Root = geom.AABB{Center: math.Vec2{X: cx, Y: cy}, Half: math.Vec2{X: hw, Y: hh}}
	opts.CellsAcross = cellsAcross
	return New(opts)
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Options returns the tree configuration.
func (t *Tree) Options() Options { return t.opts }

// PseudoDepth is log2 of (root size * cells across / shorter viewport side).
// Rotation does not affect it.
func (t *Tree) PseudoDepth(vp geom.OBB) float64 {
	vmin := 2 * gomath.Min(vp.Half.X, vp.Half.Y)
	rootSize := gomath.Max(t.root.box.Width(), t.root.box.Height())
	ratio := rootSize * float64(t.opts.CellsAcross) / gomath.Max(depthEpsilon, vmin)
	return gomath.Log2(ratio)
}

// TargetDepth rounds PseudoDepth up and clamps it to [MinDepth, MaxDepth].
func (t *Tree) TargetDepth(vp geom.OBB) int {
	pd := t.PseudoDepth(vp)
	if gomath.IsNaN(pd) {
		return t.opts.MaxDepth
	}
	d := gomath.Ceil(pd)
	if d < float64(t.opts.MinDepth) {
		return t.opts.MinDepth
	}
	if d > float64(t.opts.MaxDepth) {
		return t.opts.MaxDepth
	}
	return int(d)
}

// DefaultStop stops at the target depth for vp, computed once.
func (t *Tree) DefaultStop(vp geom.OBB) StopFunc {
	return StopAtDepth(t.TargetDepth(vp))
}

// Update runs one query and returns the visited nodes in depth-first pre-order
// (NW, NE, SW, SE). A nil stop selects DefaultStop. With Workers > 1, stop may be
// called from several goroutines.
func (t *Tree) Update(vp geom.OBB, stop StopFunc) []*Node {
	t.mu.Lock()
	defer t.mu.Unlock()

	start := time.Now()
	target := t.TargetDepth(vp)
	if stop == nil {
		stop = StopAtDepth(target)
	}

	st := &walkStats{}
	mode := metrics.ModeSequential
	var visited []*Node
	if t.opts.Workers > 1 {
		mode = metrics.ModeParallel
		visited = t.root.traverseParallel(vp, stop, t.opts.MaxDepth, t.opts.ParallelDepth, t.opts.Workers, st)
	} else {
		visited = t.root.traverse(vp, stop, t.opts.MaxDepth, nil, st)
	}

	elapsed := time.Since(start)
	pruned := st.pruned.Load()
	metrics.ObserveQuery(mode, len(visited), int(pruned), elapsed)

	logger.Debug("quadtree update",
		zap.String("mode", mode),
		zap.Int("target_depth", target),
		zap.Int("visited", len(visited)),
		zap.Int64("pruned", pruned),
		zap.Duration("elapsed", elapsed))

	return visited
}
