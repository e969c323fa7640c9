// Package hash provides the deterministic bit mixing used to address procedural content.
//
// Every function here is a pure function of its arguments. The constants and the order of
// operations are fixed forever: changing any of them changes every generated tile.
package hash

// Domain tags keep tile keys and content seeds from colliding.
const (
	TileDomain    uint64 = 0x54494C45 // "TILE"
	ContentDomain uint64 = 0x53544152 // "STAR"
)

const (
	golden    uint64 = 0x9E3779B97F4A7C15
	mixMul1   uint64 = 0xBF58476D1CE4E5B9
	mixMul2   uint64 = 0x94D049BB133111EB
	foldStart uint64 = 0xA0761D6478BD642F
	tagMul    uint64 = 0xD6E8FEB86659FD93
)

// Mix is the splitmix64 finalizer applied to x after the golden-ratio increment.
func Mix(x uint64) uint64 {
	z := x + golden
	z = (z ^ (z >> 30)) * mixMul1
	z = (z ^ (z >> 27)) * mixMul2
	return z ^ (z >> 31)
}

// Hash64 folds vals into a single value. The first value is usually a domain tag.
// Order matters: Hash64(a, b) != Hash64(b, a) in general.
func Hash64(vals ...uint64) uint64 {
	h := foldStart
	for _, v := range vals {
		h = Mix(h ^ v)
	}
	return h
}

// Uniform01 returns a double in [0, 1) derived from seed and tag, using the top 53 bits.
func Uniform01(seed, tag uint64) float64 {
	x := Mix(seed ^ (tag * tagMul))
	return float64(x>>11) / (1 << 53)
}

// TileKey identifies the tile at (depth, x, y) within a world.
func TileKey(worldSeed uint64, depth int, x, y uint64) uint64 {
	return Hash64(TileDomain, worldSeed, uint64(depth), x, y)
}

// ContentSeed identifies the index-th content item of a tile.
func ContentSeed(tileKey uint64, index int) uint64 {
	return Hash64(ContentDomain, tileKey, uint64(index))
}
