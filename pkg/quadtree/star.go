package quadtree

import (
	"math/big"

	"github.com/Faultbox/galaxyquad/internal/metrics"
	"github.com/Faultbox/galaxyquad/pkg/hash"
	"github.com/Faultbox/galaxyquad/pkg/math"
)

// countTag seeds the per-tile jitter of the star count.
const countTag = 0xFADECAFE

// Star is one generated content item. It is a pure function of its tile and index.
type Star struct {
	ID         uint64
	Position   math.Vec2
	Brightness float64
}

// R2 returns the squared distance from the world origin.
func (s Star) R2() float64 {
	return s.Position.LengthSq()
}

// expectedStars[d] is trunc(5^d / 4^d), with the quotient rounded to the nearest double first.
var expectedStars = func() [MaxSupportedDepth + 1]int {
	var out [MaxSupportedDepth + 1]int
	five, four := big.NewInt(5), big.NewInt(4)
	num, den := big.NewInt(1), big.NewInt(1)
	for d := range out {
		f, _ := new(big.Rat).SetFrac(num, den).Float64()
		out[d] = int(f)
		num.Mul(num, five)
		den.Mul(den, four)
	}
	return out
}()

// starCount jitters the expected count by up to 15% in either direction and keeps at least one.
func starCount(depth int, tile uint64) int {
	expected := expectedStars[depth]
	variation := int((hash.Uniform01(tile, countTag) - 0.5) * float64(expected) * 0.3)
	return max(1, expected+variation)
}

// Stars returns the node's content, generating it on first use. Safe for concurrent use.
func (n *Node) Stars() []Star {
	n.starsOnce.Do(func() {
		n.stars = generateStars(n.box.Center, n.box.Width(), n.box.Height(), n.depth, n.TileID())
		metrics.StarsGenerated.Add(float64(len(n.stars)))
	})
	return n.stars
}

func generateStars(center math.Vec2, w, h float64, depth int, tile uint64) []Star {
	count := starCount(depth, tile)
	stars := make([]Star, count)
	for i := range stars {
		ux := hash.Uniform01(tile, uint64(2*i))
		uy := hash.Uniform01(tile, uint64(2*i+1))
		// explicit conversions keep the multiply from fusing with the add
		stars[i] = Star{
			ID: hash.ContentSeed(tile, i),
			Position: math.Vec2{
				X: center.X + float64((ux-0.5)*w),
				Y: center.Y + float64((uy-0.5)*h),
			},
			Brightness: hash.Uniform01(tile, uint64(i)),
		}
	}
	return stars
}
