package postfx

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ErrOutOfRange reports a direct fetch outside the texture bounds. This
// is a caller contract violation: Fetch never clamps, clamping is the
// convolution's responsibility.
var ErrOutOfRange = errors.New("postfx: texel coordinate out of range")

// Fetch reads the texel at integer coordinates. The coordinates must
// satisfy 0 <= x < width and 0 <= y < height.
func Fetch(t Texture, x, y int) (Texel, error) {
	texel, ok := t.TexelAt(x, y)
	if !ok {
		return Texel{}, fmt.Errorf("%w: (%d,%d) in %dx%d", ErrOutOfRange, x, y, t.Width(), t.Height())
	}
	return texel, nil
}

// Sample reads the texel nearest to a normalized coordinate. Each
// component of uv is scaled by the texture's own resolution and
// truncated toward zero, so uv components must lie in [0, 1); a
// component of exactly 1 lands one texel past the edge.
func Sample(t Texture, uv mgl64.Vec2) (Texel, error) {
	x := int(uv.X() * float64(t.Width()))
	y := int(uv.Y() * float64(t.Height()))
	return Fetch(t, x, y)
}

// SourceTexel reads a source texture on behalf of an output coordinate,
// choosing the addressing mode by resolution. When the source resolution
// equals the destination's, the destination coordinate is used directly
// (pixel-exact, no resampling artifacts); otherwise the coordinate is
// normalized by the destination resolution and resampled.
func SourceTexel(src Texture, dstWidth, dstHeight, x, y int) (Texel, error) {
	if src.Width() == dstWidth && src.Height() == dstHeight {
		return Fetch(src, x, y)
	}
	uv := mgl64.Vec2{
		float64(x) / float64(dstWidth),
		float64(y) / float64(dstHeight),
	}
	return Sample(src, uv)
}
