package postfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// GreyscaleOptions configures a Greyscale filter.
type GreyscaleOptions struct {
	// Alpha selects an LA8 render target carrying the source alpha;
	// the default is a plain L8 target.
	Alpha bool
}

// Greyscale converts an RGBA8 previous buffer to video-range luma using
// the BT.601 weights 0.257 R + 0.504 G + 0.098 B + 16.
type Greyscale struct {
	alpha bool
}

// NewGreyscale creates a greyscale filter.
func NewGreyscale(opts GreyscaleOptions) *Greyscale {
	return &Greyscale{alpha: opts.Alpha}
}

// TextureSize implements Filter; greyscale imposes no size.
func (g *Greyscale) TextureSize() (int, int, bool) { return 0, 0, false }

// TextureFormat implements Filter: the ideal render target is LA8 when
// alpha is kept, L8 otherwise.
func (g *Greyscale) TextureFormat() (Format, bool) {
	if g.alpha {
		return LA8, true
	}
	return L8, true
}

// Describe implements Filter.
func (g *Greyscale) Describe() string { return "Greyscale" }

// Bind implements Filter. The render target must be L8 or LA8 and the
// previous buffer must be RGBA8. The previous buffer may have a
// different resolution; it is then resampled by normalized coordinate.
func (g *Greyscale) Bind(fb FrameBuffer) (Function, error) {
	if fb.Previous == nil {
		return nil, ErrMissingPrevious
	}
	if fb.Format != L8 && fb.Format != LA8 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fb.Format)
	}
	if fb.Previous.Format() != RGBA8 {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPreviousFormat, fb.Previous.Format())
	}
	return &greyscaleFunc{
		previous: fb.Previous,
		width:    fb.Width,
		height:   fb.Height,
		format:   fb.Format,
	}, nil
}

type greyscaleFunc struct {
	previous Texture
	width    int
	height   int
	format   Format
}

// Apply implements Function.
func (f *greyscaleFunc) Apply(x, y int) (Texel, error) {
	texel, err := SourceTexel(f.previous, f.width, f.height, x, y)
	if err != nil {
		return Texel{}, err
	}
	r, g, b, a, _ := texel.RGBA8Channels()
	luma := 0.257*float64(r) + 0.504*float64(g) + 0.098*float64(b) + 16
	luma = mgl64.Clamp(luma, 0, 255)
	if f.format == LA8 {
		return TexLA8(uint8(luma), a), nil
	}
	return TexL8(uint8(luma)), nil
}
