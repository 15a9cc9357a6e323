package postfx

import "fmt"

// DefaultBrightness is the identity factor.
const DefaultBrightness = 1.0

// Brightness scales the color channels of the previous buffer by a
// constant factor, clamping the result to [0, 1]. Alpha is preserved.
type Brightness struct {
	factor float64
	desc   string
}

// NewBrightness creates a brightness filter. A factor of 1 is the
// identity, 0 produces black; negative factors are rejected.
func NewBrightness(factor float64) (*Brightness, error) {
	if factor < 0 {
		return nil, fmt.Errorf("postfx: brightness factor must not be negative, got %v", factor)
	}
	return &Brightness{
		factor: factor,
		desc:   fmt.Sprintf("Brightness(%v)", factor),
	}, nil
}

// TextureSize implements Filter; brightness imposes no size.
func (b *Brightness) TextureSize() (int, int, bool) { return 0, 0, false }

// TextureFormat implements Filter; brightness imposes no format.
func (b *Brightness) TextureFormat() (Format, bool) { return 0, false }

// Describe implements Filter.
func (b *Brightness) Describe() string { return b.desc }

// Bind implements Filter. The previous buffer must be present and match
// the render target resolution; any format is legal because the math is
// done on normalized channels.
func (b *Brightness) Bind(fb FrameBuffer) (Function, error) {
	if fb.Previous == nil {
		return nil, ErrMissingPrevious
	}
	if fb.Previous.Width() != fb.Width || fb.Previous.Height() != fb.Height {
		return nil, &SizeMismatchError{
			PrevWidth:  fb.Previous.Width(),
			PrevHeight: fb.Previous.Height(),
			Width:      fb.Width,
			Height:     fb.Height,
		}
	}
	return &brightnessFunc{
		previous: fb.Previous,
		factor:   b.factor,
		format:   fb.Format,
	}, nil
}

type brightnessFunc struct {
	previous Texture
	factor   float64
	format   Format
}

// Apply implements Function.
func (f *brightnessFunc) Apply(x, y int) (Texel, error) {
	texel, err := Fetch(f.previous, x, y)
	if err != nil {
		return Texel{}, err
	}
	rgba := texel.Normalize()
	alpha := rgba.W()
	rgba = clampVec4(rgba.Mul(f.factor), 0, 1)
	rgba[3] = alpha
	return EncodeNormalized(rgba, f.format), nil
}
