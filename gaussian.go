package postfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Default Gaussian parameters, used when the corresponding option is
// left at its zero value.
const (
	DefaultSigma = 1.5
	DefaultKSize = 3
)

// GaussianOptions configures a Gaussian blur. Zero values select the
// documented defaults.
type GaussianOptions struct {
	// Sigma is the spread of the kernel. Defaults to 1.5.
	Sigma float64

	// KSize is the half-window radius: the filter accumulates taps at
	// offsets in [-KSize, KSize-1] on both axes, a square window of
	// side 2*KSize biased one texel toward negative offsets.
	// Defaults to 3.
	KSize int
}

// Gaussian is a blur filter: a weighted average over a square window of
// the previous buffer, clamp-to-edge at the borders. Only color is
// convolved; alpha is not.
type Gaussian struct {
	sigma float64
	ksize int
	desc  string
}

// NewGaussian creates a Gaussian blur filter. Negative Sigma or KSize
// values are contract violations and rejected here rather than left to
// produce NaN taps.
func NewGaussian(opts GaussianOptions) (*Gaussian, error) {
	if opts.Sigma < 0 {
		return nil, fmt.Errorf("postfx: gaussian sigma must be positive, got %v", opts.Sigma)
	}
	if opts.KSize < 0 {
		return nil, fmt.Errorf("postfx: gaussian ksize must be positive, got %d", opts.KSize)
	}
	sigma := opts.Sigma
	if sigma == 0 {
		sigma = DefaultSigma
	}
	ksize := opts.KSize
	if ksize == 0 {
		ksize = DefaultKSize
	}
	return &Gaussian{
		sigma: sigma,
		ksize: ksize,
		desc:  fmt.Sprintf("Gaussian(sigma=%v, n=%d)", sigma, ksize),
	}, nil
}

// TextureSize implements Filter; a blur imposes no size.
func (g *Gaussian) TextureSize() (int, int, bool) { return 0, 0, false }

// TextureFormat implements Filter; a blur imposes no format.
func (g *Gaussian) TextureFormat() (Format, bool) { return 0, false }

// Describe implements Filter.
func (g *Gaussian) Describe() string { return g.desc }

// Bind implements Filter. The previous buffer must be present, match
// the render target resolution exactly, and both previous and target
// must be integer formats.
func (g *Gaussian) Bind(fb FrameBuffer) (Function, error) {
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
	if fb.Previous.Format().IsFloat() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedPreviousFormat, fb.Previous.Format())
	}
	if fb.Format.IsFloat() {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, fb.Format)
	}
	return &gaussianFunc{
		previous: fb.Previous,
		width:    fb.Width,
		height:   fb.Height,
		format:   fb.Format,
		sigma:    g.sigma,
		ksize:    g.ksize,
	}, nil
}

type gaussianFunc struct {
	previous Texture
	width    int
	height   int
	format   Format
	sigma    float64
	ksize    int
}

// convolve accumulates the weighted window around (x, y) and returns the
// re-normalized color sum. Re-normalizing by the accumulated weight keeps
// total energy at 1 even when edge clamping duplicates taps.
func (f *gaussianFunc) convolve(x, y int) mgl64.Vec3 {
	var sum mgl64.Vec3
	var weight float64
	for i := -f.ksize; i < f.ksize; i++ {
		for j := -f.ksize; j < f.ksize; j++ {
			qx := clampInt(x+j, 0, f.width-1)
			qy := clampInt(y+i, 0, f.height-1)
			dx := float64(x - qx)
			dy := float64(y - qy)
			k := Gaussian2D(dx*dx+dy*dy, f.sigma)
			// Always in range: the clamp above pins the tap inside the
			// previous buffer, whose size was checked at bind time.
			texel, _ := f.previous.TexelAt(qx, qy)
			r, g, b, _, _ := texel.RGBA8Channels()
			sum = sum.Add(mgl64.Vec3{float64(r), float64(g), float64(b)}.Mul(k))
			weight += k
		}
	}
	return sum.Mul(1 / weight)
}

// Apply implements Function. Channels are truncated, not re-clamped: a
// weighted average of 8-bit taps cannot leave [0, 255].
func (f *gaussianFunc) Apply(x, y int) (Texel, error) {
	rgb := f.convolve(x, y)
	texel := TexRGBA8(uint8(rgb.X()), uint8(rgb.Y()), uint8(rgb.Z()), 255)
	return Convert(texel, f.format)
}
