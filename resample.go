package postfx

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	xdraw "golang.org/x/image/draw"
)

// ErrMissingBase means a Resample filter was created without a base
// texture to read from.
var ErrMissingBase = errors.New("postfx: resample requires a base texture")

// ResamplePolicy selects how a base texture is resampled when its
// resolution differs from the render target's.
type ResamplePolicy string

const (
	// PolicyNearest fetches the nearest texel per output coordinate.
	PolicyNearest ResamplePolicy = "nearest"

	// PolicyBilinear pre-scales the base texture once at bind time
	// with a bilinear kernel.
	PolicyBilinear ResamplePolicy = "bilinear"

	// PolicyCatmullRom pre-scales the base texture once at bind time
	// with a Catmull-Rom kernel.
	PolicyCatmullRom ResamplePolicy = "catmull-rom"
)

// ResampleOptions configures a Resample filter.
type ResampleOptions struct {
	// Base is the texture to draw from. Required.
	Base Texture

	// Policy is the resampling policy, PolicyNearest by default.
	// Interpolated policies require an integer-format base.
	Policy ResamplePolicy
}

// Resample draws a base texture into the render target, converting
// texels to the target format. Equal resolutions pass texels through
// pixel-exact; mismatched resolutions resample by normalized coordinate.
type Resample struct {
	base   Texture
	policy ResamplePolicy
	desc   string
}

// NewResample creates a resample filter for a base texture.
func NewResample(opts ResampleOptions) (*Resample, error) {
	if opts.Base == nil {
		return nil, ErrMissingBase
	}
	policy := opts.Policy
	if policy == "" {
		policy = PolicyNearest
	}
	switch policy {
	case PolicyNearest, PolicyBilinear, PolicyCatmullRom:
	default:
		return nil, fmt.Errorf("postfx: unknown resample policy %q", policy)
	}
	return &Resample{
		base:   opts.Base,
		policy: policy,
		desc:   fmt.Sprintf("Resample(%s)", policy),
	}, nil
}

// TextureSize implements Filter: the ideal render target size is the
// base texture's own resolution.
func (r *Resample) TextureSize() (int, int, bool) {
	return r.base.Width(), r.base.Height(), true
}

// TextureFormat implements Filter: the ideal render target format is
// the base texture's own format.
func (r *Resample) TextureFormat() (Format, bool) {
	return r.base.Format(), true
}

// Describe implements Filter.
func (r *Resample) Describe() string { return r.desc }

// formatCompatible reports whether texels of format in can be converted
// to format out by Convert: any integer format converts to any integer
// format, float formats only to themselves.
func formatCompatible(in, out Format) bool {
	if in == out {
		return true
	}
	if out.IsFloat() {
		return false
	}
	return !in.IsFloat()
}

// Bind implements Filter.
func (r *Resample) Bind(fb FrameBuffer) (Function, error) {
	if !formatCompatible(r.base.Format(), fb.Format) {
		return nil, fmt.Errorf("%w: no conversion from %s to %s",
			ErrUnsupportedFormat, r.base.Format(), fb.Format)
	}
	base := r.base
	equalSize := base.Width() == fb.Width && base.Height() == fb.Height
	if !equalSize && r.policy != PolicyNearest {
		if base.Format().IsFloat() {
			return nil, fmt.Errorf("%w: %s policy requires an integer base, got %s",
				ErrUnsupportedFormat, r.policy, base.Format())
		}
		base = prescale(base, fb.Width, fb.Height, r.policy)
	}
	return &resampleFunc{
		base:   base,
		width:  fb.Width,
		height: fb.Height,
		format: fb.Format,
	}, nil
}

// prescale rescales an integer-format texture to the target resolution
// using an x/image/draw kernel. The result is RGBA8; Convert narrows it
// back to the render target format per texel.
func prescale(base Texture, width, height int, policy ResamplePolicy) *MemTexture {
	scaler := xdraw.BiLinear
	if policy == PolicyCatmullRom {
		scaler = xdraw.CatmullRom
	}
	src, ok := base.(image.Image)
	if !ok {
		src = &textureImage{base}
	}
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	scaler.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return FromImage(dst)
}

type resampleFunc struct {
	base   Texture
	width  int
	height int
	format Format
}

// Apply implements Function. SourceTexel picks the pixel-exact path when
// the base (possibly prescaled) matches the render target resolution.
func (f *resampleFunc) Apply(x, y int) (Texel, error) {
	texel, err := SourceTexel(f.base, f.width, f.height, x, y)
	if err != nil {
		return Texel{}, err
	}
	return Convert(texel, f.format)
}

// textureImage adapts an arbitrary Texture to image.Image for the
// x/image scalers. MemTexture implements image.Image itself and skips
// this adapter.
type textureImage struct {
	t Texture
}

func (a *textureImage) At(x, y int) color.Color {
	texel, ok := a.t.TexelAt(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return texelNRGBA(texel)
}

func (a *textureImage) Bounds() image.Rectangle {
	return image.Rect(0, 0, a.t.Width(), a.t.Height())
}

func (a *textureImage) ColorModel() color.Model {
	return color.NRGBAModel
}
