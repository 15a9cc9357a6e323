package postfx

import "github.com/go-gl/mathgl/mgl64"

// Texel is one decoded pixel: a tuple of channel values tagged with the
// format of the texture it was read from. Texels are transient values,
// created on read and consumed by conversion or filter math; they are
// comparable with ==.
type Texel struct {
	format Format
	b      [4]uint8
	f      [4]float32
}

// TexL8 creates a single-channel 8-bit texel.
func TexL8(l uint8) Texel {
	return Texel{format: L8, b: [4]uint8{l, 0, 0, 0}}
}

// TexLA8 creates a greyscale-with-alpha 8-bit texel.
func TexLA8(l, a uint8) Texel {
	return Texel{format: LA8, b: [4]uint8{l, a, 0, 0}}
}

// TexRGBA8 creates a 4-channel 8-bit texel.
func TexRGBA8(r, g, b, a uint8) Texel {
	return Texel{format: RGBA8, b: [4]uint8{r, g, b, a}}
}

// TexRGBAF32 creates a 4-channel float texel. Channel values are not
// clamped; hosts commonly keep them in [0, 1].
func TexRGBAF32(r, g, b, a float32) Texel {
	return Texel{format: RGBAF32, f: [4]float32{r, g, b, a}}
}

// TexF32 creates a single-channel float texel.
func TexF32(v float32) Texel {
	return Texel{format: F32, f: [4]float32{v, 0, 0, 0}}
}

// Format returns the format tag inherited from the source texture.
func (t Texel) Format() Format {
	return t.format
}

// RGBA8Channels widens an integer texel to four 8-bit channels:
// L8 becomes (l, l, l, 255) and LA8 becomes (l, l, l, a). ok is false
// for float texels, which have no defined 8-bit widening.
func (t Texel) RGBA8Channels() (r, g, b, a uint8, ok bool) {
	switch t.format {
	case L8:
		l := t.b[0]
		return l, l, l, 255, true
	case LA8:
		l := t.b[0]
		return l, l, l, t.b[1], true
	case RGBA8:
		return t.b[0], t.b[1], t.b[2], t.b[3], true
	}
	return 0, 0, 0, 0, false
}

// Normalize converts the texel to a float vector. Integer channels are
// divided by 255; F32 replicates its value into all four lanes; RGBAF32
// passes through unclamped.
func (t Texel) Normalize() mgl64.Vec4 {
	if r, g, b, a, ok := t.RGBA8Channels(); ok {
		return mgl64.Vec4{
			float64(r) / 255,
			float64(g) / 255,
			float64(b) / 255,
			float64(a) / 255,
		}
	}
	if t.format == F32 {
		v := float64(t.f[0])
		return mgl64.Vec4{v, v, v, v}
	}
	return mgl64.Vec4{
		float64(t.f[0]),
		float64(t.f[1]),
		float64(t.f[2]),
		float64(t.f[3]),
	}
}

// FloatChannels returns the raw float channels of a float texel.
// ok is false for integer texels; use Normalize to widen those.
func (t Texel) FloatChannels() (r, g, b, a float32, ok bool) {
	if !t.format.IsFloat() {
		return 0, 0, 0, 0, false
	}
	return t.f[0], t.f[1], t.f[2], t.f[3], true
}
