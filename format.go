package postfx

import "fmt"

// Format describes the storage layout of a texture: how many channels a
// texel carries and whether the channels are 8-bit integers or 32-bit
// floats. RGB without alpha is deliberately absent; several rendering
// APIs cannot load 24bpp textures natively.
type Format int

const (
	// L8 is 8-bit greyscale (8bpp).
	L8 Format = iota

	// LA8 is 8-bit greyscale with alpha (16bpp).
	LA8

	// RGBA8 is 8-bit RGBA (32bpp).
	RGBA8

	// RGBAF32 is 32-bit float RGBA (128bpp).
	RGBAF32

	// F32 is a single 32-bit float channel (32bpp).
	F32
)

// TexelSize returns the storage size of one texel in bytes.
func (f Format) TexelSize() int {
	switch f {
	case L8:
		return 1
	case LA8:
		return 2
	case RGBA8:
		return 4
	case RGBAF32:
		return 16
	case F32:
		return 4
	}
	return 0
}

// Channels returns the channel arity of the format.
func (f Format) Channels() int {
	switch f {
	case L8, F32:
		return 1
	case LA8:
		return 2
	case RGBA8, RGBAF32:
		return 4
	}
	return 0
}

// IsFloat reports whether the format stores 32-bit float channels.
// Float channels are not range-clamped on read; integer channels are
// always in [0, 255].
func (f Format) IsFloat() bool {
	return f == RGBAF32 || f == F32
}

// String returns the canonical lowercase name of the format.
func (f Format) String() string {
	switch f {
	case L8:
		return "l8"
	case LA8:
		return "la8"
	case RGBA8:
		return "rgba8"
	case RGBAF32:
		return "rgba32"
	case F32:
		return "f32"
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// ParseFormat parses a canonical format name as printed by String.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "l8":
		return L8, nil
	case "la8":
		return LA8, nil
	case "rgba8":
		return RGBA8, nil
	case "rgba32":
		return RGBAF32, nil
	case "f32":
		return F32, nil
	}
	return 0, fmt.Errorf("postfx: unknown format %q", s)
}
