package postfx

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// ConversionError reports a format conversion with no defined mapping.
// The only undefined mappings are float-to-integer narrowings: integer
// channels always widen to float, but there is no implicit narrowing
// from float back to 8-bit storage.
type ConversionError struct {
	Source Format
	Target Format
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("postfx: undefined narrowing conversion to %s (source %s)", e.Target, e.Source)
}

// Convert coerces a texel into the target format.
//
// Identity conversions return the input unchanged. Integer targets (L8,
// LA8, RGBA8) accept only integer sources and fail with a
// *ConversionError for float sources. Float targets (RGBAF32, F32)
// accept every source: integer channels are normalized into [0, 1],
// missing channels are synthesized (grey replicated into color, alpha 1).
func Convert(t Texel, target Format) (Texel, error) {
	if t.format == target {
		return t, nil
	}
	switch target {
	case L8:
		l, _, _, _, ok := t.RGBA8Channels()
		if !ok {
			return Texel{}, &ConversionError{Source: t.format, Target: target}
		}
		return TexL8(l), nil
	case LA8:
		l, _, _, a, ok := t.RGBA8Channels()
		if !ok {
			return Texel{}, &ConversionError{Source: t.format, Target: target}
		}
		return TexLA8(l, a), nil
	case RGBA8:
		r, g, b, a, ok := t.RGBA8Channels()
		if !ok {
			return Texel{}, &ConversionError{Source: t.format, Target: target}
		}
		return TexRGBA8(r, g, b, a), nil
	case RGBAF32:
		v := t.Normalize()
		return TexRGBAF32(float32(v.X()), float32(v.Y()), float32(v.Z()), float32(v.W())), nil
	case F32:
		return TexF32(float32(t.Normalize().X())), nil
	}
	return Texel{}, fmt.Errorf("postfx: conversion to unknown format %d", int(target))
}

// EncodeNormalized packs a normalized [0,1] RGBA vector into a texel of
// the target format. Integer formats scale by 255 and truncate; float
// formats keep the values as-is. L8 and F32 take the red channel, LA8
// takes red and alpha.
func EncodeNormalized(rgba mgl64.Vec4, target Format) Texel {
	switch target {
	case L8:
		return TexL8(uint8(rgba[0] * 255))
	case LA8:
		return TexLA8(uint8(rgba[0]*255), uint8(rgba[3]*255))
	case RGBAF32:
		return TexRGBAF32(float32(rgba[0]), float32(rgba[1]), float32(rgba[2]), float32(rgba[3]))
	case F32:
		return TexF32(float32(rgba[0]))
	default: // RGBA8
		return TexRGBA8(
			uint8(rgba[0]*255),
			uint8(rgba[1]*255),
			uint8(rgba[2]*255),
			uint8(rgba[3]*255),
		)
	}
}
