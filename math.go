package postfx

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Gaussian2D evaluates the normalized isotropic 2D Gaussian kernel for a
// squared distance d2: exp(-d2 / 2σ²) / 2πσ².
func Gaussian2D(d2, sigma float64) float64 {
	return math.Exp(-d2/(2*sigma*sigma)) / (2 * math.Pi * sigma * sigma)
}

// clampInt pins v into [lo, hi].
func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// clampVec4 pins every component of v into [lo, hi].
func clampVec4(v mgl64.Vec4, lo, hi float64) mgl64.Vec4 {
	return mgl64.Vec4{
		mgl64.Clamp(v.X(), lo, hi),
		mgl64.Clamp(v.Y(), lo, hi),
		mgl64.Clamp(v.Z(), lo, hi),
		mgl64.Clamp(v.W(), lo, hi),
	}
}
