package postfx

import (
	"errors"
	"fmt"
)

// Bind failure sentinels. A bind either succeeds for the whole pass or
// fails fast; there is no partial binding.
var (
	// ErrMissingPrevious means the filter reads a previous buffer and
	// none was provided (it cannot be the first pass of a chain).
	ErrMissingPrevious = errors.New("postfx: filter requires a previous buffer")

	// ErrUnsupportedFormat means the render target format is outside
	// what the filter can produce.
	ErrUnsupportedFormat = errors.New("postfx: unsupported render target format")

	// ErrUnsupportedPreviousFormat means the previous buffer is stored
	// in a format the filter cannot read.
	ErrUnsupportedPreviousFormat = errors.New("postfx: unsupported previous buffer format")
)

// SizeMismatchError reports a resolution mismatch between the previous
// buffer and the render target for a filter defined only as a
// same-resolution post-process.
type SizeMismatchError struct {
	PrevWidth, PrevHeight int
	Width, Height         int
}

func (e *SizeMismatchError) Error() string {
	return fmt.Sprintf("postfx: previous buffer is %dx%d, render target is %dx%d",
		e.PrevWidth, e.PrevHeight, e.Width, e.Height)
}

// FrameBuffer describes the render target a filter binds to, plus the
// previous pass's output when there is one. All fields are read-only
// for the duration of the pass.
type FrameBuffer struct {
	// Previous is the output of the previous pass, or nil on the
	// first pass of a chain.
	Previous Texture

	// Width and Height are the render target dimensions.
	Width  int
	Height int

	// Format is the render target storage format.
	Format Format
}

// Function computes one output texel. Implementations must be pure
// functions of the coordinate and the textures captured at bind time:
// no cross-invocation state, so a Function is safe to call from many
// goroutines at once. The returned texel's format matches the bound
// frame buffer's format. A Function either fully succeeds for its pixel
// or fails that pixel with a descriptive error; it never produces
// partial output.
type Function interface {
	Apply(x, y int) (Texel, error)
}

// Filter is a configured per-pixel computation. A filter is bound to a
// frame buffer once per pass; binding validates resolutions and formats
// up front so Apply can run without per-pixel checks.
type Filter interface {
	// TextureSize returns the filter's ideal render target size, if it
	// has one (generators with a base texture do).
	TextureSize() (width, height int, ok bool)

	// TextureFormat returns the filter's ideal render target format,
	// if it has one.
	TextureFormat() (Format, bool)

	// Describe returns a short human-readable description of the
	// configured filter, for logging.
	Describe() string

	// Bind validates the frame buffer and returns the pixel function
	// for this pass.
	Bind(fb FrameBuffer) (Function, error)
}
