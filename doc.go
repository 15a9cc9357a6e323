// Package postfx is a per-pixel image post-processing engine.
//
// # Overview
//
// postfx evaluates a pixel function once per output coordinate. The
// function reads one or more source textures (a previous render target
// and/or named base textures) and produces a texel matching the output
// format. Filters are bound to a frame buffer description once per pass;
// the resulting functions are pure and safe to evaluate in parallel.
//
// # Quick Start
//
//	import "github.com/gopostfx/postfx"
//
//	src := postfx.FromImage(img)
//	blur, _ := postfx.NewGaussian(postfx.GaussianOptions{Sigma: 2})
//	fn, err := blur.Bind(postfx.FrameBuffer{
//	    Previous: src,
//	    Width:    src.Width(),
//	    Height:   src.Height(),
//	    Format:   postfx.RGBA8,
//	})
//	if err != nil {
//	    // resolution or format rejected by the filter
//	}
//	dst := postfx.NewMemTexture(src.Width(), src.Height(), postfx.RGBA8)
//	_ = postfx.NewRenderer().Render(fn, dst)
//
// # Architecture
//
// The library is organized into:
//   - Formats and texels: Format, Texel, Convert
//   - Sampling: Texture, Fetch, Sample, SourceTexel
//   - Filters: Gaussian, Brightness, Greyscale, Noise, Resample
//   - Execution: Renderer runs one Function over one MemTexture
//
// Multi-pass orchestration, parameter resolution and file I/O belong to
// the host. The cmd/postfx command is one such host.
//
// # Coordinate System
//
// Origin (0,0) is the top-left texel, X increases right, Y increases
// down. Normalized coordinates are in [0,1]x[0,1] and are scaled by the
// texture's own resolution before lookup.
package postfx
