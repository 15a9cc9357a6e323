package postfx

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/aquilax/go-perlin"
	"github.com/go-gl/mathgl/mgl64"
)

// NoiseMode selects the noise generator.
type NoiseMode string

const (
	// NoiseRandom draws independent uniform channel values per texel.
	NoiseRandom NoiseMode = "random"

	// NoisePerlin samples 2D Perlin noise by normalized coordinate.
	NoisePerlin NoiseMode = "perlin"
)

// Perlin lattice parameters. Two octaves of persistence 2 match the
// original generator's look.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 3
)

// NoiseOptions configures a Noise generator. The zero value selects
// uniform random noise.
type NoiseOptions struct {
	// Mode is the noise generator, NoiseRandom by default.
	Mode NoiseMode

	// Seed seeds the Perlin lattice. Ignored in random mode, which is
	// deliberately unseeded.
	Seed int64
}

// Noise generates a texture from scratch; it is a valid first pass of a
// chain since it reads no previous buffer.
type Noise struct {
	mode NoiseMode
	seed int64
	desc string
}

// NewNoise creates a noise generator.
func NewNoise(opts NoiseOptions) (*Noise, error) {
	mode := opts.Mode
	if mode == "" {
		mode = NoiseRandom
	}
	if mode != NoiseRandom && mode != NoisePerlin {
		return nil, fmt.Errorf("postfx: unknown noise mode %q", mode)
	}
	return &Noise{
		mode: mode,
		seed: opts.Seed,
		desc: fmt.Sprintf("Noise(%s)", mode),
	}, nil
}

// TextureSize implements Filter; noise imposes no size.
func (n *Noise) TextureSize() (int, int, bool) { return 0, 0, false }

// TextureFormat implements Filter; noise can target any format.
func (n *Noise) TextureFormat() (Format, bool) { return 0, false }

// Describe implements Filter.
func (n *Noise) Describe() string { return n.desc }

// Bind implements Filter. Noise accepts every frame buffer.
func (n *Noise) Bind(fb FrameBuffer) (Function, error) {
	f := &noiseFunc{
		mode:   n.mode,
		format: fb.Format,
		size:   mgl64.Vec2{float64(fb.Width), float64(fb.Height)},
	}
	if n.mode == NoisePerlin {
		f.perlin = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, n.seed)
	}
	return f, nil
}

type noiseFunc struct {
	mode   NoiseMode
	format Format
	size   mgl64.Vec2
	perlin *perlin.Perlin
}

// Apply implements Function. Random mode uses the package-level
// math/rand/v2 generator, which is safe for concurrent use; Perlin mode
// only reads the precomputed lattice.
func (f *noiseFunc) Apply(x, y int) (Texel, error) {
	if f.mode == NoiseRandom {
		return f.random(), nil
	}
	u := float64(x) / f.size.X()
	v := float64(y) / f.size.Y()
	z := math.Abs(f.perlin.Noise2D(u*2, v*2))
	switch f.format {
	case L8:
		return TexL8(uint8(z * 255)), nil
	case LA8:
		return TexLA8(uint8(z*255), 255), nil
	case RGBAF32:
		g := float32(z)
		return TexRGBAF32(g, g, g, 1), nil
	case F32:
		return TexF32(float32(z)), nil
	default:
		g := uint8(z * 255)
		return TexRGBA8(g, g, g, 255), nil
	}
}

func (f *noiseFunc) random() Texel {
	switch f.format {
	case L8:
		return TexL8(uint8(rand.IntN(256)))
	case LA8:
		return TexLA8(uint8(rand.IntN(256)), uint8(rand.IntN(256)))
	case RGBAF32:
		return TexRGBAF32(rand.Float32(), rand.Float32(), rand.Float32(), rand.Float32())
	case F32:
		return TexF32(rand.Float32())
	default:
		return TexRGBA8(
			uint8(rand.IntN(256)),
			uint8(rand.IntN(256)),
			uint8(rand.IntN(256)),
			uint8(rand.IntN(256)),
		)
	}
}
