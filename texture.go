package postfx

import (
	"encoding/binary"
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Texture is a read-only 2D grid of texels. Implementations must be safe
// for concurrent reads; the engine never writes through this interface.
type Texture interface {
	// Width returns the texture width in texels.
	Width() int

	// Height returns the texture height in texels.
	Height() int

	// Format returns the storage format of the texture.
	Format() Format

	// TexelAt returns the texel at integer coordinates. ok is false
	// when the coordinates are out of range.
	TexelAt(x, y int) (Texel, bool)
}

// MemTexture is a texture backed by a raw byte buffer. It is the render
// target type: filters read a previous MemTexture and the Renderer
// writes the next one. Float channels are stored little-endian.
type MemTexture struct {
	width  int
	height int
	format Format
	data   []uint8
}

// NewMemTexture creates a zero-filled texture with the given dimensions
// and format.
func NewMemTexture(width, height int, format Format) *MemTexture {
	return &MemTexture{
		width:  width,
		height: height,
		format: format,
		data:   make([]uint8, width*height*format.TexelSize()),
	}
}

// Width returns the texture width in texels.
func (t *MemTexture) Width() int { return t.width }

// Height returns the texture height in texels.
func (t *MemTexture) Height() int { return t.height }

// Format returns the storage format of the texture.
func (t *MemTexture) Format() Format { return t.format }

// Data returns the raw backing bytes.
func (t *MemTexture) Data() []uint8 { return t.data }

func (t *MemTexture) offset(x, y int) (int, bool) {
	if x < 0 || x >= t.width || y < 0 || y >= t.height {
		return 0, false
	}
	size := t.format.TexelSize()
	return (y*t.width + x) * size, true
}

// TexelAt decodes the texel at integer coordinates.
func (t *MemTexture) TexelAt(x, y int) (Texel, bool) {
	off, ok := t.offset(x, y)
	if !ok {
		return Texel{}, false
	}
	switch t.format {
	case L8:
		return TexL8(t.data[off]), true
	case LA8:
		return TexLA8(t.data[off], t.data[off+1]), true
	case RGBA8:
		return TexRGBA8(t.data[off], t.data[off+1], t.data[off+2], t.data[off+3]), true
	case RGBAF32:
		return TexRGBAF32(
			readF32(t.data[off:]),
			readF32(t.data[off+4:]),
			readF32(t.data[off+8:]),
			readF32(t.data[off+12:]),
		), true
	case F32:
		return TexF32(readF32(t.data[off:])), true
	}
	return Texel{}, false
}

// Set encodes a texel into the buffer. The texel's format must match the
// texture's format; no implicit conversion happens on write.
func (t *MemTexture) Set(x, y int, texel Texel) error {
	off, ok := t.offset(x, y)
	if !ok {
		return fmt.Errorf("postfx: set (%d,%d) out of range for %dx%d texture", x, y, t.width, t.height)
	}
	if texel.Format() != t.format {
		return fmt.Errorf("postfx: cannot store %s texel in %s texture", texel.Format(), t.format)
	}
	switch t.format {
	case L8:
		t.data[off] = texel.b[0]
	case LA8:
		t.data[off] = texel.b[0]
		t.data[off+1] = texel.b[1]
	case RGBA8:
		copy(t.data[off:off+4], texel.b[:])
	case RGBAF32:
		writeF32(t.data[off:], texel.f[0])
		writeF32(t.data[off+4:], texel.f[1])
		writeF32(t.data[off+8:], texel.f[2])
		writeF32(t.data[off+12:], texel.f[3])
	case F32:
		writeF32(t.data[off:], texel.f[0])
	}
	return nil
}

// Clear fills the whole texture with one texel value.
func (t *MemTexture) Clear(texel Texel) error {
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			if err := t.Set(x, y, texel); err != nil {
				return err
			}
		}
	}
	return nil
}

// FromImage converts a decoded image into a texture. Grayscale images
// map to L8, NRGBA maps to RGBA8 directly, and every other color model
// is converted through NRGBA into RGBA8.
func FromImage(img image.Image) *MemTexture {
	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	switch src := img.(type) {
	case *image.Gray:
		t := NewMemTexture(width, height, L8)
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width]
			copy(t.data[y*width:], row)
		}
		return t
	case *image.NRGBA:
		t := NewMemTexture(width, height, RGBA8)
		for y := 0; y < height; y++ {
			row := src.Pix[y*src.Stride : y*src.Stride+width*4]
			copy(t.data[y*width*4:], row)
		}
		return t
	}
	t := NewMemTexture(width, height, RGBA8)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			c := color.NRGBAModel.Convert(img.At(bounds.Min.X+x, bounds.Min.Y+y)).(color.NRGBA)
			_ = t.Set(x, y, TexRGBA8(c.R, c.G, c.B, c.A))
		}
	}
	return t
}

// ToImage performs a potentially lossy conversion to an 8-bit NRGBA
// image. Integer formats widen through their RGBA channels; float
// formats are normalized, clamped to [0, 1] and scaled by 255.
func (t *MemTexture) ToImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, t.width, t.height))
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			texel, _ := t.TexelAt(x, y)
			img.SetNRGBA(x, y, texelNRGBA(texel))
		}
	}
	return img
}

func texelNRGBA(texel Texel) color.NRGBA {
	if r, g, b, a, ok := texel.RGBA8Channels(); ok {
		return color.NRGBA{R: r, G: g, B: b, A: a}
	}
	v := texel.Normalize()
	return color.NRGBA{
		R: uint8(mgl64.Clamp(v.X(), 0, 1) * 255),
		G: uint8(mgl64.Clamp(v.Y(), 0, 1) * 255),
		B: uint8(mgl64.Clamp(v.Z(), 0, 1) * 255),
		A: uint8(mgl64.Clamp(v.W(), 0, 1) * 255),
	}
}

// At implements the image.Image interface.
func (t *MemTexture) At(x, y int) color.Color {
	texel, ok := t.TexelAt(x, y)
	if !ok {
		return color.NRGBA{}
	}
	return texelNRGBA(texel)
}

// Bounds implements the image.Image interface.
func (t *MemTexture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.width, t.height)
}

// ColorModel implements the image.Image interface.
func (t *MemTexture) ColorModel() color.Model {
	return color.NRGBAModel
}

func readF32(b []uint8) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}

func writeF32(b []uint8, v float32) {
	binary.LittleEndian.PutUint32(b, math.Float32bits(v))
}
