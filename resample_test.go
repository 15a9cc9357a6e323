package postfx

import (
	"errors"
	"testing"
)

func TestNewResample_RequiresBase(t *testing.T) {
	if _, err := NewResample(ResampleOptions{}); !errors.Is(err, ErrMissingBase) {
		t.Errorf("error = %v, want ErrMissingBase", err)
	}
	if _, err := NewResample(ResampleOptions{
		Base:   NewMemTexture(2, 2, RGBA8),
		Policy: "bicubic",
	}); err == nil {
		t.Error("unknown policy accepted")
	}
}

func TestResample_Hints(t *testing.T) {
	base := NewMemTexture(7, 5, LA8)
	r, _ := NewResample(ResampleOptions{Base: base})
	w, h, ok := r.TextureSize()
	if !ok || w != 7 || h != 5 {
		t.Errorf("TextureSize = (%d,%d,%v), want base size", w, h, ok)
	}
	f, ok := r.TextureFormat()
	if !ok || f != LA8 {
		t.Errorf("TextureFormat = (%v,%v), want base format", f, ok)
	}
}

func TestResample_FormatCompatibility(t *testing.T) {
	tests := []struct {
		base, target Format
		ok           bool
	}{
		{L8, RGBA8, true},
		{RGBA8, L8, true},
		{LA8, LA8, true},
		{RGBAF32, RGBAF32, true},
		{RGBAF32, RGBA8, false},
		{RGBA8, RGBAF32, false},
		{F32, RGBAF32, false},
	}
	for _, tt := range tests {
		r, _ := NewResample(ResampleOptions{Base: NewMemTexture(2, 2, tt.base)})
		_, err := r.Bind(FrameBuffer{Width: 2, Height: 2, Format: tt.target})
		if tt.ok && err != nil {
			t.Errorf("Bind(%s -> %s): %v", tt.base, tt.target, err)
		}
		if !tt.ok && !errors.Is(err, ErrUnsupportedFormat) {
			t.Errorf("Bind(%s -> %s) error = %v, want ErrUnsupportedFormat", tt.base, tt.target, err)
		}
	}
}

func TestResample_EqualSizePassthrough(t *testing.T) {
	base := checkerboard(6, 6, TexRGBA8(0, 0, 0, 255), TexRGBA8(255, 255, 255, 255))
	r, _ := NewResample(ResampleOptions{Base: base})
	fn := mustBind(t, r, FrameBuffer{Width: 6, Height: 6, Format: RGBA8})

	for y := 0; y < 6; y++ {
		for x := 0; x < 6; x++ {
			got, err := fn.Apply(x, y)
			if err != nil {
				t.Fatal(err)
			}
			want, _ := base.TexelAt(x, y)
			if got != want {
				t.Fatalf("pixel (%d,%d) = %+v, want checkerboard passthrough", x, y, got)
			}
		}
	}
}

func TestResample_NearestStretch(t *testing.T) {
	base := NewMemTexture(2, 2, RGBA8)
	quads := [2][2]Texel{
		{TexRGBA8(255, 0, 0, 255), TexRGBA8(0, 255, 0, 255)},
		{TexRGBA8(0, 0, 255, 255), TexRGBA8(255, 255, 0, 255)},
	}
	for y := 0; y < 2; y++ {
		for x := 0; x < 2; x++ {
			_ = base.Set(x, y, quads[y][x])
		}
	}
	r, _ := NewResample(ResampleOptions{Base: base, Policy: PolicyNearest})
	fn := mustBind(t, r, FrameBuffer{Width: 4, Height: 4, Format: RGBA8})

	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			got, err := fn.Apply(x, y)
			if err != nil {
				t.Fatal(err)
			}
			if got != quads[y/2][x/2] {
				t.Errorf("dst (%d,%d) = %+v, want one source texel per quadrant", x, y, got)
			}
		}
	}
}

func TestResample_ConvertsToTargetFormat(t *testing.T) {
	base := constantTexture(2, 2, TexRGBA8(100, 0, 0, 200))
	r, _ := NewResample(ResampleOptions{Base: base})
	fn := mustBind(t, r, FrameBuffer{Width: 2, Height: 2, Format: LA8})
	got, err := fn.Apply(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got != TexLA8(100, 200) {
		t.Errorf("output = %+v, want LA8(100, 200)", got)
	}
}

func TestResample_InterpolatedPolicies(t *testing.T) {
	base := NewMemTexture(2, 1, RGBA8)
	_ = base.Set(0, 0, TexRGBA8(0, 0, 0, 255))
	_ = base.Set(1, 0, TexRGBA8(255, 255, 255, 255))

	for _, policy := range []ResamplePolicy{PolicyBilinear, PolicyCatmullRom} {
		t.Run(string(policy), func(t *testing.T) {
			r, _ := NewResample(ResampleOptions{Base: base, Policy: policy})
			fn := mustBind(t, r, FrameBuffer{Width: 8, Height: 1, Format: RGBA8})

			// The upscaled gradient must rise left to right (a small
			// tolerance absorbs kernel ringing) and actually blend
			// (some value strictly between the extremes).
			var prev uint8
			blended := false
			for x := 0; x < 8; x++ {
				got, err := fn.Apply(x, 0)
				if err != nil {
					t.Fatal(err)
				}
				v, _, _, _, _ := got.RGBA8Channels()
				if x > 0 && int(v)+8 < int(prev) {
					t.Errorf("gradient not rising at x=%d: %d after %d", x, v, prev)
				}
				if v > 0 && v < 255 {
					blended = true
				}
				prev = v
			}
			if !blended {
				t.Error("no blended values; interpolated policy behaved like nearest")
			}
		})
	}
}

func TestResample_InterpolatedRejectsFloatBase(t *testing.T) {
	base := NewMemTexture(2, 2, RGBAF32)
	r, _ := NewResample(ResampleOptions{Base: base, Policy: PolicyBilinear})
	_, err := r.Bind(FrameBuffer{Width: 4, Height: 4, Format: RGBAF32})
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("error = %v, want ErrUnsupportedFormat", err)
	}
}
