package postfx

import (
	"errors"
	"testing"
)

func TestNewBrightness_RejectsNegativeFactor(t *testing.T) {
	if _, err := NewBrightness(-0.1); err == nil {
		t.Error("negative factor accepted")
	}
}

func TestBrightness_Identity(t *testing.T) {
	prev := constantTexture(2, 2, TexRGBA8(200, 100, 50, 128))
	b, _ := NewBrightness(DefaultBrightness)
	fn := mustBind(t, b, FrameBuffer{Previous: prev, Width: 2, Height: 2, Format: RGBA8})
	got, err := fn.Apply(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	r, g, bl, a, _ := got.RGBA8Channels()
	if !within(r, 200, 1) || !within(g, 100, 1) || !within(bl, 50, 1) {
		t.Errorf("identity factor changed color: (%d,%d,%d)", r, g, bl)
	}
	if a != 128 {
		t.Errorf("alpha = %d, want 128 preserved", a)
	}
}

func TestBrightness_ScalesAndClamps(t *testing.T) {
	prev := constantTexture(1, 1, TexRGBA8(200, 100, 10, 255))
	b, _ := NewBrightness(2)
	fn := mustBind(t, b, FrameBuffer{Previous: prev, Width: 1, Height: 1, Format: RGBA8})
	got, err := fn.Apply(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	r, g, bl, a, _ := got.RGBA8Channels()
	if r != 255 {
		t.Errorf("red = %d, want clamped to 255", r)
	}
	if !within(g, 200, 1) || !within(bl, 20, 1) {
		t.Errorf("color = (%d,%d,%d), want doubled", r, g, bl)
	}
	// Doubling must not touch alpha even though it would clamp.
	if a != 255 {
		t.Errorf("alpha = %d, want 255 preserved", a)
	}
}

func TestBrightness_ZeroFactorDarkensToBlack(t *testing.T) {
	prev := constantTexture(1, 1, TexRGBA8(200, 100, 50, 77))
	b, _ := NewBrightness(0)
	fn := mustBind(t, b, FrameBuffer{Previous: prev, Width: 1, Height: 1, Format: RGBA8})
	got, _ := fn.Apply(0, 0)
	if got != TexRGBA8(0, 0, 0, 77) {
		t.Errorf("output = %+v, want black with source alpha", got)
	}
}

func TestBrightness_FloatTarget(t *testing.T) {
	prev := constantTexture(1, 1, TexRGBA8(255, 0, 0, 255))
	b, _ := NewBrightness(0.5)
	fn := mustBind(t, b, FrameBuffer{Previous: prev, Width: 1, Height: 1, Format: RGBAF32})
	got, err := fn.Apply(0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Format() != RGBAF32 {
		t.Fatalf("format = %s", got.Format())
	}
	r, g, _, a, _ := got.FloatChannels()
	if r != 0.5 || g != 0 || a != 1 {
		t.Errorf("channels = (%v,%v,_,%v), want (0.5,0,_,1)", r, g, a)
	}
}

func TestBrightness_BindValidation(t *testing.T) {
	b, _ := NewBrightness(1)
	if _, err := b.Bind(FrameBuffer{Width: 2, Height: 2, Format: RGBA8}); !errors.Is(err, ErrMissingPrevious) {
		t.Errorf("error = %v, want ErrMissingPrevious", err)
	}
	var sizeErr *SizeMismatchError
	_, err := b.Bind(FrameBuffer{
		Previous: NewMemTexture(3, 3, RGBA8),
		Width:    2, Height: 2, Format: RGBA8,
	})
	if !errors.As(err, &sizeErr) {
		t.Errorf("error = %v, want *SizeMismatchError", err)
	}
}
