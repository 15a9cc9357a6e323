package postfx

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

var allFormats = []Format{L8, LA8, RGBA8, RGBAF32, F32}

func sampleTexel(f Format) Texel {
	switch f {
	case L8:
		return TexL8(200)
	case LA8:
		return TexLA8(200, 100)
	case RGBA8:
		return TexRGBA8(200, 100, 50, 25)
	case RGBAF32:
		return TexRGBAF32(0.5, 0.25, 0.125, 1)
	default:
		return TexF32(0.75)
	}
}

func TestConvert_Identity(t *testing.T) {
	for _, f := range allFormats {
		in := sampleTexel(f)
		out, err := Convert(in, f)
		if err != nil {
			t.Fatalf("Convert(%s, %s): %v", f, f, err)
		}
		if out != in {
			t.Errorf("Convert(%s, %s) = %+v, want input unchanged", f, f, out)
		}
	}
}

func TestConvert_IntegerToFloatNeverFails(t *testing.T) {
	for _, src := range []Format{L8, LA8, RGBA8} {
		for _, dst := range []Format{RGBAF32, F32} {
			out, err := Convert(sampleTexel(src), dst)
			if err != nil {
				t.Fatalf("Convert(%s, %s): %v", src, dst, err)
			}
			if out.Format() != dst {
				t.Errorf("Convert(%s, %s) format = %s", src, dst, out.Format())
			}
			v := out.Normalize()
			for i := 0; i < 4; i++ {
				if v[i] < 0 || v[i] > 1 {
					t.Errorf("Convert(%s, %s) channel %d = %v, outside [0,1]", src, dst, i, v[i])
				}
			}
		}
	}
}

func TestConvert_NarrowingAlwaysFails(t *testing.T) {
	for _, src := range []Format{RGBAF32, F32} {
		for _, dst := range []Format{L8, LA8, RGBA8} {
			_, err := Convert(sampleTexel(src), dst)
			if err == nil {
				t.Fatalf("Convert(%s, %s) succeeded, want narrowing error", src, dst)
			}
			var convErr *ConversionError
			if !errors.As(err, &convErr) {
				t.Fatalf("Convert(%s, %s) error type %T, want *ConversionError", src, dst, err)
			}
			if convErr.Source != src || convErr.Target != dst {
				t.Errorf("error payload = (%s, %s), want (%s, %s)",
					convErr.Source, convErr.Target, src, dst)
			}
			if !strings.Contains(err.Error(), dst.String()) {
				t.Errorf("error %q does not name target format %s", err.Error(), dst)
			}
		}
	}
}

func TestConvert_IntegerWidening(t *testing.T) {
	out, err := Convert(TexL8(51), RGBAF32)
	if err != nil {
		t.Fatal(err)
	}
	r, g, b, a, _ := out.FloatChannels()
	grey := float32(float64(51) / 255)
	if r != grey || g != grey || b != grey {
		t.Errorf("grey = (%v,%v,%v), want %v replicated", r, g, b, grey)
	}
	if a != 1 {
		t.Errorf("synthesized alpha = %v, want 1", a)
	}
}

func TestConvert_ChannelZeroExtraction(t *testing.T) {
	out, err := Convert(TexRGBA8(102, 0, 255, 255), F32)
	if err != nil {
		t.Fatal(err)
	}
	r, _, _, _, _ := out.FloatChannels()
	want := float32(float64(102) / 255)
	if r != want {
		t.Errorf("F32 target = %v, want channel 0 (%v)", r, want)
	}
}

func TestConvert_LA8FromL8SynthesizesAlpha(t *testing.T) {
	out, err := Convert(TexL8(10), LA8)
	if err != nil {
		t.Fatal(err)
	}
	if out != TexLA8(10, 255) {
		t.Errorf("Convert(L8, LA8) = %+v, want (10, 255)", out)
	}
}

func TestEncodeNormalized(t *testing.T) {
	rgba := mgl64.Vec4{1, 0.5, 0, 0.5}
	tests := []struct {
		target Format
		want   Texel
	}{
		{L8, TexL8(255)},
		{LA8, TexLA8(255, 127)},
		{RGBA8, TexRGBA8(255, 127, 0, 127)},
		{RGBAF32, TexRGBAF32(1, 0.5, 0, 0.5)},
		{F32, TexF32(1)},
	}
	for _, tt := range tests {
		t.Run(tt.target.String(), func(t *testing.T) {
			if got := EncodeNormalized(rgba, tt.target); got != tt.want {
				t.Errorf("EncodeNormalized = %+v, want %+v", got, tt.want)
			}
		})
	}
}
