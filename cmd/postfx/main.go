// Command postfx applies a chain of per-pixel filters to an image.
//
// Each -filter flag adds one pass, evaluated in order. A pass reads the
// previous pass's output (the input image is available to resample as a
// base texture) and writes a new buffer; the final buffer is saved as a
// PNG. Filter syntax is name[:key=value,...], for example:
//
//	postfx -input photo.png -output blurred.png \
//	    -filter resample -filter gaussian:sigma=2,ksize=4
package main

import (
	"flag"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"log"
	"log/slog"
	"os"
	"strconv"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"

	"github.com/gopostfx/postfx"
)

// filterSpecs collects repeated -filter flags in order.
type filterSpecs []string

func (f *filterSpecs) String() string { return strings.Join(*f, ",") }

func (f *filterSpecs) Set(v string) error {
	*f = append(*f, v)
	return nil
}

func main() {
	var (
		input    = flag.String("input", "", "input image file (png, jpeg, gif, bmp, tiff)")
		output   = flag.String("output", "out.png", "output PNG file")
		format   = flag.String("format", "", "render target format (l8, la8, rgba8, rgba32, f32)")
		width    = flag.Int("width", 0, "override render target width")
		height   = flag.Int("height", 0, "override render target height")
		workers  = flag.Int("workers", 0, "number of render workers (0 = auto)")
		progress = flag.Bool("progress", false, "print render progress")
		verbose  = flag.Bool("v", false, "enable debug logging")
		specs    filterSpecs
	)
	flag.Var(&specs, "filter", "filter to apply, name[:key=value,...] (repeatable)")
	flag.Parse()

	if *verbose {
		postfx.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}
	if len(specs) == 0 {
		log.Fatal("at least one -filter is required")
	}

	var base *postfx.MemTexture
	if *input != "" {
		img, err := loadImage(*input)
		if err != nil {
			log.Fatalf("failed to load input: %v", err)
		}
		base = postfx.FromImage(img)
	}

	filters := make([]postfx.Filter, 0, len(specs))
	for _, spec := range specs {
		f, err := buildFilter(spec, base)
		if err != nil {
			log.Fatalf("invalid filter %q: %v", spec, err)
		}
		filters = append(filters, f)
	}

	w, h, fmtOut := resolveTarget(filters, base, *width, *height, *format)

	opts := []postfx.RendererOption{}
	if *workers > 0 {
		opts = append(opts, postfx.WithWorkers(*workers))
	}
	if *progress {
		opts = append(opts, postfx.WithProgress(printProgress))
	}
	renderer := postfx.NewRenderer(opts...)

	var prev *postfx.MemTexture
	for i, f := range filters {
		fb := postfx.FrameBuffer{Width: w, Height: h, Format: fmtOut}
		if prev != nil {
			fb.Previous = prev
		}
		fn, err := f.Bind(fb)
		if err != nil {
			log.Fatalf("pass %d (%s): %v", i, f.Describe(), err)
		}
		dst := postfx.NewMemTexture(w, h, fmtOut)
		if err := renderer.Render(fn, dst); err != nil {
			log.Fatalf("pass %d (%s): %v", i, f.Describe(), err)
		}
		if *progress {
			fmt.Fprintln(os.Stderr)
		}
		prev = dst
	}

	if err := savePNG(*output, prev); err != nil {
		log.Fatalf("failed to save output: %v", err)
	}
	log.Printf("wrote %s (%dx%d %s, %d passes)", *output, w, h, fmtOut, len(filters))
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = f.Close()
	}()
	img, _, err := image.Decode(f)
	return img, err
}

func savePNG(path string, t *postfx.MemTexture) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()
	return png.Encode(f, t.ToImage())
}

func printProgress(done, total int) {
	fmt.Fprintf(os.Stderr, "\r%.2f%% done...", float64(done)/float64(total)*100)
}

// resolveTarget picks the render target geometry and format: explicit
// flags win, then filter hints, then the input image, then 256x256 RGBA8.
func resolveTarget(filters []postfx.Filter, base *postfx.MemTexture, width, height int, format string) (int, int, postfx.Format) {
	if width == 0 || height == 0 {
		for _, f := range filters {
			if fw, fh, ok := f.TextureSize(); ok {
				if width == 0 {
					width = fw
				}
				if height == 0 {
					height = fh
				}
				break
			}
		}
	}
	if (width == 0 || height == 0) && base != nil {
		if width == 0 {
			width = base.Width()
		}
		if height == 0 {
			height = base.Height()
		}
	}
	if width == 0 {
		width = 256
	}
	if height == 0 {
		height = 256
	}

	out := postfx.RGBA8
	if format != "" {
		parsed, err := postfx.ParseFormat(format)
		if err != nil {
			log.Fatal(err)
		}
		out = parsed
	} else {
		for i := len(filters) - 1; i >= 0; i-- {
			if hint, ok := filters[i].TextureFormat(); ok {
				out = hint
				break
			}
		}
	}
	return width, height, out
}

// buildFilter parses one -filter spec into a configured filter.
func buildFilter(spec string, base *postfx.MemTexture) (postfx.Filter, error) {
	name, args, _ := strings.Cut(spec, ":")
	params, err := parseParams(args)
	if err != nil {
		return nil, err
	}
	switch name {
	case "gaussian":
		opts := postfx.GaussianOptions{}
		if opts.Sigma, err = floatParam(params, "sigma", 0); err != nil {
			return nil, err
		}
		if opts.KSize, err = intParam(params, "ksize", 0); err != nil {
			return nil, err
		}
		return postfx.NewGaussian(opts)
	case "brightness":
		factor, err := floatParam(params, "factor", postfx.DefaultBrightness)
		if err != nil {
			return nil, err
		}
		return postfx.NewBrightness(factor)
	case "greyscale":
		alpha, err := boolParam(params, "alpha", false)
		if err != nil {
			return nil, err
		}
		return postfx.NewGreyscale(postfx.GreyscaleOptions{Alpha: alpha}), nil
	case "noise":
		seed, err := intParam(params, "seed", 0)
		if err != nil {
			return nil, err
		}
		return postfx.NewNoise(postfx.NoiseOptions{
			Mode: postfx.NoiseMode(params["mode"]),
			Seed: int64(seed),
		})
	case "resample":
		if base == nil {
			return nil, fmt.Errorf("resample requires -input")
		}
		return postfx.NewResample(postfx.ResampleOptions{
			Base:   base,
			Policy: postfx.ResamplePolicy(params["policy"]),
		})
	}
	return nil, fmt.Errorf("unknown filter %q", name)
}

func parseParams(args string) (map[string]string, error) {
	params := map[string]string{}
	if args == "" {
		return params, nil
	}
	for _, pair := range strings.Split(args, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed parameter %q", pair)
		}
		params[k] = v
	}
	return params, nil
}

func floatParam(params map[string]string, key string, def float64) (float64, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", key, err)
	}
	return f, nil
}

func intParam(params map[string]string, key string, def int) (int, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("parameter %s: %w", key, err)
	}
	return n, nil
}

func boolParam(params map[string]string, key string, def bool) (bool, error) {
	v, ok := params[key]
	if !ok {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parameter %s: %w", key, err)
	}
	return b, nil
}
