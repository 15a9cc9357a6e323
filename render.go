package postfx

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
)

// maxDefaultWorkers caps the default worker count; past this point the
// pass is memory-bound and extra goroutines only add scheduling churn.
const maxDefaultWorkers = 8

// RendererOption configures a Renderer during creation.
type RendererOption func(*Renderer)

// WithWorkers sets the number of goroutines evaluating the pixel
// function. Values below 1 select the default.
func WithWorkers(n int) RendererOption {
	return func(r *Renderer) {
		if n >= 1 {
			r.workers = n
		}
	}
}

// WithProgress installs a progress callback invoked after each completed
// row with the number of texels done so far and the total. Calls are
// serialized; the callback does not need to be safe for concurrent use.
func WithProgress(fn func(done, total int)) RendererOption {
	return func(r *Renderer) {
		r.progress = fn
	}
}

// Renderer evaluates one pixel function over one render target. Every
// texel is independent, so rows are partitioned across workers with no
// shared mutable state; the bound Function is called concurrently and
// must be pure, which every Function in this package is.
type Renderer struct {
	workers  int
	progress func(done, total int)
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...RendererOption) *Renderer {
	r := &Renderer{
		workers: min(maxDefaultWorkers, runtime.NumCPU()),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render runs fn once per texel of dst and stores the results. The
// first pixel error aborts the pass and is returned; dst then holds
// partial output and should be discarded. Each texel of dst is written
// by exactly one worker, so no locking guards the buffer.
func (r *Renderer) Render(fn Function, dst *MemTexture) error {
	width, height := dst.Width(), dst.Height()
	if width <= 0 || height <= 0 {
		return fmt.Errorf("postfx: cannot render into empty %dx%d target", width, height)
	}
	total := width * height
	Logger().Debug("starting render pass",
		"width", width, "height", height, "format", dst.Format().String(), "workers", r.workers)

	rows := make(chan int)
	var (
		wg       sync.WaitGroup
		done     atomic.Int64
		failed   atomic.Bool
		firstErr error
		errOnce  sync.Once
		progMu   sync.Mutex
	)
	fail := func(err error) {
		errOnce.Do(func() { firstErr = err })
		failed.Store(true)
	}
	for w := 0; w < r.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Keep draining rows after a failure so the feeder below
			// never blocks on a dead worker set.
			for y := range rows {
				if failed.Load() {
					continue
				}
				if err := r.renderRow(fn, dst, y, width); err != nil {
					fail(err)
					continue
				}
				n := done.Add(int64(width))
				if r.progress != nil {
					progMu.Lock()
					r.progress(int(n), total)
					progMu.Unlock()
				}
			}
		}()
	}
	for y := 0; y < height; y++ {
		rows <- y
	}
	close(rows)
	wg.Wait()
	if firstErr != nil {
		Logger().Warn("render pass failed", "error", firstErr)
	}
	return firstErr
}

func (r *Renderer) renderRow(fn Function, dst *MemTexture, y, width int) error {
	for x := 0; x < width; x++ {
		texel, err := fn.Apply(x, y)
		if err != nil {
			return fmt.Errorf("postfx: pixel (%d,%d): %w", x, y, err)
		}
		if err := dst.Set(x, y, texel); err != nil {
			return err
		}
	}
	return nil
}
