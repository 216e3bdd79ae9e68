package renderer

import (
	"math"
	"math/rand"
	"sync"

	"github.com/riftwood/pathtracer/pkg/camera"
	"github.com/riftwood/pathtracer/pkg/integrator"
	"github.com/riftwood/pathtracer/pkg/pathtree"
	"github.com/riftwood/pathtracer/pkg/scene"
)

// RenderConfig carries everything Render needs beyond the scene itself:
// the camera to shoot rays from, the path-kernel tunables, the worker
// count, and a base seed for deterministic per-column RNG streams.
type RenderConfig struct {
	Camera      *camera.Camera
	Integrator  integrator.Config
	NumWorkers  int
	Seed        int64
	Broadcaster Broadcaster
}

// Image is an 8-bit RGBA buffer in row-major, top-left-origin order.
type Image struct {
	Width, Height int
	Pixels        []byte
}

// Render shoots every primary ray against s, averages the per-sample
// radiance per pixel, tonemaps it, and writes the result into an Image.
// Work is partitioned by column across a bounded worker pool; each column
// gets its own deterministically seeded RNG so a render is reproducible
// given the same seed, regardless of worker count. The first error raised
// by any column's kernel is returned once every in-flight column finishes;
// img is nil whenever err is non-nil.
func Render(s *scene.Scene, cfg RenderConfig) (*Image, error) {
	cam := cfg.Camera
	img := &Image{
		Width:  cam.Width,
		Height: cam.Height,
		Pixels: make([]byte, cam.Width*cam.Height*4),
	}

	progress := NewProgress(cam.Width, cfg.Broadcaster)

	var errMu sync.Mutex
	var firstErr error
	recordErr := func(err error) {
		errMu.Lock()
		defer errMu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	renderColumn := func(task ColumnTask) {
		x := task.X
		rng := rand.New(rand.NewSource(cfg.Seed ^ int64(x)))
		rays := cam.GenerateColumnRays(x, rng)

		columnMin := math.Inf(1)
		columnMax := math.Inf(-1)

		for y := 0; y < cam.Height; y++ {
			sum := struct{ r, g, b float64 }{}
			for sampleIdx := 0; sampleIdx < cam.SamplesPerPixel; sampleIdx++ {
				ray := rays[y*cam.SamplesPerPixel+sampleIdx]
				root := pathtree.NewRoot(ray)
				if err := integrator.Trace(root, s, cfg.Integrator, rng); err != nil {
					recordErr(err)
					return
				}
				sum.r += root.Radiance.X
				sum.g += root.Radiance.Y
				sum.b += root.Radiance.Z
			}
			n := float64(cam.SamplesPerPixel)
			r, g, b := sum.r/n, sum.g/n, sum.b/n

			columnMin = math.Min(columnMin, math.Min(r, math.Min(g, b)))
			columnMax = math.Max(columnMax, math.Max(r, math.Max(g, b)))

			idx := (y*cam.Width + x) * 4
			img.Pixels[idx+0] = Tonemap(r)
			img.Pixels[idx+1] = Tonemap(g)
			img.Pixels[idx+2] = Tonemap(b)
			img.Pixels[idx+3] = 255
		}

		if cam.Height == 0 {
			columnMin, columnMax = 0, 0
		}
		progress.CompleteColumn(columnMin, columnMax)
	}

	pool := NewWorkerPool(cfg.NumWorkers, cam.Width, func(task ColumnTask) { renderColumn(task) })
	for x := 0; x < cam.Width; x++ {
		pool.Submit(ColumnTask{X: x})
	}
	pool.Wait()

	if firstErr != nil {
		return nil, firstErr
	}
	return img, nil
}
