package renderer

import (
	"fmt"
	"math/rand"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/jmrtz/go-pathtracer/pkg/core"
	"github.com/jmrtz/go-pathtracer/pkg/loaders"
	"github.com/jmrtz/go-pathtracer/pkg/scene"
)

// Renderer drives the parallel render of a scene into a framebuffer
type Renderer struct {
	config loaders.Config
	scene  *scene.Scene
	camera *Camera
	logger core.Logger
}

// DefaultLogger logs progress to standard output
type DefaultLogger struct{}

// Printf implements the Logger interface
func (l *DefaultLogger) Printf(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// NewRenderer creates a renderer. A nil logger falls back to stdout.
func NewRenderer(cfg loaders.Config, scn *scene.Scene, cam *Camera, logger core.Logger) *Renderer {
	if logger == nil {
		logger = &DefaultLogger{}
	}
	return &Renderer{
		config: cfg,
		scene:  scn,
		camera: cam,
		logger: logger,
	}
}

// rowStrip is one unit of work: a half-open row range plus the two
// generators claimed for it
type rowStrip struct {
	start  int
	end    int
	rayRNG *rand.Rand
	matRNG *rand.Rand
}

// splitRows partitions [0, height) into contiguous strips.
//
//	static: one near-equal strip per worker, remainder spread over the
//	        leading strips
//	simple: fixed strips of grain rows
//	auto:   strips of max(grain, height/(4*workers)) rows, so each
//	        worker sees a few strips without excessive task churn
func splitRows(height, workers, grain int, partitioner loaders.Partitioner) [][2]int {
	chunk := 1
	switch partitioner {
	case loaders.PartitionerStatic:
		if workers > height {
			workers = height
		}
		strips := make([][2]int, 0, workers)
		base := height / workers
		remainder := height % workers
		start := 0
		for i := 0; i < workers; i++ {
			size := base
			if i < remainder {
				size++
			}
			strips = append(strips, [2]int{start, start + size})
			start += size
		}
		return strips
	case loaders.PartitionerSimple:
		chunk = grain
	default:
		chunk = max(grain, height/(4*workers))
	}

	strips := make([][2]int, 0, (height+chunk-1)/chunk)
	for start := 0; start < height; start += chunk {
		strips = append(strips, [2]int{start, min(start+chunk, height)})
	}
	return strips
}

// Render fills a framebuffer with the configured number of workers.
// Strips are enqueued in increasing row order and each strip claims its
// generators before any worker starts, so the output depends only on
// the configuration, not on goroutine scheduling.
func (r *Renderer) Render() (*ImageSOA, error) {
	width := r.config.ImageWidth
	height := r.config.ImageHeight()

	img, err := NewImageSOA(width, height)
	if err != nil {
		return nil, err
	}

	workers := r.config.NumThreads
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	strips := splitRows(height, workers, r.config.GrainSize, r.config.Partitioner)
	r.logger.Printf("Rendering scene (%dx%d) with %d workers, %d strips\n",
		width, height, workers, len(strips))

	rayPool := newSeedPool(r.config.RayRNGSeed)
	matPool := newSeedPool(r.config.MaterialRNGSeed)

	tasks := make(chan rowStrip, len(strips))
	for _, s := range strips {
		tasks <- rowStrip{
			start:  s[0],
			end:    s[1],
			rayRNG: rayPool.Claim(),
			matRNG: matPool.Claim(),
		}
	}
	close(tasks)

	rt := NewRaytracer(r.scene, r.config.BackgroundDarkColor, r.config.BackgroundLightColor)

	var g errgroup.Group
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for strip := range tasks {
				r.renderStrip(img, rt, strip)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return img, nil
}

// renderStrip renders the rows [strip.start, strip.end). Strips never
// overlap, so the framebuffer needs no locking.
func (r *Renderer) renderStrip(img *ImageSOA, rt *Raytracer, strip rowStrip) {
	width := img.Width()
	height := img.Height()
	samples := r.config.SamplesPerPixel
	maxDepth := r.config.MaxDepth
	gamma := r.config.Gamma

	for j := strip.start; j < strip.end; j++ {
		for i := 0; i < width; i++ {
			accumulated := core.NewVec3(0, 0, 0)

			for s := 0; s < samples; s++ {
				u := (float64(i) + 0.5 + (strip.rayRNG.Float64() - 0.5)) / float64(width)
				v := (float64(j) + 0.5 + (strip.rayRNG.Float64() - 0.5)) / float64(height)

				ray := r.camera.GetRay(u, v)
				accumulated = accumulated.Add(rt.RayColor(ray, maxDepth, strip.matRNG))
			}

			img.SetPixel(i, j, accumulated.Multiply(1.0/float64(samples)), gamma)
		}
	}
}
