package scene

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/lixenwraith/cellterm/render"
)

// ErrAborted is returned when the stop check ends a benchmark early
var ErrAborted = errors.New("scene: benchmark aborted")

// DefaultStageDuration is how long each scene runs
const DefaultStageDuration = 3 * time.Second

// Target is a canvas that can flush frames, satisfied by *render.Renderer
type Target interface {
	Canvas
	Render() error
	Stats() render.FrameStats
}

// Result holds the measurements of one scene
type Result struct {
	Name    string
	Frames  int
	Elapsed time.Duration
	Bytes   int // Output bytes written during the stage
}

// FPS returns frames per second over the stage
func (r Result) FPS() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

// Average returns the mean FPS across results
func Average(results []Result) float64 {
	if len(results) == 0 {
		return 0
	}
	var sum float64
	for _, r := range results {
		sum += r.FPS()
	}
	return sum / float64(len(results))
}

// Bench runs scenes back to back at maximum speed
type Bench struct {
	Target   Target
	Duration time.Duration    // Per scene, DefaultStageDuration when zero
	Now      func() time.Time // time.Now when nil
	Stop     func() bool      // Polled once per frame, true aborts
	OnStage  func(index int, name string)
	Log      *log.Logger
}

// Run executes every scene and returns the completed results
// Aborting keeps the partial stage result and returns ErrAborted
func (b *Bench) Run(scenes []Scene) ([]Result, error) {
	now := b.Now
	if now == nil {
		now = time.Now
	}
	dur := b.Duration
	if dur <= 0 {
		dur = DefaultStageDuration
	}
	logger := b.Log
	if logger == nil {
		logger = log.New(io.Discard)
	}

	results := make([]Result, 0, len(scenes))
	for i, s := range scenes {
		if b.OnStage != nil {
			b.OnStage(i, s.Name())
		}

		res := Result{Name: s.Name()}
		startBytes := b.Target.Stats().Bytes
		start := now()
		aborted := false

		for now().Sub(start) < dur {
			if b.Stop != nil && b.Stop() {
				aborted = true
				break
			}
			s.Draw(b.Target, res.Frames)
			if err := b.Target.Render(); err != nil {
				return results, fmt.Errorf("scene %q frame %d: %w", s.Name(), res.Frames, err)
			}
			res.Frames++
		}

		res.Elapsed = now().Sub(start)
		res.Bytes = b.Target.Stats().Bytes - startBytes
		logger.Debug("stage finished", "scene", res.Name, "frames", res.Frames, "fps", res.FPS(), "bytes", res.Bytes)

		if aborted {
			if res.Frames > 0 {
				results = append(results, res)
			}
			return results, ErrAborted
		}
		results = append(results, res)
	}
	return results, nil
}

// DrawIntro composes the benchmark banner
func DrawIntro(c Canvas, stages int, dur time.Duration) {
	c.Clear()
	title := render.StyleDefault.With(render.AttrBold)
	c.Write(5, 5, "=== TERMINAL FPS BENCHMARK ===", title)
	c.Write(5, 7, fmt.Sprintf("Running %d rendering tests at maximum speed...", stages), render.StyleDefault)
	c.Write(5, 8, fmt.Sprintf("Each test runs for %v", dur), render.StyleDefault)
	c.Write(5, 10, "Press q or Ctrl+C to stop", render.StyleDefault)
}

// DrawResults composes the results table
func DrawResults(c Canvas, results []Result) {
	c.Clear()
	c.Write(5, 5, "=== FPS BENCHMARK RESULTS ===", render.StyleDefault.With(render.AttrBold))

	y := 8
	for _, line := range FormatResults(results) {
		c.Write(5, y, line, render.StyleDefault)
		y++
	}
	c.Write(5, y+1, "Benchmark complete! Press any key to exit", render.StyleDefault)
}

// FormatResults renders one line per stage plus the average
func FormatResults(results []Result) []string {
	lines := make([]string, 0, len(results)+2)
	for _, r := range results {
		lines = append(lines, fmt.Sprintf("%-30s %8.2f FPS  (%d frames, %d KiB)", r.Name, r.FPS(), r.Frames, r.Bytes/1024))
	}
	if len(results) > 0 {
		lines = append(lines, "", fmt.Sprintf("Average FPS: %.2f", Average(results)))
	}
	return lines
}
