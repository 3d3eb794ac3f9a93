package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/render"
	"github.com/lixenwraith/cellterm/scene"
)

const introDelay = 2 * time.Second

var benchDuration time.Duration

var benchCmd = &cobra.Command{
	Use:   "bench",
	Short: "Run the rendering stress benchmark",
	RunE:  runBench,
}

func init() {
	benchCmd.Flags().DurationVar(&benchDuration, "duration", scene.DefaultStageDuration, "Duration of each benchmark stage")
	rootCmd.AddCommand(benchCmd)
}

func runBench(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	scenes := scene.Stress(rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0)))

	var results []scene.Result
	err = a.session.Run(func() error {
		r := a.renderer()
		keys := a.reader()

		scene.DrawIntro(r, len(scenes), benchDuration)
		if err := r.Render(); err != nil {
			return err
		}
		if k, ok := waitKey(ctx, keys, introDelay); ok && a.action(k) == "quit" {
			return scene.ErrAborted
		}

		b := &scene.Bench{
			Target:   r,
			Duration: benchDuration,
			Stop:     quitRequested(ctx, a, keys),
			OnStage: func(i int, name string) {
				a.log.Info("benchmark stage", "index", i+1, "of", len(scenes), "scene", name)
			},
			Log: a.log,
		}

		var runErr error
		results, runErr = b.Run(scenes)
		if runErr != nil {
			return runErr
		}

		scene.DrawResults(r, results)
		if err := r.Render(); err != nil {
			return err
		}
		keys.Reset()
		waitKey(ctx, keys, 0)
		return nil
	})

	switch {
	case errors.Is(err, scene.ErrAborted):
		a.log.Info("benchmark aborted", "completed", len(results))
	case err != nil:
		return err
	}

	if len(results) > 0 {
		fmt.Println(render.EncodeStyled("=== FPS BENCHMARK RESULTS ===", render.StyleDefault.With(render.AttrBold), a.mode))
		fmt.Println()
		for _, line := range scene.FormatResults(results) {
			fmt.Println(line)
		}
	}
	return nil
}

// quitRequested returns a Stop hook polling input without blocking
func quitRequested(ctx context.Context, a *app, keys *input.Reader) func() bool {
	return func() bool {
		if ctx.Err() != nil {
			return true
		}
		for {
			k, ok, err := keys.PollKey()
			if err != nil {
				a.log.Warn("input failed", "err", err)
				return true
			}
			if !ok {
				return false
			}
			if a.action(k) == "quit" {
				return true
			}
		}
	}
}

// waitKey blocks for one key, up to d when d is positive
func waitKey(ctx context.Context, keys *input.Reader, d time.Duration) (input.Key, bool) {
	if d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}
	k, err := keys.ReadKey(ctx)
	if err != nil {
		return input.Key{}, false
	}
	return k, true
}
