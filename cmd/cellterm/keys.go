package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/render"
)

const maxKeyLog = 10

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Show decoded keys as they are pressed, Ctrl+C quits",
	RunE:  runKeys,
}

func init() {
	rootCmd.AddCommand(keysCmd)
}

func runKeys(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	return a.session.Run(func() error {
		return keyLoop(cmd.Context(), a.renderer(), a.reader())
	})
}

// keyLoop echoes every key until Ctrl+C, so q and Escape can be tested too
func keyLoop(ctx context.Context, r *render.Renderer, keys *input.Reader) error {
	quit := input.Ctrl('c')
	history := make([]string, 0, maxKeyLog)

	for {
		drawKeys(r, history)
		if err := r.Render(); err != nil {
			return err
		}

		k, err := keys.ReadKey(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
		if k == quit {
			return nil
		}

		if len(history) == maxKeyLog {
			copy(history, history[1:])
			history = history[:maxKeyLog-1]
		}
		history = append(history, describeKey(k))
	}
}

func drawKeys(r *render.Renderer, history []string) {
	r.Clear()
	r.Write(1, 0, "Key Test - press keys, Ctrl+C to quit", render.StyleDefault.With(render.AttrBold))
	if n := len(history); n > 0 {
		r.Write(1, 2, "You pressed "+history[n-1], render.StyleDefault)
	}
	for i, entry := range history {
		r.Write(3, 4+i, entry, render.StyleDefault.With(render.AttrDim))
	}
}

func describeKey(k input.Key) string {
	if k.Kind == input.KeyUnknown {
		return fmt.Sprintf("unknown sequence %q", k.Raw)
	}
	return k.String()
}
