package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/audio"
	"github.com/lixenwraith/cellterm/config"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/render"
	"github.com/lixenwraith/cellterm/scene"
)

const demoHelp = " arrows/hjkl move  s sound  c cursor  q quit "

var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Move a block around the screen with the arrow keys",
	RunE:  runDemo,
}

func init() {
	rootCmd.AddCommand(demoCmd)
}

var moves = map[string][2]int{
	"up":    {0, -1},
	"down":  {0, 1},
	"left":  {-1, 0},
	"right": {1, 0},
}

// demo is the walker game state
type demo struct {
	*app
	r       *render.Renderer
	keys    *input.Reader
	player  *audio.Player
	walker  scene.Walker
	cursor  bool
	reloads chan *config.Config
}

func runDemo(cmd *cobra.Command, args []string) error {
	a, err := setup(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	player := audio.NewPlayer(audio.Config{Enabled: a.cfg.Sound.Enabled, Volume: a.cfg.Sound.Volume}, a.log)
	if err := player.Init(); err != nil {
		a.log.Warn("audio unavailable, continuing without sound", "err", err)
	}
	defer player.Close()

	d := &demo{app: a, player: player, reloads: make(chan *config.Config, 1)}
	if configPath != "" {
		err := a.loader.Watch(func(c *config.Config) {
			// Keep only the latest snapshot
			select {
			case <-d.reloads:
			default:
			}
			d.reloads <- c
		})
		if err != nil {
			a.log.Warn("config watch disabled", "err", err)
		}
	}

	return a.session.Run(func() error {
		d.r = a.renderer()
		d.keys = a.reader()
		return d.loop(cmd.Context())
	})
}

func (d *demo) loop(ctx context.Context) error {
	w, h := d.r.Size()
	d.walker = scene.Walker{X: w / 4, Y: h / 2}

	ticker := time.NewTicker(d.cfg.FrameInterval())
	defer ticker.Stop()

	for {
		if err := d.draw(); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return nil
		case c := <-d.reloads:
			d.apply(c)
			ticker.Reset(d.cfg.FrameInterval())
		case <-ticker.C:
		}

		for {
			k, ok, err := d.keys.PollKey()
			if err != nil {
				return err
			}
			if !ok {
				break
			}
			if d.handle(k) {
				return nil
			}
		}
	}
}

// handle applies one key, returning true on quit
func (d *demo) handle(k input.Key) bool {
	action := d.action(k)
	d.log.Debug("key", "key", k, "action", action)

	switch action {
	case "quit":
		return true
	case "sound":
		d.player.SetEnabled(!d.player.Enabled())
		if err := d.player.Init(); err != nil {
			d.log.Warn("audio unavailable", "err", err)
		}
	case "cursor":
		d.cursor = !d.cursor
		if err := d.session.SetCursorVisible(d.cursor); err != nil {
			d.log.Warn("cursor toggle failed", "err", err)
		}
	default:
		if m, ok := moves[action]; ok {
			w, h := d.r.Size()
			if d.walker.Move(m[0], m[1], w, h) {
				d.player.Play(audio.SoundBump)
			}
		}
	}
	return false
}

func (d *demo) draw() error {
	d.r.Clear()
	w, h := d.r.Size()
	d.walker.Clamp(w, h)
	d.walker.Draw(d.r)
	d.r.Write(0, 0, demoHelp, render.StyleDefault.With(render.AttrReverse))
	return d.r.Render()
}

// apply takes the live-reloadable parts of a new config
func (d *demo) apply(c *config.Config) {
	bindings, err := c.Bindings()
	if err != nil {
		d.log.Warn("ignoring reloaded key map", "err", err)
		return
	}
	d.bindings = bindings
	d.player.SetVolume(c.Sound.Volume)
	if c.Sound.Enabled != d.player.Enabled() {
		d.player.SetEnabled(c.Sound.Enabled)
		if err := d.player.Init(); err != nil {
			d.log.Warn("audio unavailable", "err", err)
		}
	}
	d.cfg.Render = c.Render
	d.cfg.Keys = c.Keys
	d.cfg.Sound = c.Sound
	d.log.Info("config applied", "fps", c.Render.FPS, "volume", c.Sound.Volume)
}
