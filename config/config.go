package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/render"
)

const (
	defBackend       = "stdio"
	defColorMode     = "auto"
	defFPS           = 60
	defSoundVolume   = 0.5
	defLogFile       = "logs/cellterm.log"
	defEscapeTimeout = input.DefaultEscapeTimeout

	EnvVarPrefix = "CELLTERM"
)

var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Terminal Terminal            `mapstructure:"terminal" yaml:"terminal"`
	Input    Input               `mapstructure:"input" yaml:"input"`
	Render   Render              `mapstructure:"render" yaml:"render"`
	Keys     map[string][]string `mapstructure:"keys" yaml:"keys"`
	Sound    Sound               `mapstructure:"sound" yaml:"sound"`
	Log      Log                 `mapstructure:"log" yaml:"log"`
}

type Terminal struct {
	Backend    string `mapstructure:"backend" yaml:"backend"`
	AltScreen  bool   `mapstructure:"alt_screen" yaml:"alt_screen"`
	HideCursor bool   `mapstructure:"hide_cursor" yaml:"hide_cursor"`
	ColorMode  string `mapstructure:"color_mode" yaml:"color_mode"`
}

type Input struct {
	EscapeTimeout time.Duration `mapstructure:"escape_timeout" yaml:"escape_timeout"`
	SS3           bool          `mapstructure:"ss3" yaml:"ss3"` // ESC O function and cursor keys
}

type Render struct {
	FPS int `mapstructure:"fps" yaml:"fps"`
}

type Sound struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	Volume  float64 `mapstructure:"volume" yaml:"volume"`
}

type Log struct {
	Debug bool   `mapstructure:"debug" yaml:"debug"`
	File  string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Terminal: Terminal{
			Backend:    defBackend,
			AltScreen:  true,
			HideCursor: true,
			ColorMode:  defColorMode,
		},
		Input: Input{
			EscapeTimeout: defEscapeTimeout,
			SS3:           true,
		},
		Render: Render{
			FPS: defFPS,
		},
		Keys: map[string][]string{
			"quit":   {"q", "ctrl_c"},
			"up":     {"up", "k"},
			"down":   {"down", "j"},
			"left":   {"left", "h"},
			"right":  {"right", "l"},
			"sound":  {"s"},
			"cursor": {"c"},
		},
		Sound: Sound{
			Enabled: false,
			Volume:  defSoundVolume,
		},
		Log: Log{
			File: defLogFile,
		},
	}
}

// Loader reads configuration from defaults, an optional YAML file and CELLTERM_* variables,
// in increasing precedence
type Loader struct {
	path string
	log  *log.Logger
}

// NewLoader creates a loader, an empty path skips the file layer
func NewLoader(path string, l *log.Logger) *Loader {
	if l == nil {
		l = log.New(io.Discard)
	}
	return &Loader{path: path, log: l}
}

// Load builds a fresh configuration snapshot
func (l *Loader) Load() (*Config, error) {
	v, err := l.build()
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Watch calls onChange with a reloaded snapshot whenever the config file changes
// Invalid edits are logged and skipped, the previous snapshot stays in effect
func (l *Loader) Watch(onChange func(*Config)) error {
	if l.path == "" {
		return fmt.Errorf("config: no file to watch")
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(l.path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("config: watch %s: %w", l.path, err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		// Rebuild from all layers, the watcher's own viper only holds the file
		cfg, err := l.Load()
		if err != nil {
			l.log.Warn("config reload failed", "file", e.Name, "err", err)
			return
		}
		l.log.Debug("config reloaded", "file", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// build layers the sources into a new viper instance
func (l *Loader) build() (*viper.Viper, error) {
	v := viper.New()

	// Viper needs to know if a key exists in order to override it
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}
	v.SetConfigType("yaml")
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, fmt.Errorf("config: defaults: %w", err)
	}

	if l.path != "" {
		fi, err := os.Stat(l.path)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("config: %s is a directory", l.path)
		}
		v.SetConfigFile(l.path)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("config: parse %s: %w", l.path, err)
		}
	}

	// Environment variables as final override
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	// Preload environment bindings so they are processed on unmarshal
	l.bindVars(v, reflect.TypeOf(Config{}), "")
	return v, nil
}

func (l *Loader) bindVars(v *viper.Viper, t reflect.Type, prefix string) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		switch field.Type.Kind() {
		case reflect.Struct:
			l.bindVars(v, field.Type, tag+".")
		case reflect.Map:
			// Key maps are file-only
		default:
			if err := v.BindEnv(tag); err != nil {
				l.log.Debug("unable to bind environment variable", "key", tag, "err", err)
			}
		}
	}
}

// Load is shorthand for NewLoader(path, nil).Load()
func Load(path string) (*Config, error) {
	return NewLoader(path, nil).Load()
}

// Validate checks ranges and names
func (c *Config) Validate() error {
	switch c.Terminal.Backend {
	case "stdio", "tty":
	default:
		return fmt.Errorf("config: terminal.backend %q must be stdio or tty", c.Terminal.Backend)
	}
	if _, _, err := c.ColorMode(); err != nil {
		return fmt.Errorf("config: terminal.color_mode: %w", err)
	}
	if c.Input.EscapeTimeout <= 0 {
		return fmt.Errorf("config: input.escape_timeout must be positive, got %v", c.Input.EscapeTimeout)
	}
	if c.Render.FPS <= 0 || c.Render.FPS > 1000 {
		return fmt.Errorf("config: render.fps must be in 1-1000, got %d", c.Render.FPS)
	}
	if c.Sound.Volume < 0 || c.Sound.Volume > 1 {
		return fmt.Errorf("config: sound.volume must be in 0-1, got %v", c.Sound.Volume)
	}
	if _, err := c.Bindings(); err != nil {
		return err
	}
	return nil
}

// ColorMode returns the configured mode, explicit is false for "auto" so the caller detects it
func (c *Config) ColorMode() (mode render.ColorMode, explicit bool, err error) {
	if c.Terminal.ColorMode == "" || strings.EqualFold(c.Terminal.ColorMode, "auto") {
		return render.ColorModeTrueColor, false, nil
	}
	mode, err = render.ParseColorMode(c.Terminal.ColorMode)
	return mode, err == nil, err
}

// FrameInterval is the delay between frames at the configured rate
func (c *Config) FrameInterval() time.Duration {
	if c.Render.FPS <= 0 {
		return time.Second / defFPS
	}
	return time.Second / time.Duration(c.Render.FPS)
}

// Bindings resolves the key map into key → action
func (c *Config) Bindings() (map[input.Key]string, error) {
	out := make(map[input.Key]string)
	for action, names := range c.Keys {
		for _, name := range names {
			k, err := input.ParseKey(name)
			if err != nil {
				return nil, fmt.Errorf("config: keys.%s: %w", action, err)
			}
			if prev, ok := out[k]; ok && prev != action {
				return nil, fmt.Errorf("config: key %q bound to both %s and %s", name, prev, action)
			}
			out[k] = action
		}
	}
	return out, nil
}
