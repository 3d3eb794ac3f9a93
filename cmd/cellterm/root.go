package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/lixenwraith/cellterm/config"
	"github.com/lixenwraith/cellterm/input"
	"github.com/lixenwraith/cellterm/render"
	"github.com/lixenwraith/cellterm/terminal"
)

var (
	configPath  string
	debugFlag   bool
	backendFlag string
	colorFlag   string
)

var rootCmd = &cobra.Command{
	Use:           "cellterm",
	Short:         "cellterm - differential terminal renderer toolkit",
	Long:          "cellterm drives a double-buffered cell renderer and escape-sequence key decoder on a raw terminal.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", "", "YAML config file")
	pf.BoolVar(&debugFlag, "debug", false, "Write debug log to the configured log file")
	pf.StringVar(&backendFlag, "backend", "", "Terminal backend: stdio, tty")
	pf.StringVar(&colorFlag, "color", "", "Color mode: auto, truecolor, 256")
}

// app holds everything a subcommand needs once flags and config are resolved
type app struct {
	cfg      *config.Config
	loader   *config.Loader
	log      *log.Logger
	logFile  io.Closer
	session  *terminal.Session
	mode     render.ColorMode
	bindings map[input.Key]string
}

// setup loads config, applies flag overrides and builds the session
// The session is not entered yet
func setup(cmd *cobra.Command) (*app, error) {
	loader := config.NewLoader(configPath, nil)
	cfg, err := loader.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("debug") {
		cfg.Log.Debug = debugFlag
	}
	if flags.Changed("backend") {
		cfg.Terminal.Backend = backendFlag
	}
	if flags.Changed("color") {
		cfg.Terminal.ColorMode = colorFlag
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger, logFile, err := setupLogging(cfg.Log.Debug, cfg.Log.File)
	if err != nil {
		return nil, err
	}
	loader = config.NewLoader(configPath, logger)

	mode, explicit, err := cfg.ColorMode()
	if err != nil {
		logFile.Close()
		return nil, err
	}
	if !explicit {
		mode = terminal.DetectColorMode()
	}

	bindings, err := cfg.Bindings()
	if err != nil {
		logFile.Close()
		return nil, err
	}

	backend, err := terminal.NewBackend(cfg.Terminal.Backend)
	if err != nil {
		logFile.Close()
		return nil, err
	}
	session := terminal.NewSession(backend,
		terminal.WithAltScreen(cfg.Terminal.AltScreen),
		terminal.WithHiddenCursor(cfg.Terminal.HideCursor),
		terminal.WithLogger(logger),
	)

	logger.Debug("session configured", "backend", cfg.Terminal.Backend, "color", mode, "fps", cfg.Render.FPS)
	return &app{
		cfg:      cfg,
		loader:   loader,
		log:      logger,
		logFile:  logFile,
		session:  session,
		mode:     mode,
		bindings: bindings,
	}, nil
}

func (a *app) close() {
	a.log.Debug("shutting down")
	_ = a.logFile.Close()
}

func (a *app) renderer() *render.Renderer {
	return render.NewRenderer(a.session, render.WithColorMode(a.mode), render.WithLogger(a.log))
}

func (a *app) reader() *input.Reader {
	return input.NewReader(a.session,
		input.WithEscapeTimeout(a.cfg.Input.EscapeTimeout),
		input.WithSS3(a.cfg.Input.SS3),
		input.WithLogger(a.log),
	)
}

// action maps a key to its bound action, empty when unbound
func (a *app) action(k input.Key) string {
	return a.bindings[k]
}
