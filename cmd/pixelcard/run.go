package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tea "charm.land/bubbletea/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/log"
	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
	"github.com/Gaurav-Gosain/pixelcard/internal/input"
	"github.com/Gaurav-Gosain/pixelcard/internal/logging"
	"github.com/Gaurav-Gosain/pixelcard/internal/render"
	"github.com/Gaurav-Gosain/pixelcard/internal/server"
	"github.com/Gaurav-Gosain/pixelcard/internal/tcellhost"
	"github.com/Gaurav-Gosain/pixelcard/internal/web"
	"github.com/Gaurav-Gosain/pixelcard/pkg/pixelcard"
)

// setup is the configuration every command resolves before it runs.
type setup struct {
	userConfig *config.UserConfig
	overrides  config.Overrides
	registry   *config.Registry
	cards      []config.CardSpec
	keys       *config.KeybindRegistry
}

// loadSetup loads the user config, applies the CLI flags and builds the
// variant registry and deck.
func loadSetup(cmd *cobra.Command) (*setup, error) {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		log.Warn("failed to load config, using defaults", "err", err)
		userConfig = config.DefaultConfig()
	}

	o := config.Overrides{
		Variant:       variantName,
		Colors:        colorsFlag,
		NoFocus:       noFocus,
		ReducedMotion: reducedMotion,
		BorderStyle:   borderStyle,
		HideHelp:      hideHelp,
		ThemeName:     themeName,
	}
	if cmd.Flags().Changed("gap") {
		if gapFlag < 1 {
			return nil, fmt.Errorf("--gap must be at least 1")
		}
		o.Gap = &gapFlag
	}
	if cmd.Flags().Changed("speed") {
		if speedFlag < 0 || speedFlag > 100 {
			return nil, fmt.Errorf("--speed must be 0-100")
		}
		o.Speed = &speedFlag
	}
	config.ApplyOverrides(o, userConfig)

	s := &setup{
		userConfig: userConfig,
		overrides:  o,
		registry:   config.BuildRegistry(userConfig),
		cards:      o.Cards(userConfig),
		keys:       config.NewKeybindRegistry(userConfig.Keybindings),
	}
	if o.Variant != "" && !s.registry.Has(o.Variant) {
		log.Warn("unknown variant, using default", "variant", o.Variant)
	}
	return s, nil
}

// startLogging sets up the logger. Interactive sessions log to a file;
// servers log to stderr at info level unless configured otherwise.
func startLogging(uc *config.UserConfig, server bool, prefix string) (*log.Logger, func() error, error) {
	level := uc.Log.Level
	if server && (level == "" || level == "off") {
		level = "info"
	}
	if debugMode {
		level = "debug"
	}
	return logging.Setup(logging.Options{
		Level:  level,
		File:   uc.Log.File,
		Stderr: server,
		Prefix: prefix,
	})
}

func runLocal(cmd *cobra.Command) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := startLogging(s.userConfig, false, "")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	if debugMode {
		configPath, _ := config.GetConfigPath()
		logPath, _ := logging.Path(s.userConfig.Log.File)
		logger.Debug("starting", "config", configPath, "log", logPath, "backend", "bubbletea")
	}

	app.SetInputHandler(input.HandleInput)

	model := app.New(app.Options{
		Cards:         s.cards,
		Registry:      s.registry,
		Keys:          s.keys,
		ReducedMotion: config.ReducedMotion,
		ShowHelp:      config.ShowHelp,
		Logger:        logger,
	})

	opts := append(pixelcard.ProgramOptions(), tea.WithoutSignalHandler())
	p := tea.NewProgram(model, opts...)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		<-sigChan
		p.Send(tea.QuitMsg{})
	}()

	finalModel, err := p.Run()
	if final, ok := finalModel.(*app.Model); ok {
		final.Deck.Teardown()
	}
	if err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

func runTcell(cmd *cobra.Command) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := startLogging(s.userConfig, false, "")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	host := tcellhost.New(screen, tcellhost.Options{
		Cards:         s.cards,
		Registry:      s.registry,
		Keys:          s.keys,
		ReducedMotion: config.ReducedMotion,
		ShowHelp:      config.ShowHelp,
		Logger:        logger,
	})
	if err := host.Init(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return host.Run(ctx)
}

func runSSHServer(cmd *cobra.Command, sshHost, sshPort, sshKeyPath string) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := startLogging(s.userConfig, true, "ssh")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	app.SetInputHandler(input.HandleInput)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := &server.SSHServerConfig{
		Host:          sshHost,
		Port:          sshPort,
		KeyPath:       sshKeyPath,
		Cards:         s.cards,
		Registry:      s.registry,
		Keys:          s.keys,
		ReducedMotion: config.ReducedMotion,
		ShowHelp:      config.ShowHelp,
		Logger:        logger,
	}
	if err := server.StartSSHServer(ctx, cfg); err != nil {
		return fmt.Errorf("SSH server error: %w", err)
	}
	return nil
}

func runServe(cmd *cobra.Command, addr string) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := startLogging(s.userConfig, true, "http")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	handler := web.NewCardHandler(s.registry, config.ReducedMotion, logger)
	return web.Serve(ctx, addr, web.NewRouter(handler, logger), logger)
}

type snapshotFlags struct {
	width, height int
	frames        int
	direction     string
	seed          uint64
	label         string
	bare          bool
	png           string
	scale         int
}

func runSnapshot(cmd *cobra.Command, f snapshotFlags) error {
	s, err := loadSetup(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := startLogging(s.userConfig, false, "")
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	dir, err := render.ParseDirection(f.direction)
	if err != nil {
		return err
	}

	width := f.width
	if width == 0 {
		width = config.DefaultSnapshotWidth
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 2 {
			width = min(tw-2, config.MaxRenderDimension)
		}
	}

	spec := s.overrides.Card(config.CardSpec{Label: f.label, Variant: config.VariantDefault})
	res, err := render.Card(cmd.Context(), render.Request{
		Card:          config.Resolve(spec, s.registry),
		Width:         width,
		Height:        f.height,
		Frames:        f.frames,
		Direction:     dir,
		Warmup:        config.DefaultSnapshotFrames,
		Seed:          f.seed,
		ReducedMotion: config.ReducedMotion,
		Logger:        logger,
	})
	if err != nil {
		return err
	}

	if f.png != "" {
		if f.scale < 1 || f.scale > config.MaxPNGScale {
			return fmt.Errorf("--scale must be 1-%d", config.MaxPNGScale)
		}
		// #nosec G304 - path is given by the user
		out, err := os.Create(f.png)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", f.png, err)
		}
		if err := res.PNG(out, f.scale); err != nil {
			_ = out.Close()
			return err
		}
		return out.Close()
	}

	text := res.Framed()
	if f.bare {
		text = res.Text()
	}
	w := colorprofile.NewWriter(os.Stdout, os.Environ())
	_, err = fmt.Fprintln(w, text)
	return err
}
