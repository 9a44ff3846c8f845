// Package server serves the card deck over SSH, one deck per session.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"

	tea "charm.land/bubbletea/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"

	"github.com/Gaurav-Gosain/pixelcard/internal/app"
	"github.com/Gaurav-Gosain/pixelcard/internal/config"
)

// SSHServerConfig holds the SSH server configuration.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string

	Cards         []config.CardSpec
	Registry      *config.Registry
	Keys          *config.KeybindRegistry
	ReducedMotion bool
	ShowHelp      bool
	Logger        *log.Logger
}

// DefaultHostKeyPath is where the host key is generated when none is given.
func DefaultHostKeyPath() (string, error) {
	path, err := xdg.DataFile("pixelcard/ssh_host_ed25519")
	if err != nil {
		return "", fmt.Errorf("failed to resolve host key path: %w", err)
	}
	return path, nil
}

// NewSSHServer builds the wish server for cfg.
func NewSSHServer(cfg *SSHServerConfig) (*ssh.Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.KeyPath == "" {
		path, err := DefaultHostKeyPath()
		if err != nil {
			return nil, err
		}
		cfg.KeyPath = path
	}

	s, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithIdleTimeout(config.SSHIdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(cfg.teaHandler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(cfg.Logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}
	return s, nil
}

// StartSSHServer serves until ctx is cancelled, then shuts down gracefully.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	s, err := NewSSHServer(cfg)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Logger.Info("starting SSH server", "addr", s.Addr, "key", cfg.KeyPath)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("SSH server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	cfg.Logger.Info("stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("SSH server shutdown: %w", err)
	}
	return nil
}

// teaHandler gives every session its own deck. The middleware sends the
// session's window size as the first message.
func (cfg *SSHServerConfig) teaHandler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	logger := cfg.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
	pty, _, _ := sess.Pty()
	logger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)
	return cfg.sessionProgram(logger)
}

// sessionProgram returns a session's model with the same program options a
// local run uses, so motion inside a card is filtered before Update.
func (cfg *SSHServerConfig) sessionProgram(logger *log.Logger) (tea.Model, []tea.ProgramOption) {
	return cfg.NewModel(logger), app.ProgramOptions()
}

// NewModel creates a fresh deck model for one session.
func (cfg *SSHServerConfig) NewModel(logger *log.Logger) *app.Model {
	return app.New(app.Options{
		Cards:         cfg.Cards,
		Registry:      cfg.Registry,
		Keys:          cfg.Keys,
		ReducedMotion: cfg.ReducedMotion,
		ShowHelp:      cfg.ShowHelp,
		Logger:        logger,
	})
}
