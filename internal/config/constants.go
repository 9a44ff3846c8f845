// Package config provides pixelcard's constants, card variants and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Card Layout
// =============================================================================

const (
	// MinCardWidth is the narrowest a card may be laid out, border included.
	MinCardWidth = 24

	// MinCardHeight is the shortest a card may be laid out, border included.
	MinCardHeight = 5

	// MaxCardHeight caps card height so wide terminals get wide cards, not tall ones.
	MaxCardHeight = 14

	// CardMargin is the gap in cells between neighbouring cards.
	CardMargin = 1

	// HelpHeight is the number of rows reserved for the key hint line.
	HelpHeight = 1
)

// =============================================================================
// Frame Scheduling
// =============================================================================

const (
	// SchedulerFPS is how often hosts deliver frame callbacks. It is above the
	// engine's 60 FPS cap so the cap, not timer jitter, sets the logical rate.
	SchedulerFPS = 120

	// FrameTick is the delay between two scheduled frame callbacks.
	FrameTick = time.Second / SchedulerFPS
)

// =============================================================================
// Headless Rendering
// =============================================================================

const (
	// DefaultSnapshotWidth is the card width in cells when none is given
	// and the terminal size is unknown.
	DefaultSnapshotWidth = 40

	// DefaultSnapshotHeight is the card height in cells.
	DefaultSnapshotHeight = 10

	// DefaultSnapshotFrames is how many frames a snapshot advances (1.5s).
	DefaultSnapshotFrames = 90

	// MaxRenderDimension bounds headless render width and height in cells.
	MaxRenderDimension = 400

	// MaxRenderFrames bounds how many frames a headless render may advance.
	MaxRenderFrames = 3000

	// MaxRenderWork bounds cells times frames for one headless render.
	MaxRenderWork = 10_000_000

	// MaxPNGPixels bounds the image size of a PNG render (2048x2048).
	MaxPNGPixels = 2048 * 2048

	// DefaultPNGScale is the edge in image pixels of one dot in PNG renders.
	DefaultPNGScale = 4

	// MaxPNGScale bounds the PNG dot edge.
	MaxPNGScale = 16
)

// =============================================================================
// Servers
// =============================================================================

const (
	// DefaultSSHHost is the default SSH listen host.
	DefaultSSHHost = "localhost"

	// DefaultSSHPort is the default SSH listen port.
	DefaultSSHPort = "2323"

	// DefaultHTTPAddr is the default render service address.
	DefaultHTTPAddr = ":8080"

	// SSHIdleTimeout disconnects sessions with no input.
	SSHIdleTimeout = 30 * time.Minute

	// ShutdownTimeout bounds graceful server shutdown.
	ShutdownTimeout = 30 * time.Second

	// HTTPReadHeaderTimeout bounds how long a client may take to send headers.
	HTTPReadHeaderTimeout = 5 * time.Second
)

// =============================================================================
// Runtime Settings
// =============================================================================

// These are resolved from the user config and CLI flags by ApplyOverrides.
var (
	// BorderStyle is the card border style name.
	BorderStyle = "rounded"

	// ReducedMotion disables the ripple delay and the shimmer.
	ReducedMotion = false

	// ShowHelp shows the key hint line below the cards.
	ShowHelp = true
)

// BorderStyles lists the accepted border style names.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "block", "ascii", "hidden"}

// GetBorderForStyle returns the lipgloss border for a style name, falling
// back to rounded.
func GetBorderForStyle(style string) lipgloss.Border {
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "ascii":
		return lipgloss.ASCIIBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	default:
		return lipgloss.RoundedBorder()
	}
}
