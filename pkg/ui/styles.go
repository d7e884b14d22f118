package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// ══════════════════════════════════════════════════════════════════════════════
// COLOR PALETTE - Adaptive colors for light and dark terminals
// ══════════════════════════════════════════════════════════════════════════════

var (
	ColorText      = lipgloss.AdaptiveColor{Light: "#1A1A1A", Dark: "#F8F8F2"}
	ColorSubtext   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BFBFBF"}
	ColorMuted     = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#6272A4"}
	ColorBorder    = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#44475A"}
	ColorPrimary   = lipgloss.AdaptiveColor{Light: "#6B47D9", Dark: "#BD93F9"}
	ColorHighlight = lipgloss.AdaptiveColor{Light: "#CCE5FF", Dark: "#1A2A44"}
	ColorDanger    = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#FF5555"}
	ColorSuccess   = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}

	// Button colors mirror the two outbound link kinds.
	ColorLearn   = lipgloss.AdaptiveColor{Light: "#2684FF", Dark: "#4C9AFF"} // blue
	ColorVideo   = lipgloss.AdaptiveColor{Light: "#CC0000", Dark: "#E5493A"} // red
	ColorOnLabel = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	// Hotspot overlay
	ColorHover    = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#6699FF"}
	ColorSelected = lipgloss.AdaptiveColor{Light: "#B06800", Dark: "#FFB86C"}

	// Resource card icons
	ColorPresentation = lipgloss.AdaptiveColor{Light: "#0066CC", Dark: "#8BE9FD"}
	ColorDocument     = lipgloss.AdaptiveColor{Light: "#007700", Dark: "#50FA7B"}
)

// Layout constants (in cells).
const (
	// SplitViewThreshold is the width at which the diagram and the detail
	// panel sit side by side instead of stacked.
	SplitViewThreshold = 90
	headerHeight       = 2
	resourcesHeight    = 4
	statusHeight       = 1
	panelGap           = 1
	minDiagramHeight   = 6
)
