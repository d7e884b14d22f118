package ui

import (
	"os"

	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/lipgloss"
)

// TermProfile holds the detected terminal color profile. Computed once at
// package init so every style helper can branch without re-detecting.
var TermProfile colorprofile.Profile

func init() {
	TermProfile = colorprofile.Detect(os.Stdout, os.Environ())
}

// ThemeFg returns c on ANSI256 and TrueColor terminals and the 16-color
// fallback on anything smaller.
func ThemeFg(p colorprofile.Profile, c lipgloss.TerminalColor, fallback lipgloss.ANSIColor) lipgloss.TerminalColor {
	if p < colorprofile.ANSI256 {
		return fallback
	}
	return c
}

// ThemeBg is like ThemeFg but returns lipgloss.NoColor{} when the terminal
// has no colors at all.
func ThemeBg(p colorprofile.Profile, c lipgloss.TerminalColor, fallback lipgloss.ANSIColor) lipgloss.TerminalColor {
	switch {
	case p >= colorprofile.ANSI256:
		return c
	case p == colorprofile.ANSI:
		return fallback
	default:
		return lipgloss.NoColor{}
	}
}

// Theme holds the pre-computed styles for one renderer.
type Theme struct {
	Renderer *lipgloss.Renderer

	Title        lipgloss.Style
	Subtitle     lipgloss.Style
	Panel        lipgloss.Style
	ActivePanel  lipgloss.Style
	Placeholder  lipgloss.Style
	RegionName   lipgloss.Style
	Body         lipgloss.Style
	LearnButton  lipgloss.Style
	VideoButton  lipgloss.Style
	LinkHost     lipgloss.Style
	Card         lipgloss.Style
	CardTitle    lipgloss.Style
	CardSummary  lipgloss.Style
	Art          lipgloss.Style
	HoverSpot    lipgloss.Style
	FocusSpot    lipgloss.Style
	SelectedSpot lipgloss.Style
	Status       lipgloss.Style
	StatusError  lipgloss.Style
	Legend       lipgloss.Style
}

// DefaultTheme returns the standard Dracula-inspired theme (adaptive) for
// the detected terminal profile.
func DefaultTheme(r *lipgloss.Renderer) Theme {
	return ThemeFor(r, TermProfile)
}

// ThemeFor builds the theme for profile p. Buttons and hotspot marks drop
// to the 16 base colors below ANSI256, and hover falls back to reverse
// video when there is no background color.
func ThemeFor(r *lipgloss.Renderer, p colorprofile.Profile) Theme {
	t := Theme{Renderer: r}

	t.Title = r.NewStyle().Foreground(ColorPrimary).Bold(true)
	t.Subtitle = r.NewStyle().Foreground(ColorMuted)

	t.Panel = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder)
	t.ActivePanel = t.Panel.BorderForeground(ColorPrimary)

	t.Placeholder = r.NewStyle().Foreground(ColorMuted).Italic(true)
	t.RegionName = r.NewStyle().Foreground(ColorText).Bold(true)
	t.Body = r.NewStyle().Foreground(ColorSubtext)

	button := r.NewStyle().Foreground(ThemeFg(p, ColorOnLabel, 15)).Bold(true).Padding(0, 1)
	t.LearnButton = button.Background(ThemeBg(p, ColorLearn, 4))
	t.VideoButton = button.Background(ThemeBg(p, ColorVideo, 1))
	if p < colorprofile.ANSI {
		t.LearnButton = t.LearnButton.Reverse(true)
		t.VideoButton = t.VideoButton.Reverse(true)
	}
	t.LinkHost = r.NewStyle().Foreground(ColorMuted)

	t.Card = r.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1)
	t.CardTitle = r.NewStyle().Foreground(ColorText).Bold(true)
	t.CardSummary = r.NewStyle().Foreground(ColorSubtext)

	t.Art = r.NewStyle().Foreground(ColorSubtext)
	t.HoverSpot = r.NewStyle().
		Foreground(ThemeFg(p, ColorHover, 12)).
		Background(ThemeBg(p, ColorHighlight, 4)).
		Reverse(p < colorprofile.ANSI)
	t.FocusSpot = r.NewStyle().Foreground(ThemeFg(p, ColorHover, 12)).Bold(true)
	t.SelectedSpot = r.NewStyle().Foreground(ThemeFg(p, ColorSelected, 11)).Bold(true)

	t.Status = r.NewStyle().Foreground(ColorSuccess)
	t.StatusError = r.NewStyle().Foreground(ColorDanger).Bold(true)
	t.Legend = r.NewStyle().Foreground(ColorMuted)

	return t
}

// TestTheme returns a theme suitable for use in tests.
func TestTheme() Theme {
	return DefaultTheme(lipgloss.NewRenderer(os.Stdout))
}
