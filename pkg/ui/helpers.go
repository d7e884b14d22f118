package ui

import (
	"net/url"
	"strings"

	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// truncateRunesHelper truncates a string to max visual width (cells), adding suffix if needed.
// Uses go-runewidth to handle wide characters correctly.
func truncateRunesHelper(s string, maxWidth int, suffix string) string {
	if maxWidth <= 0 {
		return ""
	}

	width := runewidth.StringWidth(s)
	if width <= maxWidth {
		return s
	}

	suffixWidth := runewidth.StringWidth(suffix)
	if suffixWidth > maxWidth {
		return runewidth.Truncate(suffix, maxWidth, "")
	}

	return runewidth.Truncate(s, maxWidth-suffixWidth, "") + suffix
}

// truncate truncates string s to maxWidth cells.
func truncate(s string, maxWidth int) string {
	return truncateRunesHelper(s, maxWidth, "…")
}

// hyperlink wraps label in an OSC 8 hyperlink pointing at target.
// Terminals without OSC 8 support show the label only.
func hyperlink(target, label string) string {
	if target == "" {
		return label
	}
	return ansi.SetHyperlink(target) + label + ansi.ResetHyperlink()
}

// linkHost returns a short display form of target: the host for web links,
// the path otherwise.
func linkHost(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}
	return strings.TrimPrefix(u.Host, "www.")
}

// wrapText word-wraps s to width cells and returns the lines.
func wrapText(s string, width int) []string {
	if width <= 0 {
		return nil
	}
	wrapped := ansi.Wrap(s, width, "")
	return strings.Split(wrapped, "\n")
}

// truncateANSI cuts a styled string to width visible cells, keeping its
// escape sequences intact.
func truncateANSI(s string, width int) string {
	if ansi.StringWidth(s) <= width {
		return s
	}
	return ansi.Truncate(s, width, "")
}
