package ui

import (
	"strings"

	"github.com/charmbracelet/glamour"
)

// markdownCache renders region descriptions with glamour, keeping one
// renderer per wrap width and the output per (width, text).
type markdownCache struct {
	style    string
	width    int
	renderer *glamour.TermRenderer
	out      map[string][]string
}

func newMarkdownCache(style string) *markdownCache {
	if style == "" {
		style = "dark"
	}
	return &markdownCache{style: style, out: make(map[string][]string)}
}

func (c *markdownCache) render(text string, width int) ([]string, error) {
	if c.renderer == nil || c.width != width {
		r, err := glamour.NewTermRenderer(
			glamour.WithStandardStyle(c.style),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return nil, err
		}
		c.renderer = r
		c.width = width
		c.out = make(map[string][]string)
	}
	if lines, ok := c.out[text]; ok {
		return lines, nil
	}

	rendered, err := c.renderer.Render(text)
	if err != nil {
		return nil, err
	}
	rendered = strings.Trim(rendered, "\n")
	var lines []string
	for _, l := range strings.Split(rendered, "\n") {
		lines = append(lines, truncateANSI(l, width))
	}
	c.out[text] = lines
	return lines, nil
}
