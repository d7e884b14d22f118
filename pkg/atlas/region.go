// Package atlas holds the immutable catalog of diagram regions.
//
// A catalog is an ordered list of named regions. Each region carries a
// description, two outbound links and a rectangle expressed as percentages
// of the containing box. The rectangle is layout data only: callers project
// it onto whatever surface they draw on (terminal cells, SVG pixels).
package atlas

import (
	"fmt"
	"math"
)

// Rect is a rectangle in percent space (0-100) relative to a container.
type Rect struct {
	Left   float64 `yaml:"left" json:"left"`
	Top    float64 `yaml:"top" json:"top"`
	Width  float64 `yaml:"width" json:"width"`
	Height float64 `yaml:"height" json:"height"`
}

// Contains reports whether the percent point (px, py) lies inside r.
// The left and top edges are inclusive, the right and bottom edges exclusive.
func (r Rect) Contains(px, py float64) bool {
	return px >= r.Left && px < r.Left+r.Width &&
		py >= r.Top && py < r.Top+r.Height
}

// Validate checks that the rectangle has positive area and stays inside the
// container.
func (r Rect) Validate() error {
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: zero area (%gx%g)", ErrInvalidRect, r.Width, r.Height)
	}
	if r.Left < 0 || r.Top < 0 || r.Left+r.Width > 100 || r.Top+r.Height > 100 {
		return fmt.Errorf("%w: %s extends outside 0-100%%", ErrInvalidRect, r)
	}
	return nil
}

func (r Rect) String() string {
	return fmt.Sprintf("left=%g%% top=%g%% width=%g%% height=%g%%", r.Left, r.Top, r.Width, r.Height)
}

// CellRect is a rectangle on an integer grid (terminal cells or pixels).
type CellRect struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside c.
func (c CellRect) Contains(x, y int) bool {
	return x >= c.X && x < c.X+c.W && y >= c.Y && y < c.Y+c.H
}

// Empty reports whether c covers no cells.
func (c CellRect) Empty() bool {
	return c.W <= 0 || c.H <= 0
}

// Scale projects r onto a w×h grid. Edges are rounded to the nearest cell,
// the result is clamped to the grid and is never smaller than 1×1 so that
// tiny regions stay clickable on small terminals.
func (r Rect) Scale(w, h int) CellRect {
	if w <= 0 || h <= 0 {
		return CellRect{}
	}
	x0 := int(math.Round(r.Left * float64(w) / 100))
	y0 := int(math.Round(r.Top * float64(h) / 100))
	x1 := int(math.Round((r.Left + r.Width) * float64(w) / 100))
	y1 := int(math.Round((r.Top + r.Height) * float64(h) / 100))

	x0 = clamp(x0, 0, w-1)
	y0 = clamp(y0, 0, h-1)
	x1 = clamp(x1, x0+1, w)
	y1 = clamp(y1, y0+1, h)

	return CellRect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Region is one named area of the diagram.
type Region struct {
	Name         string `yaml:"name" json:"name"`
	Description  string `yaml:"description" json:"description"`
	LearnMoreURL string `yaml:"learn_more_url" json:"learn_more_url"`
	VideoURL     string `yaml:"video_url" json:"video_url"`
	Position     Rect   `yaml:"position" json:"position"`
}

// ResourceKind classifies a resource card.
type ResourceKind string

const (
	ResourcePresentation ResourceKind = "presentation"
	ResourceDocument     ResourceKind = "document"
)

// Resource is an inert link card shown below the diagram.
type Resource struct {
	Title   string       `yaml:"title" json:"title"`
	Summary string       `yaml:"summary" json:"summary"`
	URL     string       `yaml:"url" json:"url"`
	Kind    ResourceKind `yaml:"kind" json:"kind"`
}
