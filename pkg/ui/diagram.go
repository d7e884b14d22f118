package ui

import (
	_ "embed"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/metrics"
)

//go:embed assets/lungs.txt
var lungArt string

// artLines is the embedded diagram split into rows.
var artLines = strings.Split(strings.TrimRight(lungArt, "\n"), "\n")

// LoadDiagramImage decodes a PNG or JPEG diagram for half-block rendering.
func LoadDiagramImage(path string) (image.Image, error) {
	defer metrics.Timer(metrics.ImageDecode)()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening diagram: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decoding diagram %s: %w", path, err)
	}
	return img, nil
}

type cellMark uint8

const (
	markNone cellMark = iota
	markHover
	markFocus
	markSelected
)

type cell struct {
	ch   rune
	fg   string
	bg   string
	mark cellMark
}

// canvas is the diagram panel's drawing surface, one cell per terminal cell.
type canvas struct {
	w, h  int
	cells []cell
}

func newCanvas(w, h int) *canvas {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	c := &canvas{w: w, h: h, cells: make([]cell, w*h)}
	for i := range c.cells {
		c.cells[i].ch = ' '
	}
	return c
}

func (c *canvas) at(x, y int) *cell {
	if x < 0 || y < 0 || x >= c.w || y >= c.h {
		return nil
	}
	return &c.cells[y*c.w+x]
}

// drawArt samples lines onto the canvas with nearest-neighbor scaling.
func (c *canvas) drawArt(lines []string) {
	if len(lines) == 0 || c.w == 0 || c.h == 0 {
		return
	}
	rows := make([][]rune, len(lines))
	artW := 0
	for i, l := range lines {
		rows[i] = []rune(l)
		if len(rows[i]) > artW {
			artW = len(rows[i])
		}
	}
	if artW == 0 {
		return
	}
	for y := 0; y < c.h; y++ {
		src := rows[y*len(rows)/c.h]
		for x := 0; x < c.w; x++ {
			sx := x * artW / c.w
			if sx < len(src) {
				c.at(x, y).ch = src[sx]
			}
		}
	}
}

// drawImage paints img using upper half blocks: each cell shows two pixel
// rows, the top one as foreground and the bottom one as background.
func (c *canvas) drawImage(img image.Image) {
	if img == nil || c.w == 0 || c.h == 0 {
		return
	}
	dst := image.NewRGBA(image.Rect(0, 0, c.w, c.h*2))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Src, nil)
	for y := 0; y < c.h; y++ {
		for x := 0; x < c.w; x++ {
			top := dst.RGBAAt(x, y*2)
			bottom := dst.RGBAAt(x, y*2+1)
			cl := c.at(x, y)
			cl.ch = '▀'
			cl.fg = fmt.Sprintf("#%02X%02X%02X", top.R, top.G, top.B)
			cl.bg = fmt.Sprintf("#%02X%02X%02X", bottom.R, bottom.G, bottom.B)
		}
	}
}

// fill raises the mark of every cell in r.
func (c *canvas) fill(r atlas.CellRect, mark cellMark) {
	for y := r.Y; y < r.Y+r.H; y++ {
		for x := r.X; x < r.X+r.W; x++ {
			if cl := c.at(x, y); cl != nil && cl.mark < mark {
				cl.mark = mark
			}
		}
	}
}

// outline draws a rounded frame around r. Rectangles too thin for a frame
// are filled instead.
func (c *canvas) outline(r atlas.CellRect, mark cellMark) {
	if r.W < 2 || r.H < 2 {
		c.fill(r, mark)
		return
	}
	b := lipgloss.RoundedBorder()
	set := func(x, y int, s string) {
		cl := c.at(x, y)
		if cl == nil || cl.mark > mark {
			return
		}
		cl.ch = []rune(s)[0]
		cl.fg, cl.bg = "", ""
		cl.mark = mark
	}
	x0, y0 := r.X, r.Y
	x1, y1 := r.X+r.W-1, r.Y+r.H-1
	for x := x0 + 1; x < x1; x++ {
		set(x, y0, b.Top)
		set(x, y1, b.Bottom)
	}
	for y := y0 + 1; y < y1; y++ {
		set(x0, y, b.Left)
		set(x1, y, b.Right)
	}
	set(x0, y0, b.TopLeft)
	set(x1, y0, b.TopRight)
	set(x0, y1, b.BottomLeft)
	set(x1, y1, b.BottomRight)
}

func (c *canvas) style(t Theme, cl cell) lipgloss.Style {
	switch cl.mark {
	case markSelected:
		return t.SelectedSpot
	case markFocus:
		return t.FocusSpot
	case markHover:
		return t.HoverSpot
	}
	if cl.fg == "" && cl.bg == "" {
		return t.Art
	}
	s := t.Renderer.NewStyle()
	if cl.fg != "" {
		s = s.Foreground(lipgloss.Color(cl.fg))
	}
	if cl.bg != "" {
		s = s.Background(lipgloss.Color(cl.bg))
	}
	return s
}

// render returns the canvas as c.h lines of exactly c.w cells. Runs of
// identically styled cells share one escape sequence.
func (c *canvas) render(t Theme) string {
	lines := make([]string, c.h)
	for y := 0; y < c.h; y++ {
		var sb strings.Builder
		var run strings.Builder
		var runCell cell
		flush := func() {
			if run.Len() == 0 {
				return
			}
			sb.WriteString(c.style(t, runCell).Render(run.String()))
			run.Reset()
		}
		for x := 0; x < c.w; x++ {
			cl := *c.at(x, y)
			if run.Len() > 0 && (cl.fg != runCell.fg || cl.bg != runCell.bg || cl.mark != runCell.mark) {
				flush()
			}
			runCell = cl
			run.WriteRune(cl.ch)
		}
		flush()
		lines[y] = sb.String()
	}
	return strings.Join(lines, "\n")
}
