package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"html"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"git.sr.ht/~sbinet/gg"
	"github.com/ajstarks/svgo"
	"github.com/charmbracelet/x/ansi"
	"golang.org/x/image/draw"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/sync/errgroup"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/debug"
	"github.com/vanderheijden86/lungmap/pkg/metrics"
)

// Snapshot formats.
const (
	FormatSVG      = "svg"
	FormatPNG      = "png"
	FormatMarkdown = "md"
)

// Common errors.
var (
	ErrNoCatalog         = errors.New("catalog is required for snapshot export")
	ErrNoPath            = errors.New("output path is required")
	ErrUnsupportedFormat = errors.New("unsupported snapshot format")
	ErrUnknownRegion     = errors.New("selected region not in catalog")
)

// SnapshotOptions controls diagram snapshot export.
type SnapshotOptions struct {
	Path     string         // Output path; format inferred from extension when Format empty
	Format   string         // "svg", "png" or "md" (case-insensitive)
	Catalog  *atlas.Catalog // Regions and resources to draw
	Selected string         // Optional region name drawn highlighted with its detail block
	Image    image.Image    // Optional diagram drawn behind the hotspots (PNG only)
	Width    int            // Diagram width in pixels; defaults to 640
	Height   int            // Diagram height in pixels; defaults to 480
}

// Page geometry in pixels.
const (
	defaultDiagramW = 640
	defaultDiagramH = 480
	pageMargin      = 24
	headerH         = 56
	sidebarW        = 300
	legendRowH      = 18
	resourceRowH    = 20
)

var (
	colorBackdrop  = color.RGBA{R: 0xf8, G: 0xf9, B: 0xfb, A: 0xff}
	colorHeaderBG  = color.RGBA{R: 0xe8, G: 0xec, B: 0xf4, A: 0xff}
	colorDiagramBG = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	colorStroke    = color.RGBA{R: 0x44, G: 0x47, B: 0x5a, A: 0xff}
	colorHotspot   = color.RGBA{R: 0x66, G: 0x99, B: 0xff, A: 0xff}
	colorSelected  = color.RGBA{R: 0xff, G: 0xb8, B: 0x6c, A: 0xff}
	colorText      = color.RGBA{R: 0x1a, G: 0x1a, B: 0x1a, A: 0xff}
	colorSubtle    = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xff}
	colorLearn     = color.RGBA{R: 0x26, G: 0x84, B: 0xff, A: 0xff}
	colorVideo     = color.RGBA{R: 0xcc, G: 0x00, B: 0x00, A: 0xff}
)

// SaveSnapshot renders a static picture of the diagram with every hotspot
// outlined and numbered, a legend, the resources and, when a region is
// selected, its detail block. SVG output keeps the hotspots and links
// clickable; outbound links open in a new browsing context without an
// opener reference.
func SaveSnapshot(opts SnapshotOptions) error {
	defer metrics.Timer(metrics.SnapshotSave)()

	if opts.Catalog == nil {
		return ErrNoCatalog
	}
	if opts.Path == "" {
		return ErrNoPath
	}
	format, err := resolveFormat(opts.Format, opts.Path)
	if err != nil {
		return err
	}

	layout, err := buildLayout(opts)
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	switch format {
	case FormatSVG:
		err = renderSVGToWriter(&buf, layout)
	case FormatPNG:
		err = renderPNGToWriter(&buf, layout, opts.Image)
	case FormatMarkdown:
		err = renderMarkdownToWriter(&buf, layout)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}

	if err := writeFileAtomic(opts.Path, buf.Bytes()); err != nil {
		return err
	}
	debug.Log("export: wrote %s snapshot %s (%d bytes)", format, opts.Path, buf.Len())
	return nil
}

// SaveSnapshots renders several snapshots concurrently. The first failure
// cancels the snapshots not yet started.
func SaveSnapshots(ctx context.Context, all []SnapshotOptions) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, opts := range all {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := SaveSnapshot(opts); err != nil {
				return fmt.Errorf("%s: %w", opts.Path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func resolveFormat(format, path string) (string, error) {
	format = strings.ToLower(strings.TrimPrefix(format, "."))
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".png":
			format = FormatPNG
		case ".md", ".markdown":
			format = FormatMarkdown
		default:
			format = FormatSVG
		}
	}
	switch format {
	case FormatSVG, FormatPNG, FormatMarkdown:
		return format, nil
	case "markdown":
		return FormatMarkdown, nil
	}
	return "", fmt.Errorf("%w %q (want svg, png or md)", ErrUnsupportedFormat, format)
}

func writeFileAtomic(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}

// --- layout computation ----------------------------------------------------

type layoutSpot struct {
	Number   int
	Region   atlas.Region
	X, Y     int
	W, H     int
	Selected bool
}

type layoutResult struct {
	Title     string
	Width     int
	Height    int
	DiagramX  int
	DiagramY  int
	DiagramW  int
	DiagramH  int
	SidebarX  int
	Spots     []layoutSpot
	Selected  *layoutSpot
	Resources []atlas.Resource
}

func buildLayout(opts SnapshotOptions) (layoutResult, error) {
	cat := opts.Catalog
	dw, dh := opts.Width, opts.Height
	if dw <= 0 {
		dw = defaultDiagramW
	}
	if dh <= 0 {
		dh = defaultDiagramH
	}

	l := layoutResult{
		Title:     cat.Title(),
		DiagramX:  pageMargin,
		DiagramY:  headerH + pageMargin,
		DiagramW:  dw,
		DiagramH:  dh,
		Resources: cat.Resources(),
	}
	l.SidebarX = l.DiagramX + dw + pageMargin
	l.Width = l.SidebarX + sidebarW + pageMargin

	selected := -1
	if opts.Selected != "" {
		selected = cat.Index(opts.Selected)
		if selected < 0 {
			return layoutResult{}, fmt.Errorf("%w: %q", ErrUnknownRegion, opts.Selected)
		}
	}

	for i, r := range cat.Regions() {
		cr := r.Position.Scale(dw, dh)
		l.Spots = append(l.Spots, layoutSpot{
			Number:   i + 1,
			Region:   r,
			X:        l.DiagramX + cr.X,
			Y:        l.DiagramY + cr.Y,
			W:        cr.W,
			H:        cr.H,
			Selected: i == selected,
		})
	}
	if selected >= 0 {
		l.Selected = &l.Spots[selected]
	}

	bottom := l.resourcesY()
	if len(l.Resources) > 0 {
		bottom += 24 + len(l.Resources)*resourceRowH
	}
	l.Height = bottom + pageMargin
	return l, nil
}

// resourcesY is the top of the resources block, below both the diagram and
// the sidebar.
func (l layoutResult) resourcesY() int {
	sidebarH := len(l.Spots)*legendRowH + 40
	if l.Selected != nil {
		sidebarH += 200
	}
	return max(l.DiagramY+l.DiagramH, l.DiagramY+sidebarH) + pageMargin
}

// --- SVG --------------------------------------------------------------------

// openExternal writes the opening tag of an anchor that opens href in a new
// browsing context with no opener or referrer.
func openExternal(w io.Writer, href, title string) {
	h := html.EscapeString(href)
	fmt.Fprintf(w, `<a href="%s" xlink:href="%s" target="_blank" rel="noopener noreferrer">`+"\n", h, h)
	if title != "" {
		fmt.Fprintf(w, "<title>%s</title>\n", html.EscapeString(title))
	}
}

func renderSVGToWriter(w io.Writer, layout layoutResult) error {
	canvas := svg.New(w)
	canvas.Start(layout.Width, layout.Height)
	canvas.Rect(0, 0, layout.Width, layout.Height, fmt.Sprintf("fill:%s", css(colorBackdrop)))
	canvas.Roundrect(16, 16, layout.Width-32, headerH-16, 10, 10, fmt.Sprintf("fill:%s", css(colorHeaderBG)))
	canvas.Text(32, 44, layout.Title, fmt.Sprintf("fill:%s;font-size:18px;font-family:sans-serif;font-weight:bold", css(colorText)))

	canvas.Rect(layout.DiagramX, layout.DiagramY, layout.DiagramW, layout.DiagramH,
		fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1", css(colorDiagramBG), css(colorStroke)))

	for _, s := range layout.Spots {
		stroke, fill := colorHotspot, "fill-opacity:0.08"
		if s.Selected {
			stroke, fill = colorSelected, "fill-opacity:0.35"
		}
		openExternal(canvas.Writer, s.Region.LearnMoreURL, s.Region.Name)
		canvas.Rect(s.X, s.Y, s.W, s.H,
			fmt.Sprintf("fill:%s;%s;stroke:%s;stroke-width:2", css(stroke), fill, css(stroke)))
		canvas.Text(s.X+4, s.Y+14, fmt.Sprint(s.Number),
			fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:bold", css(colorText)))
		canvas.LinkEnd()
	}

	drawLegendSVG(canvas, layout)
	if layout.Selected != nil {
		drawDetailSVG(canvas, layout)
	}
	drawResourcesSVG(canvas, layout)

	canvas.End()
	return nil
}

func drawLegendSVG(canvas *svg.SVG, layout layoutResult) {
	x := layout.SidebarX
	y := layout.DiagramY + 16
	canvas.Text(x, y, "Regions", fmt.Sprintf("fill:%s;font-size:14px;font-family:sans-serif;font-weight:bold", css(colorText)))
	for i, s := range layout.Spots {
		style := fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace", css(colorSubtle))
		if s.Selected {
			style = fmt.Sprintf("fill:%s;font-size:12px;font-family:monospace;font-weight:bold", css(colorText))
		}
		canvas.Text(x, y+(i+1)*legendRowH, fmt.Sprintf("%d. %s", s.Number, s.Region.Name), style)
	}
}

func drawDetailSVG(canvas *svg.SVG, layout layoutResult) {
	s := layout.Selected
	x := layout.SidebarX
	y := layout.DiagramY + (len(layout.Spots)+2)*legendRowH + 16
	canvas.Text(x, y, s.Region.Name, fmt.Sprintf("fill:%s;font-size:15px;font-family:sans-serif;font-weight:bold", css(colorText)))
	lines := wrapWords(s.Region.Description, 40)
	for i, line := range lines {
		canvas.Text(x, y+18+i*16, line, fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif", css(colorSubtle)))
	}
	by := y + 18 + len(lines)*16 + 8
	drawButtonSVG(canvas, x, by, "Learn More", s.Region.LearnMoreURL, colorLearn)
	drawButtonSVG(canvas, x+110, by, "Watch Video", s.Region.VideoURL, colorVideo)
}

func drawButtonSVG(canvas *svg.SVG, x, y int, label, href string, c color.RGBA) {
	if href == "" {
		return
	}
	openExternal(canvas.Writer, href, label)
	canvas.Roundrect(x, y, 100, 24, 6, 6, fmt.Sprintf("fill:%s", css(c)))
	canvas.Text(x+50, y+16, label, "fill:#ffffff;font-size:12px;font-family:sans-serif;font-weight:bold;text-anchor:middle")
	canvas.LinkEnd()
}

func drawResourcesSVG(canvas *svg.SVG, layout layoutResult) {
	if len(layout.Resources) == 0 {
		return
	}
	y := layout.resourcesY()
	canvas.Text(pageMargin, y+12, "Additional Resources", fmt.Sprintf("fill:%s;font-size:14px;font-family:sans-serif;font-weight:bold", css(colorText)))
	for i, res := range layout.Resources {
		ry := y + 24 + (i+1)*resourceRowH - 6
		openExternal(canvas.Writer, res.URL, res.Title)
		canvas.Text(pageMargin, ry, res.Title+": "+res.Summary,
			fmt.Sprintf("fill:%s;font-size:12px;font-family:sans-serif;text-decoration:underline", css(colorLearn)))
		canvas.LinkEnd()
	}
}

// --- PNG --------------------------------------------------------------------

func renderPNGToWriter(w io.Writer, layout layoutResult, img image.Image) error {
	dc := gg.NewContext(layout.Width, layout.Height)
	dc.SetColor(colorBackdrop)
	dc.Clear()

	dc.SetColor(colorHeaderBG)
	dc.DrawRoundedRectangle(16, 16, float64(layout.Width)-32, headerH-16, 10)
	dc.Fill()

	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(layout.Title, 32, 36, 0, 0.5)

	dc.SetColor(colorDiagramBG)
	dc.DrawRectangle(float64(layout.DiagramX), float64(layout.DiagramY), float64(layout.DiagramW), float64(layout.DiagramH))
	dc.Fill()
	if img != nil {
		scaled := image.NewRGBA(image.Rect(0, 0, layout.DiagramW, layout.DiagramH))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)
		dc.DrawImage(scaled, layout.DiagramX, layout.DiagramY)
	}
	dc.SetColor(colorStroke)
	dc.SetLineWidth(1)
	dc.DrawRectangle(float64(layout.DiagramX), float64(layout.DiagramY), float64(layout.DiagramW), float64(layout.DiagramH))
	dc.Stroke()

	for _, s := range layout.Spots {
		drawSpot(dc, s)
	}

	drawLegend(dc, layout)
	if layout.Selected != nil {
		drawDetail(dc, layout)
	}
	drawResources(dc, layout)

	return dc.EncodePNG(w)
}

func drawSpot(dc *gg.Context, s layoutSpot) {
	c := colorHotspot
	if s.Selected {
		c = colorSelected
		dc.SetRGBA(float64(c.R)/255, float64(c.G)/255, float64(c.B)/255, 0.35)
		dc.DrawRectangle(float64(s.X), float64(s.Y), float64(s.W), float64(s.H))
		dc.Fill()
	}
	dc.SetColor(c)
	dc.SetLineWidth(2)
	dc.DrawRectangle(float64(s.X), float64(s.Y), float64(s.W), float64(s.H))
	dc.Stroke()
	dc.SetColor(colorText)
	dc.DrawStringAnchored(fmt.Sprint(s.Number), float64(s.X+4), float64(s.Y+10), 0, 0.5)
}

func drawLegend(dc *gg.Context, layout layoutResult) {
	x := float64(layout.SidebarX)
	y := float64(layout.DiagramY + 16)
	dc.SetColor(colorText)
	dc.DrawStringAnchored("Regions", x, y, 0, 0.5)
	for i, s := range layout.Spots {
		dc.SetColor(colorSubtle)
		if s.Selected {
			dc.SetColor(colorText)
		}
		dc.DrawStringAnchored(fmt.Sprintf("%d. %s", s.Number, s.Region.Name), x, y+float64((i+1)*legendRowH), 0, 0.5)
	}
}

func drawDetail(dc *gg.Context, layout layoutResult) {
	s := layout.Selected
	x := float64(layout.SidebarX)
	y := float64(layout.DiagramY + (len(layout.Spots)+2)*legendRowH + 16)
	dc.SetColor(colorText)
	dc.DrawStringAnchored(s.Region.Name, x, y, 0, 0.5)
	dc.SetColor(colorSubtle)
	lines := wrapWords(s.Region.Description, 40)
	for i, line := range lines {
		dc.DrawStringAnchored(line, x, y+18+float64(i*16), 0, 0.5)
	}
	by := y + 18 + float64(len(lines)*16)
	drawButton(dc, x, by, "Learn More", colorLearn)
	drawButton(dc, x+110, by, "Watch Video", colorVideo)
}

func drawButton(dc *gg.Context, x, y float64, label string, c color.RGBA) {
	dc.SetColor(c)
	dc.DrawRoundedRectangle(x, y, 100, 24, 6)
	dc.Fill()
	dc.SetColor(color.White)
	dc.DrawStringAnchored(label, x+50, y+12, 0.5, 0.5)
}

func drawResources(dc *gg.Context, layout layoutResult) {
	if len(layout.Resources) == 0 {
		return
	}
	y := float64(layout.resourcesY())
	dc.SetColor(colorText)
	dc.DrawStringAnchored("Additional Resources", pageMargin, y+8, 0, 0.5)
	dc.SetColor(colorSubtle)
	for i, res := range layout.Resources {
		dc.DrawStringAnchored(truncate(res.Title+": "+res.Summary, 100), pageMargin, y+24+float64((i+1)*resourceRowH)-10, 0, 0.5)
	}
}

// --- Markdown ---------------------------------------------------------------

func renderMarkdownToWriter(w io.Writer, layout layoutResult) error {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", layout.Title)
	if s := layout.Selected; s != nil {
		fmt.Fprintf(&sb, "## %s\n\n%s\n\n", s.Region.Name, s.Region.Description)
		fmt.Fprintf(&sb, "[Learn More](%s) · [Watch Video](%s)\n\n", s.Region.LearnMoreURL, s.Region.VideoURL)
	}
	sb.WriteString("## Regions\n\n")
	sb.WriteString("| # | Region | Position | Links |\n")
	sb.WriteString("|---|--------|----------|-------|\n")
	for _, s := range layout.Spots {
		fmt.Fprintf(&sb, "| %d | %s | %s | [Learn More](%s) · [Watch Video](%s) |\n",
			s.Number, escapeTableCell(s.Region.Name), s.Region.Position, s.Region.LearnMoreURL, s.Region.VideoURL)
	}
	if len(layout.Resources) > 0 {
		sb.WriteString("\n## Additional Resources\n\n")
		for _, res := range layout.Resources {
			fmt.Fprintf(&sb, "- [%s](%s): %s\n", res.Title, res.URL, res.Summary)
		}
	}
	_, err := io.WriteString(w, sb.String())
	return err
}

// --- helpers ---------------------------------------------------------------

func escapeTableCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// wrapWords breaks s into lines of at most width display cells at spaces.
func wrapWords(s string, width int) []string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" || width <= 0 {
		return nil
	}
	lines := strings.Split(ansi.Wrap(s, width, ""), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

func css(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
