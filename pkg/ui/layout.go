package ui

import (
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/scene"
)

const placeholderText = "Click on different parts of the lung diagram to learn more."

// Detail link element names.
const (
	linkLearn = "learn"
	linkVideo = "video"
)

// frame is everything one View paints, positioned in screen cells. It is a
// pure function of the model so Update can rebuild exactly what the user
// is looking at before resolving a pointer.
type frame struct {
	split bool

	header    scene.Bounds
	diagram   scene.Bounds
	detail    scene.Bounds
	resources scene.Bounds
	footer    scene.Bounds

	// hotspots are in canvas coordinates (inside the diagram border).
	hotspots      []atlas.CellRect
	detailContent []string
	cards         []scene.Bounds

	tree    *scene.Tree
	hotspot map[scene.ElementID]int
	links   map[scene.ElementID]string
}

func (f frame) canvasSize() (int, int) {
	return max(f.diagram.W-2, 0), max(f.diagram.H-2, 0)
}

// detailInnerWidth is the text width inside the detail panel's border and
// padding.
func detailInnerWidth(b scene.Bounds) int {
	return max(b.W-4, 1)
}

func (m Model) footerHeight() int {
	if m.showHelp {
		h := 0
		for _, col := range m.keys.FullHelp() {
			h = max(h, len(col))
		}
		return h + statusHeight
	}
	return 1 + statusHeight
}

// computeFrame lays out the screen for the current size, catalog and
// selection, and registers every painted element in a fresh scene tree.
func (m Model) computeFrame() frame {
	w, h := max(m.width, 1), max(m.height, 1)
	cat := m.sess.catalog
	resources := cat.Resources()

	var f frame
	f.tree = scene.NewTree(w, h)
	f.hotspot = make(map[scene.ElementID]int, cat.Len())
	f.links = make(map[scene.ElementID]string)

	resH := 0
	if len(resources) > 0 {
		resH = resourcesHeight
	}
	footH := m.footerHeight()
	mainH := max(h-headerHeight-resH-footH, minDiagramHeight)

	f.header = scene.Bounds{X: 0, Y: 0, W: w, H: headerHeight}
	mainY := headerHeight
	f.split = w >= SplitViewThreshold

	var detailLinks []detailLink
	if f.split {
		diagW := int(math.Round(float64(w) * m.cfg.ClampedSplitRatio()))
		f.diagram = scene.Bounds{X: 0, Y: mainY, W: diagW, H: mainH}
		f.detail = scene.Bounds{X: diagW + panelGap, Y: mainY, W: w - diagW - panelGap, H: mainH}
		f.detailContent, detailLinks = m.detailContent(detailInnerWidth(f.detail))
	} else {
		// The detail panel takes the rows its content needs and the
		// diagram keeps the rest, never less than minDiagramHeight.
		f.detailContent, detailLinks = m.detailContent(detailInnerWidth(scene.Bounds{W: w}))
		diagH := max(mainH-len(f.detailContent)-2, minDiagramHeight)
		detH := max(mainH-diagH, 3)
		f.diagram = scene.Bounds{X: 0, Y: mainY, W: w, H: diagH}
		f.detail = scene.Bounds{X: 0, Y: mainY + diagH, W: w, H: detH}
		mainH = diagH + detH
	}
	f.resources = scene.Bounds{X: 0, Y: mainY + mainH, W: w, H: resH}
	f.footer = scene.Bounds{X: 0, Y: f.resources.Y + resH, W: w, H: footH}

	add := func(id, parent scene.ElementID, b scene.Bounds) {
		// IDs are unique per frame, so Add cannot fail here.
		_ = f.tree.Add(id, parent, b)
	}
	add(scene.Header, scene.Root, f.header)
	add(scene.Diagram, scene.Root, f.diagram)
	add(scene.Detail, scene.Root, f.detail)
	if resH > 0 {
		add(scene.Resources, scene.Root, f.resources)
	}
	add(scene.Footer, scene.Root, f.footer)

	cw, ch := f.canvasSize()
	f.hotspots = make([]atlas.CellRect, cat.Len())
	for i, r := range cat.Regions() {
		cr := r.Position.Scale(cw, ch)
		f.hotspots[i] = cr
		if cr.Empty() {
			continue
		}
		id := scene.HotspotID(i)
		f.hotspot[id] = i
		add(id, scene.Diagram, scene.Bounds{
			X: f.diagram.X + 1 + cr.X,
			Y: f.diagram.Y + 1 + cr.Y,
			W: cr.W,
			H: cr.H,
		})
	}

	innerH := max(f.detail.H-2, 0)
	f.detailContent, detailLinks = fitDetail(f.detailContent, detailLinks, innerH, m.theme.Placeholder.Render("…"))
	for _, l := range detailLinks {
		if l.line >= innerH {
			continue
		}
		id := scene.LinkID(scene.Detail, l.name)
		f.links[id] = l.target
		add(id, scene.Detail, scene.Bounds{
			X: f.detail.X + 2,
			Y: f.detail.Y + 1 + l.line,
			W: l.width,
			H: 1,
		})
	}

	if resH > 0 {
		n := len(resources)
		cardW := max((w-panelGap*(n-1))/n, 4)
		for i, res := range resources {
			b := scene.Bounds{X: i * (cardW + panelGap), Y: f.resources.Y, W: cardW, H: resH}
			if i == n-1 {
				b.W = w - b.X
			}
			f.cards = append(f.cards, b)
			id := scene.LinkID(scene.Resources, strconv.Itoa(i))
			f.links[id] = res.URL
			add(id, scene.Resources, b)
		}
	}

	return f
}

type detailLink struct {
	name   string
	target string
	line   int
	width  int
}

// fitDetail cuts lines to height rows. When the content does not fit, the
// description is shortened and marked with more so the link buttons stay
// visible. Links that still fall past the last row are dropped.
func fitDetail(lines []string, links []detailLink, height int, more string) ([]string, []detailLink) {
	if len(lines) <= height {
		return lines, links
	}
	first := len(lines)
	for _, l := range links {
		first = min(first, l.line)
	}
	tail := len(lines) - first
	if len(links) == 0 || tail >= height {
		out := lines[:height]
		var kept []detailLink
		for _, l := range links {
			if l.line < height {
				kept = append(kept, l)
			}
		}
		return out, kept
	}

	keep := max(height-tail-1, 0)
	out := append([]string{}, lines[:keep]...)
	out = append(out, more)
	shift := len(out) - first
	out = append(out, lines[first:]...)
	moved := make([]detailLink, len(links))
	for i, l := range links {
		l.line += shift
		moved[i] = l
	}
	return out, moved
}

// detailContent returns the styled lines of the detail panel and the
// positions of its link buttons.
func (m Model) detailContent(width int) ([]string, []detailLink) {
	r, ok := m.sess.ctrl.Selected()
	if !ok {
		return wrapStyled(m.theme.Placeholder, placeholderText, width), nil
	}

	lines := []string{m.theme.RegionName.Render(truncate(r.Name, width)), ""}
	lines = append(lines, m.descriptionLines(r, width)...)
	lines = append(lines, "")

	var links []detailLink
	addButton := func(name, label, target string, style lipgloss.Style) {
		if target == "" {
			return
		}
		button := style.Render(label)
		bw := lipgloss.Width(button)
		line := hyperlink(target, button)
		if rest := width - bw - 2; rest > 0 {
			line += "  " + m.theme.LinkHost.Render(truncate(linkHost(target), rest))
		}
		links = append(links, detailLink{name: name, target: target, line: len(lines), width: min(bw, width)})
		lines = append(lines, line)
	}
	addButton(linkLearn, "Learn More", r.LearnMoreURL, m.theme.LearnButton)
	addButton(linkVideo, "Watch Video", r.VideoURL, m.theme.VideoButton)
	return lines, links
}

// descriptionLines renders a region description wrapped to width, through
// glamour when markdown rendering is enabled.
func (m Model) descriptionLines(r atlas.Region, width int) []string {
	if m.cfg.UI.Markdown {
		if out, err := m.sess.markdown.render(r.Description, width); err == nil {
			return out
		}
	}
	return wrapStyled(m.theme.Body, r.Description, width)
}

func wrapStyled(style lipgloss.Style, text string, width int) []string {
	raw := wrapText(text, width)
	out := make([]string, len(raw))
	for i, l := range raw {
		out[i] = style.Render(strings.TrimRight(l, " "))
	}
	return out
}
