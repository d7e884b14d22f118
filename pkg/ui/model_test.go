package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"pgregory.net/rapid"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/browser"
	"github.com/vanderheijden86/lungmap/pkg/config"
	"github.com/vanderheijden86/lungmap/pkg/scene"
	"github.com/vanderheijden86/lungmap/pkg/selection"
)

const (
	testWidth  = 160
	testHeight = 40
)

type recordingOpener struct {
	opened []string
	err    error
}

func (o *recordingOpener) Open(target string) error {
	o.opened = append(o.opened, target)
	return o.err
}

func newSizedModel(cat *atlas.Catalog, w, h int) (Model, *recordingOpener) {
	op := &recordingOpener{}
	m := NewModel(cat).
		WithOpener(op).
		WithClipboard(func(string) error { return nil })
	nm, _ := m.Update(tea.WindowSizeMsg{Width: w, Height: h})
	return nm.(Model), op
}

func newTestModel(t *testing.T) (Model, *recordingOpener) {
	t.Helper()
	return newSizedModel(atlas.Default(), testWidth, testHeight)
}

func send(m Model, msg tea.Msg) (Model, tea.Cmd) {
	nm, cmd := m.Update(msg)
	return nm.(Model), cmd
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionMotion, Button: tea.MouseButtonNone}
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// pointOf returns a cell that hit-tests to id in the model's current frame.
func pointOf(t *testing.T, m Model, id scene.ElementID) (int, int) {
	t.Helper()
	tree := m.Scene()
	b, ok := tree.Bounds(id)
	if !ok {
		t.Fatalf("%s not in scene", id)
	}
	for y := b.Y; y < b.Y+b.H; y++ {
		for x := b.X; x < b.X+b.W; x++ {
			if tree.HitTest(x, y) == id {
				return x, y
			}
		}
	}
	t.Fatalf("%s is fully covered by other elements", id)
	return 0, 0
}

func runCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, runCmd(c)...)
		}
		return out
	}
	if msg == nil {
		return nil
	}
	return []tea.Msg{msg}
}

// plain strips styling and panel borders and collapses whitespace.
func plain(s string) string {
	s = ansi.Strip(s)
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune("│╭╮╰╯─", r) {
			return ' '
		}
		return r
	}, s)
	return strings.Join(strings.Fields(s), " ")
}

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func TestNewModel_StartsEmptyWithPlaceholder(t *testing.T) {
	m, _ := newTestModel(t)

	if m.Selection().Kind() != selection.Empty {
		t.Fatalf("initial state = %s, want Empty", m.Selection())
	}
	if got := plain(m.DetailView()); !strings.Contains(got, placeholderText) {
		t.Errorf("detail panel missing placeholder, got %q", got)
	}
	if strings.Contains(m.DetailView(), "Learn More") {
		t.Error("empty detail panel must not show link buttons")
	}
}

func TestNewModel_RegistersEveryHotspot(t *testing.T) {
	m, _ := newTestModel(t)
	tree := m.Scene()
	for i := 0; i < m.Catalog().Len(); i++ {
		id := scene.HotspotID(i)
		parent, ok := tree.Parent(id)
		if !ok || parent != scene.Diagram {
			t.Errorf("hotspot %d parent = %q, %v; want %q", i, parent, ok, scene.Diagram)
		}
	}
}

func TestHotspotPress_ShowsRegion(t *testing.T) {
	cat := atlas.Default()

	for i := 0; i < cat.Len(); i++ {
		want := cat.At(i)
		t.Run(want.Name, func(t *testing.T) {
			m, _ := newTestModel(t)
			defer m.Stop()
			x, y := pointOf(t, m, scene.HotspotID(i))
			m, _ = send(m, press(x, y))

			st := m.Selection()
			if !st.IsSelected() || st.Region() != want {
				t.Fatalf("state = %s, want Selected(%s)", st, want.Name)
			}

			detail := m.DetailView()
			text := plain(detail)
			if !strings.Contains(text, want.Name) {
				t.Errorf("detail missing name %q", want.Name)
			}
			if !strings.Contains(text, normalize(want.Description)) {
				t.Errorf("detail missing description of %s:\n%s", want.Name, text)
			}
			if strings.Contains(text, placeholderText) {
				t.Error("placeholder shown while a region is selected")
			}
			if !strings.Contains(detail, want.LearnMoreURL) {
				t.Errorf("detail missing learn-more link %s", want.LearnMoreURL)
			}
			if !strings.Contains(detail, want.VideoURL) {
				t.Errorf("detail missing video link %s", want.VideoURL)
			}
			if !m.Scene().Has(scene.LinkID(scene.Detail, linkLearn)) {
				t.Error("learn-more button not registered in scene")
			}
		})
	}
}

func TestHotspotPress_LastActivationWins(t *testing.T) {
	m, _ := newTestModel(t)
	cat := m.Catalog()

	x, y := pointOf(t, m, scene.HotspotID(0))
	m, _ = send(m, press(x, y))
	x, y = pointOf(t, m, scene.HotspotID(5))
	m, _ = send(m, press(x, y))

	if got := m.Selection().Region(); got != cat.At(5) {
		t.Fatalf("selected %q, want %q", got.Name, cat.At(5).Name)
	}
	if strings.Contains(plain(m.DetailView()), cat.At(0).Name) {
		t.Error("previous region still shown")
	}
}

func TestHotspotPress_SameRegionTwiceKeepsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(2))
	m, _ = send(m, press(x, y))
	m, _ = send(m, press(x, y))

	if got := m.Selection().Region(); got != m.Catalog().At(2) {
		t.Fatalf("selected %q after repeated press", got.Name)
	}
}

func TestPressInsideDetail_KeepsSelection(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(3))
	m, _ = send(m, press(x, y))
	before := m.Selection()

	b, _ := m.Scene().Bounds(scene.Detail)
	for _, pt := range [][2]int{{b.X, b.Y}, {b.X + b.W - 1, b.Y + b.H - 1}, {b.X + 3, b.Y + 1}} {
		m, _ = send(m, press(pt[0], pt[1]))
		if m.Selection() != before {
			t.Fatalf("press at %v inside detail changed state to %s", pt, m.Selection())
		}
	}
}

func TestPressOutside_ClearsSelection(t *testing.T) {
	targets := []scene.ElementID{scene.Header, scene.Diagram, scene.Footer, scene.Resources}
	for _, target := range targets {
		t.Run(string(target), func(t *testing.T) {
			m, _ := newTestModel(t)
			x, y := pointOf(t, m, scene.HotspotID(0))
			m, _ = send(m, press(x, y))

			x, y = pointOf(t, m, target)
			m, _ = send(m, press(x, y))
			if m.Selection().Kind() != selection.Empty {
				t.Fatalf("press on %s left state %s", target, m.Selection())
			}
			if !strings.Contains(plain(m.DetailView()), placeholderText) {
				t.Error("placeholder not restored")
			}
		})
	}
}

func TestPressOutside_WhenEmptyStaysEmpty(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, press(0, 0))
	if m.Selection().Kind() != selection.Empty {
		t.Fatalf("state = %s", m.Selection())
	}
}

func TestPressOutsideScreen_Clears(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(0))
	m, _ = send(m, press(x, y))
	m, _ = send(m, press(testWidth+10, testHeight+10))
	if m.Selection().Kind() != selection.Empty {
		t.Fatalf("state = %s", m.Selection())
	}
}

func TestDetailLink_OpensWithoutClearing(t *testing.T) {
	m, op := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(5))
	m, _ = send(m, press(x, y))
	want := m.Selection().Region()

	for _, link := range []struct {
		name   string
		target string
	}{
		{linkLearn, want.LearnMoreURL},
		{linkVideo, want.VideoURL},
	} {
		op.opened = nil
		x, y := pointOf(t, m, scene.LinkID(scene.Detail, link.name))
		var cmd tea.Cmd
		m, cmd = send(m, press(x, y))
		for _, msg := range runCmd(cmd) {
			m, _ = send(m, msg)
		}

		if len(op.opened) != 1 || op.opened[0] != link.target {
			t.Errorf("%s opened %v, want [%s]", link.name, op.opened, link.target)
		}
		if m.Selection().Region() != want {
			t.Errorf("%s press changed selection to %s", link.name, m.Selection())
		}
	}
}

func TestResourceCard_OpensAndDismisses(t *testing.T) {
	m, op := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(1))
	m, _ = send(m, press(x, y))

	res := m.Catalog().Resources()[0]
	x, y = pointOf(t, m, scene.LinkID(scene.Resources, "0"))
	m, cmd := send(m, press(x, y))
	runCmd(cmd)

	if len(op.opened) != 1 || op.opened[0] != res.URL {
		t.Errorf("opened %v, want [%s]", op.opened, res.URL)
	}
	if m.Selection().Kind() != selection.Empty {
		t.Errorf("resource card press left state %s", m.Selection())
	}
}

func TestLinkOpenedMsg_Status(t *testing.T) {
	m, _ := newTestModel(t)

	m, _ = send(m, LinkOpenedMsg{Target: "https://example.com/x"})
	if msg, isErr := m.Status(); isErr || !strings.Contains(msg, "example.com") {
		t.Errorf("success status = %q, %v", msg, isErr)
	}

	m, _ = send(m, LinkOpenedMsg{Target: "https://example.com/x", Err: browser.ErrDisabled})
	if msg, isErr := m.Status(); isErr || !strings.Contains(msg, "https://example.com/x") {
		t.Errorf("disabled status = %q, %v", msg, isErr)
	}

	m, _ = send(m, LinkOpenedMsg{Target: "x", Err: errors.New("boom")})
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "boom") {
		t.Errorf("error status = %q, %v", msg, isErr)
	}
}

func TestHover_TracksHotspotUnderPointer(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(4))

	m, _ = send(m, motion(x, y))
	if m.Hover() != 4 {
		t.Fatalf("hover = %d, want 4", m.Hover())
	}
	if m.Selection().Kind() != selection.Empty {
		t.Error("hover must not select")
	}
	if !strings.Contains(plain(m.View()), "Hover: "+m.Catalog().At(4).Name) {
		t.Error("status line does not name hovered region")
	}

	m, _ = send(m, motion(0, 0))
	if m.Hover() != -1 {
		t.Errorf("hover = %d after leaving, want -1", m.Hover())
	}
}

func TestHover_Disabled(t *testing.T) {
	m, _ := newTestModel(t)
	off := false
	cfg := config.DefaultConfig()
	cfg.UI.Hover = &off
	m = m.WithConfig(cfg)

	x, y := pointOf(t, m, scene.HotspotID(4))
	m, _ = send(m, motion(x, y))
	if m.Hover() != -1 {
		t.Errorf("hover = %d with hover disabled", m.Hover())
	}
}

func TestMouseDisabled_IgnoresPresses(t *testing.T) {
	m, _ := newTestModel(t)
	off := false
	cfg := config.DefaultConfig()
	cfg.UI.Mouse = &off
	m = m.WithConfig(cfg)

	x, y := pointOf(t, m, scene.HotspotID(0))
	m, _ = send(m, press(x, y))
	if m.Selection().Kind() != selection.Empty {
		t.Errorf("press selected %s with mouse disabled", m.Selection())
	}
}

func TestNonPrimaryButton_Ignored(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(0))
	m, _ = send(m, tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelUp})
	if m.Selection().Kind() != selection.Empty {
		t.Errorf("wheel selected %s", m.Selection())
	}
}

func TestKeyboard_FocusAndSelect(t *testing.T) {
	m, _ := newTestModel(t)
	n := m.Catalog().Len()

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus() != 0 {
		t.Fatalf("focus = %d after tab, want 0", m.Focus())
	}
	if m.Selection().Kind() != selection.Empty {
		t.Fatal("focus alone must not select")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if m.Focus() != n-1 {
		t.Fatalf("focus = %d after shift+tab, want %d", m.Focus(), n-1)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.Selection().Region(); got != m.Catalog().At(n-1) {
		t.Fatalf("enter selected %q", got.Name)
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	if m.Focus() != 0 {
		t.Errorf("focus did not wrap, got %d", m.Focus())
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.Selection().Region(); got != m.Catalog().At(0) {
		t.Errorf("space selected %q", got.Name)
	}
}

func TestKeyboard_EscDoesNotClear(t *testing.T) {
	m, _ := newTestModel(t)
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEsc})
	if !m.Selection().IsSelected() {
		t.Error("esc cleared the selection")
	}
}

func TestPressFollowsFocus(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(6))
	m, _ = send(m, press(x, y))
	if m.Focus() != 6 {
		t.Errorf("focus = %d after pressing hotspot 6", m.Focus())
	}
}

func TestKeyboard_OpenLinks(t *testing.T) {
	m, op := newTestModel(t)

	m, cmd := send(m, keyRune('o'))
	if len(runCmd(cmd)) != 0 || len(op.opened) != 0 {
		t.Fatal("o without selection must not open anything")
	}
	if msg, _ := m.Status(); msg == "" {
		t.Error("expected a hint in the status line")
	}

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	r := m.Selection().Region()

	_, cmd = send(m, keyRune('o'))
	runCmd(cmd)
	_, cmd = send(m, keyRune('v'))
	runCmd(cmd)

	if len(op.opened) != 2 || op.opened[0] != r.LearnMoreURL || op.opened[1] != r.VideoURL {
		t.Errorf("opened %v", op.opened)
	}
}

func TestKeyboard_CopyLink(t *testing.T) {
	var copied string
	m, _ := newTestModel(t)
	m = m.WithClipboard(func(s string) error { copied = s; return nil })

	m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = send(m, keyRune('y'))
	if copied != m.Selection().Region().LearnMoreURL {
		t.Errorf("copied %q", copied)
	}

	m = m.WithClipboard(func(string) error { return errors.New("no clipboard") })
	m, _ = send(m, keyRune('y'))
	if _, isErr := m.Status(); !isErr {
		t.Error("clipboard failure not reported")
	}
}

func TestHelpToggleGrowsFooter(t *testing.T) {
	m, _ := newTestModel(t)
	short, _ := m.Scene().Bounds(scene.Footer)
	m, _ = send(m, keyRune('?'))
	full, _ := m.Scene().Bounds(scene.Footer)
	if full.H <= short.H {
		t.Errorf("footer height %d -> %d, want growth", short.H, full.H)
	}
}

func TestQuit_UnmountsHandlers(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(0))

	m, cmd := send(m, keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("expected tea.QuitMsg")
	}
	if !m.Stopped() {
		t.Fatal("model not stopped on quit")
	}
	if m.View() != "" {
		t.Error("view should be empty after quit")
	}

	m, _ = send(m, press(x, y))
	if m.Selection().Kind() != selection.Empty {
		t.Error("press after unmount changed selection")
	}
	m.Stop()
}

func TestCatalogReload_ReconcilesSelection(t *testing.T) {
	m, _ := newTestModel(t)
	x, y := pointOf(t, m, scene.HotspotID(5))
	m, _ = send(m, press(x, y))
	selected := m.Selection().Region()

	regions := m.Catalog().Regions()
	regions[5].Description = "Updated description."
	updated := atlas.New("Lungs", regions, nil)

	m, _ = send(m, CatalogReloadedMsg{Catalog: updated})
	if got := m.Selection().Region(); got.Name != selected.Name || got.Description != "Updated description." {
		t.Fatalf("selection not re-resolved: %+v", got)
	}
	if m.Scene().Has(scene.Resources) {
		t.Error("catalog without resources must not paint resource cards")
	}

	m, _ = send(m, CatalogReloadedMsg{Catalog: atlas.New("Lungs", regions[:3], nil)})
	if m.Selection().Kind() != selection.Empty {
		t.Errorf("region dropped from catalog but state is %s", m.Selection())
	}
	if m.Catalog().Len() != 3 {
		t.Errorf("catalog len = %d", m.Catalog().Len())
	}
}

func TestCatalogReload_ErrorKeepsCatalog(t *testing.T) {
	m, _ := newTestModel(t)
	before := m.Catalog()
	m, _ = send(m, CatalogReloadedMsg{Err: errors.New("bad yaml")})
	if m.Catalog() != before {
		t.Error("catalog replaced on error")
	}
	if msg, isErr := m.Status(); !isErr || !strings.Contains(msg, "bad yaml") {
		t.Errorf("status = %q, %v", msg, isErr)
	}
}

func TestStackedLayout(t *testing.T) {
	m, _ := newSizedModel(atlas.Default(), 70, 40)
	d, _ := m.Scene().Bounds(scene.Diagram)
	det, _ := m.Scene().Bounds(scene.Detail)
	if det.Y < d.Y+d.H {
		t.Fatalf("detail %+v not below diagram %+v", det, d)
	}

	x, y := pointOf(t, m, scene.HotspotID(0))
	m, _ = send(m, press(x, y))
	if !m.Selection().IsSelected() {
		t.Fatal("hotspot press failed in stacked layout")
	}
}

func TestView_FitsTerminal(t *testing.T) {
	for _, size := range [][2]int{{160, 40}, {100, 32}, {80, 24}, {70, 30}} {
		m, _ := newSizedModel(atlas.Default(), size[0], size[1])
		x, y := pointOf(t, m, scene.HotspotID(8))
		m, _ = send(m, press(x, y))

		for i, line := range strings.Split(m.View(), "\n") {
			if w := ansi.StringWidth(line); w > size[0] {
				t.Errorf("%dx%d line %d is %d cells wide", size[0], size[1], i, w)
			}
		}
	}
}

func selectByKeyboard(m Model, i int) Model {
	for k := 0; k <= i; k++ {
		m, _ = send(m, tea.KeyMsg{Type: tea.KeyTab})
	}
	m, _ = send(m, tea.KeyMsg{Type: tea.KeyEnter})
	return m
}

func TestStackedLayout_ShowsFullDetail(t *testing.T) {
	const w, h = 80, 24
	cat := atlas.Default()
	for i := 0; i < cat.Len(); i++ {
		m, _ := newSizedModel(cat, w, h)
		m = selectByKeyboard(m, i)
		r := m.Selection().Region()
		if r != cat.At(i) {
			t.Fatalf("region %d: selected %q", i, r.Name)
		}

		tree := m.Scene()
		for _, name := range []string{linkLearn, linkVideo} {
			id := scene.LinkID(scene.Detail, name)
			if !tree.Has(id) {
				t.Errorf("%s: %s not registered", r.Name, id)
				continue
			}
			pointOf(t, m, id)
		}

		detail := plain(m.DetailView())
		for _, want := range []string{r.Name, normalize(r.Description), "Learn More", "Watch Video"} {
			if !strings.Contains(detail, want) {
				t.Errorf("%s: detail panel missing %q in %q", r.Name, want, detail)
			}
		}

		d, _ := tree.Bounds(scene.Diagram)
		if d.H < minDiagramHeight {
			t.Errorf("%s: diagram height %d below minimum", r.Name, d.H)
		}
		if lines := strings.Split(m.View(), "\n"); len(lines) > h {
			t.Errorf("%s: view is %d lines, terminal has %d", r.Name, len(lines), h)
		}
	}
}

func TestFitDetail_KeepsLinksWhenShort(t *testing.T) {
	lines := []string{"Name", "", "one", "two", "three", "", "[learn]", "[video]"}
	links := []detailLink{
		{name: linkLearn, line: 6, width: 7},
		{name: linkVideo, line: 7, width: 7},
	}

	got, gotLinks := fitDetail(lines, links, len(lines), "…")
	if len(got) != len(lines) || gotLinks[1].line != 7 {
		t.Fatalf("content that fits must be unchanged: %q %+v", got, gotLinks)
	}

	got, gotLinks = fitDetail(lines, links, 5, "…")
	want := []string{"Name", "", "…", "[learn]", "[video]"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("fitDetail = %q, want %q", got, want)
	}
	if len(gotLinks) != 2 || gotLinks[0].line != 3 || gotLinks[1].line != 4 {
		t.Errorf("links not moved with their lines: %+v", gotLinks)
	}

	got, gotLinks = fitDetail(lines, links, 1, "…")
	if len(got) != 1 || len(gotLinks) != 0 {
		t.Errorf("one row keeps only the name: %q %+v", got, gotLinks)
	}

	placeholder := []string{"a", "b", "c"}
	if got, _ := fitDetail(placeholder, nil, 2, "…"); len(got) != 2 {
		t.Errorf("content without links is cut to height, got %q", got)
	}
}

func TestMarkdownDescription(t *testing.T) {
	m, _ := newTestModel(t)
	cfg := config.DefaultConfig()
	cfg.UI.Markdown = true
	m = m.WithConfig(cfg)

	x, y := pointOf(t, m, scene.HotspotID(5))
	m, _ = send(m, press(x, y))
	r := m.Selection().Region()
	if !strings.Contains(plain(m.DetailView()), strings.Fields(r.Description)[0]) {
		t.Error("markdown rendering dropped the description")
	}
}

func TestPressProperty_StateFollowsTarget(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		m, _ := newSizedModel(atlas.Default(), testWidth, testHeight)
		defer m.Stop()
		cat := m.Catalog()

		steps := rapid.IntRange(1, 25).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			x := rapid.IntRange(0, testWidth-1).Draw(rt, "x")
			y := rapid.IntRange(0, testHeight-1).Draw(rt, "y")

			tree := m.Scene()
			target := tree.HitTest(x, y)
			before := m.Selection()
			m, _ = send(m, press(x, y))
			after := m.Selection()

			switch {
			case tree.Contains(scene.Diagram, target) && target != scene.Diagram:
				if !after.IsSelected() || !cat.Contains(after.Region()) {
					rt.Fatalf("hotspot %s press gave %s", target, after)
				}
			case tree.Contains(scene.Detail, target):
				if after != before {
					rt.Fatalf("press on %s changed %s -> %s", target, before, after)
				}
			default:
				if after.Kind() != selection.Empty {
					rt.Fatalf("press on %s left %s", target, after)
				}
			}

			text := plain(m.DetailView())
			if after.IsSelected() != !strings.Contains(text, placeholderText) {
				rt.Fatalf("detail panel disagrees with state %s: %q", after, text)
			}
		}
	})
}
