// Package ui is the interactive terminal diagram: a hotspot overlay over the
// lung picture, a detail panel for the selected region and the resource
// cards, all driven by a Bubble Tea program.
package ui

import (
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/browser"
	"github.com/vanderheijden86/lungmap/pkg/config"
	"github.com/vanderheijden86/lungmap/pkg/debug"
	"github.com/vanderheijden86/lungmap/pkg/metrics"
	"github.com/vanderheijden86/lungmap/pkg/scene"
	"github.com/vanderheijden86/lungmap/pkg/selection"
	"github.com/vanderheijden86/lungmap/pkg/watcher"
)

// Default dimensions used until the terminal reports its size.
const (
	defaultWidth  = 100
	defaultHeight = 32
)

// LinkOpener launches an outbound link without blocking the UI.
type LinkOpener interface {
	Open(target string) error
}

// LinkOpenedMsg reports the result of opening a link.
type LinkOpenedMsg struct {
	Target string
	Err    error
}

// CatalogReloadedMsg carries a catalog re-read after its file changed.
type CatalogReloadedMsg struct {
	Catalog *atlas.Catalog
	Err     error
}

// WatchCatalogCmd waits for the next change of the watched catalog file
// and reloads it. It returns nil once the watcher is stopped.
func WatchCatalogCmd(w *watcher.Watcher) tea.Cmd {
	done := w.Done()
	return func() tea.Msg {
		select {
		case <-done:
			return nil
		case <-w.Changed():
			cat, err := atlas.LoadFile(w.Path())
			return CatalogReloadedMsg{Catalog: cat, Err: err}
		case err := <-w.Errors():
			return CatalogReloadedMsg{Err: err}
		}
	}
}

func openLinkCmd(o LinkOpener, target string) tea.Cmd {
	return func() tea.Msg {
		return LinkOpenedMsg{Target: target, Err: o.Open(target)}
	}
}

// session is the state shared by every copy of a Model. Bubble Tea passes
// the model by value; handlers registered on the dispatcher capture the
// session so they always see the live catalog and scene.
type session struct {
	catalog  *atlas.Catalog
	ctrl     *selection.Controller
	disp     *selection.Dispatcher
	binding  *selection.Binding
	releases []func()

	frame   frame
	pending []string

	baseDir   string
	opener    LinkOpener
	clipboard func(string) error
	watcher   *watcher.Watcher
	markdown  *markdownCache
	stopped   bool
}

// Model is the Bubble Tea model of the diagram view.
type Model struct {
	sess  *session
	cfg   config.Config
	theme Theme
	keys  KeyMap
	help  help.Model
	image image.Image

	width, height int
	focus         int
	hover         int
	showHelp      bool

	statusMsg     string
	statusIsError bool
	quitting      bool
}

// NewModel builds the view for cat and mounts the selection controller on
// its dispatcher.
func NewModel(cat *atlas.Catalog) Model {
	if cat == nil {
		cat = atlas.Default()
	}
	cwd, _ := os.Getwd()
	s := &session{
		catalog:   cat,
		ctrl:      selection.NewController(),
		disp:      selection.NewDispatcher(),
		baseDir:   cwd,
		opener:    browser.New("", cwd),
		clipboard: clipboard.WriteAll,
		markdown:  newMarkdownCache(""),
	}

	m := Model{
		sess:   s,
		cfg:    config.DefaultConfig(),
		theme:  DefaultTheme(lipgloss.DefaultRenderer()),
		keys:   DefaultKeyMap(),
		help:   help.New(),
		width:  defaultWidth,
		height: defaultHeight,
		focus:  -1,
		hover:  -1,
	}

	s.binding = selection.Mount(s.ctrl, s.disp,
		func() *scene.Tree { return s.frame.tree },
		func(id scene.ElementID) (atlas.Region, bool) {
			i, ok := s.frame.hotspot[id]
			if !ok {
				return atlas.Region{}, false
			}
			return s.catalog.At(i), true
		},
	)
	s.releases = append(s.releases, s.disp.Register(selection.PriorityLink, "link", func(ev *selection.Event) {
		target, ok := s.frame.links[ev.Target]
		if !ok {
			return
		}
		s.pending = append(s.pending, target)
		// Buttons inside the detail panel consume the press. Resource
		// cards let it through so outside dismissal still applies.
		if s.frame.tree.Contains(scene.Detail, ev.Target) {
			ev.Handle("link")
		}
	}))

	m.relayout()
	return m
}

// WithConfig applies user configuration.
func (m Model) WithConfig(cfg config.Config) Model {
	m.cfg = cfg
	if _, ok := m.sess.opener.(*browser.Opener); ok && cfg.BrowserCommand != "" {
		m.sess.opener = browser.New(cfg.BrowserCommand, m.sess.baseDir)
	}
	m.relayout()
	return m
}

// WithOpener replaces the link opener.
func (m Model) WithOpener(o LinkOpener) Model {
	m.sess.opener = o
	return m
}

// WithClipboard replaces the clipboard writer.
func (m Model) WithClipboard(fn func(string) error) Model {
	m.sess.clipboard = fn
	return m
}

// WithImage paints img behind the hotspots instead of the built-in art.
func (m Model) WithImage(img image.Image) Model {
	m.image = img
	return m
}

// WithWatcher reloads the catalog whenever w reports a change. The watcher
// must already be started; Stop stops it.
func (m Model) WithWatcher(w *watcher.Watcher) Model {
	m.sess.watcher = w
	return m
}

// WithTheme replaces the styles.
func (m Model) WithTheme(t Theme) Model {
	m.theme = t
	m.relayout()
	return m
}

// WithCatalogDir resolves relative resource links against dir.
func (m Model) WithCatalogDir(dir string) Model {
	m.sess.baseDir = dir
	if o, ok := m.sess.opener.(*browser.Opener); ok {
		m.sess.opener = browser.New(o.Command, dir)
	}
	return m
}

// Catalog returns the catalog currently displayed.
func (m Model) Catalog() *atlas.Catalog { return m.sess.catalog }

// Selection returns the current selection state.
func (m Model) Selection() selection.State { return m.sess.ctrl.State() }

// Scene returns the scene tree of the most recent frame.
func (m Model) Scene() *scene.Tree { return m.sess.frame.tree }

// Focus returns the index of the keyboard-focused hotspot, or -1.
func (m Model) Focus() int { return m.focus }

// Hover returns the index of the hotspot under the pointer, or -1.
func (m Model) Hover() int { return m.hover }

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) { return m.statusMsg, m.statusIsError }

// Stop unmounts the selection handlers and stops the catalog watcher. It is
// safe to call more than once.
func (m Model) Stop() {
	s := m.sess
	if s.stopped {
		return
	}
	s.stopped = true
	s.binding.Close()
	for _, release := range s.releases {
		release()
	}
	s.releases = nil
	if s.watcher != nil {
		s.watcher.Stop()
	}
}

// Stopped reports whether Stop has run.
func (m Model) Stopped() bool { return m.sess.stopped }

func (m *Model) relayout() {
	m.sess.frame = m.computeFrame()
}

func (m Model) Init() tea.Cmd {
	if m.sess.watcher != nil {
		return WatchCatalogCmd(m.sess.watcher)
	}
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.relayout()

	case tea.MouseMsg:
		if !m.cfg.MouseEnabled() {
			break
		}
		switch {
		case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
			cmds = append(cmds, m.press(msg.X, msg.Y)...)
		case msg.Action == tea.MouseActionMotion:
			if m.cfg.HoverEnabled() {
				m.hover = m.hotspotAt(msg.X, msg.Y)
			}
		}

	case tea.KeyMsg:
		var cmd tea.Cmd
		m, cmd = m.handleKeys(msg)
		cmds = append(cmds, cmd)

	case LinkOpenedMsg:
		switch {
		case msg.Err == nil:
			m.setStatus(fmt.Sprintf("🌐 Opened %s", linkHost(msg.Target)), false)
		case errors.Is(msg.Err, browser.ErrDisabled):
			m.setStatus(fmt.Sprintf("🔗 %s", msg.Target), false)
		default:
			m.setStatus(fmt.Sprintf("❌ Could not open link: %v", msg.Err), true)
		}

	case CatalogReloadedMsg:
		if msg.Err != nil {
			m.setStatus(fmt.Sprintf("❌ Catalog reload failed: %v", msg.Err), true)
		} else if msg.Catalog != nil {
			m = m.applyCatalog(msg.Catalog)
			m.setStatus(fmt.Sprintf("Reloaded %d regions", msg.Catalog.Len()), false)
		}
		if m.sess.watcher != nil && !m.sess.stopped {
			cmds = append(cmds, WatchCatalogCmd(m.sess.watcher))
		}
	}

	return m, tea.Batch(cmds...)
}

// press resolves a primary-button press against the current frame and runs
// it through the dispatcher.
func (m *Model) press(x, y int) []tea.Cmd {
	if m.sess.stopped {
		return nil
	}
	m.relayout()

	stop := metrics.Timer(metrics.HitTest)
	target := m.sess.frame.tree.HitTest(x, y)
	stop()

	m.sess.disp.Dispatch(selection.NewEvent(selection.Pointer{X: x, Y: y, Target: target}))
	m.syncFocus()
	m.relayout()
	return m.drainPending()
}

func (m *Model) drainPending() []tea.Cmd {
	var cmds []tea.Cmd
	for _, target := range m.sess.pending {
		cmds = append(cmds, openLinkCmd(m.sess.opener, target))
	}
	m.sess.pending = nil
	return cmds
}

// syncFocus moves keyboard focus onto the selected region so tabbing
// continues from whatever was last clicked.
func (m *Model) syncFocus() {
	if r, ok := m.sess.ctrl.Selected(); ok {
		m.focus = m.sess.catalog.Index(r.Name)
	}
}

func (m Model) hotspotAt(x, y int) int {
	if i, ok := m.sess.frame.hotspot[m.sess.frame.tree.HitTest(x, y)]; ok {
		return i
	}
	return -1
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMsg = msg
	m.statusIsError = isErr
}

func (m Model) applyCatalog(cat *atlas.Catalog) Model {
	m.sess.catalog = cat
	m.sess.ctrl.Reconcile(cat)
	if m.focus >= cat.Len() {
		m.focus = -1
	}
	m.hover = -1
	m.syncFocus()
	m.relayout()
	debug.Log("ui: catalog reloaded with %d regions, selection %s", cat.Len(), m.sess.ctrl.State())
	return m
}

func (m Model) handleKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	n := m.sess.catalog.Len()

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		m.Stop()
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = !m.showHelp
		m.help.ShowAll = m.showHelp

	case key.Matches(msg, m.keys.Next):
		if n > 0 {
			m.focus = (m.focus + 1) % n
		}

	case key.Matches(msg, m.keys.Prev):
		if n > 0 {
			if m.focus <= 0 {
				m.focus = n - 1
			} else {
				m.focus--
			}
		}

	case key.Matches(msg, m.keys.Select):
		if m.focus >= 0 && m.focus < n {
			m.sess.ctrl.Select(m.sess.catalog.At(m.focus))
		}

	case key.Matches(msg, m.keys.Learn), key.Matches(msg, m.keys.Video):
		r, ok := m.sess.ctrl.Selected()
		if !ok {
			m.setStatus("Select a region first", false)
			break
		}
		target := r.LearnMoreURL
		if key.Matches(msg, m.keys.Video) {
			target = r.VideoURL
		}
		m.relayout()
		return m, openLinkCmd(m.sess.opener, target)

	case key.Matches(msg, m.keys.Copy):
		r, ok := m.sess.ctrl.Selected()
		if !ok {
			m.setStatus("Select a region first", false)
			break
		}
		if err := m.sess.clipboard(r.LearnMoreURL); err != nil {
			m.setStatus(fmt.Sprintf("❌ Clipboard error: %v", err), true)
		} else {
			m.setStatus(fmt.Sprintf("📋 Copied %s link to clipboard", r.Name), false)
		}
	}

	m.relayout()
	return m, nil
}

// View renders the frame and records its scene tree for hit testing.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	defer metrics.Timer(metrics.Render)()

	f := m.computeFrame()
	m.sess.frame = f

	sections := []string{m.renderHeader(f)}
	diagram := m.renderDiagram(f)
	detail := m.renderDetail(f)
	if f.split {
		gap := lipgloss.NewStyle().Width(panelGap).Render("")
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, diagram, gap, detail))
	} else {
		sections = append(sections, diagram, detail)
	}
	if len(f.cards) > 0 {
		sections = append(sections, m.renderResources(f))
	}
	sections = append(sections, m.renderFooter(f))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderHeader(f frame) string {
	title := m.theme.Title.Render(truncate(m.sess.catalog.Title(), f.header.W))
	sub := fmt.Sprintf("%d regions · click a region or press tab", m.sess.catalog.Len())
	return lipgloss.JoinVertical(lipgloss.Left, title, m.theme.Subtitle.Render(truncate(sub, f.header.W)))
}

func (m Model) renderDiagram(f frame) string {
	cw, ch := f.canvasSize()
	c := newCanvas(cw, ch)
	if m.image != nil {
		c.drawImage(m.image)
	} else {
		c.drawArt(artLines)
	}

	if m.hover >= 0 && m.hover < len(f.hotspots) {
		c.fill(f.hotspots[m.hover], markHover)
	}
	if m.focus >= 0 && m.focus < len(f.hotspots) {
		c.outline(f.hotspots[m.focus], markFocus)
	}
	if r, ok := m.sess.ctrl.Selected(); ok {
		if i := m.sess.catalog.Index(r.Name); i >= 0 {
			c.outline(f.hotspots[i], markSelected)
		}
	}

	style := m.theme.Panel
	if m.focus >= 0 {
		style = m.theme.ActivePanel
	}
	return style.Width(cw).Height(ch).MaxHeight(f.diagram.H).Render(c.render(m.theme))
}

func (m Model) renderDetail(f frame) string {
	inner := max(f.detail.H-2, 0)
	style := m.theme.Panel
	if m.sess.ctrl.State().IsSelected() {
		style = m.theme.ActivePanel
	}
	return style.
		Padding(0, 1).
		Width(max(f.detail.W-2, 0)).
		Height(inner).
		MaxHeight(f.detail.H).
		Render(strings.Join(f.detailContent, "\n"))
}

// DetailView renders only the detail panel.
func (m Model) DetailView() string {
	return m.renderDetail(m.computeFrame())
}

func (m Model) renderResources(f frame) string {
	resources := m.sess.catalog.Resources()
	cards := make([]string, 0, len(f.cards)*2)
	for i, b := range f.cards {
		res := resources[i]
		inner := max(b.W-4, 1)

		icon := lipgloss.NewStyle().Foreground(ColorPresentation).Render("▶")
		if res.Kind == atlas.ResourceDocument {
			icon = lipgloss.NewStyle().Foreground(ColorDocument).Render("■")
		}
		title := hyperlink(m.resourceTarget(res.URL), m.theme.CardTitle.Render(truncate(res.Title, inner-2)))
		body := m.theme.CardSummary.Render(truncate(res.Summary, inner))
		card := m.theme.Card.Width(max(b.W-2, 0)).Height(2).Render(icon + " " + title + "\n" + body)
		if i > 0 {
			cards = append(cards, lipgloss.NewStyle().Width(panelGap).Render(""))
		}
		cards = append(cards, card)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

// resourceTarget turns bundled relative paths into file URLs for OSC 8.
func (m Model) resourceTarget(link string) string {
	resolved, err := browser.Resolve(link, m.sess.baseDir)
	if err != nil {
		return link
	}
	if filepath.IsAbs(resolved) {
		return "file://" + filepath.ToSlash(resolved)
	}
	return resolved
}

func (m Model) renderFooter(f frame) string {
	helpView := m.help.View(m.keys)

	var status string
	switch {
	case m.statusMsg != "" && m.statusIsError:
		status = m.theme.StatusError.Render(truncate(m.statusMsg, f.footer.W))
	case m.statusMsg != "":
		status = m.theme.Status.Render(truncate(m.statusMsg, f.footer.W))
	case m.hover >= 0 && m.hover < m.sess.catalog.Len():
		status = m.theme.Legend.Render(truncate("Hover: "+m.sess.catalog.At(m.hover).Name, f.footer.W))
	default:
		if r, ok := m.sess.ctrl.Selected(); ok {
			status = m.theme.Legend.Render(truncate("Selected: "+r.Name, f.footer.W))
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, helpView, status)
}
