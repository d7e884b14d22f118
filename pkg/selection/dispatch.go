package selection

import (
	"sort"

	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/debug"
	"github.com/vanderheijden86/lungmap/pkg/scene"
)

// Pointer is one pointer-down interaction resolved against the scene.
type Pointer struct {
	X, Y   int
	Target scene.ElementID
}

// Event carries a pointer through the handler chain. Once a handler marks
// it handled, no later handler sees it.
type Event struct {
	Pointer
	handled   bool
	handledBy string
}

// NewEvent wraps p in an unhandled event.
func NewEvent(p Pointer) *Event {
	return &Event{Pointer: p}
}

// Handle marks the event as consumed by the named handler.
func (e *Event) Handle(by string) {
	if e.handled {
		return
	}
	e.handled = true
	e.handledBy = by
}

// Handled reports whether a handler consumed the event.
func (e *Event) Handled() bool { return e.handled }

// HandledBy names the handler that consumed the event.
func (e *Event) HandledBy() string { return e.handledBy }

// Handler reacts to a pointer event.
type Handler func(ev *Event)

// Handler priorities. Lower runs first.
const (
	PriorityHotspot = 0
	PriorityLink    = 10
	PriorityDismiss = 100
)

type registration struct {
	id       int
	priority int
	name     string
	fn       Handler
}

// Dispatcher runs registered handlers for each pointer event in ascending
// priority order; handlers with equal priority run in registration order.
// It is the analog of a document-level listener list and, like the
// controller, belongs to the UI goroutine.
type Dispatcher struct {
	regs   []registration
	nextID int
}

// NewDispatcher returns an empty dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Register adds a named handler. The returned release function removes it
// and is safe to call more than once.
func (d *Dispatcher) Register(priority int, name string, h Handler) (release func()) {
	id := d.nextID
	d.nextID++
	d.regs = append(d.regs, registration{id: id, priority: priority, name: name, fn: h})
	sort.SliceStable(d.regs, func(i, j int) bool {
		return d.regs[i].priority < d.regs[j].priority
	})
	return func() {
		for i, r := range d.regs {
			if r.id == id {
				d.regs = append(d.regs[:i], d.regs[i+1:]...)
				return
			}
		}
	}
}

// Len returns the number of registered handlers.
func (d *Dispatcher) Len() int { return len(d.regs) }

// Dispatch delivers ev to handlers until one of them handles it.
func (d *Dispatcher) Dispatch(ev *Event) {
	for _, r := range append([]registration(nil), d.regs...) {
		if ev.Handled() {
			break
		}
		r.fn(ev)
	}
	debug.LogIf(ev.Handled(), "dispatch: %s at (%d,%d) handled by %s", ev.Target, ev.X, ev.Y, ev.HandledBy())
}

// HotspotResolver maps an element to the catalog region whose hotspot it is.
type HotspotResolver func(id scene.ElementID) (atlas.Region, bool)

// SceneFunc returns the most recently painted scene tree.
type SceneFunc func() *scene.Tree

// Binding is the pair of handlers that connects a controller to a
// dispatcher for the lifetime of a view.
type Binding struct {
	releases []func()
	closed   bool
}

// Mount wires ctrl into d. The hotspot handler runs first: a press on a
// hotspot selects its region and consumes the event, so the outside
// dismissal handler never sees that same press. Every other press reaches
// the dismissal handler, which clears the selection unless the target is
// inside the detail panel.
//
// Call Close on the returned binding when the view is torn down.
func Mount(ctrl *Controller, d *Dispatcher, tree SceneFunc, hotspots HotspotResolver) *Binding {
	b := &Binding{}
	b.releases = append(b.releases,
		d.Register(PriorityHotspot, "hotspot", func(ev *Event) {
			r, ok := hotspots(ev.Target)
			if !ok {
				return
			}
			ctrl.Select(r)
			ev.Handle("hotspot")
		}),
		d.Register(PriorityDismiss, "dismiss", func(ev *Event) {
			ctrl.ClearIfOutside(tree(), ev.Target)
		}),
	)
	return b
}

// Close unregisters the binding's handlers. It is idempotent.
func (b *Binding) Close() {
	if b == nil || b.closed {
		return
	}
	b.closed = true
	for _, release := range b.releases {
		release()
	}
	b.releases = nil
}

// Closed reports whether Close has been called.
func (b *Binding) Closed() bool { return b == nil || b.closed }
