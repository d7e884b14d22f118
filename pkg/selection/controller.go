// Package selection tracks which single region of the diagram is selected.
//
// The controller is a two-state machine:
//
//	Empty       --Select(r)-->            Selected(r)
//	Selected(r) --Select(r')-->           Selected(r')
//	Selected(r) --outside interaction-->  Empty
//	Empty       --outside interaction-->  Empty
//
// An interaction inside the detail panel leaves the state unchanged. There
// is no other way to reach Empty once a region has been selected.
package selection

import (
	"github.com/vanderheijden86/lungmap/pkg/atlas"
	"github.com/vanderheijden86/lungmap/pkg/debug"
	"github.com/vanderheijden86/lungmap/pkg/scene"
)

// Kind distinguishes the two states.
type Kind int

const (
	Empty Kind = iota
	Selected
)

func (k Kind) String() string {
	if k == Selected {
		return "selected"
	}
	return "empty"
}

// State is an immutable snapshot of the selection.
type State struct {
	kind   Kind
	region atlas.Region
}

// EmptyState is the initial state.
var EmptyState = State{}

// SelectedState returns the state holding r.
func SelectedState(r atlas.Region) State {
	return State{kind: Selected, region: r}
}

// Kind returns the state kind.
func (s State) Kind() Kind { return s.kind }

// IsSelected reports whether a region is selected.
func (s State) IsSelected() bool { return s.kind == Selected }

// Region returns the selected region, or the zero Region when Empty.
func (s State) Region() atlas.Region { return s.region }

func (s State) String() string {
	if s.kind == Selected {
		return "Selected(" + s.region.Name + ")"
	}
	return "Empty"
}

// ChangeFunc observes a state transition.
type ChangeFunc func(old, new State)

// Controller owns the selection state. It is driven from the UI event loop
// and is not safe for concurrent use.
type Controller struct {
	state     State
	listeners map[int]ChangeFunc
	nextID    int
	order     []int
}

// NewController returns a controller in the Empty state.
func NewController() *Controller {
	return &Controller{listeners: make(map[int]ChangeFunc)}
}

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Selected returns the selected region and whether there is one.
func (c *Controller) Selected() (atlas.Region, bool) {
	return c.state.region, c.state.IsSelected()
}

// Select makes r the selection, overwriting any previous one. Selecting the
// already-selected region is a no-op and notifies nobody.
func (c *Controller) Select(r atlas.Region) {
	c.transition(SelectedState(r))
}

// ClearIfOutside clears the selection when target is neither the detail
// panel nor one of its descendants in tree. A nil tree means nothing has
// been painted yet, so every target is outside. It reports whether the
// state changed.
func (c *Controller) ClearIfOutside(tree *scene.Tree, target scene.ElementID) bool {
	if tree.Contains(scene.Detail, target) {
		debug.Log("selection: press on %s inside detail panel, keeping %s", target, c.state)
		return false
	}
	return c.transition(EmptyState)
}

// Reconcile re-resolves the selection against a replacement catalog. The
// selected region is swapped for the catalog's record with the same name,
// or dropped when the catalog no longer has it.
func (c *Controller) Reconcile(cat *atlas.Catalog) bool {
	if !c.state.IsSelected() {
		return false
	}
	if r, ok := cat.Lookup(c.state.region.Name); ok {
		return c.transition(SelectedState(r))
	}
	return c.transition(EmptyState)
}

// OnChange registers fn to run after every transition. The returned release
// function unregisters it and may be called more than once.
func (c *Controller) OnChange(fn ChangeFunc) (release func()) {
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.order = append(c.order, id)
	released := false
	return func() {
		if released {
			return
		}
		released = true
		delete(c.listeners, id)
		for i, v := range c.order {
			if v == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
	}
}

func (c *Controller) transition(next State) bool {
	if next == c.state {
		return false
	}
	old := c.state
	c.state = next
	debug.Log("selection: %s -> %s", old, next)
	for _, id := range append([]int(nil), c.order...) {
		if fn, ok := c.listeners[id]; ok {
			fn(old, next)
		}
	}
	return true
}
