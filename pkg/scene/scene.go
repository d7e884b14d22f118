// Package scene keeps an explicit registry of the elements drawn on screen.
//
// A terminal has no retained element tree to ask "which element was
// clicked" or "is this element inside that one". Each frame, the view
// registers the rectangles it painted in a Tree; input handling then
// resolves a mouse cell to the deepest element under it and answers
// containment questions by walking parent links.
package scene

import (
	"errors"
	"fmt"
)

// ElementID names an element in the tree.
type ElementID string

// Well-known element IDs.
const (
	Root      ElementID = "root"
	Header    ElementID = "header"
	Diagram   ElementID = "diagram"
	Detail    ElementID = "detail"
	Resources ElementID = "resources"
	Footer    ElementID = "footer"
)

// HotspotID returns the element ID of the i-th catalog hotspot.
func HotspotID(i int) ElementID {
	return ElementID(fmt.Sprintf("hotspot/%d", i))
}

// LinkID returns the element ID of a named link inside a parent element.
func LinkID(parent ElementID, name string) ElementID {
	return ElementID(string(parent) + "/link/" + name)
}

// Errors returned by Add.
var (
	ErrUnknownParent    = errors.New("unknown parent element")
	ErrDuplicateElement = errors.New("duplicate element")
)

// Bounds is a cell rectangle in screen coordinates.
type Bounds struct {
	X, Y, W, H int
}

// Contains reports whether cell (x, y) lies inside b.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.X && x < b.X+b.W && y >= b.Y && y < b.Y+b.H
}

type element struct {
	id       ElementID
	parent   ElementID
	bounds   Bounds
	children []ElementID
}

// Tree is the set of elements painted in one frame. The zero value is not
// usable; call NewTree.
type Tree struct {
	elements map[ElementID]*element
}

// NewTree returns a tree containing only Root with the given screen size.
func NewTree(width, height int) *Tree {
	t := &Tree{elements: make(map[ElementID]*element)}
	t.elements[Root] = &element{id: Root, bounds: Bounds{W: width, H: height}}
	return t
}

// Add registers id as a child of parent. Children added later are treated as
// painted on top of earlier siblings.
func (t *Tree) Add(id, parent ElementID, b Bounds) error {
	if _, exists := t.elements[id]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateElement, id)
	}
	p, ok := t.elements[parent]
	if !ok {
		return fmt.Errorf("%w: %s (adding %s)", ErrUnknownParent, parent, id)
	}
	t.elements[id] = &element{id: id, parent: parent, bounds: b}
	p.children = append(p.children, id)
	return nil
}

// Has reports whether id is registered.
func (t *Tree) Has(id ElementID) bool {
	_, ok := t.elements[id]
	return ok
}

// Parent returns the parent of id. Root and unknown IDs have no parent.
func (t *Tree) Parent(id ElementID) (ElementID, bool) {
	e, ok := t.elements[id]
	if !ok || id == Root {
		return "", false
	}
	return e.parent, true
}

// Bounds returns the rectangle registered for id.
func (t *Tree) Bounds(id ElementID) (Bounds, bool) {
	e, ok := t.elements[id]
	if !ok {
		return Bounds{}, false
	}
	return e.bounds, true
}

// Contains reports whether target is ancestor itself or one of its
// descendants. Unknown IDs are contained by nothing.
func (t *Tree) Contains(ancestor, target ElementID) bool {
	if t == nil {
		return false
	}
	if _, ok := t.elements[ancestor]; !ok {
		return false
	}
	for id := target; ; {
		if id == ancestor {
			return true
		}
		e, ok := t.elements[id]
		if !ok || id == Root {
			return false
		}
		id = e.parent
	}
}

// HitTest returns the deepest element whose bounds contain (x, y). Among
// overlapping siblings the one added last wins. A child is only considered
// when its parent contains the point. Points outside everything resolve to
// Root.
func (t *Tree) HitTest(x, y int) ElementID {
	if t == nil {
		return Root
	}
	cur := t.elements[Root]
	for {
		var next *element
		for i := len(cur.children) - 1; i >= 0; i-- {
			if child := t.elements[cur.children[i]]; child.bounds.Contains(x, y) {
				next = child
				break
			}
		}
		if next == nil {
			return cur.id
		}
		cur = next
	}
}

// Len returns the number of registered elements, Root included.
func (t *Tree) Len() int {
	return len(t.elements)
}
