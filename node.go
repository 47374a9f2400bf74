package reveal

import "slices"

// --- ID counter ---

// elementIDCounter is a plain counter (not atomic; Documents are single-threaded).
var elementIDCounter uint32

func nextElementID() uint32 {
	elementIDCounter++
	return elementIDCounter
}

// --- Element ---

// Element is a node in a Document: a DOM-like box with attributes, classes,
// a style and an optional transition declaration. The layout box (X, Y,
// Width, Height) is relative to the parent and is owned by the host; the
// engine only reads it.
type Element struct {
	// Identity
	ID  uint32
	Tag string

	// Hierarchy
	Parent   *Element
	children []*Element

	// Layout box, local to Parent
	X, Y          float64
	Width, Height float64

	// Fill is the color Document.Draw paints the box with.
	Fill Color

	// Path is an optional polyline in local coordinates. Elements carrying
	// one can be targets of motion-path placement.
	Path []Vec2

	attrs      map[string]string
	classes    []string
	style      Style
	override   *Style // set while a keyframe animation runs
	transition *Transition
	motion     Vec2 // motion-path placement, added on top of the style

	doc      *Document // only set on a document root
	disposed bool
}

// NewElement creates a detached element with the resting visible style.
func NewElement(tag string) *Element {
	return &Element{
		ID:    nextElementID(),
		Tag:   tag,
		Fill:  ColorWhite,
		style: Visible(),
	}
}

// NewBox is a convenience constructor for an element with a layout box.
func NewBox(tag string, x, y, w, h float64) *Element {
	e := NewElement(tag)
	e.X, e.Y, e.Width, e.Height = x, y, w, h
	return e
}

// --- Attributes ---

// Attr returns the attribute value and whether it is present.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[name]
	return v, ok
}

// HasAttr reports whether the attribute is present, whatever its value.
func (e *Element) HasAttr(name string) bool {
	_, ok := e.attrs[name]
	return ok
}

// SetAttr sets an attribute. Returns e for chaining.
func (e *Element) SetAttr(name, value string) *Element {
	if e.attrs == nil {
		e.attrs = make(map[string]string)
	}
	e.attrs[name] = value
	return e
}

// RemoveAttr deletes an attribute. No-op if absent.
func (e *Element) RemoveAttr(name string) {
	delete(e.attrs, name)
}

// --- Classes ---

// AddClass adds a class name. Duplicates are ignored.
func (e *Element) AddClass(name string) {
	if name == "" || e.HasClass(name) {
		return
	}
	e.classes = append(e.classes, name)
}

// RemoveClass removes a class name. No-op if absent.
func (e *Element) RemoveClass(name string) {
	if i := slices.Index(e.classes, name); i >= 0 {
		e.classes = slices.Delete(e.classes, i, i+1)
	}
}

// HasClass reports whether the element carries the class.
func (e *Element) HasClass(name string) bool {
	return slices.Contains(e.classes, name)
}

// Classes returns the class list. The returned slice MUST NOT be mutated.
func (e *Element) Classes() []string {
	return e.classes
}

// --- Style ---

// Style returns the computed style: the running keyframe frame if any,
// otherwise the (possibly transitioning) element style.
func (e *Element) Style() Style {
	if e.override != nil {
		return *e.override
	}
	return e.style
}

// SetStyle changes the element style. When the element has a transition
// declaration and belongs to a Document, the change animates from the
// current value; otherwise it applies at once.
func (e *Element) SetStyle(s Style) {
	if doc := e.document(); doc != nil && e.transition != nil {
		doc.startTransition(e, s)
		return
	}
	e.style = s
}

// SetStyleImmediate applies s without any transition, cancelling a
// transition already in flight.
func (e *Element) SetStyleImmediate(s Style) {
	if doc := e.document(); doc != nil {
		doc.cancelTransition(e)
	}
	e.style = s
}

// Transition returns the element's transition declaration, or nil.
func (e *Element) Transition() *Transition {
	return e.transition
}

// SetTransition replaces the transition declaration. nil removes it; a
// transition already in flight keeps running to its end.
func (e *Element) SetTransition(t *Transition) {
	e.transition = t
}

// MotionOffset returns the displacement applied by motion-path placement.
func (e *Element) MotionOffset() Vec2 {
	return e.motion
}

// SetMotionOffset sets the motion-path displacement.
func (e *Element) SetMotionOffset(v Vec2) {
	e.motion = v
}

// --- Tree manipulation ---

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	e.AddChildAt(child, len(e.children))
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	if child == nil {
		panic("reveal: cannot add nil child")
	}
	if child.disposed || e.disposed {
		panic("reveal: AddChild on disposed element")
	}
	if isAncestor(child, e) {
		panic("reveal: adding child would create a cycle")
	}
	if child.Parent != nil {
		child.Parent.RemoveChild(child)
	}
	if index < 0 || index > len(e.children) {
		panic("reveal: child index out of range")
	}
	child.Parent = e
	e.children = slices.Insert(e.children, index, child)
	if doc := e.document(); doc != nil {
		doc.recordMutation(MutationRecord{Target: e, Added: []*Element{child}})
	}
}

// RemoveChild detaches child from this element.
// Panics if child.Parent != e.
func (e *Element) RemoveChild(child *Element) {
	if child.Parent != e {
		panic("reveal: child's parent is not this element")
	}
	doc := e.document()
	if i := slices.Index(e.children, child); i >= 0 {
		e.children = slices.Delete(e.children, i, i+1)
	}
	child.Parent = nil
	if doc != nil {
		doc.recordMutation(MutationRecord{Target: e, Removed: []*Element{child}})
	}
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.Parent == nil {
		return
	}
	e.Parent.RemoveChild(e)
}

// Children returns the child list. The returned slice MUST NOT be mutated by the caller.
func (e *Element) Children() []*Element {
	return e.children
}

// NumChildren returns the number of children.
func (e *Element) NumChildren() int {
	return len(e.children)
}

// Walk visits e and its descendants in document (pre-)order. Returning false
// from fn skips the subtree below that element.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, c := range e.children {
		c.Walk(fn)
	}
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	return other != nil && isAncestor(e, other)
}

// --- Geometry ---

// Bounds returns the element's layout box in document coordinates.
func (e *Element) Bounds() Rect {
	r := Rect{X: e.X, Y: e.Y, Width: e.Width, Height: e.Height}
	for p := e.Parent; p != nil; p = p.Parent {
		r.X += p.X
		r.Y += p.Y
	}
	return r
}

// --- Disposal ---

// Dispose removes this element from its parent, marks it as disposed,
// and recursively disposes all descendants.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.disposed = true
	for _, child := range e.children {
		child.Parent = nil
		child.dispose()
	}
	e.children = nil
	e.override = nil
	e.transition = nil
}

// IsDisposed returns true if this element has been disposed.
func (e *Element) IsDisposed() bool {
	return e.disposed
}

// IsConnected reports whether the element is attached to a Document tree.
func (e *Element) IsConnected() bool {
	return e.document() != nil
}

// --- Helpers ---

// document walks to the root and returns its Document, or nil when the
// element is detached.
func (e *Element) document() *Document {
	if e.disposed {
		return nil
	}
	r := e
	for r.Parent != nil {
		r = r.Parent
	}
	return r.doc
}

// isAncestor reports whether candidate is node or an ancestor of node.
func isAncestor(candidate, node *Element) bool {
	for p := node; p != nil; p = p.Parent {
		if p == candidate {
			return true
		}
	}
	return false
}
