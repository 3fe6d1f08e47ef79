// Package transform composes the zoom, mirror and rotation applied to the
// annotated scene when it is presented.
package transform

import (
	"fmt"
	"image"
	"math"

	"github.com/example/snapmark/internal/geom"
)

// Slot names one of the independent matrices held by a Composer.
type Slot int

const (
	SlotScale Slot = iota
	SlotMirror
	SlotRotation
	slotCount
)

func (s Slot) String() string {
	switch s {
	case SlotScale:
		return "scale"
	case SlotMirror:
		return "mirror"
	case SlotRotation:
		return "rotation"
	}
	return fmt.Sprintf("slot(%d)", int(s))
}

// MinZoom is the smallest zoom factor SetZoom accepts.
const MinZoom = 0.1

// BorderPadding is added to each viewport dimension when the host window has
// no title bar.
const BorderPadding = 2

// Change records a slot update so it can be applied and reverted.
type Change struct {
	Slot     Slot
	Old, New Matrix
}

// Viewport describes the presented scene after a transform change.
type Viewport struct {
	Size image.Point
	View Matrix
	Zoom float64
}

// Composer holds the scale, mirror and rotation matrices and the view built
// from them. It is not safe for concurrent use.
type Composer struct {
	slots      [slotCount]Matrix
	view       Matrix
	scene      geom.Rect
	borderless bool
	observer   func(Viewport)
}

// NewComposer returns a Composer with identity transforms for a scene of the
// given size.
func NewComposer(size image.Point) *Composer {
	c := &Composer{}
	c.Reset(size)
	return c
}

// OnChange registers fn to be called after every recompute.
func (c *Composer) OnChange(fn func(Viewport)) {
	c.observer = fn
}

// SetBorderless toggles the padding added for windows without a title bar.
func (c *Composer) SetBorderless(b bool) {
	c.borderless = b
	c.recompute()
}

// Reset restores identity transforms for a new scene.
func (c *Composer) Reset(size image.Point) {
	for i := range c.slots {
		c.slots[i] = Identity()
	}
	c.scene = geom.Rect{W: float64(size.X), H: float64(size.Y)}
	c.recompute()
}

// Get returns the matrix currently held by slot.
func (c *Composer) Get(slot Slot) Matrix {
	return c.slots[slot]
}

// Set replaces the matrix held by slot and recomputes the view.
func (c *Composer) Set(slot Slot, m Matrix) {
	c.slots[slot] = m
	c.recompute()
}

// View returns scale ∘ mirror ∘ rotation. Rotation is applied first.
func (c *Composer) View() Matrix {
	return c.view
}

// Orientation returns mirror ∘ rotation without the zoom, used for output.
func (c *Composer) Orientation() Matrix {
	return c.slots[SlotMirror].Multiply(c.slots[SlotRotation])
}

// Zoom returns the uniform zoom factor.
func (c *Composer) Zoom() float64 {
	return c.slots[SlotScale][0]
}

// SetZoom replaces the scale matrix directly. Zoom is never recorded as an
// undoable change.
func (c *Composer) SetZoom(f float64) {
	if f < MinZoom || math.IsNaN(f) {
		f = MinZoom
	}
	c.Set(SlotScale, Scale(f, f))
}

// RotateBy returns the rotation change for turning the scene by degrees.
// The change is not applied.
func (c *Composer) RotateBy(degrees float64) Change {
	old := c.slots[SlotRotation]
	return Change{Slot: SlotRotation, Old: old, New: RotateDegrees(degrees).Multiply(old)}
}

// Mirror returns the change for flipping the scene horizontally and/or
// vertically. The change is not applied.
func (c *Composer) Mirror(horizontal, vertical bool) Change {
	sx, sy := 1.0, 1.0
	if horizontal {
		sx = -1
	}
	if vertical {
		sy = -1
	}
	old := c.slots[SlotMirror]
	return Change{Slot: SlotMirror, Old: old, New: Scale(sx, sy).Multiply(old)}
}

// Display returns the view translated so the presented scene starts at the
// origin.
func (c *Composer) Display() Matrix {
	return placeAtOrigin(c.view, c.scene)
}

// Oriented returns Orientation translated so the output starts at the origin.
func (c *Composer) Oriented() Matrix {
	return placeAtOrigin(c.Orientation(), c.scene)
}

// Viewport returns the presented size of the scene.
func (c *Composer) Viewport() Viewport {
	far := c.view.TransformPoint(c.scene.Max())
	w := int(math.Round(math.Abs(far.X)))
	h := int(math.Round(math.Abs(far.Y)))
	if c.borderless {
		w += BorderPadding
		h += BorderPadding
	}
	return Viewport{Size: image.Pt(w, h), View: c.view, Zoom: c.Zoom()}
}

func (c *Composer) recompute() {
	c.view = c.slots[SlotScale].Multiply(c.slots[SlotMirror]).Multiply(c.slots[SlotRotation])
	if c.observer != nil {
		c.observer(c.Viewport())
	}
}

func placeAtOrigin(m Matrix, scene geom.Rect) Matrix {
	b := m.TransformRect(scene)
	return Translate(-b.X, -b.Y).Multiply(m)
}
