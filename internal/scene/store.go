package scene

import (
	"image"
	"image/draw"
	"slices"

	"github.com/google/uuid"
)

// Store is the captured image and the items committed over it, in paint
// order. The scene bounds are fixed until Reset. Store is not safe for
// concurrent use.
type Store struct {
	base     *image.RGBA
	items    []*Item
	snapshot *image.RGBA
}

// NewStore returns a store over a copy of base.
func NewStore(base image.Image) *Store {
	s := &Store{}
	s.Reset(base)
	return s
}

// Reset replaces the scene image and removes every item.
func (s *Store) Reset(base image.Image) {
	var b image.Rectangle
	if base != nil {
		b = base.Bounds()
	}
	s.base = image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if base != nil {
		draw.Draw(s.base, s.base.Bounds(), base, b.Min, draw.Src)
	}
	s.items = nil
	s.snapshot = nil
}

// Bounds returns the scene rectangle. It always has a zero origin.
func (s *Store) Bounds() image.Rectangle { return s.base.Bounds() }

// Size returns the width and height of the scene.
func (s *Store) Size() image.Point { return s.base.Bounds().Size() }

// Base returns the captured image without annotations.
func (s *Store) Base() *image.RGBA { return s.base }

// Add appends it to the paint order. Items are keyed by ID, so an item
// whose ID is already present is not added again. It reports whether it was
// added.
func (s *Store) Add(it *Item) bool {
	if it == nil || s.index(it.ID) >= 0 {
		return false
	}
	s.items = append(s.items, it)
	s.snapshot = nil
	return true
}

// Remove takes the item with the given ID out of the scene and returns it,
// or nil when no such item is present.
func (s *Store) Remove(id uuid.UUID) *Item {
	i := s.index(id)
	if i < 0 {
		return nil
	}
	it := s.items[i]
	s.items = slices.Delete(s.items, i, i+1)
	s.snapshot = nil
	return it
}

// Find returns the item with the given ID.
func (s *Store) Find(id uuid.UUID) (*Item, bool) {
	if i := s.index(id); i >= 0 {
		return s.items[i], true
	}
	return nil, false
}

// Contains reports whether an item with the given ID is part of the scene.
func (s *Store) Contains(id uuid.UUID) bool { return s.index(id) >= 0 }

func (s *Store) index(id uuid.UUID) int {
	return slices.IndexFunc(s.items, func(it *Item) bool { return it.ID == id })
}

// Items returns the committed items in paint order.
func (s *Store) Items() []*Item { return slices.Clone(s.items) }

// Len returns the number of committed items.
func (s *Store) Len() int { return len(s.items) }

// Snapshot returns the base image with every committed item painted. The
// result is cached until the store changes and must not be modified.
func (s *Store) Snapshot() *image.RGBA {
	if s.snapshot == nil {
		img := image.NewRGBA(s.base.Bounds())
		copy(img.Pix, s.base.Pix)
		for _, it := range s.items {
			Draw(img, it)
		}
		s.snapshot = img
	}
	return s.snapshot
}

// Render returns a new image of the committed scene with draft painted on
// top. draft may be nil.
func (s *Store) Render(draft *Item) *image.RGBA {
	snap := s.Snapshot()
	img := image.NewRGBA(snap.Bounds())
	copy(img.Pix, snap.Pix)
	if draft != nil {
		Draw(img, draft)
	}
	return img
}
