package editor

import (
	"github.com/example/snapmark/internal/scene"
	"github.com/example/snapmark/internal/transform"
)

// addItem owns a committed item. The store only refers to it, by ID, while
// the command is applied.
type addItem struct {
	store *scene.Store
	item  *scene.Item
}

func (c *addItem) Redo()    { c.store.Add(c.item) }
func (c *addItem) Undo()    { c.store.Remove(c.item.ID) }
func (c *addItem) Discard() { c.item.Discard() }

// transformChange swaps one composer slot between two matrices.
type transformChange struct {
	composer *transform.Composer
	change   transform.Change
}

func (c *transformChange) Redo() { c.composer.Set(c.change.Slot, c.change.New) }
func (c *transformChange) Undo() { c.composer.Set(c.change.Slot, c.change.Old) }
