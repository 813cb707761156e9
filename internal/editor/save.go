package editor

import (
	"context"
	"sync/atomic"
)

// PersistFunc stores an ordered-ID list as the block's customOrder
// attribute, as a single wholesale replacement.
type PersistFunc func(ctx context.Context, ids []int64) error

// SaveController validates and persists the order produced by a
// Surface, exposing a busy flag for UI feedback while the write is in
// flight.
type SaveController struct {
	persist PersistFunc
	onDone  func()
	busy    atomic.Bool
}

// NewSaveController creates a controller. onDone is called after a
// persistence attempt is dispatched (typically closing the editing
// surface); it may be nil.
func NewSaveController(persist PersistFunc, onDone func()) *SaveController {
	return &SaveController{persist: persist, onDone: onDone}
}

// Busy reports whether a save is in flight.
func (c *SaveController) Busy() bool {
	return c.busy.Load()
}

// Save filters ids to positive integers and persists the result as one
// atomic attribute replacement. An empty filtered list is a no-op;
// there is nothing meaningful to replace the saved order with.
func (c *SaveController) Save(ctx context.Context, ids []int64) error {
	filtered := FilterIDs(ids)
	if len(filtered) == 0 {
		return nil
	}

	c.busy.Store(true)
	defer c.busy.Store(false)

	err := c.persist(ctx, filtered)
	if c.onDone != nil {
		c.onDone()
	}
	return err
}

// FilterIDs drops non-positive entries from an ordered-ID list.
// Duplicates are preserved; only the first occurrence is honored at
// read time, so deduplicating here would be cosmetic.
func FilterIDs(ids []int64) []int64 {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 {
			out = append(out, id)
		}
	}
	return out
}
