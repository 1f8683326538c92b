// Package optimistic keeps a local, ordered copy of a remote collection and
// applies mutations to it before the remote store confirms them. Every
// mutation that the store rejects is rolled back so the local copy never
// drifts from what was committed.
package optimistic

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/supacrm/internal/common"
	"github.com/dmitrijs2005/supacrm/internal/logging"
	"github.com/dmitrijs2005/supacrm/internal/models"
)

// Entity is an item with a store-assigned identifier.
type Entity[T any] interface {
	Key() string
	WithKey(id string) T
}

// Store is the remote side of one collection.
type Store[T any] interface {
	Select(ctx context.Context) ([]T, error)
	Insert(ctx context.Context, item T) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id string) error
}

// InsertSelector is implemented by stores that can insert an item and read
// the collection back atomically. InsertThenReload uses it when available.
type InsertSelector[T any] interface {
	InsertAndSelect(ctx context.Context, item T) (T, []T, error)
}

// Confirmer asks the operator to approve a destructive action.
type Confirmer interface {
	Confirm(ctx context.Context, prompt string) (bool, error)
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(ctx context.Context, prompt string) (bool, error)

func (f ConfirmFunc) Confirm(ctx context.Context, prompt string) (bool, error) {
	return f(ctx, prompt)
}

// AlwaysConfirm approves every prompt.
var AlwaysConfirm Confirmer = ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })

// Mode selects how Add reflects a new entry locally.
type Mode int

const (
	// InsertPlaceholder shows the entry under a placeholder id while the
	// insert is in flight and swaps in the stored row once it succeeds.
	InsertPlaceholder Mode = iota
	// InsertThenReload waits for the insert and then reloads the collection.
	InsertThenReload
)

// Controller owns the local copy of one collection. Mutating operations are
// serialized; Items, Get and Len may be called concurrently with them and
// observe the optimistic state.
type Controller[T Entity[T]] struct {
	name    string
	store   Store[T]
	mode    Mode
	log     logging.Logger
	confirm Confirmer

	ops sync.Mutex

	mu    sync.RWMutex
	items []T
}

// New builds a controller for the collection called name. A nil confirmer
// approves every removal; a nil logger discards output.
func New[T Entity[T]](name string, store Store[T], mode Mode, log logging.Logger, confirm Confirmer) *Controller[T] {
	if log == nil {
		log = logging.NewNop()
	}
	if confirm == nil {
		confirm = AlwaysConfirm
	}
	return &Controller[T]{
		name:    name,
		store:   store,
		mode:    mode,
		log:     log.With("collection", name),
		confirm: confirm,
	}
}

func (c *Controller[T]) Name() string { return c.name }

// Items returns a copy of the collection in display order.
func (c *Controller[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.items)
}

func (c *Controller[T]) Get(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if i := c.indexLocked(id); i >= 0 {
		return c.items[i], true
	}
	var zero T
	return zero, false
}

func (c *Controller[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Load replaces the collection with the store's contents. On failure the
// previous contents are kept.
func (c *Controller[T]) Load(ctx context.Context) ([]T, error) {
	c.ops.Lock()
	defer c.ops.Unlock()

	rows, err := c.store.Select(ctx)
	if err != nil {
		c.log.Warn(ctx, "load failed", "err", err)
		return nil, fmt.Errorf("%w: load %s: %w", common.ErrRemoteRead, c.name, err)
	}

	c.mu.Lock()
	c.items = slices.Clone(rows)
	c.mu.Unlock()

	c.log.Debug(ctx, "collection loaded", "count", len(rows))
	return slices.Clone(rows), nil
}

// Add inserts item remotely and returns the stored row, which carries the
// store-assigned id.
func (c *Controller[T]) Add(ctx context.Context, item T) (T, error) {
	c.ops.Lock()
	defer c.ops.Unlock()

	if c.mode == InsertThenReload {
		return c.addThenReload(ctx, item)
	}
	return c.addWithPlaceholder(ctx, item)
}

func (c *Controller[T]) addWithPlaceholder(ctx context.Context, item T) (T, error) {
	var zero T
	placeholder := models.NewPlaceholderID()

	c.mu.Lock()
	c.items = append(c.items, item.WithKey(placeholder))
	c.mu.Unlock()

	saved, err := c.store.Insert(ctx, item.WithKey(""))

	c.mu.Lock()
	defer c.mu.Unlock()
	i := c.indexLocked(placeholder)

	if err != nil {
		if i >= 0 {
			c.items = slices.Delete(c.items, i, i+1)
		}
		c.log.Warn(ctx, "add rolled back", "err", err)
		return zero, c.writeErr("add", err)
	}

	if i >= 0 {
		c.items[i] = saved
	} else {
		c.items = append(c.items, saved)
	}
	c.log.Info(ctx, "entry added", "id", saved.Key())
	return saved, nil
}

func (c *Controller[T]) addThenReload(ctx context.Context, item T) (T, error) {
	var zero T

	if tx, ok := c.store.(InsertSelector[T]); ok {
		saved, rows, err := tx.InsertAndSelect(ctx, item.WithKey(""))
		if err != nil {
			c.log.Warn(ctx, "add rejected", "err", err)
			return zero, c.writeErr("add", err)
		}
		c.log.Info(ctx, "entry added", "id", saved.Key())

		c.mu.Lock()
		defer c.mu.Unlock()
		c.items = slices.Clone(rows)
		if c.indexLocked(saved.Key()) < 0 {
			c.items = append(c.items, saved)
		}
		return saved, nil
	}

	saved, err := c.store.Insert(ctx, item.WithKey(""))
	if err != nil {
		c.log.Warn(ctx, "add rejected", "err", err)
		return zero, c.writeErr("add", err)
	}
	c.log.Info(ctx, "entry added", "id", saved.Key())

	rows, err := c.store.Select(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		// The insert committed, so the new row is shown even without a reload.
		c.log.Warn(ctx, "reload after add failed", "id", saved.Key(), "err", err)
		if c.indexLocked(saved.Key()) < 0 {
			c.items = append(c.items, saved)
		}
		return saved, nil
	}

	c.items = slices.Clone(rows)
	if c.indexLocked(saved.Key()) < 0 {
		c.items = append(c.items, saved)
	}
	return saved, nil
}

// Update applies patch to the entry with the given id, locally first and then
// remotely. The id is preserved whatever patch returns. When the store
// rejects the change the entry is restored to its previous value.
func (c *Controller[T]) Update(ctx context.Context, id string, patch func(T) T) (T, error) {
	c.ops.Lock()
	defer c.ops.Unlock()

	var zero T

	c.mu.Lock()
	i := c.indexLocked(id)
	if i < 0 {
		c.mu.Unlock()
		return zero, fmt.Errorf("%s %s: %w", c.name, id, common.ErrNotFound)
	}
	prev := c.items[i]
	next := patch(prev).WithKey(id)
	c.items[i] = next
	c.mu.Unlock()

	if err := c.store.Update(ctx, next); err != nil {
		c.mu.Lock()
		if j := c.indexLocked(id); j >= 0 {
			c.items[j] = prev
		}
		c.mu.Unlock()

		c.log.Warn(ctx, "update rolled back", "id", id, "err", err)
		return zero, c.writeErr("update", err)
	}

	c.log.Info(ctx, "entry updated", "id", id)
	return next, nil
}

// Remove deletes the entry with the given id after the confirmer approves.
// If the store rejects the delete the entry returns to its old position.
func (c *Controller[T]) Remove(ctx context.Context, id string) error {
	c.ops.Lock()
	defer c.ops.Unlock()

	if _, ok := c.Get(id); !ok {
		return fmt.Errorf("%s %s: %w", c.name, id, common.ErrNotFound)
	}

	ok, err := c.confirm.Confirm(ctx, fmt.Sprintf("Delete %s entry %s?", c.name, id))
	if err != nil {
		return fmt.Errorf("confirm: %w", err)
	}
	if !ok {
		return common.ErrCanceled
	}

	c.mu.Lock()
	i := c.indexLocked(id)
	removed := c.items[i]
	c.items = slices.Delete(c.items, i, i+1)
	c.mu.Unlock()

	if err := c.store.Delete(ctx, id); err != nil {
		c.mu.Lock()
		c.items = slices.Insert(c.items, min(i, len(c.items)), removed)
		c.mu.Unlock()

		c.log.Warn(ctx, "remove rolled back", "id", id, "err", err)
		return c.writeErr("remove", err)
	}

	c.log.Info(ctx, "entry removed", "id", id)
	return nil
}

func (c *Controller[T]) indexLocked(id string) int {
	return slices.IndexFunc(c.items, func(it T) bool { return it.Key() == id })
}

func (c *Controller[T]) writeErr(op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", common.ErrRemoteWrite, op, c.name, err)
}
