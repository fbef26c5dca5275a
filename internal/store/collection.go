package store

import (
	"slices"

	"github.com/google/uuid"
)

// collection is an insertion-ordered arena of records keyed by id.
// It is not safe for concurrent use; the owning store serializes access.
type collection[T any] struct {
	order   []uuid.UUID
	items   map[uuid.UUID]T
	retired map[uuid.UUID]struct{}
}

func newCollection[T any]() collection[T] {
	return collection[T]{
		items:   make(map[uuid.UUID]T),
		retired: make(map[uuid.UUID]struct{}),
	}
}

func (c *collection[T]) get(id uuid.UUID) (T, bool) {
	item, ok := c.items[id]
	return item, ok
}

// issue returns an id that has never been held by a record of this collection.
func (c *collection[T]) issue(newID func() uuid.UUID) uuid.UUID {
	for {
		id := newID()
		if _, live := c.items[id]; live {
			continue
		}
		if _, used := c.retired[id]; used {
			continue
		}
		return id
	}
}

func (c *collection[T]) insert(id uuid.UUID, item T) {
	c.order = append(c.order, id)
	c.items[id] = item
}

func (c *collection[T]) replace(id uuid.UUID, item T) {
	c.items[id] = item
}

func (c *collection[T]) remove(id uuid.UUID) (T, bool) {
	item, ok := c.items[id]
	if !ok {
		return item, false
	}
	delete(c.items, id)
	c.retired[id] = struct{}{}
	if i := slices.Index(c.order, id); i >= 0 {
		c.order = slices.Delete(c.order, i, i+1)
	}
	return item, true
}

// filter returns the records matching keep in insertion order. A nil keep matches all.
func (c *collection[T]) filter(keep func(T) bool) []T {
	list := make([]T, 0, len(c.order))
	for _, id := range c.order {
		item := c.items[id]
		if keep == nil || keep(item) {
			list = append(list, item)
		}
	}
	return list
}

func (c *collection[T]) len() int {
	return len(c.items)
}
