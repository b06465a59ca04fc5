// Package memory holds process-local stores used by the memory database
// driver and by handler tests. Data is lost on restart.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"muhasebe-api/internal/core/ports"
)

// schema describes how a Collection reads its records.
type schema[T any] struct {
	name   string
	id     func(*T) string
	fields map[string]func(*T) string
	date   func(*T) time.Time // nil if records carry no date
	clone  func(T) T
	order  func(a, b *T) int // nil keeps insertion order
}

// Collection is a generic in-memory ports.RecordRepository.
type Collection[T any] struct {
	mu    sync.RWMutex
	s     schema[T]
	ids   []string
	items map[string]T
}

func newCollection[T any](s schema[T]) *Collection[T] {
	if s.clone == nil {
		s.clone = func(v T) T { return v }
	}
	return &Collection[T]{s: s, items: make(map[string]T)}
}

func (c *Collection[T]) Create(_ context.Context, rec *T) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.s.id(rec)
	if _, ok := c.items[id]; ok {
		return fmt.Errorf("%s: duplicate id %s", c.s.name, id)
	}
	c.items[id] = c.s.clone(*rec)
	c.ids = append(c.ids, id)
	return nil
}

func (c *Collection[T]) GetByID(_ context.Context, id string) (*T, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	rec, ok := c.items[id]
	if !ok {
		return nil, nil
	}
	out := c.s.clone(rec)
	return &out, nil
}

func (c *Collection[T]) List(_ context.Context, filter ports.Filter, page ports.Page) ([]T, int64, error) {
	for field := range filter.Eq {
		if _, ok := c.s.fields[field]; !ok {
			return nil, 0, fmt.Errorf("%s: unknown filter field %q", c.s.name, field)
		}
	}
	if filter.HasDate() && c.s.date == nil {
		return nil, 0, fmt.Errorf("%s: collection has no date field", c.s.name)
	}

	c.mu.RLock()
	matches := make([]T, 0)
	for _, id := range c.ids {
		rec := c.items[id]
		if c.matches(&rec, filter) {
			matches = append(matches, c.s.clone(rec))
		}
	}
	c.mu.RUnlock()

	if c.s.order != nil {
		slices.SortStableFunc(matches, func(a, b T) int { return c.s.order(&a, &b) })
	}

	total := int64(len(matches))
	if page.Unbounded() {
		return matches, total, nil
	}
	start := min(page.Offset(), len(matches))
	end := min(start+page.PageSize, len(matches))
	return matches[start:end], total, nil
}

func (c *Collection[T]) matches(rec *T, filter ports.Filter) bool {
	for field, want := range filter.Eq {
		if c.s.fields[field](rec) != want {
			return false
		}
	}
	if filter.HasDate() && !filter.MatchesDate(c.s.date(rec)) {
		return false
	}
	return true
}

func (c *Collection[T]) Replace(_ context.Context, rec *T) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.s.id(rec)
	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	c.items[id] = c.s.clone(*rec)
	return true, nil
}

func (c *Collection[T]) Delete(_ context.Context, id string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.items[id]; !ok {
		return false, nil
	}
	delete(c.items, id)
	c.ids = slices.DeleteFunc(c.ids, func(v string) bool { return v == id })
	return true, nil
}

// find returns a copy of the first record satisfying pred.
func (c *Collection[T]) find(pred func(*T) bool) *T {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, id := range c.ids {
		rec := c.items[id]
		if pred(&rec) {
			out := c.s.clone(rec)
			return &out
		}
	}
	return nil
}

func (c *Collection[T]) update(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	rec, ok := c.items[id]
	if !ok {
		return false
	}
	fn(&rec)
	c.items[id] = rec
	return true
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func cloneString(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
