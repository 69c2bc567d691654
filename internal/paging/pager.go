// Package paging turns a cursor-based range-query primitive into a stateful
// forward/backward pager with a fixed page size, an optional equality
// filter, and last-request-wins suppression of stale responses.
package paging

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned when a newer request finished first; the caller must
// discard the result.
var ErrStale = errors.New("stale page response")

// Cursor is an opaque handle to one item's position in the backing order.
// Pagers store and replay cursors but never interpret their contents.
type Cursor []byte

// Item pairs a fetched value with its position cursor.
type Item[T any] struct {
	Value  T
	Cursor Cursor
}

// Direction selects which window Load fetches relative to the current page.
type Direction int

const (
	First Direction = iota
	Next
	Prev
)

// FetchRequest describes one window of the backing store's fixed ordering
// (descending by creation time). Exactly one of After/Before may be set:
// After asks for up to Limit items past that cursor; Before asks for the
// last Limit items preceding it, still returned in forward order.
type FetchRequest struct {
	Filter string
	Limit  int
	After  Cursor
	Before Cursor
}

// Source is the backing store contract the pager drives.
type Source[T any] interface {
	FetchPage(ctx context.Context, req FetchRequest) ([]Item[T], error)
}

// Pager pages through a Source. All methods are safe for concurrent use;
// overlapping loads are resolved by discarding every response except the
// most recently issued one.
type Pager[T any] struct {
	src      Source[T]
	pageSize int

	mu      sync.Mutex
	token   uint64
	filter  string
	first   Cursor
	last    Cursor
	history []Cursor
	page    int
	hasNext bool
	loading bool
}

// Result is the visible outcome of a page load.
type Result[T any] struct {
	Items   []T
	HasNext bool
	HasPrev bool
	Page    int
}

// New builds a pager with the given fixed page size.
func New[T any](src Source[T], pageSize int) *Pager[T] {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Pager[T]{src: src, pageSize: pageSize, page: 1}
}

// Load fetches one page in the given direction. Next without a trailing
// cursor and Prev without a leading cursor are contract violations and
// return the current state untouched, without a store call.
func (p *Pager[T]) Load(ctx context.Context, dir Direction, filter string) (*Result[T], error) {
	p.mu.Lock()
	req := FetchRequest{Filter: filter, Limit: p.pageSize + 1}
	switch dir {
	case Next:
		if p.last == nil {
			res := p.snapshotLocked()
			p.mu.Unlock()
			return res, nil
		}
		req.After = p.last
	case Prev:
		if p.first == nil {
			res := p.snapshotLocked()
			p.mu.Unlock()
			return res, nil
		}
		req.Before = p.first
	}
	p.token++
	myToken := p.token
	p.filter = filter
	p.loading = true
	p.mu.Unlock()

	items, err := p.src.FetchPage(ctx, req)

	p.mu.Lock()
	defer p.mu.Unlock()

	// A newer request was issued while this one was in flight: drop the
	// response without touching pager state.
	if myToken != p.token {
		return nil, ErrStale
	}
	p.loading = false
	if err != nil {
		return nil, err
	}

	hasNext := len(items) > p.pageSize
	if hasNext {
		items = items[:p.pageSize]
	}

	p.hasNext = hasNext
	if len(items) > 0 {
		p.first = items[0].Cursor
		p.last = items[len(items)-1].Cursor
	} else {
		p.first = nil
		p.last = nil
	}

	values := make([]T, len(items))
	for i, it := range items {
		values[i] = it.Value
	}
	return &Result[T]{
		Items:   values,
		HasNext: hasNext,
		HasPrev: len(p.history) > 0,
		Page:    p.page,
	}, nil
}

// GoNext advances one page. It is a no-op while loading or when the current
// page reported no further items.
func (p *Pager[T]) GoNext(ctx context.Context) (*Result[T], error) {
	p.mu.Lock()
	if !p.hasNext || p.loading {
		res := p.snapshotLocked()
		p.mu.Unlock()
		return res, nil
	}
	if p.first != nil {
		p.history = append(p.history, p.first)
	}
	p.page++
	filter := p.filter
	p.mu.Unlock()

	return p.Load(ctx, Next, filter)
}

// GoPrev steps back one page. The popped history entry is informational; the
// backward query recomputes its own boundary from the current first cursor.
func (p *Pager[T]) GoPrev(ctx context.Context) (*Result[T], error) {
	p.mu.Lock()
	if len(p.history) == 0 || p.loading {
		res := p.snapshotLocked()
		p.mu.Unlock()
		return res, nil
	}
	p.history = p.history[:len(p.history)-1]
	if p.page > 1 {
		p.page--
	}
	filter := p.filter
	p.mu.Unlock()

	return p.Load(ctx, Prev, filter)
}

// SetFilter resets navigation state and loads the first page under the new
// filter.
func (p *Pager[T]) SetFilter(ctx context.Context, filter string) (*Result[T], error) {
	p.mu.Lock()
	p.history = nil
	p.page = 1
	p.first = nil
	p.last = nil
	p.hasNext = false
	p.mu.Unlock()

	return p.Load(ctx, First, filter)
}

// Filter returns the filter the pager is currently navigating under.
func (p *Pager[T]) Filter() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.filter
}

func (p *Pager[T]) snapshotLocked() *Result[T] {
	return &Result[T]{
		HasNext: p.hasNext,
		HasPrev: len(p.history) > 0,
		Page:    p.page,
	}
}
