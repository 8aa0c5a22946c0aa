package repository

import "sort"

// View is an immutable snapshot of a collection. Every method returns a new
// View or a copy; the underlying slice is never handed out.
type View[T any] struct {
	items []T
}

// NewView copies items into a View.
func NewView[T any](items []T) View[T] {
	cp := make([]T, len(items))
	copy(cp, items)
	return View[T]{items: cp}
}

// Len returns the number of entities in the view.
func (v View[T]) Len() int { return len(v.items) }

// Items returns a copy of the entities.
func (v View[T]) Items() []T {
	cp := make([]T, len(v.items))
	copy(cp, v.items)
	return cp
}

// Where keeps the entities for which keep returns true.
func (v View[T]) Where(keep func(T) bool) View[T] {
	out := make([]T, 0, len(v.items))
	for _, item := range v.items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return View[T]{items: out}
}

// First returns the first entity matching match.
func (v View[T]) First(match func(T) bool) (T, bool) {
	for _, item := range v.items {
		if match(item) {
			return item, true
		}
	}
	var zero T
	return zero, false
}

// SortBy returns a stably sorted copy.
func (v View[T]) SortBy(less func(a, b T) bool) View[T] {
	out := v.Items()
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return View[T]{items: out}
}

// MapView projects every entity of v through fn.
func MapView[T, U any](v View[T], fn func(T) U) []U {
	out := make([]U, len(v.items))
	for i, item := range v.items {
		out[i] = fn(item)
	}
	return out
}
