package core

import "iter"

// View is a read-only window onto one of the address book's lists. Each call
// reads the list as it is at that moment; there is no way to mutate it.
type View[E any] struct {
	snapshot func() []*E
}

// Len returns the current number of elements.
func (v View[E]) Len() int { return len(v.snapshot()) }

// Slice returns a copy of the current elements.
func (v View[E]) Slice() []*E { return v.snapshot() }

// All iterates the elements as they were when All was called.
func (v View[E]) All() iter.Seq2[int, *E] {
	items := v.snapshot()
	return func(yield func(int, *E) bool) {
		for i, e := range items {
			if !yield(i, e) {
				return
			}
		}
	}
}
