package core

import (
	"foodwhere/pkg/domain"
	"slices"
)

// UniqueList is an ordered collection that never holds two elements the
// identity function considers the same. Elements are pointers to immutable
// entities; the list owns its backing slice and hands out copies.
type UniqueList[E any] struct {
	entity domain.EntityType
	same   func(a, b *E) bool
	key    func(*E) string
	items  []*E
}

// NewStallList returns an empty list keyed by stall name.
func NewStallList() *UniqueList[domain.Stall] {
	return &UniqueList[domain.Stall]{
		entity: domain.EntityStall,
		same:   (*domain.Stall).SameStall,
		key:    func(s *domain.Stall) string { return s.Name().String() },
	}
}

// NewReviewList returns an empty list keyed by review owner, date, content
// and details.
func NewReviewList() *UniqueList[domain.Review] {
	return &UniqueList[domain.Review]{
		entity: domain.EntityReview,
		same:   (*domain.Review).SameReview,
		key:    (*domain.Review).Key,
	}
}

// Len returns the number of elements.
func (l *UniqueList[E]) Len() int { return len(l.items) }

// Items returns a copy of the elements in order.
func (l *UniqueList[E]) Items() []*E { return slices.Clone(l.items) }

// Contains reports whether an element with the same identity is present.
func (l *UniqueList[E]) Contains(item *E) bool {
	return item != nil && l.indexOf(item) >= 0
}

// Find returns the element matching pred.
func (l *UniqueList[E]) Find(pred func(*E) bool) (*E, bool) {
	i := slices.IndexFunc(l.items, pred)
	if i < 0 {
		return nil, false
	}
	return l.items[i], true
}

// Add appends item.
func (l *UniqueList[E]) Add(item *E) error {
	if item == nil {
		return domain.NullArgumentError{Argument: string(l.entity)}
	}
	if l.indexOf(item) >= 0 {
		return domain.DuplicateEntityError{Entity: l.entity, Key: l.key(item)}
	}
	l.items = append(l.items, item)
	return nil
}

// Set replaces target with replacement in place. replacement may share
// target's identity; it may not collide with any other element.
func (l *UniqueList[E]) Set(target, replacement *E) error {
	if target == nil {
		return domain.NullArgumentError{Argument: "target " + string(l.entity)}
	}
	if replacement == nil {
		return domain.NullArgumentError{Argument: "edited " + string(l.entity)}
	}
	i := l.indexOf(target)
	if i < 0 {
		return domain.EntityNotFoundError{Entity: l.entity, Key: l.key(target)}
	}
	if !l.same(target, replacement) && l.indexOf(replacement) >= 0 {
		return domain.DuplicateEntityError{Entity: l.entity, Key: l.key(replacement)}
	}
	l.items[i] = replacement
	return nil
}

// Remove deletes the element with item's identity.
func (l *UniqueList[E]) Remove(item *E) error {
	if item == nil {
		return domain.NullArgumentError{Argument: string(l.entity)}
	}
	i := l.indexOf(item)
	if i < 0 {
		return domain.EntityNotFoundError{Entity: l.entity, Key: l.key(item)}
	}
	l.items = slices.Delete(l.items, i, i+1)
	return nil
}

// SetAll replaces the contents with items. The list is unchanged when items
// contains a nil or two elements with the same identity.
func (l *UniqueList[E]) SetAll(items []*E) error {
	next := make([]*E, 0, len(items))
	for _, item := range items {
		if item == nil {
			return domain.NullArgumentError{Argument: string(l.entity)}
		}
		if slices.ContainsFunc(next, func(e *E) bool { return l.same(e, item) }) {
			return domain.DuplicateEntityError{Entity: l.entity, Key: l.key(item)}
		}
		next = append(next, item)
	}
	l.items = next
	return nil
}

// Sort orders the elements with a stable sort.
func (l *UniqueList[E]) Sort(cmp func(a, b *E) int) {
	slices.SortStableFunc(l.items, cmp)
}

// Reconcile makes the list hold exactly current. Elements already present
// and equal under eq keep their relative order; the rest of current is
// appended in the order given.
func (l *UniqueList[E]) Reconcile(current []*E, eq func(a, b *E) bool) {
	kept := make([]*E, 0, len(current))
	for _, item := range l.items {
		if slices.ContainsFunc(current, func(c *E) bool { return eq(c, item) }) {
			kept = append(kept, item)
		}
	}
	for _, item := range current {
		if !slices.ContainsFunc(kept, func(k *E) bool { return eq(k, item) }) {
			kept = append(kept, item)
		}
	}
	l.items = kept
}

func (l *UniqueList[E]) clone() *UniqueList[E] {
	cp := *l
	cp.items = slices.Clone(l.items)
	return &cp
}

func (l *UniqueList[E]) indexOf(item *E) int {
	return slices.IndexFunc(l.items, func(e *E) bool { return l.same(e, item) })
}
