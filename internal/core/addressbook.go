package core

import (
	"fmt"
	"foodwhere/pkg/domain"
	"slices"
	"sync"
)

// AddressBook is the aggregate root. It holds the authoritative stall list
// and a flat review list derived from the reviews embedded in each stall.
// Every mutation runs against a copy of the stall list and is committed only
// when it succeeds, after which the review list is reconciled and
// subscribers are notified.
type AddressBook struct {
	mu      sync.RWMutex
	stalls  *UniqueList[domain.Stall]
	reviews *UniqueList[domain.Review]
	version uint64
	subs    subscribers
}

// NewAddressBook returns an empty address book.
func NewAddressBook() *AddressBook {
	return &AddressBook{
		stalls:  NewStallList(),
		reviews: NewReviewList(),
	}
}

// NewAddressBookFrom returns an address book holding stalls.
func NewAddressBookFrom(stalls []*domain.Stall) (*AddressBook, error) {
	ab := NewAddressBook()
	if err := ab.stalls.SetAll(stalls); err != nil {
		return nil, err
	}
	ab.refresh()
	return ab, nil
}

// DeriveReviews flattens the embedded reviews of stalls in stall order.
func DeriveReviews(stalls []*domain.Stall) []*domain.Review {
	var out []*domain.Review
	for _, s := range stalls {
		out = append(out, s.Reviews()...)
	}
	return out
}

// Version increases by one on every committed mutation.
func (ab *AddressBook) Version() uint64 {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.version
}

// Subscribe registers for change notifications. The returned function
// unsubscribes and closes the channel.
func (ab *AddressBook) Subscribe() (<-chan Change, func()) {
	return ab.subs.subscribe()
}

// HasStall reports whether a stall with the same name is present. A nil
// stall is never present.
func (ab *AddressBook) HasStall(s *domain.Stall) bool {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.stalls.Contains(s)
}

// HasReview reports whether a review with the same owner, date, content and
// details is present. A nil review is never present.
func (ab *AddressBook) HasReview(r *domain.Review) bool {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.reviews.Contains(r)
}

// FindStall returns the stall with the given name.
func (ab *AddressBook) FindStall(name domain.Name) (*domain.Stall, bool) {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.stalls.Find(func(s *domain.Stall) bool { return s.Name() == name })
}

// ReviewOwner returns the stall whose embedded reviews include r.
func (ab *AddressBook) ReviewOwner(r *domain.Review) (*domain.Stall, bool) {
	if r == nil {
		return nil, false
	}
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ownerOf(ab.stalls, r)
}

// AddStall appends s to the stall list.
func (ab *AddressBook) AddStall(s *domain.Stall) error {
	if s == nil {
		return domain.NullArgumentError{Argument: "stall"}
	}
	return ab.mutate(domain.EntityStall, ActionCreate, func(stalls *UniqueList[domain.Stall]) error {
		return stalls.Add(s)
	})
}

// SetStall replaces target with edited. When the name changes, the reviews
// embedded in target are carried over and re-keyed to the new name.
func (ab *AddressBook) SetStall(target, edited *domain.Stall) error {
	if target == nil {
		return domain.NullArgumentError{Argument: "target stall"}
	}
	if edited == nil {
		return domain.NullArgumentError{Argument: "edited stall"}
	}
	return ab.mutate(domain.EntityStall, ActionUpdate, func(stalls *UniqueList[domain.Stall]) error {
		current, ok := stalls.Find(target.SameStall)
		if !ok {
			return domain.EntityNotFoundError{Entity: domain.EntityStall, Key: target.Name().String()}
		}
		replacement := edited
		if edited.Name() != current.Name() {
			name, address, details := edited.Name(), edited.Address(), edited.Details()
			var err error
			replacement, err = domain.StallPatch{Name: &name, Address: &address, Details: &details}.Apply(current)
			if err != nil {
				return err
			}
		}
		return stalls.Set(current, replacement)
	})
}

// RemoveStall deletes s together with its embedded reviews.
func (ab *AddressBook) RemoveStall(s *domain.Stall) error {
	if s == nil {
		return domain.NullArgumentError{Argument: "stall"}
	}
	return ab.mutate(domain.EntityStall, ActionDelete, func(stalls *UniqueList[domain.Stall]) error {
		return stalls.Remove(s)
	})
}

// AddReview embeds r in the stall it names.
func (ab *AddressBook) AddReview(r *domain.Review) error {
	if r == nil {
		return domain.NullArgumentError{Argument: "review"}
	}
	return ab.mutate(domain.EntityReview, ActionCreate, func(stalls *UniqueList[domain.Stall]) error {
		return addEmbedded(stalls, r)
	})
}

// SetReview replaces target with edited inside the owning stall. When edited
// names another stall the review moves there.
func (ab *AddressBook) SetReview(target, edited *domain.Review) error {
	if target == nil {
		return domain.NullArgumentError{Argument: "target review"}
	}
	if edited == nil {
		return domain.NullArgumentError{Argument: "edited review"}
	}
	return ab.mutate(domain.EntityReview, ActionUpdate, func(stalls *UniqueList[domain.Stall]) error {
		owner, ok := ownerOf(stalls, target)
		if !ok {
			return domain.EntityNotFoundError{Entity: domain.EntityReview, Key: target.Key()}
		}
		if edited.SameOwner(target) {
			updated, err := owner.WithReplacedReview(target, edited)
			if err != nil {
				return err
			}
			return stalls.Set(owner, updated)
		}
		without, err := owner.WithoutReview(target)
		if err != nil {
			return err
		}
		if err := stalls.Set(owner, without); err != nil {
			return err
		}
		return addEmbedded(stalls, edited)
	})
}

// RemoveReview deletes r from the stall that embeds it.
func (ab *AddressBook) RemoveReview(r *domain.Review) error {
	if r == nil {
		return domain.NullArgumentError{Argument: "review"}
	}
	return ab.mutate(domain.EntityReview, ActionDelete, func(stalls *UniqueList[domain.Stall]) error {
		owner, ok := ownerOf(stalls, r)
		if !ok {
			return domain.EntityNotFoundError{Entity: domain.EntityReview, Key: r.Key()}
		}
		updated, err := owner.WithoutReview(r)
		if err != nil {
			return err
		}
		return stalls.Set(owner, updated)
	})
}

// SetStalls replaces the whole stall list.
func (ab *AddressBook) SetStalls(stalls []*domain.Stall) error {
	return ab.mutate(domain.EntityStall, ActionReplace, func(list *UniqueList[domain.Stall]) error {
		return list.SetAll(stalls)
	})
}

// ResetData replaces the contents of ab with those of other.
func (ab *AddressBook) ResetData(other *AddressBook) error {
	if other == nil {
		return domain.NullArgumentError{Argument: "address book"}
	}
	return ab.SetStalls(other.Stalls())
}

// SortStalls stably reorders the stall list. The review list keeps its order.
func (ab *AddressBook) SortStalls(cmp func(a, b *domain.Stall) int) error {
	if cmp == nil {
		return domain.NullArgumentError{Argument: "comparator"}
	}
	return ab.mutate(domain.EntityStall, ActionSort, func(stalls *UniqueList[domain.Stall]) error {
		stalls.Sort(cmp)
		return nil
	})
}

// SortReviews stably reorders the flat review list. Embedded review order
// inside each stall is untouched.
func (ab *AddressBook) SortReviews(cmp func(a, b *domain.Review) int) error {
	if cmp == nil {
		return domain.NullArgumentError{Argument: "comparator"}
	}
	ab.mu.Lock()
	ab.reviews.Sort(cmp)
	ab.version++
	change := Change{Version: ab.version, Entity: domain.EntityReview, Action: ActionSort}
	ab.mu.Unlock()
	ab.subs.publish(change)
	return nil
}

// Stalls returns a snapshot of the stall list.
func (ab *AddressBook) Stalls() []*domain.Stall {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.stalls.Items()
}

// Reviews returns a snapshot of the flat review list.
func (ab *AddressBook) Reviews() []*domain.Review {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return ab.reviews.Items()
}

// StallView returns a read-only view that always reflects the current stall
// list.
func (ab *AddressBook) StallView() View[domain.Stall] {
	return View[domain.Stall]{snapshot: ab.Stalls}
}

// ReviewView returns a read-only view that always reflects the current
// review list.
func (ab *AddressBook) ReviewView() View[domain.Review] {
	return View[domain.Review]{snapshot: ab.Reviews}
}

// Equal reports whether both books hold equal stalls in the same order.
func (ab *AddressBook) Equal(other *AddressBook) bool {
	if other == nil {
		return false
	}
	if ab == other {
		return true
	}
	return slices.EqualFunc(ab.Stalls(), other.Stalls(), (*domain.Stall).Equal)
}

// Clone returns an independent copy without subscribers.
func (ab *AddressBook) Clone() *AddressBook {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return &AddressBook{
		stalls:  ab.stalls.clone(),
		reviews: ab.reviews.clone(),
		version: ab.version,
	}
}

// Document captures the stall list in persisted form.
func (ab *AddressBook) Document() domain.Document {
	return domain.NewDocument(ab.Stalls())
}

func (ab *AddressBook) String() string {
	ab.mu.RLock()
	defer ab.mu.RUnlock()
	return fmt.Sprintf("%d stalls, %d reviews", ab.stalls.Len(), ab.reviews.Len())
}

func (ab *AddressBook) mutate(entity domain.EntityType, action Action, fn func(*UniqueList[domain.Stall]) error) error {
	ab.mu.Lock()
	working := ab.stalls.clone()
	if err := fn(working); err != nil {
		ab.mu.Unlock()
		return err
	}
	ab.stalls = working
	ab.refresh()
	ab.version++
	change := Change{Version: ab.version, Entity: entity, Action: action}
	ab.mu.Unlock()
	ab.subs.publish(change)
	return nil
}

// refresh reconciles the review list with the stalls' embedded reviews using
// full equality, so a review whose rating changed is replaced too.
func (ab *AddressBook) refresh() {
	ab.reviews.Reconcile(DeriveReviews(ab.stalls.items), (*domain.Review).Equal)
}

func ownerOf(stalls *UniqueList[domain.Stall], r *domain.Review) (*domain.Stall, bool) {
	return stalls.Find(func(s *domain.Stall) bool { return s.HasReview(r) })
}

func addEmbedded(stalls *UniqueList[domain.Stall], r *domain.Review) error {
	owner, ok := stalls.Find(func(s *domain.Stall) bool { return s.Name() == r.Name() })
	if !ok {
		return domain.EntityNotFoundError{Entity: domain.EntityStall, Key: r.Name().String()}
	}
	updated, err := owner.WithReview(r)
	if err != nil {
		return err
	}
	return stalls.Set(owner, updated)
}
