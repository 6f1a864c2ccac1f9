package domain

import (
	"fmt"
	"slices"
	"strings"
)

// Stall is an immutable food vendor together with a snapshot of its reviews.
// Every embedded review carries the stall's name and no two embedded reviews
// are identity-equal.
type Stall struct {
	name    Name
	address Address
	details DetailSet
	reviews []*Review
}

// NewStall builds a stall. Reviews keep the order given.
func NewStall(name Name, address Address, details DetailSet, reviews ...*Review) (*Stall, error) {
	switch {
	case name.IsZero():
		return nil, ValidationError{Field: "stall name", Reason: NameConstraints}
	case address.IsZero():
		return nil, ValidationError{Field: "stall address", Reason: AddressConstraints}
	}
	s := &Stall{name: name, address: address, details: details}
	for i, r := range reviews {
		if err := requireReview(fmt.Sprintf("reviews[%d]", i), r); err != nil {
			return nil, err
		}
		if r.name != name {
			return nil, ValidationError{
				Field:  "review name",
				Value:  r.name.String(),
				Reason: fmt.Sprintf("embedded reviews must belong to stall %q", name),
			}
		}
		if s.indexOfReview(r) >= 0 {
			return nil, DuplicateEntityError{Entity: EntityReview, Key: r.Key()}
		}
		s.reviews = append(s.reviews, r)
	}
	return s, nil
}

// Name returns the stall identity.
func (s *Stall) Name() Name { return s.name }

// Address returns the stall address.
func (s *Stall) Address() Address { return s.address }

// Details returns the stall tags.
func (s *Stall) Details() DetailSet { return s.details }

// Reviews returns a copy of the embedded reviews in embedded order.
func (s *Stall) Reviews() []*Review { return slices.Clone(s.reviews) }

// ReviewCount returns the number of embedded reviews.
func (s *Stall) ReviewCount() int { return len(s.reviews) }

// HasReview reports whether an identity-equal review is embedded.
func (s *Stall) HasReview(r *Review) bool { return r != nil && s.indexOfReview(r) >= 0 }

// SameStall reports identity equality by name.
func (s *Stall) SameStall(other *Stall) bool {
	if s == other {
		return true
	}
	return s != nil && other != nil && s.name == other.name
}

// Equal reports full value equality including embedded reviews and their order.
func (s *Stall) Equal(other *Stall) bool {
	if s == other {
		return true
	}
	if !s.SameStall(other) || s.address != other.address || !s.details.Equal(other.details) {
		return false
	}
	return slices.EqualFunc(s.reviews, other.reviews, (*Review).Equal)
}

// WithReview returns a copy of s with r appended to its embedded reviews.
func (s *Stall) WithReview(r *Review) (*Stall, error) {
	if err := requireReview("review", r); err != nil {
		return nil, err
	}
	if r.name != s.name {
		return nil, EntityNotFoundError{Entity: EntityStall, Key: r.name.String()}
	}
	if s.indexOfReview(r) >= 0 {
		return nil, DuplicateEntityError{Entity: EntityReview, Key: r.Key()}
	}
	cp := s.clone()
	cp.reviews = append(cp.reviews, r)
	return cp, nil
}

// WithoutReview returns a copy of s with the identity-equal review removed.
func (s *Stall) WithoutReview(r *Review) (*Stall, error) {
	if err := requireReview("review", r); err != nil {
		return nil, err
	}
	idx := s.indexOfReview(r)
	if idx < 0 {
		return nil, EntityNotFoundError{Entity: EntityReview, Key: r.Key()}
	}
	cp := s.clone()
	cp.reviews = slices.Delete(cp.reviews, idx, idx+1)
	return cp, nil
}

// WithReplacedReview returns a copy of s where target is replaced in place by
// replacement. The replacement must stay on this stall and must not collide
// with another embedded review.
func (s *Stall) WithReplacedReview(target, replacement *Review) (*Stall, error) {
	if err := requireReview("target", target); err != nil {
		return nil, err
	}
	if err := requireReview("replacement", replacement); err != nil {
		return nil, err
	}
	idx := s.indexOfReview(target)
	if idx < 0 {
		return nil, EntityNotFoundError{Entity: EntityReview, Key: target.Key()}
	}
	if replacement.name != s.name {
		return nil, ValidationError{
			Field:  "review name",
			Value:  replacement.name.String(),
			Reason: fmt.Sprintf("embedded reviews must belong to stall %q", s.name),
		}
	}
	if other := s.indexOfReview(replacement); other >= 0 && other != idx {
		return nil, DuplicateEntityError{Entity: EntityReview, Key: replacement.Key()}
	}
	cp := s.clone()
	cp.reviews[idx] = replacement
	return cp, nil
}

func (s *Stall) clone() *Stall {
	cp := *s
	cp.reviews = slices.Clone(s.reviews)
	return &cp
}

func (s *Stall) indexOfReview(r *Review) int {
	return slices.IndexFunc(s.reviews, r.SameReview)
}

func (s *Stall) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Address: %s", s.name, s.address)
	if s.details.Len() > 0 {
		b.WriteString("; Details: ")
		b.WriteString(s.details.String())
	}
	if len(s.reviews) > 0 {
		fmt.Fprintf(&b, "; Reviews: %d", len(s.reviews))
	}
	return b.String()
}
