package domain

import (
	"fmt"
	"strings"
)

// Review is an immutable dated opinion about the stall named by Name.
// The owning stall is referenced by value only.
type Review struct {
	name    Name
	date    Date
	content Content
	rating  Rating
	details DetailSet
}

// NewReview builds a review for the stall called name. Every value must have
// been produced by its constructor.
func NewReview(name Name, date Date, content Content, rating Rating, details DetailSet) (*Review, error) {
	switch {
	case name.IsZero():
		return nil, ValidationError{Field: "review name", Reason: NameConstraints}
	case date.IsZero():
		return nil, ValidationError{Field: "review date", Reason: DateConstraints}
	case content.IsZero():
		return nil, ValidationError{Field: "review content", Reason: ContentConstraints}
	}
	return &Review{name: name, date: date, content: content, rating: rating, details: details}, nil
}

// Name returns the owning stall's name.
func (r *Review) Name() Name { return r.name }

// Date returns the review date.
func (r *Review) Date() Date { return r.date }

// Content returns the review body.
func (r *Review) Content() Content { return r.content }

// Rating returns the review score.
func (r *Review) Rating() Rating { return r.rating }

// Details returns the review tags.
func (r *Review) Details() DetailSet { return r.details }

// SameOwner reports whether both reviews belong to the same stall name.
// This is the weakest notion of review sameness and is used for routing a
// review to its stall, never for de-duplication.
func (r *Review) SameOwner(other *Review) bool {
	if r == other {
		return true
	}
	return r != nil && other != nil && r.name == other.name
}

// SameReview reports identity equality: same owner, date, content and details.
// Collections use it to reject duplicates.
func (r *Review) SameReview(other *Review) bool {
	if r == other {
		return true
	}
	return r.SameOwner(other) &&
		r.date.day.Equal(other.date.day) &&
		r.content == other.content &&
		r.details.Equal(other.details)
}

// Equal reports full value equality, rating included.
func (r *Review) Equal(other *Review) bool {
	return r.SameReview(other) && (r == other || r.rating == other.rating)
}

// WithName returns a copy of r re-keyed to another owning stall.
func (r *Review) WithName(name Name) *Review {
	cp := *r
	cp.name = name
	return &cp
}

// Key renders the identity fields for error messages and logs.
func (r *Review) Key() string {
	return fmt.Sprintf("%s@%s: %s", r.name, r.date, r.content)
}

func (r *Review) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s; Date: %s; Content: %s; Rating: %s", r.name, r.date, r.content, r.rating)
	if r.details.Len() > 0 {
		b.WriteString("; Details: ")
		b.WriteString(r.details.String())
	}
	return b.String()
}
