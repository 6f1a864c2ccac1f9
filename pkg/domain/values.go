package domain

import (
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Constraint messages returned in ValidationError.Reason.
const (
	NameConstraints    = "names should only contain alphanumeric characters and spaces, and it should not be blank"
	AddressConstraints = "addresses can take any values, and it should not be blank"
	DateConstraints    = "dates should be valid calendar dates in the format d/m/yyyy"
	ContentConstraints = "content can take any values, and it should not be blank"
	DetailConstraints  = "details should be a single alphanumeric word"
	RatingConstraints  = "ratings should be whole numbers from 0 to 5"
)

const (
	// DateLayout is the accepted and canonical rendering of a Date.
	DateLayout = "2/1/2006"
	MinRating  = 0
	MaxRating  = 5
)

var (
	namePattern   = regexp.MustCompile(`^[\p{L}\p{N}][\p{L}\p{N} ]*$`)
	detailPattern = regexp.MustCompile(`^[\p{L}\p{N}]+$`)
)

// Name identifies a stall. Comparison is exact and case-sensitive.
type Name struct {
	value string
}

// NewName validates raw as a stall name.
func NewName(raw string) (Name, error) {
	if !namePattern.MatchString(raw) {
		return Name{}, ValidationError{Field: "name", Value: raw, Reason: NameConstraints}
	}
	return Name{value: raw}, nil
}

func (n Name) String() string { return n.value }

// IsZero reports whether n was never constructed through NewName.
func (n Name) IsZero() bool { return n.value == "" }

// Address is the free-form location of a stall.
type Address struct {
	value string
}

// NewAddress validates raw as an address.
func NewAddress(raw string) (Address, error) {
	if isBlank(raw) {
		return Address{}, ValidationError{Field: "address", Value: raw, Reason: AddressConstraints}
	}
	return Address{value: raw}, nil
}

func (a Address) String() string { return a.value }

// IsZero reports whether a was never constructed through NewAddress.
func (a Address) IsZero() bool { return a.value == "" }

// Date is the calendar day a review was written.
type Date struct {
	day time.Time
}

// NewDate parses raw in DateLayout and rejects impossible days such as 31/2/2022.
func NewDate(raw string) (Date, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil || t.IsZero() {
		return Date{}, ValidationError{Field: "date", Value: raw, Reason: DateConstraints}
	}
	return Date{day: t}, nil
}

// DateOf truncates t to its calendar day.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{day: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func (d Date) String() string { return d.day.Format(DateLayout) }

// IsZero reports whether d was never constructed.
func (d Date) IsZero() bool { return d.day.IsZero() }

// Compare orders dates chronologically.
func (d Date) Compare(other Date) int { return d.day.Compare(other.day) }

// Content is the body of a review.
type Content struct {
	value string
}

// NewContent validates raw as review content.
func NewContent(raw string) (Content, error) {
	if isBlank(raw) {
		return Content{}, ValidationError{Field: "content", Value: raw, Reason: ContentConstraints}
	}
	return Content{value: raw}, nil
}

func (c Content) String() string { return c.value }

// IsZero reports whether c was never constructed through NewContent.
func (c Content) IsZero() bool { return c.value == "" }

// Detail is a one-word tag attached to a stall or review.
type Detail struct {
	value string
}

// NewDetail validates raw as a detail tag.
func NewDetail(raw string) (Detail, error) {
	if !detailPattern.MatchString(raw) {
		return Detail{}, ValidationError{Field: "detail", Value: raw, Reason: DetailConstraints}
	}
	return Detail{value: raw}, nil
}

func (d Detail) String() string { return d.value }

// Rating scores a review from MinRating to MaxRating.
type Rating struct {
	value int
}

// NewRating validates v as a rating.
func NewRating(v int) (Rating, error) {
	if v < MinRating || v > MaxRating {
		return Rating{}, ValidationError{Field: "rating", Value: strconv.Itoa(v), Reason: RatingConstraints}
	}
	return Rating{value: v}, nil
}

// ParseRating validates the decimal string raw as a rating.
func ParseRating(raw string) (Rating, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return Rating{}, ValidationError{Field: "rating", Value: raw, Reason: RatingConstraints}
	}
	return NewRating(v)
}

// Int returns the numeric score.
func (r Rating) Int() int { return r.value }

func (r Rating) String() string { return strconv.Itoa(r.value) }

// DetailSet is an immutable set of details kept in lexical order.
type DetailSet struct {
	details []Detail
}

// NewDetailSet builds a set, dropping repeated details.
func NewDetailSet(details ...Detail) DetailSet {
	if len(details) == 0 {
		return DetailSet{}
	}
	out := slices.Clone(details)
	slices.SortFunc(out, func(a, b Detail) int { return strings.Compare(a.value, b.value) })
	out = slices.Compact(out)
	return DetailSet{details: out}
}

// ParseDetails validates every raw tag and returns them as a set.
func ParseDetails(raw ...string) (DetailSet, error) {
	details := make([]Detail, 0, len(raw))
	for _, r := range raw {
		d, err := NewDetail(r)
		if err != nil {
			return DetailSet{}, err
		}
		details = append(details, d)
	}
	return NewDetailSet(details...), nil
}

// Len returns the number of details.
func (s DetailSet) Len() int { return len(s.details) }

// Contains reports membership of d.
func (s DetailSet) Contains(d Detail) bool {
	_, found := slices.BinarySearchFunc(s.details, d, func(a, b Detail) int { return strings.Compare(a.value, b.value) })
	return found
}

// Slice returns a copy of the details.
func (s DetailSet) Slice() []Detail { return slices.Clone(s.details) }

// Strings returns the raw detail values.
func (s DetailSet) Strings() []string {
	out := make([]string, len(s.details))
	for i, d := range s.details {
		out[i] = d.value
	}
	return out
}

// Equal reports whether both sets hold the same details.
func (s DetailSet) Equal(other DetailSet) bool {
	return slices.Equal(s.details, other.details)
}

func (s DetailSet) String() string {
	var b strings.Builder
	for _, d := range s.details {
		b.WriteByte('[')
		b.WriteString(d.value)
		b.WriteByte(']')
	}
	return b.String()
}

func isBlank(s string) bool { return strings.TrimSpace(s) == "" }
