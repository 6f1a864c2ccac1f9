package domain

import (
	"cmp"
	"strings"
)

// StallOrder is a named sort criterion for stalls.
type StallOrder struct {
	Criteria string
	Compare  func(a, b *Stall) int
}

// ReviewOrder is a named sort criterion for reviews.
type ReviewOrder struct {
	Criteria string
	Compare  func(a, b *Review) int
}

var stallOrders = []StallOrder{
	{Criteria: "name", Compare: compareStallNames},
	{Criteria: "reversedname", Compare: reversed(compareStallNames)},
}

var reviewOrders = []ReviewOrder{
	{Criteria: "date", Compare: compareReviewDates},
	{Criteria: "reverseddate", Compare: reversed(compareReviewDates)},
	{Criteria: "name", Compare: compareReviewNames},
	{Criteria: "reversedname", Compare: reversed(compareReviewNames)},
	{Criteria: "rating", Compare: compareReviewRatings},
	{Criteria: "reversedrating", Compare: reversed(compareReviewRatings)},
}

// StallOrderFor resolves a case-insensitive keyword to a stall criterion.
func StallOrderFor(keyword string) (StallOrder, error) {
	key := strings.ToLower(strings.TrimSpace(keyword))
	for _, o := range stallOrders {
		if o.Criteria == key {
			return o, nil
		}
	}
	return StallOrder{}, InvalidCriteriaError{Entity: EntityStall, Criteria: keyword}
}

// ReviewOrderFor resolves a case-insensitive keyword to a review criterion.
func ReviewOrderFor(keyword string) (ReviewOrder, error) {
	key := strings.ToLower(strings.TrimSpace(keyword))
	for _, o := range reviewOrders {
		if o.Criteria == key {
			return o, nil
		}
	}
	return ReviewOrder{}, InvalidCriteriaError{Entity: EntityReview, Criteria: keyword}
}

// StallCriteria lists the supported stall keywords.
func StallCriteria() []string {
	out := make([]string, len(stallOrders))
	for i, o := range stallOrders {
		out[i] = o.Criteria
	}
	return out
}

// ReviewCriteria lists the supported review keywords.
func ReviewCriteria() []string {
	out := make([]string, len(reviewOrders))
	for i, o := range reviewOrders {
		out[i] = o.Criteria
	}
	return out
}

// Equal-ranked elements compare as 0 so a stable sort keeps their current order.
func compareStallNames(a, b *Stall) int {
	return foldCompare(a.name.value, b.name.value)
}

func compareReviewNames(a, b *Review) int {
	return foldCompare(a.name.value, b.name.value)
}

func compareReviewDates(a, b *Review) int {
	return a.date.Compare(b.date)
}

func compareReviewRatings(a, b *Review) int {
	return cmp.Compare(a.rating.value, b.rating.value)
}

func foldCompare(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func reversed[T any](fn func(a, b T) int) func(a, b T) int {
	return func(a, b T) int { return fn(b, a) }
}
