package core

import (
	"foodwhere/pkg/domain"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStall(t testing.TB, name, address string, details ...string) *domain.Stall {
	t.Helper()
	n, err := domain.NewName(name)
	require.NoError(t, err)
	a, err := domain.NewAddress(address)
	require.NoError(t, err)
	d, err := domain.ParseDetails(details...)
	require.NoError(t, err)
	s, err := domain.NewStall(n, a, d)
	require.NoError(t, err)
	return s
}

func newReview(t testing.TB, owner, date, content string, rating int, details ...string) *domain.Review {
	t.Helper()
	n, err := domain.NewName(owner)
	require.NoError(t, err)
	dt, err := domain.NewDate(date)
	require.NoError(t, err)
	c, err := domain.NewContent(content)
	require.NoError(t, err)
	r, err := domain.NewRating(rating)
	require.NoError(t, err)
	d, err := domain.ParseDetails(details...)
	require.NoError(t, err)
	rv, err := domain.NewReview(n, dt, c, r, d)
	require.NoError(t, err)
	return rv
}

func mustName(t testing.TB, raw string) domain.Name {
	t.Helper()
	n, err := domain.NewName(raw)
	require.NoError(t, err)
	return n
}

// mixedBook returns the sample book with a second review on its first stall,
// so it holds stalls with zero, one and two reviews.
func mixedBook(t testing.TB) *AddressBook {
	t.Helper()
	ab := SampleAddressBook()
	require.NoError(t, ab.AddReview(newReview(t, "Alex Chicken Rice", "1/10/2022", "Long queue at lunch", 3, "queue")))
	counts := make([]int, 0, 4)
	for _, s := range ab.Stalls() {
		counts = append(counts, len(s.Reviews()))
	}
	require.Equal(t, []int{2, 0, 0, 1}, counts)
	return ab
}

// assertConsistent checks that stall names are unique, that the review list
// holds no two same reviews, and that it matches the embedded reviews as a
// multiset.
func assertConsistent(t *testing.T, ab *AddressBook) {
	t.Helper()
	stalls := ab.Stalls()
	for i := range stalls {
		for j := i + 1; j < len(stalls); j++ {
			assert.False(t, stalls[i].SameStall(stalls[j]), "duplicate stall %s", stalls[i].Name())
		}
	}
	reviews := ab.Reviews()
	for i := range reviews {
		for j := i + 1; j < len(reviews); j++ {
			assert.False(t, reviews[i].SameReview(reviews[j]), "duplicate review %s", reviews[i].Key())
		}
	}
	embedded := DeriveReviews(stalls)
	require.Len(t, reviews, len(embedded))
	for _, r := range embedded {
		assert.True(t, slices.ContainsFunc(reviews, r.Equal), "review %s missing from flat list", r.Key())
	}
}

func names(stalls []*domain.Stall) []string {
	out := make([]string, len(stalls))
	for i, s := range stalls {
		out[i] = s.Name().String()
	}
	return out
}

func contents(reviews []*domain.Review) []string {
	out := make([]string, len(reviews))
	for i, r := range reviews {
		out[i] = r.Content().String()
	}
	return out
}
