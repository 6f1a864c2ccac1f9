package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleAddressBook(t *testing.T) {
	ab := SampleAddressBook()
	assert.Equal(t, []string{"Alex Chicken Rice", "Char Char Kuey Tiao", "Yu Bak Chor Mee", "Irfan Muslim Food"}, names(ab.Stalls()))
	assert.Equal(t, []string{"Very tasty. Worth the trip", "Very affordable"}, contents(ab.Reviews()))
	assertConsistent(t, ab)

	irfan, ok := ab.FindStall(mustName(t, "Irfan Muslim Food"))
	require.True(t, ok)
	assert.Equal(t, []string{"family", "halal", "muslim"}, irfan.Details().Strings())

	stalls, err := ab.Document().Decode()
	require.NoError(t, err)
	again, err := NewAddressBookFrom(stalls)
	require.NoError(t, err)
	assertConsistent(t, again)
	assert.True(t, ab.Equal(again))
}

func TestDocumentRoundTripKeepsEmbeddedReviews(t *testing.T) {
	ab := mixedBook(t)
	stalls, err := ab.Document().Decode()
	require.NoError(t, err)
	again, err := NewAddressBookFrom(stalls)
	require.NoError(t, err)
	assertConsistent(t, again)
	assert.True(t, ab.Equal(again))
	alex, ok := again.FindStall(mustName(t, "Alex Chicken Rice"))
	require.True(t, ok)
	assert.Equal(t, []string{"Very tasty. Worth the trip", "Long queue at lunch"}, contents(alex.Reviews()))
}

func TestSampleAddressBookIsFresh(t *testing.T) {
	a := SampleAddressBook()
	require.NoError(t, a.RemoveStall(a.Stalls()[0]))
	assert.Len(t, SampleAddressBook().Stalls(), 4)
}
