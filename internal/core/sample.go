package core

import "foodwhere/pkg/domain"

type sampleReview struct {
	date    string
	content string
	rating  int
	details []string
}

type sampleStall struct {
	name    string
	address string
	details []string
	reviews []sampleReview
}

var sampleStalls = []sampleStall{
	{
		name:    "Alex Chicken Rice",
		address: "Blk 30 Geylang Street 29, #06-40",
		details: []string{"chickenrice"},
		reviews: []sampleReview{{date: "20/9/2022", content: "Very tasty. Worth the trip", rating: 5, details: []string{"travelworthy"}}},
	},
	{
		name:    "Char Char Kuey Tiao",
		address: "Blk 30 Lorong 3 Serangoon Gardens, #07-18",
		details: []string{"charkwaytiao"},
	},
	{
		name:    "Yu Bak Chor Mee",
		address: "Blk 11 Ang Mo Kio Street 74, #11-04",
		details: []string{"bakchormee"},
	},
	{
		name:    "Irfan Muslim Food",
		address: "Blk 436 Serangoon Gardens Street 26, #16-43",
		details: []string{"family", "halal", "muslim"},
		reviews: []sampleReview{{date: "20/9/2022", content: "Very affordable", rating: 4, details: []string{"halal"}}},
	},
}

// SampleAddressBook returns the book new users start with: four stalls, two
// of them reviewed. Everything goes through the public API so the sample
// obeys the same rules as user data.
func SampleAddressBook() *AddressBook {
	ab := NewAddressBook()
	for _, ss := range sampleStalls {
		s := mustStall(ss)
		if err := ab.AddStall(s); err != nil {
			panic(err)
		}
		for _, sr := range ss.reviews {
			if err := ab.AddReview(mustReview(s.Name(), sr)); err != nil {
				panic(err)
			}
		}
	}
	return ab
}

func mustStall(ss sampleStall) *domain.Stall {
	name, err := domain.NewName(ss.name)
	if err != nil {
		panic(err)
	}
	address, err := domain.NewAddress(ss.address)
	if err != nil {
		panic(err)
	}
	details, err := domain.ParseDetails(ss.details...)
	if err != nil {
		panic(err)
	}
	s, err := domain.NewStall(name, address, details)
	if err != nil {
		panic(err)
	}
	return s
}

func mustReview(owner domain.Name, sr sampleReview) *domain.Review {
	date, err := domain.NewDate(sr.date)
	if err != nil {
		panic(err)
	}
	content, err := domain.NewContent(sr.content)
	if err != nil {
		panic(err)
	}
	rating, err := domain.NewRating(sr.rating)
	if err != nil {
		panic(err)
	}
	details, err := domain.ParseDetails(sr.details...)
	if err != nil {
		panic(err)
	}
	r, err := domain.NewReview(owner, date, content, rating, details)
	if err != nil {
		panic(err)
	}
	return r
}
