package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNameConstraints(t *testing.T) {
	valid := []string{"Alex Chicken Rice", "7 Eleven", "a", "Café 88"}
	for _, raw := range valid {
		if _, err := NewName(raw); err != nil {
			t.Errorf("NewName(%q): %v", raw, err)
		}
	}
	invalid := []string{"", " ", " leading", "Bob's", "Kopi*"}
	for _, raw := range invalid {
		_, err := NewName(raw)
		var ve ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("NewName(%q): expected validation error, got %v", raw, err)
		}
		if ve.Reason != NameConstraints {
			t.Errorf("NewName(%q): reason %q", raw, ve.Reason)
		}
	}
}

func TestAddressAndContentRejectBlank(t *testing.T) {
	if _, err := NewAddress("  "); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected blank address to fail, got %v", err)
	}
	if _, err := NewContent("\t"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected blank content to fail, got %v", err)
	}
	a, err := NewAddress("Blk 30 Geylang Street 29, #06-40")
	if err != nil || a.String() != "Blk 30 Geylang Street 29, #06-40" {
		t.Fatalf("address: %v %q", err, a)
	}
}

func TestDateParsing(t *testing.T) {
	d, err := NewDate("20/9/2022")
	if err != nil {
		t.Fatalf("NewDate: %v", err)
	}
	if d.String() != "20/9/2022" {
		t.Fatalf("String() = %q", d.String())
	}
	padded, err := NewDate("01/02/2022")
	if err != nil {
		t.Fatalf("NewDate padded: %v", err)
	}
	if padded.String() != "1/2/2022" {
		t.Fatalf("canonical form %q", padded.String())
	}
	for _, raw := range []string{"31/2/2022", "2022-09-20", "", "20/13/2022", "1/1/0001"} {
		if _, err := NewDate(raw); !errors.Is(err, ErrValidation) {
			t.Errorf("NewDate(%q): expected validation error, got %v", raw, err)
		}
	}
	if DateOf(time.Date(2022, 9, 20, 18, 30, 0, 0, time.UTC)).Compare(d) != 0 {
		t.Fatalf("DateOf should truncate to the day")
	}
}

func TestRatingBounds(t *testing.T) {
	for v := MinRating; v <= MaxRating; v++ {
		if _, err := NewRating(v); err != nil {
			t.Errorf("NewRating(%d): %v", v, err)
		}
	}
	for _, v := range []int{-1, 6} {
		if _, err := NewRating(v); !errors.Is(err, ErrValidation) {
			t.Errorf("NewRating(%d): expected validation error", v)
		}
	}
	r, err := ParseRating(" 4 ")
	if err != nil || r.Int() != 4 {
		t.Fatalf("ParseRating: %v %d", err, r.Int())
	}
	if _, err := ParseRating("four"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected non-numeric rating to fail")
	}
}

func TestDetailSetIsSortedAndDeduplicated(t *testing.T) {
	set, err := ParseDetails("muslim", "halal", "family", "halal")
	if err != nil {
		t.Fatalf("ParseDetails: %v", err)
	}
	if got := set.String(); got != "[family][halal][muslim]" {
		t.Fatalf("String() = %q", got)
	}
	halal, _ := NewDetail("halal")
	if !set.Contains(halal) {
		t.Fatalf("expected halal in set")
	}
	other, _ := ParseDetails("family", "muslim", "halal")
	if !set.Equal(other) {
		t.Fatalf("expected order-independent equality")
	}
	if _, err := ParseDetails("two words"); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected multi-word detail to fail")
	}
	if NewDetailSet().Len() != 0 {
		t.Fatalf("expected empty set")
	}
}
