package domain

// StallPatch holds optional replacements for a stall's fields. Nil fields
// fall back to the original value.
type StallPatch struct {
	Name    *Name
	Address *Address
	Details *DetailSet
}

// IsEmpty reports whether no field is set.
func (p StallPatch) IsEmpty() bool {
	return p.Name == nil && p.Address == nil && p.Details == nil
}

// Apply returns a new stall with the set fields overriding original. When
// the name changes every embedded review is re-keyed to the new name, keeping
// its date, content, rating and details.
func (p StallPatch) Apply(original *Stall) (*Stall, error) {
	if err := requireStall("original", original); err != nil {
		return nil, err
	}
	name := original.name
	if p.Name != nil {
		name = *p.Name
	}
	address := original.address
	if p.Address != nil {
		address = *p.Address
	}
	details := original.details
	if p.Details != nil {
		details = *p.Details
	}

	reviews := original.reviews
	if name != original.name {
		reviews = make([]*Review, len(original.reviews))
		for i, r := range original.reviews {
			reviews[i] = r.WithName(name)
		}
	}
	return NewStall(name, address, details, reviews...)
}

// ReviewPatch holds optional replacements for a review's data fields. The
// owning stall cannot be patched; moving a review means removing and adding.
type ReviewPatch struct {
	Date    *Date
	Content *Content
	Rating  *Rating
	Details *DetailSet
}

// IsEmpty reports whether no field is set.
func (p ReviewPatch) IsEmpty() bool {
	return p.Date == nil && p.Content == nil && p.Rating == nil && p.Details == nil
}

// Apply returns a new review with the set fields overriding original.
func (p ReviewPatch) Apply(original *Review) (*Review, error) {
	if err := requireReview("original", original); err != nil {
		return nil, err
	}
	date := original.date
	if p.Date != nil {
		date = *p.Date
	}
	content := original.content
	if p.Content != nil {
		content = *p.Content
	}
	rating := original.rating
	if p.Rating != nil {
		rating = *p.Rating
	}
	details := original.details
	if p.Details != nil {
		details = *p.Details
	}
	return NewReview(original.name, date, content, rating, details)
}
