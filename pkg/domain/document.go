package domain

import (
	"errors"
	"fmt"
	"slices"
)

// Reasons used when a persisted document is structurally invalid.
const (
	MissingFieldReason   = "field is missing"
	DuplicateStallReason = "stall list contains duplicate stall(s)"
)

// Document is the persisted form of an address book. Only stalls are stored;
// the flat review list is rebuilt from each stall's embedded reviews.
type Document struct {
	Stalls []StallRecord `json:"stalls"`
}

// StallRecord is the persisted form of a stall.
type StallRecord struct {
	Name    string         `json:"name"`
	Address string         `json:"address"`
	Details []string       `json:"details"`
	Reviews []ReviewRecord `json:"reviews"`
}

// ReviewRecord is the persisted form of an embedded review. The owning stall
// name is implied by the enclosing StallRecord.
type ReviewRecord struct {
	Date    string   `json:"date"`
	Content string   `json:"content"`
	Details []string `json:"details"`
	Rating  *int     `json:"rating"`
}

// NewDocument captures stalls in persisted form.
func NewDocument(stalls []*Stall) Document {
	doc := Document{Stalls: make([]StallRecord, 0, len(stalls))}
	for _, s := range stalls {
		rec := StallRecord{
			Name:    s.name.String(),
			Address: s.address.String(),
			Details: s.details.Strings(),
			Reviews: make([]ReviewRecord, 0, len(s.reviews)),
		}
		for _, r := range s.reviews {
			rating := r.rating.value
			rec.Reviews = append(rec.Reviews, ReviewRecord{
				Date:    r.date.String(),
				Content: r.content.String(),
				Details: r.details.Strings(),
				Rating:  &rating,
			})
		}
		doc.Stalls = append(doc.Stalls, rec)
	}
	return doc
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	out := Document{Stalls: make([]StallRecord, len(d.Stalls))}
	for i, s := range d.Stalls {
		cp := s
		cp.Details = slices.Clone(s.Details)
		cp.Reviews = make([]ReviewRecord, len(s.Reviews))
		for j, r := range s.Reviews {
			rc := r
			rc.Details = slices.Clone(r.Details)
			if r.Rating != nil {
				v := *r.Rating
				rc.Rating = &v
			}
			cp.Reviews[j] = rc
		}
		out.Stalls[i] = cp
	}
	return out
}

// Decode converts the document into stalls. The first invalid value aborts
// the whole decode with a single ValidationError whose Field is the path of
// the offending value, e.g. "stalls[1].reviews[0].date".
func (d Document) Decode() ([]*Stall, error) {
	stalls := make([]*Stall, 0, len(d.Stalls))
	for i, rec := range d.Stalls {
		s, err := rec.decode()
		if err != nil {
			return nil, atPath(fmt.Sprintf("stalls[%d]", i), err)
		}
		if slices.ContainsFunc(stalls, s.SameStall) {
			return nil, ValidationError{Field: fmt.Sprintf("stalls[%d].name", i), Value: rec.Name, Reason: DuplicateStallReason}
		}
		stalls = append(stalls, s)
	}
	return stalls, nil
}

func (rec StallRecord) decode() (*Stall, error) {
	if rec.Name == "" {
		return nil, ValidationError{Field: "name", Reason: MissingFieldReason}
	}
	name, err := NewName(rec.Name)
	if err != nil {
		return nil, err
	}
	if rec.Address == "" {
		return nil, ValidationError{Field: "address", Reason: MissingFieldReason}
	}
	address, err := NewAddress(rec.Address)
	if err != nil {
		return nil, err
	}
	details, err := ParseDetails(rec.Details...)
	if err != nil {
		return nil, atPath("details", err)
	}
	reviews := make([]*Review, 0, len(rec.Reviews))
	for j, rr := range rec.Reviews {
		r, err := rr.decode(name)
		if err != nil {
			return nil, atPath(fmt.Sprintf("reviews[%d]", j), err)
		}
		reviews = append(reviews, r)
	}
	s, err := NewStall(name, address, details, reviews...)
	if err != nil {
		var dup DuplicateEntityError
		if errors.As(err, &dup) {
			return nil, ValidationError{Field: "reviews", Value: dup.Key, Reason: "duplicate review"}
		}
		return nil, err
	}
	return s, nil
}

func (rec ReviewRecord) decode(owner Name) (*Review, error) {
	if rec.Date == "" {
		return nil, ValidationError{Field: "date", Reason: MissingFieldReason}
	}
	date, err := NewDate(rec.Date)
	if err != nil {
		return nil, err
	}
	if rec.Content == "" {
		return nil, ValidationError{Field: "content", Reason: MissingFieldReason}
	}
	content, err := NewContent(rec.Content)
	if err != nil {
		return nil, err
	}
	if rec.Rating == nil {
		return nil, ValidationError{Field: "rating", Reason: MissingFieldReason}
	}
	rating, err := NewRating(*rec.Rating)
	if err != nil {
		return nil, err
	}
	details, err := ParseDetails(rec.Details...)
	if err != nil {
		return nil, atPath("details", err)
	}
	return NewReview(owner, date, content, rating, details)
}

// atPath prefixes the Field of a ValidationError with prefix.
func atPath(prefix string, err error) error {
	var ve ValidationError
	if !errors.As(err, &ve) {
		return err
	}
	if ve.Field == "" || ve.Field == "detail" {
		ve.Field = prefix
	} else {
		ve.Field = prefix + "." + ve.Field
	}
	return ve
}
