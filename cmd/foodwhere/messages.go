package main

import (
	"errors"
	"foodwhere/internal/core"
	"foodwhere/pkg/domain"
)

// User-facing messages.
const (
	msgStallAdded      = "New stall added: %s"
	msgStallEdited     = "Edited Stall: %s"
	msgStallDeleted    = "Deleted Stall: %s"
	msgReviewAdded     = "New review added: %s"
	msgReviewEdited    = "Edited Review: %s"
	msgReviewDeleted   = "Deleted Review: %s"
	msgStallsListed    = "%d stalls listed!"
	msgReviewsListed   = "%d reviews listed!"
	msgStallsSorted    = "The stall list is now sorted by %s"
	msgReviewsSorted   = "The review list is now sorted by %s"
	msgSampleRestored  = "Address book reset to sample data: %s"
	msgDuplicateStall  = "This stall already exists in the address book."
	msgDuplicateReview = "This review already exists in the address book."
	msgNotEdited       = "At least one field to edit must be provided."
	msgBadStallIndex   = "The stall index provided is invalid"
	msgBadReviewIndex  = "The review index provided is invalid"
)

// message renders err for the terminal. Known failures get the short
// wording users see in the interactive app; anything else prints as is.
func message(err error) string {
	var (
		dup domain.DuplicateEntityError
		idx core.InvalidIndexError
	)
	switch {
	case errors.As(err, &dup) && dup.Entity == domain.EntityStall:
		return msgDuplicateStall
	case errors.As(err, &dup) && dup.Entity == domain.EntityReview:
		return msgDuplicateReview
	case errors.As(err, &idx) && idx.Entity == domain.EntityStall:
		return msgBadStallIndex
	case errors.As(err, &idx) && idx.Entity == domain.EntityReview:
		return msgBadReviewIndex
	case errors.Is(err, core.ErrEmptyPatch):
		return msgNotEdited
	}
	return err.Error()
}
