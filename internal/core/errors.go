package core

import (
	"errors"
	"fmt"
	"foodwhere/pkg/domain"
)

// Sentinels for service-level failures.
var (
	ErrInvalidIndex = errors.New("invalid index")
	ErrEmptyPatch   = errors.New("at least one field to edit must be provided")
)

// InvalidIndexError reports a 1-based index outside the displayed list.
type InvalidIndexError struct {
	Entity domain.EntityType
	Index  int
	Size   int
}

func (e InvalidIndexError) Error() string {
	return fmt.Sprintf("the %s index provided is invalid: %d (list has %d)", e.Entity, e.Index, e.Size)
}

// Is reports whether target is ErrInvalidIndex.
func (e InvalidIndexError) Is(target error) bool { return target == ErrInvalidIndex }
