package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors matched by the typed errors below through errors.Is.
var (
	ErrDuplicateEntity = errors.New("duplicate entity")
	ErrEntityNotFound  = errors.New("entity not found")
	ErrNullArgument    = errors.New("required argument missing")
	ErrInvalidCriteria = errors.New("invalid sort criteria")
	ErrValidation      = errors.New("validation failed")
)

// DuplicateEntityError reports an identity collision on insert or rename.
type DuplicateEntityError struct {
	Entity EntityType
	Key    string
}

func (e DuplicateEntityError) Error() string {
	return fmt.Sprintf("%s %q already exists", e.Entity, e.Key)
}

// Is reports whether target is ErrDuplicateEntity.
func (e DuplicateEntityError) Is(target error) bool { return target == ErrDuplicateEntity }

// EntityNotFoundError reports an operation target that is absent from its collection.
type EntityNotFoundError struct {
	Entity EntityType
	Key    string
}

func (e EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.Key)
}

// Is reports whether target is ErrEntityNotFound.
func (e EntityNotFoundError) Is(target error) bool { return target == ErrEntityNotFound }

// NullArgumentError reports a required argument that was nil.
type NullArgumentError struct {
	Argument string
}

func (e NullArgumentError) Error() string {
	return fmt.Sprintf("%s must not be nil", e.Argument)
}

// Is reports whether target is ErrNullArgument.
func (e NullArgumentError) Is(target error) bool { return target == ErrNullArgument }

// InvalidCriteriaError reports an unknown sort keyword.
type InvalidCriteriaError struct {
	Entity   EntityType
	Criteria string
}

func (e InvalidCriteriaError) Error() string {
	return fmt.Sprintf("unknown %s sort criteria %q", e.Entity, e.Criteria)
}

// Is reports whether target is ErrInvalidCriteria.
func (e InvalidCriteriaError) Is(target error) bool { return target == ErrInvalidCriteria }

// ValidationError reports a value that violates its format constraint.
// Reason is the constraint text shown to users.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e ValidationError) Is(target error) bool { return target == ErrValidation }

func requireStall(arg string, s *Stall) error {
	if s == nil {
		return NullArgumentError{Argument: arg}
	}
	return nil
}

func requireReview(arg string, r *Review) error {
	if r == nil {
		return NullArgumentError{Argument: arg}
	}
	return nil
}
