// Package domain defines the stall and review entities, their value types,
// partial-update patches, sort criteria and the persisted document format
// used by foodwhere.
package domain

// EntityType identifies the kind of record an error or change refers to.
type EntityType string

// Supported entity type identifiers.
const (
	// EntityStall identifies a food stall.
	EntityStall EntityType = "stall"
	// EntityReview identifies a review of a stall.
	EntityReview EntityType = "review"
)
