// Package persistence holds the JSON codec shared by the snapshot stores.
// The stores themselves live in the subpackages.
package persistence

import (
	"bytes"
	"encoding/json"
	"foodwhere/pkg/domain"
)

// ContentType is the media type of an encoded document.
const ContentType = "application/json"

// Encode renders doc as indented JSON.
func Encode(doc domain.Document) ([]byte, error) {
	if doc.Stalls == nil {
		doc.Stalls = []domain.StallRecord{}
	}
	return json.MarshalIndent(doc, "", "  ")
}

// Decode parses a document. Malformed JSON and unknown fields are reported
// as a domain.ValidationError so callers treat them like any other invalid
// data.
func Decode(b []byte) (domain.Document, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	var doc domain.Document
	if err := dec.Decode(&doc); err != nil {
		return domain.Document{}, domain.ValidationError{Field: "document", Reason: err.Error()}
	}
	return doc, nil
}
