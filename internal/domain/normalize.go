package domain

import "strings"

// Shared normalization rules every engine mapper must apply.

// OptionalString maps an upstream string field to the canonical pointer
// form: nil for absent/blank, so "unknown" stays distinct from "empty".
func OptionalString(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

// SecureImageURL normalizes an upstream image URL, rewriting http:// to
// https://. Several catalogs still serve plain-http image links.
func SecureImageURL(raw string) *string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	if strings.HasPrefix(raw, "http://") {
		raw = "https://" + strings.TrimPrefix(raw, "http://")
	}
	return &raw
}
