// Package barcode classifies raw barcode strings into the set of symbol
// formats they could plausibly be. Classification is deliberately
// permissive: overlapping ranges (ISBN-13 is also a valid EAN-13, drug
// codes hide inside GTIN strings) mean a barcode often carries several
// tags at once, and the final disambiguation is left to the remote
// catalogs themselves.
package barcode

// FormatTag labels one plausible symbol format for a barcode.
type FormatTag string

const (
	TagISBN10 FormatTag = "ISBN10"
	TagISBN13 FormatTag = "ISBN13"
	// TagEANGeneric covers EAN-8/13 and UPC-A ranges.
	TagEANGeneric FormatTag = "EAN_GENERIC"
	// TagNDCCandidate marks digit sequences that could embed a drug code.
	TagNDCCandidate FormatTag = "NDC_CANDIDATE"
	TagUnknown      FormatTag = "UNKNOWN"
)

// TagSet is the set of format tags assigned to one barcode.
type TagSet map[FormatTag]struct{}

// Has reports whether the set contains the tag.
func (s TagSet) Has(tag FormatTag) bool {
	_, ok := s[tag]
	return ok
}

// Tags returns the set's members in a stable order.
func (s TagSet) Tags() []FormatTag {
	ordered := []FormatTag{TagISBN10, TagISBN13, TagEANGeneric, TagNDCCandidate, TagUnknown}
	out := make([]FormatTag, 0, len(s))
	for _, tag := range ordered {
		if s.Has(tag) {
			out = append(out, tag)
		}
	}
	return out
}

// Classify assigns every plausible format tag to a raw barcode. Pure and
// total: any input yields at least TagUnknown.
func Classify(raw string) TagSet {
	tags := make(TagSet)

	if IsISBN10(raw) {
		tags[TagISBN10] = struct{}{}
	}
	if IsISBN13(raw) {
		tags[TagISBN13] = struct{}{}
	}
	if IsEANGeneric(raw) {
		tags[TagEANGeneric] = struct{}{}
	}
	if IsNDCCandidate(raw) {
		tags[TagNDCCandidate] = struct{}{}
	}
	if len(tags) == 0 {
		tags[TagUnknown] = struct{}{}
	}
	return tags
}

// Normalize strips hyphens and uppercases, the canonical form all format
// predicates evaluate against.
func Normalize(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c == '-' {
			continue
		}
		if c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

// DigitsOnly returns the digit-only projection of a raw barcode.
func DigitsOnly(raw string) string {
	out := make([]byte, 0, len(raw))
	for i := 0; i < len(raw); i++ {
		if raw[i] >= '0' && raw[i] <= '9' {
			out = append(out, raw[i])
		}
	}
	return string(out)
}

// IsISBN10 reports whether the barcode is a plausible ISBN-10: ten
// characters after normalization, nine digits followed by a digit or the
// checksum letter X.
func IsISBN10(raw string) bool {
	s := Normalize(raw)
	if len(s) != 10 {
		return false
	}
	if !allDigits(s[:9]) {
		return false
	}
	last := s[9]
	return isDigit(last) || last == 'X'
}

// IsISBN13 reports whether the barcode is a plausible ISBN-13: thirteen
// digits starting with the 978 or 979 bookland prefix.
func IsISBN13(raw string) bool {
	s := Normalize(raw)
	if len(s) != 13 || !allDigits(s) {
		return false
	}
	prefix := s[:3]
	return prefix == "978" || prefix == "979"
}

// IsEANGeneric reports whether the barcode is all digits with a length in
// the EAN-8 through EAN-13/UPC-A range.
func IsEANGeneric(raw string) bool {
	s := Normalize(raw)
	return len(s) >= 8 && len(s) <= 13 && allDigits(s)
}

// IsNDCCandidate reports whether the barcode's digit projection could
// embed an NDC drug code (10 to 13 digits).
func IsNDCCandidate(raw string) bool {
	n := len(DigitsOnly(raw))
	return n >= 10 && n <= 13
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
