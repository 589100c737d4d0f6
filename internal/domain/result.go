package domain

// LookupStatus is the three-way status of a single engine invocation.
type LookupStatus string

const (
	StatusFound    LookupStatus = "found"
	StatusNotFound LookupStatus = "not_found"
	StatusError    LookupStatus = "error"
)

// LookupResult is the tagged outcome of one engine lookup. Exactly one
// variant applies: Product is set iff Status is StatusFound, Err is set
// iff Status is StatusError.
type LookupResult struct {
	Status  LookupStatus
	Source  string
	Product *ProductInfo
	Err     error
}

// Found builds the success variant.
func Found(source string, product *ProductInfo) LookupResult {
	return LookupResult{Status: StatusFound, Source: source, Product: product}
}

// NotFound builds the confirmed-absence variant. The source was reachable
// and answered; it simply has no record for the barcode.
func NotFound(source string) LookupResult {
	return LookupResult{Status: StatusNotFound, Source: source}
}

// Failure builds the error variant with the original cause attached.
func Failure(source string, err error) LookupResult {
	return LookupResult{Status: StatusError, Source: source, Err: err}
}
