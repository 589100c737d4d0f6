package domain

// OutcomeKind is the three-way result of a full orchestration.
type OutcomeKind string

const (
	// OutcomeResolved means at least one engine returned a product.
	OutcomeResolved OutcomeKind = "resolved"
	// OutcomeExhausted means every applicable engine was tried and none
	// found a match; Attempts carries the full trail.
	OutcomeExhausted OutcomeKind = "exhausted"
	// OutcomeNoCandidates means no registered engine accepted the barcode.
	OutcomeNoCandidates OutcomeKind = "no_candidates"
)

// Attempt records one engine's contribution to a failed orchestration.
type Attempt struct {
	Source string       `json:"source"`
	Status LookupStatus `json:"status"`
	Reason string       `json:"reason,omitempty"`
}

// Outcome is the aggregate result of resolving one barcode. Product is set
// iff Kind is OutcomeResolved; Attempts is set iff Kind is OutcomeExhausted,
// ordered by priority tier then registration order.
type Outcome struct {
	Kind     OutcomeKind  `json:"kind"`
	Product  *ProductInfo `json:"product,omitempty"`
	Attempts []Attempt    `json:"attempts,omitempty"`
}

// Resolved builds the success outcome.
func Resolved(product *ProductInfo) Outcome {
	return Outcome{Kind: OutcomeResolved, Product: product}
}

// Exhausted builds the all-engines-failed outcome from the attempt trail.
func Exhausted(attempts []Attempt) Outcome {
	return Outcome{Kind: OutcomeExhausted, Attempts: attempts}
}

// NoCandidates builds the no-capable-engine outcome.
func NoCandidates() Outcome {
	return Outcome{Kind: OutcomeNoCandidates}
}
