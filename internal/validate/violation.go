// Package validate implements the dual validation engine: a client-side
// evaluator that runs inline on every edit, and an authoritative
// server-side evaluator. Both reference the shared rule table in
// internal/rules and must agree on every document.
package validate

import "fmt"

// Kind classifies a rule violation. The set is closed; messages may vary
// in wording but kinds never do.
type Kind string

const (
	KindFormat           Kind = "FORMAT"
	KindWordCount        Kind = "WORD_COUNT"
	KindMinCount         Kind = "MIN_COUNT"
	KindForbiddenGlyph   Kind = "FORBIDDEN_GLYPH"
	KindMissingField     Kind = "MISSING_FIELD"
	KindMissingSection   Kind = "MISSING_SECTION"
	KindUnknownField     Kind = "UNKNOWN_FIELD"
	KindContentOverflow  Kind = "CONTENT_OVERFLOW"
	KindStaleRevalidation Kind = "STALE_REVALIDATION_FAILURE"

	// KindChronology is warning-only: experience entries out of
	// reverse-chronological order. It never flips Valid.
	KindChronology Kind = "CHRONOLOGY"
)

// Violation is a typed, field-scoped rule failure. Field is a stable
// dotted path such as "experience.0.responsibilities.2".
type Violation struct {
	Field   string `json:"field"`
	Kind    Kind   `json:"ruleKind"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s: %s (%s)", v.Field, v.Kind, v.Message)
}

// Result is the outcome of evaluating one document snapshot.
type Result struct {
	Valid    bool        `json:"valid"`
	Errors   []Violation `json:"errors"`
	Warnings []Violation `json:"warnings,omitempty"`
}

// KindCounts returns the (field, kind) multiset as a count map. The
// cross-implementation agreement contract is stated over this multiset.
func (r Result) KindCounts() map[string]int {
	out := make(map[string]int, len(r.Errors))
	for _, v := range r.Errors {
		out[v.Field+"|"+string(v.Kind)]++
	}
	return out
}
