package validate

import (
	"resume-builder/internal/model"
	"resume-builder/internal/rules"
)

// chronologyWarning checks that consecutive experience start dates are
// non-increasing as (year, month). The outcome is a document-level
// warning, never an error: the violation taxonomy is frozen and the check
// must not flip validity. Entries with malformed dates are skipped; those
// already carry a FORMAT error.
func chronologyWarning(entries []model.Experience) *Violation {
	prevY, prevM := 0, 0
	havePrev := false
	for _, e := range entries {
		y, m, ok := rules.DateParts(e.StartDate)
		if !ok {
			continue
		}
		if havePrev && (y > prevY || (y == prevY && m > prevM)) {
			return &Violation{
				Field:   "experience",
				Kind:    KindChronology,
				Message: "Experience entries should be in reverse-chronological order",
			}
		}
		prevY, prevM = y, m
		havePrev = true
	}
	return nil
}
