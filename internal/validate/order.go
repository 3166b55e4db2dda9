package validate

import (
	"sort"
	"strconv"
	"strings"

	"resume-builder/internal/rules"
)

// pathKey positions a dotted field path inside the fixed declaration
// order: (section, entry, field, item). Unknown sections sort last so
// UNKNOWN_FIELD violations trail the structured ones deterministically.
type pathKey struct {
	section int
	entry   int
	field   int
	item    int
}

func keyFor(field string) pathKey {
	parts := strings.Split(field, ".")
	k := pathKey{section: rules.SectionIndex(parts[0])}
	if len(parts) == 1 {
		return k
	}
	if n, err := strconv.Atoi(parts[1]); err == nil {
		// array section: section.N.field[.M]
		k.entry = n
		if len(parts) > 2 {
			k.field = rules.FieldIndex(parts[0], parts[2])
		}
		if len(parts) > 3 {
			if m, err := strconv.Atoi(parts[3]); err == nil {
				k.item = m
			}
		}
		return k
	}
	k.field = rules.FieldIndex(parts[0], parts[1])
	return k
}

// sortViolations orders a violation list canonically: declaration order
// first, full path string and kind as tie-breakers. The sort is stable, so
// multiple rules fired on one field keep their evaluation order. Both
// evaluators run this, which makes identical inputs yield identical lists.
func sortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		a, b := keyFor(vs[i].Field), keyFor(vs[j].Field)
		if a.section != b.section {
			return a.section < b.section
		}
		if a.entry != b.entry {
			return a.entry < b.entry
		}
		if a.field != b.field {
			return a.field < b.field
		}
		if a.item != b.item {
			return a.item < b.item
		}
		return vs[i].Field < vs[j].Field
	})
}
