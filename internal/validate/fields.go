package validate

import (
	"fmt"
	"strings"

	"resume-builder/internal/rules"
)

// Field validators are total functions: any input string, including empty
// or pathological ones, yields a plain answer, never a panic.

// ValidDate reports whether s is a canonical MMM YYYY token.
func ValidDate(s string) bool {
	return rules.DateRE.MatchString(s)
}

// ValidEndDate reports whether s is a date token or the Present sentinel.
func ValidEndDate(s string) bool {
	return ValidDate(s) || rules.IsPresent(s)
}

// Words tokenizes on whitespace and drops empty tokens.
func Words(s string) int {
	return len(strings.Fields(s))
}

// ValidWordCount applies the expertise word range from the rule table,
// inclusive at both ends.
func ValidWordCount(s string) bool {
	n := Words(s)
	return n >= rules.T.WordCount.Min && n <= rules.T.WordCount.Max
}

// ValidCommaList requires at least one comma separating two or more
// non-empty trimmed tokens.
func ValidCommaList(s string) bool {
	if !strings.Contains(s, ",") {
		return false
	}
	count := 0
	for _, tok := range strings.Split(s, ",") {
		if strings.TrimSpace(tok) != "" {
			count++
		}
	}
	return count >= 2
}

// NonBlankIndices returns the original indices of the entries that
// survive trimming, in order.
func NonBlankIndices(items []string) []int {
	out := make([]int, 0, len(items))
	for i, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, i)
		}
	}
	return out
}

// ForbiddenGlyph returns the first code point falling into one of the
// pictographic ranges of the rule table.
func ForbiddenGlyph(s string) (rune, bool) {
	for _, r := range s {
		for _, rng := range rules.T.GlyphRanges {
			if r >= rng[0] && r <= rng[1] {
				return r, true
			}
		}
	}
	return 0, false
}

// ValidEmail reports whether s has one @ with a dot somewhere after it.
func ValidEmail(s string) bool {
	return rules.EmailRE.MatchString(s)
}

// ValidPhone allows digits, spaces, hyphens, parentheses and an optional
// leading plus.
func ValidPhone(s string) bool {
	return rules.PhoneRE.MatchString(s)
}

// Shared message builders. Classification lives in the Kind; these keep
// the presentation strings identical across both evaluators as well.

func msgDate() string {
	return "Date must match MMM YYYY format, e.g. JAN 2020"
}

func msgEndDate() string {
	return "Date must match MMM YYYY format or the literal Present"
}

func msgWordCount(got int) string {
	return fmt.Sprintf("Summary must be %d-%d words, got %d",
		rules.T.WordCount.Min, rules.T.WordCount.Max, got)
}

func msgComma() string {
	return "Skills must be in comma-separated format"
}

func msgMinResps(got int) string {
	return fmt.Sprintf("Minimum %d responsibilities required, got %d", rules.T.MinResps, got)
}

func msgGlyph() string {
	return "Content cannot contain emojis, icons, or graphics"
}

func msgEmail() string {
	return "Email must match local@domain.tld"
}

func msgPhone() string {
	return "Phone may contain digits, spaces, hyphens, parentheses and a leading +"
}

func msgMaxLen(limit int) string {
	return fmt.Sprintf("Must be at most %d characters", limit)
}

func msgRequired() string {
	return "Field is required"
}

func msgMissingSection(name string) string {
	return fmt.Sprintf("%s section cannot be empty", name)
}
