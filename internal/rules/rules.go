// Package rules holds the single source of truth for every validation
// constant: regexes, bounds, month tokens, pictographic ranges and the
// declaration order of sections and fields. Both evaluators reference this
// table; neither carries rule constants of its own.
package rules

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

//go:embed rules.json
var raw []byte

// Table mirrors rules.json.
type Table struct {
	Version         int                 `json:"version"`
	Months          []string            `json:"months"`
	PresentSentinel string              `json:"present_sentinel"`
	Patterns        map[string]string   `json:"patterns"`
	WordCount       WordRange           `json:"word_count"`
	MinResps        int                 `json:"min_responsibilities"`
	GlyphRanges     [][]rune            `json:"glyph_ranges"`
	MaxLengths      map[string]int      `json:"max_lengths"`
	Sections        []string            `json:"sections"`
	OptionalSecs    []string            `json:"optional_sections"`
	Fields          map[string][]string `json:"fields"`
}

type WordRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

var (
	// T is the loaded rule table.
	T Table

	// EmailRE and PhoneRE are compiled from the table's patterns.
	EmailRE *regexp.Regexp
	PhoneRE *regexp.Regexp
	// DateRE matches the canonical MMM YYYY token.
	DateRE *regexp.Regexp

	monthIndex   map[string]int
	sectionIndex map[string]int
	fieldIndex   map[string]map[string]int
	optionalSecs map[string]bool
)

func init() {
	if err := json.Unmarshal(raw, &T); err != nil {
		panic(fmt.Sprintf("rules: corrupt rules.json: %v", err))
	}

	EmailRE = regexp.MustCompile(T.Patterns["email"])
	PhoneRE = regexp.MustCompile(T.Patterns["phone"])
	DateRE = regexp.MustCompile("^(" + strings.Join(T.Months, "|") + `) \d{4}$`)

	monthIndex = make(map[string]int, len(T.Months))
	for i, m := range T.Months {
		monthIndex[m] = i + 1
	}
	sectionIndex = make(map[string]int, len(T.Sections))
	for i, s := range T.Sections {
		sectionIndex[s] = i
	}
	fieldIndex = make(map[string]map[string]int, len(T.Fields))
	for sec, fs := range T.Fields {
		idx := make(map[string]int, len(fs))
		for i, f := range fs {
			idx[f] = i
		}
		fieldIndex[sec] = idx
	}
	optionalSecs = make(map[string]bool, len(T.OptionalSecs))
	for _, s := range T.OptionalSecs {
		optionalSecs[s] = true
	}
}

// DateParts parses a canonical date token into (year, month). ok is false
// for anything that does not match the token format.
func DateParts(s string) (year, month int, ok bool) {
	if !DateRE.MatchString(s) {
		return 0, 0, false
	}
	m := monthIndex[s[:3]]
	y, err := strconv.Atoi(s[4:])
	if err != nil {
		return 0, 0, false
	}
	return y, m, true
}

// IsPresent reports whether s is the end-date sentinel, compared
// case-insensitively.
func IsPresent(s string) bool {
	return strings.EqualFold(s, T.PresentSentinel)
}

// MaxLen returns the length bound for section.field, or 0 when unbounded.
func MaxLen(section, field string) int {
	return T.MaxLengths[section+"."+field]
}

// SectionIndex returns the declaration position of a section, or a
// past-the-end index for names outside the fixed set.
func SectionIndex(name string) int {
	if i, ok := sectionIndex[name]; ok {
		return i
	}
	return len(T.Sections)
}

// FieldIndex returns the declaration position of a field within its
// section, or a past-the-end index for unknown fields.
func FieldIndex(section, field string) int {
	if idx, ok := fieldIndex[section]; ok {
		if i, ok := idx[field]; ok {
			return i
		}
		return len(idx)
	}
	return 0
}

// SectionOptional reports whether a section may be absent or empty.
func SectionOptional(name string) bool {
	return optionalSecs[name]
}
