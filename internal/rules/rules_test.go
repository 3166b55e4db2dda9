package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableLoads(t *testing.T) {
	require.Len(t, T.Months, 12)
	assert.Equal(t, 80, T.WordCount.Min)
	assert.Equal(t, 120, T.WordCount.Max)
	assert.Equal(t, 3, T.MinResps)
	require.Len(t, T.GlyphRanges, 6)
	assert.Equal(t,
		[]string{"header", "expertise", "skills", "experience", "projects", "education", "awards"},
		T.Sections)
}

func TestDateParts(t *testing.T) {
	y, m, ok := DateParts("JAN 2020")
	require.True(t, ok)
	assert.Equal(t, 2020, y)
	assert.Equal(t, 1, m)

	y, m, ok = DateParts("DEC 1999")
	require.True(t, ok)
	assert.Equal(t, 1999, y)
	assert.Equal(t, 12, m)

	for _, bad := range []string{"", "January 2020", "jan 2020", "JAN  2020", "JAN 20", "JAN2020", "XYZ 2020", "JAN 2020 "} {
		_, _, ok := DateParts(bad)
		assert.False(t, ok, "expected %q to be rejected", bad)
	}
}

func TestIsPresent(t *testing.T) {
	assert.True(t, IsPresent("Present"))
	assert.True(t, IsPresent("present"))
	assert.True(t, IsPresent("PRESENT"))
	assert.False(t, IsPresent("Presently"))
	assert.False(t, IsPresent(""))
}

func TestMaxLen(t *testing.T) {
	assert.Equal(t, 100, MaxLen("header", "name"))
	assert.Equal(t, 150, MaxLen("header", "title"))
	assert.Equal(t, 500, MaxLen("projects", "description"))
	assert.Equal(t, 0, MaxLen("expertise", "summary"))
}

func TestDeclarationOrder(t *testing.T) {
	assert.Equal(t, 0, SectionIndex("header"))
	assert.Equal(t, 3, SectionIndex("experience"))
	assert.Equal(t, len(T.Sections), SectionIndex("bogus"))

	assert.Equal(t, 0, FieldIndex("header", "name"))
	assert.Equal(t, 2, FieldIndex("experience", "start_date"))
	assert.Equal(t, len(T.Fields["header"]), FieldIndex("header", "bogus"))
}

func TestSectionOptional(t *testing.T) {
	assert.True(t, SectionOptional("awards"))
	assert.False(t, SectionOptional("education"))
}
