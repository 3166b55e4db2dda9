package render

import (
	"strings"
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDoc() *model.ResumeDocument {
	return &model.ResumeDocument{
		Header: model.Header{
			Name:     "Jane Doe",
			Title:    "Senior Software Engineer",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "Austin, TX",
			Links: map[string]string{
				"github":   "https://github.com/janedoe",
				"linkedin": "https://www.linkedin.com/in/janedoe",
			},
		},
		Expertise: model.Expertise{Summary: "Backend engineer focused on reliable data plumbing."},
		Skills: []model.SkillCategory{
			{Category: "Languages", Skills: "Go, Python, SQL"},
		},
		Experience: []model.Experience{
			{
				Company:   "Acme Corp",
				Position:  "Staff Engineer",
				StartDate: "MAR 2021",
				EndDate:   "Present",
				Responsibilities: []string{
					"Led the platform migration",
					"Designed the billing pipeline",
					"Mentored four engineers",
				},
			},
		},
		Projects: []model.Project{
			{
				Name:         "Telemetry Gateway",
				Description:  "Normalizes telemetry from edge agents before storage.",
				Technologies: "Go, Kafka, ClickHouse",
				StartDate:    "JAN 2020",
			},
		},
		Education: []model.Education{
			{
				Institution:    "University of Texas",
				Degree:         "BSc",
				FieldOfStudy:   "Computer Science",
				GraduationDate: "MAY 2017",
				GPA:            "3.8",
				Honors:         "Magna Cum Laude",
			},
		},
		Awards: []model.Award{
			{Title: "Engineering Excellence", Organization: "Acme Corp", Date: "DEC 2022"},
		},
	}
}

func TestBuildSectionsOrderAndContent(t *testing.T) {
	sections := BuildSections(sampleDoc())

	ids := make([]string, 0, len(sections))
	for _, s := range sections {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []string{"header", "expertise", "skills", "experience", "projects", "education", "awards"}, ids)

	// the header block carries no heading; every other section does
	assert.Empty(t, sections[0].Heading)
	assert.Equal(t, "EXPERTISE", sections[1].Heading)
	assert.Equal(t, "SKILLS", sections[2].Heading)
	assert.Equal(t, "EXPERIENCE", sections[3].Heading)
	assert.Equal(t, "PROJECT EXPERIENCE", sections[4].Heading)
	assert.Equal(t, "EDUCATION", sections[5].Heading)
	assert.Equal(t, "AWARDS", sections[6].Heading)

	header := sections[0].ContentStrings()
	assert.Equal(t, "Jane Doe", header[0])
	assert.Contains(t, header, "jane.doe@example.com | +1 (555) 123-4567")
	// link labels are tidied hostnames, sorted by link key
	assert.Contains(t, header, "github.com | linkedin.com")

	assert.Contains(t, sections[2].ContentStrings(), "Languages: Go, Python, SQL")
	assert.Contains(t, sections[3].ContentStrings(), "Acme Corp - Staff Engineer")
	assert.Contains(t, sections[3].ContentStrings(), "MAR 2021 - Present")
	assert.Contains(t, sections[4].ContentStrings(), "JAN 2020 - Present")
	assert.Contains(t, sections[4].ContentStrings(), "Technologies: Go, Kafka, ClickHouse")
	assert.Contains(t, sections[5].ContentStrings(), "Graduated: MAY 2017 | GPA: 3.8")
	assert.Contains(t, sections[5].ContentStrings(), "Honors: Magna Cum Laude")
}

func TestAwardsSectionOmittedWhenEmpty(t *testing.T) {
	doc := sampleDoc()
	doc.Awards = nil
	sections := BuildSections(doc)
	require.Len(t, sections, 6)
	for _, s := range sections {
		assert.NotEqual(t, "awards", s.ID)
	}
}

func TestBlankResponsibilitiesDroppedFromOutput(t *testing.T) {
	doc := sampleDoc()
	doc.Experience[0].Responsibilities = []string{"First", "   ", "Third"}
	sections := BuildSections(doc)

	got := sections[3].ContentStrings()
	assert.Contains(t, got, "First")
	assert.Contains(t, got, "Third")
	assert.NotContains(t, got, "   ")
}

// Both renderers consume the same section list; every heading and every
// content line must appear in both outputs, in the same order.
func TestPreviewAndPrintStructuralParity(t *testing.T) {
	sections := BuildSections(sampleDoc())

	preview, err := HTML(sections)
	require.NoError(t, err)
	print_, err := PrintHTML(sections)
	require.NoError(t, err)

	for _, out := range []string{preview, print_} {
		last := -1
		for _, s := range sections {
			if s.Heading != "" {
				i := strings.Index(out, s.Heading)
				require.Greater(t, i, last, "heading %q out of order", s.Heading)
				last = i
			}
		}
	}

	for _, s := range sections {
		for _, text := range s.ContentStrings() {
			assert.Contains(t, preview, text)
			assert.Contains(t, print_, text)
		}
	}

	// the print layout, not the preview, pins the A4 page box
	assert.Contains(t, print_, "size: A4")
	assert.NotContains(t, preview, "size: A4")
}

func TestRenderIsByteStable(t *testing.T) {
	sections := BuildSections(sampleDoc())

	a, err := HTML(sections)
	require.NoError(t, err)
	b, err := HTML(sections)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	pa, err := PrintHTML(sections)
	require.NoError(t, err)
	pb, err := PrintHTML(sections)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}

func TestProjectedLines(t *testing.T) {
	sections := []Section{
		{Lines: []Line{{StyleText, strings.Repeat("a", CharsPerLine)}}},
		{Heading: "X", Lines: []Line{{StyleText, strings.Repeat("b", CharsPerLine+1)}}},
	}
	// 1 line + gap, then heading cost + 2 wrapped lines + gap
	assert.Equal(t, 1+sectionGap+headingCost+2+sectionGap, ProjectedLines(sections))

	// an empty text line still occupies one line
	assert.Equal(t, 1+sectionGap, ProjectedLines([]Section{{Lines: []Line{{StyleText, ""}}}}))
}

func TestFitsOnePage(t *testing.T) {
	doc := sampleDoc()
	_, ok := FitsOnePage(BuildSections(doc))
	assert.True(t, ok)

	for i := 0; i < 12; i++ {
		doc.Experience = append(doc.Experience, doc.Experience[0])
	}
	n, ok := FitsOnePage(BuildSections(doc))
	assert.False(t, ok)
	assert.Greater(t, n, LinesPerPage)
}

func TestLinkLabel(t *testing.T) {
	assert.Equal(t, "github.com", LinkLabel("https://github.com/janedoe"))
	assert.Equal(t, "linkedin.com", LinkLabel("https://www.linkedin.com/in/janedoe"))
	assert.Equal(t, "example.co.uk", LinkLabel("www.example.co.uk/profile"))
	assert.Equal(t, "not a url", LinkLabel("not a url"))
	assert.Equal(t, "", LinkLabel(""))
}
