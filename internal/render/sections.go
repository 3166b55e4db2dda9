// Package render maps a validated document onto one shared intermediate
// model - an ordered list of sections - that both the HTML preview and
// the PDF export consume. Structural parity between the two outputs is a
// consequence of this single model, not a convention.
package render

import (
	"sort"
	"strings"

	"resume-builder/internal/model"
)

type LineStyle int

const (
	StyleText LineStyle = iota
	StyleStrong
	StyleMeta
	StyleBullet
)

// Line is one renderable unit of section content. Text carries the full
// content string; Style is the only presentation hint renderers may use.
type Line struct {
	Style LineStyle
	Text  string
}

// Class names the line style for markup renderers.
func (l Line) Class() string {
	switch l.Style {
	case StyleStrong:
		return "strong"
	case StyleMeta:
		return "meta"
	case StyleBullet:
		return "bullet"
	default:
		return "text"
	}
}

func (l Line) IsBullet() bool { return l.Style == StyleBullet }

// Section is one (heading, body) pair of the shared model. The header
// block has an empty heading by design of the fixed template.
type Section struct {
	ID      string
	Heading string
	Lines   []Line
}

// Section headings are frozen; they are part of the template contract.
const (
	headingExpertise  = "EXPERTISE"
	headingSkills     = "SKILLS"
	headingExperience = "EXPERIENCE"
	headingProjects   = "PROJECT EXPERIENCE"
	headingEducation  = "EDUCATION"
	headingAwards     = "AWARDS"
)

// BuildSections derives the ordered section list from a validated
// document. Exactly one mapping function exists per section type; both
// renderers consume the result unchanged.
func BuildSections(doc *model.ResumeDocument) []Section {
	sections := []Section{
		headerSection(doc.Header),
		expertiseSection(doc.Expertise),
		skillsSection(doc.Skills),
		experienceSection(doc.Experience),
		projectsSection(doc.Projects),
		educationSection(doc.Education),
	}
	if len(doc.Awards) > 0 {
		sections = append(sections, awardsSection(doc.Awards))
	}
	return sections
}

func headerSection(h model.Header) Section {
	lines := []Line{
		{StyleStrong, h.Name},
		{StyleText, h.Title},
		{StyleMeta, h.Email + " | " + h.Phone},
		{StyleText, h.Location},
	}
	if len(h.Links) > 0 {
		keys := make([]string, 0, len(h.Links))
		for k := range h.Links {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		labels := make([]string, 0, len(keys))
		for _, k := range keys {
			labels = append(labels, LinkLabel(h.Links[k]))
		}
		lines = append(lines, Line{StyleMeta, strings.Join(labels, " | ")})
	}
	return Section{ID: "header", Lines: lines}
}

func expertiseSection(e model.Expertise) Section {
	return Section{
		ID:      "expertise",
		Heading: headingExpertise,
		Lines:   []Line{{StyleText, e.Summary}},
	}
}

func skillsSection(cats []model.SkillCategory) Section {
	s := Section{ID: "skills", Heading: headingSkills}
	for _, c := range cats {
		s.Lines = append(s.Lines, Line{StyleText, c.Category + ": " + c.Skills})
	}
	return s
}

func dateRange(start, end string) string {
	if end == "" {
		end = "Present"
	}
	return start + " - " + end
}

func experienceSection(entries []model.Experience) Section {
	s := Section{ID: "experience", Heading: headingExperience}
	for _, e := range entries {
		s.Lines = append(s.Lines,
			Line{StyleStrong, e.Company + " - " + e.Position},
			Line{StyleMeta, dateRange(e.StartDate, e.EndDate)},
		)
		for _, r := range e.Responsibilities {
			if strings.TrimSpace(r) == "" {
				continue
			}
			s.Lines = append(s.Lines, Line{StyleBullet, r})
		}
	}
	return s
}

func projectsSection(entries []model.Project) Section {
	s := Section{ID: "projects", Heading: headingProjects}
	for _, p := range entries {
		s.Lines = append(s.Lines,
			Line{StyleStrong, p.Name},
			Line{StyleMeta, dateRange(p.StartDate, p.EndDate)},
			Line{StyleText, p.Description},
			Line{StyleText, "Technologies: " + p.Technologies},
		)
	}
	return s
}

func educationSection(entries []model.Education) Section {
	s := Section{ID: "education", Heading: headingEducation}
	for _, e := range entries {
		grad := "Graduated: " + e.GraduationDate
		if e.GPA != "" {
			grad += " | GPA: " + e.GPA
		}
		s.Lines = append(s.Lines,
			Line{StyleStrong, e.Institution + " - " + e.Degree},
			Line{StyleText, e.FieldOfStudy},
			Line{StyleMeta, grad},
		)
		if e.Honors != "" {
			s.Lines = append(s.Lines, Line{StyleText, "Honors: " + e.Honors})
		}
	}
	return s
}

func awardsSection(entries []model.Award) Section {
	s := Section{ID: "awards", Heading: headingAwards}
	for _, a := range entries {
		s.Lines = append(s.Lines,
			Line{StyleStrong, a.Title + " - " + a.Organization},
			Line{StyleMeta, a.Date},
		)
		if a.Description != "" {
			s.Lines = append(s.Lines, Line{StyleText, a.Description})
		}
	}
	return s
}

// ContentStrings flattens a section's body for parity comparisons.
func (s Section) ContentStrings() []string {
	out := make([]string, 0, len(s.Lines))
	for _, l := range s.Lines {
		out = append(out, l.Text)
	}
	return out
}
