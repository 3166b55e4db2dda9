package validate

import (
	"fmt"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/rules"
)

// Client is the inline evaluator. It walks the typed form state
// synchronously on every (debounced) edit and gates UI affordances only;
// the server evaluator stays authoritative for preview and export.
type Client struct{}

func NewClient() *Client { return &Client{} }

// Evaluate validates one document snapshot. It is pure and deterministic:
// the same snapshot always yields the same ordered violation list.
func (c *Client) Evaluate(doc *model.ResumeDocument) Result {
	var errs []Violation
	add := func(field string, kind Kind, msg string) {
		errs = append(errs, Violation{Field: field, Kind: kind, Message: msg})
	}

	c.header(doc.Header, add)
	c.expertise(doc.Expertise, add)
	c.skills(doc.Skills, add)
	c.experience(doc.Experience, add)
	c.projects(doc.Projects, add)
	c.education(doc.Education, add)
	c.awards(doc.Awards, add)

	var warns []Violation
	if w := chronologyWarning(doc.Experience); w != nil {
		warns = append(warns, *w)
	}

	sortViolations(errs)
	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

type addFn func(field string, kind Kind, msg string)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

// text applies the required / length / glyph ladder shared by every
// free-text field. Rule order within a field is fixed; ordering across
// fields is restored by the canonical sort.
func (c *Client) text(field, section, name, value string, required bool, add addFn) {
	if blank(value) {
		if required {
			add(field, KindMissingField, msgRequired())
		}
		return
	}
	if limit := rules.MaxLen(section, name); limit > 0 && len([]rune(value)) > limit {
		add(field, KindFormat, msgMaxLen(limit))
	}
	if _, bad := ForbiddenGlyph(value); bad {
		add(field, KindForbiddenGlyph, msgGlyph())
	}
}

func (c *Client) header(h model.Header, add addFn) {
	c.text("header.name", "header", "name", h.Name, true, add)
	c.text("header.title", "header", "title", h.Title, true, add)
	if blank(h.Email) {
		add("header.email", KindMissingField, msgRequired())
	} else if !ValidEmail(h.Email) {
		add("header.email", KindFormat, msgEmail())
	}
	if blank(h.Phone) {
		add("header.phone", KindMissingField, msgRequired())
	} else if !ValidPhone(h.Phone) {
		add("header.phone", KindFormat, msgPhone())
	}
	c.text("header.location", "header", "location", h.Location, true, add)
}

func (c *Client) expertise(e model.Expertise, add addFn) {
	if blank(e.Summary) {
		add("expertise.summary", KindMissingField, msgRequired())
		return
	}
	if !ValidWordCount(e.Summary) {
		add("expertise.summary", KindWordCount, msgWordCount(Words(e.Summary)))
	}
	if _, bad := ForbiddenGlyph(e.Summary); bad {
		add("expertise.summary", KindForbiddenGlyph, msgGlyph())
	}
}

func (c *Client) skills(cats []model.SkillCategory, add addFn) {
	if len(cats) == 0 {
		add("skills", KindMissingSection, msgMissingSection("skills"))
		return
	}
	for i, cat := range cats {
		c.text(fmt.Sprintf("skills.%d.category", i), "skills", "category", cat.Category, true, add)
		field := fmt.Sprintf("skills.%d.skills", i)
		if blank(cat.Skills) {
			add(field, KindMissingField, msgRequired())
			continue
		}
		if !ValidCommaList(cat.Skills) {
			add(field, KindFormat, msgComma())
		}
		if _, bad := ForbiddenGlyph(cat.Skills); bad {
			add(field, KindForbiddenGlyph, msgGlyph())
		}
	}
}

func (c *Client) experience(entries []model.Experience, add addFn) {
	if len(entries) == 0 {
		add("experience", KindMissingSection, msgMissingSection("experience"))
		return
	}
	for i, e := range entries {
		p := fmt.Sprintf("experience.%d", i)
		c.text(p+".company", "experience", "company", e.Company, true, add)
		c.text(p+".position", "experience", "position", e.Position, true, add)
		if blank(e.StartDate) {
			add(p+".start_date", KindMissingField, msgRequired())
		} else if !ValidDate(e.StartDate) {
			add(p+".start_date", KindFormat, msgDate())
		}
		if !blank(e.EndDate) && !ValidEndDate(e.EndDate) {
			add(p+".end_date", KindFormat, msgEndDate())
		}
		kept := NonBlankIndices(e.Responsibilities)
		if len(kept) < rules.T.MinResps {
			add(p+".responsibilities", KindMinCount, msgMinResps(len(kept)))
		}
		for _, j := range kept {
			if _, bad := ForbiddenGlyph(e.Responsibilities[j]); bad {
				add(fmt.Sprintf("%s.responsibilities.%d", p, j), KindForbiddenGlyph, msgGlyph())
			}
		}
	}
}

func (c *Client) projects(entries []model.Project, add addFn) {
	if len(entries) == 0 {
		add("projects", KindMissingSection, msgMissingSection("projects"))
		return
	}
	for i, pr := range entries {
		p := fmt.Sprintf("projects.%d", i)
		c.text(p+".name", "projects", "name", pr.Name, true, add)
		c.text(p+".description", "projects", "description", pr.Description, true, add)
		c.text(p+".technologies", "projects", "technologies", pr.Technologies, true, add)
		if blank(pr.StartDate) {
			add(p+".start_date", KindMissingField, msgRequired())
		} else if !ValidDate(pr.StartDate) {
			add(p+".start_date", KindFormat, msgDate())
		}
		if !blank(pr.EndDate) && !ValidEndDate(pr.EndDate) {
			add(p+".end_date", KindFormat, msgEndDate())
		}
	}
}

func (c *Client) education(entries []model.Education, add addFn) {
	if len(entries) == 0 {
		add("education", KindMissingSection, msgMissingSection("education"))
		return
	}
	for i, ed := range entries {
		p := fmt.Sprintf("education.%d", i)
		c.text(p+".institution", "education", "institution", ed.Institution, true, add)
		c.text(p+".degree", "education", "degree", ed.Degree, true, add)
		c.text(p+".field_of_study", "education", "field_of_study", ed.FieldOfStudy, true, add)
		if blank(ed.GraduationDate) {
			add(p+".graduation_date", KindMissingField, msgRequired())
		} else if !ValidDate(ed.GraduationDate) {
			add(p+".graduation_date", KindFormat, msgDate())
		}
		c.text(p+".gpa", "education", "gpa", ed.GPA, false, add)
		c.text(p+".honors", "education", "honors", ed.Honors, false, add)
	}
}

func (c *Client) awards(entries []model.Award, add addFn) {
	// awards is the optional section: absent or empty is fine
	for i, a := range entries {
		p := fmt.Sprintf("awards.%d", i)
		c.text(p+".title", "awards", "title", a.Title, true, add)
		c.text(p+".organization", "awards", "organization", a.Organization, true, add)
		if blank(a.Date) {
			add(p+".date", KindMissingField, msgRequired())
		} else if !ValidDate(a.Date) {
			add(p+".date", KindFormat, msgDate())
		}
		c.text(p+".description", "awards", "description", a.Description, false, add)
	}
}
