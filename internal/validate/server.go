package validate

import (
	"encoding/json"
	"fmt"
	"strings"

	"resume-builder/internal/model"
	"resume-builder/internal/rules"

	"github.com/xeipuuv/gojsonschema"
)

// Server is the authoritative evaluator. It accepts the raw document map,
// enforces the closed schema with a JSON Schema generated from the shared
// rule table, then runs its own rule walk over the decoded sections.
// Export revalidates through this evaluator immediately before rendering.
type Server struct {
	schema *gojsonschema.Schema
}

func NewServer() (*Server, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(buildSchema()))
	if err != nil {
		return nil, fmt.Errorf("validate: building document schema: %w", err)
	}
	return &Server{schema: schema}, nil
}

// buildSchema derives the structural JSON Schema from the rule table:
// property sets come from the declared field lists, additionalProperties
// is forbidden everywhere. Content rules (patterns, counts, glyphs) stay
// out of the schema on purpose: the walk owns them, so no violation is
// ever reported twice.
func buildSchema() map[string]interface{} {
	str := map[string]interface{}{"type": "string"}

	obj := func(section string, overrides map[string]interface{}) map[string]interface{} {
		props := map[string]interface{}{}
		for _, f := range rules.T.Fields[section] {
			if o, ok := overrides[f]; ok {
				props[f] = o
			} else {
				props[f] = str
			}
		}
		return map[string]interface{}{
			"type":                 "object",
			"properties":           props,
			"additionalProperties": false,
		}
	}
	arr := func(items map[string]interface{}) map[string]interface{} {
		return map[string]interface{}{
			"type":  []interface{}{"array", "null"},
			"items": items,
		}
	}

	rootProps := map[string]interface{}{
		"header": obj("header", map[string]interface{}{
			"links": map[string]interface{}{
				"type":                 "object",
				"additionalProperties": str,
			},
		}),
		"expertise": obj("expertise", nil),
		"skills":    arr(obj("skills", nil)),
		"experience": arr(obj("experience", map[string]interface{}{
			"responsibilities": map[string]interface{}{
				"type":  []interface{}{"array", "null"},
				"items": str,
			},
		})),
		"projects":  arr(obj("projects", nil)),
		"education": arr(obj("education", nil)),
		"awards":    arr(obj("awards", nil)),
	}

	return map[string]interface{}{
		"type":                 "object",
		"properties":           rootProps,
		"additionalProperties": false,
	}
}

// Evaluate validates a raw document map. It is total: any map shape yields
// a Result, never a panic.
func (s *Server) Evaluate(raw map[string]interface{}) Result {
	var errs []Violation
	add := func(field string, kind Kind, msg string) {
		errs = append(errs, Violation{Field: field, Kind: kind, Message: msg})
	}

	sr, err := s.schema.Validate(gojsonschema.NewGoLoader(raw))
	if err != nil {
		add("document", KindFormat, "Document is not a JSON object")
		sortViolations(errs)
		return Result{Valid: false, Errors: errs}
	}
	for _, e := range sr.Errors() {
		switch e.Type() {
		case "additional_property_not_allowed":
			prop, _ := e.Details()["property"].(string)
			field := prop
			if p := e.Field(); p != "(root)" {
				field = p + "." + prop
			}
			add(field, KindUnknownField, "Unknown field is not allowed")
		default:
			add(e.Field(), KindFormat, e.Description())
		}
	}

	present := func(name string) bool {
		v, ok := raw[name]
		return ok && v != nil
	}

	// header
	if !present("header") {
		add("header", KindMissingSection, msgMissingSection("header"))
	} else {
		var h model.Header
		if decodeSection(raw["header"], &h) {
			s.walkHeader(h, add)
		}
	}

	// expertise
	if !present("expertise") {
		add("expertise", KindMissingSection, msgMissingSection("expertise"))
	} else {
		var e model.Expertise
		if decodeSection(raw["expertise"], &e) {
			s.walkExpertise(e, add)
		}
	}

	// skills
	var skills []model.SkillCategory
	if listSection(raw, "skills", &skills, add) {
		for i, cat := range skills {
			p := fmt.Sprintf("skills.%d", i)
			s.check(p+".category", "skills", "category", cat.Category, classText, true, add)
			s.check(p+".skills", "skills", "skills", cat.Skills, classComma, true, add)
		}
	}

	// experience
	var exps []model.Experience
	var warns []Violation
	if listSection(raw, "experience", &exps, add) {
		for i, e := range exps {
			p := fmt.Sprintf("experience.%d", i)
			s.check(p+".company", "experience", "company", e.Company, classText, true, add)
			s.check(p+".position", "experience", "position", e.Position, classText, true, add)
			s.check(p+".start_date", "experience", "start_date", e.StartDate, classDate, true, add)
			s.check(p+".end_date", "experience", "end_date", e.EndDate, classEndDate, false, add)
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
		if w := chronologyWarning(exps); w != nil {
			warns = append(warns, *w)
		}
	}

	// projects
	var projects []model.Project
	if listSection(raw, "projects", &projects, add) {
		for i, pr := range projects {
			p := fmt.Sprintf("projects.%d", i)
			s.check(p+".name", "projects", "name", pr.Name, classText, true, add)
			s.check(p+".description", "projects", "description", pr.Description, classText, true, add)
			s.check(p+".technologies", "projects", "technologies", pr.Technologies, classText, true, add)
			s.check(p+".start_date", "projects", "start_date", pr.StartDate, classDate, true, add)
			s.check(p+".end_date", "projects", "end_date", pr.EndDate, classEndDate, false, add)
		}
	}

	// education
	var education []model.Education
	if listSection(raw, "education", &education, add) {
		for i, ed := range education {
			p := fmt.Sprintf("education.%d", i)
			s.check(p+".institution", "education", "institution", ed.Institution, classText, true, add)
			s.check(p+".degree", "education", "degree", ed.Degree, classText, true, add)
			s.check(p+".field_of_study", "education", "field_of_study", ed.FieldOfStudy, classText, true, add)
			s.check(p+".graduation_date", "education", "graduation_date", ed.GraduationDate, classDate, true, add)
			s.check(p+".gpa", "education", "gpa", ed.GPA, classText, false, add)
			s.check(p+".honors", "education", "honors", ed.Honors, classText, false, add)
		}
	}

	// awards (optional)
	if present("awards") {
		var awards []model.Award
		if decodeSection(raw["awards"], &awards) {
			for i, a := range awards {
				p := fmt.Sprintf("awards.%d", i)
				s.check(p+".title", "awards", "title", a.Title, classText, true, add)
				s.check(p+".organization", "awards", "organization", a.Organization, classText, true, add)
				s.check(p+".date", "awards", "date", a.Date, classDate, true, add)
				s.check(p+".description", "awards", "description", a.Description, classText, false, add)
			}
		}
	}

	sortViolations(errs)
	return Result{Valid: len(errs) == 0, Errors: errs, Warnings: warns}
}

// EvaluateDocument revalidates a typed snapshot through the authoritative
// path, as export does right before rendering.
func (s *Server) EvaluateDocument(doc *model.ResumeDocument) (Result, error) {
	m, err := doc.ToMap()
	if err != nil {
		return Result{}, err
	}
	return s.Evaluate(m), nil
}

type ruleClass int

const (
	classText ruleClass = iota
	classEmail
	classPhone
	classDate
	classEndDate
	classComma
	classSummary
)

// check runs the rule ladder for one scalar field: required, then the
// class-specific shape rule, then length and glyph checks for free text.
func (s *Server) check(path, section, name, value string, class ruleClass, required bool, add addFn) {
	if strings.TrimSpace(value) == "" {
		if required {
			add(path, KindMissingField, msgRequired())
		}
		return
	}
	switch class {
	case classEmail:
		if !ValidEmail(value) {
			add(path, KindFormat, msgEmail())
		}
		return
	case classPhone:
		if !ValidPhone(value) {
			add(path, KindFormat, msgPhone())
		}
		return
	case classDate:
		if !ValidDate(value) {
			add(path, KindFormat, msgDate())
		}
		return
	case classEndDate:
		if !ValidEndDate(value) {
			add(path, KindFormat, msgEndDate())
		}
		return
	case classSummary:
		if !ValidWordCount(value) {
			add(path, KindWordCount, msgWordCount(Words(value)))
		}
	case classComma:
		if !ValidCommaList(value) {
			add(path, KindFormat, msgComma())
		}
	case classText:
		if limit := rules.MaxLen(section, name); limit > 0 && len([]rune(value)) > limit {
			add(path, KindFormat, msgMaxLen(limit))
		}
	}
	if _, bad := ForbiddenGlyph(value); bad {
		add(path, KindForbiddenGlyph, msgGlyph())
	}
}

func (s *Server) walkHeader(h model.Header, add addFn) {
	s.check("header.name", "header", "name", h.Name, classText, true, add)
	s.check("header.title", "header", "title", h.Title, classText, true, add)
	s.check("header.email", "header", "email", h.Email, classEmail, true, add)
	s.check("header.phone", "header", "phone", h.Phone, classPhone, true, add)
	s.check("header.location", "header", "location", h.Location, classText, true, add)
}

func (s *Server) walkExpertise(e model.Expertise, add addFn) {
	s.check("expertise.summary", "expertise", "summary", e.Summary, classSummary, true, add)
}

// decodeSection round-trips one raw section value into its typed form.
// Failures are tolerated: the schema pass has already reported the shape
// error, so the walk simply skips the section.
func decodeSection(v interface{}, dst interface{}) bool {
	b, err := json.Marshal(v)
	if err != nil {
		return false
	}
	return json.Unmarshal(b, dst) == nil
}

// listSection handles the mandatory array sections: absent, null or empty
// reports MISSING_SECTION once; a decodable non-empty list is walked.
func listSection(raw map[string]interface{}, name string, dst interface{}, add addFn) bool {
	v, ok := raw[name]
	if !ok || v == nil {
		add(name, KindMissingSection, msgMissingSection(name))
		return false
	}
	if !decodeSection(v, dst) {
		return false
	}
	switch d := dst.(type) {
	case *[]model.SkillCategory:
		ok = len(*d) > 0
	case *[]model.Experience:
		ok = len(*d) > 0
	case *[]model.Project:
		ok = len(*d) > 0
	case *[]model.Education:
		ok = len(*d) > 0
	}
	if !ok {
		add(name, KindMissingSection, msgMissingSection(name))
	}
	return ok
}
