// Package model defines the canonical resume document. A document is a
// plain value: it carries no identity and is never persisted, it only
// travels from the validation engine to the renderer.
package model

import "encoding/json"

type Header struct {
	Name     string            `json:"name"`
	Title    string            `json:"title"`
	Email    string            `json:"email"`
	Phone    string            `json:"phone"`
	Location string            `json:"location"`
	Links    map[string]string `json:"links,omitempty"`
}

type Expertise struct {
	Summary string `json:"summary"`
}

// SkillCategory is one entry of the skills catalogue: a category label and
// a comma-separated skills string.
type SkillCategory struct {
	Category string `json:"category"`
	Skills   string `json:"skills"`
}

type Experience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	StartDate        string   `json:"start_date"`
	EndDate          string   `json:"end_date,omitempty"`
	Responsibilities []string `json:"responsibilities"`
}

type Project struct {
	Name         string `json:"name"`
	Description  string `json:"description"`
	Technologies string `json:"technologies"`
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date,omitempty"`
}

type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	FieldOfStudy   string `json:"field_of_study"`
	GraduationDate string `json:"graduation_date"`
	GPA            string `json:"gpa,omitempty"`
	Honors         string `json:"honors,omitempty"`
}

type Award struct {
	Title        string `json:"title"`
	Organization string `json:"organization"`
	Date         string `json:"date"`
	Description  string `json:"description,omitempty"`
}

// ResumeDocument aggregates the fixed section set. Awards is the only
// optional section.
type ResumeDocument struct {
	Header     Header          `json:"header"`
	Expertise  Expertise       `json:"expertise"`
	Skills     []SkillCategory `json:"skills"`
	Experience []Experience    `json:"experience"`
	Projects   []Project       `json:"projects"`
	Education  []Education     `json:"education"`
	Awards     []Award         `json:"awards,omitempty"`
}

// ToMap converts the document into the generic map shape the server
// evaluator and the wire protocol operate on.
func (d *ResumeDocument) ToMap() (map[string]interface{}, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return nil, err
	}
	var m map[string]interface{}
	if err := json.Unmarshal(b, &m); err != nil {
		return nil, err
	}
	return m, nil
}

// FromMap decodes a generic document map into the typed form. Shape errors
// surface as a decode error; rule violations are the validators' job.
func FromMap(m map[string]interface{}) (*ResumeDocument, error) {
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	var d ResumeDocument
	if err := json.Unmarshal(b, &d); err != nil {
		return nil, err
	}
	return &d, nil
}
