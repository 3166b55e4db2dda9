package validate

import (
	"testing"

	"resume-builder/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDoc() *model.ResumeDocument {
	return &model.ResumeDocument{
		Header: model.Header{
			Name:     "Jane Doe",
			Title:    "Senior Software Engineer",
			Email:    "jane.doe@example.com",
			Phone:    "+1 (555) 123-4567",
			Location: "Austin, TX",
			Links:    map[string]string{"github": "https://github.com/janedoe"},
		},
		Expertise: model.Expertise{Summary: words(100)},
		Skills: []model.SkillCategory{
			{Category: "Languages", Skills: "Go, Python, SQL"},
			{Category: "Infrastructure", Skills: "Docker, Kubernetes, Terraform"},
		},
		Experience: []model.Experience{
			{
				Company:   "Acme Corp",
				Position:  "Staff Engineer",
				StartDate: "MAR 2021",
				EndDate:   "Present",
				Responsibilities: []string{
					"Led the platform migration to Kubernetes",
					"Designed the billing event pipeline",
					"Mentored four backend engineers",
				},
			},
			{
				Company:   "Initech",
				Position:  "Software Engineer",
				StartDate: "JUN 2017",
				EndDate:   "FEB 2021",
				Responsibilities: []string{
					"Built the reporting API",
					"Cut p99 latency by half",
					"Owned the release tooling",
				},
			},
		},
		Projects: []model.Project{
			{
				Name:         "Telemetry Gateway",
				Description:  "Gateway that normalizes telemetry from edge agents before storage.",
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
			},
		},
		Awards: []model.Award{
			{Title: "Engineering Excellence", Organization: "Acme Corp", Date: "DEC 2022", Description: "Annual award"},
		},
	}
}

func serverEval(t *testing.T, doc *model.ResumeDocument) Result {
	t.Helper()
	srv, err := NewServer()
	require.NoError(t, err)
	res, err := srv.EvaluateDocument(doc)
	require.NoError(t, err)
	return res
}

func TestValidDocumentPassesBothEvaluators(t *testing.T) {
	doc := validDoc()

	cres := NewClient().Evaluate(doc)
	assert.True(t, cres.Valid)
	assert.Empty(t, cres.Errors)
	assert.Empty(t, cres.Warnings)

	sres := serverEval(t, doc)
	assert.True(t, sres.Valid)
	assert.Empty(t, sres.Errors)
	assert.Empty(t, sres.Warnings)
}

// Both evaluators must agree on validity and on the (field, kind) multiset
// for every document, valid or mutated.
func TestEvaluatorAgreement(t *testing.T) {
	mutations := map[string]func(*model.ResumeDocument){
		"valid":              func(d *model.ResumeDocument) {},
		"blank name":         func(d *model.ResumeDocument) { d.Header.Name = "  " },
		"emoji in title":     func(d *model.ResumeDocument) { d.Header.Title = "Engineer 🚀" },
		"bad email":          func(d *model.ResumeDocument) { d.Header.Email = "jane.at.example" },
		"bad phone":          func(d *model.ResumeDocument) { d.Header.Phone = "call me" },
		"long name":          func(d *model.ResumeDocument) { d.Header.Name = words(60) },
		"short summary":      func(d *model.ResumeDocument) { d.Expertise.Summary = words(79) },
		"long summary":       func(d *model.ResumeDocument) { d.Expertise.Summary = words(121) },
		"emoji in summary":   func(d *model.ResumeDocument) { d.Expertise.Summary = words(99) + " 😀" },
		"blank summary":      func(d *model.ResumeDocument) { d.Expertise.Summary = "" },
		"skills no comma":    func(d *model.ResumeDocument) { d.Skills[0].Skills = "Go Python SQL" },
		"blank category":     func(d *model.ResumeDocument) { d.Skills[1].Category = "" },
		"no skills":          func(d *model.ResumeDocument) { d.Skills = nil },
		"prose start date":   func(d *model.ResumeDocument) { d.Experience[0].StartDate = "January 2020" },
		"bad end date":       func(d *model.ResumeDocument) { d.Experience[1].EndDate = "ongoing" },
		"two responsibilities": func(d *model.ResumeDocument) {
			d.Experience[0].Responsibilities = d.Experience[0].Responsibilities[:2]
		},
		"blank responsibilities": func(d *model.ResumeDocument) {
			d.Experience[0].Responsibilities = []string{"Shipped it", "   ", "", "Maintained it"}
		},
		"emoji in responsibility": func(d *model.ResumeDocument) {
			d.Experience[0].Responsibilities[1] = "Shipped the 🚀 launcher"
		},
		"no experience":      func(d *model.ResumeDocument) { d.Experience = nil },
		"no projects":        func(d *model.ResumeDocument) { d.Projects = []model.Project{} },
		"long project desc":  func(d *model.ResumeDocument) { d.Projects[0].Description = words(90) },
		"bad project date":   func(d *model.ResumeDocument) { d.Projects[0].StartDate = "2020" },
		"no education":       func(d *model.ResumeDocument) { d.Education = nil },
		"blank degree":       func(d *model.ResumeDocument) { d.Education[0].Degree = "" },
		"no awards is fine":  func(d *model.ResumeDocument) { d.Awards = nil },
		"bad award date":     func(d *model.ResumeDocument) { d.Awards[0].Date = "22 DEC" },
		"everything at once": func(d *model.ResumeDocument) {
			d.Header.Email = "nope"
			d.Expertise.Summary = words(40)
			d.Skills[0].Skills = "solo"
			d.Experience[0].StartDate = "soon"
			d.Education = nil
		},
	}

	client := NewClient()
	srv, err := NewServer()
	require.NoError(t, err)

	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			doc := validDoc()
			mutate(doc)

			cres := client.Evaluate(doc)
			sres, err := srv.EvaluateDocument(doc)
			require.NoError(t, err)

			assert.Equal(t, cres.Valid, sres.Valid)
			assert.Equal(t, cres.KindCounts(), sres.KindCounts())
		})
	}
}

func TestEvaluationIsDeterministic(t *testing.T) {
	doc := validDoc()
	doc.Header.Email = "broken"
	doc.Expertise.Summary = words(10)
	doc.Skills[0].Skills = "nocomma"
	doc.Education[0].GraduationDate = "May 2017"

	client := NewClient()
	first := client.Evaluate(doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, client.Evaluate(doc))
	}

	srv, err := NewServer()
	require.NoError(t, err)
	sfirst, err := srv.EvaluateDocument(doc)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := srv.EvaluateDocument(doc)
		require.NoError(t, err)
		assert.Equal(t, sfirst, again)
	}
}

func TestViolationsFollowDeclarationOrder(t *testing.T) {
	doc := validDoc()
	doc.Education[0].Degree = ""   // education comes after header
	doc.Header.Name = ""           // header comes first
	doc.Experience[1].EndDate = "?"

	res := NewClient().Evaluate(doc)
	require.Len(t, res.Errors, 3)
	assert.Equal(t, "header.name", res.Errors[0].Field)
	assert.Equal(t, "experience.1.end_date", res.Errors[1].Field)
	assert.Equal(t, "education.0.degree", res.Errors[2].Field)
}

func TestShortSummaryReportsCount(t *testing.T) {
	doc := validDoc()
	doc.Expertise.Summary = words(65)

	res := NewClient().Evaluate(doc)
	require.Len(t, res.Errors, 1)
	v := res.Errors[0]
	assert.Equal(t, "expertise.summary", v.Field)
	assert.Equal(t, KindWordCount, v.Kind)
	assert.Contains(t, v.Message, "got 65")
}

func TestProseDateRejectedCanonicalAccepted(t *testing.T) {
	doc := validDoc()
	doc.Experience[0].StartDate = "January 2020"
	res := NewClient().Evaluate(doc)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "experience.0.start_date", res.Errors[0].Field)
	assert.Equal(t, KindFormat, res.Errors[0].Kind)

	doc.Experience[0].StartDate = "JAN 2020"
	assert.True(t, NewClient().Evaluate(doc).Valid)
}

func TestUnknownFieldRejectedByServer(t *testing.T) {
	srv, err := NewServer()
	require.NoError(t, err)

	doc := validDoc()
	raw, err := doc.ToMap()
	require.NoError(t, err)
	raw["objective"] = "To boldly go"

	res := srv.Evaluate(raw)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "objective", res.Errors[0].Field)
	assert.Equal(t, KindUnknownField, res.Errors[0].Kind)

	// nested unknown key
	raw2, err := validDoc().ToMap()
	require.NoError(t, err)
	raw2["header"].(map[string]interface{})["nickname"] = "JD"
	res2 := srv.Evaluate(raw2)
	assert.False(t, res2.Valid)
	require.Len(t, res2.Errors, 1)
	assert.Equal(t, KindUnknownField, res2.Errors[0].Kind)
	assert.Contains(t, res2.Errors[0].Field, "nickname")
}

func TestMissingMandatorySection(t *testing.T) {
	srv, err := NewServer()
	require.NoError(t, err)

	raw, err := validDoc().ToMap()
	require.NoError(t, err)
	delete(raw, "education")

	res := srv.Evaluate(raw)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "education", res.Errors[0].Field)
	assert.Equal(t, KindMissingSection, res.Errors[0].Kind)

	// null is treated the same as absent
	raw["education"] = nil
	res = srv.Evaluate(raw)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, KindMissingSection, res.Errors[0].Kind)
}

func TestChronologyIsWarningOnly(t *testing.T) {
	doc := validDoc()
	// oldest first: out of reverse-chronological order
	doc.Experience[0], doc.Experience[1] = doc.Experience[1], doc.Experience[0]

	cres := NewClient().Evaluate(doc)
	assert.True(t, cres.Valid)
	assert.Empty(t, cres.Errors)
	require.Len(t, cres.Warnings, 1)
	assert.Equal(t, KindChronology, cres.Warnings[0].Kind)
	assert.Equal(t, "experience", cres.Warnings[0].Field)

	sres := serverEval(t, doc)
	assert.True(t, sres.Valid)
	require.Len(t, sres.Warnings, 1)
	assert.Equal(t, KindChronology, sres.Warnings[0].Kind)
}

func TestBlankResponsibilitiesKeepOriginalIndices(t *testing.T) {
	doc := validDoc()
	doc.Experience[0].Responsibilities = []string{
		"Kept the lights on",
		"  ",
		"Shipped the 😀 feature",
		"Ran the on-call rotation",
	}

	res := NewClient().Evaluate(doc)
	assert.False(t, res.Valid)
	require.Len(t, res.Errors, 1)
	// blank slot at index 1 is discarded, the glyph is still reported at 2
	assert.Equal(t, "experience.0.responsibilities.2", res.Errors[0].Field)
	assert.Equal(t, KindForbiddenGlyph, res.Errors[0].Kind)
}
