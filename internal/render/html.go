package render

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/preview.html templates/print.html templates/style.css
var assets embed.FS

var (
	previewTpl *template.Template
	printTpl   *template.Template
	styleCSS   template.CSS
)

func init() {
	previewTpl = template.Must(template.ParseFS(assets, "templates/preview.html"))
	printTpl = template.Must(template.ParseFS(assets, "templates/print.html"))
	css, err := assets.ReadFile("templates/style.css")
	if err != nil {
		panic(err)
	}
	styleCSS = template.CSS(css)
}

type page struct {
	Sections []Section
	CSS      template.CSS
}

func execute(tpl *template.Template, sections []Section) (string, error) {
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, page{Sections: sections, CSS: styleCSS}); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// HTML renders the preview document. The stylesheet is inlined into the
// head so the string is self-contained; rendering the same section list
// twice yields byte-identical output.
func HTML(sections []Section) (string, error) {
	return execute(previewTpl, sections)
}

// PrintHTML renders the fixed A4 print layout the PDF export is produced
// from. It consumes the same section list as HTML, so the two outputs
// cannot diverge structurally.
func PrintHTML(sections []Section) (string, error) {
	return execute(printTpl, sections)
}
