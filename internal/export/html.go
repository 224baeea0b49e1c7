package export

import (
	"bytes"
	"embed"
	"html/template"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// RenderHTML renders the report as a standalone HTML document.
func RenderHTML(r Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := reportTemplate.ExecuteTemplate(&buf, "report.html.tmpl", r); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
