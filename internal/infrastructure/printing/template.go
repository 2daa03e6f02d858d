package printing

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/cajachica/backend/internal/domain/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var reportTemplate = template.Must(template.ParseFS(templateFS, "templates/report.html"))

// RenderDocument renders the report view into the printable HTML document
func RenderDocument(view report.ReportView) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, &view); err != nil {
		return "", fmt.Errorf("failed to render report document: %w", err)
	}
	return buf.String(), nil
}
