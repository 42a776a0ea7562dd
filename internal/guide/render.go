package guide

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.tmpl
var templateFiles embed.FS

var exportTemplate = template.Must(template.ParseFS(templateFiles, "templates/export.html.tmpl"))

// ExportOptions personalise an exported guide.
type ExportOptions struct {
	PetName   string
	OwnerName string
}

// Heading returns the title of an exported guide.
func (o ExportOptions) Heading() string {
	if name := strings.TrimSpace(o.PetName); name != "" {
		return name + "'s Pet Parent Guide"
	}
	return "Your Pet Parent Guide"
}

// RenderHTML renders the full guide, premium tips included, as an HTML
// document suitable for email.
func RenderHTML(g *Guide, opts ExportOptions) (string, error) {
	if g == nil || len(g.Sections) == 0 {
		return "", fmt.Errorf("guide has no sections")
	}

	var buf bytes.Buffer
	err := exportTemplate.Execute(&buf, map[string]any{
		"Heading":   opts.Heading(),
		"OwnerName": strings.TrimSpace(opts.OwnerName),
		"Guide":     g,
		"Generated": g.GeneratedAt.Format("2 Jan 2006"),
	})
	if err != nil {
		return "", fmt.Errorf("failed to render guide: %w", err)
	}
	return buf.String(), nil
}
