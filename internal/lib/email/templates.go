package email

import (
	"embed"
	"html/template"
)

// Template names an email template under templates/.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"
)

//go:embed templates/*.html
var templateFS embed.FS

// templates is parsed once; a broken template fails at startup.
var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// PreviewData contains sample template data for local preview and tests.
//
//	PreviewData[TemplateWelcome]["FirstName"] == "Ada"
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"FirstName": "Ada",
	},
}
