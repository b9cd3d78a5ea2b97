package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses every page and partial. Pages are looked up by file
// name, e.g. "cafe_list.html".
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}

// MustTemplates is Templates for program start-up and tests
func MustTemplates() *template.Template {
	return template.Must(Templates())
}
