// Package web embeds the page templates served by the handlers.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templates embed.FS

// Templates parses the embedded page templates. Names are the file names, e.g. "index.html".
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(templates, "templates/*.html")
}
