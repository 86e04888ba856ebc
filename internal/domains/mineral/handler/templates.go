package handler

import (
	"embed"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const noImage = "/images/no-image.png"

// Templates parses the embedded page templates. The router installs them
// with SetHTMLTemplate.
func Templates() *template.Template {
	return template.Must(
		template.New("pages").Funcs(template.FuncMap{
			"imageSrc": imageSrc,
		}).ParseFS(templateFS, "templates/*.html"),
	)
}

// imageSrc resolves a stored image reference to a URL path. References are
// relative to the site root ("images/quartz.png").
func imageSrc(ref string) string {
	switch {
	case ref == "":
		return noImage
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"), strings.HasPrefix(ref, "/"):
		return ref
	default:
		return "/" + ref
	}
}
