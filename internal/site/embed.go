package site

import (
	"embed"
	"io/fs"
)

//go:embed templates/index.html
var embeddedTemplates embed.FS

//go:embed static/*
var embeddedStatic embed.FS

// StaticFS exposes the landing page script and stylesheet rooted at static/.
func StaticFS() fs.FS {
	sub, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		return embeddedStatic
	}
	return sub
}
