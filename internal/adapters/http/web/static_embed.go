package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static/*
var staticFS embed.FS

//go:embed templates/index.html
var indexTemplate string

// assetsFS exposes a sub-filesystem rooted at static/.
var assetsFS fs.FS = func() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return staticFS
	}
	return sub
}()

func staticHandler() http.Handler {
	return http.StripPrefix("/static/", http.FileServer(http.FS(assetsFS)))
}
