package web

import (
	"embed"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFS embed.FS

// StylesheetHandler serves the embedded stylesheet. Mount it under /css/.
func StylesheetHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static/css")
	if err != nil {
		panic(err)
	}
	return http.FileServer(http.FS(sub))
}
