package handlers

import (
	"embed"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
)

//go:embed static
var staticFiles embed.FS

// IndexHandler serves the landing page. When dir is set, index.html is read
// from that directory instead of the embedded copy.
func IndexHandler(dir string) (http.Handler, error) {
	var root fs.FS
	if dir != "" {
		if _, err := os.Stat(filepath.Join(dir, "index.html")); err != nil {
			return nil, err
		}
		root = os.DirFS(dir)
	} else {
		sub, err := fs.Sub(staticFiles, "static")
		if err != nil {
			return nil, err
		}
		root = sub
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.ServeFileFS(w, r, root, "index.html")
	}), nil
}
