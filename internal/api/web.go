package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// SPAHandler serves the built single-page app from dist. Requests for
// files that exist are served directly; everything else falls back to
// index.html so the client-side router can take over.
func SPAHandler(dist string) http.Handler {
	fileServer := http.FileServer(http.Dir(dist))
	index := filepath.Join(dist, "index.html")

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}

		// Reject path traversal before touching the filesystem.
		path := filepath.Clean(r.URL.Path)
		if strings.Contains(path, "..") {
			http.Error(w, "invalid path", http.StatusBadRequest)
			return
		}

		if path != "/" {
			if info, err := os.Stat(filepath.Join(dist, path)); err == nil && !info.IsDir() {
				fileServer.ServeHTTP(w, r)
				return
			}
		}

		http.ServeFile(w, r, index)
	})
}
