package http

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
)

// StaticHandler serves the dashboard assets from a directory
type StaticHandler struct {
	dir string
}

// NewStaticHandler creates a static handler rooted at dir
func NewStaticHandler(dir string) *StaticHandler {
	return &StaticHandler{dir: dir}
}

// Mount registers /static/* and, when the directory has an index.html, the
// dashboard page at /
func (h *StaticHandler) Mount(r chi.Router) {
	fs := http.StripPrefix("/static", http.FileServer(http.Dir(h.dir)))
	r.Get("/static", http.RedirectHandler("/static/", http.StatusMovedPermanently).ServeHTTP)
	r.Get("/static/*", func(w http.ResponseWriter, r *http.Request) {
		// no directory listings
		if strings.HasSuffix(r.URL.Path, "/") && !h.exists(filepath.Join(strings.TrimPrefix(r.URL.Path, "/static"), "index.html")) {
			http.NotFound(w, r)
			return
		}
		fs.ServeHTTP(w, r)
	})

	if h.exists("index.html") {
		r.Get("/", h.ServeIndex)
	}
}

// ServeIndex serves the dashboard entry page
func (h *StaticHandler) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	http.ServeFile(w, r, filepath.Join(h.dir, "index.html"))
}

func (h *StaticHandler) exists(name string) bool {
	info, err := os.Stat(filepath.Join(h.dir, filepath.FromSlash(name)))
	return err == nil && !info.IsDir()
}
