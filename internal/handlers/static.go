package handlers

import (
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// SPAHandler serves the static front end. Real files under the web
// directory (partials, scripts, styles) are served as-is; anything else
// outside /api and /admin falls back to the single-page shell, so a browser
// reload on a client-side route still loads the app.
type SPAHandler struct {
	webDir string
}

func NewSPAHandler(webDir string) *SPAHandler {
	return &SPAHandler{webDir: webDir}
}

func (h *SPAHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		http.NotFound(w, r)
		return
	}

	// Clean with a leading slash so ".." cannot escape the web directory.
	p := path.Clean("/" + r.URL.Path)
	if p == "/" {
		p = "/index.html"
	}
	if strings.HasPrefix(p, "/api") || strings.HasPrefix(p, "/admin") {
		http.NotFound(w, r)
		return
	}

	full := filepath.Join(h.webDir, filepath.FromSlash(p))
	if info, err := os.Stat(full); err == nil && !info.IsDir() {
		http.ServeFile(w, r, full)
		return
	}

	// A missing partial must stay a 404: the client router shows its
	// not-found message based on the response status.
	if strings.HasPrefix(p, "/partials/") {
		http.NotFound(w, r)
		return
	}

	http.ServeFile(w, r, filepath.Join(h.webDir, "index.html"))
}
