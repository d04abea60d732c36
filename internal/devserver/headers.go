package devserver

import (
	"net/http"
	"path"
	"strings"
)

// mimeOverrides pins content types that platform MIME tables often get
// wrong or leave out.
var mimeOverrides = map[string]string{
	".ttf":   "font/ttf",
	".woff":  "font/woff",
	".woff2": "font/woff2",
	".json":  "application/json",
	".js":    "application/javascript",
	".css":   "text/css",
}

// ContentType returns the overridden MIME type for a request path, or ""
// when the default detection should apply.
func ContentType(p string) string {
	return mimeOverrides[strings.ToLower(path.Ext(p))]
}

func isFont(p string) bool {
	return strings.HasPrefix(ContentType(p), "font/")
}

// contentTypes presets Content-Type so http.FileServer keeps it.
func contentTypes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ct := ContentType(r.URL.Path); ct != "" {
			w.Header().Set("Content-Type", ct)
		}
		next.ServeHTTP(w, r)
	})
}

// cacheControl disables caching for every response when noCache is set;
// otherwise fonts get a one-hour public cache.
func cacheControl(noCache bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			switch {
			case noCache:
				w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate")
				w.Header().Set("Expires", "0")
			case isFont(r.URL.Path):
				w.Header().Set("Cache-Control", "public, max-age=3600")
			}
			next.ServeHTTP(w, r)
		})
	}
}
