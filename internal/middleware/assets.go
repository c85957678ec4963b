package middleware

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
)

// AssetsWithCache wraps a file server with Cache-Control and lazy ETag
// handling for static assets.
func AssetsWithCache(dir string) http.Handler {
	var (
		mu    sync.Mutex
		etags = map[string]string{}
	)
	fs := http.FileServer(http.Dir(dir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", "public, max-age=604800, stale-while-revalidate=86400")

		rel := strings.TrimPrefix(path.Clean(r.URL.Path), "/")
		if rel != "" && !strings.Contains(rel, "..") {
			mu.Lock()
			et, ok := etags[rel]
			mu.Unlock()
			if !ok {
				et, _ = fileETag(filepath.Join(dir, filepath.FromSlash(rel)))
				mu.Lock()
				etags[rel] = et
				mu.Unlock()
			}
			if et != "" {
				w.Header().Set("ETag", et)
				if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
					w.WriteHeader(http.StatusNotModified)
					return
				}
			}
		}
		fs.ServeHTTP(w, r)
	})
}

func fileETag(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)) + `"`, nil
}
