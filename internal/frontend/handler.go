package frontend

import (
	"io/fs"
	"net/http"
	"path"
	"strings"

	apperrors "github.com/chixitown/site/internal/errors"
	"github.com/gin-gonic/gin"
)

const notFoundPage = "404.html"

// NewStaticHandler serves the built site from fsys. Hashed build assets are
// cached for a year, other files for an hour. Unknown paths get the site's
// 404.html when it exists.
func NewStaticHandler(fsys fs.FS) gin.HandlerFunc {
	fileServer := http.FileServer(http.FS(fsys))

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			apperrors.Respond(c, apperrors.NewNotFoundError("no route for "+c.Request.Method+" "+c.Request.URL.Path))
			return
		}

		urlPath := c.Request.URL.Path
		if strings.HasPrefix(urlPath, "/_astro/") || strings.HasPrefix(urlPath, "/assets/") {
			c.Header("Cache-Control", "public, max-age=31536000, immutable")
		}

		if exists(fsys, urlPath) {
			if c.Writer.Header().Get("Cache-Control") == "" {
				c.Header("Cache-Control", "public, max-age=3600")
			}
			fileServer.ServeHTTP(c.Writer, c.Request)
			return
		}

		if page, err := fs.ReadFile(fsys, notFoundPage); err == nil {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", page)
			return
		}

		apperrors.Respond(c, apperrors.NewNotFoundError("page not found: "+urlPath))
	}
}

// exists reports whether urlPath names a file, or a directory with an index.html
func exists(fsys fs.FS, urlPath string) bool {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		name = "."
	}

	info, err := fs.Stat(fsys, name)
	if err != nil {
		return false
	}
	if !info.IsDir() {
		return true
	}
	_, err = fs.Stat(fsys, path.Join(name, "index.html"))
	return err == nil
}
