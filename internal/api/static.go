package api

import (
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/liliang-cn/agribot/internal/api/static"
)

// SetupStaticRoutes serves the bundled assets under /static
func SetupStaticRoutes(r *gin.Engine) {
	r.GET("/static/*filepath", func(c *gin.Context) {
		name := strings.TrimPrefix(path.Clean(c.Param("filepath")), "/")
		serveStaticFile(c, name)
	})
}

func serveStaticFile(c *gin.Context, name string) {
	content, err := static.FS.ReadFile(name)
	if err != nil {
		c.String(http.StatusNotFound, "File not found")
		return
	}

	contentType := http.DetectContentType(content)
	if strings.HasSuffix(name, ".svg") {
		contentType = static.DefaultLogoContentType
	}
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, contentType, content)
}
