package handler

import (
	"crypto/sha256"
	"encoding/hex"
	"net/http"

	"github.com/gin-gonic/gin"
)

// DocsHandler serves the OpenAPI document and a Swagger UI page for it.
type DocsHandler struct {
	doc  []byte
	etag string
}

// NewDocsHandler wraps the OpenAPI YAML. doc may be nil, in which case
// /swagger/spec answers 404.
func NewDocsHandler(doc []byte) *DocsHandler {
	h := &DocsHandler{doc: doc}
	if len(doc) > 0 {
		sum := sha256.Sum256(doc)
		h.etag = `"` + hex.EncodeToString(sum[:8]) + `"`
	}
	return h
}

// Spec serves the raw OpenAPI YAML with a content ETag.
func (h *DocsHandler) Spec(c *gin.Context) {
	if len(h.doc) == 0 {
		c.String(http.StatusNotFound, "OpenAPI document not loaded")
		return
	}
	if c.GetHeader("If-None-Match") == h.etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Header("ETag", h.etag)
	c.Data(http.StatusOK, "application/yaml", h.doc)
}

// UI serves a Swagger UI page pointed at /swagger/spec.
func (h *DocsHandler) UI(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(swaggerPage))
}

const swaggerPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>Ramp Gateway API</title>
  <link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="docs"></div>
  <script src="https://cdn.jsdelivr.net/npm/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({ url: '/swagger/spec', dom_id: '#docs', deepLinking: true });
  </script>
</body>
</html>`
