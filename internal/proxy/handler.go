// Package proxy serves catalog files through the backend so Drive links
// never reach the browser. Downloads are relayed, previews are wrapped in an
// embed page, and anything else answers with a capability document.
package proxy

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"bravemath-backend/internal/drive"
	"bravemath-backend/internal/shared/server/respond"
)

// Relayed files may be cached downstream for a day.
const cacheControl = "public, max-age=86400"

const previewPage = `<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Preview - BraveMath</title>
    <style>
        * { margin: 0; padding: 0; box-sizing: border-box; }
        body {
            background: #000;
            overflow: hidden;
            font-family: system-ui, -apple-system, sans-serif;
        }
        iframe {
            position: absolute;
            top: 0;
            left: 0;
            width: 100%%;
            height: 100%%;
            border: none;
        }
        .loading {
            position: absolute;
            top: 50%%;
            left: 50%%;
            transform: translate(-50%%, -50%%);
            color: #fff;
            font-size: 18px;
        }
    </style>
</head>
<body>
    <div class="loading">Đang tải tài liệu...</div>
    <iframe src="%s"
            allow="autoplay"
            allowfullscreen
            onload="document.querySelector('.loading').style.display='none'">
    </iframe>
</body>
</html>
`

// Handler proxies file traffic to Drive.
type Handler struct {
	Drive   *drive.Client
	Version string
}

// NewHandler constructs a Handler.
func NewHandler(client *drive.Client, version string) *Handler {
	return &Handler{Drive: client, Version: version}
}

// RegisterRoutes attaches the proxied file routes to the router group. The
// group is expected to carry the rate limiter.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/download/:id", h.download)
	rg.GET("/preview/:id", h.preview)
}

func (h *Handler) download(c *gin.Context) {
	id := c.Param("id")
	if !drive.ValidID(id) {
		respond.Error(c, http.StatusBadRequest, "invalid_drive_id", "Invalid Drive ID format", nil)
		return
	}

	resp, err := h.Drive.Fetch(c.Request.Context(), id)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "upstream_error", err.Error(), nil)
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respond.Error(c, resp.StatusCode, "upstream_error", "Failed to fetch from Drive", nil)
		return
	}

	c.Header("Cache-Control", cacheControl)
	c.Header("X-Powered-By", "BraveMath")
	if cd := resp.Header.Get("Content-Disposition"); cd != "" {
		c.Header("Content-Disposition", cd)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.DataFromReader(http.StatusOK, resp.ContentLength, contentType, resp.Body, nil)
}

func (h *Handler) preview(c *gin.Context) {
	id := c.Param("id")
	if !drive.ValidID(id) {
		respond.Error(c, http.StatusBadRequest, "invalid_drive_id", "Invalid Drive ID format", nil)
		return
	}

	page := fmt.Sprintf(previewPage, h.Drive.PreviewEmbedURL(id))
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// Capabilities answers unrouted paths with a service description instead of
// a bare 404, so probing the proxy root is self-documenting.
func (h *Handler) Capabilities(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"service": "BraveMath Proxy",
		"version": h.Version,
		"endpoints": []string{
			"/download/{driveId} - Download file from Google Drive",
			"/preview/{driveId} - Preview file in browser",
		},
	})
}
