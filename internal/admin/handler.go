package admin

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Handler exposes the append operation over HTTP for the local admin form.
// It keeps the response shape the form script expects: {success, message,
// document} on success, {success: false, error} on failure.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the admin routes to the router.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.form)
	r.GET("/health", h.health)
	r.POST("/add-document", h.addDocument)
}

type addDocumentRequest struct {
	DriveID     string `json:"driveId" form:"driveId"`
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Pages       int    `json:"pages" form:"pages"`
	Author      string `json:"author" form:"author"`
	Level       string `json:"level" form:"level"`
	Category    string `json:"category" form:"category"`
	Subject     string `json:"subject" form:"subject"`
	Tags        string `json:"tags" form:"tags"`
}

func (h *Handler) addDocument(c *gin.Context) {
	var req addDocumentRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "invalid request body"})
		return
	}

	in := Input{
		DriveID:     req.DriveID,
		Title:       req.Title,
		Description: req.Description,
		Level:       req.Level,
		Category:    req.Category,
		Subject:     req.Subject,
		Author:      req.Author,
		Pages:       req.Pages,
	}
	for _, tag := range strings.Split(req.Tags, ",") {
		if tag = strings.TrimSpace(tag); tag != "" {
			in.Tags = append(in.Tags, tag)
		}
	}

	res, err := h.Svc.Append(c.Request.Context(), in)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, ErrInvalidInput) || errors.Is(err, ErrDuplicateDriveID) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"success": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Tài liệu đã được thêm thành công!",
		"document": res.Document,
		"warnings": res.Warnings,
	})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "message": "Server is running"})
}

func (h *Handler) form(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(formPage))
}

const formPage = `<!DOCTYPE html>
<html lang="vi">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>BraveMath Admin</title>
    <style>
        body { font-family: system-ui, -apple-system, sans-serif; max-width: 640px; margin: 2rem auto; padding: 0 1rem; }
        label { display: block; margin-top: 1rem; font-weight: 600; }
        input, select, textarea { width: 100%; padding: .5rem; margin-top: .25rem; box-sizing: border-box; }
        button { margin-top: 1.5rem; padding: .6rem 1.5rem; font-size: 1rem; cursor: pointer; }
        #result { margin-top: 1.5rem; white-space: pre-wrap; font-family: monospace; }
    </style>
</head>
<body>
    <h1>📚 Thêm tài liệu mới</h1>
    <form id="add-form">
        <label>Drive ID *<input name="driveId" required></label>
        <label>Tiêu đề *<input name="title" required></label>
        <label>Mô tả *<textarea name="description" rows="3" required></textarea></label>
        <label>Số trang *<input name="pages" type="number" min="1" required></label>
        <label>Level
            <select name="level">
                <option value="thpt">THPT</option>
                <option value="daihoc">Đại học</option>
            </select>
        </label>
        <label>Category
            <select name="category">
                <option value="ly-thuyet">Lý thuyết</option>
                <option value="de-thi">Đề thi</option>
                <option value="bai-tap">Bài tập</option>
                <option value="giai-chi-tiet">Giải chi tiết</option>
            </select>
        </label>
        <label>Môn học<input name="subject" value="toan"></label>
        <label>Tác giả<input name="author"></label>
        <label>Tags (phân cách bằng dấu phẩy)<input name="tags"></label>
        <button type="submit">📤 Submit &amp; Add</button>
    </form>
    <div id="result"></div>
    <script>
        document.getElementById('add-form').addEventListener('submit', async (e) => {
            e.preventDefault();
            const data = Object.fromEntries(new FormData(e.target));
            data.pages = parseInt(data.pages, 10);
            const resp = await fetch('/add-document', {
                method: 'POST',
                headers: { 'Content-Type': 'application/json' },
                body: JSON.stringify(data)
            });
            const body = await resp.json();
            document.getElementById('result').textContent = JSON.stringify(body, null, 2);
        });
    </script>
</body>
</html>
`
