package httpserver

import (
	"context"
	"errors"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"dsignme/internal/domain"
)

// maxUploadBody leaves room for multipart framing around the largest file.
const maxUploadBody = 50<<20 + 1<<20

type uploadedFile struct {
	*domain.File
	URL string `json:"url"`
}

func (h *handlers) uploadFile(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File is too large"})
			return
		}
		badRequest(c, "Cannot get file from form")
		return
	}
	src, err := fh.Open()
	if err != nil {
		badRequest(c, "Cannot read uploaded file")
		return
	}
	defer src.Close()

	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()
	f, err := h.deps.FileSvc.Upload(ctx, c.PostForm("type"), fh.Filename, src)
	if err != nil {
		h.respondError(c, err, "File not found", "Failed to upload file")
		return
	}
	url := h.fileURL(c, f.ID)
	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"fileUrl": url,
		"data":    uploadedFile{File: f, URL: url},
	})
}

func (h *handlers) getFile(c *gin.Context) {
	id := c.Param("id")
	if !validID(c, id, "file") {
		return
	}
	ctx, cancel := context.WithTimeout(c.Request.Context(), uploadTimeout)
	defer cancel()
	f, data, err := h.deps.FileSvc.Get(ctx, id)
	if err != nil {
		h.respondError(c, err, "File not found", "Failed to stream file")
		return
	}
	c.Header("Content-Disposition", mime.FormatMediaType("inline", map[string]string{"filename": f.Filename}))
	c.Header("Content-Length", strconv.Itoa(len(data)))
	c.Header("Cache-Control", "public, max-age=86400")
	c.Data(http.StatusOK, f.ContentType, data)
}

func (h *handlers) fileURL(c *gin.Context, id string) string {
	host := strings.TrimRight(h.fileURLHost, "/")
	if host == "" {
		scheme := "http"
		if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
			scheme = "https"
		}
		host = scheme + "://" + c.Request.Host
	}
	return host + "/files/" + id
}
