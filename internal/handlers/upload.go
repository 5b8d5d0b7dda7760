package handlers

import (
	"errors"
	"net/http"
	"strings"

	"codetrek/internal/middlewares"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploads  *services.UploadService
	maxBytes int64
}

func NewUploadHandler(uploads *services.UploadService, maxBytes int64) *UploadHandler {
	return &UploadHandler{uploads: uploads, maxBytes: maxBytes}
}

func (h *UploadHandler) UploadFile(c *gin.Context) {
	if h.maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBytes)
	}

	header, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "File too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}

	file, err := h.uploads.Save(c.Request.Context(), middlewares.CurrentUser(c).ID, header)
	if err != nil {
		respondError(c, err)
		return
	}

	file.FileURL = absoluteURL(c, file.FileURL)
	c.JSON(http.StatusCreated, file)
}

func absoluteURL(c *gin.Context, path string) string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + path
}

func (h *UploadHandler) RegisterRoutes(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	router.POST("/upload-file/", requireUser, h.UploadFile)
}
