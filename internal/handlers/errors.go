package handlers

import (
	"errors"
	"io"
	"net/http"

	"codetrek/internal/common"
	"codetrek/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError writes err as a JSON error body with the matching status.
// Unexpected errors are logged and hidden behind a generic message.
func respondError(c *gin.Context, err error) {
	status := common.HTTPStatusFromError(err)
	if status == http.StatusInternalServerError {
		logger.Log.Error("Request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		c.JSON(status, gin.H{"error": "Internal server error"})
		return
	}

	body := gin.H{"error": common.PublicMessage(err)}
	var verr *common.ValidationError
	if errors.As(err, &verr) && verr.Field != "" {
		body["field"] = verr.Field
	}
	c.JSON(status, body)
}

// bindJSON decodes the request body into dest. An empty body leaves dest
// untouched so that field validation can report what is missing.
func bindJSON(c *gin.Context, dest any) bool {
	if err := c.ShouldBindJSON(dest); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload"})
		return false
	}
	return true
}
