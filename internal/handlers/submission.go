package handlers

import (
	"net/http"

	"codetrek/internal/middlewares"
	"codetrek/internal/models"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	tutoring *services.TutorService
}

func NewSubmissionHandler(tutoring *services.TutorService) *SubmissionHandler {
	return &SubmissionHandler{tutoring: tutoring}
}

// EvaluateCode returns AI feedback on the submitted code. Authenticated
// callers also get the submission recorded.
func (h *SubmissionHandler) EvaluateCode(c *gin.Context) {
	var req models.EvaluateCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	var userID int64
	if user := middlewares.CurrentUser(c); user != nil {
		userID = user.ID
	}

	feedback, err := h.tutoring.EvaluateCode(c.Request.Context(), userID, req.Title, req.Description, req.Code)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.EvaluateCodeResponse{Feedback: feedback})
}

func (h *SubmissionHandler) GetUserSubmissions(c *gin.Context) {
	subs, err := h.tutoring.Submissions(c.Request.Context(), middlewares.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, subs)
}

func (h *SubmissionHandler) RegisterRoutes(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	router.POST("/evaluate-code/", h.EvaluateCode)
	router.GET("/submissions/", requireUser, h.GetUserSubmissions)
}
