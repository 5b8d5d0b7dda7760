package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"codetrek/internal/common"
	"codetrek/internal/models"
	"codetrek/internal/repositories"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
)

type ProblemHandler struct {
	problemRepo repositories.ProblemRepository
	tutoring    *services.TutorService
}

func NewProblemHandler(problemRepo repositories.ProblemRepository, tutoring *services.TutorService) *ProblemHandler {
	return &ProblemHandler{
		problemRepo: problemRepo,
		tutoring:    tutoring,
	}
}

// GetProblems lists catalog problems, optionally filtered by topic and difficulty.
func (h *ProblemHandler) GetProblems(c *gin.Context) {
	problems, err := h.problemRepo.List(c.Request.Context(), models.ProblemFilter{
		Topic:      c.Query("topic"),
		Difficulty: c.Query("difficulty"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, problems)
}

// GetProblem looks a problem up by numeric ID or by slug.
func (h *ProblemHandler) GetProblem(c *gin.Context) {
	ref := c.Param("ref")

	var (
		problem *models.Problem
		err     error
	)
	if id, convErr := strconv.ParseInt(ref, 10, 64); convErr == nil {
		problem, err = h.problemRepo.GetByID(c.Request.Context(), id)
	} else {
		problem, err = h.problemRepo.GetBySlug(c.Request.Context(), ref)
	}
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Problem not found"})
			return
		}
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, problem)
}

// GetProblemByTopic returns a dataset problem for the topic, adding it to
// the catalog on first use. Difficulty defaults to Easy.
func (h *ProblemHandler) GetProblemByTopic(c *gin.Context) {
	problem, err := h.tutoring.ProblemByTopic(c.Request.Context(), c.Query("topic"), c.Query("difficulty"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, problem)
}

func (h *ProblemHandler) RegisterRoutes(router *gin.RouterGroup) {
	router.GET("/problem-by-topic/", h.GetProblemByTopic)

	problemGroup := router.Group("/problems")
	{
		problemGroup.GET("/", h.GetProblems)
		problemGroup.GET("/:ref/", h.GetProblem)
	}
}
