package handlers

import (
	"net/http"

	"codetrek/internal/middlewares"
	"codetrek/internal/models"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
)

type ChatHandler struct {
	tutoring *services.TutorService
}

func NewChatHandler(tutoring *services.TutorService) *ChatHandler {
	return &ChatHandler{tutoring: tutoring}
}

func (h *ChatHandler) SendMessage(c *gin.Context) {
	var req models.ChatRequest
	if !bindJSON(c, &req) {
		return
	}

	exchange, err := h.tutoring.ExplainConcept(c.Request.Context(), middlewares.CurrentUser(c).ID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, exchange)
}

func (h *ChatHandler) History(c *gin.Context) {
	messages, err := h.tutoring.ChatHistory(c.Request.Context(), middlewares.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, messages)
}

func (h *ChatHandler) GuideMe(c *gin.Context) {
	var req models.GuideRequest
	if !bindJSON(c, &req) {
		return
	}

	guide, err := h.tutoring.GuideThroughProblem(c.Request.Context(), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.GuideResponse{Guide: guide})
}

func (h *ChatHandler) RegisterRoutes(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	router.POST("/chat/", requireUser, h.SendMessage)
	router.GET("/chat/history/", requireUser, h.History)
	router.POST("/guide-me/", h.GuideMe)
}
