package handlers

import (
	"net/http"

	"codetrek/internal/middlewares"
	"codetrek/internal/models"
	"codetrek/internal/services"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles *services.ProfileService
}

func NewProfileHandler(profiles *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles}
}

func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profiles.Get(c.Request.Context(), middlewares.CurrentUser(c).ID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile serves both PUT and PATCH; omitted fields keep their value.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var update models.ProfileUpdate
	if !bindJSON(c, &update) {
		return
	}

	profile, err := h.profiles.Update(c.Request.Context(), middlewares.CurrentUser(c).ID, &update)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) RegisterRoutes(router *gin.RouterGroup, requireUser gin.HandlerFunc) {
	profile := router.Group("/profile", requireUser)
	{
		profile.GET("/", h.GetProfile)
		profile.PUT("/", h.UpdateProfile)
		profile.PATCH("/", h.UpdateProfile)
	}
}
