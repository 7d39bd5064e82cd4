package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwan404/StudyHub/internal/service"
)

type PreferenceHandler struct {
	preferenceService *service.PreferenceService
}

type updatePreferencesRequest struct {
	Theme      *string `json:"theme"`
	Accent     *string `json:"accent"`
	ActiveView *string `json:"activeView"`
}

func NewPreferenceHandler(preferenceService *service.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

func (h *PreferenceHandler) Get(c *gin.Context) {
	prefs, apiErr := h.preferenceService.Get(c.Request.Context())
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}

func (h *PreferenceHandler) Update(c *gin.Context) {
	var req updatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	prefs, apiErr := h.preferenceService.Update(c.Request.Context(), service.UpdatePreferencesInput{
		Theme:      req.Theme,
		Accent:     req.Accent,
		ActiveView: req.ActiveView,
	})
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, gin.H{"preferences": prefs})
}
