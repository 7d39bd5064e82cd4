package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/marwan404/StudyHub/internal/service"
)

type AuthHandler struct {
	authService *service.AuthService
}

type passphraseRequest struct {
	Passphrase string `json:"passphrase"`
}

func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Setup(c *gin.Context) {
	var req passphraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Setup(c.Request.Context(), req.Passphrase)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusCreated, result)
}

func (h *AuthHandler) Unlock(c *gin.Context) {
	var req passphraseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeInvalidJSON(c)
		return
	}

	result, apiErr := h.authService.Unlock(c.Request.Context(), req.Passphrase)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	c.JSON(http.StatusOK, result)
}
