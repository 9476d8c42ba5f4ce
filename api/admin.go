package api

import (
	"net/http"
	"strings"

	"flightbook/internal/service/admin"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	service admin.AdminUseCase
	limiter *RateLimiter
}

func NewAdminHandler(service admin.AdminUseCase, limiter *RateLimiter) *AdminHandler {
	return &AdminHandler{service: service, limiter: limiter}
}

func (h *AdminHandler) Register(router *gin.RouterGroup) {
	router.POST("/login", h.login)
}

func (h *AdminHandler) RegisterAuthed(router *gin.RouterGroup) {
	router.POST("/logout", h.logout)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *AdminHandler) login(c *gin.Context) {
	if h.limiter != nil && !h.limiter.Allow(c.ClientIP()) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "too many login attempts"})
		return
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		writeError(c, err, "authenticate")
		return
	}
	if token == "" {
		// Unknown user and wrong password are indistinguishable on purpose.
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

func (h *AdminHandler) logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.Status(http.StatusNoContent)
		return
	}
	if err := h.service.Logout(c.Request.Context(), token); err != nil {
		writeError(c, err, "log out")
		return
	}
	c.Status(http.StatusNoContent)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}
