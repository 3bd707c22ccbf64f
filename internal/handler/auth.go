package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

type AuthHandler struct {
	auth       service.AuthService
	activities service.ActivityService
}

func NewAuthHandler(auth service.AuthService, activities service.ActivityService) *AuthHandler {
	return &AuthHandler{auth: auth, activities: activities}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": i18n.T(lang(c), "invalid_credentials")})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	session := sessions.Default(c)
	session.Set(middleware.SessionUserKey, user.ID)
	session.Set("lang", lang(c))
	if err := session.Save(); err != nil {
		klog.Errorf("failed to save session for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}

	h.activities.Record(user.ID, "login", model.TargetUser, user.ID,
		"User "+user.Username+" logged in", requestOrigin(c))

	c.JSON(http.StatusOK, gin.H{
		"message": i18n.T(lang(c), "login_success"),
		"user":    user,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if user := middleware.CurrentUser(c); user != nil {
		h.activities.Record(user.ID, "logout", model.TargetUser, user.ID,
			"User "+user.Username+" logged out", requestOrigin(c))
	}

	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		klog.Errorf("failed to clear session: %v", err)
	}

	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "logout_success")})
}
