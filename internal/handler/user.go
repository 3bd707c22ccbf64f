package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

type UserHandler struct {
	users      service.UserService
	activities service.ActivityService
}

func NewUserHandler(users service.UserService, activities service.ActivityService) *UserHandler {
	return &UserHandler{users: users, activities: activities}
}

// List returns active users with their audit footprint. Global admins only.
func (h *UserHandler) List(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}
	summaries, err := h.users.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
		return
	}
	c.JSON(http.StatusOK, summaries)
}

func (h *UserHandler) Create(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}

	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Create(req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	record(c, h.activities, "create", model.TargetUser, user.ID, "Created user: "+user.Username)
	c.JSON(http.StatusCreated, gin.H{"message": i18n.T(lang(c), "success_added"), "user": user})
}

func (h *UserHandler) Update(c *gin.Context) {
	if !authorize(c, access.CapGlobalAdmin, nil) {
		return
	}
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	var req service.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.Update(uint(id), req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	record(c, h.activities, "edit", model.TargetUser, user.ID, "Updated user: "+user.Username)
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "user": user})
}

// ToggleStatus flips a user's active flag. Self-deactivation is denied by the
// decision rules no matter the caller's role.
func (h *UserHandler) ToggleStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid user id"})
		return
	}

	decision := access.CanToggleUser(middleware.CurrentIdentity(c), uint(id))
	if !decision.Allowed {
		writeDenial(c, decision)
		return
	}

	active, err := h.users.ToggleStatus(uint(id))
	if err != nil {
		writeUserError(c, err)
		return
	}

	action := "deactivate"
	if active {
		action = "activate"
	}
	record(c, h.activities, action, model.TargetUser, uint(id), action+"d user "+c.Param("id"))
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "is_active": active})
}

// Profile returns the caller's own record.
func (h *UserHandler) Profile(c *gin.Context) {
	if !authorize(c, access.CapChapterAdmin, nil) {
		return
	}
	c.JSON(http.StatusOK, middleware.CurrentUser(c))
}

// UpdateProfile lets any admin change their own email and password.
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	if !authorize(c, access.CapChapterAdmin, nil) {
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	me := middleware.CurrentUser(c)
	user, err := h.users.UpdateProfile(me.ID, req)
	if err != nil {
		writeUserError(c, err)
		return
	}

	record(c, h.activities, "edit", model.TargetUser, user.ID, "Updated profile settings")
	c.JSON(http.StatusOK, gin.H{"message": i18n.T(lang(c), "success_updated"), "user": user})
}

func writeUserError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "user not found"})
	case errors.Is(err, service.ErrUsernameTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "username"})
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error(), "field": "email"})
	case errors.Is(err, service.ErrWrongPassword), errors.Is(err, service.ErrPasswordMismatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "password"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": i18n.T(lang(c), "error_occurred")})
	}
}
