package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/middleware"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

func lang(c *gin.Context) string {
	return i18n.Pick(c.Param("lang"))
}

func requestOrigin(c *gin.Context) service.RequestOrigin {
	return service.RequestOrigin{
		IP:        c.ClientIP(),
		UserAgent: c.Request.UserAgent(),
	}
}

// authorize runs the capability decision for the current caller and writes
// the denial response itself. Handlers bail out when it returns false.
func authorize(c *gin.Context, cap access.Capability, resourceChapter *uint) bool {
	decision := access.Authorize(middleware.CurrentIdentity(c), cap, resourceChapter)
	if decision.Allowed {
		return true
	}
	writeDenial(c, decision)
	return false
}

func writeDenial(c *gin.Context, decision access.Decision) {
	status := http.StatusForbidden
	key := "no_permission"
	if decision.Reason == access.ReasonNotAuthenticated {
		status = http.StatusUnauthorized
		key = "login_required"
	}
	c.AbortWithStatusJSON(status, gin.H{
		"error":  i18n.T(lang(c), key),
		"reason": string(decision.Reason),
	})
}

// record appends an activity row for the current caller, best-effort.
func record(c *gin.Context, activities service.ActivityService, action, targetType string, targetID uint, description string) {
	user := middleware.CurrentUser(c)
	if user == nil {
		return
	}
	activities.Record(user.ID, action, targetType, targetID, description, requestOrigin(c))
}
