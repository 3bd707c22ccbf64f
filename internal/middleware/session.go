package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"k8s.io/klog/v2"

	"github.com/bioguide/backend/internal/access"
	"github.com/bioguide/backend/internal/model"
	"github.com/bioguide/backend/internal/pkg/i18n"
	"github.com/bioguide/backend/internal/service"
)

const (
	SessionUserKey = "user_id"

	ctxIdentityKey = "identity"
	ctxUserKey     = "current_user"
)

// LoadUser resolves the session into the authenticated user and its access
// identity. Anonymous and stale sessions pass through with no identity set;
// the gates decide what that means.
func LoadUser(auth service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		raw := session.Get(SessionUserKey)
		if raw == nil {
			c.Next()
			return
		}
		userID, ok := raw.(uint)
		if !ok {
			c.Next()
			return
		}

		user, err := auth.GetUser(userID)
		if err != nil || !user.IsActive {
			if err != nil {
				klog.V(6).Infof("session user %d not resolvable: %v", userID, err)
			}
			session.Delete(SessionUserKey)
			if err := session.Save(); err != nil {
				klog.Errorf("failed to clear stale session: %v", err)
			}
			c.Next()
			return
		}

		c.Set(ctxUserKey, user)
		c.Set(ctxIdentityKey, user.Identity())
		c.Next()
	}
}

// RequireAdmin gates the admin surface: unauthenticated browser requests are
// redirected to the login page in the request's language, API clients get a
// plain 401.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentIdentity(c) != nil {
			c.Next()
			return
		}

		lang := i18n.Pick(c.Param("lang"))
		if strings.Contains(c.GetHeader("Accept"), "text/html") {
			c.Redirect(http.StatusFound, "/"+lang+"/admin/login")
		} else {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":  i18n.T(lang, "login_required"),
				"reason": string(access.ReasonNotAuthenticated),
			})
		}
		c.Abort()
	}
}

// CurrentIdentity returns the caller's access identity, nil when anonymous.
func CurrentIdentity(c *gin.Context) *access.Identity {
	if v, ok := c.Get(ctxIdentityKey); ok {
		return v.(*access.Identity)
	}
	return nil
}

// CurrentUser returns the authenticated user record, nil when anonymous.
func CurrentUser(c *gin.Context) *model.User {
	if v, ok := c.Get(ctxUserKey); ok {
		return v.(*model.User)
	}
	return nil
}
