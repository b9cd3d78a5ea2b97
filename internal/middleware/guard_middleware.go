package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	MsgAccessDenied = "Access Denied"
	MsgNotLoggedIn  = "You are not logged in."
	MsgAPINotLogged = "Not logged in"
)

// RequireAdmin lets only admins through. Anonymous users and non-admins get
// the same denial.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok || !user.Admin {
			fields := map[string]interface{}{
				"path": c.Request.URL.Path,
			}
			if ok {
				fields["user_id"] = user.ID
			}
			GetLoggerFromContext(c).Warn("Admin access denied", fields)

			Flash(c, "danger", MsgAccessDenied)
			Redirect(c, "/cafes")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireLogin redirects anonymous users to the login page
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			GetLoggerFromContext(c).Debug("Login required", map[string]interface{}{
				"path": c.Request.URL.Path,
			})
			Flash(c, "danger", MsgNotLoggedIn)
			Redirect(c, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAPILogin answers anonymous API calls with a 200 error payload, the
// shape the likes client checks for
func RequireAPILogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUser(c); !ok {
			c.AbortWithStatusJSON(http.StatusOK, gin.H{"error": MsgAPINotLogged})
			return
		}
		c.Next()
	}
}
