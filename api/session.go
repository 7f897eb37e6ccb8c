package api

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"packtravel/services/user"
)

const (
	sessionUsername = "username"
	sessionUserID   = "userid"
	sessionEmail    = "email"
)

// currentUsername returns the logged-in username, or "" when the
// session carries none.
func currentUsername(c *gin.Context) string {
	session := sessions.Default(c)
	username, _ := session.Get(sessionUsername).(string)
	return username
}

func currentEmail(c *gin.Context) string {
	session := sessions.Default(c)
	email, _ := session.Get(sessionEmail).(string)
	return email
}

// requireLogin aborts with a login prompt when no user is in session,
// the counterpart of the original's redirect-to-index-with-alert.
func requireLogin(c *gin.Context) (string, bool) {
	username := currentUsername(c)
	if username == "" {
		c.JSON(http.StatusUnauthorized, gin.H{
			"alert":    "Please login first.",
			"redirect": "/",
		})
		return "", false
	}
	return username, true
}

func setLoginSession(c *gin.Context, u *user.User) error {
	session := sessions.Default(c)
	session.Set(sessionUsername, u.Username)
	session.Set(sessionUserID, u.ID)
	session.Set(sessionEmail, u.Email)
	return session.Save()
}
