package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/middleware"
)

// render writes an HTML page with the navbar user and pending flashes
func render(c *gin.Context, status int, page string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	user, _ := middleware.CurrentUser(c)
	data["CurrentUser"] = user
	data["Flashes"] = middleware.GetSession(c).PopFlashes()

	if err := middleware.SaveSession(c); err != nil {
		middleware.GetLoggerFromContext(c).Error("Failed to save session", err)
	}
	c.HTML(status, page, data)
}

func renderNotFound(c *gin.Context) {
	render(c, http.StatusNotFound, "404.html", gin.H{"Title": "Not Found"})
}

func renderServerError(c *gin.Context, err error) {
	_ = c.Error(err)
	render(c, http.StatusInternalServerError, "500.html", gin.H{"Title": "Error"})
}

// parseID reads a positive integer path parameter
func parseID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
