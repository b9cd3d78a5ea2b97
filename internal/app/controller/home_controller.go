package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type HomeController struct{}

func NewHomeController() *HomeController {
	return &HomeController{}
}

// Homepage handles GET /
func (ctrl *HomeController) Homepage(c *gin.Context) {
	render(c, http.StatusOK, "homepage.html", gin.H{"Title": "Home"})
}

// NotFound handles unmatched routes
func (ctrl *HomeController) NotFound(c *gin.Context) {
	renderNotFound(c)
}
