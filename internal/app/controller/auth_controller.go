package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/form"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/middleware"
)

const (
	MsgUsernameExists = "Username already exists."
	MsgSignedUp       = "You are signed up and logged in."
	MsgInvalidLogin   = "Invalid credentials."
	MsgLoggedOut      = "You have successfully logged out."
)

type AuthController struct {
	authService service.AuthService
}

func NewAuthController(authService service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

// SignupForm handles GET /signup. Visiting signup logs the current user out.
func (ctrl *AuthController) SignupForm(c *gin.Context) {
	middleware.Logout(c)
	render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign Up", "Form": form.Signup.Empty()})
}

// Signup handles POST /signup
func (ctrl *AuthController) Signup(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	middleware.Logout(c)

	if err := c.Request.ParseForm(); err != nil {
		log.Warn("Invalid signup form", map[string]interface{}{
			"error": err.Error(),
		})
	}
	f := form.Signup.Parse(c.Request.PostForm)
	if !f.Validate() {
		render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign Up", "Form": f})
		return
	}

	user, err := ctrl.authService.Register(service.RegisterInput{
		Username:    f.Get("username"),
		Password:    f.Get("password"),
		Email:       f.Get("email"),
		FirstName:   f.Get("first_name"),
		LastName:    f.Get("last_name"),
		Description: f.Get("description"),
		ImageURL:    f.Get("image_url"),
	})
	if err != nil {
		if errors.Is(err, service.ErrUsernameTaken) {
			f.AddError("username", MsgUsernameExists)
			render(c, http.StatusOK, "signup.html", gin.H{"Title": "Sign Up", "Form": f})
			return
		}
		log.Error("Signup failed", err, map[string]interface{}{
			"username": f.Get("username"),
		})
		renderServerError(c, err)
		return
	}

	middleware.Login(c, user)
	middleware.Flash(c, "success", MsgSignedUp)
	middleware.Redirect(c, "/cafes")
}

// LoginForm handles GET /login
func (ctrl *AuthController) LoginForm(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log In", "Form": form.Login.Empty()})
}

// Login handles POST /login
func (ctrl *AuthController) Login(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		middleware.GetLoggerFromContext(c).Warn("Invalid login form", map[string]interface{}{
			"error": err.Error(),
		})
	}
	f := form.Login.Parse(c.Request.PostForm)

	if f.Validate() {
		if user, ok := ctrl.authService.Authenticate(f.Get("username"), f.Get("password")); ok {
			middleware.Login(c, user)
			middleware.Flash(c, "success", "Hello, "+user.Username+"!")
			middleware.Redirect(c, "/cafes")
			return
		}
		middleware.Flash(c, "danger", MsgInvalidLogin)
	}

	render(c, http.StatusOK, "login.html", gin.H{"Title": "Log In", "Form": f})
}

// Logout handles POST /logout
func (ctrl *AuthController) Logout(c *gin.Context) {
	middleware.Logout(c)
	middleware.Flash(c, "success", MsgLoggedOut)
	middleware.Redirect(c, "/")
}
