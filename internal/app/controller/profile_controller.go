package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/form"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/middleware"
)

const MsgProfileEdited = "Profile edited."

type ProfileController struct {
	authService service.AuthService
	likeService service.LikeService
}

func NewProfileController(authService service.AuthService, likeService service.LikeService) *ProfileController {
	return &ProfileController{
		authService: authService,
		likeService: likeService,
	}
}

// Show handles GET /profile
func (ctrl *ProfileController) Show(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	liked, err := ctrl.likeService.LikedCafes(user.ID)
	if err != nil {
		renderServerError(c, err)
		return
	}

	render(c, http.StatusOK, "profile.html", gin.H{
		"Title":      user.Username,
		"User":       user,
		"LikedCafes": liked,
	})
}

// EditForm handles GET /profile/edit
func (ctrl *ProfileController) EditForm(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	f := form.ProfileEdit.Empty()
	f.Set("first_name", user.FirstName)
	f.Set("last_name", user.LastName)
	f.Set("description", user.Description)
	f.Set("email", user.Email)
	if user.ImageURL != model.DefaultUserImage {
		f.Set("image_url", user.ImageURL)
	}

	render(c, http.StatusOK, "profile_edit.html", gin.H{"Title": "Edit Profile", "Form": f})
}

// Edit handles POST /profile/edit
func (ctrl *ProfileController) Edit(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)
	user, _ := middleware.CurrentUser(c)

	if err := c.Request.ParseForm(); err != nil {
		log.Warn("Invalid profile form", map[string]interface{}{
			"error": err.Error(),
		})
	}
	f := form.ProfileEdit.Parse(c.Request.PostForm)
	if !f.Validate() {
		render(c, http.StatusOK, "profile_edit.html", gin.H{"Title": "Edit Profile", "Form": f})
		return
	}

	updated, err := ctrl.authService.UpdateProfile(user.ID, service.ProfileInput{
		FirstName:   f.Get("first_name"),
		LastName:    f.Get("last_name"),
		Description: f.Get("description"),
		Email:       f.Get("email"),
		ImageURL:    f.Get("image_url"),
	})
	if err != nil {
		log.Error("Failed to edit profile", err, map[string]interface{}{
			"user_id": user.ID,
		})
		renderServerError(c, err)
		return
	}

	c.Set(middleware.CurrentUserKey, updated)
	middleware.Flash(c, "success", MsgProfileEdited)
	middleware.Redirect(c, "/profile")
}
