package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/config"
	"github.com/ikkim/cafe-backend/internal/app/controller"
	"github.com/ikkim/cafe-backend/internal/middleware"
	"github.com/ikkim/cafe-backend/internal/web"
)

type Router struct {
	homeController    *controller.HomeController
	authController    *controller.AuthController
	cafeController    *controller.CafeController
	profileController *controller.ProfileController
	likeController    *controller.LikeController
	sessionMiddleware *middleware.SessionMiddleware
	config            *config.Config
}

func NewRouter(
	homeController *controller.HomeController,
	authController *controller.AuthController,
	cafeController *controller.CafeController,
	profileController *controller.ProfileController,
	likeController *controller.LikeController,
	sessionMiddleware *middleware.SessionMiddleware,
	cfg *config.Config,
) *Router {
	return &Router{
		homeController:    homeController,
		authController:    authController,
		cafeController:    cafeController,
		profileController: profileController,
		likeController:    likeController,
		sessionMiddleware: sessionMiddleware,
		config:            cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())

	router.SetHTMLTemplate(web.MustTemplates())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Cafe Finder is running",
		})
	})

	// map images are written under the static dir
	router.Static("/static", r.config.Server.StaticDir)

	pages := router.Group("/")
	pages.Use(r.sessionMiddleware.Load())
	{
		pages.GET("/", r.homeController.Homepage)

		pages.GET("/signup", r.authController.SignupForm)
		pages.POST("/signup", r.authController.Signup)
		pages.GET("/login", r.authController.LoginForm)
		pages.POST("/login", r.authController.Login)
		pages.POST("/logout", r.authController.Logout)

		cafes := pages.Group("/cafes")
		{
			cafes.GET("", r.cafeController.List)
			cafes.GET("/:id", r.cafeController.Detail)

			admin := cafes.Group("")
			admin.Use(middleware.RequireAdmin())
			{
				admin.GET("/add", r.cafeController.AddForm)
				admin.POST("/add", r.cafeController.Add)
				admin.GET("/:id/edit", r.cafeController.EditForm)
				admin.POST("/:id/edit", r.cafeController.Edit)
			}
		}

		profile := pages.Group("/profile")
		profile.Use(middleware.RequireLogin())
		{
			profile.GET("", r.profileController.Show)
			profile.GET("/edit", r.profileController.EditForm)
			profile.POST("/edit", r.profileController.Edit)
		}

		api := pages.Group("/api")
		api.Use(middleware.RequireAPILogin())
		{
			api.GET("/likes", r.likeController.Check)
			api.POST("/like", r.likeController.Like)
			api.POST("/unlike", r.likeController.Unlike)
		}
	}

	router.NoRoute(r.sessionMiddleware.Load(), r.homeController.NotFound)

	return router
}
