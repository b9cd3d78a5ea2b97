package controller

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/internal/middleware"
	"github.com/ikkim/cafe-backend/internal/session"
	"github.com/ikkim/cafe-backend/internal/storage"
	"github.com/ikkim/cafe-backend/internal/web"
	"github.com/ikkim/cafe-backend/pkg/util"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeFetcher struct {
	mu    sync.Mutex
	calls int
	err   error
}

func (f *fakeFetcher) FetchStaticMap(ctx context.Context, address, city, state string) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []byte("jpeg:" + address), nil
}

func (f *fakeFetcher) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type testEnv struct {
	router      *gin.Engine
	db          *gorm.DB
	fetcher     *fakeFetcher
	maps        *storage.LocalStorage
	authService service.AuthService
}

func setupControllerTest(t *testing.T) *testEnv {
	gin.SetMode(gin.TestMode)
	util.BcryptCost = bcrypt.MinCost

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, db.SeedCities(testDB))

	fetcher := &fakeFetcher{}
	maps, err := storage.NewLocalStorage(t.TempDir(), "/static/maps")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	cafeRepo := repository.NewCafeRepository(testDB)
	authService := service.NewAuthService(testDB, userRepo)
	mapService := service.NewMapService(fetcher, maps)
	cafeService := service.NewCafeService(testDB, cafeRepo, repository.NewCityRepository(testDB), mapService)
	likeService := service.NewLikeService(repository.NewLikeRepository(testDB), cafeRepo)

	home := NewHomeController()
	auth := NewAuthController(authService)
	cafes := NewCafeController(cafeService, mapService)
	profile := NewProfileController(authService, likeService)
	likes := NewLikeController(likeService)

	store := session.NewCookieStore("test-secret", time.Hour, false)

	router := gin.New()
	router.SetHTMLTemplate(web.MustTemplates())
	router.Use(middleware.NewSessionMiddleware(store, authService).Load())

	router.GET("/", home.Homepage)
	router.GET("/signup", auth.SignupForm)
	router.POST("/signup", auth.Signup)
	router.GET("/login", auth.LoginForm)
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)

	router.GET("/cafes", cafes.List)
	router.GET("/cafes/:id", cafes.Detail)
	router.GET("/cafes/add", middleware.RequireAdmin(), cafes.AddForm)
	router.POST("/cafes/add", middleware.RequireAdmin(), cafes.Add)
	router.GET("/cafes/:id/edit", middleware.RequireAdmin(), cafes.EditForm)
	router.POST("/cafes/:id/edit", middleware.RequireAdmin(), cafes.Edit)

	router.GET("/profile", middleware.RequireLogin(), profile.Show)
	router.GET("/profile/edit", middleware.RequireLogin(), profile.EditForm)
	router.POST("/profile/edit", middleware.RequireLogin(), profile.Edit)

	router.GET("/api/likes", middleware.RequireAPILogin(), likes.Check)
	router.POST("/api/like", middleware.RequireAPILogin(), likes.Like)
	router.POST("/api/unlike", middleware.RequireAPILogin(), likes.Unlike)

	router.NoRoute(home.NotFound)

	return &testEnv{
		router:      router,
		db:          testDB,
		fetcher:     fetcher,
		maps:        maps,
		authService: authService,
	}
}

// createUser registers a user with password "secret"
func (e *testEnv) createUser(t *testing.T, username string, admin bool) *model.User {
	t.Helper()
	user, err := e.authService.Register(service.RegisterInput{
		Username:  username,
		Password:  "secret",
		Email:     username + "@test.com",
		FirstName: "Test",
		LastName:  "User",
	})
	require.NoError(t, err)
	if admin {
		require.NoError(t, e.db.Model(user).Update("admin", true).Error)
		user.Admin = true
	}
	return user
}

func (e *testEnv) createCafe(t *testing.T, name string) *model.Cafe {
	t.Helper()
	cafe := &model.Cafe{Name: name, Address: "500 Sansome St", CityCode: "sf", ImageURL: model.DefaultCafeImage}
	require.NoError(t, e.db.Create(cafe).Error)
	return cafe
}

// client replays the session cookie between requests
type client struct {
	t      *testing.T
	router *gin.Engine
	cookie *http.Cookie
}

func (e *testEnv) client(t *testing.T) *client {
	return &client{t: t, router: e.router}
}

// loggedIn returns a client logged in as username
func (e *testEnv) loggedIn(t *testing.T, username string) *client {
	c := e.client(t)
	w := c.postForm("/login", url.Values{"username": {username}, "password": {"secret"}})
	require.Equal(t, http.StatusFound, w.Code)
	return c
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)

	for _, ck := range w.Result().Cookies() {
		if ck.Name != session.CookieName {
			continue
		}
		if ck.MaxAge < 0 {
			c.cookie = nil
		} else {
			c.cookie = ck
		}
	}
	return w
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (c *client) postForm(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return c.do(req)
}

func countRows(t *testing.T, conn *gorm.DB, m interface{}) int64 {
	t.Helper()
	var n int64
	require.NoError(t, conn.Model(m).Count(&n).Error)
	return n
}
