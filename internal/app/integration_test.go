package app

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/cafe-backend/config"
	"github.com/ikkim/cafe-backend/internal/app/controller"
	"github.com/ikkim/cafe-backend/internal/app/model"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/internal/middleware"
	"github.com/ikkim/cafe-backend/internal/router"
	"github.com/ikkim/cafe-backend/internal/session"
	"github.com/ikkim/cafe-backend/internal/storage"
	"github.com/ikkim/cafe-backend/pkg/mapquest"
	"github.com/ikkim/cafe-backend/pkg/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TestServer struct {
	Router      *gin.Engine
	DB          *gorm.DB
	AuthService service.AuthService
	MapRequests func() []url.Values
}

func setupIntegrationTest(t *testing.T) *TestServer {
	gin.SetMode(gin.TestMode)
	util.BcryptCost = bcrypt.MinCost

	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	require.NoError(t, testDB.Create(&model.City{Code: "sf", Name: "San Francisco", State: "CA"}).Error)

	// stands in for the MapQuest static map endpoint
	var mu sync.Mutex
	var mapRequests []url.Values
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		mapRequests = append(mapRequests, r.URL.Query())
		mu.Unlock()
		w.Header().Set("Content-Type", "image/jpeg")
		fmt.Fprint(w, "fake-jpeg")
	}))
	t.Cleanup(provider.Close)

	staticDir := t.TempDir()
	cfg := &config.Config{
		Server:   config.ServerConfig{GinMode: gin.TestMode, StaticDir: staticDir},
		MapQuest: config.MapQuestConfig{APIKey: "test-key", BaseURL: provider.URL},
	}

	mapClient, err := mapquest.NewClient(mapquest.Config{APIKey: cfg.MapQuest.APIKey, BaseURL: cfg.MapQuest.BaseURL})
	require.NoError(t, err)
	mapStorage, err := storage.NewLocalStorage(filepath.Join(staticDir, "maps"), "/static/maps")
	require.NoError(t, err)

	userRepo := repository.NewUserRepository(testDB)
	cafeRepo := repository.NewCafeRepository(testDB)

	authService := service.NewAuthService(testDB, userRepo)
	mapService := service.NewMapService(mapClient, mapStorage)
	cafeService := service.NewCafeService(testDB, cafeRepo, repository.NewCityRepository(testDB), mapService)
	likeService := service.NewLikeService(repository.NewLikeRepository(testDB), cafeRepo)

	r := router.NewRouter(
		controller.NewHomeController(),
		controller.NewAuthController(authService),
		controller.NewCafeController(cafeService, mapService),
		controller.NewProfileController(authService, likeService),
		controller.NewLikeController(likeService),
		middleware.NewSessionMiddleware(session.NewCookieStore("test-secret", time.Hour, false), authService),
		cfg,
	)

	return &TestServer{
		Router:      r.Setup(),
		DB:          testDB,
		AuthService: authService,
		MapRequests: func() []url.Values {
			mu.Lock()
			defer mu.Unlock()
			return append([]url.Values(nil), mapRequests...)
		},
	}
}

// browser keeps the session cookie like a real client would
type browser struct {
	t      *testing.T
	server *TestServer
	cookie *http.Cookie
}

func (s *TestServer) browser(t *testing.T) *browser {
	return &browser{t: t, server: s}
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.server.Router.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			if c.MaxAge < 0 {
				b.cookie = nil
			} else {
				b.cookie = c
			}
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, values url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

func (b *browser) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return b.do(req)
}

func (b *browser) login(username, password string) {
	w := b.post("/login", url.Values{"username": {username}, "password": {password}})
	require.Equal(b.t, http.StatusFound, w.Code)
}

func (s *TestServer) createAdmin(t *testing.T) {
	user, err := s.AuthService.Register(service.RegisterInput{
		Username:  "admin",
		Password:  "secret",
		Email:     "admin@test.com",
		FirstName: "Ad",
		LastName:  "Min",
	})
	require.NoError(t, err)
	require.NoError(t, s.DB.Model(user).Update("admin", true).Error)
}

func TestIntegration_AdminAddsCafe(t *testing.T) {
	server := setupIntegrationTest(t)
	server.createAdmin(t)

	b := server.browser(t)
	b.login("admin", "secret")

	w := b.post("/cafes/add", url.Values{
		"name":      {"Test Cafe"},
		"address":   {"500 Sansome St"},
		"city_code": {"sf"},
	})
	require.Equal(t, http.StatusFound, w.Code)

	var cafe model.Cafe
	require.NoError(t, server.DB.Where("name = ?", "Test Cafe").First(&cafe).Error)
	location := fmt.Sprintf("/cafes/%d", cafe.ID)
	assert.Equal(t, location, w.Header().Get("Location"))

	w = b.get(location)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Test Cafe")
	assert.Contains(t, w.Body.String(), "San Francisco, CA")

	requests := server.MapRequests()
	require.Len(t, requests, 1)
	assert.Equal(t, "test-key", requests[0].Get("key"))
	assert.Equal(t, "500 Sansome St,San Francisco,CA", requests[0].Get("center"))
	assert.Equal(t, "500 Sansome St,San Francisco,CA", requests[0].Get("locations"))
	assert.Equal(t, "15", requests[0].Get("zoom"))

	// the stored image is served from the static directory
	w = b.get(fmt.Sprintf("/static/maps/%d.jpg", cafe.ID))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "fake-jpeg", w.Body.String())
}

func TestIntegration_SignupLikeFlow(t *testing.T) {
	server := setupIntegrationTest(t)
	cafe := &model.Cafe{Name: "Test Cafe", Address: "500 Sansome St", CityCode: "sf"}
	require.NoError(t, server.DB.Create(cafe).Error)

	b := server.browser(t)
	body := fmt.Sprintf(`{"cafe_id": %d}`, cafe.ID)
	check := fmt.Sprintf("/api/likes?cafe_id=%d", cafe.ID)

	assert.JSONEq(t, `{"error": "Not logged in"}`, b.get(check).Body.String())

	w := b.post("/signup", url.Values{
		"username":   {"test"},
		"first_name": {"Test"},
		"last_name":  {"User"},
		"email":      {"test@test.com"},
		"password":   {"secret"},
	})
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/cafes", w.Header().Get("Location"))

	assert.JSONEq(t, `{"likes": false}`, b.get(check).Body.String())
	assert.JSONEq(t, fmt.Sprintf(`{"liked": %d}`, cafe.ID), b.postJSON("/api/like", body).Body.String())
	assert.JSONEq(t, `{"likes": true}`, b.get(check).Body.String())

	w = b.get("/profile")
	assert.Contains(t, w.Body.String(), "Test Cafe")

	assert.JSONEq(t, fmt.Sprintf(`{"unliked": %d}`, cafe.ID), b.postJSON("/api/unlike", body).Body.String())
	assert.JSONEq(t, `{"likes": false}`, b.get(check).Body.String())

	w = b.post("/logout", nil)
	assert.Equal(t, "/", w.Header().Get("Location"))
	assert.JSONEq(t, `{"error": "Not logged in"}`, b.postJSON("/api/like", body).Body.String())
}

func TestIntegration_NonAdminCannotMutateCafes(t *testing.T) {
	server := setupIntegrationTest(t)
	cafe := &model.Cafe{Name: "Test Cafe", Address: "500 Sansome St", CityCode: "sf"}
	require.NoError(t, server.DB.Create(cafe).Error)

	_, err := server.AuthService.Register(service.RegisterInput{
		Username: "test", Password: "secret", Email: "t@test.com", FirstName: "T", LastName: "U",
	})
	require.NoError(t, err)

	user := server.browser(t)
	user.login("test", "secret")

	for _, b := range []*browser{server.browser(t), user} {
		w := b.post("/cafes/add", url.Values{"name": {"New"}, "address": {"1 Main"}, "city_code": {"sf"}})
		assert.Equal(t, "/cafes", w.Header().Get("Location"))

		w = b.post(fmt.Sprintf("/cafes/%d/edit", cafe.ID), url.Values{"name": {"Changed"}, "address": {"1 Main"}, "city_code": {"sf"}})
		assert.Equal(t, "/cafes", w.Header().Get("Location"))
	}

	var cafes []model.Cafe
	require.NoError(t, server.DB.Find(&cafes).Error)
	require.Len(t, cafes, 1)
	assert.Equal(t, "Test Cafe", cafes[0].Name)
	assert.Empty(t, server.MapRequests())
}

func TestIntegration_Health(t *testing.T) {
	server := setupIntegrationTest(t)

	w := server.browser(t).get("/health")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "healthy")
}
