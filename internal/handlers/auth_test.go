package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/AnneAnotherThing/hivenow-app/internal/constants"
	"github.com/AnneAnotherThing/hivenow-app/internal/database"
	"github.com/AnneAnotherThing/hivenow-app/internal/middleware"
	"github.com/AnneAnotherThing/hivenow-app/internal/models"
	"github.com/AnneAnotherThing/hivenow-app/internal/repository"
	"github.com/AnneAnotherThing/hivenow-app/internal/services"
)

type authTestEnv struct {
	db          *gorm.DB
	handler     *AuthHandler
	authService *services.AuthService
	router      *gin.Engine
}

func setupAuthTestEnv(t *testing.T) authTestEnv {
	t.Helper()

	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
	)
	require.NoError(t, err)

	database.SetDB(db)

	authService := services.NewAuthService(repository.NewUserRepository(db))
	handler := NewAuthHandler(authService)

	r := gin.New()
	store := cookie.NewStore([]byte("secret"))
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/api/auth/register", handler.Register)
	r.POST("/api/auth/login", handler.Login)
	r.POST("/api/auth/logout", handler.Logout)
	r.GET("/api/auth/me", middleware.RequireAuth(), handler.GetCurrentUser)
	r.PATCH("/api/users/settings", middleware.RequireAuth(), handler.UpdateSettings)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return authTestEnv{
		db:          db,
		handler:     handler,
		authService: authService,
		router:      r,
	}
}

func jsonRequest(t *testing.T, method, url string, payload interface{}) *http.Request {
	t.Helper()
	body, err := json.Marshal(payload)
	require.NoError(t, err)
	req := httptest.NewRequest(method, url, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestAuthHandler_Register(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "ann@example.com",
		"username": "ann",
		"password": "supersecret",
		"role":     "provider",
	})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)
	require.NotEmpty(t, w.Result().Cookies(), "register should start a session")

	var response map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ann", response["user"]["username"])
	require.Equal(t, "provider", response["user"]["role"])
	require.NotContains(t, response["user"], "password_hash")
}

func TestAuthHandler_RegisterDuplicateEmail(t *testing.T) {
	env := setupAuthTestEnv(t)

	payload := map[string]string{
		"email":    "ann@example.com",
		"username": "ann",
		"password": "supersecret",
	}
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/register", payload))
	require.Equal(t, http.StatusCreated, w.Code)

	payload["username"] = "other"
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/register", payload))
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestAuthHandler_RegisterRejectsAdmin(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    "boss@example.com",
		"username": "boss",
		"password": "supersecret",
		"role":     "admin",
	})
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAuthHandler_LoginAndMe(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "ann@example.com",
		Username: "ann",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ann@example.com",
		"password": "supersecret",
	}))
	require.Equal(t, http.StatusOK, w.Code)

	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "ann", response["user"]["username"])
}

func TestAuthHandler_LoginWrongPassword(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "ann@example.com",
		Username: "ann",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ann@example.com",
		"password": "wrong",
	}))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_MeWithoutSession(t *testing.T) {
	env := setupAuthTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandler_UpdateSettings(t *testing.T) {
	env := setupAuthTestEnv(t)

	_, err := env.authService.Signup(services.SignupInput{
		Email:    "ann@example.com",
		Username: "ann",
		Password: "supersecret",
	})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "ann@example.com",
		"password": "supersecret",
	}))
	require.Equal(t, http.StatusOK, w.Code)
	cookies := w.Result().Cookies()

	req := jsonRequest(t, http.MethodPatch, "/api/users/settings", map[string]string{
		"first_name":         "Ann",
		"contact_preference": "email",
		"contact_value":      "ann@example.com",
	})
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w = httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var response map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	require.Equal(t, "Ann", response["user"]["first_name"])
	require.Equal(t, "email", response["user"]["contact_preference"])
}
