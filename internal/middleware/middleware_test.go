package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/middleware"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type fixture struct {
	router *gin.Engine
	db     *gorm.DB
	tokens auth.TokenService
	users  services.UserService
}

func setupFixture(t *testing.T) *fixture {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.LeaveRequest{}))

	tokens := auth.NewTokenService("test-jwt-secret-key-32-characters")
	users := services.NewUserService(db, auth.BcryptHasher{})

	router := gin.New()
	protected := router.Group("/protected")
	protected.Use(middleware.RequireAuth(tokens, users))
	{
		protected.GET("/whoami", func(c *gin.Context) {
			user := middleware.CurrentUser(c)
			c.JSON(http.StatusOK, gin.H{"email": user.Email})
		})

		adminOnly := protected.Group("/admin")
		adminOnly.Use(middleware.RequireAdmin())
		{
			adminOnly.GET("/ping", func(c *gin.Context) {
				c.JSON(http.StatusOK, gin.H{"message": "pong"})
			})
		}
	}

	return &fixture{router: router, db: db, tokens: tokens, users: users}
}

func (f *fixture) get(t *testing.T, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, path, nil)
	require.NoError(t, err)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *fixture) registerWithToken(t *testing.T, email string) (*models.User, string) {
	t.Helper()
	user, err := f.users.Register("Test User", email, "password1", "Analyst")
	require.NoError(t, err)
	token, err := f.tokens.Issue(user.ID, user.IsAdmin)
	require.NoError(t, err)
	return user, token
}

func TestRequireAuthRejections(t *testing.T) {
	f := setupFixture(t)

	user, token := f.registerWithToken(t, "user@example.com")

	testCases := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "not a bearer scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "empty bearer", header: "Bearer "},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			w := f.get(t, "/protected/whoami", tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	t.Run("valid token for a deleted user", func(t *testing.T) {
		require.NoError(t, f.users.Delete(user.ID))
		w := f.get(t, "/protected/whoami", "Bearer "+token)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestRequireAuthAttachesFreshUser(t *testing.T) {
	f := setupFixture(t)
	_, token := f.registerWithToken(t, "fresh@example.com")

	w := f.get(t, "/protected/whoami", "Bearer "+token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "fresh@example.com")
}

func TestRequireAdmin(t *testing.T) {
	f := setupFixture(t)
	user, token := f.registerWithToken(t, "member@example.com")

	t.Run("non-admin is forbidden even with a valid token", func(t *testing.T) {
		w := f.get(t, "/protected/admin/ping", "Bearer "+token)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("promotion applies to tokens issued before it", func(t *testing.T) {
		// flip the live record; the token still carries isAdmin=false
		require.NoError(t, f.db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_admin", true).Error)

		w := f.get(t, "/protected/admin/ping", "Bearer "+token)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
