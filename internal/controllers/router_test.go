package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/controllers"
	"github.com/franciscosanchezn/gin-ferias-api/internal/middleware"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// testAPI wires the real router, middlewares, controllers and services over
// an in-memory database, mirroring the production route tree.
type testAPI struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupTestAPI(t *testing.T) *testAPI {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.LeaveRequest{}))

	tokens := auth.NewTokenService("test-jwt-secret-key-32-characters")
	users := services.NewUserService(db, auth.BcryptHasher{})
	leaves := services.NewLeaveService(db)
	authCtrl := controllers.NewAuthController(users, tokens)
	leaveCtrl := controllers.NewLeaveController(leaves)

	router := gin.New()
	requireAuth := middleware.RequireAuth(tokens, users)

	authApi := router.Group("/api/auth")
	{
		authApi.POST("/register", authCtrl.Register)
		authApi.POST("/login", authCtrl.Login)

		protected := authApi.Group("")
		protected.Use(requireAuth)
		{
			protected.GET("/users", authCtrl.ListUsers)

			adminApi := protected.Group("")
			adminApi.Use(middleware.RequireAdmin())
			{
				adminApi.PATCH("/promote/:userId", authCtrl.Promote)
				adminApi.DELETE("/delete/:userId", authCtrl.DeleteUser)
			}
		}
	}

	feriasApi := router.Group("/api/ferias")
	feriasApi.Use(requireAuth)
	{
		feriasApi.POST("", leaveCtrl.Create)
		feriasApi.GET("/minhas", leaveCtrl.ListMine)
		feriasApi.DELETE("/:id", leaveCtrl.Delete)

		adminApi := feriasApi.Group("")
		adminApi.Use(middleware.RequireAdmin())
		{
			adminApi.GET("/admin", leaveCtrl.ListAll)
			adminApi.PATCH("/:id/status", leaveCtrl.UpdateStatus)
			adminApi.DELETE("/admin/:id", leaveCtrl.DeleteAdmin)
		}
	}

	return &testAPI{router: router, db: db}
}

// do performs a JSON request against the test router. body may be nil.
func (a *testAPI) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Buffer = bytes.NewBuffer(nil)
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token and the
// decoded user payload.
func (a *testAPI) register(t *testing.T, name, email string) (string, map[string]interface{}) {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "password1",
		"role":     "Analyst",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string                 `json:"token"`
		User  map[string]interface{} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token, resp.User
}

// registerAdmin registers an account and flips its admin flag directly in
// the store, then logs in again so the token carries the admin claim.
func (a *testAPI) registerAdmin(t *testing.T, email string) string {
	t.Helper()

	_, user := a.register(t, "Admin", email)
	id := uint(user["id"].(float64))
	require.NoError(t, a.db.Model(&models.User{}).Where("id = ?", id).Update("is_admin", true).Error)

	w := a.do(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "password1",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

// createLeave files a leave request and returns its id.
func (a *testAPI) createLeave(t *testing.T, token, start, end, reason string) uint {
	t.Helper()

	w := a.do(t, http.MethodPost, "/api/ferias", token, gin.H{
		"startDate": start,
		"endDate":   end,
		"reason":    reason,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var request models.LeaveRequest
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &request))
	return request.ID
}

func leavePath(id uint) string {
	return fmt.Sprintf("/api/ferias/%d", id)
}
