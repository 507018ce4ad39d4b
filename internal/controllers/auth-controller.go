package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/middleware"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
)

// AuthController handles registration, login and account management
type AuthController interface {
	// Register creates an account and logs it in
	Register(c *gin.Context)
	// Login exchanges email/password for a bearer token
	Login(c *gin.Context)
	// ListUsers returns every account
	ListUsers(c *gin.Context)
	// Promote grants admin privileges to the target account
	Promote(c *gin.Context)
	// DeleteUser removes the target account
	DeleteUser(c *gin.Context)
}

type authController struct {
	users  services.UserService
	tokens auth.TokenService
}

// NewAuthController creates a new instance of AuthController
func NewAuthController(users services.UserService, tokens auth.TokenService) AuthController {
	return &authController{users: users, tokens: tokens}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	// Accepted for wire compatibility but deliberately ignored: accounts are
	// always created without admin privileges. Elevation goes through the
	// promote endpoint.
	IsAdmin bool `json:"isAdmin"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Register godoc
// @Summary Register a new employee account
// @Description Create an account and return a bearer token (auto-login). A client-supplied isAdmin flag is ignored.
// @Tags auth
// @Accept json
// @Produce json
// @Param account body registerRequest true "Account data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 409 {object} models.APIError
// @Router /api/auth/register [post]
func (ac *authController) Register(ctx *gin.Context) {
	var req registerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	user, err := ac.users.Register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, services.ErrEmailTaken) {
			ctx.JSON(http.StatusConflict, models.NewAPIError(models.ErrEmailTaken, "Email already registered"))
			return
		}
		log.WithError(err).Error("Failed to register user")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to create user"))
		return
	}

	token, err := ac.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to issue token"))
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"token": token,
		"user":  user,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Description Exchange credentials for a bearer token. The error response never reveals whether the email or the password was wrong.
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body loginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} models.APIError
// @Failure 401 {object} models.APIError
// @Router /api/auth/login [post]
func (ac *authController) Login(ctx *gin.Context) {
	var req loginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrValidationFailed, "Invalid request body"))
		return
	}

	user, err := ac.users.Authenticate(req.Email, req.Password)
	if err != nil {
		// uniform response for unknown email and wrong password
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrInvalidCredentials, "Invalid email or password"))
		return
	}

	token, err := ac.tokens.Issue(user.ID, user.IsAdmin)
	if err != nil {
		log.WithError(err).Error("Failed to issue token")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to issue token"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"token": token,
		"user":  user,
	})
}

// ListUsers godoc
// @Summary List all accounts
// @Tags auth
// @Produce json
// @Success 200 {array} models.User
// @Failure 401 {object} models.APIError
// @Security BearerAuth
// @Router /api/auth/users [get]
func (ac *authController) ListUsers(ctx *gin.Context) {
	users, err := ac.users.ListUsers()
	if err != nil {
		log.WithError(err).Error("Failed to list users")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to list users"))
		return
	}
	ctx.JSON(http.StatusOK, users)
}

// Promote godoc
// @Summary Promote an account to admin
// @Tags auth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} models.User
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/auth/promote/{userId} [patch]
func (ac *authController) Promote(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	user, err := ac.users.Promote(userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
			return
		}
		log.WithError(err).Error("Failed to promote user")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to promote user"))
		return
	}

	ctx.JSON(http.StatusOK, user)
}

// DeleteUser godoc
// @Summary Delete an account
// @Description Removes the account. The account's leave requests are not deleted.
// @Tags auth
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {object} map[string]string
// @Failure 403 {object} models.APIError
// @Failure 404 {object} models.APIError
// @Security BearerAuth
// @Router /api/auth/delete/{userId} [delete]
func (ac *authController) DeleteUser(ctx *gin.Context) {
	userID, ok := parseIDParam(ctx, "userId")
	if !ok {
		return
	}

	if err := ac.users.Delete(userID); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			ctx.JSON(http.StatusNotFound, models.NewAPIError(models.ErrUserNotFound, "User not found"))
			return
		}
		log.WithError(err).Error("Failed to delete user")
		ctx.JSON(http.StatusInternalServerError, models.NewAPIError(models.ErrInternalServer, "Failed to delete user"))
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

// parseIDParam reads a numeric path parameter, responding 400 on bad input.
func parseIDParam(ctx *gin.Context, name string) (uint, bool) {
	raw := ctx.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, models.NewAPIError(models.ErrBadRequest, "Invalid id format"))
		return 0, false
	}
	return uint(id), true
}

// currentUser fetches the authenticated user attached by the auth middleware.
func currentUser(ctx *gin.Context) (*models.User, bool) {
	user := middleware.CurrentUser(ctx)
	if user == nil {
		ctx.JSON(http.StatusUnauthorized, models.NewAPIError(models.ErrUnauthorized, "Authentication required"))
		return nil, false
	}
	return user, true
}
