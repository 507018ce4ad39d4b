package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/franciscosanchezn/gin-ferias-api/docs" // Import generated docs
	"github.com/franciscosanchezn/gin-ferias-api/internal/auth"
	"github.com/franciscosanchezn/gin-ferias-api/internal/config"
	"github.com/franciscosanchezn/gin-ferias-api/internal/controllers"
	"github.com/franciscosanchezn/gin-ferias-api/internal/database"
	"github.com/franciscosanchezn/gin-ferias-api/internal/middleware"
	"github.com/franciscosanchezn/gin-ferias-api/internal/models"
	"github.com/franciscosanchezn/gin-ferias-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/swaggo/files"
	"github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db              *gorm.DB
	tokenService    auth.TokenService
	userService     services.UserService
	leaveService    services.LeaveService
	authController  controllers.AuthController
	leaveController controllers.LeaveController
	configuration   *config.Config
)

// @title Férias API
// @version 1.0
// @description Employee leave-request management API
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	setupDatabase(configuration)

	// Initialize services and controllers
	tokenService = auth.NewTokenService(configuration.JWTSecret)
	userService = services.NewUserService(db, auth.BcryptHasher{})
	leaveService = services.NewLeaveService(db)
	authController = controllers.NewAuthController(userService, tokenService)
	leaveController = controllers.NewLeaveController(leaveService)

	// Seed the bootstrap admin when configured and the users table is empty
	seedAdminUser(configuration)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error, notably when
// JWT_SECRET is missing
func loadConfig() *config.Config {
	log.Info("Loading configuration from environment variables")
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection and returns a gorm.DB instance
func setupDatabase(conf *config.Config) *gorm.DB {
	var err error
	db, err = database.InitDatabase(database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	})
	checkPanicErr(err)
	// Migrate the schema
	err = db.AutoMigrate(&models.User{}, &models.LeaveRequest{})
	checkPanicErr(err)
	return db
}

// seedAdminUser creates the first admin account from ADMIN_EMAIL/ADMIN_PASSWORD.
// Registration never grants admin privileges, so without this seed the only
// path to an admin would be a manual database edit.
func seedAdminUser(conf *config.Config) {
	if conf.AdminEmail == "" || conf.AdminPassword == "" {
		log.Debug("No bootstrap admin configured, skipping seed")
		return
	}

	var count int64
	db.Model(&models.User{}).Count(&count)
	if count > 0 {
		log.Info("Users table not empty, skipping admin seed")
		return
	}

	admin, err := userService.Register(conf.AdminName, conf.AdminEmail, conf.AdminPassword, "admin")
	checkPanicErr(err)
	checkPanicErr(db.Model(admin).Update("is_admin", true).Error)
	log.WithField("email", admin.Email).Info("Bootstrap admin created")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.New()
	router.Use(middleware.RequestLogger())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.WithField("panic", recovered).Error("Recovered from panic in handler")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			models.NewAPIError(models.ErrInternalServer, "Internal server error"))
	}))

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	requireAuth := middleware.RequireAuth(tokenService, userService)

	// Account routes
	authApi := router.Group("/api/auth")
	{
		authApi.POST("/register", authController.Register)
		authApi.POST("/login", authController.Login)

		protected := authApi.Group("")
		protected.Use(requireAuth)
		{
			protected.GET("/users", authController.ListUsers)

			adminApi := protected.Group("")
			adminApi.Use(middleware.RequireAdmin())
			{
				adminApi.PATCH("/promote/:userId", authController.Promote)
				adminApi.DELETE("/delete/:userId", authController.DeleteUser)
			}
		}
	}

	// Leave request routes (all require authentication)
	feriasApi := router.Group("/api/ferias")
	feriasApi.Use(requireAuth)
	{
		feriasApi.POST("", leaveController.Create)
		feriasApi.GET("/minhas", leaveController.ListMine)
		feriasApi.DELETE("/:id", leaveController.Delete)

		adminApi := feriasApi.Group("")
		adminApi.Use(middleware.RequireAdmin())
		{
			adminApi.GET("/admin", leaveController.ListAll)
			adminApi.PATCH("/:id/status", leaveController.UpdateStatus)
			adminApi.DELETE("/admin/:id", leaveController.DeleteAdmin)
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-ferias-api",
	})
}
