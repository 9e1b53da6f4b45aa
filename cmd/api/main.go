package main

import (
	_ "vendorhub/api/swagger" // swagger docs
	"vendorhub/internal/database"
	"vendorhub/internal/handler"
	"vendorhub/internal/middleware"
	"vendorhub/internal/repository"
	"vendorhub/internal/service"
	"vendorhub/internal/websocket"
	"context"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           VendorHub API
// @version         1.0
// @description     Vendor onboarding and approval workflow service.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		logrus.Info("No configs/.env file found or error loading it")
	}

	if os.Getenv("GIN_MODE") == "release" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD")
	dbName := os.Getenv("DB_NAME")
	dbSslMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" {
		dbHost = "localhost"
	}
	if dbPort == "" {
		dbPort = "5432"
	}
	if dbUser == "" {
		dbUser = "postgres"
	}
	if dbPassword == "" {
		dbPassword = "postgres"
	}
	if dbName == "" {
		dbName = "vendorhub"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		logrus.WithError(err).Fatal("Database connection failed")
	}
	logrus.Info("Connected to PostgreSQL successfully")

	// Permission checks read role grants from the database
	middleware.InitPermissionMiddleware(db)

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	userRepo := repository.NewUserRepository(db)
	vendorRepo := repository.NewVendorRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	documentRepo := repository.NewDocumentRepository(db)
	draftRepo := repository.NewDraftRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	userService := service.NewUserService(userRepo)
	roleService := service.NewRoleService(db)
	vendorService := service.NewVendorService(vendorRepo, draftRepo, auditRepo, txManager, wsHub)
	approvalService := service.NewApprovalService(vendorRepo, approvalRepo, auditRepo, txManager, wsHub)
	documentService := service.NewDocumentService(documentRepo, vendorRepo, auditRepo, txManager, wsHub)
	draftService := service.NewDraftService(draftRepo)
	dashboardService := service.NewDashboardService(db)
	auditService := service.NewAuditService(db)

	// Seed default roles/permissions and the bootstrap admin account
	if err := roleService.SeedDefaultRolesAndPermissions(context.Background()); err != nil {
		logrus.WithError(err).Warn("Failed to seed default roles and permissions")
	}
	if err := userService.SeedAdminUser(context.Background()); err != nil {
		logrus.WithError(err).Warn("Failed to seed admin user")
	}

	// Initialize Handlers
	userHandler := handler.NewUserHandler(userService)
	roleHandler := handler.NewRoleHandler(roleService)
	vendorHandler := handler.NewVendorHandler(vendorService)
	approvalHandler := handler.NewApprovalHandler(approvalService)
	documentHandler := handler.NewDocumentHandler(documentService)
	draftHandler := handler.NewDraftHandler(draftService)
	dashboardHandler := handler.NewDashboardHandler(dashboardService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173", "http://localhost:3000"} // Frontend URL
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	api := router.Group("/api/v1")
	userHandler.RegisterRoutes(api)
	roleHandler.RegisterRoutes(api)
	vendorHandler.RegisterRoutes(api)
	approvalHandler.RegisterRoutes(api)
	documentHandler.RegisterRoutes(api)
	draftHandler.RegisterRoutes(api)
	dashboardHandler.RegisterRoutes(api)
	auditHandler.RegisterRoutes(api)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logrus.WithField("port", port).Info("Server listening")
	if err := router.Run(":" + port); err != nil {
		logrus.WithError(err).Fatal("Server failed")
	}
}
