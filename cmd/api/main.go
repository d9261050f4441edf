package main

import (
	"log"
	"os"

	_ "rentalops/api/swagger" // swagger docs
	"rentalops/internal/database"
	"rentalops/internal/handler"
	"rentalops/internal/middleware"
	"rentalops/internal/repository"
	"rentalops/internal/service"
	"rentalops/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Rental Operations API
// @version         1.0
// @description     Rental pricing and contract lifecycle engine for vehicle-rental companies.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := godotenv.Load("configs/.env"); err != nil {
		log.Println("No configs/.env file found or error loading it")
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
		dbName = "rentalops"
	}
	if dbSslMode == "" {
		dbSslMode = "disable"
	}

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn)
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	log.Println("Connected to PostgreSQL successfully.")

	// Set up WebSocket Hub for contract lifecycle events
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	txManager := repository.NewTransactionManager(db)
	tierRepo := repository.NewTierRepository(db)
	seasonRepo := repository.NewSeasonRepository(db)
	carRepo := repository.NewCarRepository(db)
	clientRepo := repository.NewClientRepository(db)
	contractRepo := repository.NewContractRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	districtRepo := repository.NewDistrictRepository(db)
	auditRepo := repository.NewAuditRepository(db)

	tierService := service.NewTierService(tierRepo, auditRepo, txManager)
	seasonService := service.NewSeasonService(seasonRepo, auditRepo)
	quoteService := service.NewQuoteService(carRepo, tierRepo, seasonRepo)
	carService := service.NewCarService(carRepo)
	auditService := service.NewAuditService(auditRepo)
	contractService := service.NewContractService(
		contractRepo, carRepo, clientRepo, paymentRepo,
		tierRepo, seasonRepo, settingsRepo, districtRepo,
		auditRepo, txManager, wsHub,
	)

	// Initialize Handlers
	tierHandler := handler.NewTierHandler(tierService)
	seasonHandler := handler.NewSeasonHandler(seasonService)
	quoteHandler := handler.NewQuoteHandler(quoteService)
	carHandler := handler.NewCarHandler(carService)
	contractHandler := handler.NewContractHandler(contractService)
	auditHandler := handler.NewAuditHandler(auditService)

	// Set up Gin Router
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
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
	tierHandler.RegisterRoutes(router.Group(""))
	seasonHandler.RegisterRoutes(router.Group(""))
	quoteHandler.RegisterRoutes(router.Group(""))
	carHandler.RegisterRoutes(router.Group(""))
	contractHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Server listening on :%s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
