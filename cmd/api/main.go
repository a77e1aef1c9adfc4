package main

import (
	"fmt"
	"net/http"
	"os"

	"expenses/internal/config"
	"expenses/internal/database"
	"expenses/internal/handlers"
	"expenses/internal/logger"
	"expenses/internal/middleware"
	"expenses/internal/services"
	"expenses/internal/validator"

	"github.com/gin-gonic/gin"
)

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(appConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Register custom request validators
	validator.Register()

	// Initialize services
	db := dbManager.DB()
	accountService := services.NewAccountService(db)
	categoryService := services.NewCategoryService(db)
	payeeService := services.NewPayeeService(db)
	projectService := services.NewProjectService(db)
	transactionService := services.NewTransactionService(db, accountService)
	restoreService := services.NewRestoreService(db, nil)

	// Initialize handlers
	accountHandler := handlers.NewAccountHandler(accountService, transactionService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	payeeHandler := handlers.NewPayeeHandler(payeeService)
	projectHandler := handlers.NewProjectHandler(projectService)
	transactionHandler := handlers.NewTransactionHandler(transactionService)
	restoreHandler := handlers.NewRestoreHandler(restoreService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Account routes
	accounts := v1.Group("/accounts")
	accounts.GET("", accountHandler.GetAccounts)
	accounts.GET("/:id", accountHandler.GetAccountByID)
	accounts.GET("/:id/transactions", accountHandler.GetAccountTransactions)

	// Transaction routes
	transactions := v1.Group("/transactions")
	transactions.GET("/:id", transactionHandler.GetTransactionByID)

	// Category routes
	categories := v1.Group("/categories")
	categories.GET("", categoryHandler.GetCategories)
	categories.GET("/:id", categoryHandler.GetCategoryByID)

	// Payee and project routes
	v1.GET("/payees", payeeHandler.GetPayees)
	v1.GET("/projects", projectHandler.GetProjects)

	// Restore routes
	restore := v1.Group("/restore")
	restore.POST("/financisto", restoreHandler.StartFinancistoImport)
	restore.GET("/jobs/:id", restoreHandler.GetJob)
	v1.POST("/integrity/fix", restoreHandler.FixIntegrity)

	log.Infof("Starting expenses backend server on port %s", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
