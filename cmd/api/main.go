package main

import (
	"fmt"
	"net/http"
	"os"

	"moneta/internal/config"
	"moneta/internal/database"
	"moneta/internal/handlers"
	"moneta/internal/logger"
	"moneta/internal/middleware"
	"moneta/internal/models"
	"moneta/internal/services"
	"moneta/internal/sessions"
	"moneta/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "moneta/internal/docs" // Import swagger docs
)

// @title           Moneta API
// @version         1.0
// @description     Moneta is a personal and group finance tracker covering incomes, expenses, investments, budgets, debts, and savings goals.
// @termsOfService  http://swagger.io/terms/

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the session token.

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

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
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
	sessionStore := sessions.NewStore()
	authService := services.NewAuthService(db, sessionStore)
	userService := services.NewUserService(db)
	ledgerService := services.NewLedgerService(db, userService)
	budgetService := services.NewBudgetService(db)
	debtService := services.NewDebtService(db)
	goalService := services.NewGoalService(db)

	logUserCount(db)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	ledgerHandler := handlers.NewLedgerHandler(ledgerService)
	budgetHandler := handlers.NewBudgetHandler(budgetService)
	debtHandler := handlers.NewDebtHandler(debtService)
	goalHandler := handlers.NewGoalHandler(goalService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes
	auth := v1.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.Auth(authService))

	protected.GET("/auth/me", authHandler.Me)

	// User routes
	users := protected.Group("/users")
	users.GET("", userHandler.List)
	users.POST("", userHandler.AddMember)
	users.PUT("/me", userHandler.UpdateProfile)

	// Income routes
	incomes := protected.Group("/incomes")
	incomes.POST("", ledgerHandler.CreateIncome)
	incomes.GET("", ledgerHandler.ListIncomes)
	incomes.PUT("/:id", ledgerHandler.UpdateIncome)
	incomes.DELETE("/:id", ledgerHandler.DeleteIncome)

	// Expense routes
	expenses := protected.Group("/expenses")
	expenses.POST("", ledgerHandler.CreateExpense)
	expenses.GET("", ledgerHandler.ListExpenses)
	expenses.PUT("/:id", ledgerHandler.UpdateExpense)
	expenses.DELETE("/:id", ledgerHandler.DeleteExpense)

	// Investment routes
	investments := protected.Group("/investments")
	investments.POST("", ledgerHandler.CreateInvestment)
	investments.GET("", ledgerHandler.ListInvestments)
	investments.PUT("/:id", ledgerHandler.UpdateInvestment)
	investments.DELETE("/:id", ledgerHandler.DeleteInvestment)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/summary", ledgerHandler.Summary)
	reports.GET("/category-breakdown", ledgerHandler.CategoryBreakdown)
	reports.GET("/daily-spending", ledgerHandler.DailySpending)
	reports.GET("/health-score", ledgerHandler.HealthScore)
	reports.GET("/export/csv", ledgerHandler.ExportCSV)

	// Budget routes
	budgets := protected.Group("/budgets")
	budgets.POST("", budgetHandler.Create)
	budgets.GET("", budgetHandler.List)
	budgets.GET("/status", budgetHandler.Status)
	budgets.PUT("/:id", budgetHandler.Update)
	budgets.DELETE("/:id", budgetHandler.Delete)

	// Debt routes
	debts := protected.Group("/debts")
	debts.POST("", debtHandler.Create)
	debts.GET("", debtHandler.ListPending)
	debts.GET("/summary", debtHandler.Summary)
	debts.POST("/:id/settle", debtHandler.Settle)
	debts.DELETE("/:id", debtHandler.Delete)

	// Goal routes
	goals := protected.Group("/goals")
	goals.POST("", goalHandler.Create)
	goals.GET("", goalHandler.List)
	goals.GET("/achievements", goalHandler.Achievements)
	goals.PUT("/:id", goalHandler.Update)
	goals.DELETE("/:id", goalHandler.Delete)

	log.Infof("Starting Moneta backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}

func logUserCount(db *gorm.DB) {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		logger.Get().Warnf("Failed to count users: %v", err)
		return
	}
	logger.Get().Infof("Total users in the system: %d", count)
}
