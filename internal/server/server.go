package server

import (
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hirepath/payroll-api/internal/constants"
	"github.com/hirepath/payroll-api/internal/handlers"
	"github.com/hirepath/payroll-api/internal/logger"
	"github.com/hirepath/payroll-api/internal/middleware"
	"github.com/hirepath/payroll-api/internal/services"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Handler Definitions
var (
	calculationHandler *handlers.CalculationHandler
	historyHandler     *handlers.HistoryHandler
	healthHandler      *handlers.HealthHandler

	commonServices *handlers.CommonServices
)

// InitializeHandlers wires the calculation services and handlers from the
// environment. It must run before InitializeRoutes.
func InitializeHandlers() {
	// --- Determine and Validate Stage ---
	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = constants.StageLocal
		log.Printf("Warning: STAGE environment variable not set, defaulting to '%s'", stage)
	}
	if !constants.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, constants.StageProd, constants.StageDev, constants.StageLocal)
	}

	// --- Initialize Logger (AFTER stage validation) ---
	logger.InitLogger(stage)
	logger.Info("Initializing handlers for stage", zap.String("stage", stage))

	// --- Tax Table ---
	// The hardcoded table ships with the binary; TAX_TABLE_PATH substitutes
	// an alternate tax-year table without a rebuild.
	taxTable := services.DefaultTaxTable()
	if path := os.Getenv("TAX_TABLE_PATH"); path != "" {
		loaded, err := services.LoadTaxTable(path)
		if err != nil {
			logger.Fatal("Failed to load tax table", zap.String("path", path), zap.Error(err))
		}
		taxTable = loaded
		logger.Info("Loaded tax table from file", zap.String("path", path), zap.Int("year", taxTable.Year))
	}

	engine, err := services.NewDeductionEngine(taxTable)
	if err != nil {
		logger.Fatal("Failed to create deduction engine", zap.Error(err))
	}

	// --- History Capacity ---
	historyLimit := services.DefaultHistoryCapacity
	if limitStr := os.Getenv("HISTORY_LIMIT"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed < 1 {
			logger.Fatal("Invalid HISTORY_LIMIT environment variable", zap.String("value", limitStr))
		}
		historyLimit = parsed
	}

	resolver := services.NewSalaryResolver(engine)
	history := services.NewHistoryService(historyLimit)

	commonServices = handlers.NewCommonServices(handlers.CommonServicesConfig{
		SalaryResolver: resolver,
		HistoryService: history,
		Logger:         logger.Log,
	})

	calculationHandler = handlers.NewCalculationHandler(commonServices, taxTable)
	historyHandler = handlers.NewHistoryHandler(commonServices)
	healthHandler = handlers.NewHealthHandler()
}

// InitializeRoutes attaches middleware and the API routes to the router.
func InitializeRoutes(router *gin.Engine) {
	// Configure and apply CORS middleware
	router.Use(configureCORS())

	// Add correlation ID middleware for request tracing
	router.Use(middleware.CorrelationIDMiddleware())

	// Apply rate limiting middleware globally
	router.Use(middleware.DefaultRateLimiter.Middleware())

	// Add basic request logging
	router.Use(middleware.RequestLoggingMiddleware())

	// Add Swagger endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health for raw lambda url check
	router.GET("/:stage/health", healthHandler.Health)
	router.GET("/health", healthHandler.Health)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Public routes - the calculator widget is unauthenticated
		v1.POST("/calculations", calculationHandler.CalculateSalary)
		v1.GET("/calculations/tax-table", calculationHandler.GetTaxTable)

		history := v1.Group("/history")
		{
			history.GET("", historyHandler.ListHistory)
			history.GET("/export", historyHandler.ExportHistory)
			history.DELETE("", historyHandler.ClearHistory)
		}
	}
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()

	// Get allowed origins from environment variable
	originsEnv := os.Getenv("CORS_ALLOWED_ORIGINS")
	if originsEnv == "" {
		// Default to the local front-end dev server if not set
		corsConfig.AllowOrigins = []string{"http://localhost:3000"}
	} else {
		origins := strings.Split(originsEnv, ",")
		for i, origin := range origins {
			origins[i] = strings.TrimSpace(origin)
		}
		corsConfig.AllowOrigins = origins
	}

	corsConfig.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", middleware.CorrelationIDHeader}
	corsConfig.ExposeHeaders = []string{"Content-Disposition", middleware.CorrelationIDHeader}
	corsConfig.MaxAge = 12 * time.Hour

	return cors.New(corsConfig)
}
