package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hirepath/payroll-api/internal/interfaces"
	"github.com/hirepath/payroll-api/internal/logger"
	"go.uber.org/zap"
)

// CommonServices holds shared dependencies used across handlers
type CommonServices struct {
	SalaryResolver interfaces.SalaryResolver
	HistoryService interfaces.HistoryService
	logger         *zap.Logger
}

// CommonServicesConfig contains all dependencies needed to create CommonServices
type CommonServicesConfig struct {
	SalaryResolver interfaces.SalaryResolver
	HistoryService interfaces.HistoryService
	Logger         *zap.Logger
}

// NewCommonServices creates a new instance of CommonServices with interface dependencies
func NewCommonServices(config CommonServicesConfig) *CommonServices {
	if config.Logger == nil {
		config.Logger = logger.Log
	}

	return &CommonServices{
		SalaryResolver: config.SalaryResolver,
		HistoryService: config.HistoryService,
		logger:         config.Logger,
	}
}

// GetLogger returns the logger
func (s *CommonServices) GetLogger() *zap.Logger {
	return s.logger
}

// ErrorResponse represents a standard error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// SuccessResponse represents a standard success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// sendError is a helper function that combines logging and error response.
// It logs the error with the given message and sends a JSON error response
// including the request correlation ID for debugging.
func sendError(c *gin.Context, statusCode int, message string, err error) {
	correlationID := ""
	if id, exists := c.Get("correlationID"); exists {
		correlationID, _ = id.(string)
	}

	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", correlationID),
	)

	response := struct {
		Error         string `json:"error"`
		CorrelationID string `json:"correlation_id,omitempty"`
	}{
		Error:         message,
		CorrelationID: correlationID,
	}

	c.JSON(statusCode, response)
}

// sendSuccess is a helper function that sends a success response
func sendSuccess(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, data)
}

// sendSuccessMessage is a helper function that sends a success message
func sendSuccessMessage(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, SuccessResponse{Message: message})
}

// sendList is a helper function that sends a list response
func sendList(c *gin.Context, items interface{}) {
	c.JSON(http.StatusOK, gin.H{
		"object": "list",
		"data":   items,
	})
}
