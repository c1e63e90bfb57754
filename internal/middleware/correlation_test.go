package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestCorrelationIDMiddleware_GeneratesID(t *testing.T) {
	router := gin.New()
	router.Use(CorrelationIDMiddleware())

	var seen string
	router.GET("/test", func(c *gin.Context) {
		seen = GetCorrelationID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	header := w.Header().Get(CorrelationIDHeader)
	require.NotEmpty(t, header)
	assert.Equal(t, header, seen)

	_, err := uuid.Parse(header)
	assert.NoError(t, err)
}

func TestCorrelationIDMiddleware_PropagatesExistingID(t *testing.T) {
	router := gin.New()
	router.Use(CorrelationIDMiddleware())

	var fromRequestContext string
	router.GET("/test", func(c *gin.Context) {
		fromRequestContext = CorrelationIDFromContext(c.Request.Context())
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(CorrelationIDHeader, "client-supplied-id")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, "client-supplied-id", w.Header().Get(CorrelationIDHeader))
	assert.Equal(t, "client-supplied-id", fromRequestContext)
}

func TestGetCorrelationID_MissingReturnsEmpty(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	assert.Equal(t, "", GetCorrelationID(c))
}
