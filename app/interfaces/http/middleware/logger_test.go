package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"menlo.ai/creator-insights-gateway/app/utils/contextkeys"
)

func newLoggedEngine(out *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := logrus.New()
	logger.SetOutput(out)
	logger.SetFormatter(&logrus.JSONFormatter{})

	engine := gin.New()
	engine.Use(LoggerMiddleware(logger))
	engine.POST("/echo", func(c *gin.Context) {
		id, _ := c.Request.Context().Value(contextkeys.RequestId{}).(string)
		c.String(http.StatusOK, id)
	})
	engine.GET("/metrics", func(c *gin.Context) {
		c.String(http.StatusOK, "scraped")
	})
	return engine
}

func TestLoggerMiddlewareKeepsIncomingRequestID(t *testing.T) {
	var out bytes.Buffer
	engine := newLoggedEngine(&out)

	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewReader([]byte(`{"a":1}`)))
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)

	assert.Equal(t, "req-123", rec.Body.String())
	assert.Equal(t, "req-123", rec.Header().Get("X-Request-ID"))
	assert.Contains(t, out.String(), "req-123")
}

func TestLoggerMiddlewareGeneratesRequestID(t *testing.T) {
	var out bytes.Buffer
	engine := newLoggedEngine(&out)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/echo", nil))

	assert.NotEmpty(t, rec.Body.String())
	assert.Equal(t, rec.Body.String(), rec.Header().Get("X-Request-ID"))
}

func TestLoggerMiddlewareSkipsMetrics(t *testing.T) {
	var out bytes.Buffer
	engine := newLoggedEngine(&out)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, out.String())
}
