package metrics

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func TestHTTPMetricsMiddleware(t *testing.T) {
	provider, err := NewProvider("piivault")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "piivault"))
	router.POST("/v1/tokens/retrieve", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodPost, "/v1/tokens/retrieve", nil)
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusOK, recorder.Code)

	output := scrapeMetrics(t, provider)
	assertMetricLine(t, output, "piivault_http_requests_total",
		`method="POST",path="/v1/tokens/retrieve",status_code="200"`, "1")
}

func TestHTTPMetricsMiddleware_UnmatchedRoute(t *testing.T) {
	provider, err := NewProvider("piivault")
	require.NoError(t, err)

	router := gin.New()
	router.Use(HTTPMetricsMiddleware(provider.MeterProvider(), "piivault"))

	recorder := httptest.NewRecorder()
	request := httptest.NewRequest(http.MethodGet, "/nope", nil)
	router.ServeHTTP(recorder, request)
	require.Equal(t, http.StatusNotFound, recorder.Code)

	output := scrapeMetrics(t, provider)
	assertMetricLine(t, output, "piivault_http_requests_total", `path="unknown"`, "1")
}

func TestSanitizePath(t *testing.T) {
	assert.Equal(t, "unknown", sanitizePath(""))
	assert.Equal(t, "/v1/tokens", sanitizePath("/v1/tokens"))
}
