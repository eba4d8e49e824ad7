package monitoring_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/epeers/marketwatch/internal/models"
	"github.com/epeers/marketwatch/internal/monitoring"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Recorder(t *testing.T) {
	m := monitoring.NewMetrics()
	m.RecordFetch("yahoo", "ok")
	m.RecordFetch("yahoo", "ok")
	m.RecordFetch("cache", "hit")
	m.RecordRefresh(150*time.Millisecond, map[models.WarningCode]int{
		models.WarnFetchFailed: 2,
		models.WarnMissingData: 1,
	})

	expected := `
# HELP marketwatch_fetch_total Price series lookups by source and outcome
# TYPE marketwatch_fetch_total counter
marketwatch_fetch_total{source="cache",status="hit"} 1
marketwatch_fetch_total{source="yahoo",status="ok"} 2
# HELP marketwatch_warnings_total Warnings attached to dashboard refreshes
# TYPE marketwatch_warnings_total counter
marketwatch_warnings_total{code="W2001"} 1
marketwatch_warnings_total{code="W2003"} 2
`
	err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "marketwatch_fetch_total", "marketwatch_warnings_total")
	assert.NoError(t, err)
}

func TestMetrics_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := monitoring.NewMetrics()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	router.GET("/metrics", gin.WrapH(m.Handler()))

	for i := 0; i < 3; i++ {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))
	}
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/nope", nil))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)

	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	text := string(body)
	assert.Contains(t, text, `marketwatch_http_requests_total{endpoint="/health",method="GET",status="200"} 3`)
	assert.Contains(t, text, `marketwatch_http_requests_total{endpoint="unmatched",method="GET",status="404"} 1`)
	assert.Contains(t, text, "go_goroutines")
}

func TestMetrics_IndependentRegistries(t *testing.T) {
	a := monitoring.NewMetrics()
	b := monitoring.NewMetrics()
	a.RecordFetch("yahoo", "error")

	count, err := testutil.GatherAndCount(b.Registry(), "marketwatch_fetch_total")
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
