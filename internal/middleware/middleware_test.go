package middleware

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tailortalk/config"
	pkgLog "tailortalk/pkg/log"
	"tailortalk/pkg/metrics"
)

func newEngine(mw Middleware, handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	_ = r.SetTrustedProxies(nil)
	r.Use(handlers...)
	r.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, pkgLog.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/boom", func(c *gin.Context) { panic("boom") })
	return r
}

func get(r http.Handler, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req.RemoteAddr = "10.0.0.1:5555"
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequestID(t *testing.T) {
	mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{}, nil)
	r := newEngine(mw, mw.RequestID())

	rec := get(r, "/ping", map[string]string{RequestIDHeader: "req-42"})
	assert.Equal(t, "req-42", rec.Body.String())
	assert.Equal(t, "req-42", rec.Header().Get(RequestIDHeader))

	rec = get(r, "/ping", nil)
	generated := rec.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Equal(t, generated, rec.Body.String())
}

func TestRateLimit(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{Enabled: false, RequestsPerMin: 1}, nil)
		r := newEngine(mw, mw.RateLimit())
		for i := 0; i < 20; i++ {
			require.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
		}
	})

	t.Run("per client burst", func(t *testing.T) {
		mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{Enabled: true, RequestsPerMin: 60}, nil)
		r := newEngine(mw, mw.RateLimit())

		for i := 0; i < 6; i++ {
			require.Equal(t, http.StatusOK, get(r, "/ping", nil).Code, "request %d", i)
		}
		assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", nil).Code)

		// forwarding headers from an untrusted peer do not open a new bucket
		for _, spoof := range []string{"203.0.113.9", "203.0.113.10"} {
			rec := get(r, "/ping", map[string]string{"X-Forwarded-For": spoof, "X-Real-IP": spoof})
			assert.Equal(t, http.StatusTooManyRequests, rec.Code, spoof)
		}
	})

	t.Run("trusted proxy forwards client ip", func(t *testing.T) {
		mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{Enabled: true, RequestsPerMin: 10}, nil)
		r := newEngine(mw, mw.RateLimit())
		require.NoError(t, r.SetTrustedProxies([]string{"10.0.0.0/8"}))

		first := map[string]string{"X-Forwarded-For": "203.0.113.9"}
		require.Equal(t, http.StatusOK, get(r, "/ping", first).Code)
		assert.Equal(t, http.StatusTooManyRequests, get(r, "/ping", first).Code)

		second := map[string]string{"X-Forwarded-For": "203.0.113.10"}
		assert.Equal(t, http.StatusOK, get(r, "/ping", second).Code)
	})
}

func TestRateLimiterConcurrentFirstUse(t *testing.T) {
	rl := newRateLimiter(10) // burst 1

	var (
		wg      sync.WaitGroup
		allowed atomic.Int32
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if rl.Allow("198.51.100.1") {
				allowed.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), allowed.Load())
	assert.Equal(t, 1, rl.limiters.Len())
}

func TestCORS(t *testing.T) {
	t.Run("configured origin", func(t *testing.T) {
		mw := New(pkgLog.NewNop(), config.CORSConfig{AllowOrigins: []string{"https://app.example.com"}}, config.RateLimitConfig{}, nil)
		r := newEngine(mw, mw.CORS())

		rec := get(r, "/ping", map[string]string{"Origin": "https://app.example.com"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "https://app.example.com", rec.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("wildcard", func(t *testing.T) {
		mw := New(pkgLog.NewNop(), config.CORSConfig{AllowOrigins: []string{"*"}}, config.RateLimitConfig{}, nil)
		r := newEngine(mw, mw.CORS())

		rec := get(r, "/ping", map[string]string{"Origin": "https://anywhere.test"})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestLoggerRecordsMetrics(t *testing.T) {
	m := metrics.New()
	mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{}, m)
	r := newEngine(mw, mw.Logger())

	require.Equal(t, http.StatusOK, get(r, "/ping", nil).Code)
	require.Equal(t, http.StatusNotFound, get(r, "/missing", nil).Code)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `route="/ping"`)
	assert.Contains(t, rec.Body.String(), `route="unmatched"`)
}

func TestRecovery(t *testing.T) {
	mw := New(pkgLog.NewNop(), config.CORSConfig{}, config.RateLimitConfig{}, nil)
	r := newEngine(mw, mw.Recovery())

	rec := get(r, "/boom", nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
