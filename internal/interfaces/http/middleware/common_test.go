package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func serve(router *gin.Engine, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCORS(t *testing.T) {
	router := gin.New()
	router.Use(CORS())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	t.Run("empty whitelist sets no headers", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://kiosk.local"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight still answers 204", func(t *testing.T) {
		w := serve(router, http.MethodOptions, "/test", map[string]string{"Origin": "http://kiosk.local"})
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestCORSWithConfig(t *testing.T) {
	t.Run("specific origin", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSWithConfig(CORSConfig{
			AllowOrigins:     []string{"http://kiosk.local"},
			AllowMethods:     []string{"GET", "PUT"},
			AllowHeaders:     []string{"Content-Type"},
			AllowCredentials: true,
			MaxAge:           time.Hour,
		}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://kiosk.local"})
		assert.Equal(t, "http://kiosk.local", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
		assert.Equal(t, "GET, PUT", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "3600", w.Header().Get("Access-Control-Max-Age"))

		w = serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://evil.local"})
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("wildcard never allows credentials", func(t *testing.T) {
		router := gin.New()
		router.Use(CORSWithConfig(CORSConfig{AllowOrigins: []string{"*"}, AllowCredentials: true}))
		router.GET("/test", func(c *gin.Context) {
			c.String(http.StatusOK, "ok")
		})

		w := serve(router, http.MethodGet, "/test", map[string]string{"Origin": "http://anything.local"})
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Credentials"))
	})
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.Use(RequestID())
	router.GET("/test", func(c *gin.Context) {
		c.String(http.StatusOK, GetRequestID(c))
	})

	t.Run("generates a uuid", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", nil)
		id := w.Header().Get(RequestIDHeader)
		_, err := uuid.Parse(id)
		require.NoError(t, err)
		assert.Equal(t, id, w.Body.String())
	})

	t.Run("keeps the client id", func(t *testing.T) {
		w := serve(router, http.MethodGet, "/test", map[string]string{RequestIDHeader: "kiosk-7-0001"})
		assert.Equal(t, "kiosk-7-0001", w.Header().Get(RequestIDHeader))
		assert.Equal(t, "kiosk-7-0001", w.Body.String())
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		long := strings.Repeat("a", MaxRequestIDLength+1)
		w := serve(router, http.MethodGet, "/test", map[string]string{RequestIDHeader: long})
		assert.NotEqual(t, long, w.Header().Get(RequestIDHeader))
		assert.Len(t, w.Header().Get(RequestIDHeader), 36)
	})
}
