package logger

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARN":    zapcore.WarnLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestNew(t *testing.T) {
	t.Run("nil config builds an info logger", func(t *testing.T) {
		l, err := New(nil)
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		assert.False(t, l.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("file output", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "pos.log")
		l, err := New(&Config{Level: "debug", Format: "console", Output: path})
		require.NoError(t, err)
		l.Debug("hello")
		assert.NoError(t, Sync(l))
		assert.FileExists(t, path)
	})

	t.Run("unwritable file is an error", func(t *testing.T) {
		_, err := New(&Config{Output: filepath.Join(t.TempDir(), "missing", "pos.log")})
		assert.Error(t, err)
	})
}

func TestContext(t *testing.T) {
	t.Run("FromContext falls back to a nop logger", func(t *testing.T) {
		assert.NotNil(t, FromContext(context.Background()))
		assert.Empty(t, GetRequestID(context.Background()))
	})

	t.Run("WithRequestID tags the logger", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		ctx := WithRequestID(context.Background(), zap.New(core), "req-1")

		assert.Equal(t, "req-1", GetRequestID(ctx))
		L(ctx).Info("msg")

		require.Equal(t, 1, logs.Len())
		assert.Equal(t, "req-1", logs.All()[0].ContextMap()["request_id"])
	})

	t.Run("L adds trace ids of the active span", func(t *testing.T) {
		core, logs := observer.New(zapcore.InfoLevel)
		sc := trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{1},
			SpanID:     trace.SpanID{2},
			TraceFlags: trace.FlagsSampled,
		})
		ctx := trace.ContextWithSpanContext(WithContext(context.Background(), zap.New(core)), sc)

		L(ctx).Info("msg")

		fields := logs.All()[0].ContextMap()
		assert.Equal(t, sc.TraceID().String(), fields["trace_id"])
		assert.Equal(t, sc.SpanID().String(), fields["span_id"])
	})
}

func TestGinMiddleware(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := zap.New(core)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(RequestIDContextKey, "req-42")
		c.Next()
	})
	r.Use(GinMiddleware(l), Recovery(l))
	r.GET("/ok/:id", func(c *gin.Context) {
		L(c.Request.Context()).Info("inside handler")
		c.Status(http.StatusOK)
	})
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	t.Run("request logger reaches the handler", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ok/7", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		inner := logs.FilterMessage("inside handler").All()
		require.Len(t, inner, 1)
		assert.Equal(t, "req-42", inner[0].ContextMap()["request_id"])

		access := logs.FilterMessage("HTTP Request").All()
		require.NotEmpty(t, access)
		assert.Equal(t, "/ok/:id", access[len(access)-1].ContextMap()["route"])
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))
		entries := logs.FilterMessage("HTTP Request").FilterField(zap.Int("status", http.StatusNotFound)).All()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})

	t.Run("panic becomes a 500", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, 1, logs.FilterMessage("Panic recovered").Len())
	})
}
