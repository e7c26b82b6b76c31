package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func sqlFn(sql string, rows int64) func() (string, int64) {
	return func() (string, int64) { return sql, rows }
}

func TestGormLogger_Trace(t *testing.T) {
	newLogger := func(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
		core, logs := observer.New(zapcore.DebugLevel)
		return NewGormLogger(zap.New(core), level, 100*time.Millisecond), logs
	}

	t.Run("error is logged with request id", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Warn)
		ctx := WithRequestID(context.Background(), zap.NewNop(), "req-9")

		l.Trace(ctx, time.Now(), sqlFn("INSERT INTO order_lines", 0), errors.New("boom"))

		entries := logs.FilterMessage("SQL Error").All()
		require.Len(t, entries, 1)
		assert.Equal(t, "req-9", entries[0].ContextMap()["request_id"])
		assert.Equal(t, "INSERT INTO order_lines", entries[0].ContextMap()["sql"])
	})

	t.Run("record not found is not an error", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 0), gormlogger.ErrRecordNotFound)
		assert.Equal(t, 0, logs.Len())
	})

	t.Run("slow query is a warning", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Warn)
		l.Trace(context.Background(), time.Now().Add(-time.Second), sqlFn("SELECT * FROM products", 3), nil)
		assert.Equal(t, 1, logs.FilterMessage("Slow SQL").Len())
	})

	t.Run("info level logs every query", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Info)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), nil)
		assert.Equal(t, 1, logs.FilterMessage("SQL Query").Len())
	})

	t.Run("silent logs nothing", func(t *testing.T) {
		l, logs := newLogger(gormlogger.Silent)
		l.Trace(context.Background(), time.Now(), sqlFn("SELECT 1", 1), errors.New("boom"))
		assert.Equal(t, 0, logs.Len())
	})
}

func TestGormLogger_LogMode(t *testing.T) {
	l := NewGormLogger(zap.NewNop(), gormlogger.Warn, 0)
	quiet := l.LogMode(gormlogger.Silent).(*GormLogger)

	assert.Equal(t, gormlogger.Silent, quiet.logLevel)
	assert.Equal(t, gormlogger.Warn, l.logLevel)
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("info"))
}
