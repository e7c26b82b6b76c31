package telemetry

import (
	"context"
	"errors"
	"time"

	"github.com/blueselfcheckout/backend/internal/infrastructure/config"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DefaultSlowQueryThreshold applies when the config leaves it unset.
const DefaultSlowQueryThreshold = 200 * time.Millisecond

type contextKey string

const queryStartTimeKey contextKey = "otel_query_start_time"

// DBTracing adds otelgorm spans and slow query detection to a gorm.DB.
type DBTracing struct {
	enabled    bool
	logFullSQL bool
	slowThresh time.Duration
	dbSystem   string
	logger     *zap.Logger
}

// NewDBTracing builds the plugin from the telemetry config. dbSystem is the
// database name reported on spans ("postgresql", "sqlite").
func NewDBTracing(cfg config.TelemetryConfig, dbSystem string, logger *zap.Logger) *DBTracing {
	if logger == nil {
		logger = zap.NewNop()
	}
	thresh := cfg.DBSlowQueryThresh
	if thresh <= 0 {
		thresh = DefaultSlowQueryThreshold
	}
	return &DBTracing{
		enabled:    cfg.Enabled && cfg.DBTraceEnabled,
		logFullSQL: cfg.DBLogFullSQL,
		slowThresh: thresh,
		dbSystem:   dbSystem,
		logger:     logger.Named("db_tracing"),
	}
}

// Register installs otelgorm and the timing callbacks on db. It is a no-op
// when database tracing is disabled.
func (t *DBTracing) Register(db *gorm.DB) error {
	if !t.enabled {
		t.logger.Debug("Database tracing disabled, skipping otelgorm registration")
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(t.dbSystem)}
	if !t.logFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}
	if err := t.registerTimingCallbacks(db); err != nil {
		return err
	}

	t.logger.Info("Database tracing enabled",
		zap.Bool("log_full_sql", t.logFullSQL),
		zap.Duration("slow_query_threshold", t.slowThresh),
		zap.String("db_system", t.dbSystem),
	)
	return nil
}

func (t *DBTracing) registerTimingCallbacks(db *gorm.DB) error {
	cb := db.Callback()
	return errors.Join(
		cb.Create().Before("gorm:create").Register("pos_timing:before_create", markQueryStart),
		cb.Query().Before("gorm:query").Register("pos_timing:before_query", markQueryStart),
		cb.Update().Before("gorm:update").Register("pos_timing:before_update", markQueryStart),
		cb.Delete().Before("gorm:delete").Register("pos_timing:before_delete", markQueryStart),
		cb.Row().Before("gorm:row").Register("pos_timing:before_row", markQueryStart),
		cb.Raw().Before("gorm:raw").Register("pos_timing:before_raw", markQueryStart),

		cb.Create().After("gorm:create").Register("pos_timing:after_create", t.afterQuery),
		cb.Query().After("gorm:query").Register("pos_timing:after_query", t.afterQuery),
		cb.Update().After("gorm:update").Register("pos_timing:after_update", t.afterQuery),
		cb.Delete().After("gorm:delete").Register("pos_timing:after_delete", t.afterQuery),
		cb.Row().After("gorm:row").Register("pos_timing:after_row", t.afterQuery),
		cb.Raw().After("gorm:raw").Register("pos_timing:after_raw", t.afterQuery),
	)
}

func markQueryStart(db *gorm.DB) {
	if db.Statement.Context != nil {
		db.Statement.Context = context.WithValue(db.Statement.Context, queryStartTimeKey, time.Now())
	}
}

func (t *DBTracing) afterQuery(db *gorm.DB) {
	ctx := db.Statement.Context
	if ctx == nil {
		return
	}
	start, ok := ctx.Value(queryStartTimeKey).(time.Time)
	if !ok {
		return
	}
	elapsed := time.Since(start)

	span := trace.SpanFromContext(ctx)
	recording := span.IsRecording()
	if recording && db.Statement.Table != "" {
		span.SetAttributes(attribute.String("db.sql.table", db.Statement.Table))
	}
	if recording && db.Error != nil && !errors.Is(db.Error, gorm.ErrRecordNotFound) {
		RecordError(span, db.Error)
	}

	if elapsed <= t.slowThresh {
		return
	}
	if recording {
		span.SetAttributes(
			attribute.Bool("db.slow_query", true),
			attribute.Int64("db.query_duration_ms", elapsed.Milliseconds()),
		)
	}
	t.logger.Warn("Slow query",
		zap.String("table", db.Statement.Table),
		zap.Duration("elapsed", elapsed),
		zap.Duration("threshold", t.slowThresh),
		zap.Int64("rows", db.Statement.RowsAffected),
	)
}
