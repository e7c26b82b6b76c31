package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
	"github.com/blueselfcheckout/backend/internal/domain/shared/reconcile"
	"github.com/blueselfcheckout/backend/internal/infrastructure/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Pass outcomes reported on pos_reconcile_passes_total.
const (
	OutcomeCommitted  = "committed"
	OutcomeRolledBack = "rolled_back"
	OutcomeRejected   = "rejected"
)

// ReconcileMetrics records reconciliation passes as metrics, span events and
// log lines. It satisfies reconcile.Observer.
type ReconcileMetrics struct {
	passes   *Counter
	changes  *Counter
	duration *Histogram
}

var _ reconcile.Observer = (*ReconcileMetrics)(nil)

// NewReconcileMetrics creates the reconciliation instruments on meter.
func NewReconcileMetrics(meter metric.Meter) (*ReconcileMetrics, error) {
	passes, err := NewCounter(meter,
		"pos_reconcile_passes_total",
		"Reconciliation passes by collection and outcome",
		"{pass}",
	)
	if err != nil {
		return nil, err
	}
	changes, err := NewCounter(meter,
		"pos_reconcile_changes_total",
		"Child rows inserted, updated or deleted by reconciliation",
		"{row}",
	)
	if err != nil {
		return nil, err
	}
	duration, err := NewHistogram(meter, HistogramOpts{
		Name:        "pos_reconcile_duration_seconds",
		Description: "Wall time of a reconciliation pass",
		Unit:        "s",
		Boundaries:  ReconcileDurationBuckets,
	})
	if err != nil {
		return nil, err
	}
	return &ReconcileMetrics{passes: passes, changes: changes, duration: duration}, nil
}

// Planned records the mutation counts of a computed plan. The parent id goes
// to the span event and log line only, never to metric attributes.
func (m *ReconcileMetrics) Planned(ctx context.Context, collection string, parentID any, s reconcile.Summary) {
	coll := AttrCollection.String(collection)
	if s.Inserts > 0 {
		m.changes.Add(ctx, int64(s.Inserts), coll, AttrChange.String("insert"))
	}
	if s.Updates > 0 {
		m.changes.Add(ctx, int64(s.Updates), coll, AttrChange.String("update"))
	}
	if s.Deletes > 0 {
		m.changes.Add(ctx, int64(s.Deletes), coll, AttrChange.String("delete"))
	}

	trace.SpanFromContext(ctx).AddEvent("reconcile.planned", trace.WithAttributes(
		coll,
		attribute.String("parent_id", fmt.Sprint(parentID)),
		attribute.Int("inserts", s.Inserts),
		attribute.Int("updates", s.Updates),
		attribute.Int("deletes", s.Deletes),
		attribute.Int("kept", s.Kept),
	))
	logger.L(ctx).Debug("Reconciliation planned",
		zap.String("collection", collection),
		zap.Any("parent_id", parentID),
		zap.Int("inserts", s.Inserts),
		zap.Int("updates", s.Updates),
		zap.Int("deletes", s.Deletes),
		zap.Int("kept", s.Kept),
	)
}

// Finished records the outcome and duration of a pass.
func (m *ReconcileMetrics) Finished(ctx context.Context, collection string, parentID any, state reconcile.State, elapsed time.Duration, err error) {
	outcome := Outcome(state, err)
	attrs := []attribute.KeyValue{AttrCollection.String(collection), AttrOutcome.String(outcome)}
	if err != nil {
		attrs = append(attrs, AttrErrorCode.String(shared.CodeOf(err)))
	}
	m.passes.Inc(ctx, attrs...)
	m.duration.RecordDuration(ctx, elapsed, attrs[:2]...)

	if err == nil {
		return
	}
	log := logger.L(ctx).With(
		zap.String("collection", collection),
		zap.Any("parent_id", parentID),
		zap.String("state", state.String()),
		zap.String("code", shared.CodeOf(err)),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
	if outcome == OutcomeRolledBack {
		log.Warn("Reconciliation rolled back")
		return
	}
	log.Info("Reconciliation rejected")
}

// Outcome classifies a finished pass.
func Outcome(state reconcile.State, err error) string {
	switch {
	case err == nil:
		return OutcomeCommitted
	case state == reconcile.StateRolledBack:
		return OutcomeRolledBack
	default:
		return OutcomeRejected
	}
}
