package reconcile

import (
	"context"
	"time"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
)

// Observer receives pass lifecycle events. parentID is the identity the pass
// was invoked with.
type Observer interface {
	Planned(ctx context.Context, collection string, parentID any, summary Summary)
	Finished(ctx context.Context, collection string, parentID any, state State, elapsed time.Duration, err error)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) Planned(context.Context, string, any, Summary) {}
func (NopObserver) Finished(context.Context, string, any, State, time.Duration, error) {}

// ParentMutator applies scalar changes to the loaded parent. next is the child
// collection as it will be after the pass, for derived totals.
type ParentMutator[P any, T any] func(parent *P, next []T) error

// Reconciler runs reconciliation passes against one Store.
type Reconciler[ID any, P any, T any, K comparable] struct {
	store    Store[ID, P, T]
	observer Observer
	now      func() time.Time
}

// Option configures a Reconciler.
type Option func(*options)

type options struct {
	observer Observer
}

// WithObserver registers an observer for pass events.
func WithObserver(o Observer) Option {
	return func(opts *options) {
		if o != nil {
			opts.observer = o
		}
	}
}

// New creates a Reconciler over store.
func New[ID any, P any, T any, K comparable](store Store[ID, P, T], opts ...Option) *Reconciler[ID, P, T, K] {
	o := options{observer: NopObserver{}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Reconciler[ID, P, T, K]{
		store:    store,
		observer: o.observer,
		now:      time.Now,
	}
}

// Reconcile loads the parent identified by id, applies mutate to its scalar
// fields, brings its children in line with desired and returns the reloaded
// aggregate.
//
// A failure while reloading after commit is returned as an error even though
// the pass itself is durable.
//
// A nil desired leaves the children untouched. An empty, non-nil desired
// deletes them all.
func (r *Reconciler[ID, P, T, K]) Reconcile(
	ctx context.Context,
	id ID,
	coll Collection[T, K],
	mutate ParentMutator[P, T],
	desired []T,
) (P, []T, error) {
	var zero P
	start := r.now()
	pass := NewPass(coll.name())
	finish := func(err error) {
		r.observer.Finished(ctx, pass.Collection, id, pass.State(), r.now().Sub(start), err)
	}

	parent, existing, err := r.store.Load(ctx, id)
	if err != nil {
		err = loadError(err)
		finish(err)
		return zero, nil, err
	}

	plan, err := r.plan(coll, existing, desired)
	if err != nil {
		finish(err)
		return zero, nil, err
	}
	if mutate != nil {
		if err := mutate(&parent, plan.Result()); err != nil {
			err = mutateError(err)
			finish(err)
			return zero, nil, err
		}
	}
	_ = pass.Advance(StatePlanned)
	r.observer.Planned(ctx, pass.Collection, id, plan.Summary())

	_ = pass.Advance(StateExecuting)
	err = r.store.InTx(ctx, func(tx Tx[P, T]) error {
		return Execute(ctx, tx, parent, plan)
	})
	if err != nil {
		_ = pass.Advance(StateRolledBack)
		err = classify(err)
		finish(err)
		return zero, nil, err
	}
	_ = pass.Advance(StateCommitted)
	finish(nil)

	parent, children, err := r.store.Load(ctx, id)
	if err != nil {
		return zero, nil, reloadError(err)
	}
	return parent, children, nil
}

// Plan loads the current aggregate and returns the plan desired would produce
// without executing it.
func (r *Reconciler[ID, P, T, K]) Plan(ctx context.Context, id ID, coll Collection[T, K], desired []T) (Plan[T], error) {
	_, existing, err := r.store.Load(ctx, id)
	if err != nil {
		return Plan[T]{}, loadError(err)
	}
	return r.plan(coll, existing, desired)
}

func (r *Reconciler[ID, P, T, K]) plan(coll Collection[T, K], existing, desired []T) (Plan[T], error) {
	if desired == nil {
		return Plan[T]{Kept: existing}, nil
	}
	return Compute(coll, existing, desired)
}

func loadError(err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	return shared.NewTransactionFailure("failed to load aggregate", err)
}

// reloadError keeps coded errors, such as NOT_FOUND after a concurrent
// delete, and marks anything else as a failure that followed a commit.
func reloadError(err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	return shared.NewTransactionFailure("changes committed but the aggregate could not be reloaded", err)
}

func mutateError(err error) error {
	if shared.CodeOf(err) != "" {
		return err
	}
	return shared.WrapDomainError(shared.CodeValidation, err.Error(), err)
}
