package reconcile

import (
	"fmt"

	"github.com/blueselfcheckout/backend/internal/domain/shared"
)

// Pair is an existing child together with the incoming entry that matched it.
type Pair[T any] struct {
	Existing T
	Incoming T
}

// Match is the raw partition of existing and incoming children.
type Match[T any] struct {
	Pairs   []Pair[T]
	Inserts []T
	Deletes []T
}

// Update records a child before and after the field applier ran.
type Update[T any] struct {
	Before T
	After  T
}

// Plan is the set of child mutations for one reconciliation pass.
type Plan[T any] struct {
	Updates []Update[T]
	Inserts []T
	Deletes []T
	// Kept holds matched children the applier left unchanged.
	Kept []T
}

// Empty reports whether the plan mutates nothing.
func (p Plan[T]) Empty() bool {
	return len(p.Updates) == 0 && len(p.Inserts) == 0 && len(p.Deletes) == 0
}

// Result returns the collection as it will look once the plan is applied:
// kept and updated children first, then inserts in submission order.
func (p Plan[T]) Result() []T {
	out := make([]T, 0, len(p.Kept)+len(p.Updates)+len(p.Inserts))
	out = append(out, p.Kept...)
	for _, u := range p.Updates {
		out = append(out, u.After)
	}
	return append(out, p.Inserts...)
}

// Summary counts the mutations in a plan.
type Summary struct {
	Inserts int
	Updates int
	Deletes int
	Kept    int
}

// Summary returns mutation counts.
func (p Plan[T]) Summary() Summary {
	return Summary{
		Inserts: len(p.Inserts),
		Updates: len(p.Updates),
		Deletes: len(p.Deletes),
		Kept:    len(p.Kept),
	}
}

// MatchChildren partitions existing and incoming by key. Duplicate incoming
// keys resolve to the last occurrence. Sentinel keys never match.
func MatchChildren[T any, K comparable](c Collection[T, K], existing, incoming []T) Match[T] {
	last := make(map[K]int, len(incoming))
	for i, in := range incoming {
		k := c.Key(in)
		if !c.isSentinel(k) {
			last[k] = i
		}
	}

	byKey := make(map[K]T, len(existing))
	for _, ex := range existing {
		byKey[c.Key(ex)] = ex
	}

	var m Match[T]
	for i, in := range incoming {
		k := c.Key(in)
		if c.isSentinel(k) {
			m.Inserts = append(m.Inserts, in)
			continue
		}
		if last[k] != i {
			continue
		}
		if ex, ok := byKey[k]; ok {
			m.Pairs = append(m.Pairs, Pair[T]{Existing: ex, Incoming: in})
		} else {
			m.Inserts = append(m.Inserts, in)
		}
	}

	for _, ex := range existing {
		if _, ok := last[c.Key(ex)]; !ok {
			m.Deletes = append(m.Deletes, ex)
		}
	}
	return m
}

// Validate runs the collection-level checks that must pass before planning.
func Validate[T any, K comparable](c Collection[T, K], incoming []T) error {
	var details []string
	for i, in := range incoming {
		if c.Assigner == nil && c.isSentinel(c.Key(in)) {
			details = append(details, fmt.Sprintf("%s[%d]: key is required", c.name(), i))
			continue
		}
		if c.Validate == nil {
			continue
		}
		if err := c.Validate(in); err != nil {
			details = append(details, fmt.Sprintf("%s[%d]: %s", c.name(), i, err.Error()))
		}
	}
	if len(details) > 0 {
		return shared.NewValidationError(fmt.Sprintf("invalid %s", c.name()), details...)
	}
	return nil
}

// Compute validates incoming and builds the plan that turns existing into it.
//
// Surrogate keys are assigned from 1 + the largest key seen in either list,
// so a key deleted in this pass is never handed out again by the same pass.
func Compute[T any, K comparable](c Collection[T, K], existing, incoming []T) (Plan[T], error) {
	if err := Validate(c, incoming); err != nil {
		return Plan[T]{}, err
	}

	m := MatchChildren(c, existing, incoming)
	plan := Plan[T]{Deletes: m.Deletes}

	for _, p := range m.Pairs {
		after := p.Existing
		c.Apply(&after, p.Incoming)
		if c.equal(p.Existing, after) {
			plan.Kept = append(plan.Kept, p.Existing)
			continue
		}
		plan.Updates = append(plan.Updates, Update[T]{Before: p.Existing, After: after})
	}

	plan.Inserts = assign(c, existing, m.Inserts)
	if c.Prepare != nil {
		for i := range plan.Inserts {
			c.Prepare(&plan.Inserts[i])
		}
	}
	return plan, nil
}

// assign fills sentinel keys in place, keeping submission order.
func assign[T any, K comparable](c Collection[T, K], existing, inserts []T) []T {
	if c.Assigner == nil || len(inserts) == 0 {
		return inserts
	}

	taken := make([]K, 0, len(existing)+len(inserts))
	var pendingIdx []int
	var pending []T
	for _, ex := range existing {
		taken = append(taken, c.Key(ex))
	}
	for i, in := range inserts {
		k := c.Key(in)
		if c.isSentinel(k) {
			pendingIdx = append(pendingIdx, i)
			pending = append(pending, in)
			continue
		}
		taken = append(taken, k)
	}
	if len(pending) == 0 {
		return inserts
	}

	out := make([]T, len(inserts))
	copy(out, inserts)
	for j, child := range c.Assigner.AssignKeys(taken, pending) {
		out[pendingIdx[j]] = child
	}
	return out
}
