// Package reconcile synchronises a parent's owned child collection against a
// desired-state list. Planning is pure; execution goes through a Store that
// runs the plan inside one transaction.
package reconcile

import (
	"reflect"
)

// KeyExtractor returns the identity a child is matched on.
type KeyExtractor[T any, K comparable] func(child T) K

// FieldApplier copies the declared mutable fields of incoming onto existing.
// Identity and ownership fields must be left alone.
type FieldApplier[T any] func(existing *T, incoming T)

// KeyAssigner fills keys for children submitted without one.
// The returned slice has the same length and order as pending, and every
// assigned key is distinct and greater than each key in taken.
type KeyAssigner[T any, K comparable] interface {
	AssignKeys(taken []K, pending []T) []T
}

// Collection describes one kind of owned child collection.
type Collection[T any, K comparable] struct {
	// Name identifies the collection in logs and metrics, e.g. "order_lines".
	Name string

	Key   KeyExtractor[T, K]
	Apply FieldApplier[T]

	// Assigner is nil for natural-key collections. A sentinel key is then a
	// validation error because nothing can generate one.
	Assigner KeyAssigner[T, K]

	// Sentinel reports whether a key means "unassigned". Defaults to the zero value.
	Sentinel func(key K) bool

	// Prepare normalises a child about to be inserted (ownership, computed fields).
	Prepare func(child *T)

	// Validate checks a single incoming child before planning.
	Validate func(child T) error

	// Equal decides whether an update is a no-op. Defaults to reflect.DeepEqual.
	Equal func(a, b T) bool
}

func (c Collection[T, K]) isSentinel(key K) bool {
	if c.Sentinel != nil {
		return c.Sentinel(key)
	}
	var zero K
	return key == zero
}

func (c Collection[T, K]) equal(a, b T) bool {
	if c.Equal != nil {
		return c.Equal(a, b)
	}
	return reflect.DeepEqual(a, b)
}

func (c Collection[T, K]) name() string {
	if c.Name == "" {
		return "children"
	}
	return c.Name
}
