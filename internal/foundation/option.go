// Package foundation provides small building blocks shared across packages.
package foundation

import "fmt"

// Option represents a value that may or may not be present.
// It replaces the "field missing means absent" pattern with an explicit type:
// a sequence element without a successor carries None, not a nil pointer.
type Option[T any] struct {
	value   T
	present bool
}

// Some creates an Option holding a value.
func Some[T any](value T) Option[T] {
	return Option[T]{value: value, present: true}
}

// None creates an empty Option.
func None[T any]() Option[T] {
	return Option[T]{}
}

// IsSome reports whether the Option contains a value.
func (o Option[T]) IsSome() bool { return o.present }

// IsNone reports whether the Option is empty.
func (o Option[T]) IsNone() bool { return !o.present }

// Get returns the value and whether it is present.
func (o Option[T]) Get() (T, bool) { return o.value, o.present }

// Unwrap returns the value if present and panics otherwise.
// Callers must establish presence first (IsSome, or a boundary flag such as
// Sequence.Last).
func (o Option[T]) Unwrap() T {
	if !o.present {
		panic("called Unwrap on None option")
	}
	return o.value
}

// UnwrapOr returns the value if present, otherwise the fallback.
func (o Option[T]) UnwrapOr(fallback T) T {
	if o.present {
		return o.value
	}
	return fallback
}

// String provides a readable representation for logs and test failures.
func (o Option[T]) String() string {
	if o.present {
		return fmt.Sprintf("Some(%v)", o.value)
	}
	return "None"
}
