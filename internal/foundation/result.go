// Package foundation provides small generic result and option types used to make
// partial-failure paths explicit instead of relying on nil checks.
package foundation

import "fmt"

// Result represents an operation that either succeeded with value T or failed with error E.
type Result[T any, E error] struct {
	value T
	err   E
	isOk  bool
}

// Ok creates a successful Result with the given value.
func Ok[T any, E error](value T) Result[T, E] {
	return Result[T, E]{value: value, isOk: true}
}

// Err creates a failed Result with the given error.
func Err[T any, E error](err E) Result[T, E] {
	return Result[T, E]{err: err}
}

// IsOk returns true if the Result represents a successful operation.
func (r Result[T, E]) IsOk() bool { return r.isOk }

// IsErr returns true if the Result represents a failed operation.
func (r Result[T, E]) IsErr() bool { return !r.isOk }

// Unwrap returns the value if Ok, panics if Err.
func (r Result[T, E]) Unwrap() T {
	if !r.isOk {
		panic(fmt.Sprintf("called Unwrap on Err result: %v", r.err))
	}
	return r.value
}

// UnwrapErr returns the error if Err, panics if Ok.
func (r Result[T, E]) UnwrapErr() E {
	if r.isOk {
		panic("called UnwrapErr on Ok result")
	}
	return r.err
}

// ToTuple converts Result to the traditional Go (value, error) pattern.
func (r Result[T, E]) ToTuple() (T, error) {
	if r.isOk {
		return r.value, nil
	}
	var zero T
	return zero, r.err
}
