package helper

import (
	"fmt"
)

// TypedValueOf safely asserts a value to the expected type T.
// Returns an error if type assertion fails.
func TypedValueOf[T any](v any) (T, error) {
	val, ok := v.(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("unexpected type: %T", v)
	}
	return val, nil
}

// GetTypedValueOf safely asserts the result of a getter function to the expected type T.
// Returns an error if the getter or the type assertion fails.
func GetTypedValueOf[T any](getFn func() (any, error)) (T, error) {
	res, err := getFn()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("failed to get value: %w", err)
	}
	return TypedValueOf[T](res)
}

// MustTypedValue is the panic-on-failure variant of TypedValueOf.
// Use when failure should be fatal (e.g., when the table registry is
// guaranteed to hold an entry of the requested shape).
func MustTypedValue[T any](v any) T {
	val, err := TypedValueOf[T](v)
	if err != nil {
		panic(err)
	}
	return val
}
