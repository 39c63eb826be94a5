package orderform

import (
	"context"

	js "github.com/reoring/orderform/jsonschema"
)

// Schema checks an unknown candidate value and produces a typed value.
type Schema[T any] interface {
	// Parse transforms an unknown input into T (TypeCheck -> rules). It returns
	// FieldErrors when validation fails.
	Parse(ctx context.Context, v any) (T, error)

	// ValidateValue verifies a value already typed as T without any conversion.
	ValidateValue(ctx context.Context, v T) error

	// JSONSchema projects the schema into a JSON Schema representation.
	JSONSchema() (*js.Schema, error)
}

// SafeParse parses v into T, returning (zero, false) on validation error.
func SafeParse[T any](ctx context.Context, s Schema[T], v any) (T, bool) {
	val, err := s.Parse(ctx, v)
	if err != nil {
		var zero T
		return zero, false
	}
	return val, true
}

// Is returns true if v conforms to the schema s.
func Is[T any](ctx context.Context, s Schema[T], v any) bool {
	_, err := s.Parse(ctx, v)
	return err == nil
}
