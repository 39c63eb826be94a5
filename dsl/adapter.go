package dsl

import (
	"context"

	"github.com/reoring/orderform"
	js "github.com/reoring/orderform/jsonschema"
)

// AnyAdapter erases the type of a Schema so that objects can hold
// heterogeneous fields.
type AnyAdapter struct {
	parse      func(ctx context.Context, v any) (any, error)
	jsonSchema func() (*js.Schema, error)
}

// SchemaOf adapts a Schema[T] into an AnyAdapter.
func SchemaOf[T any](s orderform.Schema[T]) AnyAdapter {
	return AnyAdapter{
		parse: func(ctx context.Context, v any) (any, error) {
			return s.Parse(ctx, v)
		},
		jsonSchema: s.JSONSchema,
	}
}
