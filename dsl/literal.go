package dsl

import (
	"context"
	"fmt"

	"github.com/reoring/orderform"
	js "github.com/reoring/orderform/jsonschema"
)

// Literal accepts exactly one value.
func Literal[T comparable](want T) orderform.Schema[T] { return literalSchema[T]{want: want} }

type literalSchema[T comparable] struct{ want T }

func (l literalSchema[T]) Parse(ctx context.Context, v any) (T, error) {
	got, ok := v.(T)
	if !ok {
		var zero T
		return zero, orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidType, Message: orderform.Message(orderform.CodeInvalidType), Hint: fmt.Sprintf("expected %T", l.want)}}
	}
	if err := l.ValidateValue(ctx, got); err != nil {
		var zero T
		return zero, err
	}
	return got, nil
}

func (l literalSchema[T]) ValidateValue(ctx context.Context, v T) error {
	if v != l.want {
		return orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidLiteral, Message: orderform.Message(orderform.CodeInvalidLiteral), Hint: fmt.Sprintf("expected %q", fmt.Sprint(l.want))}}
	}
	return nil
}

func (l literalSchema[T]) JSONSchema() (*js.Schema, error) {
	return &js.Schema{Const: l.want}, nil
}
