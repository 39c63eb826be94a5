package dsl

import (
	"context"
	"strconv"

	"github.com/reoring/orderform"
	js "github.com/reoring/orderform/jsonschema"
)

// ArrayBuilder exposes chaining methods for array schemas while implementing Schema[[]E].
type ArrayBuilder[E any] interface {
	orderform.Schema[[]E]
	Min(n int) ArrayBuilder[E]
	Max(n int) ArrayBuilder[E]
	// Message overrides the message reported for an array-level code.
	Message(code, msg string) ArrayBuilder[E]
}

// Array returns an array schema with the given element schema.
func Array[E any](elem orderform.Schema[E]) ArrayBuilder[E] {
	return &ArraySchema[E]{elem: elem, minLen: -1, maxLen: -1}
}

// ArrayOf adapts Array[E] to AnyAdapter for use in object builders.
// Example: Field("phoneNumbers", d.ArrayOf[string](d.String().Digits(10)))
func ArrayOf[E any](elem orderform.Schema[E]) AnyAdapter {
	return SchemaOf[[]E](Array[E](elem))
}

type ArraySchema[E any] struct {
	elem     orderform.Schema[E]
	minLen   int
	maxLen   int
	messages map[string]string
}

// Min sets the minimum length.
func (a *ArraySchema[E]) Min(n int) ArrayBuilder[E] { a.minLen = n; return a }

// Max sets the maximum length.
func (a *ArraySchema[E]) Max(n int) ArrayBuilder[E] { a.maxLen = n; return a }

func (a *ArraySchema[E]) Message(code, msg string) ArrayBuilder[E] {
	if a.messages == nil {
		a.messages = map[string]string{}
	}
	a.messages[code] = msg
	return a
}

func (a *ArraySchema[E]) msg(code string) string {
	if m, ok := a.messages[code]; ok {
		return m
	}
	return orderform.Message(code)
}

// Parse accepts []E or []any. Length errors are reported first at "/", then
// every failing element at "/<index>".
func (a *ArraySchema[E]) Parse(ctx context.Context, v any) ([]E, error) {
	switch src := v.(type) {
	case []E:
		if err := a.ValidateValue(ctx, src); err != nil {
			return nil, err
		}
		return append([]E(nil), src...), nil
	case []any:
		errs := a.lengthErrors(len(src))
		res := make([]E, 0, len(src))
		for i := range src {
			ev, err := a.elem.Parse(ctx, src[i])
			if err != nil {
				errs = append(errs, elementErrors(i, err)...)
				continue
			}
			res = append(res, ev)
		}
		if len(errs) > 0 {
			return nil, errs
		}
		return res, nil
	default:
		return nil, orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidType, Message: a.msg(orderform.CodeInvalidType), Hint: "expected array"}}
	}
}

func (a *ArraySchema[E]) ValidateValue(ctx context.Context, v []E) error {
	errs := a.lengthErrors(len(v))
	for i := range v {
		if err := a.elem.ValidateValue(ctx, v[i]); err != nil {
			errs = append(errs, elementErrors(i, err)...)
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func (a *ArraySchema[E]) lengthErrors(n int) orderform.FieldErrors {
	var errs orderform.FieldErrors
	if a.minLen >= 0 && n < a.minLen {
		errs = orderform.AppendFieldErrors(errs, orderform.Root().Error(orderform.CodeTooShort, a.msg(orderform.CodeTooShort), "min", a.minLen, "got", n))
	}
	if a.maxLen >= 0 && n > a.maxLen {
		errs = orderform.AppendFieldErrors(errs, orderform.Root().Error(orderform.CodeTooLong, a.msg(orderform.CodeTooLong), "max", a.maxLen, "got", n))
	}
	return errs
}

func elementErrors(i int, err error) orderform.FieldErrors {
	base := "/" + strconv.Itoa(i)
	if fe, ok := orderform.AsFieldErrors(err); ok {
		return fe.Rebase(base)
	}
	return orderform.FieldErrors{{Path: base, Code: orderform.CodeParseError, Message: err.Error()}}
}

func (a *ArraySchema[E]) JSONSchema() (*js.Schema, error) {
	es, err := a.elem.JSONSchema()
	if err != nil {
		return nil, err
	}
	s := &js.Schema{Type: "array", Items: es}
	if a.minLen >= 0 {
		s.MinItems = js.IntPtr(a.minLen)
	}
	if a.maxLen >= 0 {
		s.MaxItems = js.IntPtr(a.maxLen)
	}
	return s, nil
}
