package dsl

import (
	"context"
	"strconv"
	"unicode/utf8"

	"github.com/reoring/orderform"
	js "github.com/reoring/orderform/jsonschema"
)

// StringBuilder exposes chaining rules for string schemas while implementing
// Schema[string].
type StringBuilder interface {
	orderform.Schema[string]
	// NonEmpty rejects "" with code required.
	NonEmpty() StringBuilder
	// Email requires an email-shaped value (validator tag "email").
	Email() StringBuilder
	// Digits requires exactly n ASCII digits.
	Digits(n int) StringBuilder
	// Message overrides the message reported for code.
	Message(code, msg string) StringBuilder
}

// String returns a string schema without rules.
func String() StringBuilder { return &stringSchema{digits: -1} }

type stringSchema struct {
	nonEmpty bool
	email    bool
	digits   int
	messages map[string]string
}

func (s *stringSchema) NonEmpty() StringBuilder { s.nonEmpty = true; return s }
func (s *stringSchema) Email() StringBuilder    { s.email = true; return s }
func (s *stringSchema) Digits(n int) StringBuilder {
	s.digits = n
	return s
}

func (s *stringSchema) Message(code, msg string) StringBuilder {
	if s.messages == nil {
		s.messages = map[string]string{}
	}
	s.messages[code] = msg
	return s
}

func (s *stringSchema) msg(code string) string {
	if m, ok := s.messages[code]; ok {
		return m
	}
	return orderform.Message(code)
}

func (s *stringSchema) Parse(ctx context.Context, v any) (string, error) {
	str, ok := v.(string)
	if !ok {
		return "", orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidType, Message: s.msg(orderform.CodeInvalidType), Hint: "expected string"}}
	}
	if err := s.ValidateValue(ctx, str); err != nil {
		return "", err
	}
	return str, nil
}

// ValidateValue reports at most one error: the first failing rule in the
// order NonEmpty, Email, Digits.
func (s *stringSchema) ValidateValue(ctx context.Context, v string) error {
	root := orderform.Root()
	if s.nonEmpty && v == "" {
		return orderform.FieldErrors{root.Error(orderform.CodeRequired, s.msg(orderform.CodeRequired), "min", 1)}
	}
	if s.email && !checkVar(v, "email") {
		fe := root.Error(orderform.CodeInvalidFormat, s.msg(orderform.CodeInvalidFormat))
		fe.Hint = "email"
		return orderform.FieldErrors{fe}
	}
	if s.digits >= 0 {
		if !checkVar(v, "len="+strconv.Itoa(s.digits)) {
			code := orderform.CodeTooShort
			if utf8.RuneCountInString(v) > s.digits {
				code = orderform.CodeTooLong
			}
			return orderform.FieldErrors{root.Error(code, s.msg(code), "len", s.digits, "got", utf8.RuneCountInString(v))}
		}
		if !checkVar(v, "number") {
			fe := root.Error(orderform.CodePattern, s.msg(orderform.CodePattern))
			fe.Hint = "digits only"
			return orderform.FieldErrors{fe}
		}
	}
	return nil
}

func (s *stringSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{Type: "string"}
	if s.nonEmpty {
		out.MinLength = js.IntPtr(1)
	}
	if s.email {
		out.Format = "email"
	}
	if s.digits >= 0 {
		out.Pattern = "^[0-9]{" + strconv.Itoa(s.digits) + "}$"
	}
	return out, nil
}
