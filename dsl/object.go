package dsl

import (
	"context"
	"fmt"
	"strings"

	"github.com/reoring/orderform"
	js "github.com/reoring/orderform/jsonschema"
)

type objectField struct {
	name string
	ad   AnyAdapter
}

// ObjectBuilder declares an object schema or, once Discriminator is set, a
// discriminated union of object schemas.
type ObjectBuilder struct {
	fields        []objectField
	required      map[string]struct{}
	discriminator string
	variants      []variant
}

// Object creates a new object builder. Unknown keys are dropped from the
// parsed value.
func Object() *ObjectBuilder {
	return &ObjectBuilder{required: map[string]struct{}{}}
}

// Field registers a field with its adapter. Declaration order is the order in
// which fields are validated and errors are reported.
func (b *ObjectBuilder) Field(name string, ad AnyAdapter) *ObjectBuilder {
	for i := range b.fields {
		if b.fields[i].name == name {
			b.fields[i].ad = ad
			return b
		}
	}
	b.fields = append(b.fields, objectField{name: name, ad: ad})
	return b
}

// Require marks one or more fields as required.
func (b *ObjectBuilder) Require(names ...string) *ObjectBuilder {
	for _, n := range names {
		b.required[n] = struct{}{}
	}
	return b
}

// Discriminator turns the builder into a union keyed by the named property.
func (b *ObjectBuilder) Discriminator(name string) *ObjectBuilder {
	b.discriminator = name
	return b
}

// OneOf registers the union variants.
func (b *ObjectBuilder) OneOf(vs ...variant) *ObjectBuilder {
	b.variants = append(b.variants, vs...)
	return b
}

// Union is shorthand for Object().Discriminator(discriminator).OneOf(vs...).
func Union(discriminator string, vs ...variant) *ObjectBuilder {
	return Object().Discriminator(discriminator).OneOf(vs...)
}

// Build validates the declaration and returns the schema.
func (b *ObjectBuilder) Build() (orderform.Schema[map[string]any], error) {
	if b.discriminator != "" {
		if len(b.variants) == 0 {
			return nil, fmt.Errorf("dsl: discriminator %q without variants", b.discriminator)
		}
		u := &unionSchema{discriminator: b.discriminator, mapping: map[string]orderform.Schema[map[string]any]{}}
		for _, v := range b.variants {
			if v.tag == "" || v.schema == nil {
				return nil, fmt.Errorf("dsl: invalid variant %q", v.tag)
			}
			if _, dup := u.mapping[v.tag]; dup {
				return nil, fmt.Errorf("dsl: duplicate variant %q", v.tag)
			}
			u.mapping[v.tag] = v.schema
			u.tags = append(u.tags, v.tag)
		}
		return u, nil
	}
	declared := map[string]struct{}{}
	for _, f := range b.fields {
		declared[f.name] = struct{}{}
	}
	for n := range b.required {
		if _, ok := declared[n]; !ok {
			return nil, fmt.Errorf("dsl: required field %q is not declared", n)
		}
	}
	req := make(map[string]struct{}, len(b.required))
	for n := range b.required {
		req[n] = struct{}{}
	}
	return &objectSchema{fields: append([]objectField(nil), b.fields...), required: req}, nil
}

// MustBuild is Build that panics on a declaration error.
func (b *ObjectBuilder) MustBuild() orderform.Schema[map[string]any] {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

type objectSchema struct {
	fields   []objectField
	required map[string]struct{}
}

func (o *objectSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidType, Message: orderform.Message(orderform.CodeInvalidType), Hint: "expected object"}}
	}
	out := make(map[string]any, len(o.fields))
	var errs orderform.FieldErrors
	for _, f := range o.fields {
		at := orderform.Root().Field(f.name)
		raw, present := m[f.name]
		if !present || raw == nil {
			if _, req := o.required[f.name]; req {
				errs = append(errs, at.Error(orderform.CodeRequired, ""))
			}
			continue
		}
		pv, err := f.ad.parse(ctx, raw)
		if err != nil {
			if fe, ok := orderform.AsFieldErrors(err); ok {
				errs = append(errs, fe.Rebase(at.Pointer())...)
			} else {
				errs = append(errs, at.Error(orderform.CodeParseError, err.Error()))
			}
			continue
		}
		out[f.name] = pv
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return out, nil
}

func (o *objectSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	_, err := o.Parse(ctx, v)
	return err
}

func (o *objectSchema) JSONSchema() (*js.Schema, error) {
	s := &js.Schema{Type: "object", Properties: map[string]*js.Schema{}, AdditionalProperties: true}
	for _, f := range o.fields {
		if f.ad.jsonSchema == nil {
			s.Properties[f.name] = &js.Schema{}
			continue
		}
		fs, err := f.ad.jsonSchema()
		if err != nil {
			return nil, err
		}
		s.Properties[f.name] = fs
		if _, req := o.required[f.name]; req {
			s.Required = append(s.Required, f.name)
		}
	}
	return s, nil
}

// variant pairs a discriminator tag with its object schema.
type variant struct {
	tag    string
	schema orderform.Schema[map[string]any]
}

// Variant declares one branch of a discriminated union.
func Variant(tag string, s orderform.Schema[map[string]any]) variant {
	return variant{tag: tag, schema: s}
}

// unionSchema is a discriminated union schema over map[string]any objects.
type unionSchema struct {
	discriminator string
	mapping       map[string]orderform.Schema[map[string]any]
	tags          []string
}

// pick selects the variant schema from the tag; it never falls back to
// another variant.
func (u *unionSchema) pick(m map[string]any) (orderform.Schema[map[string]any], error) {
	at := orderform.Root().Field(u.discriminator)
	hint := "expected one of: " + strings.Join(u.tags, ", ")
	dv, present := m[u.discriminator]
	if !present || dv == nil || dv == "" {
		fe := at.Error(orderform.CodeDiscriminatorMissing, "")
		fe.Hint = hint
		return nil, orderform.FieldErrors{fe}
	}
	tag, _ := dv.(string)
	s, ok := u.mapping[tag]
	if !ok {
		fe := at.Error(orderform.CodeDiscriminatorUnknown, "", "got", fmt.Sprint(dv))
		fe.Hint = hint
		return nil, orderform.FieldErrors{fe}
	}
	return s, nil
}

func (u *unionSchema) Parse(ctx context.Context, v any) (map[string]any, error) {
	m, ok := v.(map[string]any)
	if !ok {
		return nil, orderform.FieldErrors{{Path: "/", Code: orderform.CodeInvalidType, Message: orderform.Message(orderform.CodeInvalidType), Hint: "expected object"}}
	}
	s, err := u.pick(m)
	if err != nil {
		return nil, err
	}
	return s.Parse(ctx, m)
}

func (u *unionSchema) ValidateValue(ctx context.Context, v map[string]any) error {
	s, err := u.pick(v)
	if err != nil {
		return err
	}
	return s.ValidateValue(ctx, v)
}

func (u *unionSchema) JSONSchema() (*js.Schema, error) {
	out := &js.Schema{
		OneOf:         make([]*js.Schema, 0, len(u.tags)),
		Discriminator: &js.Discriminator{PropertyName: u.discriminator},
	}
	for _, tag := range u.tags {
		vs, err := u.mapping[tag].JSONSchema()
		if err != nil {
			return nil, err
		}
		out.OneOf = append(out.OneOf, vs)
	}
	return out, nil
}
