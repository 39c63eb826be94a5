// Package dsl provides a small type-safe schema DSL for orderform.
//
// Overview
//   - Builder API: declare object semantics with Object()/Field()/Require()/MustBuild().
//   - Discriminated unions: Union(tag, Variant(...), ...), shorthand for
//     Object().Discriminator(tag).OneOf(...).
//   - Primitives/Array: String() with NonEmpty/Email/Digits rules, Literal(v), Array(elem).
//   - SchemaOf[T](s): adapter from Schema[T] to AnyAdapter (to pass into Field).
//
// Error model
//   - Every schema returns orderform.FieldErrors with JSON Pointer paths relative to
//     the value it was given; objects and arrays rebase child paths (/phoneNumbers/0).
//   - Objects validate fields in declaration order and collect every error.
//   - Unions select exactly one variant by tag; there is no fallback between variants.
//
// Example
//
//	email := g.Object().
//	    Field("sendType", g.SchemaOf(g.Literal("email"))).
//	    Field("email", g.SchemaOf[string](g.String().NonEmpty().Email())).
//	    Require("sendType", "email").
//	    MustBuild()
//
//	u := g.Object().
//	    Discriminator("sendType").
//	    OneOf(g.Variant("email", email)).
//	    MustBuild()
//	_, err := u.Parse(ctx, map[string]any{"sendType": "fax"})
//	_ = err // discriminator_unknown at /sendType
package dsl
