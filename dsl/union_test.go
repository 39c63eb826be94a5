package dsl_test

import (
	"context"
	"testing"

	"github.com/reoring/orderform"
	g "github.com/reoring/orderform/dsl"
)

func cardAndBank(t *testing.T) orderform.Schema[map[string]any] {
	t.Helper()
	card, err := g.Object().
		Field("type", g.SchemaOf(g.Literal("card"))).
		Field("number", g.SchemaOf[string](g.String().NonEmpty())).
		Require("type", "number").
		Build()
	if err != nil {
		t.Fatalf("card: %v", err)
	}
	bank, err := g.Object().
		Field("type", g.SchemaOf(g.Literal("bank"))).
		Field("iban", g.SchemaOf[string](g.String().NonEmpty())).
		Require("type", "iban").
		Build()
	if err != nil {
		t.Fatalf("bank: %v", err)
	}
	return g.Object().
		Discriminator("type").
		OneOf(
			g.Variant("card", card),
			g.Variant("bank", bank),
		).
		MustBuild()
}

func TestUnion_Discriminator_HappyPath(t *testing.T) {
	ctx := context.Background()
	u := cardAndBank(t)

	v, err := u.Parse(ctx, map[string]any{"type": "card", "number": "4111111111111111", "iban": "ignored"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v["number"] != "4111111111111111" {
		t.Fatalf("unexpected value: %#v", v)
	}
	if _, leaked := v["iban"]; leaked {
		t.Fatalf("fields of another variant must be dropped: %#v", v)
	}

	v2, err := u.Parse(ctx, map[string]any{"type": "bank", "iban": "DE89 3704 0044 0532 0130 00"})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if v2["iban"] == nil {
		t.Fatalf("iban missing: %#v", v2)
	}
}

func TestUnion_Discriminator_Missing(t *testing.T) {
	u := cardAndBank(t)

	_, err := u.Parse(context.Background(), map[string]any{"number": "x"})
	fe, ok := orderform.AsFieldErrors(err)
	if !ok || len(fe) != 1 || fe[0].Code != orderform.CodeDiscriminatorMissing || fe[0].Path != "/type" {
		t.Fatalf("expected discriminator_missing at /type, got: %v", err)
	}
}

func TestUnion_Discriminator_Unknown(t *testing.T) {
	u := cardAndBank(t)

	for _, tag := range []any{"legacy", 42, true} {
		_, err := u.Parse(context.Background(), map[string]any{"type": tag, "number": "x"})
		fe, ok := orderform.AsFieldErrors(err)
		if !ok || len(fe) != 1 || fe[0].Code != orderform.CodeDiscriminatorUnknown {
			t.Fatalf("tag %v: expected discriminator_unknown, got: %v", tag, err)
		}
		if fe[0].Hint != "expected one of: card, bank" {
			t.Fatalf("unexpected hint: %q", fe[0].Hint)
		}
	}
}

func TestUnion_NoFallbackBetweenVariants(t *testing.T) {
	u := cardAndBank(t)

	// Valid as a bank, but tagged as card.
	_, err := u.Parse(context.Background(), map[string]any{"type": "card", "iban": "DE89"})
	fe, ok := orderform.AsFieldErrors(err)
	if !ok || len(fe) != 1 || fe[0].Path != "/number" || fe[0].Code != orderform.CodeRequired {
		t.Fatalf("expected required at /number, got: %v", err)
	}
}

func TestUnion_JSONSchema_OneOf(t *testing.T) {
	u := cardAndBank(t)

	js, err := u.JSONSchema()
	if err != nil {
		t.Fatalf("jsonschema err: %v", err)
	}
	if len(js.OneOf) != 2 {
		t.Fatalf("expected oneOf with 2 variants, got: %#v", js)
	}
	if js.Discriminator == nil || js.Discriminator.PropertyName != "type" {
		t.Fatalf("expected discriminator property, got: %#v", js.Discriminator)
	}
	if js.OneOf[0].Properties["type"].Const != "card" {
		t.Fatalf("variants must keep declaration order: %#v", js.OneOf[0].Properties["type"])
	}
}

func TestBuild_RejectsBadDeclarations(t *testing.T) {
	if _, err := g.Object().Field("a", g.SchemaOf[string](g.String())).Require("b").Build(); err == nil {
		t.Fatalf("expected error for undeclared required field")
	}
	if _, err := g.Object().Discriminator("type").Build(); err == nil {
		t.Fatalf("expected error for union without variants")
	}
	obj := g.Object().Field("a", g.SchemaOf[string](g.String())).MustBuild()
	if _, err := g.Object().Discriminator("t").OneOf(g.Variant("x", obj), g.Variant("x", obj)).Build(); err == nil {
		t.Fatalf("expected error for duplicate variant")
	}
}
