package order_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/orderform"
	"github.com/reoring/orderform/order"
)

func validate(t *testing.T, raw map[string]any) (orderform.Submission, orderform.FieldErrors) {
	t.Helper()
	sub, err := order.NewValidator().Validate(context.Background(), raw)
	if err == nil {
		return sub, nil
	}
	fe, ok := orderform.AsFieldErrors(err)
	if !ok {
		t.Fatalf("expected FieldErrors, got %T: %v", err, err)
	}
	return nil, fe
}

func TestValidate_NoneVariant(t *testing.T) {
	cases := []struct {
		name string
		raw  map[string]any
		ok   bool
	}{
		{"valid", map[string]any{"name": "A", "address": "B", "sendType": "no"}, true},
		{"other fields ignored", map[string]any{"name": "A", "address": "B", "sendType": "no", "email": "nope", "phoneNumbers": []any{"1"}}, true},
		{"empty name", map[string]any{"name": "", "address": "B", "sendType": "no"}, false},
		{"missing address", map[string]any{"name": "A", "sendType": "no"}, false},
		{"non-string name", map[string]any{"name": 1, "address": "B", "sendType": "no"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sub, fe := validate(t, tc.raw)
			if tc.ok != (fe == nil) {
				t.Fatalf("ok=%v, errors: %v", tc.ok, fe)
			}
			if tc.ok {
				if diff := cmp.Diff(orderform.NoneOrder{Name: "A", Address: "B"}, sub); diff != "" {
					t.Fatalf("submission mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}

func TestValidate_EmailVariant(t *testing.T) {
	base := func(email any) map[string]any {
		m := map[string]any{"name": "A", "address": "B", "sendType": "email"}
		if email != nil {
			m["email"] = email
		}
		return m
	}

	if _, fe := validate(t, base("a@example.com")); fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	for _, email := range []any{nil, "", "a@", "example.com", 5} {
		_, fe := validate(t, base(email))
		if len(fe.For("/email")) != 1 {
			t.Fatalf("email %v: expected one error at /email, got %v", email, fe)
		}
	}

	// Fails on email even when everything else is invalid too.
	_, fe := validate(t, map[string]any{"sendType": "email", "email": "bad"})
	if len(fe.For("/email")) != 1 || len(fe) != 3 {
		t.Fatalf("expected name, address and email errors, got %v", fe)
	}
}

func TestValidate_PhoneVariant(t *testing.T) {
	phone := func(numbers any) map[string]any {
		return map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": numbers}
	}

	if _, fe := validate(t, phone([]any{"5551234567", "5559876543"})); fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}

	_, fe := validate(t, phone([]any{}))
	if got := fe.For("/phoneNumbers"); len(got) != 1 || got[0].Code != orderform.CodeTooShort {
		t.Fatalf("empty list: %v", fe)
	}

	_, fe = validate(t, phone(nil))
	if got := fe.For("/phoneNumbers"); len(got) != 1 || got[0].Code != orderform.CodeRequired {
		t.Fatalf("missing list: %v", fe)
	}

	_, fe = validate(t, phone([]any{"5551234567", "55512345678", "555123456a"}))
	if len(fe) != 2 || fe[0].Path != "/phoneNumbers/1" || fe[1].Path != "/phoneNumbers/2" {
		t.Fatalf("bad entries: %v", fe)
	}
}

func TestValidate_PhoneScenarioSucceeds(t *testing.T) {
	raw := map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": []any{"5551234567"}}
	sub, fe := validate(t, raw)
	if fe != nil {
		t.Fatalf("unexpected errors: %v", fe)
	}
	want := map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": []string{"5551234567"}}
	if diff := cmp.Diff(want, orderform.Fields(sub)); diff != "" {
		t.Fatalf("payload mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_PhoneScenarioTooShort(t *testing.T) {
	raw := map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": []any{"555123"}}
	_, fe := validate(t, raw)
	if len(fe) != 1 {
		t.Fatalf("expected one error, got %v", fe)
	}
	got := fe[0]
	if got.Path != "/phoneNumbers/0" || got.Code != orderform.CodeTooShort || got.Message != order.PhoneLengthMessage {
		t.Fatalf("unexpected error: %#v", got)
	}
}

func TestValidate_UnknownSendType(t *testing.T) {
	for _, tag := range []any{"fax", "none", "Phone"} {
		_, fe := validate(t, map[string]any{"name": "A", "address": "B", "sendType": tag})
		if len(fe) != 1 || fe[0].Path != "/sendType" || fe[0].Code != orderform.CodeDiscriminatorUnknown {
			t.Fatalf("tag %v: %v", tag, fe)
		}
	}
	_, fe := validate(t, map[string]any{"name": "A", "address": "B"})
	if len(fe) != 1 || fe[0].Code != orderform.CodeDiscriminatorMissing {
		t.Fatalf("missing tag: %v", fe)
	}
}

func TestValidate_IsPure(t *testing.T) {
	raw := map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": []any{"5551234567"}, "email": "x"}
	v := order.NewValidator()
	first, err := v.Validate(context.Background(), raw)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	second, _ := v.Validate(context.Background(), raw)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Fatalf("validation is not deterministic:\n%s", diff)
	}
	if _, ok := raw["email"]; !ok {
		t.Fatalf("input must not be mutated")
	}
}

func TestSchema_JSONSchema(t *testing.T) {
	s, err := order.Schema().JSONSchema()
	if err != nil {
		t.Fatalf("jsonschema: %v", err)
	}
	if len(s.OneOf) != 3 {
		t.Fatalf("expected 3 variants, got %d", len(s.OneOf))
	}
	phone := s.OneOf[2].Properties["phoneNumbers"]
	if phone == nil || phone.Items == nil || phone.Items.Pattern != "^[0-9]{10}$" || *phone.MinItems != 1 {
		t.Fatalf("unexpected phone schema: %#v", phone)
	}
}
