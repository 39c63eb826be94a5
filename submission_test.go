package orderform_test

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/reoring/orderform"
)

func TestSendType(t *testing.T) {
	for _, s := range orderform.SendTypes() {
		if !s.Valid() {
			t.Fatalf("%s must be valid", s)
		}
	}
	if orderform.SendType("none").Valid() {
		t.Fatalf(`"none" is not a wire tag; the none preference is spelled "no"`)
	}
	if orderform.SendPhone.Label() != "Phone" {
		t.Fatalf("label: %s", orderform.SendPhone.Label())
	}
	if diff := cmp.Diff([]string{orderform.FieldEmail}, orderform.SendEmail.VariantFields()); diff != "" {
		t.Fatalf("variant fields:\n%s", diff)
	}
	if orderform.SendNone.VariantFields() != nil {
		t.Fatalf("none owns no variant fields")
	}
}

func TestFields_OnlyActiveVariant(t *testing.T) {
	cases := []struct {
		sub  orderform.Submission
		want map[string]any
	}{
		{orderform.NoneOrder{Name: "A", Address: "B"}, map[string]any{"name": "A", "address": "B", "sendType": "no"}},
		{orderform.EmailOrder{Name: "A", Address: "B", Email: "a@example.com"}, map[string]any{"name": "A", "address": "B", "sendType": "email", "email": "a@example.com"}},
		{orderform.PhoneOrder{Name: "A", Address: "B", PhoneNumbers: []string{"5551234567"}}, map[string]any{"name": "A", "address": "B", "sendType": "phone", "phoneNumbers": []string{"5551234567"}}},
	}
	for _, tc := range cases {
		if diff := cmp.Diff(tc.want, orderform.Fields(tc.sub)); diff != "" {
			t.Fatalf("%s (-want +got):\n%s", tc.sub.SendType(), diff)
		}
	}
}

func TestMarshal_JSONAndYAML(t *testing.T) {
	sub := orderform.PhoneOrder{Name: "A", Address: "B", PhoneNumbers: []string{"5551234567"}}

	b, err := json.Marshal(sub)
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if string(b) != `{"name":"A","address":"B","sendType":"phone","phoneNumbers":["5551234567"]}` {
		t.Fatalf("json: %s", b)
	}

	y, err := yaml.Marshal(orderform.EmailOrder{Name: "A", Address: "B", Email: "a@example.com"})
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if !strings.Contains(string(y), "sendType: email") || strings.Contains(string(y), "phoneNumbers") {
		t.Fatalf("yaml: %s", y)
	}
}

func TestDecode(t *testing.T) {
	raw, err := orderform.DecodeJSON([]byte(`{"name":"A","phoneNumbers":["5551234567"],"n":5551234567}`))
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if _, ok := raw["n"].(json.Number); !ok {
		t.Fatalf("numbers must decode as json.Number, got %T", raw["n"])
	}

	raw, err = orderform.DecodeYAML([]byte("name: A\nsendType: phone\nphoneNumbers:\n  - \"5551234567\"\n"))
	if err != nil {
		t.Fatalf("yaml: %v", err)
	}
	if diff := cmp.Diff([]any{"5551234567"}, raw["phoneNumbers"]); diff != "" {
		t.Fatalf("yaml phoneNumbers:\n%s", diff)
	}

	for _, in := range []string{`[1,2]`, `"x"`, `{`} {
		_, err := orderform.DecodeJSON([]byte(in))
		if _, ok := orderform.AsFieldErrors(err); !ok {
			t.Fatalf("%s: expected field errors, got %v", in, err)
		}
	}
	if _, err := orderform.Decode(strings.NewReader("- a\n"), orderform.FormatYAML); err == nil {
		t.Fatalf("yaml sequence must be rejected")
	}
}

func TestFormat(t *testing.T) {
	if f, _ := orderform.ParseFormat("YML"); f != orderform.FormatYAML {
		t.Fatalf("yml: %s", f)
	}
	if _, err := orderform.ParseFormat("xml"); err == nil {
		t.Fatalf("xml must be rejected")
	}
	if orderform.FormatFromPath("order.yaml") != orderform.FormatYAML || orderform.FormatFromPath("order.json") != orderform.FormatJSON {
		t.Fatalf("FormatFromPath")
	}
}
