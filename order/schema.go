// Package order defines the order submission schema and narrows validated
// candidates into typed orderform.Submission values.
package order

import (
	"context"
	"fmt"

	"github.com/reoring/orderform"
	g "github.com/reoring/orderform/dsl"
)

// PhoneLengthMessage is reported for phone numbers that are not exactly
// orderform.PhoneDigits long.
const PhoneLengthMessage = "Phone number must be 10 digits long"

func contactObject(tag orderform.SendType) *g.ObjectBuilder {
	return g.Object().
		Field(orderform.FieldName, g.SchemaOf[string](g.String().NonEmpty())).
		Field(orderform.FieldAddress, g.SchemaOf[string](g.String().NonEmpty())).
		Field(orderform.FieldSendType, g.SchemaOf(g.Literal(string(tag)))).
		Require(orderform.FieldName, orderform.FieldAddress, orderform.FieldSendType)
}

func phoneNumber() g.StringBuilder {
	return g.String().
		Digits(orderform.PhoneDigits).
		Message(orderform.CodeTooShort, PhoneLengthMessage).
		Message(orderform.CodeTooLong, PhoneLengthMessage).
		Message(orderform.CodePattern, "Phone number must contain digits only")
}

// Schema builds the discriminated union over the three order variants.
func Schema() orderform.Schema[map[string]any] {
	none := contactObject(orderform.SendNone).MustBuild()

	email := contactObject(orderform.SendEmail).
		Field(orderform.FieldEmail, g.SchemaOf[string](g.String().NonEmpty().Email().
			Message(orderform.CodeInvalidFormat, "Invalid email"))).
		Require(orderform.FieldEmail).
		MustBuild()

	phone := contactObject(orderform.SendPhone).
		Field(orderform.FieldPhoneNumbers, g.SchemaOf[[]string](g.Array[string](phoneNumber()).
			Min(1).
			Message(orderform.CodeTooShort, "At least one phone number is required"))).
		Require(orderform.FieldPhoneNumbers).
		MustBuild()

	return g.Union(orderform.FieldSendType,
		g.Variant(string(orderform.SendNone), none),
		g.Variant(string(orderform.SendEmail), email),
		g.Variant(string(orderform.SendPhone), phone),
	).MustBuild()
}

// Validator checks raw candidates against Schema and narrows them.
type Validator struct {
	schema orderform.Schema[map[string]any]
}

// NewValidator builds the order schema once.
func NewValidator() *Validator {
	return &Validator{schema: Schema()}
}

// Validate is a pure function of raw: it returns the narrowed submission or
// the ordered orderform.FieldErrors.
func (v *Validator) Validate(ctx context.Context, raw map[string]any) (orderform.Submission, error) {
	m, err := v.schema.Parse(ctx, raw)
	if err != nil {
		return nil, err
	}
	return narrow(m)
}

// Schema exposes the underlying schema, e.g. for JSON Schema export.
func (v *Validator) Schema() orderform.Schema[map[string]any] { return v.schema }

func narrow(m map[string]any) (orderform.Submission, error) {
	name, _ := m[orderform.FieldName].(string)
	address, _ := m[orderform.FieldAddress].(string)
	tag, _ := m[orderform.FieldSendType].(string)
	switch orderform.SendType(tag) {
	case orderform.SendNone:
		return orderform.NoneOrder{Name: name, Address: address}, nil
	case orderform.SendEmail:
		email, _ := m[orderform.FieldEmail].(string)
		return orderform.EmailOrder{Name: name, Address: address, Email: email}, nil
	case orderform.SendPhone:
		phones, _ := m[orderform.FieldPhoneNumbers].([]string)
		return orderform.PhoneOrder{Name: name, Address: address, PhoneNumbers: phones}, nil
	}
	return nil, fmt.Errorf("order: schema accepted unknown send type %q", tag)
}
