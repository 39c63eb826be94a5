package orderform

import (
	"github.com/goccy/go-json"
)

// Submission is a validated order narrowed to exactly one variant.
// Implementations are NoneOrder, EmailOrder and PhoneOrder.
type Submission interface {
	SendType() SendType
	isSubmission()
}

// NoneOrder is an order without delivery notification.
type NoneOrder struct {
	Name    string
	Address string
}

// EmailOrder is an order notified by email.
type EmailOrder struct {
	Name    string
	Address string
	Email   string
}

// PhoneOrder is an order notified by phone.
type PhoneOrder struct {
	Name         string
	Address      string
	PhoneNumbers []string
}

func (NoneOrder) SendType() SendType  { return SendNone }
func (EmailOrder) SendType() SendType { return SendEmail }
func (PhoneOrder) SendType() SendType { return SendPhone }

func (NoneOrder) isSubmission()  {}
func (EmailOrder) isSubmission() {}
func (PhoneOrder) isSubmission() {}

// wireOrder is the flat payload shape. Keys of inactive variants are omitted.
type wireOrder struct {
	Name         string   `json:"name" yaml:"name"`
	Address      string   `json:"address" yaml:"address"`
	SendType     SendType `json:"sendType" yaml:"sendType"`
	Email        string   `json:"email,omitempty" yaml:"email,omitempty"`
	PhoneNumbers []string `json:"phoneNumbers,omitempty" yaml:"phoneNumbers,omitempty"`
}

func toWire(s Submission) wireOrder {
	switch o := s.(type) {
	case NoneOrder:
		return wireOrder{Name: o.Name, Address: o.Address, SendType: SendNone}
	case EmailOrder:
		return wireOrder{Name: o.Name, Address: o.Address, SendType: SendEmail, Email: o.Email}
	case PhoneOrder:
		return wireOrder{Name: o.Name, Address: o.Address, SendType: SendPhone, PhoneNumbers: o.PhoneNumbers}
	}
	return wireOrder{}
}

// Fields returns the narrowed payload as a plain map: the shared keys, the
// sendType tag and the keys of the active variant only.
func Fields(s Submission) map[string]any {
	w := toWire(s)
	m := map[string]any{
		FieldName:     w.Name,
		FieldAddress:  w.Address,
		FieldSendType: string(w.SendType),
	}
	switch w.SendType {
	case SendEmail:
		m[FieldEmail] = w.Email
	case SendPhone:
		m[FieldPhoneNumbers] = append([]string(nil), w.PhoneNumbers...)
	}
	return m
}

func (o NoneOrder) MarshalJSON() ([]byte, error)  { return json.Marshal(toWire(o)) }
func (o EmailOrder) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(o)) }
func (o PhoneOrder) MarshalJSON() ([]byte, error) { return json.Marshal(toWire(o)) }

func (o NoneOrder) MarshalYAML() (any, error)  { return toWire(o), nil }
func (o EmailOrder) MarshalYAML() (any, error) { return toWire(o), nil }
func (o PhoneOrder) MarshalYAML() (any, error) { return toWire(o), nil }
