package orderform

// SendType is the Contact Preference: it selects which Submission variant is
// active and therefore which contact fields are required.
type SendType string

const (
	SendNone  SendType = "no"    // No delivery notification.
	SendEmail SendType = "email" // Notify by email.
	SendPhone SendType = "phone" // Notify by phone; one or more numbers.
)

// Field names shared by the schema, the form state and the wire payload.
const (
	FieldName         = "name"
	FieldAddress      = "address"
	FieldSendType     = "sendType"
	FieldEmail        = "email"
	FieldPhoneNumbers = "phoneNumbers"
)

// PhoneDigits is the exact number of digits of a phone number.
const PhoneDigits = 10

// SendTypes lists the recognized tags in display order.
func SendTypes() []SendType { return []SendType{SendNone, SendEmail, SendPhone} }

// Valid reports whether s is one of the recognized tags.
func (s SendType) Valid() bool {
	switch s {
	case SendNone, SendEmail, SendPhone:
		return true
	}
	return false
}

// Label is the human readable name shown next to the radio button.
func (s SendType) Label() string {
	switch s {
	case SendNone:
		return "No"
	case SendEmail:
		return "Email"
	case SendPhone:
		return "Phone"
	}
	return string(s)
}

func (s SendType) String() string { return string(s) }

// VariantFields returns the contact fields owned by the variant selected by s.
// Fields shared by every variant are not included.
func (s SendType) VariantFields() []string {
	switch s {
	case SendEmail:
		return []string{FieldEmail}
	case SendPhone:
		return []string{FieldPhoneNumbers}
	}
	return nil
}
