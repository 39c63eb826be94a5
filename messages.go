package orderform

var defaultMessages = map[string]string{
	CodeInvalidType:          "invalid type",
	CodeRequired:             "required",
	CodeTooShort:             "too short",
	CodeTooLong:              "too long",
	CodeInvalidFormat:        "invalid format",
	CodePattern:              "does not match the expected pattern",
	CodeInvalidLiteral:       "unexpected value",
	CodeDiscriminatorMissing: "contact preference is required",
	CodeDiscriminatorUnknown: "unknown contact preference",
	CodeOutOfRange:           "position out of range",
	CodeParseError:           "parse error",
}

// Message returns the default message for a field error code. Unknown codes
// are returned unchanged.
func Message(code string) string {
	if m, ok := defaultMessages[code]; ok {
		return m
	}
	return code
}
