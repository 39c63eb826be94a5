package orderform

import (
	"errors"
	"fmt"
	"strings"
)

// Field error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeInvalidType          = "invalid_type"
	CodeRequired             = "required"
	CodeTooShort             = "too_short"
	CodeTooLong              = "too_long"
	CodeInvalidFormat        = "invalid_format"
	CodePattern              = "pattern"
	CodeInvalidLiteral       = "invalid_literal"
	CodeDiscriminatorMissing = "discriminator_missing"
	CodeDiscriminatorUnknown = "discriminator_unknown"
	CodeOutOfRange           = "out_of_range"
	CodeParseError           = "parse_error"
)

// FieldError represents a single validation failure attached to a field.
type FieldError struct {
	Path    string // JSON Pointer (for example: /phoneNumbers/0).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: accepted values, format names, etc.
	// Params carries structured parameters (e.g., {"len":10, "got":6}).
	Params map[string]any
}

// FieldErrors is an ordered collection of field errors that implements error.
type FieldErrors []FieldError

// Error summarizes the first few errors.
func (fe FieldErrors) Error() string {
	if len(fe) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(fe)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := fe[i]
		// e.g. required at /name
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// For returns the errors reported exactly at path.
func (fe FieldErrors) For(path string) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if e.Path == path {
			out = append(out, e)
		}
	}
	return out
}

// Under returns the errors reported at prefix or anywhere below it.
func (fe FieldErrors) Under(prefix string) FieldErrors {
	var out FieldErrors
	for _, e := range fe {
		if e.Path == prefix || strings.HasPrefix(e.Path, strings.TrimSuffix(prefix, "/")+"/") {
			out = append(out, e)
		}
	}
	return out
}

// Rebase prefixes every path with base. Root paths ("" or "/") collapse to base.
func (fe FieldErrors) Rebase(base string) FieldErrors {
	out := make(FieldErrors, 0, len(fe))
	for _, e := range fe {
		switch {
		case e.Path == "" || e.Path == "/":
			e.Path = base
		case e.Path[0] == '/':
			e.Path = base + e.Path
		default:
			e.Path = base + "/" + e.Path
		}
		out = append(out, e)
	}
	return out
}

// AppendFieldErrors appends errors to the destination, initializing the slice
// when needed.
func AppendFieldErrors(dst FieldErrors, more ...FieldError) FieldErrors {
	if dst == nil {
		dst = FieldErrors{}
	}
	dst = append(dst, more...)
	return dst
}

// AsFieldErrors extracts FieldErrors from an error using errors.As internally.
func AsFieldErrors(err error) (FieldErrors, bool) {
	if err == nil {
		return nil, false
	}
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
