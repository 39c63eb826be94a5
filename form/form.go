// Package form holds the state of one order form: a superset store for every
// field any variant uses, the phone number list, watch subscriptions and the
// submit flow.
//
// A Form is owned by a single event loop. Watch callbacks run synchronously
// inside the Set (or list mutation) that triggered them.
package form

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.uber.org/zap"

	"github.com/reoring/orderform"
	"github.com/reoring/orderform/fieldarray"
	"github.com/reoring/orderform/order"
	"github.com/reoring/orderform/submit"
)

// ErrUnknownField is returned by Set for names that are not scalar form fields.
var ErrUnknownField = errors.New("form: unknown field")

var scalarFields = []string{
	orderform.FieldName,
	orderform.FieldAddress,
	orderform.FieldSendType,
	orderform.FieldEmail,
}

type watcher struct {
	id int
	fn func(value any)
}

// Form is the Form State Manager.
type Form struct {
	logger    *zap.Logger
	validator *order.Validator
	handler   submit.Handler

	values map[string]string
	phones *fieldarray.Array[string]

	watchers    map[string][]watcher
	lastWatchID int

	touched     map[string]bool
	errs        orderform.FieldErrors
	submitCount int
}

// Option configures a Form.
type Option func(*Form)

// WithLogger sets the logger used for state transition debug logs.
func WithLogger(l *zap.Logger) Option {
	return func(f *Form) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithValidator replaces the default order validator.
func WithValidator(v *order.Validator) Option {
	return func(f *Form) { f.validator = v }
}

// New returns an empty form that forwards successful submissions to h.
// A nil handler is allowed; Submit then only validates.
func New(h submit.Handler, opts ...Option) *Form {
	f := &Form{
		logger:   zap.NewNop(),
		handler:  h,
		values:   map[string]string{},
		phones:   fieldarray.New[string](),
		watchers: map[string][]watcher{},
		touched:  map[string]bool{},
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.validator == nil {
		f.validator = order.NewValidator()
	}

	f.phones.OnChange(func() {
		f.revalidate()
		f.notify(orderform.FieldPhoneNumbers)
	})
	// Entering the phone variant with no numbers yields one empty entry to
	// type into. It fires on the transition only.
	f.Watch(orderform.FieldSendType, func(v any) {
		if v == string(orderform.SendPhone) && f.phones.Len() == 0 {
			f.logger.Debug("append initial phone entry")
			f.phones.Append("")
		}
	})
	return f
}

// Get returns the current value of field: a string for scalar fields and a
// []string snapshot for phoneNumbers. Unknown fields yield nil.
func (f *Form) Get(field string) any {
	if field == orderform.FieldPhoneNumbers {
		return f.phones.Values()
	}
	if !isScalar(field) {
		return nil
	}
	return f.values[field]
}

// SendType returns the current Contact Preference, empty until chosen.
func (f *Form) SendType() orderform.SendType {
	return orderform.SendType(f.values[orderform.FieldSendType])
}

// Phones exposes the phone number list controller.
func (f *Form) Phones() *fieldarray.Array[string] { return f.phones }

// Set stores value under field and synchronously notifies watchers of field.
// Setting a value equal to the current one is a no-op.
func (f *Form) Set(field, value string) error {
	if !isScalar(field) {
		if field == orderform.FieldPhoneNumbers {
			return fmt.Errorf("%w: %s is a list, use Phones()", ErrUnknownField, field)
		}
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	prev := f.values[field]
	if prev == value {
		return nil
	}
	f.values[field] = value
	f.logger.Debug("set field", zap.String("field", field), zap.Bool("empty", value == ""))

	if field == orderform.FieldSendType {
		f.switchVariant(orderform.SendType(prev), orderform.SendType(value))
	}
	f.revalidate()
	f.notify(field)
	return nil
}

// switchVariant drops the values owned by the variant being left so they can
// neither be validated nor submitted later.
func (f *Form) switchVariant(from, to orderform.SendType) {
	f.logger.Debug("send type changed", zap.Stringer("from", from), zap.Stringer("to", to))
	for _, field := range from.VariantFields() {
		switch field {
		case orderform.FieldEmail:
			if f.values[field] != "" {
				f.values[field] = ""
				f.notify(field)
			}
		case orderform.FieldPhoneNumbers:
			f.phones.Clear()
		}
		delete(f.touched, field)
	}
}

// Watch subscribes fn to changes of field. fn receives the new value, as Get
// would return it. The returned func cancels the subscription.
func (f *Form) Watch(field string, fn func(value any)) (cancel func()) {
	f.lastWatchID++
	id := f.lastWatchID
	f.watchers[field] = append(f.watchers[field], watcher{id: id, fn: fn})
	return func() {
		ws := f.watchers[field]
		for i, w := range ws {
			if w.id == id {
				f.watchers[field] = append(ws[:i:i], ws[i+1:]...)
				return
			}
		}
	}
}

func (f *Form) notify(field string) {
	ws := append([]watcher(nil), f.watchers[field]...)
	if len(ws) == 0 {
		return
	}
	v := f.Get(field)
	for _, w := range ws {
		w.fn(v)
	}
}

// Touch marks field as visited by the user.
func (f *Form) Touch(field string) { f.touched[field] = true }

// IsTouched reports whether Touch was called for field since the last reset.
func (f *Form) IsTouched(field string) bool { return f.touched[field] }

// IsDirty reports whether field differs from its empty default.
func (f *Form) IsDirty(field string) bool {
	if field == orderform.FieldPhoneNumbers {
		return f.phones.Len() > 0
	}
	return f.values[field] != ""
}

// Errors returns the Field Errors of the last failed validation.
func (f *Form) Errors() orderform.FieldErrors { return f.errs }

// ErrorsFor returns the stored errors at exactly path, e.g. "/phoneNumbers/1".
func (f *Form) ErrorsFor(path string) orderform.FieldErrors { return f.errs.For(path) }

// SubmitCount is the number of Submit calls since the last reset.
func (f *Form) SubmitCount() int { return f.submitCount }

// Candidate returns the raw values of the active variant, the way Submit
// hands them to the validator. Fields of inactive variants are left out.
func (f *Form) Candidate() map[string]any {
	raw := map[string]any{
		orderform.FieldName:    f.values[orderform.FieldName],
		orderform.FieldAddress: f.values[orderform.FieldAddress],
	}
	st := f.SendType()
	if st == "" {
		return raw
	}
	raw[orderform.FieldSendType] = string(st)
	for _, field := range st.VariantFields() {
		if field == orderform.FieldPhoneNumbers {
			raw[field] = f.phones.Values()
			continue
		}
		raw[field] = f.values[field]
	}
	return raw
}

// Submit validates the active variant. On failure the Field Errors are stored
// and returned; on success the handler is called exactly once with the
// narrowed submission. The form is never reset by Submit.
func (f *Form) Submit(ctx context.Context) (orderform.Submission, error) {
	f.submitCount++
	sub, err := f.validator.Validate(ctx, f.Candidate())
	if err != nil {
		fe, ok := orderform.AsFieldErrors(err)
		if !ok {
			return nil, fmt.Errorf("form: validate: %w", err)
		}
		f.errs = fe
		f.logger.Debug("submit rejected", zap.Int("attempt", f.submitCount), zap.Int("errors", len(fe)))
		return nil, fe
	}
	f.errs = nil
	f.logger.Debug("submit accepted", zap.Int("attempt", f.submitCount), zap.Stringer("send_type", sub.SendType()))
	if f.handler != nil {
		if err := f.handler.Handle(ctx, sub); err != nil {
			return sub, fmt.Errorf("form: submission handler: %w", err)
		}
	}
	return sub, nil
}

// revalidate refreshes stored errors after a failed submit so they clear as
// the user fixes them. Before the first submit nothing is reported.
func (f *Form) revalidate() {
	if f.submitCount == 0 || len(f.errs) == 0 {
		return
	}
	_, err := f.validator.Validate(context.Background(), f.Candidate())
	fe, _ := orderform.AsFieldErrors(err)
	f.errs = fe
}

// Reset returns every field to its empty default and forgets errors, touched
// state and the submit count. Watchers of changed fields are notified.
func (f *Form) Reset() {
	f.logger.Debug("reset form")
	f.errs = nil
	f.submitCount = 0
	f.touched = map[string]bool{}
	f.phones.Clear()
	for _, field := range scalarFields {
		if f.values[field] == "" {
			continue
		}
		f.values[field] = ""
		f.notify(field)
	}
}

func isScalar(field string) bool { return slices.Contains(scalarFields, field) }
