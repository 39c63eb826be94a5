// Package tui renders the order form in the terminal with bubbletea.
//
// Every input is bound to the form state: typing calls Set (or updates the
// phone entry), and the model re-renders from watch notifications. Phone
// inputs are keyed by entry ID, never by position.
package tui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/reoring/orderform"
	"github.com/reoring/orderform/fieldarray"
	"github.com/reoring/orderform/form"
)

type targetKind int

const (
	targetName targetKind = iota
	targetAddress
	targetSendType
	targetEmail
	targetPhone
	targetAddPhone
	targetSubmit
)

// target is one focusable row. id is only set for phone rows.
type target struct {
	kind targetKind
	id   fieldarray.ID
}

// Model is the bubbletea model of the order form.
type Model struct {
	form   *form.Form
	logger *zap.Logger
	ctx    context.Context

	keys   keyMap
	help   help.Model
	styles Styles

	name    textinput.Model
	address textinput.Model
	email   textinput.Model
	phones  map[fieldarray.ID]textinput.Model

	focus     target
	status    string
	statusErr bool
	width     int
	quitting  bool
}

// Option configures a Model.
type Option func(*Model)

// WithLogger sets the logger. Use a file backed logger: the terminal belongs
// to the UI.
func WithLogger(l *zap.Logger) Option {
	return func(m *Model) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithContext sets the context passed to Submit.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// WithStyles overrides DefaultStyles.
func WithStyles(s Styles) Option {
	return func(m *Model) { m.styles = s }
}

// New binds a model to f and subscribes to the fields that drive the layout.
func New(f *form.Form, opts ...Option) *Model {
	m := &Model{
		form:    f,
		logger:  zap.NewNop(),
		ctx:     context.Background(),
		keys:    defaultKeyMap(),
		help:    help.New(),
		styles:  DefaultStyles(),
		name:    newInput("Jane Doe"),
		address: newInput("1 Main St"),
		email:   newInput("jane@example.com"),
		phones:  map[fieldarray.ID]textinput.Model{},
	}
	for _, opt := range opts {
		opt(m)
	}

	m.name.SetValue(stringValue(f.Get(orderform.FieldName)))
	m.address.SetValue(stringValue(f.Get(orderform.FieldAddress)))
	m.email.SetValue(stringValue(f.Get(orderform.FieldEmail)))
	m.syncPhones()

	f.Watch(orderform.FieldSendType, func(any) { m.ensureFocusVisible() })
	f.Watch(orderform.FieldEmail, func(v any) {
		if s := stringValue(v); m.email.Value() != s {
			m.email.SetValue(s)
		}
	})
	f.Watch(orderform.FieldPhoneNumbers, func(any) {
		m.syncPhones()
		m.ensureFocusVisible()
	})
	f.Watch(orderform.FieldName, func(v any) { syncInput(&m.name, v) })
	f.Watch(orderform.FieldAddress, func(v any) { syncInput(&m.address, v) })

	m.focus = target{kind: targetName}
	m.applyFocus()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = 120
	in.Width = 40
	in.Prompt = "> "
	return in
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func syncInput(in *textinput.Model, v any) {
	if s := stringValue(v); in.Value() != s {
		in.SetValue(s)
	}
}

// syncPhones creates inputs for new entries and drops inputs of removed
// ones. Inputs of surviving entries keep their cursor and focus.
func (m *Model) syncPhones() {
	seen := make(map[fieldarray.ID]bool, m.form.Phones().Len())
	for _, e := range m.form.Phones().Entries() {
		seen[e.ID] = true
		in, ok := m.phones[e.ID]
		if !ok {
			in = newInput("0123456789")
			in.CharLimit = 20
		}
		if in.Value() != e.Value {
			in.SetValue(e.Value)
		}
		m.phones[e.ID] = in
	}
	for id := range m.phones {
		if !seen[id] {
			delete(m.phones, id)
		}
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			return m, m.moveFocus(1)
		case key.Matches(msg, m.keys.Prev):
			return m, m.moveFocus(-1)
		case key.Matches(msg, m.keys.Remove):
			m.removeFocusedPhone()
			return m, m.applyFocus()
		case key.Matches(msg, m.keys.Activate):
			return m, m.activate()
		case m.focus.kind == targetSendType && key.Matches(msg, m.keys.Left):
			m.cycleSendType(-1)
			return m, nil
		case m.focus.kind == targetSendType && key.Matches(msg, m.keys.Right):
			m.cycleSendType(1)
			return m, nil
		}
	}
	return m, m.updateInput(msg)
}

// focusables lists the rows currently on screen, in tab order.
func (m *Model) focusables() []target {
	out := []target{{kind: targetName}, {kind: targetAddress}, {kind: targetSendType}}
	switch m.form.SendType() {
	case orderform.SendEmail:
		out = append(out, target{kind: targetEmail})
	case orderform.SendPhone:
		for _, e := range m.form.Phones().Entries() {
			out = append(out, target{kind: targetPhone, id: e.ID})
		}
		out = append(out, target{kind: targetAddPhone})
	}
	return append(out, target{kind: targetSubmit})
}

func (m *Model) focusIndex() int {
	for i, t := range m.focusables() {
		if t == m.focus {
			return i
		}
	}
	return -1
}

func (m *Model) moveFocus(delta int) tea.Cmd {
	m.touchFocused()
	targets := m.focusables()
	i := m.focusIndex()
	if i < 0 {
		i = 0
	}
	i = (i + delta + len(targets)) % len(targets)
	m.focus = targets[i]
	return m.applyFocus()
}

// ensureFocusVisible moves focus to the radio row when the focused row
// disappeared, e.g. after switching variants.
func (m *Model) ensureFocusVisible() {
	if m.focusIndex() >= 0 {
		return
	}
	m.focus = target{kind: targetSendType}
	m.applyFocus()
}

func (m *Model) touchFocused() {
	switch m.focus.kind {
	case targetName:
		m.form.Touch(orderform.FieldName)
	case targetAddress:
		m.form.Touch(orderform.FieldAddress)
	case targetSendType:
		m.form.Touch(orderform.FieldSendType)
	case targetEmail:
		m.form.Touch(orderform.FieldEmail)
	case targetPhone:
		m.form.Touch(orderform.FieldPhoneNumbers)
	}
}

// applyFocus focuses exactly the input of the focused row.
func (m *Model) applyFocus() tea.Cmd {
	var cmd tea.Cmd
	focus := func(in *textinput.Model, on bool) {
		if !on {
			in.Blur()
			return
		}
		cmd = in.Focus()
	}
	focus(&m.name, m.focus.kind == targetName)
	focus(&m.address, m.focus.kind == targetAddress)
	focus(&m.email, m.focus.kind == targetEmail)
	for id, in := range m.phones {
		focus(&in, m.focus.kind == targetPhone && m.focus.id == id)
		m.phones[id] = in
	}
	return cmd
}

func (m *Model) cycleSendType(delta int) {
	types := orderform.SendTypes()
	i := -1
	for j, st := range types {
		if st == m.form.SendType() {
			i = j
		}
	}
	switch {
	case i < 0 && delta > 0:
		i = 0
	case i < 0:
		i = len(types) - 1
	default:
		i = (i + delta + len(types)) % len(types)
	}
	m.setField(orderform.FieldSendType, string(types[i]))
}

func (m *Model) setField(field, value string) {
	if err := m.form.Set(field, value); err != nil {
		m.logger.Error("[Model.setField] set failed", zap.String("field", field), zap.Error(err))
	}
}

// activate handles enter: buttons fire, inputs advance to the next row.
func (m *Model) activate() tea.Cmd {
	switch m.focus.kind {
	case targetAddPhone:
		m.form.Phones().Append("")
		if e, ok := m.form.Phones().At(m.form.Phones().Len() - 1); ok {
			m.focus = target{kind: targetPhone, id: e.ID}
		}
		return m.applyFocus()
	case targetSubmit:
		m.submit()
		return nil
	}
	return m.moveFocus(1)
}

// removeFocusedPhone deletes the focused phone entry. The first entry is
// pinned and has no remove affordance.
func (m *Model) removeFocusedPhone() {
	if m.focus.kind != targetPhone {
		return
	}
	pos := m.form.Phones().Index(m.focus.id)
	if pos < 1 {
		return
	}
	prev, _ := m.form.Phones().At(pos - 1)
	if err := m.form.Phones().Remove(pos); err != nil {
		m.logger.Warn("[Model.removeFocusedPhone] remove failed", zap.Int("position", pos), zap.Error(err))
		return
	}
	m.focus = target{kind: targetPhone, id: prev.ID}
}

func (m *Model) submit() {
	m.touchFocused()
	sub, err := m.form.Submit(m.ctx)
	var fe orderform.FieldErrors
	switch {
	case err == nil:
		m.status = fmt.Sprintf("Order received (notify: %s)", sub.SendType().Label())
		m.statusErr = false
	case errors.As(err, &fe):
		m.status = fmt.Sprintf("Please fix %d field error(s)", len(fe))
		m.statusErr = true
	default:
		m.logger.Error("[Model.submit] submit failed", zap.Error(err))
		m.status = "Could not record the order: " + err.Error()
		m.statusErr = true
	}
}

// updateInput forwards msg to the focused input and writes its value back to
// the form.
func (m *Model) updateInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus.kind {
	case targetName:
		m.name, cmd = m.name.Update(msg)
		m.setField(orderform.FieldName, m.name.Value())
	case targetAddress:
		m.address, cmd = m.address.Update(msg)
		m.setField(orderform.FieldAddress, m.address.Value())
	case targetEmail:
		m.email, cmd = m.email.Update(msg)
		m.setField(orderform.FieldEmail, m.email.Value())
	case targetPhone:
		in, ok := m.phones[m.focus.id]
		if !ok {
			return nil
		}
		in, cmd = in.Update(msg)
		m.phones[m.focus.id] = in
		if cur, _ := m.form.Phones().Get(m.focus.id); cur != in.Value() {
			if err := m.form.Phones().Update(m.focus.id, in.Value()); err != nil {
				m.logger.Warn("[Model.updateInput] phone update failed", zap.Stringer("entry", m.focus.id), zap.Error(err))
			}
		}
	}
	return cmd
}

// Quitting reports whether the user asked to leave.
func (m *Model) Quitting() bool { return m.quitting }

// Status returns the last submit status line.
func (m *Model) Status() string { return m.status }

// Run starts a bubbletea program for m and blocks until the user quits.
func Run(ctx context.Context, m *Model, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	if _, err := tea.NewProgram(m, opts...).Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("tui: %w", err)
	}
	return nil
}
