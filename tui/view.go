package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/reoring/orderform"
)

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.styles.Title.Render("Order Package"))
	b.WriteString("\n")

	m.renderInput(&b, "Your name", m.name, m.focus.kind == targetName, "/"+orderform.FieldName)
	m.renderInput(&b, "Your address", m.address, m.focus.kind == targetAddress, "/"+orderform.FieldAddress)
	m.renderSendType(&b)

	switch m.form.SendType() {
	case orderform.SendEmail:
		m.renderInput(&b, "Email", m.email, m.focus.kind == targetEmail, "/"+orderform.FieldEmail)
	case orderform.SendPhone:
		m.renderPhones(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.button("Order Package", m.focus.kind == targetSubmit))
	b.WriteString("\n")
	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusError
		}
		b.WriteString("\n" + style.Render(m.status) + "\n")
	}
	b.WriteString("\n" + m.help.View(m.keys))
	return m.styles.Frame.Render(b.String())
}

func (m *Model) label(text string, focused bool) string {
	if focused {
		return m.styles.FocusedLabel.Render(text)
	}
	return m.styles.Label.Render(text)
}

func (m *Model) renderInput(b *strings.Builder, label string, in textinput.Model, focused bool, path string) {
	b.WriteString(m.label(label, focused) + "\n")
	b.WriteString(in.View() + "\n")
	m.renderErrors(b, path)
}

func (m *Model) renderErrors(b *strings.Builder, path string) {
	for _, fe := range m.form.ErrorsFor(path) {
		b.WriteString(m.styles.Error.Render(fe.Message) + "\n")
	}
}

func (m *Model) renderSendType(b *strings.Builder) {
	focused := m.focus.kind == targetSendType
	b.WriteString(m.label("Send notification", focused) + "\n")
	opts := make([]string, 0, len(orderform.SendTypes()))
	for _, st := range orderform.SendTypes() {
		mark := "( )"
		if st == m.form.SendType() {
			mark = "(•)"
		}
		style := m.styles.Radio
		if focused && st == m.form.SendType() {
			style = m.styles.RadioFocused
		}
		opts = append(opts, style.Render(mark+" "+st.Label()))
	}
	b.WriteString(strings.Join(opts, "   ") + "\n")
	m.renderErrors(b, "/"+orderform.FieldSendType)
}

func (m *Model) renderPhones(b *strings.Builder) {
	listPath := orderform.Root().Field(orderform.FieldPhoneNumbers)
	for pos, e := range m.form.Phones().Entries() {
		focused := m.focus.kind == targetPhone && m.focus.id == e.ID
		label := "Phone"
		if pos > 0 {
			label += " " + strconv.Itoa(pos+1)
		}
		in, ok := m.phones[e.ID]
		if !ok {
			continue
		}
		b.WriteString(m.label(label, focused) + "\n")
		line := in.View()
		if pos > 0 {
			line += "  " + m.styles.Error.Render("[ctrl+x remove]")
		}
		b.WriteString(line + "\n")
		m.renderErrors(b, listPath.Index(pos).Pointer())
	}
	m.renderErrors(b, listPath.Pointer())

	add := "+ Add Phone Number"
	if m.focus.kind == targetAddPhone {
		b.WriteString(m.styles.LinkFocused.Render(add) + "\n")
	} else {
		b.WriteString(m.styles.Link.Render(add) + "\n")
	}
}

func (m *Model) button(text string, focused bool) string {
	if focused {
		return m.styles.ButtonFocused.Render(text)
	}
	return m.styles.Button.Render(text)
}
