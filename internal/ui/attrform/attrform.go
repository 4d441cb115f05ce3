// Package attrform renders the dynamic attribute form for the selected
// player type. Every attribute becomes an input widget picked by its
// declared type; entered values are written straight into the attribute
// store the registration payload is later assembled from.
package attrform

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"careport/internal/taxonomy"
	"careport/internal/ui/styles"
)

// widget identifies the rendered input kind after type normalization and
// the empty-options fallback.
type widget int

const (
	widgetText widget = iota
	widgetTextarea
	widgetSelect
	widgetCheckbox
)

type field struct {
	attr    taxonomy.Attribute
	group   string
	widget  widget
	input   textinput.Model
	area    textarea.Model
	options []string
	// choice indexes options; -1 means nothing chosen yet.
	choice  int
	checked bool
}

// Model is the attribute form. It holds a reference to the shared store;
// the store stays the single source of truth for entered values.
type Model struct {
	store      *taxonomy.AttributeStore
	fields     []field
	focus      int
	showGroups bool
}

// New builds the form from the store's current definitions, prefilling
// widgets from any values already recorded (e.g. after navigating back).
func New(store *taxonomy.AttributeStore, showGroupTitles bool) Model {
	m := Model{store: store, showGroups: showGroupTitles}

	attrs := store.Attributes()
	groups := taxonomy.GroupAttributes(attrs)
	for _, group := range taxonomy.GroupOrder(attrs) {
		for _, attr := range groups[group] {
			m.fields = append(m.fields, newField(attr, group, store.Value(attr.ID)))
		}
	}
	if len(m.fields) > 0 {
		m.fields[0] = focusField(m.fields[0], true)
	}
	return m
}

func newField(attr taxonomy.Attribute, group string, prior any) field {
	f := field{attr: attr, group: group, choice: -1}

	kind := attr.Type.Normalize()
	switch kind {
	case taxonomy.TypeTextarea:
		f.widget = widgetTextarea
		f.area = textarea.New()
		f.area.SetHeight(3)
		f.area.Placeholder = attr.Name
		if s, ok := prior.(string); ok {
			f.area.SetValue(s)
		}
	case taxonomy.TypeSelect, taxonomy.TypeRadio:
		f.options = taxonomy.ParseOptions(attr.Options)
		if len(f.options) == 0 {
			// A choice field with nothing to choose degrades to text.
			return newField(textFallback(attr), group, prior)
		}
		f.widget = widgetSelect
		if s, ok := prior.(string); ok {
			for i, opt := range f.options {
				if opt == s {
					f.choice = i
					break
				}
			}
		}
	case taxonomy.TypeCheckbox:
		f.widget = widgetCheckbox
		if b, ok := prior.(bool); ok {
			f.checked = b
		}
	default:
		f.widget = widgetText
		f.input = textinput.New()
		f.input.Placeholder = placeholderFor(kind, attr.Name)
		f.input.Prompt = ""
		if kind == taxonomy.TypeNumber {
			f.input.Validate = numericOnly
		}
		if s, ok := prior.(string); ok {
			f.input.SetValue(s)
		}
	}
	return f
}

func textFallback(attr taxonomy.Attribute) taxonomy.Attribute {
	attr.Type = taxonomy.TypeText
	attr.Options = ""
	return attr
}

func placeholderFor(kind taxonomy.AttributeType, name string) string {
	switch kind {
	case taxonomy.TypeDate:
		return "YYYY-MM-DD"
	case taxonomy.TypeEmail:
		return "name@example.com"
	default:
		return name
	}
}

func numericOnly(s string) error {
	for _, r := range s {
		if (r < '0' || r > '9') && r != '.' && r != '-' {
			return fmt.Errorf("not a number: %q", s)
		}
	}
	return nil
}

func focusField(f field, on bool) field {
	switch f.widget {
	case widgetText:
		if on {
			f.input.Focus()
		} else {
			f.input.Blur()
		}
	case widgetTextarea:
		if on {
			f.area.Focus()
		} else {
			f.area.Blur()
		}
	}
	return f
}

// Len returns the number of rendered fields.
func (m Model) Len() int {
	return len(m.fields)
}

// Focus returns the index of the focused field, -1 when the form is empty.
func (m Model) Focus() int {
	if len(m.fields) == 0 {
		return -1
	}
	return m.focus
}

// AtEnd reports whether focus sits on the last field.
func (m Model) AtEnd() bool {
	return len(m.fields) == 0 || m.focus == len(m.fields)-1
}

// Next advances focus, clamped to the last field.
func (m Model) Next() Model {
	return m.setFocus(m.focus + 1)
}

// Prev moves focus back, clamped to the first field.
func (m Model) Prev() Model {
	return m.setFocus(m.focus - 1)
}

func (m Model) setFocus(i int) Model {
	if len(m.fields) == 0 {
		return m
	}
	if i < 0 {
		i = 0
	}
	if i > len(m.fields)-1 {
		i = len(m.fields) - 1
	}
	m.fields[m.focus] = focusField(m.fields[m.focus], false)
	m.focus = i
	m.fields[m.focus] = focusField(m.fields[m.focus], true)
	return m
}

// Update routes input to the focused field and records the resulting value
// in the store.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if len(m.fields) == 0 {
		return m, nil
	}

	f := m.fields[m.focus]
	var cmd tea.Cmd

	switch f.widget {
	case widgetSelect:
		if key, ok := msg.(tea.KeyMsg); ok {
			switch key.String() {
			case "left", "h":
				if f.choice > 0 {
					f.choice--
				}
			case "right", "l", " ":
				if f.choice < len(f.options)-1 {
					f.choice++
				}
			}
			if f.choice >= 0 {
				m.store.SetValue(f.attr.ID, f.options[f.choice])
			}
		}
	case widgetCheckbox:
		if key, ok := msg.(tea.KeyMsg); ok {
			if s := key.String(); s == " " || s == "x" {
				f.checked = !f.checked
				m.store.SetValue(f.attr.ID, f.checked)
			}
		}
	case widgetTextarea:
		f.area, cmd = f.area.Update(msg)
		m.store.SetValue(f.attr.ID, f.area.Value())
	default:
		prev := f.input.Value()
		f.input, cmd = f.input.Update(msg)
		if f.input.Err != nil {
			// The input keeps rejected runes and only flags them; roll
			// back to the last value that passed validation.
			f.input.SetValue(prev)
			f.input.Err = nil
		}
		m.store.SetValue(f.attr.ID, f.input.Value())
	}

	m.fields[m.focus] = f
	return m, cmd
}

// MissingRequired lists the names of required fields without a value.
func (m Model) MissingRequired() []string {
	var missing []string
	for _, f := range m.fields {
		if !f.attr.IsRequired {
			continue
		}
		switch value := m.store.Value(f.attr.ID).(type) {
		case nil:
			missing = append(missing, f.attr.Name)
		case string:
			if value == "" {
				missing = append(missing, f.attr.Name)
			}
		}
	}
	return missing
}

// View renders the form with group headers (when enabled) and a required
// marker on mandatory fields.
func (m Model) View() string {
	if len(m.fields) == 0 {
		return styles.Hint.Render("This role has no additional fields.")
	}

	var b strings.Builder
	lastGroup := ""
	for i, f := range m.fields {
		if m.showGroups && f.group != lastGroup {
			if lastGroup != "" {
				b.WriteString("\n")
			}
			b.WriteString(styles.GroupName.Render(f.group) + "\n")
			lastGroup = f.group
		}
		b.WriteString(m.renderField(f, i == m.focus))
		if i < len(m.fields)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m Model) renderField(f field, focused bool) string {
	label := f.attr.Name
	if f.attr.IsRequired {
		label += styles.Required.Render("*")
	}
	if focused {
		label = styles.Focused.Render("> ") + styles.StepLabel.Render(label)
	} else {
		label = "  " + label
	}

	var body string
	switch f.widget {
	case widgetSelect:
		body = renderChoices(f, focused)
	case widgetCheckbox:
		mark := "[ ]"
		if f.checked {
			mark = "[x]"
		}
		if focused {
			mark = styles.Focused.Render(mark)
		}
		body = mark
	case widgetTextarea:
		body = f.area.View()
	default:
		body = f.input.View()
	}
	return label + "\n  " + strings.ReplaceAll(body, "\n", "\n  ") + "\n"
}

func renderChoices(f field, focused bool) string {
	parts := make([]string, len(f.options))
	for i, opt := range f.options {
		switch {
		case i == f.choice && focused:
			parts[i] = styles.Focused.Render("(" + opt + ")")
		case i == f.choice:
			parts[i] = "(" + opt + ")"
		default:
			parts[i] = styles.Blurred.Render(" " + opt + " ")
		}
	}
	return strings.Join(parts, " ")
}
