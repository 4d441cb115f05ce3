package register

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"careport/internal/ui/styles"
)

// View renders the wizard.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(styles.Title.Render("Patient Registration") + "\n")
	if crumb := m.breadcrumb(); crumb != "" {
		b.WriteString(styles.Blurred.Render(crumb) + "\n")
	}
	b.WriteString("\n")
	b.WriteString(m.body())

	if m.services.Config != nil && m.services.Config.UI.ShowHints {
		b.WriteString("\n\n" + styles.Hint.Render(m.hints()))
	}
	return b.String()
}

// breadcrumb summarizes the selection made so far.
func (m Model) breadcrumb() string {
	var parts []string
	if m.sel.Category != "" {
		parts = append(parts, m.sel.Category)
	}
	if m.sel.ParentType != nil {
		parts = append(parts, m.sel.ParentType.Name)
	}
	if m.sel.ChildType != nil {
		parts = append(parts, m.sel.ChildType.Name)
	}
	if m.sel.Specialization != nil {
		parts = append(parts, m.sel.Specialization.Name)
	}
	return strings.Join(parts, " › ")
}

func (m Model) body() string {
	switch m.step {
	case stepCategory:
		if m.loading.categories || m.loading.types {
			return m.loadingLine("Loading categories")
		}
		return m.picker.View()
	case stepParent:
		return m.picker.View()
	case stepChild:
		if m.loading.children {
			return m.loadingLine("Loading roles")
		}
		return m.picker.View()
	case stepSpecialization:
		if m.loading.specializations {
			return m.loadingLine("Loading specializations")
		}
		return m.picker.View()
	case stepDetails:
		return m.detailsView()
	case stepAttributes:
		if m.loading.attributes {
			return m.loadingLine("Loading role fields")
		}
		if m.loading.submitting {
			return m.loadingLine("Submitting registration")
		}
		return m.attrs.View()
	}
	return ""
}

func (m Model) loadingLine(what string) string {
	return m.spin.View() + " " + styles.Hint.Render(what+"…")
}

func (m Model) detailsView() string {
	var b strings.Builder
	b.WriteString(styles.StepLabel.Render("Your details") + "\n\n")

	for i, f := range m.details {
		label := f.label
		if i == m.focus {
			label = styles.Focused.Render("> ") + styles.StepLabel.Render(label)
		} else {
			label = "  " + label
		}
		b.WriteString(label + "\n  " + f.input.View() + "\n")

		for _, msg := range m.form.FieldErrors(f.name) {
			b.WriteString("  " + styles.FieldErr.Render(msg) + "\n")
		}
	}

	if m.loading.submitting {
		b.WriteString("\n" + m.loadingLine("Submitting registration"))
	}
	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

func (m Model) hints() string {
	switch m.step {
	case stepCategory:
		return "↑/↓ move · enter select · ctrl+r refresh · ctrl+c quit"
	case stepParent, stepChild, stepSpecialization:
		return "↑/↓ move · enter select · esc back · ctrl+c quit"
	case stepDetails:
		return "tab/↓ next · shift+tab/↑ previous · ctrl+s continue · ctrl+b back"
	case stepAttributes:
		return "tab/↓ next · shift+tab/↑ previous · ctrl+s submit · ctrl+b back"
	}
	return ""
}
