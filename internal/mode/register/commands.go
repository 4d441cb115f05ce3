package register

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"careport/internal/registration"
	"careport/internal/taxonomy"
)

func (m Model) fetchCategories() tea.Cmd {
	svc := m.services.Taxonomy
	return func() tea.Msg {
		categories, err := svc.Categories(context.Background())
		return categoriesMsg{categories: categories, err: err}
	}
}

func (m Model) fetchTypes(category string) tea.Cmd {
	svc := m.services.Taxonomy
	return func() tea.Msg {
		types, err := svc.PlayerTypes(context.Background(), category)
		return typesMsg{category: category, types: types, err: err}
	}
}

func (m Model) fetchChildren(parentID taxonomy.ID) tea.Cmd {
	svc := m.services.Taxonomy
	return func() tea.Msg {
		children, err := svc.Children(context.Background(), parentID)
		return childrenMsg{parentID: parentID, children: children, err: err}
	}
}

func (m Model) fetchSpecializations(childID taxonomy.ID) tea.Cmd {
	svc := m.services.Taxonomy
	return func() tea.Msg {
		specs, err := svc.Specializations(context.Background(), childID)
		return specializationsMsg{childID: childID, specs: specs, err: err}
	}
}

func (m Model) fetchAttributes(typeID taxonomy.ID) tea.Cmd {
	svc := m.services.Taxonomy
	return func() tea.Msg {
		attrs, err := svc.Attributes(context.Background(), typeID)
		return attributesMsg{typeID: typeID, attrs: attrs, err: err}
	}
}

// runEffects turns selection transition effects into commands. Embedded
// attributes commit synchronously through the same message the fetch path
// uses, so both paths share one code path in Update.
func (m Model) runEffects(effects []taxonomy.Effect) tea.Cmd {
	var cmds []tea.Cmd
	for _, effect := range effects {
		switch effect.Kind {
		case taxonomy.EffectFetchChildren:
			cmds = append(cmds, m.fetchChildren(effect.TypeID))
		case taxonomy.EffectFetchSpecializations:
			cmds = append(cmds, m.fetchSpecializations(effect.TypeID))
		case taxonomy.EffectFetchAttributes:
			cmds = append(cmds, m.fetchAttributes(effect.TypeID))
		case taxonomy.EffectUseEmbedded:
			embedded := effect
			cmds = append(cmds, func() tea.Msg {
				return attributesMsg{typeID: embedded.TypeID, attrs: embedded.Attributes}
			})
		}
	}
	return tea.Batch(cmds...)
}

func (m Model) submit() tea.Cmd {
	client := m.services.Client
	// Snapshot the payload here, on the update loop. The command goroutine
	// must not read the form while keys keep mutating it.
	payload := m.form.BuildPayload(m.sel, m.store.Values(), m.store.Grouped())
	return func() tea.Msg {
		return submittedMsg{err: registration.Submit(context.Background(), client, payload)}
	}
}
