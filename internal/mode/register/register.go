// Package register implements the patient registration wizard: taxonomy
// selection (category, player type, child type, specialization), the static
// detail fields, and the dynamic attribute form, submitted as one payload.
package register

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"careport/internal/api"
	"careport/internal/keys"
	"careport/internal/log"
	"careport/internal/mode"
	"careport/internal/registration"
	"careport/internal/taxonomy"
	"careport/internal/ui/attrform"
	"careport/internal/ui/picker"
	"careport/internal/ui/styles"
	"careport/internal/ui/toaster"
)

type step int

const (
	stepCategory step = iota
	stepParent
	stepChild
	stepSpecialization
	stepDetails
	stepAttributes
)

// skipValue marks the picker option that advances past an optional level.
const skipValue = ""

type loadingState struct {
	categories      bool
	types           bool
	children        bool
	specializations bool
	attributes      bool
	submitting      bool
}

type detailField struct {
	name  string
	label string
	input textinput.Model
}

// Model is the registration wizard mode controller.
type Model struct {
	services mode.Services
	keymap   keys.KeyMap

	sel   taxonomy.Selection
	store *taxonomy.AttributeStore
	form  *registration.Form

	step    step
	picker  picker.Model
	details []detailField
	focus   int
	attrs   attrform.Model

	spin    spinner.Model
	loading loadingState

	width  int
	height int
}

// New creates the wizard in its initial state.
func New(services mode.Services) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Spinner

	m := Model{
		services: services,
		keymap:   keys.DefaultKeyMap(),
		store:    taxonomy.NewAttributeStore(),
		form:     registration.New(),
		spin:     sp,
		details:  newDetailFields(),
	}
	m.details[0].input.Focus()
	// Init cannot mutate the model, so the startup fetches are flagged here.
	m.loading.categories = true
	m.loading.types = true
	return m
}

var detailLabels = map[string]string{
	registration.FieldName:                  "Full name",
	registration.FieldEmail:                 "Email",
	registration.FieldPassword:              "Password",
	registration.FieldPasswordConfirmation:  "Confirm password",
	registration.FieldDateOfBirth:           "Date of birth (optional)",
	registration.FieldPhoneNumber:           "Phone number",
	registration.FieldAddress:               "Address",
	registration.FieldEmergencyName:         "Emergency contact name",
	registration.FieldEmergencyPhone:        "Emergency contact phone",
	registration.FieldEmergencyRelationship: "Emergency contact relationship",
}

func newDetailFields() []detailField {
	fields := make([]detailField, 0, len(registration.BaseFields))
	for _, name := range registration.BaseFields {
		input := textinput.New()
		input.Prompt = ""
		switch name {
		case registration.FieldPassword, registration.FieldPasswordConfirmation:
			input.EchoMode = textinput.EchoPassword
		case registration.FieldDateOfBirth:
			input.Placeholder = "YYYY-MM-DD"
		case registration.FieldEmail:
			input.Placeholder = "name@example.com"
		}
		fields = append(fields, detailField{name: name, label: detailLabels[name], input: input})
	}
	return fields
}

// Init starts the category and root-type fetches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCategories(), m.fetchTypes(""))
}

// SetSize handles terminal resize events.
func (m Model) SetSize(width, height int) mode.Controller {
	m.width = width
	m.height = height
	m.picker = m.picker.SetSize(width, height)
	return m
}

// Update drives the wizard state machine.
func (m Model) Update(msg tea.Msg) (mode.Controller, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		if !m.anyLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case categoriesMsg:
		return m.handleCategories(msg)
	case typesMsg:
		return m.handleTypes(msg)
	case childrenMsg:
		return m.handleChildren(msg)
	case specializationsMsg:
		return m.handleSpecializations(msg)
	case attributesMsg:
		return m.handleAttributes(msg)
	case submittedMsg:
		return m.handleSubmitted(msg)

	case pickedCategoryMsg:
		return m.selectCategory(msg.value)
	case pickedParentMsg:
		return m.selectParent(msg.value)
	case pickedChildMsg:
		return m.selectChild(msg.value)
	case pickedSpecializationMsg:
		return m.selectSpecialization(msg.value)
	case pickerCancelledMsg:
		return m.stepBack()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// stepLoading reports whether the current picker step is waiting on its
// fetch, mirroring the conditions the view shows a spinner for.
func (m Model) stepLoading() bool {
	switch m.step {
	case stepCategory:
		return m.loading.categories || m.loading.types
	case stepChild:
		return m.loading.children
	case stepSpecialization:
		return m.loading.specializations
	}
	return false
}

func (m Model) anyLoading() bool {
	l := m.loading
	return l.categories || l.types || l.children || l.specializations || l.attributes || l.submitting
}

// ---- fetch completions ----

func (m Model) handleCategories(msg categoriesMsg) (mode.Controller, tea.Cmd) {
	m.loading.categories = false
	if msg.err != nil {
		return m, mode.Toast("Could not load categories: "+msg.err.Error(), toaster.StyleError)
	}
	m.sel.Categories = msg.categories
	if m.step == stepCategory {
		m = m.showCategoryPicker()
	}
	return m, nil
}

func (m Model) handleTypes(msg typesMsg) (mode.Controller, tea.Cmd) {
	m.loading.types = false
	if msg.err != nil {
		return m, mode.Toast("Could not load player types: "+msg.err.Error(), toaster.StyleError)
	}
	m.sel.PlayerTypes = msg.types
	return m, nil
}

func (m Model) handleChildren(msg childrenMsg) (mode.Controller, tea.Cmd) {
	if m.sel.ParentType == nil || m.sel.ParentType.ID != msg.parentID {
		// Completion for an abandoned selection. The loading flag stays
		// set; it belongs to the fetch that is still in flight.
		log.Debug(log.CatMode, "dropping stale children result", "parentID", msg.parentID)
		return m, nil
	}
	m.loading.children = false

	if msg.err != nil {
		// Keep whatever list is already committed; failures surface only
		// as missing options and re-selection is the retry path.
		log.Warn(log.CatMode, "children fetch failed", "parentID", msg.parentID, "error", msg.err.Error())
		if m.step == stepChild && len(m.sel.ChildTypes) == 0 {
			m.step = stepDetails
		}
		return m, nil
	}

	next, applied := m.sel.ApplyChildren(msg.parentID, msg.children)
	if !applied {
		return m, nil
	}
	m.sel = next

	if m.step == stepChild {
		if len(m.sel.ChildTypes) == 0 {
			// Nothing to refine; move straight to the detail fields.
			m.step = stepDetails
			return m, nil
		}
		m = m.showChildPicker()
	}
	return m, nil
}

func (m Model) handleSpecializations(msg specializationsMsg) (mode.Controller, tea.Cmd) {
	if m.sel.ChildType == nil || m.sel.ChildType.ID != msg.childID {
		log.Debug(log.CatMode, "dropping stale specializations result", "childID", msg.childID)
		return m, nil
	}
	m.loading.specializations = false

	if msg.err != nil {
		log.Warn(log.CatMode, "specializations fetch failed", "childID", msg.childID, "error", msg.err.Error())
		if m.step == stepSpecialization && len(m.sel.Specializations) == 0 {
			m.step = stepDetails
		}
		return m, nil
	}

	next, applied := m.sel.ApplySpecializations(msg.childID, msg.specs)
	if !applied {
		return m, nil
	}
	m.sel = next

	if m.step == stepSpecialization {
		if len(m.sel.Specializations) == 0 {
			m.step = stepDetails
			return m, nil
		}
		m = m.showSpecializationPicker()
	}
	return m, nil
}

func (m Model) handleAttributes(msg attributesMsg) (mode.Controller, tea.Cmd) {
	// Only the currently visible type's attributes may land; a slow fetch
	// for a type the user has moved past is dropped, and its loading flag
	// keeps tracking the fetch that replaced it.
	owner := m.sel.AttributeOwner()
	if owner == nil || owner.ID != msg.typeID {
		log.Debug(log.CatMode, "dropping stale attribute result", "typeID", msg.typeID)
		return m, nil
	}
	m.loading.attributes = false

	m.store.ApplyFetched(msg.typeID, msg.attrs, msg.err)
	if msg.err != nil {
		return m, mode.Toast("Could not load role fields: "+msg.err.Error(), toaster.StyleError)
	}
	if m.step == stepAttributes {
		m.attrs = attrform.New(m.store, m.services.Config.UI.ShowGroupTitles)
	}
	return m, nil
}

func (m Model) handleSubmitted(msg submittedMsg) (mode.Controller, tea.Cmd) {
	m.loading.submitting = false
	m.form.RecordResult(msg.err)
	if msg.err == nil {
		fresh := New(m.services)
		fresh.width, fresh.height = m.width, m.height
		fresh.sel.Categories = m.sel.Categories
		fresh.sel.PlayerTypes = m.sel.PlayerTypes
		fresh.loading.categories = false
		fresh.loading.types = false
		fresh = fresh.showCategoryPicker()
		return fresh, mode.Toast("Registration successful! Please log in.", toaster.StyleSuccess)
	}

	var verr *api.ValidationError
	switch {
	case errors.Is(msg.err, api.ErrSessionExpired):
		return m, mode.Toast("Session expired. Please log in again.", toaster.StyleError)
	case errors.As(msg.err, &verr):
		m.step = stepDetails
		return m, mode.Toast(strings.Join(verr.Flatten(), "\n"), toaster.StyleError)
	default:
		return m, mode.Toast("Registration failed. Please try again.", toaster.StyleError)
	}
}

// ---- selection transitions ----

func (m Model) selectCategory(value string) (mode.Controller, tea.Cmd) {
	next, effects := m.sel.SelectCategory(value)
	m.sel = next
	m.form.Merge(registration.SelectionUpdates(m.sel))
	m.store.Reset()
	m = m.markEffects(effects)

	if m.sel.ParentType != nil {
		// Single-type category auto-advanced past the parent picker.
		m.step = stepChild
	} else {
		m.step = stepParent
		m = m.showParentPicker()
	}
	return m, tea.Batch(m.runEffects(effects), m.spin.Tick)
}

func (m Model) selectParent(value string) (mode.Controller, tea.Cmd) {
	next, effects := m.sel.SelectParentType(value)
	m.sel = next
	m.form.Merge(registration.SelectionUpdates(m.sel))
	m.store.Reset()
	m = m.markEffects(effects)

	m.step = stepChild
	return m, tea.Batch(m.runEffects(effects), m.spin.Tick)
}

func (m Model) selectChild(value string) (mode.Controller, tea.Cmd) {
	if value == skipValue {
		m.step = stepDetails
		return m, nil
	}

	next, effects := m.sel.SelectChildType(value)
	m.sel = next
	m.form.Merge(registration.SelectionUpdates(m.sel))
	m = m.markEffects(effects)

	m.step = stepSpecialization
	return m, tea.Batch(m.runEffects(effects), m.spin.Tick)
}

func (m Model) selectSpecialization(value string) (mode.Controller, tea.Cmd) {
	m.sel = m.sel.SelectSpecialization(value)
	m.form.Merge(registration.SelectionUpdates(m.sel))
	m.step = stepDetails
	return m, nil
}

// markEffects records the loading flags the effects will satisfy.
func (m Model) markEffects(effects []taxonomy.Effect) Model {
	for _, effect := range effects {
		switch effect.Kind {
		case taxonomy.EffectFetchChildren:
			m.loading.children = true
		case taxonomy.EffectFetchSpecializations:
			m.loading.specializations = true
		case taxonomy.EffectFetchAttributes:
			m.loading.attributes = true
		}
	}
	return m
}

// ---- pickers ----

func (m Model) showCategoryPicker() Model {
	options := make([]picker.Option, 0, len(m.sel.Categories))
	for _, category := range m.sel.Categories {
		options = append(options, picker.Option{Label: category, Value: category})
	}
	m.picker = picker.New(picker.Config{
		Title:    "Select a category",
		Options:  options,
		OnSelect: func(opt picker.Option) tea.Msg { return pickedCategoryMsg{value: opt.Value} },
	}).SetSize(m.width, m.height)
	return m
}

func (m Model) showParentPicker() Model {
	types := m.sel.Categorized()[m.sel.Category]
	options := make([]picker.Option, 0, len(types))
	for _, pt := range types {
		options = append(options, picker.Option{Label: pt.Name, Value: pt.ID.String(), Detail: pt.Description})
	}
	m.picker = picker.New(picker.Config{
		Title:    "Select a role",
		Options:  options,
		OnSelect: func(opt picker.Option) tea.Msg { return pickedParentMsg{value: opt.Value} },
		OnCancel: func() tea.Msg { return pickerCancelledMsg{} },
	}).SetSize(m.width, m.height)
	return m
}

func (m Model) showChildPicker() Model {
	options := make([]picker.Option, 0, len(m.sel.ChildTypes)+1)
	for _, ct := range m.sel.ChildTypes {
		options = append(options, picker.Option{Label: ct.Name, Value: ct.ID.String(), Detail: ct.Description})
	}
	options = append(options, picker.Option{Label: "Continue without a sub-role", Value: skipValue})
	m.picker = picker.New(picker.Config{
		Title:    "Refine the role",
		Options:  options,
		OnSelect: func(opt picker.Option) tea.Msg { return pickedChildMsg{value: opt.Value} },
		OnCancel: func() tea.Msg { return pickerCancelledMsg{} },
	}).SetSize(m.width, m.height)
	return m
}

func (m Model) showSpecializationPicker() Model {
	options := make([]picker.Option, 0, len(m.sel.Specializations)+1)
	options = append(options, picker.Option{Label: "None", Value: taxonomy.SpecializationNone})
	for _, sp := range m.sel.Specializations {
		options = append(options, picker.Option{Label: sp.Name, Value: sp.ID.String(), Detail: sp.Description})
	}
	m.picker = picker.New(picker.Config{
		Title:    "Select a specialization",
		Options:  options,
		OnSelect: func(opt picker.Option) tea.Msg { return pickedSpecializationMsg{value: opt.Value} },
		OnCancel: func() tea.Msg { return pickerCancelledMsg{} },
	}).SetSize(m.width, m.height)
	return m
}

// ---- key handling ----

func (m Model) handleKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	if key.Matches(msg, m.keymap.Refresh) {
		return m.refresh()
	}

	switch m.step {
	case stepCategory, stepParent, stepChild, stepSpecialization:
		if m.stepLoading() {
			// The spinner owns the step; the picker behind it belongs to
			// the previous selection.
			return m, nil
		}
		var cmd tea.Cmd
		m.picker, cmd = m.picker.Update(msg)
		return m, cmd
	case stepDetails:
		return m.handleDetailsKey(msg)
	case stepAttributes:
		return m.handleAttributesKey(msg)
	}
	return m, nil
}

func (m Model) refresh() (mode.Controller, tea.Cmd) {
	if inv, ok := m.services.Taxonomy.(interface{ Invalidate(context.Context) }); ok {
		inv.Invalidate(context.Background())
	}

	fresh := New(m.services)
	fresh.width, fresh.height = m.width, m.height
	return fresh, fresh.Init()
}

func (m Model) handleDetailsKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		return m.stepBack()
	case key.Matches(msg, m.keymap.Submit):
		return m.advanceToAttributes()
	case key.Matches(msg, m.keymap.Down), key.Matches(msg, m.keymap.Next):
		m = m.focusDetail(m.focus + 1)
		return m, nil
	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Prev):
		m = m.focusDetail(m.focus - 1)
		return m, nil
	case key.Matches(msg, m.keymap.Enter):
		if m.focus == len(m.details)-1 {
			return m.advanceToAttributes()
		}
		m = m.focusDetail(m.focus + 1)
		return m, nil
	}

	f := m.details[m.focus]
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	m.details[m.focus] = f
	m.form.Set(f.name, f.input.Value())
	return m, cmd
}

func (m Model) focusDetail(i int) Model {
	if i < 0 {
		i = 0
	}
	if i > len(m.details)-1 {
		i = len(m.details) - 1
	}
	m.details[m.focus].input.Blur()
	m.focus = i
	m.details[m.focus].input.Focus()
	return m
}

func (m Model) advanceToAttributes() (mode.Controller, tea.Cmd) {
	m.step = stepAttributes
	m.attrs = attrform.New(m.store, m.services.Config.UI.ShowGroupTitles)
	return m, nil
}

func (m Model) handleAttributesKey(msg tea.KeyMsg) (mode.Controller, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Back):
		m.step = stepDetails
		return m, nil
	case key.Matches(msg, m.keymap.Submit):
		return m.trySubmit()
	case key.Matches(msg, m.keymap.Down), key.Matches(msg, m.keymap.Next):
		m.attrs = m.attrs.Next()
		return m, nil
	case key.Matches(msg, m.keymap.Up), key.Matches(msg, m.keymap.Prev):
		m.attrs = m.attrs.Prev()
		return m, nil
	case key.Matches(msg, m.keymap.Enter):
		if m.attrs.AtEnd() {
			return m.trySubmit()
		}
		m.attrs = m.attrs.Next()
		return m, nil
	}

	var cmd tea.Cmd
	m.attrs, cmd = m.attrs.Update(msg)
	return m, cmd
}

func (m Model) trySubmit() (mode.Controller, tea.Cmd) {
	if m.loading.submitting {
		return m, nil
	}
	if missing := m.attrs.MissingRequired(); len(missing) > 0 {
		return m, mode.Toast("Required: "+strings.Join(missing, ", "), toaster.StyleWarn)
	}
	m.loading.submitting = true
	return m, tea.Batch(m.submit(), m.spin.Tick)
}

func (m Model) stepBack() (mode.Controller, tea.Cmd) {
	switch m.step {
	case stepParent:
		m.step = stepCategory
		m = m.showCategoryPicker()
	case stepChild:
		if len(m.sel.Categorized()[m.sel.Category]) > 1 {
			m.step = stepParent
			m = m.showParentPicker()
		} else {
			m.step = stepCategory
			m = m.showCategoryPicker()
		}
	case stepSpecialization:
		m.step = stepChild
		m = m.showChildPicker()
	case stepDetails:
		switch {
		case m.sel.ChildType != nil && len(m.sel.Specializations) > 0:
			m.step = stepSpecialization
			m = m.showSpecializationPicker()
		case len(m.sel.ChildTypes) > 0:
			m.step = stepChild
			m = m.showChildPicker()
		default:
			m.step = stepCategory
			m = m.showCategoryPicker()
		}
	case stepAttributes:
		m.step = stepDetails
	}
	return m, nil
}
