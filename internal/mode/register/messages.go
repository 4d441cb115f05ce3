package register

import (
	"careport/internal/taxonomy"
)

// Fetch completion messages. Results that target a selection level carry the
// id they were fetched for, so the update loop can drop completions that
// arrive after the selection has moved on.

type categoriesMsg struct {
	categories []string
	err        error
}

type typesMsg struct {
	category string
	types    []taxonomy.PlayerType
	err      error
}

type childrenMsg struct {
	parentID taxonomy.ID
	children []taxonomy.PlayerType
	err      error
}

type specializationsMsg struct {
	childID taxonomy.ID
	specs   []taxonomy.Specialization
	err     error
}

type attributesMsg struct {
	typeID taxonomy.ID
	attrs  []taxonomy.Attribute
	err    error
}

type submittedMsg struct {
	err error
}

// Picker selections.

type pickedCategoryMsg struct{ value string }
type pickedParentMsg struct{ value string }
type pickedChildMsg struct{ value string }
type pickedSpecializationMsg struct{ value string }
type pickerCancelledMsg struct{}
