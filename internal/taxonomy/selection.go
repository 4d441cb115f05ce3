package taxonomy

// Sentinel option values used by the selection dropdowns.
const (
	// NoSelection is the placeholder value for an unselected dropdown.
	NoSelection = ""
	// SpecializationNone is the explicit "none" specialization choice.
	SpecializationNone = "none"
	// OtherCategory buckets root types that declare no category.
	OtherCategory = "Other"
)

// EffectKind identifies a side effect requested by a selection transition.
type EffectKind int

const (
	// EffectFetchChildren loads the child types of TypeID.
	EffectFetchChildren EffectKind = iota
	// EffectFetchSpecializations loads the specializations of TypeID.
	EffectFetchSpecializations
	// EffectFetchAttributes loads the dynamic attributes of TypeID.
	EffectFetchAttributes
	// EffectUseEmbedded installs Attributes directly, no fetch needed.
	EffectUseEmbedded
)

// Effect is a side effect the caller must carry out after a transition.
// Transitions stay pure; the surrounding update loop turns effects into
// commands and stamps results with TypeID so stale completions can be
// discarded against the selection that is current when they land.
type Effect struct {
	Kind       EffectKind
	TypeID     ID
	Attributes []Attribute
}

// Selection is the cascading category → parent → child → specialization
// state. Transition methods are value-semantic: they return the successor
// state plus the effects it requires, never mutating the receiver.
type Selection struct {
	Categories  []string
	PlayerTypes []PlayerType

	Category       string
	ParentType     *PlayerType
	ChildType      *PlayerType
	Specialization *Specialization

	ChildTypes      []PlayerType
	Specializations []Specialization
}

// Categorized buckets the known root types by category, with uncategorized
// types under OtherCategory.
func (s Selection) Categorized() map[string][]PlayerType {
	buckets := make(map[string][]PlayerType)
	for _, pt := range s.PlayerTypes {
		category := pt.Category
		if category == "" {
			category = OtherCategory
		}
		buckets[category] = append(buckets[category], pt)
	}
	return buckets
}

// SelectCategory switches to category, clearing every downstream selection.
// When the category holds exactly one root type, that type is selected
// immediately so the user is not asked a question with one answer.
func (s Selection) SelectCategory(category string) (Selection, []Effect) {
	if category == NoSelection {
		return s, nil
	}

	s.Category = category
	s.ParentType = nil
	s.ChildType = nil
	s.Specialization = nil
	s.ChildTypes = nil
	s.Specializations = nil

	types := s.Categorized()[category]
	if len(types) == 1 {
		return s.advanceParent(types[0])
	}
	return s, nil
}

// SelectParentType selects the root type with the given id from the known
// roots. Unknown ids and the placeholder are ignored.
func (s Selection) SelectParentType(id string) (Selection, []Effect) {
	if id == NoSelection {
		return s, nil
	}
	for _, pt := range s.PlayerTypes {
		if pt.ID.String() == id {
			return s.advanceParent(pt)
		}
	}
	return s, nil
}

func (s Selection) advanceParent(pt PlayerType) (Selection, []Effect) {
	s.ParentType = &pt
	s.ChildType = nil
	s.Specialization = nil
	s.Specializations = nil

	effects := []Effect{{Kind: EffectFetchChildren, TypeID: pt.ID}}
	return s, append(effects, resolveAttributes(pt))
}

// SelectChildType selects a child of the current parent. The specialization
// resets because it belonged to the previous child.
func (s Selection) SelectChildType(id string) (Selection, []Effect) {
	if id == NoSelection {
		return s, nil
	}
	for _, ct := range s.ChildTypes {
		if ct.ID.String() == id {
			s.ChildType = &ct
			s.Specialization = nil

			effects := []Effect{{Kind: EffectFetchSpecializations, TypeID: ct.ID}}
			return s, append(effects, resolveAttributes(ct))
		}
	}
	return s, nil
}

// SelectSpecialization selects a specialization of the current child type.
// SpecializationNone and the placeholder clear the choice.
func (s Selection) SelectSpecialization(id string) Selection {
	if id == NoSelection || id == SpecializationNone {
		s.Specialization = nil
		return s
	}
	for _, sp := range s.Specializations {
		if sp.ID.String() == id {
			s.Specialization = &sp
			return s
		}
	}
	return s
}

// ApplyChildren commits a completed child-type fetch. The result is dropped
// when the parent it was fetched for is no longer selected. Reports whether
// the result was applied.
func (s Selection) ApplyChildren(parentID ID, children []PlayerType) (Selection, bool) {
	if s.ParentType == nil || s.ParentType.ID != parentID {
		return s, false
	}
	s.ChildTypes = children
	return s, true
}

// ApplySpecializations commits a completed specialization fetch, dropped
// when the child it was fetched for is no longer selected.
func (s Selection) ApplySpecializations(childID ID, specs []Specialization) (Selection, bool) {
	if s.ChildType == nil || s.ChildType.ID != childID {
		return s, false
	}
	s.Specializations = specs
	return s, true
}

// AttributeOwner is the player type whose attributes should be visible:
// the child type when one is selected, otherwise the parent type. Attribute
// fetch results for any other type are stale.
func (s Selection) AttributeOwner() *PlayerType {
	if s.ChildType != nil {
		return s.ChildType
	}
	return s.ParentType
}

// resolveAttributes prefers attributes embedded on the type node and falls
// back to a fetch when the node carries none.
func resolveAttributes(pt PlayerType) Effect {
	if len(pt.Attributes) > 0 {
		return Effect{Kind: EffectUseEmbedded, TypeID: pt.ID, Attributes: pt.Attributes}
	}
	return Effect{Kind: EffectFetchAttributes, TypeID: pt.ID}
}
