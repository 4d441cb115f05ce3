// Package taxonomy models the player-type hierarchy driving dynamic
// registration: category → parent type → child type → specialization, with
// server-defined attributes attached at each type level.
package taxonomy

import (
	"encoding/json"
	"sort"
)

// ID is a taxonomy identifier. The backend emits both JSON strings and
// numbers for ids; both normalize to the canonical string form so that
// selection comparisons never depend on the wire type.
type ID string

// UnmarshalJSON accepts strings, numbers, and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	// Numeric id: the raw token is already its canonical string form.
	*id = ID(data)
	return nil
}

// IsZero reports whether the id is absent.
func (id ID) IsZero() bool {
	return id == ""
}

func (id ID) String() string {
	return string(id)
}

// StringList accepts a JSON array of strings or a bare string
// (normalized to a one-element list). Used for qualification and
// service lists on specializations.
type StringList []string

// UnmarshalJSON accepts arrays, bare strings, and null.
func (l *StringList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*l = nil
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*l = list
		return nil
	}
	var single string
	if err := json.Unmarshal(data, &single); err != nil {
		return err
	}
	*l = StringList{single}
	return nil
}

// AttributeType is the declared input type of a dynamic attribute.
type AttributeType string

const (
	TypeText     AttributeType = "text"
	TypeTextarea AttributeType = "textarea"
	TypeNumber   AttributeType = "number"
	TypeEmail    AttributeType = "email"
	TypeSelect   AttributeType = "select"
	TypeCheckbox AttributeType = "checkbox"
	TypeRadio    AttributeType = "radio"
	TypeDate     AttributeType = "date"
)

// Normalize maps wire aliases onto the closed type set. Unknown types
// degrade to text so a new backend type never breaks rendering.
func (t AttributeType) Normalize() AttributeType {
	switch t {
	case TypeText, TypeTextarea, TypeNumber, TypeEmail, TypeSelect, TypeCheckbox, TypeRadio, TypeDate:
		return t
	case "string":
		return TypeText
	case "dropdown":
		return TypeSelect
	default:
		return TypeText
	}
}

// PlayerType is a node in the role taxonomy. Category is only meaningful on
// root nodes; ParentID is empty for roots. A node response may embed its
// children, specializations, and attributes to save round trips.
type PlayerType struct {
	ID          ID     `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ParentID    ID     `json:"parent_id"`
	Category    string `json:"category,omitempty"`
	Icon        string `json:"icon,omitempty"`
	IsActive    bool   `json:"is_active"`

	Children        []PlayerType     `json:"children,omitempty"`
	Specializations []Specialization `json:"specializations,omitempty"`
	Attributes      []Attribute      `json:"attributes,omitempty"`
}

// Specialization is a named refinement of a child-level player type.
type Specialization struct {
	ID             ID         `json:"id"`
	PlayerTypeID   ID         `json:"player_type_id"`
	Name           string     `json:"name"`
	Description    string     `json:"description,omitempty"`
	Qualifications StringList `json:"qualifications,omitempty"`
	Services       StringList `json:"services,omitempty"`
	IsActive       bool       `json:"is_active"`
}

// Attribute is a dynamically defined form field attached to a player type.
type Attribute struct {
	ID              ID            `json:"id"`
	PlayerTypeID    ID            `json:"player_type_id"`
	Name            string        `json:"name"`
	Type            AttributeType `json:"type"`
	IsRequired      bool          `json:"is_required"`
	Options         string        `json:"options,omitempty"`
	ValidationRules StringList    `json:"validation_rules,omitempty"`
	DisplayGroup    string        `json:"display_group,omitempty"`
	DisplayOrder    int           `json:"display_order,omitempty"`
}

// ParseOptions decodes a JSON-encoded option list. Returns an empty list on
// null/empty input or parse failure, and filters out empty entries.
func ParseOptions(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var parsed []string
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return []string{}
	}
	options := make([]string, 0, len(parsed))
	for _, opt := range parsed {
		if opt != "" {
			options = append(options, opt)
		}
	}
	return options
}

// DefaultGroup is used when an attribute declares no display group.
const DefaultGroup = "General"

// Values maps attribute ids to what the user entered. Allowed value kinds
// are string, []string, bool, float64, and nil.
type Values map[string]any

// GroupedAttributes is the derived, group-partitioned view of an attribute
// list. Each group's members are ordered by ascending DisplayOrder with the
// original relative order preserved for equal orders.
type GroupedAttributes map[string][]Attribute

// GroupAttributes partitions attrs by DisplayGroup (DefaultGroup when empty)
// and stable-sorts each group by DisplayOrder.
func GroupAttributes(attrs []Attribute) GroupedAttributes {
	groups := make(GroupedAttributes)
	for _, attr := range attrs {
		group := attr.DisplayGroup
		if group == "" {
			group = DefaultGroup
		}
		groups[group] = append(groups[group], attr)
	}

	for group := range groups {
		members := groups[group]
		sort.SliceStable(members, func(i, j int) bool {
			return members[i].DisplayOrder < members[j].DisplayOrder
		})
	}
	return groups
}

// GroupOrder returns group names in order of first appearance in attrs,
// giving the rendered form a deterministic layout that follows the
// server-declared attribute order.
func GroupOrder(attrs []Attribute) []string {
	seen := make(map[string]bool)
	var order []string
	for _, attr := range attrs {
		group := attr.DisplayGroup
		if group == "" {
			group = DefaultGroup
		}
		if !seen[group] {
			seen[group] = true
			order = append(order, group)
		}
	}
	return order
}
