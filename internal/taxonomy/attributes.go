package taxonomy

import (
	"careport/internal/log"
)

// AttributeStore holds the dynamic attribute definitions for the currently
// selected player type together with the user's entered values. It is owned
// by a single update loop and is not safe for concurrent use.
type AttributeStore struct {
	attributes []Attribute
	values     Values
	errors     map[ID]string
}

func NewAttributeStore() *AttributeStore {
	return &AttributeStore{
		values: make(Values),
		errors: make(map[ID]string),
	}
}

// Attributes returns the current definitions.
func (s *AttributeStore) Attributes() []Attribute {
	return s.attributes
}

// SetAttributes replaces the current definitions. An empty incoming list is
// ignored when definitions are already present, so a late or empty fetch for
// a parent type never wipes the richer set a child already installed.
// Reports whether the replacement happened.
func (s *AttributeStore) SetAttributes(attrs []Attribute) bool {
	if len(attrs) == 0 && len(s.attributes) > 0 {
		log.Debug(log.CatTaxonomy, "skipping empty attribute replace", "current", len(s.attributes))
		return false
	}
	s.attributes = attrs
	return true
}

// ApplyFetched commits the result of an attribute fetch for typeID. A
// missing type id is a logged no-op; a fetch error is recorded under the
// requested type id and leaves the current
// definitions untouched; a success clears the recorded error and applies the
// same non-empty-replace guard as SetAttributes.
func (s *AttributeStore) ApplyFetched(typeID ID, attrs []Attribute, err error) {
	if typeID == "" {
		log.Warn(log.CatTaxonomy, "attribute result without a type id ignored")
		return
	}
	if err != nil {
		log.ErrorErr(log.CatTaxonomy, "attribute fetch failed", err, "typeID", typeID)
		s.errors[typeID] = err.Error()
		return
	}
	delete(s.errors, typeID)
	s.SetAttributes(attrs)
}

// Error returns the recorded fetch error for typeID, empty when none.
func (s *AttributeStore) Error(typeID ID) string {
	return s.errors[typeID]
}

// SetValue records the user's value for an attribute.
func (s *AttributeStore) SetValue(id ID, value any) {
	s.values[id.String()] = value
}

// Value returns the recorded value for an attribute, nil when unset.
func (s *AttributeStore) Value(id ID) any {
	return s.values[id.String()]
}

// Values returns a copy of all recorded values.
func (s *AttributeStore) Values() Values {
	out := make(Values, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// ResetValues discards all entered values. Definitions are kept.
func (s *AttributeStore) ResetValues() {
	s.values = make(Values)
}

// Reset discards definitions, values, and recorded errors.
func (s *AttributeStore) Reset() {
	s.attributes = nil
	s.values = make(Values)
	s.errors = make(map[ID]string)
}

// Grouped returns the current definitions partitioned by display group.
func (s *AttributeStore) Grouped() GroupedAttributes {
	return GroupAttributes(s.attributes)
}
