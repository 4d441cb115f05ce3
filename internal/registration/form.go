// Package registration owns the primitive registration form fields and
// assembles the outbound payload from form values, the taxonomy selection,
// and the entered attribute values.
package registration

import (
	"context"
	"errors"

	"careport/internal/api"
	"careport/internal/log"
	"careport/internal/taxonomy"
)

// Endpoint is the registration POST target, relative to the API base.
const Endpoint = "/auth/register"

// Form field names. These match the backend contract verbatim.
const (
	FieldName                  = "name"
	FieldEmail                 = "email"
	FieldPassword              = "password"
	FieldPasswordConfirmation  = "password_confirmation"
	FieldPlayerTypeID          = "player_type_id"
	FieldDateOfBirth           = "date_of_birth"
	FieldPhoneNumber           = "phone_number"
	FieldAddress               = "address"
	FieldEmergencyName         = "emergency_contact_name"
	FieldEmergencyPhone        = "emergency_contact_phone"
	FieldEmergencyRelationship = "emergency_contact_relationship_id"
	FieldSpecializationID      = "specialization_id"
	FieldSubSpecializationID   = "sub_specialization_id"
)

// BaseFields is the fixed set of primitive fields, in render order.
var BaseFields = []string{
	FieldName,
	FieldEmail,
	FieldPassword,
	FieldPasswordConfirmation,
	FieldDateOfBirth,
	FieldPhoneNumber,
	FieldAddress,
	FieldEmergencyName,
	FieldEmergencyPhone,
	FieldEmergencyRelationship,
}

// Poster issues the registration request. *api.Client satisfies it.
type Poster interface {
	Post(ctx context.Context, path string, body, out any) error
}

// Form holds the primitive field values and the most recent server
// validation errors. Owned by a single update loop.
type Form struct {
	values map[string]string
	errors map[string][]string
}

func New() *Form {
	f := &Form{
		values: make(map[string]string),
		errors: make(map[string][]string),
	}
	for _, field := range BaseFields {
		f.values[field] = ""
	}
	f.values[FieldPlayerTypeID] = ""
	return f
}

// Set records one field value. No cross-field validation happens client
// side; the server is the authority and reports back per field.
func (f *Form) Set(name, value string) {
	f.values[name] = value
}

// Value returns the recorded value for a field, empty when unset.
func (f *Form) Value(name string) string {
	return f.values[name]
}

// Merge bulk-applies field updates.
func (f *Form) Merge(updates map[string]string) {
	for name, value := range updates {
		f.values[name] = value
	}
}

// SelectionUpdates maps the taxonomy selection onto form identifier fields:
// the parent type feeds player_type_id, the child type specialization_id,
// and the specialization sub_specialization_id. Absent levels map to the
// empty string so a retracted choice is propagated, not left stale.
func SelectionUpdates(sel taxonomy.Selection) map[string]string {
	updates := map[string]string{
		FieldPlayerTypeID:        "",
		FieldSpecializationID:    "",
		FieldSubSpecializationID: "",
	}
	if sel.ParentType != nil {
		updates[FieldPlayerTypeID] = sel.ParentType.ID.String()
	}
	if sel.ChildType != nil {
		updates[FieldSpecializationID] = sel.ChildType.ID.String()
	}
	if sel.Specialization != nil {
		updates[FieldSubSpecializationID] = sel.Specialization.ID.String()
	}
	return updates
}

// BuildMetadata re-keys identifier-keyed attribute values into the nested
// group → attribute name → value structure the backend stores. Values whose
// identifier is not in groups are dropped; they belong to a type that is no
// longer selected.
func BuildMetadata(values taxonomy.Values, groups taxonomy.GroupedAttributes) map[string]map[string]any {
	info := make(map[string]struct{ name, group string })
	for groupName, attrs := range groups {
		for _, attr := range attrs {
			info[attr.ID.String()] = struct{ name, group string }{attr.Name, groupName}
		}
	}

	metadata := make(map[string]map[string]any)
	for id, value := range values {
		attr, ok := info[id]
		if !ok {
			continue
		}
		if metadata[attr.group] == nil {
			metadata[attr.group] = make(map[string]any)
		}
		metadata[attr.group][attr.name] = value
	}
	return metadata
}

// BuildPayload composes the outbound registration body: the flat form
// fields, the selection identifiers (player_type is the category string),
// and the nested metadata. date_of_birth is omitted entirely when blank;
// its absence, not a null, is what the backend contract keys on.
func (f *Form) BuildPayload(sel taxonomy.Selection, values taxonomy.Values, groups taxonomy.GroupedAttributes) map[string]any {
	payload := make(map[string]any, len(f.values)+5)
	for name, value := range f.values {
		payload[name] = value
	}

	payload["player_type"] = sel.Category
	payload[FieldPlayerTypeID] = ""
	payload[FieldSpecializationID] = ""
	payload[FieldSubSpecializationID] = ""
	if sel.ParentType != nil {
		payload[FieldPlayerTypeID] = sel.ParentType.ID.String()
	}
	if sel.ChildType != nil {
		payload[FieldSpecializationID] = sel.ChildType.ID.String()
	}
	if sel.Specialization != nil {
		payload[FieldSubSpecializationID] = sel.Specialization.ID.String()
	}
	payload["metadata"] = BuildMetadata(values, groups)

	if f.values[FieldDateOfBirth] == "" {
		delete(payload, FieldDateOfBirth)
	}
	return payload
}

// Submit posts an assembled payload. The payload must be snapshotted with
// BuildPayload on the update loop that owns the form; this function only
// performs the request, so commands may call it from their goroutine while
// the user keeps editing.
func Submit(ctx context.Context, client Poster, payload map[string]any) error {
	log.Info(log.CatForm, "submitting registration", "player_type", payload["player_type"], "fields", len(payload))

	if err := client.Post(ctx, Endpoint, payload, nil); err != nil {
		var verr *api.ValidationError
		if errors.As(err, &verr) {
			log.Warn(log.CatForm, "registration rejected", "fields", len(verr.Errors))
		} else {
			log.ErrorErr(log.CatForm, "registration failed", err)
		}
		return err
	}
	return nil
}

// RecordResult stores the outcome of a submit attempt, back on the owning
// loop. Validation errors land per field; any other outcome, success
// included, clears previously recorded errors.
func (f *Form) RecordResult(err error) {
	f.errors = make(map[string][]string)

	var verr *api.ValidationError
	if errors.As(err, &verr) && verr.Errors != nil {
		f.errors = verr.Errors
	}
}

// FieldErrors returns the server validation messages for one field.
func (f *Form) FieldErrors(name string) []string {
	return f.errors[name]
}

// HasErrors reports whether any server validation errors are recorded.
func (f *Form) HasErrors() bool {
	return len(f.errors) > 0
}
