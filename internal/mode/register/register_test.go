package register

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careport/internal/api"
	"careport/internal/config"
	"careport/internal/mode"
	"careport/internal/session"
	"careport/internal/taxonomy"
)

// fakeFetcher serves canned taxonomy data; the wizard tests drive fetch
// completions by delivering messages directly, so its methods only matter
// for commands the tests choose to run.
type fakeFetcher struct {
	categories []string
	types      []taxonomy.PlayerType
	children   map[taxonomy.ID][]taxonomy.PlayerType
	specs      map[taxonomy.ID][]taxonomy.Specialization
	attrs      map[taxonomy.ID][]taxonomy.Attribute
}

func (f *fakeFetcher) Categories(context.Context) ([]string, error) { return f.categories, nil }
func (f *fakeFetcher) PlayerTypes(_ context.Context, category string) ([]taxonomy.PlayerType, error) {
	return f.types, nil
}
func (f *fakeFetcher) PlayerType(_ context.Context, id taxonomy.ID) (*taxonomy.PlayerType, error) {
	for i := range f.types {
		if f.types[i].ID == id {
			return &f.types[i], nil
		}
	}
	return nil, errors.New("not found")
}
func (f *fakeFetcher) Children(_ context.Context, id taxonomy.ID) ([]taxonomy.PlayerType, error) {
	return f.children[id], nil
}
func (f *fakeFetcher) Specializations(_ context.Context, id taxonomy.ID) ([]taxonomy.Specialization, error) {
	return f.specs[id], nil
}
func (f *fakeFetcher) Attributes(_ context.Context, id taxonomy.ID) ([]taxonomy.Attribute, error) {
	return f.attrs[id], nil
}

func testServices() mode.Services {
	cfg := config.Defaults()
	return mode.Services{
		Taxonomy: &fakeFetcher{},
		Config:   &cfg,
	}
}

func loaded(t *testing.T) Model {
	t.Helper()
	m := New(testServices()).SetSize(80, 24).(Model)

	next, _ := m.Update(categoriesMsg{categories: []string{"Medical Staff", "Facilities"}})
	next, _ = next.Update(typesMsg{types: []taxonomy.PlayerType{
		{ID: "doc", Name: "Doctor", Category: "Medical Staff"},
		{ID: "nurse", Name: "Nurse", Category: "Medical Staff"},
		{ID: "hospital", Name: "Hospital", Category: "Facilities"},
	}})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestStartupShowsCategoryPicker(t *testing.T) {
	m := loaded(t)
	assert.Equal(t, stepCategory, m.step)
	assert.Contains(t, m.View(), "Select a category")
	assert.Contains(t, m.View(), "Medical Staff")
}

func TestCategoryWithMultipleTypesShowsParentPicker(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})

	assert.Equal(t, stepParent, m.step)
	assert.Nil(t, m.sel.ParentType)
	assert.Contains(t, m.View(), "Select a role")
}

func TestSingleTypeCategoryAutoAdvances(t *testing.T) {
	m := loaded(t)
	m, cmd := update(t, m, pickedCategoryMsg{value: "Facilities"})

	require.NotNil(t, m.sel.ParentType)
	assert.Equal(t, taxonomy.ID("hospital"), m.sel.ParentType.ID)
	assert.Equal(t, stepChild, m.step, "the parent picker is skipped")
	assert.True(t, m.loading.children)
	assert.NotNil(t, cmd)
	assert.Equal(t, "hospital", m.form.Value("player_type_id"))
}

func TestStaleChildrenResultDropped(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "nurse"})

	// A slow fetch for a previously selected parent lands late.
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon"}}})
	assert.Empty(t, m.sel.ChildTypes)

	m, _ = update(t, m, childrenMsg{parentID: "nurse", children: []taxonomy.PlayerType{{ID: "rn", Name: "RN"}}})
	require.Len(t, m.sel.ChildTypes, 1)
	assert.Contains(t, m.View(), "RN")
}

func TestStaleChildrenResultKeepsSpinner(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, pickedParentMsg{value: "nurse"})
	require.True(t, m.loading.children)

	// The first parent's fetch resolves late. The flag tracks the nurse
	// fetch that is still outstanding, so it must survive.
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon"}}})
	assert.True(t, m.loading.children)

	m, _ = update(t, m, childrenMsg{parentID: "nurse", children: []taxonomy.PlayerType{{ID: "rn", Name: "RN"}}})
	assert.False(t, m.loading.children)
}

func TestChildrenFetchErrorKeepsCommittedList(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon", Name: "Surgeon"}}})
	require.Len(t, m.sel.ChildTypes, 1)

	// Re-selecting the same parent refetches; a failure must not wipe the
	// list the picker is already showing.
	m.step = stepParent
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", err: errors.New("boom")})

	assert.False(t, m.loading.children)
	require.Len(t, m.sel.ChildTypes, 1)
	assert.Equal(t, stepChild, m.step)
	assert.Contains(t, m.View(), "Surgeon")
}

func TestPickerKeysIgnoredWhileLoading(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	require.True(t, m.loading.children)
	require.Equal(t, stepChild, m.step)

	// The picker behind the spinner still holds the previous list; keys
	// must not reach it until the fetch lands.
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stepChild, m.step)
	assert.Nil(t, m.sel.ChildType)
}

func TestNoChildrenSkipsToDetails(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Facilities"})
	m, _ = update(t, m, childrenMsg{parentID: "hospital"})

	assert.Equal(t, stepDetails, m.step)
	assert.Contains(t, m.View(), "Your details")
}

func TestSkipChildGoesToDetails(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon", Name: "Surgeon"}}})

	m, _ = update(t, m, pickedChildMsg{value: skipValue})
	assert.Equal(t, stepDetails, m.step)
	assert.Nil(t, m.sel.ChildType)
}

func TestSpecializationNoneResetsFormField(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon", Name: "Surgeon"}}})
	m, _ = update(t, m, pickedChildMsg{value: "surgeon"})
	m, _ = update(t, m, specializationsMsg{childID: "surgeon", specs: []taxonomy.Specialization{{ID: "cardiac", Name: "Cardiac"}}})

	m, _ = update(t, m, pickedSpecializationMsg{value: "cardiac"})
	assert.Equal(t, "cardiac", m.form.Value("sub_specialization_id"))

	// Go back and pick "none"; the form field must reset to empty.
	m.step = stepSpecialization
	m, _ = update(t, m, pickedSpecializationMsg{value: taxonomy.SpecializationNone})
	assert.Nil(t, m.sel.Specialization)
	assert.Equal(t, "", m.form.Value("sub_specialization_id"))
	assert.Equal(t, stepDetails, m.step)
}

func TestEmbeddedAttributesSkipFetch(t *testing.T) {
	m := New(testServices()).SetSize(80, 24).(Model)
	m, _ = update(t, m, categoriesMsg{categories: []string{"Medical Staff"}})
	m, _ = update(t, m, typesMsg{types: []taxonomy.PlayerType{{
		ID: "doc", Name: "Doctor", Category: "Medical Staff",
		Attributes: []taxonomy.Attribute{{ID: "lic", Name: "license_number"}},
	}}})

	m, cmd := update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	require.NotNil(t, cmd)
	assert.False(t, m.loading.attributes, "embedded attributes need no fetch")

	// Running the batched command delivers the embedded-attribute message.
	m, _ = update(t, m, attributesMsg{typeID: "doc", attrs: []taxonomy.Attribute{{ID: "lic", Name: "license_number"}}})
	assert.Len(t, m.store.Attributes(), 1)
}

func TestStaleAttributesDropped(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon", Name: "Surgeon"}}})
	m, _ = update(t, m, pickedChildMsg{value: "surgeon"})

	// The parent's attribute fetch resolves after the child was selected.
	m, _ = update(t, m, attributesMsg{typeID: "doc", attrs: []taxonomy.Attribute{{ID: "old"}}})
	assert.Empty(t, m.store.Attributes())

	m, _ = update(t, m, attributesMsg{typeID: "surgeon", attrs: []taxonomy.Attribute{{ID: "new"}}})
	require.Len(t, m.store.Attributes(), 1)
	assert.Equal(t, taxonomy.ID("new"), m.store.Attributes()[0].ID)
}

func TestStaleAttributesKeepSpinner(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})
	m, _ = update(t, m, childrenMsg{parentID: "doc", children: []taxonomy.PlayerType{{ID: "surgeon", Name: "Surgeon"}}})
	m, _ = update(t, m, pickedChildMsg{value: "surgeon"})
	require.True(t, m.loading.attributes)

	// The parent's fetch resolving late must not extinguish the flag for
	// the child's fetch still in flight.
	m, _ = update(t, m, attributesMsg{typeID: "doc", attrs: []taxonomy.Attribute{{ID: "old"}}})
	assert.True(t, m.loading.attributes)

	m, _ = update(t, m, attributesMsg{typeID: "surgeon", attrs: []taxonomy.Attribute{{ID: "new"}}})
	assert.False(t, m.loading.attributes)
}

func TestEmptyAttributeResultKeepsExisting(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Medical Staff"})
	m, _ = update(t, m, pickedParentMsg{value: "doc"})

	m, _ = update(t, m, attributesMsg{typeID: "doc", attrs: []taxonomy.Attribute{{ID: "lic"}}})
	m, _ = update(t, m, attributesMsg{typeID: "doc", attrs: nil})
	assert.Len(t, m.store.Attributes(), 1)
}

func TestSubmitSuccessResetsWizard(t *testing.T) {
	m := loaded(t)
	m, _ = update(t, m, pickedCategoryMsg{value: "Facilities"})
	m.form.Set("name", "Ada")

	m, cmd := update(t, m, submittedMsg{})
	require.NotNil(t, cmd)
	toast, ok := cmd().(mode.ShowToastMsg)
	require.True(t, ok)
	assert.Contains(t, toast.Message, "successful")

	assert.Equal(t, stepCategory, m.step)
	assert.Equal(t, "", m.form.Value("name"))
	assert.NotEmpty(t, m.sel.Categories, "known taxonomy survives the reset")
}

func TestSubmitPostsLoopSnapshot(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	client, err := api.NewClient(api.Config{
		BaseURL: srv.URL,
		Tokens:  session.NewTokenStore(filepath.Join(t.TempDir(), "token")),
	})
	require.NoError(t, err)

	m := loaded(t)
	m.services.Client = client
	m, _ = update(t, m, pickedCategoryMsg{value: "Facilities"})
	m.form.Set("name", "Ada")

	cmd := m.submit()
	// The payload is assembled before the command runs; edits made while
	// the request is in flight must not leak into it.
	m.form.Set("name", "Changed")

	msg, ok := cmd().(submittedMsg)
	require.True(t, ok)
	require.NoError(t, msg.err)
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, "hospital", got["player_type_id"])
}

func TestSubmitValidationErrorsSurface(t *testing.T) {
	m := loaded(t)
	m.step = stepAttributes

	err := &api.ValidationError{Status: 422, Errors: map[string][]string{
		"email": {"has already been taken"},
	}}
	m.form.Set("email", "dup@example.com")

	m, cmd := update(t, m, submittedMsg{err: err})
	assert.Equal(t, stepDetails, m.step, "validation errors send the user back to the fields")
	require.NotNil(t, cmd)
	toast := cmd().(mode.ShowToastMsg)
	assert.Contains(t, toast.Message, "has already been taken")
	assert.Contains(t, m.View(), "has already been taken", "field errors render under their inputs")
}

func TestSessionExpiryToast(t *testing.T) {
	m := loaded(t)
	m, cmd := update(t, m, submittedMsg{err: api.ErrSessionExpired})
	require.NotNil(t, cmd)
	toast := cmd().(mode.ShowToastMsg)
	assert.Contains(t, toast.Message, "Session expired")
}

func TestDetailsTyping(t *testing.T) {
	m := loaded(t)
	m.step = stepDetails

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("A")})
	assert.Equal(t, "A", m.form.Value("name"))

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Equal(t, 1, m.focus)
}

func TestHintsFollowConfig(t *testing.T) {
	m := loaded(t)
	assert.True(t, strings.Contains(m.View(), "enter select"))

	m.services.Config.UI.ShowHints = false
	assert.False(t, strings.Contains(m.View(), "enter select"))
	m.services.Config.UI.ShowHints = true
}
