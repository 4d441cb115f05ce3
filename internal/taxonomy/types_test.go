package taxonomy

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestIDUnmarshal(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ID
	}{
		{"string", `"abc-123"`, "abc-123"},
		{"integer", `42`, "42"},
		{"large integer", `9007199254740993`, "9007199254740993"},
		{"null", `null`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var id ID
			require.NoError(t, json.Unmarshal([]byte(tt.json), &id))
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestIDUnmarshal_MixedWireTypesCompareEqual(t *testing.T) {
	var fromString, fromNumber ID
	require.NoError(t, json.Unmarshal([]byte(`"7"`), &fromString))
	require.NoError(t, json.Unmarshal([]byte(`7`), &fromNumber))
	assert.Equal(t, fromString, fromNumber)
}

func TestStringListUnmarshal(t *testing.T) {
	var l StringList
	require.NoError(t, json.Unmarshal([]byte(`["RN","LPN"]`), &l))
	assert.Equal(t, StringList{"RN", "LPN"}, l)

	require.NoError(t, json.Unmarshal([]byte(`"Board Certified"`), &l))
	assert.Equal(t, StringList{"Board Certified"}, l)

	require.NoError(t, json.Unmarshal([]byte(`null`), &l))
	assert.Nil(t, l)
}

func TestAttributeTypeNormalize(t *testing.T) {
	assert.Equal(t, TypeText, AttributeType("string").Normalize())
	assert.Equal(t, TypeSelect, AttributeType("dropdown").Normalize())
	assert.Equal(t, TypeText, AttributeType("hologram").Normalize())
	assert.Equal(t, TypeCheckbox, TypeCheckbox.Normalize())
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, []string{"MD", "DO"}, ParseOptions(`["MD","DO"]`))
	assert.Equal(t, []string{}, ParseOptions(""))
	assert.Equal(t, []string{}, ParseOptions("not json"))
	assert.Equal(t, []string{"a"}, ParseOptions(`["a",""]`), "empty entries are dropped")
}

func TestParseOptions_NeverPanics(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		raw := rapid.String().Draw(t, "raw")
		options := ParseOptions(raw)
		require.NotNil(t, options)
		for _, opt := range options {
			assert.NotEmpty(t, opt)
		}
	})
}

func attributeGen() *rapid.Generator[Attribute] {
	return rapid.Custom(func(t *rapid.T) Attribute {
		return Attribute{
			ID:           ID(rapid.StringMatching(`attr-[0-9]{1,4}`).Draw(t, "id")),
			Name:         rapid.StringMatching(`[a-z_]{1,12}`).Draw(t, "name"),
			Type:         rapid.SampledFrom([]AttributeType{TypeText, TypeNumber, TypeSelect, TypeCheckbox, ""}).Draw(t, "type"),
			DisplayGroup: rapid.SampledFrom([]string{"", "Credentials", "Contact", "Practice"}).Draw(t, "group"),
			DisplayOrder: rapid.IntRange(0, 5).Draw(t, "order"),
		}
	})
}

func TestGroupAttributes_Partition(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attrs := rapid.SliceOfN(attributeGen(), 0, 30).Draw(t, "attrs")
		groups := GroupAttributes(attrs)

		total := 0
		for name, members := range groups {
			require.NotEmpty(t, members, "group %q must not be empty", name)
			for _, attr := range members {
				want := attr.DisplayGroup
				if want == "" {
					want = DefaultGroup
				}
				assert.Equal(t, want, name)
			}
			total += len(members)
		}
		assert.Equal(t, len(attrs), total, "every attribute lands in exactly one group")
	})
}

func TestGroupAttributes_StableOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		attrs := rapid.SliceOfN(attributeGen(), 0, 30).Draw(t, "attrs")
		for i := range attrs {
			attrs[i].ID = ID(fmt.Sprintf("attr-%d", i))
		}
		groups := GroupAttributes(attrs)

		for _, members := range groups {
			for i := 1; i < len(members); i++ {
				assert.LessOrEqual(t, members[i-1].DisplayOrder, members[i].DisplayOrder)
			}
		}

		// Equal display orders keep their original relative order.
		positions := make(map[ID]int, len(attrs))
		for i, attr := range attrs {
			positions[attr.ID] = i
		}
		for _, members := range groups {
			for i := 1; i < len(members); i++ {
				if members[i-1].DisplayOrder == members[i].DisplayOrder {
					assert.Less(t, positions[members[i-1].ID], positions[members[i].ID])
				}
			}
		}
	})
}

func TestGroupOrder_FollowsFirstAppearance(t *testing.T) {
	attrs := []Attribute{
		{ID: "1", DisplayGroup: "Credentials"},
		{ID: "2"},
		{ID: "3", DisplayGroup: "Credentials"},
		{ID: "4", DisplayGroup: "Contact"},
	}
	assert.Equal(t, []string{"Credentials", DefaultGroup, "Contact"}, GroupOrder(attrs))
}
