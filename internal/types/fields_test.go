package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetTypeChecking(t *testing.T) {
	tests := []struct {
		name    string
		field   FieldName
		value   any
		wantErr bool
	}{
		{"Text accepts string", FieldCreatorName, "Ana", false},
		{"Text rejects number", FieldCreatorName, 42, true},
		{"Single choice accepts string", FieldAudienceGender, "female", false},
		{"Multi choice accepts []string", FieldPlatforms, []string{"instagram"}, false},
		{"Multi choice accepts []any of strings", FieldPlatforms, []any{"tiktok", "youtube"}, false},
		{"Multi choice rejects mixed []any", FieldPlatforms, []any{"tiktok", 7}, true},
		{"Multi choice rejects string", FieldPlatforms, "instagram", true},
		{"Range accepts int", FieldAgeMin, 21, false},
		{"Range accepts float64 from JSON", FieldAgeMax, float64(45), false},
		{"Range rejects string", FieldAgeMin, "21", true},
		{"Tone accepts map[string]string", FieldTone, map[string]string{"tiktok": "edgy"}, false},
		{"Tone accepts map[string]any of strings", FieldTone, map[string]any{"tiktok": "edgy"}, false},
		{"Tone rejects non-string values", FieldTone, map[string]any{"tiktok": 3}, true},
		{"Unknown field", FieldName("bogus"), "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDraft()
			err := d.Set(tt.field, tt.value)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSetClampsAgeBounds(t *testing.T) {
	d := NewDraft()

	require.NoError(t, d.Set(FieldAgeMin, 10))
	assert.Equal(t, MinAudienceAge, d.AgeMin)

	require.NoError(t, d.Set(FieldAgeMax, 120))
	assert.Equal(t, MaxAudienceAge, d.AgeMax)
}

func TestSetDedupesSequence(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.Set(FieldLanguages, []string{"English", "Spanish", "English"}))
	assert.Equal(t, []string{"English", "Spanish"}, d.Languages)
}

func TestToggleItem(t *testing.T) {
	d := NewDraft()

	require.NoError(t, d.ToggleItem(FieldPlatforms, "instagram", true))
	require.NoError(t, d.ToggleItem(FieldPlatforms, "tiktok", true))
	assert.Equal(t, []string{"instagram", "tiktok"}, d.Platforms)

	// Adding an existing item is a no-op, not a duplicate.
	require.NoError(t, d.ToggleItem(FieldPlatforms, "instagram", true))
	assert.Equal(t, []string{"instagram", "tiktok"}, d.Platforms)

	require.NoError(t, d.ToggleItem(FieldPlatforms, "instagram", false))
	assert.Equal(t, []string{"tiktok"}, d.Platforms)

	// Removing an absent item is a no-op.
	require.NoError(t, d.ToggleItem(FieldPlatforms, "pinterest", false))
	assert.Equal(t, []string{"tiktok"}, d.Platforms)
}

func TestToggleItemRejectsScalarFields(t *testing.T) {
	d := NewDraft()
	err := d.ToggleItem(FieldCreatorName, "x", true)
	assert.Error(t, err)

	var typeErr *ErrFieldType
	assert.ErrorAs(t, err, &typeErr)
}

func TestFieldEmpty(t *testing.T) {
	d := NewDraft()

	for _, spec := range Fields() {
		assert.True(t, d.FieldEmpty(spec.Name), "new draft field %s should be empty", spec.Name)
	}

	require.NoError(t, d.Set(FieldBio, "hello"))
	require.NoError(t, d.Set(FieldGoals, []string{"Grow my audience"}))
	require.NoError(t, d.Set(FieldAgeMin, 20))
	require.NoError(t, d.Set(FieldTone, map[string]string{"instagram": "warm"}))

	assert.False(t, d.FieldEmpty(FieldBio))
	assert.False(t, d.FieldEmpty(FieldGoals))
	assert.False(t, d.FieldEmpty(FieldAgeMin))
	assert.False(t, d.FieldEmpty(FieldTone))
}

func TestGetRoundTrip(t *testing.T) {
	d := NewDraft()
	require.NoError(t, d.Set(FieldPrimaryNiche, "street food"))

	value, err := d.Get(FieldPrimaryNiche)
	require.NoError(t, err)
	assert.Equal(t, "street food", value)

	_, err = d.Get(FieldName("bogus"))
	var unknownErr *ErrUnknownField
	assert.ErrorAs(t, err, &unknownErr)
}

func TestSubmitAllowlistCoversCatalog(t *testing.T) {
	allow := SubmitAllowlist()
	for _, spec := range Fields() {
		assert.True(t, allow[spec.Name], "field %s should be submittable", spec.Name)
	}
	assert.False(t, allow[FieldName("internal_state")])
}
