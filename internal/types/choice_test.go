package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseChoice(t *testing.T) {
	tests := []struct {
		name      string
		field     FieldName
		value     string
		others    OtherInputs
		wantEmpty bool
		wantOther bool
		resolved  string
	}{
		{
			name:     "Known option",
			field:    FieldCreatorType,
			value:    "Tech & Gaming",
			resolved: "Tech & Gaming",
		},
		{
			name:      "Sentinel without override is empty",
			field:     FieldCreatorType,
			value:     OtherCreatorType,
			wantEmpty: true,
			wantOther: true,
			resolved:  OtherCreatorType,
		},
		{
			name:      "Sentinel with override resolves to override",
			field:     FieldCreatorType,
			value:     OtherCreatorType,
			others:    OtherInputs{FieldCreatorType: "Astrophotography"},
			wantOther: true,
			resolved:  "Astrophotography",
		},
		{
			name:      "Niche sentinel",
			field:     FieldContentNiches,
			value:     OtherNicheCategory,
			others:    OtherInputs{FieldContentNiches: "Urban beekeeping"},
			wantOther: true,
			resolved:  "Urban beekeeping",
		},
		{
			name:      "Empty value",
			field:     FieldCreatorType,
			value:     "",
			wantEmpty: true,
			resolved:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := ParseChoice(tt.field, tt.value, tt.others)
			assert.Equal(t, tt.wantEmpty, c.Empty())
			assert.Equal(t, tt.wantOther, c.IsOther())
			assert.Equal(t, tt.resolved, c.Resolved())
		})
	}
}

func TestOptionListsContainSentinels(t *testing.T) {
	assert.Contains(t, CreatorTypes(), OtherCreatorType)
	assert.Contains(t, NicheCategories(), OtherNicheCategory)
	assert.Contains(t, Goals(), OtherGoal)
	assert.Equal(t, []string{"female", "male", "all"}, AudienceGenders())
}
