// Package types provides type definitions for the creator onboarding draft and
// the structured data exchanged with its collaborators.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Audience age bounds. Age values outside this domain are clamped, never rejected.
const (
	MinAudienceAge = 16
	MaxAudienceAge = 90
)

// Draft is the in-progress, unsubmitted onboarding form state.
// Multi-choice fields are always non-nil slices, even before population.
type Draft struct {
	CreatorName      string            `json:"creator_name,omitempty"`
	CreatorType      string            `json:"creator_type,omitempty"`
	PrimaryNiche     string            `json:"primary_niche,omitempty"`
	ContentNiches    []string          `json:"content_niches"`
	Bio              string            `json:"bio,omitempty"`
	Location         string            `json:"location,omitempty"`
	Languages        []string          `json:"languages"`
	Platforms        []string          `json:"platforms"`
	ContentTypes     []string          `json:"content_types"`
	MediaOptions     []string          `json:"media_options"`
	PostingFrequency string            `json:"posting_frequency,omitempty"`
	Goals            []string          `json:"goals"`
	AudienceGender   string            `json:"audience_gender,omitempty"`
	AgeMin           int               `json:"age_min,omitempty"`
	AgeMax           int               `json:"age_max,omitempty"`
	Tone             map[string]string `json:"tone"`
}

// NewDraft returns an empty draft with all sequence and map fields initialized.
func NewDraft() Draft {
	return Draft{
		ContentNiches: []string{},
		Languages:     []string{},
		Platforms:     []string{},
		ContentTypes:  []string{},
		MediaOptions:  []string{},
		Goals:         []string{},
		Tone:          map[string]string{},
	}
}

// Clone returns a deep copy of the draft. Merge and submit operations work on
// clones so the caller's draft is never mutated in place.
func (d Draft) Clone() Draft {
	c := d
	c.ContentNiches = append([]string{}, d.ContentNiches...)
	c.Languages = append([]string{}, d.Languages...)
	c.Platforms = append([]string{}, d.Platforms...)
	c.ContentTypes = append([]string{}, d.ContentTypes...)
	c.MediaOptions = append([]string{}, d.MediaOptions...)
	c.Goals = append([]string{}, d.Goals...)
	c.Tone = make(map[string]string, len(d.Tone))
	for k, v := range d.Tone {
		c.Tone[k] = v
	}
	return c
}

// Normalize enforces the draft invariants in place: sequence fields are never
// nil, the tone map is never nil, and the age range is clamped to the audience
// age domain with min <= max.
func (d *Draft) Normalize() {
	if d.ContentNiches == nil {
		d.ContentNiches = []string{}
	}
	if d.Languages == nil {
		d.Languages = []string{}
	}
	if d.Platforms == nil {
		d.Platforms = []string{}
	}
	if d.ContentTypes == nil {
		d.ContentTypes = []string{}
	}
	if d.MediaOptions == nil {
		d.MediaOptions = []string{}
	}
	if d.Goals == nil {
		d.Goals = []string{}
	}
	if d.Tone == nil {
		d.Tone = map[string]string{}
	}
	if d.AgeMin != 0 || d.AgeMax != 0 {
		r := AgeRange{Min: d.AgeMin, Max: d.AgeMax}.Clamp()
		d.AgeMin, d.AgeMax = r.Min, r.Max
	}
}

// AgeRange is an inclusive audience age range. The zero value means "not set".
type AgeRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

// Empty reports whether the range is unset.
func (r AgeRange) Empty() bool {
	return r.Min == 0 && r.Max == 0
}

// Clamp bounds the range to the audience age domain and repairs inverted
// bounds by collapsing them to the clamped minimum.
func (r AgeRange) Clamp() AgeRange {
	if r.Empty() {
		return r
	}
	if r.Min < MinAudienceAge {
		r.Min = MinAudienceAge
	}
	if r.Min > MaxAudienceAge {
		r.Min = MaxAudienceAge
	}
	if r.Max > MaxAudienceAge {
		r.Max = MaxAudienceAge
	}
	if r.Max < r.Min {
		r.Max = r.Min
	}
	return r
}

// Union expands the range to cover both r and other, ignoring unset operands.
func (r AgeRange) Union(other AgeRange) AgeRange {
	if r.Empty() {
		return other
	}
	if other.Empty() {
		return r
	}
	if other.Min < r.Min {
		r.Min = other.Min
	}
	if other.Max > r.Max {
		r.Max = other.Max
	}
	return r
}

// OtherInputs maps a choice field carrying the "Other" sentinel to the user's
// free-text override. It is not part of the persisted draft schema; overrides
// are merged into the payload at submit time only.
type OtherInputs map[FieldName]string
