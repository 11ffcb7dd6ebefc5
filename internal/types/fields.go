package types

import "fmt"

// FieldName identifies a draft field.
type FieldName string

// Draft field names. These are also the JSON keys used in persisted snapshots
// and in the submit payload.
const (
	FieldCreatorName      FieldName = "creator_name"
	FieldCreatorType      FieldName = "creator_type"
	FieldPrimaryNiche     FieldName = "primary_niche"
	FieldContentNiches    FieldName = "content_niches"
	FieldBio              FieldName = "bio"
	FieldLocation         FieldName = "location"
	FieldLanguages        FieldName = "languages"
	FieldPlatforms        FieldName = "platforms"
	FieldContentTypes     FieldName = "content_types"
	FieldMediaOptions     FieldName = "media_options"
	FieldPostingFrequency FieldName = "posting_frequency"
	FieldGoals            FieldName = "goals"
	FieldAudienceGender   FieldName = "audience_gender"
	FieldAgeMin           FieldName = "age_min"
	FieldAgeMax           FieldName = "age_max"
	FieldTone             FieldName = "tone"
)

// FieldKind categorizes how a field's value is typed and merged.
type FieldKind string

// Field kinds.
const (
	KindText         FieldKind = "text"
	KindSingleChoice FieldKind = "single_choice"
	KindMultiChoice  FieldKind = "multi_choice"
	KindRange        FieldKind = "range"
	KindToneMap      FieldKind = "tone_map"
)

// FieldSpec describes a draft field: its kind, whether it is part of the
// backend submit allowlist, and whether it supports a free-text "Other" entry.
type FieldSpec struct {
	Name          FieldName
	Kind          FieldKind
	Submit        bool
	SupportsOther bool
	Options       []string // fixed options for choice fields, nil for open fields
}

// fieldCatalog is the authoritative, ordered list of draft fields.
var fieldCatalog = []FieldSpec{
	{Name: FieldCreatorName, Kind: KindText, Submit: true},
	{Name: FieldCreatorType, Kind: KindSingleChoice, Submit: true, SupportsOther: true, Options: CreatorTypes()},
	{Name: FieldPrimaryNiche, Kind: KindText, Submit: true},
	{Name: FieldContentNiches, Kind: KindMultiChoice, Submit: true, SupportsOther: true, Options: NicheCategories()},
	{Name: FieldBio, Kind: KindText, Submit: true},
	{Name: FieldLocation, Kind: KindText, Submit: true},
	{Name: FieldLanguages, Kind: KindMultiChoice, Submit: true},
	{Name: FieldPlatforms, Kind: KindMultiChoice, Submit: true, Options: Platforms()},
	{Name: FieldContentTypes, Kind: KindMultiChoice, Submit: true, Options: ContentTypes()},
	{Name: FieldMediaOptions, Kind: KindMultiChoice, Submit: true, Options: MediaOptions()},
	{Name: FieldPostingFrequency, Kind: KindSingleChoice, Submit: true, Options: PostingFrequencies()},
	{Name: FieldGoals, Kind: KindMultiChoice, Submit: true, SupportsOther: true, Options: Goals()},
	{Name: FieldAudienceGender, Kind: KindSingleChoice, Submit: true, Options: AudienceGenders()},
	{Name: FieldAgeMin, Kind: KindRange, Submit: true},
	{Name: FieldAgeMax, Kind: KindRange, Submit: true},
	{Name: FieldTone, Kind: KindToneMap, Submit: true},
}

var fieldIndex = buildFieldIndex()

func buildFieldIndex() map[FieldName]FieldSpec {
	idx := make(map[FieldName]FieldSpec, len(fieldCatalog))
	for _, spec := range fieldCatalog {
		idx[spec.Name] = spec
	}
	return idx
}

// Fields returns the ordered field catalog.
func Fields() []FieldSpec {
	out := make([]FieldSpec, len(fieldCatalog))
	copy(out, fieldCatalog)
	return out
}

// LookupField returns the spec for a field name.
func LookupField(name FieldName) (FieldSpec, bool) {
	spec, ok := fieldIndex[name]
	return spec, ok
}

// SubmitAllowlist returns the names of fields accepted by the backend.
// Unknown keys in a draft payload are dropped silently at submit time.
func SubmitAllowlist() map[FieldName]bool {
	allow := make(map[FieldName]bool, len(fieldCatalog))
	for _, spec := range fieldCatalog {
		if spec.Submit {
			allow[spec.Name] = true
		}
	}
	return allow
}

// ErrUnknownField indicates a field name outside the draft catalog.
type ErrUnknownField struct {
	Name FieldName
}

func (e *ErrUnknownField) Error() string {
	return fmt.Sprintf("unknown draft field: %s", e.Name)
}

// ErrFieldType indicates a value whose type does not match the field's kind.
type ErrFieldType struct {
	Name FieldName
	Want string
}

func (e *ErrFieldType) Error() string {
	return fmt.Sprintf("field %s requires a %s value", e.Name, e.Want)
}

// Get returns the current value of a named field.
func (d *Draft) Get(name FieldName) (any, error) {
	switch name {
	case FieldCreatorName:
		return d.CreatorName, nil
	case FieldCreatorType:
		return d.CreatorType, nil
	case FieldPrimaryNiche:
		return d.PrimaryNiche, nil
	case FieldContentNiches:
		return d.ContentNiches, nil
	case FieldBio:
		return d.Bio, nil
	case FieldLocation:
		return d.Location, nil
	case FieldLanguages:
		return d.Languages, nil
	case FieldPlatforms:
		return d.Platforms, nil
	case FieldContentTypes:
		return d.ContentTypes, nil
	case FieldMediaOptions:
		return d.MediaOptions, nil
	case FieldPostingFrequency:
		return d.PostingFrequency, nil
	case FieldGoals:
		return d.Goals, nil
	case FieldAudienceGender:
		return d.AudienceGender, nil
	case FieldAgeMin:
		return d.AgeMin, nil
	case FieldAgeMax:
		return d.AgeMax, nil
	case FieldTone:
		return d.Tone, nil
	default:
		return nil, &ErrUnknownField{Name: name}
	}
}

// Set replaces the value of a named field. Values are type-checked against the
// field's kind; age bounds are clamped to the audience age domain. No
// step-level validation happens here.
func (d *Draft) Set(name FieldName, value any) error {
	spec, ok := fieldIndex[name]
	if !ok {
		return &ErrUnknownField{Name: name}
	}

	switch spec.Kind {
	case KindText, KindSingleChoice:
		s, ok := value.(string)
		if !ok {
			return &ErrFieldType{Name: name, Want: "string"}
		}
		d.setScalar(name, s)
	case KindMultiChoice:
		items, err := toStringSlice(value)
		if err != nil {
			return &ErrFieldType{Name: name, Want: "[]string"}
		}
		d.setSequence(name, dedupe(items))
	case KindRange:
		n, ok := toInt(value)
		if !ok {
			return &ErrFieldType{Name: name, Want: "int"}
		}
		d.setAgeBound(name, n)
	case KindToneMap:
		m, err := toStringMap(value)
		if err != nil {
			return &ErrFieldType{Name: name, Want: "map[string]string"}
		}
		d.Tone = m
	}
	return nil
}

func (d *Draft) setScalar(name FieldName, v string) {
	switch name {
	case FieldCreatorName:
		d.CreatorName = v
	case FieldCreatorType:
		d.CreatorType = v
	case FieldPrimaryNiche:
		d.PrimaryNiche = v
	case FieldBio:
		d.Bio = v
	case FieldLocation:
		d.Location = v
	case FieldPostingFrequency:
		d.PostingFrequency = v
	case FieldAudienceGender:
		d.AudienceGender = v
	}
}

func (d *Draft) setSequence(name FieldName, items []string) {
	switch name {
	case FieldContentNiches:
		d.ContentNiches = items
	case FieldLanguages:
		d.Languages = items
	case FieldPlatforms:
		d.Platforms = items
	case FieldContentTypes:
		d.ContentTypes = items
	case FieldGoals:
		d.Goals = items
	case FieldMediaOptions:
		d.MediaOptions = items
	}
}

func (d *Draft) setAgeBound(name FieldName, v int) {
	if v < MinAudienceAge {
		v = MinAudienceAge
	}
	if v > MaxAudienceAge {
		v = MaxAudienceAge
	}
	switch name {
	case FieldAgeMin:
		if d.AgeMax != 0 && v > d.AgeMax {
			v = d.AgeMax
		}
		d.AgeMin = v
	case FieldAgeMax:
		if d.AgeMin != 0 && v < d.AgeMin {
			v = d.AgeMin
		}
		d.AgeMax = v
	}
}

// ToggleItem adds item to a multi-choice field when included is true and
// removes it otherwise. The sequence never holds duplicates; insertion order
// is preserved but carries no meaning.
func (d *Draft) ToggleItem(name FieldName, item string, included bool) error {
	spec, ok := fieldIndex[name]
	if !ok {
		return &ErrUnknownField{Name: name}
	}
	if spec.Kind != KindMultiChoice {
		return &ErrFieldType{Name: name, Want: "[]string"}
	}

	current, _ := d.Get(name)
	items := current.([]string)

	if included {
		for _, existing := range items {
			if existing == item {
				return nil
			}
		}
		d.setSequence(name, append(append([]string{}, items...), item))
		return nil
	}

	kept := make([]string, 0, len(items))
	for _, existing := range items {
		if existing != item {
			kept = append(kept, existing)
		}
	}
	d.setSequence(name, kept)
	return nil
}

// FieldEmpty reports whether a field currently holds its empty value
// (empty string, empty sequence, unset age bound, or empty tone map).
func (d *Draft) FieldEmpty(name FieldName) bool {
	value, err := d.Get(name)
	if err != nil {
		return false
	}
	switch v := value.(type) {
	case string:
		return v == ""
	case []string:
		return len(v) == 0
	case int:
		return v == 0
	case map[string]string:
		return len(v) == 0
	}
	return false
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := make([]string, 0, len(items))
	for _, item := range items {
		if !seen[item] {
			seen[item] = true
			out = append(out, item)
		}
	}
	return out
}

func toStringSlice(value any) ([]string, error) {
	switch v := value.(type) {
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("non-string element in sequence")
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a string sequence")
	}
}

func toStringMap(value any) (map[string]string, error) {
	switch v := value.(type) {
	case map[string]string:
		out := make(map[string]string, len(v))
		for k, item := range v {
			out[k] = item
		}
		return out, nil
	case map[string]any:
		out := make(map[string]string, len(v))
		for k, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("non-string value in map")
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("not a string map")
	}
}

func toInt(value any) (int, bool) {
	switch v := value.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
