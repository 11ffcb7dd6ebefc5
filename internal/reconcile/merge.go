package reconcile

import (
	"strings"

	"github.com/averyk/creator-onboard/internal/types"
)

// Merge folds a sparse external partial into a draft under the
// non-destructive overwrite policy: scalar and range fields are filled only
// when the draft field is currently empty, sequence fields grow by additive
// union against the controlled vocabulary, and source values that match no
// vocabulary entry fall back to the "Other / Unique Category" sentinel.
// The input draft is never mutated; a new draft is returned.
func Merge(draft types.Draft, partial types.Partial) types.Draft {
	out := draft.Clone()

	fillScalar(&out.CreatorName, partial.CreatorName)
	fillScalar(&out.Bio, partial.Bio)
	fillScalar(&out.Location, partial.Location)

	mergeNiches(&out, partial)
	out.Platforms = unionMatched(out.Platforms, partial.Platforms, types.Platforms())
	out.ContentTypes = unionMatched(out.ContentTypes, partial.ContentTypes, types.ContentTypes())
	out.Languages = unionFreeText(out.Languages, partial.Languages)
	mergeAges(&out, partial.AgeRanges)
	mergeTone(&out, partial.Tone)

	out.Normalize()
	return out
}

func fillScalar(dst *string, src string) {
	if *dst == "" && strings.TrimSpace(src) != "" {
		*dst = strings.TrimSpace(src)
	}
}

// mergeNiches maps the source's free-text industry strings through the niche
// vocabulary. The first usable source string also seeds primary_niche (raw
// text) and creator_type (inferred category) when those are still empty.
func mergeNiches(out *types.Draft, partial types.Partial) {
	sources := make([]string, 0, len(partial.Industries)+1)
	if partial.PrimaryNiche != "" {
		sources = append(sources, partial.PrimaryNiche)
	}
	sources = append(sources, partial.Industries...)

	for _, raw := range sources {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		if out.PrimaryNiche == "" {
			out.PrimaryNiche = raw
		}

		category, creatorType, ok := MatchNiche(raw)
		if !ok {
			// MergeAmbiguity: unmapped source values resolve silently
			// to the Other sentinel.
			category = types.OtherNicheCategory
		} else if out.CreatorType == "" {
			out.CreatorType = creatorType
		}
		out.ContentNiches = appendUnique(out.ContentNiches, category)
	}
}

// unionMatched adds source values that match the controlled options list,
// dropping the rest. Fields without an Other sentinel cannot absorb
// unmatched values.
func unionMatched(current, source, options []string) []string {
	for _, raw := range source {
		if canonical, ok := MatchOption(raw, options); ok {
			current = appendUnique(current, canonical)
		}
	}
	return current
}

// unionFreeText adds source values to an open sequence with case-insensitive
// deduplication.
func unionFreeText(current, source []string) []string {
	seen := make(map[string]bool, len(current))
	for _, item := range current {
		seen[strings.ToLower(item)] = true
	}
	for _, raw := range source {
		raw = strings.TrimSpace(raw)
		if raw == "" || seen[strings.ToLower(raw)] {
			continue
		}
		seen[strings.ToLower(raw)] = true
		current = append(current, raw)
	}
	return current
}

// mergeAges computes min/max across all matched source sub-ranges, clamps to
// the audience age domain, and applies the result only when the draft's own
// range is unset.
func mergeAges(out *types.Draft, ranges []types.AgeRange) {
	if len(ranges) == 0 {
		return
	}
	if out.AgeMin != 0 || out.AgeMax != 0 {
		return
	}
	var merged types.AgeRange
	for _, r := range ranges {
		merged = merged.Union(r)
	}
	merged = merged.Clamp()
	out.AgeMin, out.AgeMax = merged.Min, merged.Max
}

func mergeTone(out *types.Draft, tone map[string]string) {
	for platform, style := range tone {
		canonical, ok := MatchOption(platform, types.Platforms())
		if !ok {
			continue
		}
		if _, exists := out.Tone[canonical]; !exists && style != "" {
			out.Tone[canonical] = style
		}
	}
}

func appendUnique(items []string, item string) []string {
	for _, existing := range items {
		if existing == item {
			return items
		}
	}
	return append(items, item)
}
