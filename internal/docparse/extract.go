package docparse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/averyk/creator-onboard/internal/types"
)

var (
	ageRangePattern = regexp.MustCompile(`(\d{1,2})\s*(?:-|–|to)\s*(\d{1,2})`)
	handlePattern   = regexp.MustCompile(`@[A-Za-z0-9._]{2,30}`)
)

// labeledFields maps document labels ("Niche: yoga, wellness") to extraction
// targets.
var labeledFields = map[string]func(p *types.Partial, value string){
	"name":       func(p *types.Partial, v string) { setIfEmpty(&p.CreatorName, v) },
	"creator":    func(p *types.Partial, v string) { setIfEmpty(&p.CreatorName, v) },
	"bio":        func(p *types.Partial, v string) { setIfEmpty(&p.Bio, v) },
	"about":      func(p *types.Partial, v string) { setIfEmpty(&p.Bio, v) },
	"location":   func(p *types.Partial, v string) { setIfEmpty(&p.Location, v) },
	"based in":   func(p *types.Partial, v string) { setIfEmpty(&p.Location, v) },
	"niche":      func(p *types.Partial, v string) { p.Industries = append(p.Industries, splitList(v)...) },
	"niches":     func(p *types.Partial, v string) { p.Industries = append(p.Industries, splitList(v)...) },
	"industry":   func(p *types.Partial, v string) { p.Industries = append(p.Industries, splitList(v)...) },
	"category":   func(p *types.Partial, v string) { p.Industries = append(p.Industries, splitList(v)...) },
	"categories": func(p *types.Partial, v string) { p.Industries = append(p.Industries, splitList(v)...) },
	"languages":  func(p *types.Partial, v string) { p.Languages = append(p.Languages, splitList(v)...) },
	"language":   func(p *types.Partial, v string) { p.Languages = append(p.Languages, splitList(v)...) },
}

// ExtractFields scans cleaned document text for labeled fields, platform
// mentions, and audience age ranges.
func ExtractFields(text string) types.Partial {
	partial := types.Partial{}

	for _, line := range strings.Split(text, "\n") {
		extractLabeled(&partial, line)
		extractAges(&partial, line)
	}

	partial.Platforms = detectPlatforms(text)

	if partial.CreatorName == "" {
		partial.CreatorName = headingName(text)
	}

	return partial
}

func extractLabeled(partial *types.Partial, line string) {
	idx := strings.IndexAny(line, ":")
	if idx <= 0 || idx == len(line)-1 {
		return
	}
	label := strings.ToLower(strings.TrimSpace(strings.TrimLeft(line[:idx], "#*- ")))
	value := strings.TrimSpace(line[idx+1:])
	if value == "" {
		return
	}
	if apply, ok := labeledFields[label]; ok {
		apply(partial, value)
	}
}

// extractAges collects age sub-ranges from lines that talk about the
// audience. Bare number pairs elsewhere (dates, follower counts) are ignored.
func extractAges(partial *types.Partial, line string) {
	lower := strings.ToLower(line)
	if !strings.Contains(lower, "age") && !strings.Contains(lower, "demographic") &&
		!strings.Contains(lower, "audience") {
		return
	}
	for _, match := range ageRangePattern.FindAllStringSubmatch(line, -1) {
		lo, err1 := strconv.Atoi(match[1])
		hi, err2 := strconv.Atoi(match[2])
		if err1 != nil || err2 != nil || lo > hi {
			continue
		}
		partial.AgeRanges = append(partial.AgeRanges, types.AgeRange{Min: lo, Max: hi})
	}
}

func detectPlatforms(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, platform := range types.Platforms() {
		if strings.Contains(lower, platform) {
			found = append(found, platform)
		}
	}
	// "@handle" mentions without a named platform still imply a social presence,
	// but carry no platform information, so they are ignored beyond this check.
	if len(found) == 0 && handlePattern.MatchString(text) {
		return nil
	}
	return found
}

// headingName takes the first markdown heading as the creator name when no
// labeled name was found.
func headingName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") {
			name := strings.TrimSpace(strings.TrimLeft(trimmed, "# "))
			if name != "" && len(name) <= 80 && !strings.ContainsAny(name, ":|") {
				return name
			}
			return ""
		}
	}
	return ""
}

func setIfEmpty(dst *string, value string) {
	if *dst == "" {
		*dst = value
	}
}

func splitList(value string) []string {
	parts := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == ';' || r == '/'
	})
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
