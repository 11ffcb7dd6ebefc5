package smartsearch

import (
	"strings"

	"github.com/averyk/creator-onboard/internal/docparse"
	"github.com/averyk/creator-onboard/internal/reconcile"
	"github.com/averyk/creator-onboard/internal/types"
)

// platformHosts maps well-known hosts to canonical platform names, so the
// result URL itself counts as a platform signal.
var platformHosts = map[string]string{
	"instagram.com": "instagram",
	"tiktok.com":    "tiktok",
	"youtube.com":   "youtube",
	"youtu.be":      "youtube",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"facebook.com":  "facebook",
	"linkedin.com":  "linkedin",
	"pinterest.com": "pinterest",
	"twitch.tv":     "twitch",
}

// ExtractSignals distills one page into a partial field map. It reuses the
// document field extractor for labeled text and adds URL- and keyword-based
// signals specific to public profile pages.
func ExtractSignals(pageText, pageURL string) types.Partial {
	partial := docparse.ExtractFields(pageText)

	if platform := platformFromURL(pageURL); platform != "" {
		partial.Platforms = append(partial.Platforms, platform)
	}

	// Public pages rarely label their niche; fall back to scanning for
	// vocabulary keywords in the page text.
	if len(partial.Industries) == 0 {
		partial.Industries = scanNicheKeywords(pageText)
	}

	return partial
}

// CombineSignals folds per-page partials into one, first page winning on
// scalar conflicts.
func CombineSignals(partials []types.Partial) types.Partial {
	var combined types.Partial
	for _, partial := range partials {
		if combined.CreatorName == "" {
			combined.CreatorName = partial.CreatorName
		}
		if combined.PrimaryNiche == "" {
			combined.PrimaryNiche = partial.PrimaryNiche
		}
		if combined.Bio == "" {
			combined.Bio = partial.Bio
		}
		if combined.Location == "" {
			combined.Location = partial.Location
		}
		combined.Industries = append(combined.Industries, partial.Industries...)
		combined.Platforms = append(combined.Platforms, partial.Platforms...)
		combined.ContentTypes = append(combined.ContentTypes, partial.ContentTypes...)
		combined.Languages = append(combined.Languages, partial.Languages...)
		combined.AgeRanges = append(combined.AgeRanges, partial.AgeRanges...)
		if len(combined.Tone) == 0 && len(partial.Tone) > 0 {
			combined.Tone = partial.Tone
		}
	}
	return combined
}

func platformFromURL(pageURL string) string {
	lowered := strings.ToLower(pageURL)
	for host, platform := range platformHosts {
		if strings.Contains(lowered, host) {
			return platform
		}
	}
	return ""
}

// scanNicheKeywords collects niche categories whose vocabulary keywords
// appear in the page text. Lines are matched individually to keep the
// substring matching from latching onto unrelated prose.
func scanNicheKeywords(text string) []string {
	seen := map[string]bool{}
	var industries []string
	for _, line := range strings.Split(strings.ToLower(text), "\n") {
		words := strings.Fields(line)
		for _, word := range words {
			category, _, ok := reconcile.MatchNiche(word)
			if ok && !seen[category] {
				seen[category] = true
				industries = append(industries, category)
			}
		}
	}
	return industries
}
