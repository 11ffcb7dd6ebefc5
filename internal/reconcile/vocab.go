// Package reconcile implements the field-merge reconciliation rules that fold
// externally sourced partial data into an onboarding draft without clobbering
// user edits.
package reconcile

import "strings"

// vocabEntry links a controlled niche category to the creator type it implies
// and the free-text keywords that map onto it.
type vocabEntry struct {
	Category    string
	CreatorType string
	Keywords    []string
}

// nicheVocab is the controlled vocabulary for industry strings. Keywords are
// matched case-insensitively, substring in either direction.
var nicheVocab = []vocabEntry{
	{
		Category:    "Yoga & Wellness",
		CreatorType: "Fitness & Sports",
		Keywords:    []string{"yoga", "wellness", "meditation", "mindfulness", "pilates"},
	},
	{
		Category:    "Fitness Coaching",
		CreatorType: "Fitness & Sports",
		Keywords:    []string{"fitness", "personal training", "gym", "workout", "coaching", "sports", "athletics", "running"},
	},
	{
		Category:    "Beauty & Skincare",
		CreatorType: "Beauty & Fashion",
		Keywords:    []string{"beauty", "skincare", "makeup", "cosmetics", "haircare"},
	},
	{
		Category:    "Fashion & Style",
		CreatorType: "Beauty & Fashion",
		Keywords:    []string{"fashion", "style", "apparel", "clothing", "outfits"},
	},
	{
		Category:    "Gaming",
		CreatorType: "Tech & Gaming",
		Keywords:    []string{"gaming", "esports", "video games", "streamer"},
	},
	{
		Category:    "Software & Gadgets",
		CreatorType: "Tech & Gaming",
		Keywords:    []string{"software", "technology", "gadgets", "programming", "developer", "saas", "ai"},
	},
	{
		Category:    "Recipes & Home Cooking",
		CreatorType: "Food & Cooking",
		Keywords:    []string{"cooking", "recipes", "baking", "chef", "meal prep"},
	},
	{
		Category:    "Restaurants & Food Reviews",
		CreatorType: "Food & Cooking",
		Keywords:    []string{"restaurant", "food review", "dining", "street food"},
	},
	{
		Category:    "Travel Vlogging",
		CreatorType: "Travel & Lifestyle",
		Keywords:    []string{"travel", "tourism", "backpacking", "adventure"},
	},
	{
		Category:    "Lifestyle & Daily Vlogs",
		CreatorType: "Travel & Lifestyle",
		Keywords:    []string{"lifestyle", "vlog", "daily life", "minimalism", "home decor", "parenting"},
	},
	{
		Category:    "Study & Learning",
		CreatorType: "Education",
		Keywords:    []string{"education", "teaching", "tutoring", "study", "learning", "language learning", "science"},
	},
	{
		Category:    "Music & Performance",
		CreatorType: "Music & Entertainment",
		Keywords:    []string{"music", "musician", "singer", "dj", "dance", "performance"},
	},
	{
		Category:    "Comedy & Entertainment",
		CreatorType: "Music & Entertainment",
		Keywords:    []string{"comedy", "entertainment", "sketches", "memes", "pranks"},
	},
	{
		Category:    "Personal Finance",
		CreatorType: "Business & Finance",
		Keywords:    []string{"finance", "investing", "budgeting", "crypto", "stocks"},
	},
	{
		Category:    "Entrepreneurship",
		CreatorType: "Business & Finance",
		Keywords:    []string{"business", "entrepreneur", "startup", "marketing", "ecommerce", "real estate"},
	},
}

// MatchNiche maps a free-text industry or niche string to a controlled niche
// category and the creator type it implies. A string that matches nothing in
// the vocabulary is not an error; callers fall back to the
// "Other / Unique Category" sentinel.
func MatchNiche(raw string) (category, creatorType string, ok bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return "", "", false
	}
	for _, entry := range nicheVocab {
		if containsEither(needle, strings.ToLower(entry.Category)) {
			return entry.Category, entry.CreatorType, true
		}
		for _, kw := range entry.Keywords {
			if containsEither(needle, kw) {
				return entry.Category, entry.CreatorType, true
			}
		}
	}
	return "", "", false
}

// MatchOption matches a free-text value against a fixed options list,
// case-insensitively, exact match first and substring match second.
func MatchOption(raw string, options []string) (string, bool) {
	needle := strings.ToLower(strings.TrimSpace(raw))
	if needle == "" {
		return "", false
	}
	for _, opt := range options {
		if needle == strings.ToLower(opt) {
			return opt, true
		}
	}
	for _, opt := range options {
		if containsEither(needle, strings.ToLower(opt)) {
			return opt, true
		}
	}
	return "", false
}

// containsEither reports whether either lowercase string contains the other.
// Single- and double-character needles only match exactly, so short noise
// like "a" does not latch onto every option.
func containsEither(a, b string) bool {
	if len(a) < 3 || len(b) < 3 {
		return a == b
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}

// CreatorTypeFor returns the creator type implied by a controlled niche
// category, or empty if the category is unknown.
func CreatorTypeFor(category string) string {
	for _, entry := range nicheVocab {
		if entry.Category == category {
			return entry.CreatorType
		}
	}
	return ""
}
