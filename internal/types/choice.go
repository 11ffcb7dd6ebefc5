package types

// Sentinel option values. A choice field holding a sentinel is resolved
// against OtherInputs at submit time.
const (
	OtherCreatorType   = "Other"
	OtherNicheCategory = "Other / Unique Category"
	OtherGoal          = "Other"
)

// CreatorTypes returns the fixed creator type options.
func CreatorTypes() []string {
	return []string{
		"Fitness & Sports",
		"Beauty & Fashion",
		"Tech & Gaming",
		"Food & Cooking",
		"Travel & Lifestyle",
		"Education",
		"Music & Entertainment",
		"Business & Finance",
		OtherCreatorType,
	}
}

// NicheCategories returns the controlled niche vocabulary.
func NicheCategories() []string {
	return []string{
		"Yoga & Wellness",
		"Fitness Coaching",
		"Beauty & Skincare",
		"Fashion & Style",
		"Gaming",
		"Software & Gadgets",
		"Recipes & Home Cooking",
		"Restaurants & Food Reviews",
		"Travel Vlogging",
		"Lifestyle & Daily Vlogs",
		"Study & Learning",
		"Music & Performance",
		"Comedy & Entertainment",
		"Personal Finance",
		"Entrepreneurship",
		OtherNicheCategory,
	}
}

// Platforms returns the supported social platforms.
func Platforms() []string {
	return []string{
		"instagram",
		"tiktok",
		"youtube",
		"twitter",
		"facebook",
		"linkedin",
		"pinterest",
		"twitch",
	}
}

// ContentTypes returns the content type axis.
func ContentTypes() []string {
	return []string{
		"short_video",
		"long_video",
		"photo_post",
		"carousel",
		"story",
		"live_stream",
		"text_post",
	}
}

// MediaOptions returns the media production axis.
func MediaOptions() []string {
	return []string{
		"camera",
		"screen_recording",
		"animation",
		"ai_avatar",
		"voiceover",
		"stock_footage",
	}
}

// PostingFrequencies returns the posting cadence options.
func PostingFrequencies() []string {
	return []string{
		"daily",
		"several_per_week",
		"weekly",
		"biweekly",
		"monthly",
	}
}

// Goals returns the onboarding goal options.
func Goals() []string {
	return []string{
		"Grow my audience",
		"Save time on content",
		"Monetize my content",
		"Land brand deals",
		"Stay consistent",
		OtherGoal,
	}
}

// AudienceGenders returns the mutually exclusive audience gender options.
// Exactly one may be selected.
func AudienceGenders() []string {
	return []string{"female", "male", "all"}
}

// Choice is a single selection on a choice field: either one of the field's
// known options or a free-text "Other" entry.
type Choice struct {
	value string
	other string
}

// ParseChoice interprets a raw field value together with its OtherInputs
// override. A value equal to the field's sentinel becomes an Other choice.
func ParseChoice(field FieldName, value string, others OtherInputs) Choice {
	if isOtherSentinel(field, value) {
		return Choice{value: value, other: others[field]}
	}
	return Choice{value: value}
}

func isOtherSentinel(field FieldName, value string) bool {
	switch field {
	case FieldCreatorType:
		return value == OtherCreatorType
	case FieldContentNiches:
		return value == OtherNicheCategory
	case FieldGoals:
		return value == OtherGoal
	}
	return false
}

// Empty reports whether nothing is selected, including an Other choice whose
// override text is blank.
func (c Choice) Empty() bool {
	if c.value == "" {
		return true
	}
	return c.IsOther() && c.other == ""
}

// IsOther reports whether the choice is a free-text Other entry.
func (c Choice) IsOther() bool {
	return c.other != "" || c.value == OtherCreatorType ||
		c.value == OtherNicheCategory || c.value == OtherGoal
}

// Resolved returns the value to submit: the override text for an Other choice,
// otherwise the known option.
func (c Choice) Resolved() string {
	if c.IsOther() && c.other != "" {
		return c.other
	}
	return c.value
}
