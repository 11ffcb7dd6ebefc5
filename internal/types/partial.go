package types

// SearchKind selects what a smart-search query refers to.
type SearchKind string

// Search kinds.
const (
	SearchByName    SearchKind = "name"
	SearchByHandle  SearchKind = "handle"
	SearchByWebsite SearchKind = "website"
)

// Partial is a sparse field map produced by an external enrichment source
// (document parsing or smart search). Empty fields mean "no data", never
// "clear this value".
type Partial struct {
	CreatorName  string            `json:"creator_name,omitempty"`
	PrimaryNiche string            `json:"primary_niche,omitempty"`
	Bio          string            `json:"bio,omitempty"`
	Location     string            `json:"location,omitempty"`
	Industries   []string          `json:"industries,omitempty"`
	Platforms    []string          `json:"platforms,omitempty"`
	ContentTypes []string          `json:"content_types,omitempty"`
	Languages    []string          `json:"languages,omitempty"`
	AgeRanges    []AgeRange        `json:"age_ranges,omitempty"`
	Tone         map[string]string `json:"tone,omitempty"`
}

// IsZero reports whether the partial carries no data at all.
func (p Partial) IsZero() bool {
	return p.CreatorName == "" && p.PrimaryNiche == "" && p.Bio == "" &&
		p.Location == "" && len(p.Industries) == 0 && len(p.Platforms) == 0 &&
		len(p.ContentTypes) == 0 && len(p.Languages) == 0 &&
		len(p.AgeRanges) == 0 && len(p.Tone) == 0
}
