package wizard

import (
	"fmt"

	"github.com/averyk/creator-onboard/internal/types"
)

// Step indices of the onboarding flow.
const (
	StepBasics = iota
	StepNiche
	StepPlatforms
	StepAudience
	StepContentStyle
	StepInsights
	StepReview
)

// StepDefinition names a wizard step and carries its validator. A nil
// validator marks an optional step that always passes.
type StepDefinition struct {
	Name     string
	Validate func(draft *types.Draft, others types.OtherInputs) error
}

// StepFlow returns the ordered onboarding steps. The final review step has no
// validator: once reached, it is always considered complete.
func StepFlow() []StepDefinition {
	return []StepDefinition{
		{Name: "basics", Validate: validateBasics},
		{Name: "niche", Validate: validateNiche},
		{Name: "platforms"}, // optional
		{Name: "audience", Validate: validateAudience},
		{Name: "content_style", Validate: validateContentStyle},
		{Name: "insights"}, // optional, performance insights
		{Name: "review"},
	}
}

func validateBasics(draft *types.Draft, others types.OtherInputs) error {
	if draft.CreatorName == "" {
		return fmt.Errorf("creator name is required")
	}
	choice := types.ParseChoice(types.FieldCreatorType, draft.CreatorType, others)
	if choice.Empty() {
		if draft.CreatorType == types.OtherCreatorType {
			return fmt.Errorf("describe your creator type")
		}
		return fmt.Errorf("select a creator type")
	}
	return nil
}

func validateNiche(draft *types.Draft, others types.OtherInputs) error {
	if draft.PrimaryNiche == "" && len(draft.ContentNiches) == 0 {
		return fmt.Errorf("pick at least one niche")
	}
	for _, niche := range draft.ContentNiches {
		if niche == types.OtherNicheCategory && others[types.FieldContentNiches] == "" {
			return fmt.Errorf("describe your unique category")
		}
	}
	return nil
}

func validateAudience(draft *types.Draft, _ types.OtherInputs) error {
	if draft.AudienceGender == "" {
		return fmt.Errorf("select an audience gender")
	}
	for _, option := range types.AudienceGenders() {
		if draft.AudienceGender == option {
			return nil
		}
	}
	return fmt.Errorf("audience gender %q is not a valid option", draft.AudienceGender)
}

func validateContentStyle(draft *types.Draft, _ types.OtherInputs) error {
	if len(draft.ContentTypes) == 0 {
		return fmt.Errorf("pick at least one content type")
	}
	return nil
}
