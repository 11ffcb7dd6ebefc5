package wizard

import (
	"context"
	"log"

	"github.com/averyk/creator-onboard/internal/schemas"
	"github.com/averyk/creator-onboard/internal/types"
)

// BuildSubmitPayload filters a draft down to the backend allowlist. Empty
// scalar fields are dropped; sequence and map fields are sent even when empty
// so a previously set value can be cleared server-side. "Other" overrides are
// merged in here, for fields that support them.
func BuildSubmitPayload(draft types.Draft, others types.OtherInputs) map[string]any {
	payload := make(map[string]any)

	for _, spec := range types.Fields() {
		if !spec.Submit {
			continue
		}
		value, err := draft.Get(spec.Name)
		if err != nil {
			continue
		}

		switch spec.Kind {
		case types.KindText:
			if s := value.(string); s != "" {
				payload[string(spec.Name)] = s
			}
		case types.KindSingleChoice:
			s := value.(string)
			if s == "" {
				continue
			}
			if spec.SupportsOther {
				s = types.ParseChoice(spec.Name, s, others).Resolved()
			}
			payload[string(spec.Name)] = s
		case types.KindMultiChoice:
			items := value.([]string)
			if spec.SupportsOther {
				items = resolveOtherItems(spec.Name, items, others)
			}
			payload[string(spec.Name)] = items
		case types.KindRange:
			if n := value.(int); n != 0 {
				payload[string(spec.Name)] = n
			}
		case types.KindToneMap:
			payload[string(spec.Name)] = value
		}
	}

	return payload
}

// resolveOtherItems replaces a sequence's Other sentinel with the recorded
// free-text override, when one exists.
func resolveOtherItems(name types.FieldName, items []string, others types.OtherInputs) []string {
	override := others[name]
	if override == "" {
		return items
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		resolved := types.ParseChoice(name, item, others)
		if resolved.IsOther() {
			item = override
		}
		out = append(out, item)
	}
	return out
}

// Submit sends the filtered draft to the profile store, creating or updating
// depending on mode. On create-mode success the local snapshot is cleared.
// Collaborator failures are surfaced verbatim; nothing is retried.
func (c *Controller) Submit(ctx context.Context) error {
	if c.cfg.Profiles == nil {
		return &SubmitError{Cause: errNoProfiles}
	}
	if !c.begin(&c.submitting) {
		return &BusyError{Operation: "submit"}
	}
	defer c.end(&c.submitting)

	payload := BuildSubmitPayload(c.draft, c.others)
	if err := schemas.ValidateSubmitPayload(payload); err != nil {
		return err
	}

	var err error
	if c.cfg.Mode == ModeEdit {
		err = c.cfg.Profiles.Update(ctx, payload)
	} else {
		err = c.cfg.Profiles.Create(ctx, payload)
	}
	if err != nil {
		return &SubmitError{Cause: err}
	}

	if c.cfg.Mode != ModeEdit && c.cfg.Store != nil {
		if clearErr := c.cfg.Store.Clear(c.cfg.SessionKey); clearErr != nil {
			// Submission already succeeded; a stale snapshot is only a nuisance.
			log.Printf("Failed to clear snapshot for session %s: %v", c.cfg.SessionKey, clearErr)
		}
	}
	return nil
}
