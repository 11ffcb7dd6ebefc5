package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyk/creator-onboard/internal/schemas"
	"github.com/averyk/creator-onboard/internal/snapshot"
	"github.com/averyk/creator-onboard/internal/types"
)

func TestBuildSubmitPayloadFiltersEmptyScalars(t *testing.T) {
	draft := types.NewDraft()
	draft.CreatorName = "Ana Flores"
	draft.ContentTypes = []string{"short_video"}

	payload := BuildSubmitPayload(draft, nil)

	assert.Equal(t, "Ana Flores", payload["creator_name"])
	assert.NotContains(t, payload, "bio")
	assert.NotContains(t, payload, "primary_niche")
	assert.NotContains(t, payload, "posting_frequency")
	assert.NotContains(t, payload, "age_min")
	assert.NotContains(t, payload, "age_max")

	// Sequences and the tone map are always present, even empty, so the
	// backend can clear previously stored values.
	assert.Equal(t, []string{"short_video"}, payload["content_types"])
	assert.Equal(t, []string{}, payload["platforms"])
	assert.Equal(t, map[string]string{}, payload["tone"])
}

func TestBuildSubmitPayloadResolvesOtherOverrides(t *testing.T) {
	draft := types.NewDraft()
	draft.CreatorType = types.OtherCreatorType
	draft.ContentNiches = []string{"Gaming", types.OtherNicheCategory}
	draft.Goals = []string{types.OtherGoal}

	others := types.OtherInputs{
		types.FieldCreatorType:   "Astrophotography",
		types.FieldContentNiches: "Urban beekeeping",
		types.FieldGoals:         "Win an award",
	}

	payload := BuildSubmitPayload(draft, others)

	assert.Equal(t, "Astrophotography", payload["creator_type"])
	assert.Equal(t, []string{"Gaming", "Urban beekeeping"}, payload["content_niches"])
	assert.Equal(t, []string{"Win an award"}, payload["goals"])
}

func TestBuildSubmitPayloadSentinelWithoutOverride(t *testing.T) {
	draft := types.NewDraft()
	draft.CreatorType = types.OtherCreatorType
	draft.ContentNiches = []string{types.OtherNicheCategory}

	payload := BuildSubmitPayload(draft, nil)

	// Without an override the sentinel itself is submitted.
	assert.Equal(t, types.OtherCreatorType, payload["creator_type"])
	assert.Equal(t, []string{types.OtherNicheCategory}, payload["content_niches"])
}

func TestBuildSubmitPayloadIncludesRanges(t *testing.T) {
	draft := types.NewDraft()
	draft.AgeMin, draft.AgeMax = 18, 34

	payload := BuildSubmitPayload(draft, nil)
	assert.Equal(t, 18, payload["age_min"])
	assert.Equal(t, 34, payload["age_max"])
}

func submittableController(t *testing.T, cfg Config) *Controller {
	t.Helper()
	c := newStartedController(t, cfg)
	fillValidDraft(t, c)
	return c
}

func TestSubmitCreatesProfileAndClearsSnapshot(t *testing.T) {
	store := snapshot.NewMemoryStore()
	profiles := &fakeProfiles{}
	c := submittableController(t, Config{
		Mode:       ModeCreate,
		SessionKey: "creator-1",
		Store:      store,
		Profiles:   profiles,
	})

	require.NoError(t, c.Submit(context.Background()))

	require.NotNil(t, profiles.created)
	assert.Equal(t, "Ana Flores", profiles.created["creator_name"])
	assert.Nil(t, profiles.updated)

	snap, err := store.Load("creator-1")
	require.NoError(t, err)
	assert.Nil(t, snap, "successful create-mode submit clears the snapshot")
}

func TestSubmitEditModeUpdates(t *testing.T) {
	stored := types.NewDraft()
	stored.CreatorName = "Ana"
	profiles := &fakeProfiles{stored: &stored}
	c := submittableController(t, Config{Mode: ModeEdit, Profiles: profiles})

	require.NoError(t, c.Submit(context.Background()))
	require.NotNil(t, profiles.updated)
	assert.Nil(t, profiles.created)
}

func TestSubmitSurfacesBackendErrorVerbatim(t *testing.T) {
	cause := errors.New("profile already exists for creator")
	c := submittableController(t, Config{Mode: ModeCreate, Profiles: &fakeProfiles{createErr: cause}})

	err := c.Submit(context.Background())
	require.Error(t, err)

	var submitErr *SubmitError
	require.ErrorAs(t, err, &submitErr)
	assert.Equal(t, cause.Error(), err.Error())
	assert.ErrorIs(t, err, cause)
}

func TestSubmitRejectsInvalidPayload(t *testing.T) {
	profiles := &fakeProfiles{}
	c := newStartedController(t, Config{Mode: ModeCreate, Profiles: profiles})
	require.NoError(t, c.SetField(types.FieldAudienceGender, "female"))
	// Force an out-of-enum platform past the field layer.
	require.NoError(t, c.SetField(types.FieldPlatforms, []string{"myspace"}))

	err := c.Submit(context.Background())
	require.Error(t, err)

	var validationErr *schemas.ValidationError
	assert.ErrorAs(t, err, &validationErr)
	assert.Nil(t, profiles.created, "invalid payloads must not reach the store")
}

func TestSubmitWithoutProfileStore(t *testing.T) {
	c := submittableController(t, Config{Mode: ModeCreate})
	err := c.Submit(context.Background())

	var submitErr *SubmitError
	assert.ErrorAs(t, err, &submitErr)
}

func TestSubmitBusyRejection(t *testing.T) {
	c := submittableController(t, Config{Mode: ModeCreate, Profiles: &fakeProfiles{}})

	// Simulate an in-flight submit by holding the flag.
	require.True(t, c.begin(&c.submitting))
	err := c.Submit(context.Background())
	c.end(&c.submitting)

	var busy *BusyError
	require.ErrorAs(t, err, &busy)
	assert.Equal(t, "submit already in progress", err.Error())
}
