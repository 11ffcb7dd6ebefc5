package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/averyk/creator-onboard/internal/snapshot"
	"github.com/averyk/creator-onboard/internal/types"
)

type fakeProfiles struct {
	stored    *types.Draft
	created   map[string]any
	updated   map[string]any
	createErr error
	updateErr error
	fetchErr  error
}

func (f *fakeProfiles) Fetch(_ context.Context) (*types.Draft, error) {
	return f.stored, f.fetchErr
}

func (f *fakeProfiles) Create(_ context.Context, payload map[string]any) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = payload
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, payload map[string]any) error {
	if f.updateErr != nil {
		return f.updateErr
	}
	f.updated = payload
	return nil
}

type fakeParser struct {
	partial types.Partial
	err     error
	calls   int
	block   chan struct{} // when set, Parse waits until closed
}

func (f *fakeParser) Parse(_ context.Context, _ []byte, _ string) (types.Partial, error) {
	f.calls++
	if f.block != nil {
		<-f.block
	}
	return f.partial, f.err
}

type fakeSearch struct {
	partial types.Partial
	err     error
}

func (f *fakeSearch) Search(_ context.Context, _ string, _ types.SearchKind) (types.Partial, error) {
	return f.partial, f.err
}

func newStartedController(t *testing.T, cfg Config) *Controller {
	t.Helper()
	c := New(cfg)
	require.NoError(t, c.Start(context.Background()))
	return c
}

// fillValidDraft sets enough fields to pass every mandatory step validator.
func fillValidDraft(t *testing.T, c *Controller) {
	t.Helper()
	require.NoError(t, c.SetField(types.FieldCreatorName, "Ana Flores"))
	require.NoError(t, c.SetField(types.FieldCreatorType, "Food & Cooking"))
	require.NoError(t, c.SetField(types.FieldPrimaryNiche, "street food"))
	require.NoError(t, c.SetField(types.FieldAudienceGender, "all"))
	require.NoError(t, c.SetArrayField(types.FieldContentTypes, "short_video", true))
}

func TestAdvanceThroughFullFlow(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	fillValidDraft(t, c)

	steps := c.Steps()
	for i := 0; i < len(steps)-1; i++ {
		require.NoError(t, c.Advance(), "advance from step %d (%s)", i, steps[i].Name)
		assert.Equal(t, i+1, c.CurrentStep())
		assert.True(t, c.IsStepCompleted(i))
	}

	// Advancing on the terminal review step completes it without moving.
	require.NoError(t, c.Advance())
	assert.Equal(t, len(steps)-1, c.CurrentStep())
	assert.True(t, c.IsStepCompleted(len(steps)-1))
}

func TestAdvanceBlockedByValidation(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})

	err := c.Advance()
	require.Error(t, err)

	var validationErr *ValidationError
	require.ErrorAs(t, err, &validationErr)
	assert.Equal(t, StepBasics, validationErr.Step)
	assert.Equal(t, "basics", validationErr.StepName)

	// Blocked advance changes nothing except the blocking message.
	assert.Equal(t, StepBasics, c.CurrentStep())
	assert.Empty(t, c.Completed())
	assert.NotEmpty(t, c.BlockingError())
}

func TestRetreatClearsBlockingError(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	fillValidDraft(t, c)
	require.NoError(t, c.Advance())

	// Break the niche step and fail to advance.
	require.NoError(t, c.SetField(types.FieldPrimaryNiche, ""))
	require.Error(t, c.Advance())
	assert.NotEmpty(t, c.BlockingError())

	c.Retreat()
	assert.Equal(t, StepBasics, c.CurrentStep())
	assert.Empty(t, c.BlockingError())

	// Retreat at the first step is a no-op.
	c.Retreat()
	assert.Equal(t, StepBasics, c.CurrentStep())
}

func TestValidateStepIsPure(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})

	before := c.Draft()
	assert.False(t, c.ValidateStep(StepBasics))
	assert.False(t, c.ValidateStep(StepBasics))
	assert.Equal(t, before, c.Draft())
	assert.Empty(t, c.BlockingError())
	assert.Empty(t, c.Completed())

	// Optional steps always validate.
	assert.True(t, c.ValidateStep(StepPlatforms))
	assert.True(t, c.ValidateStep(StepInsights))
	assert.True(t, c.ValidateStep(StepReview))
}

func TestOtherSentinelRequiresOverride(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	require.NoError(t, c.SetField(types.FieldCreatorName, "Ana"))
	require.NoError(t, c.SetField(types.FieldCreatorType, types.OtherCreatorType))

	assert.False(t, c.ValidateStep(StepBasics))

	c.SetOtherInput(types.FieldCreatorType, "Astrophotography")
	assert.True(t, c.ValidateStep(StepBasics))

	// Clearing the override re-blocks the step.
	c.SetOtherInput(types.FieldCreatorType, "")
	assert.False(t, c.ValidateStep(StepBasics))
}

func TestJumpToLinearAccessControl(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	fillValidDraft(t, c)
	require.NoError(t, c.Advance()) // basics complete, now on niche

	// Jumping past the first incomplete step is forbidden.
	err := c.JumpTo(StepAudience)
	require.Error(t, err)
	var accessErr *StepAccessError
	require.ErrorAs(t, err, &accessErr)
	assert.Equal(t, StepAudience, accessErr.Requested)
	assert.Equal(t, StepNiche, accessErr.RequiredStep)
	assert.NotEmpty(t, c.BlockingError())
	assert.Equal(t, StepNiche, c.CurrentStep())

	// The next incomplete step and anything behind it are reachable.
	require.NoError(t, c.JumpTo(StepBasics))
	require.NoError(t, c.JumpTo(StepNiche))
	assert.Empty(t, c.BlockingError())

	// Out-of-range steps are rejected outright.
	require.Error(t, c.JumpTo(-1))
	require.Error(t, c.JumpTo(len(c.Steps())))
}

func TestJumpToEditModeUnconstrained(t *testing.T) {
	profiles := &fakeProfiles{stored: &types.Draft{CreatorName: "Ana"}}
	c := newStartedController(t, Config{Mode: ModeEdit, Profiles: profiles})

	require.NoError(t, c.JumpTo(StepReview))
	assert.Equal(t, StepReview, c.CurrentStep())
	require.NoError(t, c.JumpTo(StepAudience))
	assert.Equal(t, StepAudience, c.CurrentStep())
}

func TestEditModeLoadsStoredProfile(t *testing.T) {
	stored := types.NewDraft()
	stored.CreatorName = "Ana Flores"
	stored.Platforms = []string{"instagram"}

	c := newStartedController(t, Config{Mode: ModeEdit, Profiles: &fakeProfiles{stored: &stored}})

	draft := c.Draft()
	assert.Equal(t, "Ana Flores", draft.CreatorName)
	assert.Equal(t, []string{"instagram"}, draft.Platforms)
}

func TestEditModeFetchFailure(t *testing.T) {
	c := New(Config{Mode: ModeEdit, Profiles: &fakeProfiles{fetchErr: errors.New("db down")}})
	err := c.Start(context.Background())
	assert.EqualError(t, err, "db down")
}

func TestPersistAndRehydrate(t *testing.T) {
	store := snapshot.NewMemoryStore()
	c := newStartedController(t, Config{Mode: ModeCreate, SessionKey: "creator-1", Store: store})
	fillValidDraft(t, c)
	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())

	// A fresh controller for the same session resumes where it left off.
	resumed := newStartedController(t, Config{Mode: ModeCreate, SessionKey: "creator-1", Store: store})
	assert.Equal(t, StepPlatforms, resumed.CurrentStep())
	assert.Equal(t, []int{StepBasics, StepNiche}, resumed.Completed())
	assert.Equal(t, "Ana Flores", resumed.Draft().CreatorName)
}

func TestEditModeNeverPersists(t *testing.T) {
	store := snapshot.NewMemoryStore()
	stored := types.NewDraft()
	stored.CreatorName = "Ana"

	c := newStartedController(t, Config{
		Mode:       ModeEdit,
		SessionKey: "creator-1",
		Store:      store,
		Profiles:   &fakeProfiles{stored: &stored},
	})
	require.NoError(t, c.SetField(types.FieldBio, "updated"))

	snap, err := store.Load("creator-1")
	require.NoError(t, err)
	assert.Nil(t, snap, "edit mode must not write local snapshots")
}

func TestSetFieldClearsFieldError(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})

	c.SetFieldError(types.FieldBio, "too long")
	assert.Equal(t, "too long", c.FieldError(types.FieldBio))

	require.NoError(t, c.SetField(types.FieldBio, "short"))
	assert.Empty(t, c.FieldError(types.FieldBio))
}

func TestMergeExternalAppliesReconcilePolicy(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	require.NoError(t, c.SetField(types.FieldCreatorName, "Ana"))

	merged := c.MergeExternal(types.Partial{
		CreatorName: "Media Kit Name",
		Industries:  []string{"fitness coaching"},
		AgeRanges:   []types.AgeRange{{Min: 10, Max: 95}},
	})

	assert.Equal(t, "Ana", merged.CreatorName)
	assert.Equal(t, "fitness coaching", merged.PrimaryNiche)
	assert.Equal(t, "Fitness & Sports", merged.CreatorType)
	assert.Equal(t, types.MinAudienceAge, merged.AgeMin)
	assert.Equal(t, types.MaxAudienceAge, merged.AgeMax)
	assert.Equal(t, merged, c.Draft())
}

func TestImportDocumentMergesExtractedFields(t *testing.T) {
	parser := &fakeParser{partial: types.Partial{Bio: "Street food explorer."}}
	c := newStartedController(t, Config{Mode: ModeCreate, Parser: parser})

	extracted, err := c.ImportDocument(context.Background(), []byte("doc"), "kit.txt")
	require.NoError(t, err)
	assert.Equal(t, "Street food explorer.", extracted.Bio)
	assert.Equal(t, "Street food explorer.", c.Draft().Bio)
}

func TestImportDocumentFailureLeavesDraftUnchanged(t *testing.T) {
	parser := &fakeParser{err: errors.New("unreadable document")}
	c := newStartedController(t, Config{Mode: ModeCreate, Parser: parser})
	require.NoError(t, c.SetField(types.FieldBio, "original"))

	_, err := c.ImportDocument(context.Background(), []byte("doc"), "kit.txt")
	require.Error(t, err)
	assert.Equal(t, "original", c.Draft().Bio)
}

func TestImportDocumentBusyRejection(t *testing.T) {
	block := make(chan struct{})
	parser := &fakeParser{block: block}
	c := newStartedController(t, Config{Mode: ModeCreate, Parser: parser})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _ = c.ImportDocument(context.Background(), []byte("doc"), "kit.txt")
	}()

	// Wait until the first import is in flight, then trigger a second.
	for {
		_, importing, _ := c.InFlight()
		if importing {
			break
		}
	}

	_, err := c.ImportDocument(context.Background(), []byte("doc"), "kit.txt")
	var busy *BusyError
	require.ErrorAs(t, err, &busy)

	close(block)
	<-done
	assert.Equal(t, 1, parser.calls, "the busy call must not reach the parser")
}

func TestImportDocumentWithoutParser(t *testing.T) {
	c := newStartedController(t, Config{Mode: ModeCreate})
	_, err := c.ImportDocument(context.Background(), []byte("doc"), "kit.txt")
	assert.Error(t, err)
}

func TestSearchProfileMergesResult(t *testing.T) {
	search := &fakeSearch{partial: types.Partial{Location: "Lisbon", Platforms: []string{"instagram"}}}
	c := newStartedController(t, Config{Mode: ModeCreate, Search: search})

	found, err := c.SearchProfile(context.Background(), "ana flores", types.SearchByName)
	require.NoError(t, err)
	assert.Equal(t, "Lisbon", found.Location)

	draft := c.Draft()
	assert.Equal(t, "Lisbon", draft.Location)
	assert.Equal(t, []string{"instagram"}, draft.Platforms)
}

func TestSearchProfileFailureLeavesDraftUnchanged(t *testing.T) {
	search := &fakeSearch{err: errors.New("no results")}
	c := newStartedController(t, Config{Mode: ModeCreate, Search: search})

	_, err := c.SearchProfile(context.Background(), "ana", types.SearchByHandle)
	require.Error(t, err)
	assert.Equal(t, types.NewDraft(), c.Draft())
}

func TestReset(t *testing.T) {
	store := snapshot.NewMemoryStore()
	c := newStartedController(t, Config{Mode: ModeCreate, SessionKey: "creator-1", Store: store})
	fillValidDraft(t, c)
	require.NoError(t, c.Advance())
	c.SetOtherInput(types.FieldCreatorType, "custom")

	require.NoError(t, c.Reset())

	assert.Equal(t, types.NewDraft(), c.Draft())
	assert.Zero(t, c.CurrentStep())
	assert.Empty(t, c.Completed())
	assert.Empty(t, c.OtherInput(types.FieldCreatorType))

	snap, err := store.Load("creator-1")
	require.NoError(t, err)
	assert.Nil(t, snap)
}

func TestOnStepCompleteCallback(t *testing.T) {
	var completed []string
	c := newStartedController(t, Config{
		Mode: ModeCreate,
		OnStepComplete: func(_ int, name string) {
			completed = append(completed, name)
		},
	})
	fillValidDraft(t, c)

	require.NoError(t, c.Advance())
	require.NoError(t, c.Advance())
	assert.Equal(t, []string{"basics", "niche"}, completed)
}
