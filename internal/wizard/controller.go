package wizard

import (
	"context"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/averyk/creator-onboard/internal/reconcile"
	"github.com/averyk/creator-onboard/internal/snapshot"
	"github.com/averyk/creator-onboard/internal/types"
)

// Mode selects between the linear first-time flow and the random-access edit
// flow.
type Mode string

// Controller modes.
const (
	ModeCreate Mode = "create"
	ModeEdit   Mode = "edit"
)

// ProfileStore is the backend profile collaborator, already scoped to one
// creator.
type ProfileStore interface {
	Fetch(ctx context.Context) (*types.Draft, error)
	Create(ctx context.Context, payload map[string]any) error
	Update(ctx context.Context, payload map[string]any) error
}

// DocumentParser turns an uploaded document into a sparse field map.
type DocumentParser interface {
	Parse(ctx context.Context, data []byte, filename string) (types.Partial, error)
}

// ProfileSearch enriches a draft from public web data.
type ProfileSearch interface {
	Search(ctx context.Context, query string, kind types.SearchKind) (types.Partial, error)
}

// Config wires a controller to its collaborators. Store, Parser, and Search
// are optional; a nil Store disables local persistence.
type Config struct {
	Mode           Mode
	SessionKey     string
	Store          snapshot.Store
	Profiles       ProfileStore
	Parser         DocumentParser
	Search         ProfileSearch
	OnStepComplete func(step int, name string)
}

// Controller owns the draft, the current step index, the completed-step set,
// and the "other inputs" side table. It is single-writer: all mutations happen
// synchronously on the session's goroutine; only the in-flight flags are
// guarded for concurrent reads.
type Controller struct {
	cfg   Config
	steps []StepDefinition

	draft      types.Draft
	current    int
	completed  map[int]bool
	others     types.OtherInputs
	rehydrated bool

	fieldErrors map[types.FieldName]string
	blocking    string

	mu         sync.Mutex
	submitting bool
	importing  bool
	searching  bool
}

// New creates a controller with an empty draft. Call Start to load the
// initial state before use.
func New(cfg Config) *Controller {
	return &Controller{
		cfg:         cfg,
		steps:       StepFlow(),
		draft:       types.NewDraft(),
		completed:   map[int]bool{},
		others:      types.OtherInputs{},
		fieldErrors: map[types.FieldName]string{},
	}
}

// Start loads the initial draft. In edit mode the draft comes from the
// profile store and local rehydration is skipped entirely; in create mode a
// previously persisted snapshot is rehydrated if one exists. Setting the
// rehydrated flag is the last act, so nothing persists until load completes.
func (c *Controller) Start(ctx context.Context) error {
	if c.cfg.Mode == ModeEdit {
		if c.cfg.Profiles == nil {
			c.rehydrated = true
			return nil
		}
		fetched, err := c.cfg.Profiles.Fetch(ctx)
		if err != nil {
			return err
		}
		if fetched != nil {
			c.draft = fetched.Clone()
			c.draft.Normalize()
		}
		c.rehydrated = true
		return nil
	}
	return c.Rehydrate()
}

// Rehydrate restores draft and step state from the persisted snapshot, if
// any. Damaged snapshots are repaired field by field by the snapshot codec.
func (c *Controller) Rehydrate() error {
	defer func() { c.rehydrated = true }()

	if c.cfg.Store == nil {
		return nil
	}
	snap, err := c.cfg.Store.Load(c.cfg.SessionKey)
	if err != nil {
		return err
	}
	if snap == nil {
		return nil
	}

	c.draft = snap.Draft
	c.draft.Normalize()
	if snap.CurrentStep >= 0 && snap.CurrentStep < len(c.steps) {
		c.current = snap.CurrentStep
	}
	for _, step := range snap.CompletedSteps {
		if step >= 0 && step < len(c.steps) {
			c.completed[step] = true
		}
	}
	return nil
}

// Persist snapshots the current state to the local store. It is a no-op until
// rehydration has completed, so an empty initial state can never clobber a
// previously saved one, and always a no-op in edit mode.
func (c *Controller) Persist() error {
	if !c.rehydrated || c.cfg.Store == nil || c.cfg.Mode == ModeEdit {
		return nil
	}
	return c.cfg.Store.Save(c.cfg.SessionKey, &snapshot.Snapshot{
		Draft:          c.draft.Clone(),
		CurrentStep:    c.current,
		CompletedSteps: c.Completed(),
		SavedAt:        time.Now().UTC(),
	})
}

// persistLocal persists after a mutation. Snapshot writes are best-effort;
// a crash between mutation and persist loses at most one edit.
func (c *Controller) persistLocal() {
	if err := c.Persist(); err != nil {
		log.Printf("Snapshot persist failed for session %s: %v", c.cfg.SessionKey, err)
	}
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() types.Draft {
	return c.draft.Clone()
}

// CurrentStep returns the 0-based current step index.
func (c *Controller) CurrentStep() int {
	return c.current
}

// Steps returns the ordered step definitions.
func (c *Controller) Steps() []StepDefinition {
	out := make([]StepDefinition, len(c.steps))
	copy(out, c.steps)
	return out
}

// Completed returns the completed step indices in ascending order.
func (c *Controller) Completed() []int {
	out := make([]int, 0, len(c.completed))
	for step := range c.completed {
		out = append(out, step)
	}
	sort.Ints(out)
	return out
}

// IsStepCompleted reports whether a step has passed validation this session.
// The terminal review step is implicitly complete once reached.
func (c *Controller) IsStepCompleted(step int) bool {
	if c.completed[step] {
		return true
	}
	return step == len(c.steps)-1 && c.current == step
}

// BlockingError returns the current blocking message, if any.
func (c *Controller) BlockingError() string {
	return c.blocking
}

// FieldError returns the recorded error for a field, if any.
func (c *Controller) FieldError(name types.FieldName) string {
	return c.fieldErrors[name]
}

// SetFieldError records a field-level error for display. It is cleared by the
// next mutation of that field.
func (c *Controller) SetFieldError(name types.FieldName, message string) {
	c.fieldErrors[name] = message
}

// SetField replaces a field's value and clears any error recorded for it.
// Validation is deferred to step transition.
func (c *Controller) SetField(name types.FieldName, value any) error {
	if err := c.draft.Set(name, value); err != nil {
		return err
	}
	delete(c.fieldErrors, name)
	c.persistLocal()
	return nil
}

// SetArrayField adds item to a multi-choice field when included is true and
// removes it otherwise. Duplicates are never introduced.
func (c *Controller) SetArrayField(name types.FieldName, item string, included bool) error {
	if err := c.draft.ToggleItem(name, item, included); err != nil {
		return err
	}
	delete(c.fieldErrors, name)
	c.persistLocal()
	return nil
}

// SetOtherInput records the free-text override for a choice field whose
// "Other" sentinel is selected.
func (c *Controller) SetOtherInput(name types.FieldName, text string) {
	if text == "" {
		delete(c.others, name)
		return
	}
	c.others[name] = text
}

// OtherInput returns the recorded override for a field.
func (c *Controller) OtherInput(name types.FieldName) string {
	return c.others[name]
}

// ValidateStep reports whether a step's requirements are met. It is pure over
// the draft and other inputs: no state is mutated and repeated calls yield
// the same answer.
func (c *Controller) ValidateStep(step int) bool {
	return c.validateStep(step) == nil
}

func (c *Controller) validateStep(step int) error {
	if step < 0 || step >= len(c.steps) {
		return nil
	}
	def := c.steps[step]
	if def.Validate == nil {
		return nil
	}
	if err := def.Validate(&c.draft, c.others); err != nil {
		return &ValidationError{Step: step, StepName: def.Name, Message: err.Error()}
	}
	return nil
}

// Advance validates the current step and, on success, marks it complete and
// moves forward. On failure the blocking error is set and no state changes.
func (c *Controller) Advance() error {
	if err := c.validateStep(c.current); err != nil {
		c.blocking = err.Error()
		return err
	}

	c.blocking = ""
	c.completed[c.current] = true
	if c.cfg.OnStepComplete != nil {
		c.cfg.OnStepComplete(c.current, c.steps[c.current].Name)
	}
	if c.current < len(c.steps)-1 {
		c.current++
	}
	c.persistLocal()
	return nil
}

// Retreat moves back one step. Backward navigation is always allowed and
// clears any blocking error.
func (c *Controller) Retreat() {
	c.blocking = ""
	if c.current > 0 {
		c.current--
	}
	c.persistLocal()
}

// JumpTo moves directly to a step. Edit mode allows any step; linear mode
// forbids skipping past the first incomplete step.
func (c *Controller) JumpTo(step int) error {
	if step < 0 || step >= len(c.steps) {
		return &StepAccessError{Requested: step, RequiredStep: c.current, RequiredName: c.steps[c.current].Name}
	}

	if c.cfg.Mode != ModeEdit && step != 0 {
		highest := -1
		for completed := range c.completed {
			if completed > highest {
				highest = completed
			}
		}
		if step > highest+1 {
			required := highest + 1
			err := &StepAccessError{
				Requested:    step,
				RequiredStep: required,
				RequiredName: c.steps[required].Name,
			}
			c.blocking = err.Error()
			return err
		}
	}

	c.blocking = ""
	c.current = step
	c.persistLocal()
	return nil
}

// MergeExternal folds externally sourced partial data into the draft under
// the non-destructive overwrite policy and returns the updated draft.
func (c *Controller) MergeExternal(partial types.Partial) types.Draft {
	c.draft = reconcile.Merge(c.draft, partial)
	c.persistLocal()
	return c.draft.Clone()
}

// ImportDocument parses an uploaded document and merges the extracted fields
// into the draft. A second call while one is in flight is rejected with a
// busy condition.
func (c *Controller) ImportDocument(ctx context.Context, data []byte, filename string) (types.Partial, error) {
	if c.cfg.Parser == nil {
		return types.Partial{}, errNoParser
	}
	if !c.begin(&c.importing) {
		return types.Partial{}, &BusyError{Operation: "document import"}
	}
	defer c.end(&c.importing)

	partial, err := c.cfg.Parser.Parse(ctx, data, filename)
	if err != nil {
		// Draft left unchanged; the caller may retry.
		return types.Partial{}, err
	}
	c.MergeExternal(partial)
	return partial, nil
}

// SearchProfile runs a smart-search lookup and merges the result into the
// draft. A second call while one is in flight is rejected with a busy
// condition.
func (c *Controller) SearchProfile(ctx context.Context, query string, kind types.SearchKind) (types.Partial, error) {
	if c.cfg.Search == nil {
		return types.Partial{}, errNoSearch
	}
	if !c.begin(&c.searching) {
		return types.Partial{}, &BusyError{Operation: "smart search"}
	}
	defer c.end(&c.searching)

	partial, err := c.cfg.Search.Search(ctx, query, kind)
	if err != nil {
		return types.Partial{}, err
	}
	c.MergeExternal(partial)
	return partial, nil
}

// InFlight reports the submitting, importing, and searching flags so callers
// can disable duplicate triggers.
func (c *Controller) InFlight() (submitting, importing, searching bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting, c.importing, c.searching
}

// Reset discards the draft, step progress, other inputs, and the persisted
// snapshot.
func (c *Controller) Reset() error {
	c.draft = types.NewDraft()
	c.current = 0
	c.completed = map[int]bool{}
	c.others = types.OtherInputs{}
	c.fieldErrors = map[types.FieldName]string{}
	c.blocking = ""
	if c.cfg.Store != nil {
		return c.cfg.Store.Clear(c.cfg.SessionKey)
	}
	return nil
}

func (c *Controller) begin(flag *bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if *flag {
		return false
	}
	*flag = true
	return true
}

func (c *Controller) end(flag *bool) {
	c.mu.Lock()
	*flag = false
	c.mu.Unlock()
}
