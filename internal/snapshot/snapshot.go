// Package snapshot provides local persistence for in-progress onboarding
// drafts: the snapshot format, lenient rehydration, and pluggable stores.
package snapshot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/averyk/creator-onboard/internal/types"
)

// Snapshot is the persisted wizard state: the draft plus step progress.
type Snapshot struct {
	Draft          types.Draft `json:"draft"`
	CurrentStep    int         `json:"current_step"`
	CompletedSteps []int       `json:"completed_steps"`
	SavedAt        time.Time   `json:"saved_at"`
}

// CorruptSnapshotError indicates a snapshot that could not be decoded at all.
// Field-level damage is repaired silently; this error is reserved for
// documents that are not even JSON.
type CorruptSnapshotError struct {
	Cause error
}

func (e *CorruptSnapshotError) Error() string {
	return fmt.Sprintf("corrupt snapshot: %v", e.Cause)
}

func (e *CorruptSnapshotError) Unwrap() error {
	return e.Cause
}

// Encode serializes a snapshot for storage.
func Encode(snap *Snapshot) ([]byte, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return data, nil
}

// Decode restores a snapshot, coercing damaged fields to safe defaults
// field by field rather than discarding the whole document. A field whose
// stored value has the wrong type (a string where a sequence was expected,
// say) simply rehydrates as empty.
func Decode(data []byte) (*Snapshot, error) {
	var wire struct {
		Draft          json.RawMessage `json:"draft"`
		CurrentStep    json.RawMessage `json:"current_step"`
		CompletedSteps json.RawMessage `json:"completed_steps"`
		SavedAt        json.RawMessage `json:"saved_at"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &CorruptSnapshotError{Cause: err}
	}

	snap := &Snapshot{
		Draft:          decodeDraft(wire.Draft),
		CompletedSteps: []int{},
	}

	if len(wire.CurrentStep) > 0 {
		var step int
		if err := json.Unmarshal(wire.CurrentStep, &step); err == nil && step >= 0 {
			snap.CurrentStep = step
		}
	}
	if len(wire.CompletedSteps) > 0 {
		var steps []int
		if err := json.Unmarshal(wire.CompletedSteps, &steps); err == nil {
			for _, s := range steps {
				if s >= 0 {
					snap.CompletedSteps = appendUniqueStep(snap.CompletedSteps, s)
				}
			}
		}
	}
	if len(wire.SavedAt) > 0 {
		var at time.Time
		if err := json.Unmarshal(wire.SavedAt, &at); err == nil {
			snap.SavedAt = at
		}
	}

	return snap, nil
}

// decodeDraft rehydrates the draft field by field against the field catalog.
func decodeDraft(raw json.RawMessage) types.Draft {
	draft := types.NewDraft()
	if len(raw) == 0 {
		return draft
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return draft
	}

	for _, spec := range types.Fields() {
		value, ok := fields[string(spec.Name)]
		if !ok || len(value) == 0 {
			continue
		}
		switch spec.Kind {
		case types.KindText, types.KindSingleChoice:
			var s string
			if err := json.Unmarshal(value, &s); err == nil {
				_ = draft.Set(spec.Name, s)
			}
		case types.KindMultiChoice:
			var items []string
			if err := json.Unmarshal(value, &items); err == nil && items != nil {
				_ = draft.Set(spec.Name, items)
			}
		case types.KindRange:
			var n int
			if err := json.Unmarshal(value, &n); err == nil && n > 0 {
				_ = draft.Set(spec.Name, n)
			}
		case types.KindToneMap:
			var tone map[string]string
			if err := json.Unmarshal(value, &tone); err == nil && tone != nil {
				_ = draft.Set(spec.Name, tone)
			}
		}
	}

	draft.Normalize()
	return draft
}

func appendUniqueStep(steps []int, step int) []int {
	for _, existing := range steps {
		if existing == step {
			return steps
		}
	}
	return append(steps, step)
}
