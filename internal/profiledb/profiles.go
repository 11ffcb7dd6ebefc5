package profiledb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/averyk/creator-onboard/internal/types"
)

// FetchProfile loads the stored profile payload for a creator and decodes it
// into a draft. Returns NotFoundError when no profile exists.
func (db *DB) FetchProfile(ctx context.Context, creatorID uuid.UUID) (*types.Draft, error) {
	var payload []byte
	err := db.pool.QueryRow(ctx,
		`SELECT payload FROM creator_profiles WHERE creator_id = $1`,
		creatorID,
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, &NotFoundError{CreatorID: creatorID}
		}
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}

	draft := types.NewDraft()
	if err := json.Unmarshal(payload, &draft); err != nil {
		return nil, fmt.Errorf("failed to decode profile payload: %w", err)
	}
	draft.Normalize()
	return &draft, nil
}

// CreateProfile stores a new profile payload. Returns ConflictError when the
// creator already has one.
func (db *DB) CreateProfile(ctx context.Context, creatorID uuid.UUID, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal profile payload: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`INSERT INTO creator_profiles (creator_id, payload)
		 VALUES ($1, $2)
		 ON CONFLICT (creator_id) DO NOTHING`,
		creatorID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &ConflictError{CreatorID: creatorID}
	}
	return nil
}

// UpdateProfile replaces the stored profile payload. Returns NotFoundError
// when no profile exists.
func (db *DB) UpdateProfile(ctx context.Context, creatorID uuid.UUID, payload map[string]any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal profile payload: %w", err)
	}

	tag, err := db.pool.Exec(ctx,
		`UPDATE creator_profiles SET payload = $2, updated_at = NOW() WHERE creator_id = $1`,
		creatorID, data,
	)
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return &NotFoundError{CreatorID: creatorID}
	}
	return nil
}

// CreatorProfiles is the profile store scoped to one creator. It satisfies
// the wizard's ProfileStore interface.
type CreatorProfiles struct {
	db        *DB
	creatorID uuid.UUID
}

// ForCreator returns a profile store bound to a single creator.
func (db *DB) ForCreator(creatorID uuid.UUID) *CreatorProfiles {
	return &CreatorProfiles{db: db, creatorID: creatorID}
}

// Fetch loads the creator's stored profile as a draft.
func (p *CreatorProfiles) Fetch(ctx context.Context) (*types.Draft, error) {
	return p.db.FetchProfile(ctx, p.creatorID)
}

// Create stores a new profile payload for the creator.
func (p *CreatorProfiles) Create(ctx context.Context, payload map[string]any) error {
	return p.db.CreateProfile(ctx, p.creatorID, payload)
}

// Update replaces the creator's stored profile payload.
func (p *CreatorProfiles) Update(ctx context.Context, payload map[string]any) error {
	return p.db.UpdateProfile(ctx, p.creatorID, payload)
}
