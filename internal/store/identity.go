package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nsharma/lingua/internal/profile"
)

const (
	keyUserID  = "userId"
	keyProfile = "userProfile"
)

// IdentityRepo is the local identity store. Screens read it at mount
// time to decide personalized vs guest behavior; a missing user id
// routes profile submissions to the create path.
type IdentityRepo interface {
	// UserID returns the cached user identifier, if any.
	UserID(ctx context.Context) (string, bool)

	// SetUserID caches the user identifier.
	SetUserID(ctx context.Context, id string) error

	// Profile returns the cached profile blob, if present and well
	// formed. Malformed blobs are treated as absent.
	Profile(ctx context.Context) (*profile.Profile, bool)

	// SetProfile overwrites the cached profile wholesale.
	SetProfile(ctx context.Context, p *profile.Profile) error

	// Clear removes all cached identity state.
	Clear(ctx context.Context) error
}

type identityRepo struct {
	db *sql.DB
}

func (r *identityRepo) get(ctx context.Context, key string) (string, bool) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM identity WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			fmt.Fprintf(os.Stderr, "warning: read identity %q: %v\n", key, err)
		}
		return "", false
	}
	return value, true
}

func (r *identityRepo) set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO identity (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		key, value)
	if err != nil {
		return fmt.Errorf("write identity %q: %w", key, err)
	}
	return nil
}

func (r *identityRepo) UserID(ctx context.Context) (string, bool) {
	id, ok := r.get(ctx, keyUserID)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

func (r *identityRepo) SetUserID(ctx context.Context, id string) error {
	return r.set(ctx, keyUserID, id)
}

func (r *identityRepo) Profile(ctx context.Context) (*profile.Profile, bool) {
	raw, ok := r.get(ctx, keyProfile)
	if !ok {
		return nil, false
	}

	p, err := profile.ParseCached([]byte(raw))
	if err != nil {
		// Unparseable cached data is logged and treated as absent.
		fmt.Fprintf(os.Stderr, "warning: discarding cached profile: %v\n", err)
		return nil, false
	}
	return p, true
}

func (r *identityRepo) SetProfile(ctx context.Context, p *profile.Profile) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}
	return r.set(ctx, keyProfile, string(raw))
}

func (r *identityRepo) Clear(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM identity`)
	return err
}
