// Package tokenstore keeps the bearer token in local storage under a single
// canonical key.
//
// Older releases wrote the token under several names (auth_token, authtoken,
// accesstoken). MigrateLegacy folds those into the canonical key once at
// startup; Get never looks at legacy names.
package tokenstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/dmitrijs2005/careercoach/internal/client/repositories/localstorage"
	"github.com/dmitrijs2005/careercoach/internal/dbx"
	"github.com/golang-jwt/jwt/v5"
)

// CanonicalKey is the only key the token is read from and written to.
const CanonicalKey = "access_token"

// LegacyKeys are migrated in this order; the first non-empty one wins.
var LegacyKeys = []string{"auth_token", "authtoken", "accesstoken"}

// Store is the Token Store contract used by the API client and auth service.
type Store interface {
	Get(ctx context.Context) (string, error)
	Set(ctx context.Context, token string) error
	Clear(ctx context.Context) error
}

type SQLiteStore struct {
	db   *sql.DB
	repo localstorage.Repository
}

func New(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db, repo: localstorage.NewSQLiteRepository(db)}
}

func (s *SQLiteStore) Get(ctx context.Context) (string, error) {
	v, err := s.repo.Get(ctx, CanonicalKey)
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return string(v), nil
}

func (s *SQLiteStore) Set(ctx context.Context, token string) error {
	if token == "" {
		return s.Clear(ctx)
	}
	if err := s.repo.Set(ctx, CanonicalKey, []byte(token)); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	return nil
}

// Clear removes the canonical key together with any legacy leftovers.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	keys := append([]string{CanonicalKey}, LegacyKeys...)
	if err := s.repo.Delete(ctx, keys...); err != nil {
		return fmt.Errorf("clear token: %w", err)
	}
	return nil
}

// MigrateLegacy copies the first non-empty legacy token to CanonicalKey when
// the canonical key is empty, and deletes every legacy key. It reports
// whether a token was moved.
func (s *SQLiteStore) MigrateLegacy(ctx context.Context) (bool, error) {
	moved := false

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo.WithTx(tx)

		stored, err := repo.List(ctx)
		if err != nil {
			return err
		}

		if len(stored[CanonicalKey]) == 0 {
			for _, k := range LegacyKeys {
				v := stored[k]
				if len(v) == 0 {
					continue
				}
				if err := repo.Set(ctx, CanonicalKey, v); err != nil {
					return err
				}
				moved = true
				break
			}
		}

		return repo.Delete(ctx, LegacyKeys...)
	})
	if err != nil {
		return false, fmt.Errorf("migrate legacy token keys: %w", err)
	}
	return moved, nil
}

// Expiry reads the exp claim of a JWT without verifying its signature. The
// client cannot verify backend tokens; this only saves a round trip for a
// token that is already known to be stale. Opaque tokens report false.
func Expiry(token string) (time.Time, bool) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether token carries an exp claim earlier than now.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	return ok && !now.Before(exp)
}
