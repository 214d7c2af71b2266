package auth

import (
	"context"
	"time"

	"healthtrack/internal/cache"
)

const blacklistKeyPrefix = "blacklist:token:"

// BlacklistStore tracks tokens revoked by logout. Entries expire with the
// token itself, so no cleanup job is needed.
type BlacklistStore interface {
	Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore is a redis-backed BlacklistStore.
type TokenStore struct {
	cache *cache.Client
}

var _ BlacklistStore = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Blacklist marks a token ID as revoked until its natural expiry.
func (s *TokenStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		// already expired, nothing to revoke
		return nil
	}
	return s.cache.Set(ctx, blacklistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsBlacklisted reports whether a token ID was revoked.
func (s *TokenStore) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, blacklistKeyPrefix+tokenID)
}
