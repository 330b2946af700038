package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const revokedPrefix = "revoked:"

// RevocationStore remembers revoked bearer tokens until they would have
// expired anyway. Only a hash of the token is stored.
type RevocationStore struct {
	c *redis.Client
}

func NewRevocationStore(c *redis.Client) *RevocationStore {
	return &RevocationStore{c: c}
}

func (s *RevocationStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if err := s.c.Set(ctx, revokedKey(token), 1, ttl).Err(); err != nil {
		return pkgerrors.Wrap(err, "redis revoke")
	}
	return nil
}

func (s *RevocationStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.c.Exists(ctx, revokedKey(token)).Result()
	if err != nil {
		return false, pkgerrors.Wrap(err, "redis revoked lookup")
	}
	return n > 0, nil
}

func revokedKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return revokedPrefix + hex.EncodeToString(sum[:])
}
