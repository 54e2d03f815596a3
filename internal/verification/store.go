package verification

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	pkgerrors "github.com/elektrolab/stockroom-backend/pkg/errors"
)

// TokenStore keeps pending part-add requests in Redis so tokens survive a
// restart and expire on their own.
type TokenStore struct {
	redis tokenRedis
	ttl   time.Duration
}

type tokenRedis interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	VerificationTokenKey(token string) string
}

// NewTokenStore builds a store with the configured token TTL.
func NewTokenStore(redis tokenRedis, ttl time.Duration) (*TokenStore, error) {
	if redis == nil {
		return nil, fmt.Errorf("redis client required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("token ttl must be positive")
	}
	return &TokenStore{redis: redis, ttl: ttl}, nil
}

// Put stores the payload under a fresh random token and returns the token.
func (s *TokenStore) Put(ctx context.Context, payload any) (string, error) {
	token, err := newToken()
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate token")
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode pending request")
	}
	if err := s.redis.Set(ctx, s.redis.VerificationTokenKey(token), string(raw), s.ttl); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "store pending request")
	}
	return token, nil
}

// Take loads and deletes the payload for a token. A missing token means it
// was never issued, already used, or expired.
func (s *TokenStore) Take(ctx context.Context, token string, out any) error {
	key := s.redis.VerificationTokenKey(token)
	raw, err := s.redis.Get(ctx, key)
	if err != nil {
		if err == goredis.Nil {
			return pkgerrors.New(pkgerrors.CodeNotFound, "verification token is invalid or expired")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load pending request")
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decode pending request")
	}
	if err := s.redis.Del(ctx, key); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "consume pending request")
	}
	return nil
}

func newToken() (string, error) {
	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
