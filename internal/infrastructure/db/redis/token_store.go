package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alzia/storefront/internal/core/domain"
)

const (
	tokenKeyPrefix = "imgtok:"
	usedKeyPrefix  = "imgtok:used:"
)

// TokenStore keeps one-time image tokens in Redis so that single use holds
// across every instance. The token key expires with the token; a consumed
// token leaves a used marker behind until its original expiry.
type TokenStore struct {
	client *redis.Client
}

func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

type storedToken struct {
	ImageURL  string    `json:"image_url"`
	ExpiresAt time.Time `json:"expires_at"`
}

func (s *TokenStore) Save(ctx context.Context, t *domain.ImageToken) error {
	ttl := time.Until(t.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("save token: already expired")
	}
	payload, err := json.Marshal(storedToken{ImageURL: t.ImageURL, ExpiresAt: t.ExpiresAt})
	if err != nil {
		return fmt.Errorf("encode token: %w", err)
	}
	return s.client.Set(ctx, tokenKeyPrefix+t.Token, payload, ttl).Err()
}

// Consume removes the token atomically with GETDEL, so two concurrent
// redemptions cannot both succeed.
func (s *TokenStore) Consume(ctx context.Context, token string, now time.Time) (*domain.ImageToken, error) {
	raw, err := s.client.GetDel(ctx, tokenKeyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		used, existsErr := s.client.Exists(ctx, usedKeyPrefix+token).Result()
		if existsErr == nil && used > 0 {
			return nil, domain.ErrTokenUsed
		}
		return nil, domain.ErrTokenInvalid
	}
	if err != nil {
		return nil, fmt.Errorf("consume token: %w", err)
	}

	var st storedToken
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode token: %w", err)
	}

	t := &domain.ImageToken{Token: token, ImageURL: st.ImageURL, ExpiresAt: st.ExpiresAt}
	if err := t.Check(now); err != nil {
		return nil, err
	}

	t.Used = true
	t.Downloads = 1
	if ttl := st.ExpiresAt.Sub(now); ttl > 0 {
		_ = s.client.Set(ctx, usedKeyPrefix+token, "1", ttl).Err()
	}
	return t, nil
}
