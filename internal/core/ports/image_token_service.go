package ports

import (
	"context"
	"time"

	"github.com/alzia/storefront/internal/core/domain"
)

// IssuedToken describes a freshly minted one-time image token.
type IssuedToken struct {
	Token     string
	ExpiresAt time.Time
	ExpiresIn time.Duration
}

type ImageTokenService interface {
	// Issue mints a token for imageURL valid for expiresInMinutes (0 = default).
	Issue(ctx context.Context, imageURL string, expiresInMinutes int) (*IssuedToken, error)
	// Redeem consumes the token and returns the image it points at. The token
	// stays consumed even when the fetch fails.
	Redeem(ctx context.Context, token string) (*Image, *domain.ImageToken, error)
}
