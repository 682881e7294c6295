package ports

import (
	"context"
	"time"

	"github.com/alzia/storefront/internal/core/domain"
)

// ObjectStore keeps try-on artifacts and returns their public URL.
type ObjectStore interface {
	Put(ctx context.Context, key, contentType string, body []byte) (string, error)
}

// TryOnModel runs one generation and returns the URL of the produced image.
type TryOnModel interface {
	Generate(ctx context.Context, garmentURL, personURL string, params domain.InferenceParams) (string, error)
}

// Image is a fetched image payload.
type Image struct {
	Data        []byte
	ContentType string
}

// ImageFetcher downloads an image over HTTP(S).
type ImageFetcher interface {
	Fetch(ctx context.Context, url string) (*Image, error)
}

// Compositor builds the side-by-side garment | person | result image.
type Compositor interface {
	Compose(garment, person, result []byte, at time.Time) ([]byte, error)
}

// TokenStore keeps one-time image tokens.
type TokenStore interface {
	Save(ctx context.Context, t *domain.ImageToken) error
	// Consume validates the token at now and, when redeemable, marks it used
	// and counts the download before returning it. Rejections are
	// ErrTokenInvalid, ErrTokenUsed or ErrTokenExpired.
	Consume(ctx context.Context, token string, now time.Time) (*domain.ImageToken, error)
}
