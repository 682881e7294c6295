package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// TryOnInput carries the two uploaded images of a generation request.
type TryOnInput struct {
	CustomerID string
	Garment    []byte
	Person     []byte
}

// TryOnOutput is returned after a successful generation.
type TryOnOutput struct {
	JobID            string
	ResultURL        string
	CombinedURL      string
	GarmentURL       string
	PersonURL        string
	MetadataURL      string
	CreditsRemaining int
}

type TryOnService interface {
	Generate(ctx context.Context, input TryOnInput) (*TryOnOutput, error)
	Credits(ctx context.Context, customerID string) (*domain.CreditBalance, error)
	History(ctx context.Context, customerID string) ([]*domain.TryOnResult, error)
}
