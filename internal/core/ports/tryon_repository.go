package ports

import (
	"context"

	"github.com/alzia/storefront/internal/core/domain"
)

// TryOnRepository stores generated results and the credit usage history.
type TryOnRepository interface {
	InsertResult(ctx context.Context, r *domain.TryOnResult) error
	InsertHistory(ctx context.Context, h *domain.TryOnHistory) error
	ListResults(ctx context.Context, customerID string, limit int) ([]*domain.TryOnResult, error)
}
