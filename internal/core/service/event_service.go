package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/alzia/storefront/internal/core/domain"
	"github.com/alzia/storefront/internal/core/ports"
)

// DedupChecker remembers the last transition recorded per order (Redis).
type DedupChecker interface {
	IsDuplicate(ctx context.Context, orderID, transition string) (bool, error)
	Mark(ctx context.Context, orderID, transition string) error
}

type orderEventService struct {
	repo  ports.OrderEventRepository
	dedup DedupChecker
	log   zerolog.Logger
}

// NewOrderEventService returns an OrderEventService implementation.
func NewOrderEventService(repo ports.OrderEventRepository, dedup DedupChecker, log zerolog.Logger) ports.OrderEventService {
	return &orderEventService{repo: repo, dedup: dedup, log: log}
}

// Record appends one order status event to the audit trail unless it repeats
// the order's last recorded status and payment status.
func (s *orderEventService) Record(ctx context.Context, ev domain.OrderStatusEvent) error {
	key := string(ev.Status) + "/" + string(ev.PaymentStatus)

	isDup, err := s.dedup.IsDuplicate(ctx, ev.OrderID, key)
	if err != nil {
		s.log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("dedup check failed, recording anyway")
	} else if isDup {
		s.log.Debug().Str("order_id", ev.OrderID).Str("status", string(ev.Status)).Msg("unchanged order status skipped")
		return nil
	}

	if err := s.repo.Insert(ctx, &ev); err != nil {
		return fmt.Errorf("record order event: %w", err)
	}

	if err := s.dedup.Mark(ctx, ev.OrderID, key); err != nil {
		s.log.Warn().Err(err).Str("order_id", ev.OrderID).Msg("failed to set dedup key")
	}
	return nil
}
