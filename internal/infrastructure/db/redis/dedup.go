package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 24 * time.Hour

// DedupChecker remembers the last transition recorded for each order so that
// re-saving an unchanged status does not add another audit row.
// Key format: dedup:order:<order_id> holding "<status>/<payment_status>".
type DedupChecker struct {
	client *redis.Client
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
func NewDedupChecker(client *redis.Client) *DedupChecker {
	return &DedupChecker{client: client}
}

// IsDuplicate reports whether transition equals the last one recorded for orderID.
func (d *DedupChecker) IsDuplicate(ctx context.Context, orderID, transition string) (bool, error) {
	last, err := d.client.Get(ctx, d.key(orderID)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return last == transition, nil
}

// Mark stores transition as the last one recorded for orderID (expires after dedupTTL).
func (d *DedupChecker) Mark(ctx context.Context, orderID, transition string) error {
	return d.client.Set(ctx, d.key(orderID), transition, dedupTTL).Err()
}

func (d *DedupChecker) key(orderID string) string {
	return "dedup:order:" + orderID
}
