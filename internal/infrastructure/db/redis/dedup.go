package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const guardTTL = time.Hour

// SubmissionGuard provides duplicate-submission checks backed by Redis.
// Key format: submission:<phone>:<digest>
type SubmissionGuard struct {
	client *redis.Client
}

// NewSubmissionGuard creates a SubmissionGuard wrapping the given Redis client.
func NewSubmissionGuard(client *redis.Client) *SubmissionGuard {
	return &SubmissionGuard{client: client}
}

// IsDuplicate reports whether an identical submission was seen within guardTTL.
func (g *SubmissionGuard) IsDuplicate(ctx context.Context, phone, digest string) (bool, error) {
	n, err := g.client.Exists(ctx, g.key(phone, digest)).Result()
	if err != nil {
		return false, fmt.Errorf("submission guard check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this submission has been accepted (expires after guardTTL).
func (g *SubmissionGuard) Mark(ctx context.Context, phone, digest string) error {
	return g.client.Set(ctx, g.key(phone, digest), "1", guardTTL).Err()
}

func (g *SubmissionGuard) key(phone, digest string) string {
	return fmt.Sprintf("submission:%s:%s", phone, digest)
}
