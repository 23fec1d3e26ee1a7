package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mhans98/payroll-app/internal/domain"
	"github.com/redis/go-redis/v9"
)

// TotalsCache stores computed weekly report totals keyed by week
type TotalsCache interface {
	Get(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, bool, error)
	Set(ctx context.Context, report *domain.WeeklyReportResponse) error
	Invalidate(ctx context.Context, weekID uuid.UUID) error
	// InvalidateAll drops every cached week
	InvalidateAll(ctx context.Context) error
}

const totalsKeyPrefix = "payroll:totals:week:"

const scanBatch = 100

func totalsKey(weekID uuid.UUID) string {
	return totalsKeyPrefix + weekID.String()
}

// RedisTotalsCache keeps reports as JSON strings with a TTL
type RedisTotalsCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisTotalsCache(client *redis.Client, ttl time.Duration) *RedisTotalsCache {
	return &RedisTotalsCache{client: client, ttl: ttl}
}

func (c *RedisTotalsCache) Get(ctx context.Context, weekID uuid.UUID) (*domain.WeeklyReportResponse, bool, error) {
	data, err := c.client.Get(ctx, totalsKey(weekID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read weekly totals: %w", err)
	}

	var report domain.WeeklyReportResponse
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, false, fmt.Errorf("failed to decode weekly totals: %w", err)
	}
	return &report, true, nil
}

func (c *RedisTotalsCache) Set(ctx context.Context, report *domain.WeeklyReportResponse) error {
	data, err := json.Marshal(report)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, totalsKey(report.WeekID), data, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store weekly totals: %w", err)
	}
	return nil
}

func (c *RedisTotalsCache) Invalidate(ctx context.Context, weekID uuid.UUID) error {
	if err := c.client.Del(ctx, totalsKey(weekID)).Err(); err != nil {
		return fmt.Errorf("failed to invalidate weekly totals: %w", err)
	}
	return nil
}

func (c *RedisTotalsCache) InvalidateAll(ctx context.Context) error {
	keys := make([]string, 0, scanBatch)
	iter := c.client.Scan(ctx, 0, totalsKeyPrefix+"*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
		if len(keys) == scanBatch {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("failed to invalidate weekly totals: %w", err)
			}
			keys = keys[:0]
		}
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan weekly totals: %w", err)
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			return fmt.Errorf("failed to invalidate weekly totals: %w", err)
		}
	}
	return nil
}

// NoopTotalsCache never stores anything
type NoopTotalsCache struct{}

func (NoopTotalsCache) Get(context.Context, uuid.UUID) (*domain.WeeklyReportResponse, bool, error) {
	return nil, false, nil
}

func (NoopTotalsCache) Set(context.Context, *domain.WeeklyReportResponse) error { return nil }

func (NoopTotalsCache) Invalidate(context.Context, uuid.UUID) error { return nil }

func (NoopTotalsCache) InvalidateAll(context.Context) error { return nil }

var (
	_ TotalsCache = (*RedisTotalsCache)(nil)
	_ TotalsCache = NoopTotalsCache{}
)
