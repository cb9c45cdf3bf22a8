// Package cache implements Redis-backed caches for the integration layer.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/concilia/backend/internal/application/adapter"
	"github.com/concilia/backend/internal/domain/valueobject"
)

// reportCache stores the most recent reconciliation report per company as a
// JSON blob under an expiring key.
type reportCache struct {
	client *redis.Client
}

// NewReportCache creates a new Redis-backed report cache instance.
func NewReportCache(client *redis.Client) adapter.ReportCache {
	return &reportCache{
		client: client,
	}
}

func reportKey(companyID uuid.UUID) string {
	return fmt.Sprintf("reconciliation:report:%s", companyID)
}

// StoreLatest replaces the cached report for a company.
func (c *reportCache) StoreLatest(
	ctx context.Context,
	companyID uuid.UUID,
	report *valueobject.ReconciliationReport,
	ttl time.Duration,
) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, reportKey(companyID), payload, ttl).Err()
}

// GetLatest returns the cached report, or nil without error on a miss.
func (c *reportCache) GetLatest(
	ctx context.Context,
	companyID uuid.UUID,
) (*valueobject.ReconciliationReport, error) {
	payload, err := c.client.Get(ctx, reportKey(companyID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}

	var report valueobject.ReconciliationReport
	if err := json.Unmarshal(payload, &report); err != nil {
		return nil, err
	}
	return &report, nil
}
