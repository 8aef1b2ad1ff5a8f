package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/ninesuite/ninesuite-backend/internal/logger"
	"github.com/ninesuite/ninesuite-backend/internal/types"
)

// RegistryCache is the read cache in front of the source-config registry.
// Mutations invalidate, reads fall through to Postgres on a miss. The cache
// is best-effort: callers must tolerate a nil cache and cache errors.
type RegistryCache interface {
	GetSourceConfigs(ctx context.Context, companyID, axis string) ([]*types.SourceConfig, bool)
	SetSourceConfigs(ctx context.Context, companyID, axis string, configs []*types.SourceConfig)
	InvalidateCompany(ctx context.Context, companyID string) error
	Close() error
}

type registryCache struct {
	log *logger.Logger
	rdb *goredis.Client
	ttl time.Duration
}

func NewRegistryCache(log *logger.Logger) (RegistryCache, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &registryCache{
		log: log.With("service", "RedisRegistryCache"),
		rdb: rdb,
		ttl: 10 * time.Minute,
	}, nil
}

func cacheKey(companyID, axis string) string {
	return fmt.Sprintf("source_config:%s:%s", companyID, axis)
}

func (c *registryCache) GetSourceConfigs(ctx context.Context, companyID, axis string) ([]*types.SourceConfig, bool) {
	raw, err := c.rdb.Get(ctx, cacheKey(companyID, axis)).Bytes()
	if err != nil {
		if err != goredis.Nil {
			c.log.Warn("Registry cache read failed", "error", err, "company_id", companyID, "axis", axis)
		}
		return nil, false
	}
	var configs []*types.SourceConfig
	if err := json.Unmarshal(raw, &configs); err != nil {
		c.log.Warn("Registry cache entry corrupt, dropping", "error", err, "company_id", companyID, "axis", axis)
		_ = c.rdb.Del(ctx, cacheKey(companyID, axis)).Err()
		return nil, false
	}
	return configs, true
}

func (c *registryCache) SetSourceConfigs(ctx context.Context, companyID, axis string, configs []*types.SourceConfig) {
	raw, err := json.Marshal(configs)
	if err != nil {
		c.log.Warn("Registry cache marshal failed", "error", err, "company_id", companyID, "axis", axis)
		return
	}
	if err := c.rdb.Set(ctx, cacheKey(companyID, axis), raw, c.ttl).Err(); err != nil {
		c.log.Warn("Registry cache write failed", "error", err, "company_id", companyID, "axis", axis)
	}
}

// InvalidateCompany drops both axis entries for a tenant. Called after every
// successful registry mutation.
func (c *registryCache) InvalidateCompany(ctx context.Context, companyID string) error {
	keys := []string{
		cacheKey(companyID, "performance"),
		cacheKey(companyID, "potential"),
	}
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("registry cache invalidate: %w", err)
	}
	return nil
}

func (c *registryCache) Close() error {
	return c.rdb.Close()
}
