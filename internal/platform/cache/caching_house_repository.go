// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"lodging_backend/internal/feature/house/domain/entity"
	"lodging_backend/internal/feature/house/usecase"
	"lodging_backend/internal/shared/pagination"
)

// CachingHouseRepository decorates a HouseRepository with Redis caching.
// House detail lookups and the newest list are cached. Searches always go to the database.
// Every write invalidates the affected entries after the underlying write succeeds.
type CachingHouseRepository struct {
	inner     usecase.HouseRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.HouseRepository = (*CachingHouseRepository)(nil)

// NewCachingHouseRepository decorates a HouseRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "houses".
// A nil rdb disables caching entirely.
func NewCachingHouseRepository(rdb *redis.Client, ttl time.Duration, inner usecase.HouseRepository, namespace string) *CachingHouseRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "houses"
	}
	return &CachingHouseRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FindByID retrieves a house, checking cache first then falling back to the database.
// Not-found results are not cached.
func (c *CachingHouseRepository) FindByID(ctx context.Context, id uint) (*entity.House, error) {
	if c.rdb == nil {
		return c.inner.FindByID(ctx, id)
	}

	key := c.idKey(id)
	var cached entity.House
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	h, err := c.inner.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, h)
	return h, nil
}

// FindNewest retrieves the newest houses, checking cache first.
func (c *CachingHouseRepository) FindNewest(ctx context.Context, limit int) ([]entity.House, error) {
	if c.rdb == nil {
		return c.inner.FindNewest(ctx, limit)
	}

	key := c.newestKey(limit)
	var cached []entity.House
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	out, err := c.inner.FindNewest(ctx, limit)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, out)
	return out, nil
}

func (c *CachingHouseRepository) Search(ctx context.Context, criteria usecase.SearchCriteria, p pagination.Pageable) ([]entity.House, int64, error) {
	return c.inner.Search(ctx, criteria, p)
}

func (c *CachingHouseRepository) SearchByName(ctx context.Context, keyword string, p pagination.Pageable) ([]entity.House, int64, error) {
	return c.inner.SearchByName(ctx, keyword, p)
}

// Create inserts a house and invalidates the newest lists.
func (c *CachingHouseRepository) Create(ctx context.Context, h *entity.House) error {
	if err := c.inner.Create(ctx, h); err != nil {
		return err
	}
	c.invalidate(ctx, 0)
	return nil
}

// Update saves a house and invalidates its detail entry and the newest lists.
func (c *CachingHouseRepository) Update(ctx context.Context, h *entity.House) error {
	if err := c.inner.Update(ctx, h); err != nil {
		return err
	}
	c.invalidate(ctx, h.ID)
	return nil
}

// Delete removes a house and invalidates its detail entry and the newest lists.
func (c *CachingHouseRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

// get reads and decodes a cache entry. Corrupted entries are deleted and reported as a miss.
func (c *CachingHouseRepository) get(ctx context.Context, key string, dst any) bool {
	b, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil || len(b) == 0 {
		return false
	}
	if err := json.Unmarshal(b, dst); err != nil {
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
		return false
	}
	return true
}

// set stores a value (best effort).
func (c *CachingHouseRepository) set(ctx context.Context, key string, v any) {
	if b, err := json.Marshal(v); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
}

// invalidate drops the detail entry of id (when non-zero) and every newest list.
// Best effort: don't fail the write if cache deletion fails.
func (c *CachingHouseRepository) invalidate(ctx context.Context, id uint) {
	if c.rdb == nil {
		return
	}
	if id != 0 {
		_ = c.rdb.Del(ctx, c.idKey(id)).Err()
	}
	_ = c.deleteByPattern(ctx, c.newestPrefix()+"*")
}

func (c *CachingHouseRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", safe(c.namespace), id)
}

func (c *CachingHouseRepository) newestKey(limit int) string {
	return fmt.Sprintf("%s%d", c.newestPrefix(), limit)
}

func (c *CachingHouseRepository) newestPrefix() string {
	return safe(c.namespace) + ":newest:"
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingHouseRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
