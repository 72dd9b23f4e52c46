// Package cache keeps rendered course curriculum trees in Redis
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/coursehub/backend/internal/models"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	courseDetailKeyPrefix     = "coursehub:course_detail:"
	courseGenerationKeyPrefix = "coursehub:course_detail_gen:"
)

// Store is the subset of the Redis client used by the cache
type Store interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// Generation identifies the cache entry a reader looked up.
// Details are stored under the generation that was current before the database read,
// so a Set racing with Invalidate writes to a key no reader will ask for again.
type Generation int64

// NoGeneration is returned when the current generation could not be read; Set ignores it.
const NoGeneration Generation = -1

// CourseDetailCache is a read-through cache of course detail responses.
// A nil store turns every method into a no-op, so callers never branch on Redis being configured.
type CourseDetailCache struct {
	store  Store
	ttl    time.Duration
	logger *zap.Logger
}

// NewCourseDetailCache creates a new course detail cache
func NewCourseDetailCache(store Store, ttl time.Duration, logger *zap.Logger) *CourseDetailCache {
	return &CourseDetailCache{
		store:  store,
		ttl:    ttl,
		logger: logger,
	}
}

// CourseDetailKey returns the Redis key of a course detail entry for one generation
func CourseDetailKey(courseID string, gen Generation) string {
	return courseDetailKeyPrefix + courseID + ":" + strconv.FormatInt(int64(gen), 10)
}

// CourseGenerationKey returns the Redis key holding the current generation of a course
func CourseGenerationKey(courseID string) string {
	return courseGenerationKeyPrefix + courseID
}

// Get returns the cached detail of a course together with the generation it was looked up under.
// Misses and Redis failures both report false; pass the generation to Set after rebuilding the detail.
func (c *CourseDetailCache) Get(ctx context.Context, courseID string) (*models.CourseDetailResponse, Generation, bool) {
	if c == nil || c.store == nil {
		return nil, NoGeneration, false
	}

	gen, err := c.generation(ctx, courseID)
	if err != nil {
		c.logger.Warn("failed to read course detail generation", zap.String("course_id", courseID), zap.Error(err))
		return nil, NoGeneration, false
	}

	key := CourseDetailKey(courseID, gen)
	raw, err := c.store.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("failed to read course detail from cache", zap.String("course_id", courseID), zap.Error(err))
			return nil, NoGeneration, false
		}
		return nil, gen, false
	}

	var detail models.CourseDetailResponse
	if err := json.Unmarshal(raw, &detail); err != nil {
		c.logger.Warn("dropping undecodable course detail cache entry", zap.String("course_id", courseID), zap.Error(err))
		if err := c.store.Del(ctx, key).Err(); err != nil {
			c.logger.Warn("failed to drop course detail cache entry", zap.String("course_id", courseID), zap.Error(err))
		}
		return nil, gen, false
	}
	return &detail, gen, true
}

// Set stores the detail of a course under the generation returned by Get, for the configured TTL
func (c *CourseDetailCache) Set(ctx context.Context, courseID string, gen Generation, detail *models.CourseDetailResponse) {
	if c == nil || c.store == nil || detail == nil || gen < 0 {
		return
	}

	raw, err := json.Marshal(detail)
	if err != nil {
		c.logger.Warn("failed to encode course detail for cache", zap.String("course_id", courseID), zap.Error(err))
		return
	}
	if err := c.store.Set(ctx, CourseDetailKey(courseID, gen), raw, c.ttl).Err(); err != nil {
		c.logger.Warn("failed to write course detail to cache", zap.String("course_id", courseID), zap.Error(err))
	}
}

// Invalidate moves a course to a new generation and drops the entry of the previous one
func (c *CourseDetailCache) Invalidate(ctx context.Context, courseID string) {
	if c == nil || c.store == nil {
		return
	}

	next, err := c.store.Incr(ctx, CourseGenerationKey(courseID)).Result()
	if err != nil {
		c.logger.Warn("failed to invalidate course detail cache", zap.String("course_id", courseID), zap.Error(err))
		return
	}
	if err := c.store.Del(ctx, CourseDetailKey(courseID, Generation(next-1))).Err(); err != nil {
		c.logger.Warn("failed to drop stale course detail", zap.String("course_id", courseID), zap.Error(err))
	}
}

func (c *CourseDetailCache) generation(ctx context.Context, courseID string) (Generation, error) {
	gen, err := c.store.Get(ctx, CourseGenerationKey(courseID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return NoGeneration, err
	}
	return Generation(gen), nil
}
