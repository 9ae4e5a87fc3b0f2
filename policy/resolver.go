package policy

import (
	"context"
	"fmt"
	"time"

	"github.com/KacperKuznik/image-hosting-api/entity"
)

const cacheTTL = 5 * time.Minute

// TierStore is the durable lookup behind the resolver; satisfied by
// repository.TierRepository.
type TierStore interface {
	FindByID(id uint) (*entity.UserTier, error)
}

// Cache is an out-of-process read-through cache for tier rows; satisfied by
// infra.RedisClient. May be nil.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Resolver maps a user to their effective tier policy. Resolution never
// fails: a missing or dangling tier falls back to the built-in default, so
// every principal always has some policy.
type Resolver struct {
	tiers TierStore
	cache Cache
}

func NewResolver(tiers TierStore, cache Cache) *Resolver {
	return &Resolver{tiers: tiers, cache: cache}
}

func (r *Resolver) Resolve(ctx context.Context, user *entity.User) entity.UserTier {
	if user == nil {
		return entity.DefaultTier()
	}
	if user.Tier != nil {
		return *user.Tier
	}

	if r.cache != nil {
		var tier entity.UserTier
		if err := r.cache.Get(ctx, cacheKey(user.TierID), &tier); err == nil {
			return tier
		}
	}

	tier, err := r.tiers.FindByID(user.TierID)
	if err != nil {
		return entity.DefaultTier()
	}
	if r.cache != nil {
		_ = r.cache.Set(ctx, cacheKey(user.TierID), tier, cacheTTL)
	}
	return *tier
}

// Invalidate drops a cached tier; called after administrators change tier
// configuration.
func (r *Resolver) Invalidate(ctx context.Context, tierID uint) error {
	if r.cache == nil {
		return nil
	}
	return r.cache.Delete(ctx, cacheKey(tierID))
}

func cacheKey(tierID uint) string {
	return fmt.Sprintf("tier:%d", tierID)
}
