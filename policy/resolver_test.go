package policy

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/KacperKuznik/image-hosting-api/entity"
	"github.com/stretchr/testify/assert"
	"gorm.io/datatypes"
)

type fakeTierStore struct {
	tiers map[uint]entity.UserTier
	calls int
}

func (f *fakeTierStore) FindByID(id uint) (*entity.UserTier, error) {
	f.calls++
	t, ok := f.tiers[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return &t, nil
}

type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	b, ok := f.data[key]
	if !ok {
		return errors.New("key not found in cache")
	}
	return json.Unmarshal(b, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, _ time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.data[key] = b
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, keys ...string) error {
	for _, k := range keys {
		delete(f.data, k)
	}
	return nil
}

func premiumTier() entity.UserTier {
	return entity.UserTier{
		ID:                  2,
		Name:                "Premium",
		ThumbnailSizes:      datatypes.JSONSlice[int]{200, 400},
		CanViewOriginal:     true,
		CanMintExpiringLink: false,
	}
}

func TestResolvePreloadedTier(t *testing.T) {
	tier := premiumTier()
	store := &fakeTierStore{}
	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), &entity.User{ID: 1, TierID: 2, Tier: &tier})
	assert.Equal(t, tier, got)
	assert.Zero(t, store.calls, "preloaded tier should not hit the store")
}

func TestResolveNilUserFallsBackToDefault(t *testing.T) {
	r := NewResolver(&fakeTierStore{}, nil)
	assert.Equal(t, entity.DefaultTier(), r.Resolve(context.Background(), nil))
}

func TestResolveMissingTierFallsBackToDefault(t *testing.T) {
	store := &fakeTierStore{tiers: map[uint]entity.UserTier{}}
	r := NewResolver(store, nil)

	got := r.Resolve(context.Background(), &entity.User{ID: 1, TierID: 99})
	assert.Equal(t, entity.DefaultTier(), got)
}

func TestResolveReadThroughCache(t *testing.T) {
	store := &fakeTierStore{tiers: map[uint]entity.UserTier{2: premiumTier()}}
	cache := newFakeCache()
	r := NewResolver(store, cache)
	user := &entity.User{ID: 1, TierID: 2}

	first := r.Resolve(context.Background(), user)
	second := r.Resolve(context.Background(), user)

	assert.Equal(t, premiumTier(), first)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.calls, "second resolve should be served from cache")
}

func TestInvalidate(t *testing.T) {
	store := &fakeTierStore{tiers: map[uint]entity.UserTier{2: premiumTier()}}
	cache := newFakeCache()
	r := NewResolver(store, cache)
	user := &entity.User{ID: 1, TierID: 2}

	r.Resolve(context.Background(), user)
	assert.NoError(t, r.Invalidate(context.Background(), 2))
	r.Resolve(context.Background(), user)

	assert.Equal(t, 2, store.calls, "invalidate should force a store reload")
}
