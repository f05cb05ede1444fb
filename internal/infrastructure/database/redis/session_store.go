// internal/infrastructure/database/redis/session_store.go
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
)

const (
	cartKeyPrefix  = "techempire-cart:"
	buildKeyPrefix = "techempire-build:"
)

// CartKey is the key holding the guest cart of a session
func CartKey(sessionID string) string { return cartKeyPrefix + sessionID }

// BuildKey is the key holding the PC build of a session
func BuildKey(sessionID string) string { return buildKeyPrefix + sessionID }

// blob is one JSON value stored under a key with a sliding TTL
type blob struct {
	rdb redis.Cmdable
	key string
	ttl time.Duration
}

// read returns (nil, nil) when the key does not exist
func (b blob) read(ctx context.Context) ([]byte, error) {
	data, err := b.rdb.Get(ctx, b.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", b.key, err)
	}
	return data, nil
}

func (b blob) write(ctx context.Context, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", b.key, err)
	}
	if err := b.rdb.Set(ctx, b.key, data, b.ttl).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", b.key, err)
	}
	return nil
}

// CartStore keeps a session's cart entries as a JSON array
type CartStore struct {
	blob
}

// NewCartStore creates the cart store of one session
func NewCartStore(rdb redis.Cmdable, sessionID string, ttl time.Duration) *CartStore {
	return &CartStore{blob{rdb: rdb, key: CartKey(sessionID), ttl: ttl}}
}

// Load implements cart.Storage
func (s *CartStore) Load(ctx context.Context) ([]cart.Entry, error) {
	data, err := s.read(ctx)
	if err != nil || data == nil {
		return nil, err
	}

	var entries []cart.Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	return entries, nil
}

// Save implements cart.Storage
func (s *CartStore) Save(ctx context.Context, entries []cart.Entry) error {
	if entries == nil {
		entries = []cart.Entry{}
	}
	return s.write(ctx, entries)
}

// BuildStore keeps a session's build as a JSON object keyed by category
type BuildStore struct {
	blob
}

// NewBuildStore creates the build store of one session
func NewBuildStore(rdb redis.Cmdable, sessionID string, ttl time.Duration) *BuildStore {
	return &BuildStore{blob{rdb: rdb, key: BuildKey(sessionID), ttl: ttl}}
}

// Load implements build.Storage
func (s *BuildStore) Load(ctx context.Context) (map[catalog.Category]build.Component, error) {
	data, err := s.read(ctx)
	if err != nil || data == nil {
		return nil, err
	}

	components := make(map[catalog.Category]build.Component)
	if err := json.Unmarshal(data, &components); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.key, err)
	}
	return components, nil
}

// Save implements build.Storage
func (s *BuildStore) Save(ctx context.Context, components map[catalog.Category]build.Component) error {
	if components == nil {
		components = map[catalog.Category]build.Component{}
	}
	return s.write(ctx, components)
}

// CartStores returns a cart.StoreFactory backed by rdb
func CartStores(rdb redis.Cmdable, ttl time.Duration) cart.StoreFactory {
	return func(sessionID string) cart.Storage {
		return NewCartStore(rdb, sessionID, ttl)
	}
}

// BuildStores returns a build.StoreFactory backed by rdb
func BuildStores(rdb redis.Cmdable, ttl time.Duration) build.StoreFactory {
	return func(sessionID string) build.Storage {
		return NewBuildStore(rdb, sessionID, ttl)
	}
}
