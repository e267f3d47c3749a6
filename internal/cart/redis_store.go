package cart

import (
	"context"
	"fmt"
	"time"

	pkgerrors "github.com/vuhoangtran/shopcart-backend/pkg/errors"
	pkgredis "github.com/vuhoangtran/shopcart-backend/pkg/redis"
)

type slotClient interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	CartSlotKey(sessionID string) string
}

// RedisStore persists each session's cart as a single namespaced key.
type RedisStore struct {
	client slotClient
	ttl    time.Duration
}

// NewRedisStore wires the slot store. A zero TTL keeps slots until cleared.
func NewRedisStore(client slotClient, ttl time.Duration) (*RedisStore, error) {
	if client == nil {
		return nil, fmt.Errorf("redis client required")
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Load(ctx context.Context, sessionID string) (Cart, error) {
	raw, err := s.client.Get(ctx, s.client.CartSlotKey(sessionID))
	if err != nil {
		if pkgredis.IsNil(err) {
			return Cart{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load cart slot")
	}
	return decodeSlot(raw), nil
}

func (s *RedisStore) Save(ctx context.Context, sessionID string, cart Cart) error {
	raw, err := encodeSlot(cart)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode cart slot")
	}
	if err := s.client.Set(ctx, s.client.CartSlotKey(sessionID), raw, s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save cart slot")
	}
	return nil
}

func (s *RedisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartSlotKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart slot")
	}
	return nil
}
