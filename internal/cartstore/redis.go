package cartstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"molove/internal/models"
)

// RedisStore keeps carts and order histories in Redis under the molove_
// namespace, mirroring the legacy molove_cart / molove_orders storage keys.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a new RedisStore on an existing client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func cartKey(deviceID string) string   { return fmt.Sprintf("molove_cart:%s", deviceID) }
func ordersKey(deviceID string) string { return fmt.Sprintf("molove_orders:%s", deviceID) }

// LoadCart returns the saved cart for a device or ErrNotFound.
func (s *RedisStore) LoadCart(ctx context.Context, deviceID string) (models.Cart, error) {
	data, err := s.client.Get(ctx, cartKey(deviceID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.Cart{}, ErrNotFound
	}
	if err != nil {
		return models.Cart{}, fmt.Errorf("redis get cart failed: %w", err)
	}

	var cart models.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return models.Cart{}, fmt.Errorf("unmarshal cart failed: %w", err)
	}
	return cart, nil
}

// SaveCart overwrites the whole cart for a device, last write wins.
func (s *RedisStore) SaveCart(ctx context.Context, deviceID string, cart models.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(ctx, cartKey(deviceID), data, 0).Err(); err != nil {
		return fmt.Errorf("redis set cart failed: %w", err)
	}
	return nil
}

// ClearCart removes the device's cart key entirely.
func (s *RedisStore) ClearCart(ctx context.Context, deviceID string) error {
	if err := s.client.Del(ctx, cartKey(deviceID)).Err(); err != nil {
		return fmt.Errorf("redis delete cart failed: %w", err)
	}
	return nil
}

// AppendOrder prepends an order to the device's history list (newest first).
func (s *RedisStore) AppendOrder(ctx context.Context, deviceID string, order models.Order) error {
	data, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("marshal order failed: %w", err)
	}
	if err := s.client.LPush(ctx, ordersKey(deviceID), data).Err(); err != nil {
		return fmt.Errorf("redis push order failed: %w", err)
	}
	return nil
}

// Orders returns the device's full order history, newest first.
func (s *RedisStore) Orders(ctx context.Context, deviceID string) ([]models.Order, error) {
	entries, err := s.client.LRange(ctx, ordersKey(deviceID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis range orders failed: %w", err)
	}

	orders := make([]models.Order, 0, len(entries))
	for _, entry := range entries {
		var order models.Order
		if err := json.Unmarshal([]byte(entry), &order); err != nil {
			return nil, fmt.Errorf("unmarshal order failed: %w", err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}
