package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rl1809/rocketshoes-cart/internal/core/domain"
)

const (
	DefaultCartSlotKey = "@RocketShoes:cart"
	stockKeyPrefix     = "stock:"
	productKeyPrefix   = "product:"
)

// RedisAdapter keeps the cart snapshot in a single key and serves the
// catalog from product:<id> (JSON) and stock:<id> (integer) keys.
type RedisAdapter struct {
	client  *redis.Client
	cartKey string
}

func NewRedisAdapter(client *redis.Client, cartKey string) *RedisAdapter {
	if cartKey == "" {
		cartKey = DefaultCartSlotKey
	}
	return &RedisAdapter{client: client, cartKey: cartKey}
}

func (r *RedisAdapter) LoadCart(ctx context.Context) (domain.Cart, error) {
	data, err := r.client.Get(ctx, r.cartKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("get cart slot: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return domain.Cart{}, fmt.Errorf("decode cart slot: %w", err)
	}
	return cart, nil
}

func (r *RedisAdapter) SaveCart(ctx context.Context, cart domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	return r.client.Set(ctx, r.cartKey, data, 0).Err()
}

func (r *RedisAdapter) GetProduct(ctx context.Context, productID int64) (*domain.Product, error) {
	data, err := r.client.Get(ctx, productKey(productID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}

	var product domain.Product
	if err := json.Unmarshal(data, &product); err != nil {
		return nil, fmt.Errorf("decode product %d: %w", productID, err)
	}
	return &product, nil
}

func (r *RedisAdapter) GetStock(ctx context.Context, productID int64) (*domain.Stock, error) {
	amount, err := r.client.Get(ctx, stockKey(productID)).Int()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &domain.Stock{ID: productID, Amount: amount}, nil
}

func (r *RedisAdapter) SetProduct(ctx context.Context, product domain.Product) error {
	data, err := json.Marshal(product)
	if err != nil {
		return fmt.Errorf("encode product: %w", err)
	}
	return r.client.Set(ctx, productKey(product.ID), data, 0).Err()
}

func (r *RedisAdapter) SetStock(ctx context.Context, productID int64, amount int) error {
	return r.client.Set(ctx, stockKey(productID), amount, 0).Err()
}

func (r *RedisAdapter) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func productKey(id int64) string {
	return productKeyPrefix + strconv.FormatInt(id, 10)
}

func stockKey(id int64) string {
	return stockKeyPrefix + strconv.FormatInt(id, 10)
}
