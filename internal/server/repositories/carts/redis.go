package carts

import (
	"context"
	"fmt"
	"sort"
	"strconv"

	"github.com/dmitrijs2005/shopkeeper/internal/common"
	"github.com/dmitrijs2005/shopkeeper/internal/server/models"
	"github.com/redis/go-redis/v9"
)

// RedisRepository stores each cart as a Redis hash: key "cart:<userID>",
// field = product ID, value = quantity.
type RedisRepository struct {
	client *redis.Client
}

// NewRedisRepository constructs a cart store over the given Redis client.
func NewRedisRepository(client *redis.Client) *RedisRepository {
	return &RedisRepository{client: client}
}

func cartKey(userID string) string {
	return "cart:" + userID
}

// AddItem increments the quantity stored for productID, creating the line
// when absent.
func (r *RedisRepository) AddItem(ctx context.Context, userID string, productID int64, quantity int64) error {
	field := strconv.FormatInt(productID, 10)
	if err := r.client.HIncrBy(ctx, cartKey(userID), field, quantity).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Items returns the user's cart sorted by product ID. An empty or missing
// hash is an empty cart, not an error.
func (r *RedisRepository) Items(ctx context.Context, userID string) ([]models.CartItem, error) {
	fields, err := r.client.HGetAll(ctx, cartKey(userID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis error: %w", err)
	}

	items := make([]models.CartItem, 0, len(fields))
	for field, value := range fields {
		productID, err := strconv.ParseInt(field, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart field %q: %w", field, err)
		}
		quantity, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("corrupt cart value %q: %w", value, err)
		}
		items = append(items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })
	return items, nil
}

// RemoveItem deletes the product's line from the cart. HDel reports how
// many fields were removed, which distinguishes a missing line.
func (r *RedisRepository) RemoveItem(ctx context.Context, userID string, productID int64) error {
	field := strconv.FormatInt(productID, 10)
	removed, err := r.client.HDel(ctx, cartKey(userID), field).Result()
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	if removed == 0 {
		return common.ErrorNotFound
	}
	return nil
}
