// File: database/repository/store/redis.go
package storeRepo

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"heysheets/models"
	"heysheets/utils"

	"github.com/go-redis/redis/v8"
)

// ErrStoreNotFound is returned when no record exists for a store id.
var ErrStoreNotFound = fmt.Errorf("store not found")

type redisStoreRepo struct {
	client *redis.Client
}

// NewRedisStoreRepo constructs a StoreRepository over the store-record Redis
// database the dashboard writes into.
func NewRedisStoreRepo(client *redis.Client) StoreRepository {
	return &redisStoreRepo{client: client}
}

func (r *redisStoreRepo) GetByID(ctx context.Context, storeID string) (*models.Store, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	data, err := r.client.Get(ctx, utils.StoreRecordPrefix+storeID).Result()
	if err == redis.Nil {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("fetch store record %s: %w", storeID, err)
	}

	var store models.Store
	if err := json.Unmarshal([]byte(data), &store); err != nil {
		return nil, fmt.Errorf("parse store record %s: %w", storeID, err)
	}
	return &store, nil
}
