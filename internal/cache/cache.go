package cache

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Cache stores JSON-encoded values. Get reports found=false on a miss.
type Cache interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

func Key(prefix string, id string) string {
	return prefix + ":" + id
}

const ProductKeyPrefix = "product"

// ProductKey is the catalog cache key of a single product.
func ProductKey(id primitive.ObjectID) string {
	return Key(ProductKeyPrefix, id.Hex())
}
