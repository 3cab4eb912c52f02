package repository

import (
	"context"
	"time"
)

// storeTimeout bounds a single Mongo round trip. A caller deadline that is
// already sooner wins.
const storeTimeout = 5 * time.Second

func withStoreTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, storeTimeout)
}
