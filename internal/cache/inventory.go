package cache

import (
	"context"
	"time"
)

// Keys and TTLs for the public list endpoints. Single-item reads go straight
// to the database; only the anonymous browse traffic is worth caching.
const (
	ProductsListKey = "products:all"
	GalleryListKey  = "gallery:all"
)

const (
	ProductsListTTL = 5 * time.Minute
	GalleryListTTL  = 5 * time.Minute
)

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateProducts drops the cached product list after a mutation.
func InvalidateProducts(ctx context.Context) {
	Invalidate(ctx, ProductsListKey)
}

// InvalidateGallery drops the cached gallery list after a mutation.
func InvalidateGallery(ctx context.Context) {
	Invalidate(ctx, GalleryListKey)
}
