package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { SetClient(nil) })
	return mr
}

type payload struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestGetSetJSON(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out payload
	found, err := GetJSON(ctx, "missing", &out)
	require.NoError(t, err)
	assert.False(t, found)

	in := payload{Name: "signs", Count: 3}
	require.NoError(t, SetJSON(ctx, "k", in, time.Minute))

	found, err = GetJSON(ctx, "k", &out)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, in, out)
}

func TestGetSetJSONNilClient(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	var out payload
	found, err := GetJSON(ctx, "k", &out)
	assert.NoError(t, err)
	assert.False(t, found)

	assert.NoError(t, SetJSON(ctx, "k", payload{}, time.Minute))
}

func TestAsideFetchesOnMissThenHits(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	fetch := func(dest *payload) func() error {
		return func() error {
			calls++
			*dest = payload{Name: "fresh", Count: calls}
			return nil
		}
	}

	var first payload
	require.NoError(t, Aside(ctx, "products:test", &first, time.Minute, fetch(&first)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, "fresh", first.Name)

	// Second call is served from cache; fetch is not invoked again.
	var second payload
	require.NoError(t, Aside(ctx, "products:test", &second, time.Minute, fetch(&second)))
	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
}

func TestAsideRefetchesAfterExpiry(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	calls := 0
	var out payload
	fetch := func() error {
		calls++
		out = payload{Name: "v", Count: calls}
		return nil
	}

	require.NoError(t, Aside(ctx, "k", &out, time.Minute, fetch))
	mr.FastForward(2 * time.Minute)
	require.NoError(t, Aside(ctx, "k", &out, time.Minute, fetch))
	assert.Equal(t, 2, calls)
}

func TestAsidePropagatesFetchError(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	var out payload
	err := Aside(ctx, "k", &out, time.Minute, func() error {
		return assert.AnError
	})
	assert.ErrorIs(t, err, assert.AnError)
}

func TestInvalidate(t *testing.T) {
	mr := setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, ProductsListKey, payload{Name: "cached"}, ProductsListTTL))
	require.NoError(t, SetJSON(ctx, GalleryListKey, payload{Name: "cached"}, GalleryListTTL))

	InvalidateProducts(ctx)
	InvalidateGallery(ctx)

	assert.False(t, mr.Exists(ProductsListKey))
	assert.False(t, mr.Exists(GalleryListKey))
}
