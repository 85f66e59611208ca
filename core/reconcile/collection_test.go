package reconcile

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollection_BucketsInitialized(t *testing.T) {
	c := NewCollection[vehicle](vehicleIndexer{}, 10)
	for n := 1; n <= 10; n++ {
		keys, err := c.Bucket(n)
		require.NoError(t, err)
		assert.Empty(t, keys)
	}

	for _, n := range []int{0, -1, 11} {
		_, err := c.Bucket(n)
		assert.ErrorIs(t, err, ErrBucketRange, "bucket %d", n)
	}
}

func TestCollection_AddRemove(t *testing.T) {
	c := NewCollection[vehicle](vehicleIndexer{}, 10)
	require.NoError(t, c.Add(vehicle{ID: 1, Name: "A", Code: "a", Tier: 3}))
	require.NoError(t, c.Add(vehicle{ID: 2, Name: "B", Tier: 3}))

	v, ok := c.ByCode("a")
	require.True(t, ok)
	assert.Equal(t, "A", v.Name)

	tier3, _ := c.Bucket(3)
	assert.Equal(t, []string{"1", "2"}, tier3)

	assert.True(t, c.Remove("1"))
	assert.False(t, c.Remove("1"))

	_, ok = c.ByCode("a")
	assert.False(t, ok)
	tier3, _ = c.Bucket(3)
	assert.Equal(t, []string{"2"}, tier3)

	popped, ok := c.Pop("2")
	require.True(t, ok)
	assert.Equal(t, "B", popped.Name)
	assert.Equal(t, 0, c.Len())
	require.NoError(t, c.Verify())
}

func TestCollection_AddReplacesAndReindexes(t *testing.T) {
	c := NewCollection[vehicle](vehicleIndexer{}, 10)
	require.NoError(t, c.Add(vehicle{ID: 1, Code: "old", Tier: 1}))
	require.NoError(t, c.Add(vehicle{ID: 1, Code: "new", Tier: 2}))

	_, ok := c.ByCode("old")
	assert.False(t, ok)
	_, ok = c.ByCode("new")
	assert.True(t, ok)

	tier1, _ := c.Bucket(1)
	assert.Empty(t, tier1)
	require.NoError(t, c.Verify())
}

func TestCollection_AddRejects(t *testing.T) {
	c := NewCollection[vehicle](vehicleIndexer{}, 10)
	require.NoError(t, c.Add(vehicle{ID: 1, Code: "x", Tier: 1}))

	assert.ErrorIs(t, c.Add(vehicle{ID: 2, Code: "x", Tier: 1}), ErrCodeConflict)
	assert.ErrorIs(t, c.Add(vehicle{ID: 3, Tier: 0}), ErrBucketRange)
	assert.Equal(t, 1, c.Len())

	err := c.AddAll([]vehicle{{ID: 4, Tier: 1}, {ID: 5, Tier: 12}})
	assert.ErrorIs(t, err, ErrBucketRange)
	assert.Equal(t, 1, c.Len(), "AddAll is all or nothing")

	err = c.AddAll([]vehicle{{ID: 6, Code: "y", Tier: 1}, {ID: 7, Code: "y", Tier: 1}})
	assert.ErrorIs(t, err, ErrCodeConflict)
}

func TestCollection_NoBuckets(t *testing.T) {
	c := NewCollection[vehicle](vehicleIndexer{}, 0)
	require.NoError(t, c.Add(vehicle{ID: 1, Tier: 99}))
	_, err := c.Bucket(1)
	assert.ErrorIs(t, err, ErrBucketRange)
	require.NoError(t, c.Verify())
}

func TestCollection_VerifyDetectsDrift(t *testing.T) {
	c := newVehicles(t, vehicle{ID: 1, Code: "a", Tier: 1})
	delete(c.tiers[0], "1")
	assert.ErrorIs(t, c.Verify(), ErrInconsistent)

	require.NoError(t, c.Rebuild())
	require.NoError(t, c.Verify())

	c.codes["ghost"] = "1"
	assert.ErrorIs(t, c.Verify(), ErrInconsistent)
}

func TestCollection_CloneIsIndependent(t *testing.T) {
	c := newVehicles(t, vehicle{ID: 1, Code: "a", Tier: 1})
	clone := c.Clone()
	require.NoError(t, clone.Add(vehicle{ID: 2, Tier: 2}))

	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, clone.Len())
	assert.Equal(t, []vehicle{{ID: 1, Code: "a", Tier: 1}, {ID: 2, Tier: 2}}, clone.Values())
}

func TestCache_GetOrLoad(t *testing.T) {
	cache := NewCache[vehicle]()
	var loads int32
	load := func(ctx context.Context) (*Collection[vehicle], error) {
		atomic.AddInt32(&loads, 1)
		time.Sleep(10 * time.Millisecond)
		return NewCollection[vehicle](vehicleIndexer{}, 10), nil
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := cache.GetOrLoad(context.Background(), "tanks", time.Minute, load)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	_, err := cache.GetOrLoad(context.Background(), "tanks", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&loads))

	cache.Invalidate("tanks")
	_, err = cache.GetOrLoad(context.Background(), "tanks", time.Minute, load)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&loads))
}

func TestCache_LoadError(t *testing.T) {
	cache := NewCache[vehicle]()
	_, err := cache.GetOrLoad(context.Background(), "tanks", time.Minute, func(ctx context.Context) (*Collection[vehicle], error) {
		return nil, errors.New("storage unavailable")
	})
	assert.EqualError(t, err, "storage unavailable")

	coll := NewCollection[vehicle](vehicleIndexer{}, 10)
	cache.Put("tanks", coll, time.Minute)
	got, err := cache.GetOrLoad(context.Background(), "tanks", time.Minute, nil)
	require.NoError(t, err)
	assert.Same(t, coll, got)
}

func TestCache_NegativeTTLNeverExpires(t *testing.T) {
	cache := NewCache[vehicle]()
	coll := NewCollection[vehicle](vehicleIndexer{}, 10)
	cache.Put("tanks", coll, -1)

	time.Sleep(2 * time.Millisecond)
	got, err := cache.GetOrLoad(context.Background(), "tanks", -1, func(ctx context.Context) (*Collection[vehicle], error) {
		t.Fatal("loader must not run")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, coll, got)
}
