package catalog

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"testing"
	"time"

	"blitz-stats/core/metrics"
	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type item struct {
	ID   int    `json:"id"`
	Code string `json:"code"`
	Tier int    `json:"tier"`
}

type itemIndexer struct{}

func (itemIndexer) Key(v item) string { return strconv.Itoa(v.ID) }

func (itemIndexer) Code(v item) (string, bool) { return v.Code, v.Code != "" }

func (itemIndexer) Bucket(v item) int { return v.Tier }

func (itemIndexer) Equal(a, b item) bool { return a == b }

func collection(t *testing.T, buckets int, values ...item) *reconcile.Collection[item] {
	t.Helper()
	c, err := reconcile.FromValues[item](itemIndexer{}, buckets, values)
	require.NoError(t, err)
	return c
}

type failingReader struct{ err error }

func (f failingReader) Read([]byte) (int, error) { return 0, f.err }

func (f failingReader) Close() error { return nil }

func TestStore_InMemory(t *testing.T) {
	ctx := context.Background()
	m := metrics.New()
	store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3, Metrics: m})

	initial, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, initial.Len())

	diff, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Code: "a", Tier: 1}, item{ID: 2, Tier: 2}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, diff.Added)

	// Published collections are replaced, never mutated.
	assert.Equal(t, 0, initial.Len())

	current, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, current.Len())

	again, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Code: "a", Tier: 1}))
	require.NoError(t, err)
	assert.True(t, again.Empty())

	removed, ok, err := store.Remove(ctx, "2")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, 2, removed.ID)

	_, ok, err = store.Remove(ctx, "2")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_RefreshAbortKeepsPublished(t *testing.T) {
	ctx := context.Background()
	store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3})
	_, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Code: "a", Tier: 1}))
	require.NoError(t, err)

	_, err = store.Refresh(ctx, collection(t, 0, item{ID: 2, Tier: 1}, item{ID: 3, Tier: 9}))
	assert.ErrorIs(t, err, reconcile.ErrBucketRange)

	current, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, current.Keys())
}

type itemSink struct {
	mock.Mock
}

func (s *itemSink) Name() string { return "items" }

func (s *itemSink) Upsert(ctx context.Context, v item) error {
	return s.Called(ctx, v).Error(0)
}

func TestStore_SinkFailureDoesNotPublish(t *testing.T) {
	ctx := context.Background()
	sink := new(itemSink)
	sink.On("Upsert", ctx, item{ID: 1, Tier: 1}).Return(errors.New("db down"))

	store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3, Sink: sink})
	_, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Tier: 1}))
	require.Error(t, err)

	current, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Len())
}

func TestStore_Snapshot(t *testing.T) {
	ctx := context.Background()

	t.Run("Loads stored snapshot", func(t *testing.T) {
		client := new(mocks.Client)
		body := io.NopCloser(bytes.NewReader([]byte(`[{"id":7,"code":"x","tier":2}]`)))
		client.On("GetObject", mock.Anything, "assets", "items.json", mock.Anything).Return(body, nil).Once()

		store := New(Options[item]{
			Name: "items", Indexer: itemIndexer{}, Buckets: 3,
			Client: client, Bucket: "assets", Object: "items.json", TTL: time.Minute,
		})
		coll, err := store.Load(ctx)
		require.NoError(t, err)
		v, ok := coll.ByCode("x")
		require.True(t, ok)
		assert.Equal(t, 7, v.ID)

		// Served from cache.
		_, err = store.Load(ctx)
		require.NoError(t, err)
		client.AssertNumberOfCalls(t, "GetObject", 1)
	})

	t.Run("Missing snapshot starts empty and is written back", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "assets", "items.json", mock.Anything).
			Return(failingReader{err: minio.ErrorResponse{Code: "NoSuchKey"}}, nil)
		client.On("BucketExists", mock.Anything, "assets").Return(true, nil)
		client.On("PutObject", mock.Anything, "assets", "items.json", mock.Anything, mock.Anything, mock.Anything).
			Return(minio.UploadInfo{}, nil).Once()

		store := New(Options[item]{
			Name: "items", Indexer: itemIndexer{}, Buckets: 3,
			Client: client, Bucket: "assets", Object: "items.json", TTL: time.Minute,
		})
		diff, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Tier: 1}))
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, diff.Added)
		client.AssertExpectations(t)
	})

	t.Run("Storage error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("GetObject", mock.Anything, "assets", "items.json", mock.Anything).
			Return(nil, errors.New("connection refused"))

		store := New(Options[item]{
			Name: "items", Indexer: itemIndexer{}, Client: client, Bucket: "assets", Object: "items.json",
		})
		_, err := store.Load(ctx)
		assert.Error(t, err)
	})
}

func TestStore_PlanDoesNotApply(t *testing.T) {
	ctx := context.Background()
	store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3})

	diff, err := store.Plan(ctx, collection(t, 3, item{ID: 1, Tier: 1}))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, diff.Added)

	current, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, current.Len())
}

func TestStore_Verify(t *testing.T) {
	ctx := context.Background()
	store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3})

	n, err := store.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = store.Refresh(ctx, collection(t, 3, item{ID: 1, Code: "a", Tier: 1}, item{ID: 2, Tier: 2}))
	require.NoError(t, err)

	n, err = store.Verify(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

type removableSink struct {
	itemSink
}

func (s *removableSink) Delete(ctx context.Context, key string) error {
	return s.Called(ctx, key).Error(0)
}

func TestStore_RemoveDeletesFromSink(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleted", func(t *testing.T) {
		sink := new(removableSink)
		sink.On("Upsert", ctx, mock.Anything).Return(nil)
		sink.On("Delete", ctx, "1").Return(nil).Once()

		store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3, Sink: sink})
		_, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Tier: 1}, item{ID: 2, Tier: 2}))
		require.NoError(t, err)

		removed, ok, err := store.Remove(ctx, "1")
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, item{ID: 1, Tier: 1}, removed)
		sink.AssertExpectations(t)

		_, ok, err = store.Remove(ctx, "1")
		require.NoError(t, err)
		assert.False(t, ok)
		sink.AssertNumberOfCalls(t, "Delete", 1)
	})

	t.Run("Delete failure keeps entry", func(t *testing.T) {
		sink := new(removableSink)
		sink.On("Upsert", ctx, mock.Anything).Return(nil)
		sink.On("Delete", ctx, "1").Return(errors.New("db down"))

		store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3, Sink: sink})
		_, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Tier: 1}))
		require.NoError(t, err)

		_, ok, err := store.Remove(ctx, "1")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
		assert.False(t, ok)

		current, err := store.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, []string{"1"}, current.Keys())
	})

	t.Run("Plain sink is not asked", func(t *testing.T) {
		sink := new(itemSink)
		sink.On("Upsert", ctx, mock.Anything).Return(nil)

		store := New(Options[item]{Name: "items", Indexer: itemIndexer{}, Buckets: 3, Sink: sink})
		_, err := store.Refresh(ctx, collection(t, 3, item{ID: 1, Tier: 1}))
		require.NoError(t, err)

		_, ok, err := store.Remove(ctx, "1")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}
