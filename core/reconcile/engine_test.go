package reconcile

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// vehicle is a minimal catalog entity for tests.
type vehicle struct {
	ID   int
	Name string
	Code string
	Tier int
}

type vehicleIndexer struct{}

func (vehicleIndexer) Key(v vehicle) string { return strconv.Itoa(v.ID) }

func (vehicleIndexer) Code(v vehicle) (string, bool) { return v.Code, v.Code != "" }

func (vehicleIndexer) Bucket(v vehicle) int { return v.Tier }

func (vehicleIndexer) Equal(a, b vehicle) bool { return a == b }

func newVehicles(t *testing.T, values ...vehicle) *Collection[vehicle] {
	t.Helper()
	c, err := FromValues[vehicle](vehicleIndexer{}, 10, values)
	require.NoError(t, err)
	return c
}

func TestReconcile_AddedAndUpdated(t *testing.T) {
	old := newVehicles(t,
		vehicle{ID: 1, Name: "T-34", Code: "t34", Tier: 5},
		vehicle{ID: 2, Name: "Tiger", Code: "tiger", Tier: 7},
		vehicle{ID: 3, Name: "Leopard", Tier: 5},
	)
	fresh := newVehicles(t,
		vehicle{ID: 1, Name: "T-34", Code: "t34", Tier: 5},
		vehicle{ID: 2, Name: "Tiger I", Code: "tiger1", Tier: 7},
		vehicle{ID: 4, Name: "IS-7", Code: "is7", Tier: 10},
	)

	diff, err := Reconcile(old, fresh)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, diff.Added)
	assert.Equal(t, []string{"2"}, diff.Updated)
	assert.Equal(t, 2, diff.Len())
	assert.Equal(t, []string{"4", "2"}, diff.Touched())

	// Completeness: every fresh key equals the fresh value.
	for _, key := range fresh.Keys() {
		want, _ := fresh.Get(key)
		got, ok := old.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, got)
	}

	// Keys absent from fresh are kept.
	_, ok := old.Get("3")
	assert.True(t, ok)

	// Old code released, new code indexed.
	_, ok = old.ByCode("tiger")
	assert.False(t, ok)
	v, ok := old.ByCode("tiger1")
	require.True(t, ok)
	assert.Equal(t, "Tiger I", v.Name)

	tier10, err := old.Bucket(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"4"}, tier10)

	require.NoError(t, old.Verify())
}

func TestReconcile_Idempotent(t *testing.T) {
	old := newVehicles(t, vehicle{ID: 1, Name: "A", Tier: 1})
	fresh := newVehicles(t,
		vehicle{ID: 1, Name: "A2", Tier: 2},
		vehicle{ID: 2, Name: "B", Tier: 3},
	)

	first, err := Reconcile(old, fresh)
	require.NoError(t, err)
	assert.False(t, first.Empty())

	second, err := Reconcile(old, fresh)
	require.NoError(t, err)
	assert.True(t, second.Empty())
	assert.Empty(t, second.Added)
	assert.Empty(t, second.Updated)
}

func TestReconcile_TierMoveUpdatesBuckets(t *testing.T) {
	old := newVehicles(t, vehicle{ID: 1, Name: "A", Tier: 5})
	fresh := newVehicles(t, vehicle{ID: 1, Name: "A", Tier: 6})

	diff, err := Reconcile(old, fresh)
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, diff.Updated)

	tier5, _ := old.Bucket(5)
	tier6, _ := old.Bucket(6)
	assert.Empty(t, tier5)
	assert.Equal(t, []string{"1"}, tier6)
}

func TestReconcile_IncrementalMatchesRebuild(t *testing.T) {
	old := NewCollection[vehicle](vehicleIndexer{}, 10)
	for i := 0; i < 50; i++ {
		code := ""
		if i%3 == 0 {
			code = fmt.Sprintf("c%d", i)
		}
		require.NoError(t, old.Add(vehicle{ID: i, Name: "v", Code: code, Tier: i%10 + 1}))
	}

	fresh := NewCollection[vehicle](vehicleIndexer{}, 10)
	for i := 25; i < 75; i++ {
		code := ""
		if i%2 == 0 {
			code = fmt.Sprintf("c%d", i)
		}
		require.NoError(t, fresh.Add(vehicle{ID: i, Name: "w", Code: code, Tier: (i*7)%10 + 1}))
	}

	_, err := Reconcile(old, fresh)
	require.NoError(t, err)
	require.NoError(t, old.Verify())

	rebuilt := old.Clone()
	require.NoError(t, rebuilt.Rebuild())
	for n := 1; n <= 10; n++ {
		a, _ := old.Bucket(n)
		b, _ := rebuilt.Bucket(n)
		assert.Equal(t, b, a, "bucket %d", n)
	}
	assert.Equal(t, rebuilt.codes, old.codes)
}

func TestReconcile_CodeSwap(t *testing.T) {
	old := newVehicles(t,
		vehicle{ID: 1, Code: "a", Tier: 1},
		vehicle{ID: 2, Code: "b", Tier: 1},
	)
	fresh := newVehicles(t,
		vehicle{ID: 1, Code: "b", Tier: 1},
		vehicle{ID: 2, Code: "a", Tier: 1},
	)

	diff, err := Reconcile(old, fresh)
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "2"}, diff.Updated)

	v, _ := old.ByCode("a")
	assert.Equal(t, 2, v.ID)
	v, _ = old.ByCode("b")
	assert.Equal(t, 1, v.ID)
	require.NoError(t, old.Verify())
}

func TestReconcile_AbortsWithoutMutation(t *testing.T) {
	t.Run("Bucket out of range", func(t *testing.T) {
		old := newVehicles(t, vehicle{ID: 1, Name: "A", Tier: 1})
		// Build fresh without a bucket cache so the bad tier gets through.
		fresh, err := FromValues[vehicle](vehicleIndexer{}, 0, []vehicle{
			{ID: 2, Name: "B", Tier: 3},
			{ID: 3, Name: "C", Tier: 11},
		})
		require.NoError(t, err)

		before := old.Clone()
		_, err = Reconcile(old, fresh)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrBucketRange)

		var rangeErr *BucketRangeError
		require.True(t, errors.As(err, &rangeErr))
		assert.Equal(t, "3", rangeErr.Key)
		assert.Equal(t, 11, rangeErr.Bucket)

		assert.Equal(t, before.Keys(), old.Keys())
		tier3, _ := old.Bucket(3)
		assert.Empty(t, tier3)
		require.NoError(t, old.Verify())
	})

	t.Run("Code owned by untouched key", func(t *testing.T) {
		old := newVehicles(t, vehicle{ID: 1, Code: "dup", Tier: 1})
		fresh := newVehicles(t, vehicle{ID: 2, Code: "dup", Tier: 1})

		_, err := Reconcile(old, fresh)
		assert.ErrorIs(t, err, ErrCodeConflict)
		assert.Equal(t, []string{"1"}, old.Keys())
	})

	t.Run("Nil collections", func(t *testing.T) {
		_, err := Reconcile[vehicle](nil, newVehicles(t))
		assert.ErrorIs(t, err, ErrNilCollection)
	})
}

type mockSink struct {
	mock.Mock
}

func (m *mockSink) Name() string { return "mock" }

func (m *mockSink) Upsert(ctx context.Context, v vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

type mockBatchSink struct {
	mockSink
}

func (m *mockBatchSink) UpsertBatch(ctx context.Context, values []vehicle) error {
	args := m.Called(ctx, values)
	return args.Error(0)
}

func TestApply(t *testing.T) {
	coll := newVehicles(t,
		vehicle{ID: 1, Name: "A", Tier: 1},
		vehicle{ID: 2, Name: "B", Tier: 2},
	)
	diff := Diff{Added: []string{"2"}, Updated: []string{"1"}}
	ctx := context.Background()

	t.Run("One at a time", func(t *testing.T) {
		sink := new(mockSink)
		sink.On("Upsert", ctx, vehicle{ID: 2, Name: "B", Tier: 2}).Return(nil).Once()
		sink.On("Upsert", ctx, vehicle{ID: 1, Name: "A", Tier: 1}).Return(nil).Once()

		n, err := Apply[vehicle](ctx, sink, coll, diff)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		sink.AssertExpectations(t)
	})

	t.Run("Batch", func(t *testing.T) {
		sink := new(mockBatchSink)
		sink.On("UpsertBatch", ctx, []vehicle{{ID: 2, Name: "B", Tier: 2}, {ID: 1, Name: "A", Tier: 1}}).Return(nil)

		n, err := Apply[vehicle](ctx, sink, coll, diff)
		require.NoError(t, err)
		assert.Equal(t, 2, n)
		sink.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("Error stops early", func(t *testing.T) {
		sink := new(mockSink)
		sink.On("Upsert", ctx, mock.Anything).Return(errors.New("db down")).Once()

		n, err := Apply[vehicle](ctx, sink, coll, diff)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "db down")
		assert.Equal(t, 0, n)
	})

	t.Run("Empty diff", func(t *testing.T) {
		n, err := Apply[vehicle](ctx, new(mockSink), coll, Diff{})
		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})

	t.Run("Unknown key", func(t *testing.T) {
		_, err := Apply[vehicle](ctx, new(mockSink), coll, Diff{Added: []string{"99"}})
		assert.Error(t, err)
	})
}
