package checks

import (
	"context"
	"errors"
	"testing"

	"blitz-stats/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type errReader struct{ err error }

func (r errReader) Read([]byte) (int, error) { return 0, r.err }

func (r errReader) Close() error { return nil }

var noSuchKey = minio.ErrorResponse{Code: "NoSuchKey"}

func TestCheckStructure(t *testing.T) {
	objects := []string{"tankopedia/tankopedia.json", "maps/maps.json"}

	t.Run("Bucket Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(false, nil)

		_, err := CheckStructure(context.Background(), mockClient, "assets", objects)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Bucket Check Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(false, errors.New("dial tcp"))

		_, err := CheckStructure(context.Background(), mockClient, "assets", objects)
		assert.ErrorContains(t, err, "dial tcp")
	})

	t.Run("Some Missing", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(true, nil)
		mockClient.OnGet("assets", "tankopedia/tankopedia.json", "[]")
		// Minio reports a missing key on the first read.
		mockClient.On("GetObject", mock.Anything, "assets", "maps/maps.json", mock.Anything).
			Return(errReader{err: noSuchKey}, nil)

		missing, err := CheckStructure(context.Background(), mockClient, "assets", objects)
		require.NoError(t, err)
		assert.Equal(t, []string{"maps/maps.json"}, missing)
	})

	t.Run("Open Not Found", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(true, nil)
		mockClient.On("GetObject", mock.Anything, "assets", mock.Anything, mock.Anything).Return(nil, noSuchKey)

		missing, err := CheckStructure(context.Background(), mockClient, "assets", objects)
		require.NoError(t, err)
		assert.Equal(t, objects, missing)
	})

	t.Run("Read Error", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(true, nil)
		mockClient.On("GetObject", mock.Anything, "assets", mock.Anything, mock.Anything).
			Return(errReader{err: errors.New("connection reset")}, nil)

		_, err := CheckStructure(context.Background(), mockClient, "assets", objects)
		assert.ErrorContains(t, err, "connection reset")
	})
}

func TestFixStructure(t *testing.T) {
	t.Run("Creates Bucket", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(nil)

		require.NoError(t, FixStructure(context.Background(), mockClient, "assets", zap.NewNop()))
		mockClient.AssertExpectations(t)
	})

	t.Run("Create Fails", func(t *testing.T) {
		mockClient := new(mocks.Client)
		mockClient.On("BucketExists", mock.Anything, "assets").Return(false, nil)
		mockClient.On("MakeBucket", mock.Anything, "assets", mock.Anything).Return(errors.New("denied"))

		assert.Error(t, FixStructure(context.Background(), mockClient, "assets", zap.NewNop()))
	})
}
