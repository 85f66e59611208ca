package checks

import (
	"context"
	"fmt"
	"io"

	"blitz-stats/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// CheckStructure returns the snapshot objects missing from the bucket.
// A missing bucket is an error.
func CheckStructure(ctx context.Context, client storage.Client, bucket string, objects []string) ([]string, error) {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("bucket %s does not exist", bucket)
	}

	var missing []string
	for _, key := range objects {
		found, err := objectExists(ctx, client, bucket, key)
		if err != nil {
			return nil, err
		}
		if !found {
			missing = append(missing, key)
		}
	}
	return missing, nil
}

// objectExists reads a single byte; minio only reports a missing key on read.
func objectExists(ctx context.Context, client storage.Client, bucket, key string) (bool, error) {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to open %s: %w", key, err)
	}
	defer obj.Close()

	var buf [1]byte
	if _, err := obj.Read(buf[:]); err != nil && err != io.EOF {
		if storage.IsNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return true, nil
}

// FixStructure creates the bucket. Snapshots are written by the first refresh.
func FixStructure(ctx context.Context, client storage.Client, bucket string, logger *zap.Logger) error {
	if err := storage.EnsureBucket(ctx, client, bucket); err != nil {
		logger.Error("Failed to create bucket", zap.String("bucket", bucket), zap.Error(err))
		return err
	}
	logger.Info("Bucket ready", zap.String("bucket", bucket))
	return nil
}
