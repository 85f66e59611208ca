package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/minio/minio-go/v7"
)

// ErrNotFound is returned when a snapshot object does not exist.
var ErrNotFound = errors.New("object not found")

const contentTypeJSON = "application/json"

// EnsureBucket creates the bucket if it is missing.
func EnsureBucket(ctx context.Context, client Client, bucket string) error {
	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return fmt.Errorf("failed to check bucket %s: %w", bucket, err)
	}
	if exists {
		return nil
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
	}
	return nil
}

// LoadJSON decodes the object into v. A missing object or bucket yields
// ErrNotFound so callers can start from an empty snapshot.
func LoadJSON(ctx context.Context, client Client, bucket, key string, v any) error {
	obj, err := client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return wrapGetError(bucket, key, err)
	}
	defer obj.Close()

	// Minio defers the request until the first read, so not-found shows up here.
	if err := json.NewDecoder(obj).Decode(v); err != nil {
		return wrapGetError(bucket, key, err)
	}
	return nil
}

// SaveJSON encodes v and uploads it, replacing any existing object.
func SaveJSON(ctx context.Context, client Client, bucket, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	_, err = client.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentTypeJSON,
	})
	if err != nil {
		return fmt.Errorf("failed to upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

func wrapGetError(bucket, key string, err error) error {
	if IsNotFound(err) {
		return fmt.Errorf("%s/%s: %w", bucket, key, ErrNotFound)
	}
	return fmt.Errorf("failed to read %s/%s: %w", bucket, key, err)
}

// IsNotFound reports whether err is a missing key or bucket response.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return true
	}
	return false
}
