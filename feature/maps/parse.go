package maps

import (
	"context"
	"fmt"
	"io"
	"os"

	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage"
	"blitz-stats/core/transform"
	"blitz-stats/core/wgapi"

	"github.com/minio/minio-go/v7"
)

// ParseResponse decodes a maps API response and converts its records through
// reg. Null and unconvertible records are counted as skipped.
func ParseResponse(r io.Reader, reg *transform.Registry) (*reconcile.Collection[Map], int, error) {
	resp, err := wgapi.Decode[APIMap](r)
	if err != nil {
		return nil, 0, err
	}

	coll := NewCollection()
	skipped := 0
	for _, id := range resp.IDs() {
		rec := resp.Data[id]
		if rec == nil {
			skipped++
			continue
		}
		m, ok := transform.Transform[Map](reg, *rec)
		if !ok {
			skipped++
			continue
		}
		if err := coll.Add(m); err != nil {
			return nil, 0, fmt.Errorf("map %s: %w", id, err)
		}
	}
	return coll, skipped, nil
}

// Source produces a fresh map collection.
type Source interface {
	Fetch(ctx context.Context) (*reconcile.Collection[Map], error)
}

// FileSource reads a maps API response from a local file.
type FileSource struct {
	Path     string
	Registry *transform.Registry
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) (*reconcile.Collection[Map], error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	coll, _, err := ParseResponse(f, s.Registry)
	return coll, err
}

// ObjectSource reads a maps API response from object storage.
type ObjectSource struct {
	Client   storage.Client
	Bucket   string
	Key      string
	Registry *transform.Registry
}

// Fetch implements Source.
func (s ObjectSource) Fetch(ctx context.Context) (*reconcile.Collection[Map], error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s/%s: %w", s.Bucket, s.Key, err)
	}
	defer obj.Close()

	coll, _, err := ParseResponse(obj, s.Registry)
	return coll, err
}
