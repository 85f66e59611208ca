package tankopedia

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"blitz-stats/core/reconcile"
	"blitz-stats/core/storage"
	"blitz-stats/core/transform"
	"blitz-stats/core/wgapi"

	"github.com/minio/minio-go/v7"
)

// ParseResponse decodes a vehicles API response and converts its records
// through reg. Records carrying "vehicle_id" are read as VehicleV2, others
// as VehicleV1. Null and unconvertible records are counted as skipped.
func ParseResponse(r io.Reader, reg *transform.Registry) (*reconcile.Collection[Tank], int, error) {
	resp, err := wgapi.Decode[json.RawMessage](r)
	if err != nil {
		return nil, 0, err
	}

	coll := NewCollection()
	skipped := 0
	for _, id := range resp.IDs() {
		raw := resp.Data[id]
		if raw == nil {
			skipped++
			continue
		}

		payload, err := decodeVehicle(*raw)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: vehicle %s: %v", wgapi.ErrMalformed, id, err)
		}
		tank, ok := transform.Transform[Tank](reg, payload)
		if !ok {
			skipped++
			continue
		}
		if err := coll.Add(tank); err != nil {
			return nil, 0, fmt.Errorf("vehicle %s: %w", id, err)
		}
	}
	return coll, skipped, nil
}

func decodeVehicle(raw json.RawMessage) (any, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil {
		return nil, err
	}
	if _, isV2 := probe["vehicle_id"]; isV2 {
		var v VehicleV2
		err := json.Unmarshal(raw, &v)
		return v, err
	}
	var v VehicleV1
	err := json.Unmarshal(raw, &v)
	return v, err
}

// Source produces a fresh tank collection.
type Source interface {
	Fetch(ctx context.Context) (*reconcile.Collection[Tank], error)
}

// FileSource reads a vehicles API response from a local file.
type FileSource struct {
	Path     string
	Registry *transform.Registry
}

// Fetch implements Source.
func (s FileSource) Fetch(ctx context.Context) (*reconcile.Collection[Tank], error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	coll, _, err := ParseResponse(f, s.Registry)
	return coll, err
}

// ObjectSource reads a vehicles API response from object storage.
type ObjectSource struct {
	Client   storage.Client
	Bucket   string
	Key      string
	Registry *transform.Registry
}

// Fetch implements Source.
func (s ObjectSource) Fetch(ctx context.Context) (*reconcile.Collection[Tank], error) {
	obj, err := s.Client.GetObject(ctx, s.Bucket, s.Key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to open %s/%s: %w", s.Bucket, s.Key, err)
	}
	defer obj.Close()

	coll, _, err := ParseResponse(obj, s.Registry)
	return coll, err
}
