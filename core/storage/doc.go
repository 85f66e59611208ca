// Package storage provides an abstraction layer for object storage services.
//
// It wraps the MinIO Go client behind a small Client interface and adds
// JSON snapshot helpers. Reference catalogs (tankopedia, maps) are persisted
// as single JSON objects and reloaded on startup.
//
// # Client Interface
//
// The Client interface abstracts the underlying storage provider, making it easier
// to mock storage interactions for unit testing (see core/storage/mocks).
//
// # Snapshots
//
//   - EnsureBucket: Creates the bucket on first use.
//   - LoadJSON: Decodes an object; a missing object yields ErrNotFound.
//   - SaveJSON: Encodes and uploads an object.
//
// # Usage
//
//	client, err := storage.NewClient(config)
//	err = storage.LoadJSON(ctx, client, "assets", "tankopedia/tankopedia.json", &tanks)
package storage
