// Package ingest holds configuration shared by the ingestion features:
// where reference snapshots live in object storage, how long they are
// cached, and how much upstream clock skew is tolerated before timestamps
// are clamped.
//
// Like core/server, it contains configuration only; the features under
// feature/ consume it.
package ingest
