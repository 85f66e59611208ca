// Package wgapi decodes the response envelope shared by the WG public API
// endpoints: a status, an optional count, a data object keyed by id and an
// error block.
package wgapi
