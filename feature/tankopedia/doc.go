// Package tankopedia maintains the vehicle catalog.
//
// Vehicle records arrive from the WG API in two shapes, VehicleV1 and
// VehicleV2, and are converted to Tank through the transformation registry.
// The catalog is indexed by id, by code and by tier (1..10). A refresh
// reconciles the stored snapshot with a fresh API response, pushes touched
// tanks to the database through Repository and writes the snapshot back to
// object storage.
//
// # Routes
//
//   - GET    /tankopedia/:id
//   - GET    /tankopedia/code/:code
//   - GET    /tankopedia/tier/:tier
//   - POST   /tankopedia/refresh
//   - DELETE /tankopedia/:id
package tankopedia
