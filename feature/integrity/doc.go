// Package integrity provides structural health checks.
//
// Reconcile keeps catalog contents correct; this package validates the
// infrastructure around them.
//
// # Checks Provided
//
//   - Structure: the snapshot bucket exists and holds each catalog snapshot.
//   - Catalogs: the code and bucket indexes of each loaded catalog agree with its entries.
//   - Schema: the stats database has every column the repositories write.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/catalogs : Verifies catalog indexes.
//   - GET /integrity/schema : Runs schema check.
package integrity
