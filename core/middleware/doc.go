// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation. Health, metrics and swagger paths are public.
//   - rayid: Assigns each request a ray id (UUID), stored in locals under
//     "ray_id" and echoed in the X-Ray-ID response header.
//
// The start command registers rayid first so every log line can carry the id.
package middleware
