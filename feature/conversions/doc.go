// Package conversions builds the application's transformation registry.
//
// Every conversion edge is registered here, in one place, at startup. The
// resulting registry is frozen and shared by all features.
package conversions
