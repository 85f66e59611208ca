// Package transform is a type-indexed table of conversion functions.
//
// Upstream payloads arrive in several shapes (API v1 and v2, achievement
// records, replay details) that evolve independently of the domain types.
// Instead of giving each domain type a constructor per payload shape, every
// conversion is registered once as an edge S -> T and looked up by the
// runtime type of the payload:
//
//	reg := transform.New()
//	transform.MustRegister(reg, tankopedia.FromVehicleV1)
//	transform.MustRegister(reg, tankopedia.FromVehicleV2)
//	reg.Freeze()
//
//	tank, ok := transform.Transform[tankopedia.Tank](reg, payload)
//	if !ok {
//	    // no edge, or the payload was missing a required field: skip it
//	}
//
// A missing edge is normal control flow and yields (zero, false). Registering
// the same pair twice is a programming error and fails at registration.
//
// The registry is an explicit value and not a package global; the
// application builds it once in a single startup routine.
package transform
