package tankopedia

import (
	"strings"

	"blitz-stats/core/transform"
)

// FromVehicleV1 converts an encyclopedia record. Records without an id, with
// a tier outside 1..MaxTier or with an unknown type are rejected.
func FromVehicleV1(v VehicleV1) (Tank, bool) {
	if v.TankID <= 0 || ValidateTier(v.Tier) != nil {
		return Tank{}, false
	}
	typ, ok := ParseVehicleType(v.Type)
	if !ok {
		return Tank{}, false
	}
	return Tank{
		TankID:    v.TankID,
		Name:      v.Name,
		Nation:    ParseNation(v.Nation),
		Type:      typ,
		Tier:      v.Tier,
		IsPremium: v.IsPremium,
	}, true
}

// FromVehicleV2 converts a v2 record. The code is kept only when non-empty.
func FromVehicleV2(v VehicleV2) (Tank, bool) {
	if v.VehicleID <= 0 || ValidateTier(v.Level) != nil {
		return Tank{}, false
	}
	typ, ok := ParseVehicleType(v.Class)
	if !ok {
		return Tank{}, false
	}

	name := v.UserString
	if name == "" && v.ShortUserString != nil {
		name = *v.ShortUserString
	}

	t := Tank{
		TankID: v.VehicleID,
		Name:   name,
		Nation: ParseNation(v.Nation),
		Type:   typ,
		Tier:   v.Level,
	}
	if v.Code != nil {
		if code := strings.TrimSpace(*v.Code); code != "" {
			t.Code = &code
		}
	}
	if v.Premium != nil {
		t.IsPremium = *v.Premium
	}
	return t, true
}

// RegisterTransforms adds the vehicle conversions to r.
func RegisterTransforms(r *transform.Registry) error {
	if err := transform.Register(r, FromVehicleV1); err != nil {
		return err
	}
	return transform.Register(r, FromVehicleV2)
}
