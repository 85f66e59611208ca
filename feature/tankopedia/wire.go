package tankopedia

// VehicleV1 is a record of the encyclopedia/vehicles endpoint.
type VehicleV1 struct {
	TankID    int64  `json:"tank_id"`
	Name      string `json:"name"`
	Nation    string `json:"nation"`
	Tier      int    `json:"tier"`
	Type      string `json:"type"`
	IsPremium bool   `json:"is_premium"`
}

// VehicleV2 is the newer vehicle record. Optional fields are pointers.
type VehicleV2 struct {
	VehicleID       int64   `json:"vehicle_id"`
	UserString      string  `json:"user_string"`
	ShortUserString *string `json:"short_user_string,omitempty"`
	Code            *string `json:"code,omitempty"`
	Nation          string  `json:"nation"`
	Level           int     `json:"level"`
	Class           string  `json:"class"`
	Premium         *bool   `json:"premium,omitempty"`
}
