package tankopedia

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"blitz-stats/core/reconcile"
)

// MaxTier is the highest vehicle tier.
const MaxTier = 10

// ErrTier is returned for tiers outside 1..MaxTier.
var ErrTier = errors.New("tier out of range")

// ErrNotFound is returned when a tank is not in the catalog.
var ErrNotFound = errors.New("tank not found")

// ErrMirrorDrift is returned when stored rows disagree with the catalog.
var ErrMirrorDrift = errors.New("stored tanks differ from catalog")

// Nation is the vehicle's nation.
type Nation string

const (
	NationUSSR     Nation = "ussr"
	NationGermany  Nation = "germany"
	NationUSA      Nation = "usa"
	NationChina    Nation = "china"
	NationFrance   Nation = "france"
	NationUK       Nation = "uk"
	NationJapan    Nation = "japan"
	NationOther    Nation = "other"
	NationEuropean Nation = "european"
)

// ParseNation maps an API nation name; unknown names map to NationOther.
func ParseNation(s string) Nation {
	switch n := Nation(strings.ToLower(strings.TrimSpace(s))); n {
	case NationUSSR, NationGermany, NationUSA, NationChina, NationFrance,
		NationUK, NationJapan, NationEuropean:
		return n
	default:
		return NationOther
	}
}

// VehicleType is the vehicle class, named as in the WG API.
type VehicleType string

const (
	TypeLight  VehicleType = "lightTank"
	TypeMedium VehicleType = "mediumTank"
	TypeHeavy  VehicleType = "heavyTank"
	TypeAT     VehicleType = "AT-SPG"
)

// ParseVehicleType accepts API names ("lightTank") and short class names
// ("light", "at").
func ParseVehicleType(s string) (VehicleType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "lighttank", "light":
		return TypeLight, true
	case "mediumtank", "medium":
		return TypeMedium, true
	case "heavytank", "heavy":
		return TypeHeavy, true
	case "at-spg", "at", "atspg", "tank_destroyer":
		return TypeAT, true
	default:
		return "", false
	}
}

// Tank is a tankopedia entry.
type Tank struct {
	TankID    int64       `json:"tank_id" gorm:"primaryKey;autoIncrement:false"`
	Name      string      `json:"name" gorm:"size:128"`
	Code      *string     `json:"code,omitempty" gorm:"size:64;index"`
	Nation    Nation      `json:"nation" gorm:"size:16"`
	Type      VehicleType `json:"type" gorm:"size:16"`
	Tier      int         `json:"tier" gorm:"index"`
	IsPremium bool        `json:"is_premium"`
}

// TableName overrides the table name used by Tank.
func (Tank) TableName() string {
	return "tanks"
}

// Key returns the catalog key.
func (t Tank) Key() string {
	return strconv.FormatInt(t.TankID, 10)
}

// Equal reports field-by-field equality, comparing Code by value.
func (t Tank) Equal(o Tank) bool {
	if (t.Code == nil) != (o.Code == nil) {
		return false
	}
	if t.Code != nil && *t.Code != *o.Code {
		return false
	}
	return t.TankID == o.TankID &&
		t.Name == o.Name &&
		t.Nation == o.Nation &&
		t.Type == o.Type &&
		t.Tier == o.Tier &&
		t.IsPremium == o.IsPremium
}

// ValidateTier returns ErrTier when tier is outside 1..MaxTier.
func ValidateTier(tier int) error {
	if tier < 1 || tier > MaxTier {
		return fmt.Errorf("tier %d: %w", tier, ErrTier)
	}
	return nil
}

// Indexer indexes tanks by id, code and tier.
type Indexer struct{}

func (Indexer) Key(t Tank) string { return t.Key() }

func (Indexer) Code(t Tank) (string, bool) {
	if t.Code == nil || *t.Code == "" {
		return "", false
	}
	return *t.Code, true
}

func (Indexer) Bucket(t Tank) int { return t.Tier }

func (Indexer) Equal(a, b Tank) bool { return a.Equal(b) }

// NewCollection creates an empty tank collection with one bucket per tier.
func NewCollection() *reconcile.Collection[Tank] {
	return reconcile.NewCollection[Tank](Indexer{}, MaxTier)
}
