package region

import (
	"errors"
	"fmt"
	"strings"
)

// Region is one of the fixed server groups an account ID belongs to.
// The declaration order is significant: Ordinal is used to encode a region
// into composite identifiers.
type Region uint8

const (
	RU Region = iota
	EU
	COM
	ASIA
	CHINA
	BOT
)

// ErrUnknownRegion is returned by Parse for names outside the fixed set.
var ErrUnknownRegion = errors.New("unknown region")

const (
	maxID int64 = 1 << 32

	ruEnd      int64 = 500_000_000
	euEnd      int64 = 1_000_000_000
	comEnd     int64 = 2_000_000_000
	asiaEnd    int64 = 3_100_000_000
	chinaEnd   int64 = 4_200_000_000
	asiaPlayer int64 = 3_000_000_000
)

var names = [...]string{"ru", "eu", "com", "asia", "china", "bot"}

// Range is a half-open account ID interval [Lo, Hi).
type Range struct {
	Lo int64
	Hi int64
}

// Contains reports whether id falls in the range.
func (r Range) Contains(id int64) bool {
	return id >= r.Lo && id < r.Hi
}

// All returns every region in declaration order.
func All() []Region {
	return []Region{RU, EU, COM, ASIA, CHINA, BOT}
}

// Players returns the regions that carry live player statistics.
func Players() []Region {
	return []Region{RU, EU, COM, ASIA, CHINA}
}

// FromID returns the nominal home region of an account ID.
// Anything outside the named ranges, including negative IDs, maps to BOT.
func FromID(id int64) Region {
	switch {
	case id < 0 || id >= maxID:
		return BOT
	case id < ruEnd:
		return RU
	case id < euEnd:
		return EU
	case id < comEnd:
		return COM
	case id < asiaEnd:
		return ASIA
	case id < chinaEnd:
		return CHINA
	default:
		return BOT
	}
}

// FromPlayerID returns the region whose stats API serves the account.
// It differs from FromID only at the ASIA/CHINA boundary: accounts in
// [30e8, 31e8) never resolve to stats on the asia server.
func FromPlayerID(id int64) Region {
	r := FromID(id)
	if r == ASIA && id >= asiaPlayer {
		return CHINA
	}
	return r
}

// IDRange returns the nominal account ID range of the region.
func (r Region) IDRange() Range {
	switch r {
	case RU:
		return Range{0, ruEnd}
	case EU:
		return Range{ruEnd, euEnd}
	case COM:
		return Range{euEnd, comEnd}
	case ASIA:
		return Range{comEnd, asiaEnd}
	case CHINA:
		return Range{asiaEnd, chinaEnd}
	default:
		return Range{chinaEnd, maxID}
	}
}

// PlayerIDRange returns the account ID range FromPlayerID assigns to the region.
func (r Region) PlayerIDRange() Range {
	switch r {
	case ASIA:
		return Range{comEnd, asiaPlayer}
	case CHINA:
		return Range{asiaPlayer, chinaEnd}
	default:
		return r.IDRange()
	}
}

// Ordinal is the position of the region in declaration order.
func (r Region) Ordinal() int {
	return int(r)
}

// Valid reports whether r is one of the declared regions.
func (r Region) Valid() bool {
	return int(r) < len(names)
}

func (r Region) String() string {
	if !r.Valid() {
		return fmt.Sprintf("region(%d)", uint8(r))
	}
	return names[r]
}

// Parse converts a region name (case-insensitive) into a Region.
func Parse(s string) (Region, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range names {
		if n == name {
			return Region(i), nil
		}
	}
	return BOT, fmt.Errorf("%w: %q", ErrUnknownRegion, s)
}

// MarshalText implements encoding.TextMarshaler.
func (r Region) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRegion, uint8(r))
	}
	return []byte(names[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Region) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
