package ids

import (
	"database/sql/driver"
	"encoding/hex"
	"errors"
	"fmt"

	"blitz-stats/core/region"
)

// Size is the byte length of an ID.
const Size = 12

// Digits is the number of hex digits across all fields of a layout.
const Digits = Size * 2

var (
	// ErrFieldOverflow means a field does not fit its declared hex width.
	ErrFieldOverflow = errors.New("field exceeds declared width")
	// ErrLayout means a layout or its argument list is malformed.
	ErrLayout = errors.New("invalid id layout")
	// ErrInvalidHex means a string is not a 24 character hex ID.
	ErrInvalidHex = errors.New("invalid id hex")
)

// FieldOverflowError reports which field overflowed its width.
type FieldOverflowError struct {
	Field int
	Value uint64
	Width uint8
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("field %d value %d exceeds %d hex digits", e.Field, e.Value, e.Width)
}

func (e *FieldOverflowError) Unwrap() error {
	return ErrFieldOverflow
}

// Layout lists field widths in hex digits, in encoding order.
type Layout []uint8

var (
	// StatLayout packs account_id(10) | tank_id(6) | last_battle_time(8).
	StatLayout = Layout{10, 6, 8}
	// AchievementLayout packs account_id(10) | region ordinal(6) | updated(8).
	AchievementLayout = Layout{10, 6, 8}
)

func (l Layout) validate(n int) error {
	if len(l) < 2 || len(l) > 3 {
		return fmt.Errorf("%w: %d fields", ErrLayout, len(l))
	}
	if n != len(l) {
		return fmt.Errorf("%w: %d values for %d fields", ErrLayout, n, len(l))
	}
	total := 0
	for _, w := range l {
		if w == 0 || w > 16 {
			return fmt.Errorf("%w: width %d", ErrLayout, w)
		}
		total += int(w)
	}
	if total != Digits {
		return fmt.Errorf("%w: widths sum to %d, want %d", ErrLayout, total, Digits)
	}
	return nil
}

// ID is a 12-byte composite identifier rendered as 24 hex characters.
type ID [Size]byte

// Encode packs fields into an ID. Each field is right-justified and
// zero-padded to its width, and fields are concatenated in layout order.
// A field wider than its slot is rejected rather than spilling into its
// neighbour.
func Encode(layout Layout, fields ...uint64) (ID, error) {
	var id ID
	if err := layout.validate(len(fields)); err != nil {
		return id, err
	}

	pos := 0
	for i, v := range fields {
		w := int(layout[i])
		if w < 16 && v>>(4*uint(w)) != 0 {
			return ID{}, &FieldOverflowError{Field: i, Value: v, Width: layout[i]}
		}
		for d := w - 1; d >= 0; d-- {
			nibble := byte(v>>(4*uint(d))) & 0x0f
			if pos%2 == 0 {
				id[pos/2] |= nibble << 4
			} else {
				id[pos/2] |= nibble
			}
			pos++
		}
	}
	return id, nil
}

// Fields unpacks an ID according to layout.
func Fields(layout Layout, id ID) ([]uint64, error) {
	if err := layout.validate(len(layout)); err != nil {
		return nil, err
	}
	out := make([]uint64, len(layout))
	pos := 0
	for i, w := range layout {
		var v uint64
		for d := 0; d < int(w); d++ {
			b := id[pos/2]
			if pos%2 == 0 {
				b >>= 4
			}
			v = v<<4 | uint64(b&0x0f)
			pos++
		}
		out[i] = v
	}
	return out, nil
}

// StatID identifies one per-vehicle stat record.
func StatID(accountID, tankID, lastBattleTime uint64) (ID, error) {
	return Encode(StatLayout, accountID, tankID, lastBattleTime)
}

// AchievementID identifies one achievement snapshot. A nil region encodes as 0.
func AchievementID(accountID uint64, r *region.Region, updated uint64) (ID, error) {
	var ord uint64
	if r != nil {
		ord = uint64(r.Ordinal())
	}
	return Encode(AchievementLayout, accountID, ord, updated)
}

// ParseHex parses the 24 character form of an ID.
func ParseHex(s string) (ID, error) {
	var id ID
	if len(s) != Digits {
		return id, fmt.Errorf("%w: length %d", ErrInvalidHex, len(s))
	}
	if _, err := hex.Decode(id[:], []byte(s)); err != nil {
		return ID{}, fmt.Errorf("%w: %v", ErrInvalidHex, err)
	}
	return id, nil
}

func (id ID) String() string {
	return hex.EncodeToString(id[:])
}

// Hex returns the 24 character lowercase hex form.
func (id ID) Hex() string {
	return id.String()
}

// IsZero reports whether id is the zero value.
func (id ID) IsZero() bool {
	return id == ID{}
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*id = parsed
	return nil
}

// Value stores the ID as its hex string.
func (id ID) Value() (driver.Value, error) {
	return id.String(), nil
}

// Scan reads an ID stored as a hex string.
func (id *ID) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return id.UnmarshalText([]byte(v))
	case []byte:
		return id.UnmarshalText(v)
	case nil:
		*id = ID{}
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidHex, src)
	}
}
