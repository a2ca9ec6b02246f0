package table

import (
	"fmt"
	"strings"
)

// Tier is a responsive visibility class. Columns declare the lowest tier at
// which they appear; TierCore columns are always shown.
type Tier int

const (
	TierCore Tier = iota
	TierSM
	TierMD
	TierLG
)

var tierNames = [...]string{"core", "sm", "md", "lg"}

// Viewport breakpoints in CSS pixels.
const (
	widthSM = 640
	widthMD = 768
	widthLG = 1024
)

// Terminal breakpoints in character cells.
const (
	columnsSM = 60
	columnsMD = 90
	columnsLG = 120
)

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierCore, TierSM, TierMD, TierLG}
}

func (t Tier) String() string {
	if t < TierCore || t > TierLG {
		return fmt.Sprintf("Tier(%d)", int(t))
	}
	return tierNames[t]
}

// Valid reports whether t is one of the declared tiers.
func (t Tier) Valid() bool {
	return t >= TierCore && t <= TierLG
}

// Shows reports whether a column with the given priority is visible at t.
func (t Tier) Shows(priority Tier) bool {
	return priority == TierCore || priority <= t
}

// ParseTier parses a tier name as used in query strings and flags.
func ParseTier(s string) (Tier, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range tierNames {
		if n == name {
			return Tier(i), nil
		}
	}
	return TierCore, fmt.Errorf("%w: %q", ErrUnknownTier, s)
}

// TierForWidth maps a viewport width in CSS pixels to a tier.
func TierForWidth(px int) Tier {
	switch {
	case px >= widthLG:
		return TierLG
	case px >= widthMD:
		return TierMD
	case px >= widthSM:
		return TierSM
	default:
		return TierCore
	}
}

// TierForColumns maps a terminal width in cells to a tier.
func TierForColumns(cols int) Tier {
	switch {
	case cols >= columnsLG:
		return TierLG
	case cols >= columnsMD:
		return TierMD
	case cols >= columnsSM:
		return TierSM
	default:
		return TierCore
	}
}

// MarshalText encodes the tier by name.
func (t Tier) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText decodes a tier name.
func (t *Tier) UnmarshalText(b []byte) error {
	parsed, err := ParseTier(string(b))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
