package billing

import (
	"math"
)

// ToMinorUnits converts a major-unit amount to the provider's integer minor
// units (cents). Rounded, not truncated, so float noise never drops a cent.
func ToMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromMinorUnits converts provider minor units back to a major-unit amount.
func FromMinorUnits(amount int64) float64 {
	return float64(amount) / 100
}
