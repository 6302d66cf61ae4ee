package common

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MOVEDecimals = 8 // MOVE has 8 decimals (octas)

	// OctasPerMOVE is 10^MOVEDecimals
	OctasPerMOVE uint64 = 100_000_000
)

// OctasToMOVE converts octas to a MOVE string without float precision loss
// Example: OctasToMOVE(1000000) = "0.01000000"
func OctasToMOVE(octas uint64) string {
	return decimal.NewFromUint64(octas).Shift(-MOVEDecimals).StringFixed(MOVEDecimals)
}

// MOVEToOctas converts a MOVE string to octas, truncating digits past 8 decimals
func MOVEToOctas(move string) (uint64, error) {
	move = strings.TrimSpace(move)
	if move == "" {
		return 0, fmt.Errorf("empty amount")
	}

	d, err := decimal.NewFromString(move)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", move, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("amount must not be negative")
	}

	octas := d.Shift(MOVEDecimals).Truncate(0)
	if octas.GreaterThan(decimal.NewFromUint64(^uint64(0))) {
		return 0, fmt.Errorf("amount %q overflows", move)
	}
	return octas.BigInt().Uint64(), nil
}

// ShortAddress renders an address as its first 6 and last 4 characters
// Example: ShortAddress("0x1234567890abcdef") = "0x1234...cdef"
func ShortAddress(address string) string {
	if len(address) <= 10 {
		return address
	}
	return address[:6] + "..." + address[len(address)-4:]
}
