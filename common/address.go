package common

import (
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// IsAddress reports whether s is a 0x-prefixed 20 byte hex address.
func IsAddress(s string) bool {
	s = strings.TrimSpace(s)
	return strings.HasPrefix(s, "0x") && common.IsHexAddress(s)
}

// NormalizeAddress validates s and returns its lowercase form, the canonical
// representation used for every set and map key in this module.
func NormalizeAddress(s string) (string, error) {
	s = strings.TrimSpace(s)
	if !IsAddress(s) {
		return "", fmt.Errorf("%q is not a valid address", s)
	}
	return strings.ToLower(s), nil
}

// HexToAddress converts without validation, callers are expected to have
// validated the input already.
func HexToAddress(s string) common.Address {
	return common.HexToAddress(strings.TrimSpace(s))
}

func HexToAddresses(hexes []string) []common.Address {
	result := make([]common.Address, 0, len(hexes))
	for _, h := range hexes {
		result = append(result, HexToAddress(h))
	}
	return result
}

// ShortAddress renders an address as its first 6 and last 4 characters,
// e.g. 0x1234…abcd. Inputs too short to abbreviate are returned unchanged.
func ShortAddress(s string) string {
	if len(s) <= 10 {
		return s
	}
	return s[:6] + "…" + s[len(s)-4:]
}

// SplitAddresses parses a comma or whitespace separated address list,
// dropping empty items. Every item must be a valid address.
func SplitAddresses(input string) ([]string, error) {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\n' || r == '\t'
	})
	result := make([]string, 0, len(fields))
	for _, f := range fields {
		addr, err := NormalizeAddress(f)
		if err != nil {
			return nil, err
		}
		result = append(result, addr)
	}
	return result, nil
}
