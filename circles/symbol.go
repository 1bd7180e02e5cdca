package circles

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	DefaultSymbol      = "GROUP"
	MaxDerivedSymbol   = 8
	MinSymbolLength    = 3
	MaxSymbolLength    = 8
	MaxNameLength      = 50
	MaxDescriptionSize = 500
)

var (
	nonAlnum    = regexp.MustCompile(`[^a-zA-Z0-9]`)
	validSymbol = regexp.MustCompile(`^[A-Z0-9]+$`)
)

// DeriveSymbol builds a token symbol from a group name: ASCII letters and
// digits only, upper-cased, at most 8 characters.
func DeriveSymbol(name string) string {
	s := strings.ToUpper(nonAlnum.ReplaceAllString(name, ""))
	if len(s) > MaxDerivedSymbol {
		s = s[:MaxDerivedSymbol]
	}
	if s == "" {
		return DefaultSymbol
	}
	return s
}

func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("name is required")
	}
	if utf8.RuneCountInString(name) > MaxNameLength {
		return fmt.Errorf("name must be at most %d characters", MaxNameLength)
	}
	return nil
}

func ValidateSymbol(symbol string) error {
	if len(symbol) < MinSymbolLength || len(symbol) > MaxSymbolLength {
		return fmt.Errorf("symbol must be between %d and %d characters", MinSymbolLength, MaxSymbolLength)
	}
	if !validSymbol.MatchString(symbol) {
		return fmt.Errorf("symbol must contain only uppercase letters and numbers")
	}
	return nil
}

func ValidateDescription(description string) error {
	description = strings.TrimSpace(description)
	if description == "" {
		return fmt.Errorf("description is required")
	}
	if utf8.RuneCountInString(description) > MaxDescriptionSize {
		return fmt.Errorf("description must be at most %d characters", MaxDescriptionSize)
	}
	return nil
}
