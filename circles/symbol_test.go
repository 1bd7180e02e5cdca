package circles_test

import (
	"strings"
	"testing"

	"github.com/tranvictor/circles-groups/circles"
)

func TestDeriveSymbol(t *testing.T) {
	cases := []struct {
		name, want string
	}{
		{"Berlin Bakers", "BERLINBA"},
		{"abc", "ABC"},
		{"co-op 42!", "COOP42"},
		{"!!!", "GROUP"},
		{"", "GROUP"},
		{"Ünïcode café", "NCODECAF"},
	}
	for _, c := range cases {
		if got := circles.DeriveSymbol(c.name); got != c.want {
			t.Errorf("DeriveSymbol(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestValidateProfileFields(t *testing.T) {
	if err := circles.ValidateName(strings.Repeat("a", 51)); err == nil {
		t.Errorf("expected long name to fail")
	}
	if err := circles.ValidateName("  "); err == nil {
		t.Errorf("expected blank name to fail")
	}
	if err := circles.ValidateName("Bakers"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, bad := range []string{"AB", "ABCDEFGHI", "abc", "AB-C"} {
		if err := circles.ValidateSymbol(bad); err == nil {
			t.Errorf("expected symbol %q to fail", bad)
		}
	}
	if err := circles.ValidateSymbol("BAKE1"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := circles.ValidateDescription(strings.Repeat("d", 501)); err == nil {
		t.Errorf("expected long description to fail")
	}
}
