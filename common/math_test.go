package common_test

import (
	"math/big"
	"testing"

	"github.com/tranvictor/circles-groups/common"
)

func TestFloatStringToBig(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"1", "1000000000000000000"},
		{"1.5", "1500000000000000000"},
		{"0.000000000000000001", "1"},
		{"  42 ", "42000000000000000000"},
	}
	for _, c := range cases {
		got, err := common.FloatStringToBig(c.in, common.CRCDecimals)
		if err != nil {
			t.Fatalf("FloatStringToBig(%q): %s", c.in, err)
		}
		if got.String() != c.want {
			t.Fatalf("FloatStringToBig(%q) = %s, want %s", c.in, got, c.want)
		}
	}
}

func TestFloatStringToBigRejectsGarbage(t *testing.T) {
	if _, err := common.FloatStringToBig("abc", 18); err == nil {
		t.Fatalf("expected error for non numeric input")
	}
	if _, err := common.FloatStringToBig("-1", 18); err == nil {
		t.Fatalf("expected error for negative input")
	}
}

func TestBigToFloatString(t *testing.T) {
	v, _ := new(big.Int).SetString("1500000000000000000", 10)
	if got := common.BigToFloatString(v, 18); got != "1.5" {
		t.Fatalf("got %q, want 1.5", got)
	}
	v, _ = new(big.Int).SetString("3000000000000000000", 10)
	if got := common.BigToFloatString(v, 18); got != "3" {
		t.Fatalf("got %q, want 3", got)
	}
	if got := common.BigToFloatString(nil, 18); got != "0" {
		t.Fatalf("got %q, want 0", got)
	}
}

func TestReadableAmount(t *testing.T) {
	v, _ := new(big.Int).SetString("1234500000000000000000", 10)
	if got := common.ReadableAmount(v, 18); got != "1,234.5" {
		t.Fatalf("got %q, want 1,234.5", got)
	}
	if got := common.ReadableCount(1200); got != "1,200" {
		t.Fatalf("got %q, want 1,200", got)
	}
}
