package common

import (
	"fmt"
	"math/big"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// CRCDecimals is the number of decimals of every Circles v2 token.
const CRCDecimals uint64 = 18

var printer = message.NewPrinter(language.English)

func StringToBig(input string) *big.Int {
	resultBig, ok := big.NewInt(0).SetString(strings.TrimSpace(input), 10)
	if !ok {
		return big.NewInt(0)
	}
	return resultBig
}

// FloatStringToBig converts a human amount like "1.5" to its integer
// representation with the given number of decimals.
func FloatStringToBig(value string, decimal uint64) (*big.Int, error) {
	f, success := new(big.Float).SetPrec(256).SetString(strings.TrimSpace(value))
	if !success {
		return nil, fmt.Errorf("couldn't parse %q as a number", value)
	}
	if f.Sign() < 0 {
		return nil, fmt.Errorf("amount %q must not be negative", value)
	}
	power := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	f.Mul(f, power)
	res, _ := f.Int(nil)
	return res, nil
}

// BigToFloatString is the inverse of FloatStringToBig. Trailing zeros and a
// dangling decimal point are dropped.
func BigToFloatString(value *big.Int, decimal uint64) string {
	if value == nil {
		return "0"
	}
	f := new(big.Float).SetPrec(256).SetInt(value)
	power := new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(
		big.NewInt(10), big.NewInt(int64(decimal)), nil,
	))
	res := new(big.Float).SetPrec(256).Quo(f, power)
	text := res.Text('f', int(decimal))
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}
	return text
}

// ReadableAmount formats a token amount with thousand separators and at
// most 4 fractional digits, e.g. 1,234.5.
func ReadableAmount(value *big.Int, decimal uint64) string {
	if value == nil {
		return "0"
	}
	f, _ := new(big.Float).SetPrec(256).Quo(
		new(big.Float).SetPrec(256).SetInt(value),
		new(big.Float).SetPrec(256).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimal)), nil)),
	).Float64()
	text := printer.Sprintf("%.4f", f)
	if strings.Contains(text, ".") {
		text = strings.TrimRight(text, "0")
		text = strings.TrimSuffix(text, ".")
	}
	return text
}

// ReadableCount formats an integer count with thousand separators.
func ReadableCount(n int) string {
	return printer.Sprintf("%d", n)
}
