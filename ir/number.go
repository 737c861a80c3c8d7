package ir

import (
	"math/big"
	"strings"
)

// Number is (digits, decimal) representing digits × 10^-decimal, per
// spec.md §3. All numeric literals round-trip losslessly through this form;
// the lexer (token.Number) produces the same shape from source text.
type Number struct {
	Digits  *big.Int
	Decimal uint
}

// NewNumberFromInt64 builds a Number with Decimal == 0.
func NewNumberFromInt64(v int64) Number {
	return Number{Digits: big.NewInt(v), Decimal: 0}
}

// String renders the number back to text. When Decimal == 0 this is
// byte-identical to an integer literal (spec.md §8 round-trip property);
// otherwise it reinserts the decimal point at the right position.
func (n Number) String() string {
	neg := n.Digits.Sign() < 0

	digits := new(big.Int).Abs(n.Digits).String()

	if n.Decimal == 0 {
		if neg {
			return "-" + digits
		}

		return digits
	}

	for uint(len(digits)) <= n.Decimal {
		digits = "0" + digits
	}

	intPart := digits[:uint(len(digits))-n.Decimal]
	fracPart := digits[uint(len(digits))-n.Decimal:]

	var sb strings.Builder
	if neg {
		sb.WriteByte('-')
	}

	sb.WriteString(intPart)
	sb.WriteByte('.')
	sb.WriteString(fracPart)

	return sb.String()
}

// IsInteger reports whether the number has no fractional component.
func (n Number) IsInteger() bool { return n.Decimal == 0 }

// Equal compares two Numbers by numeric value, not representation — "0.10"
// and "0.1" compare equal even though String() differs.
func (n Number) Equal(other Number) bool {
	a, b := n.normalize()
	c, d := other.normalize()

	return a.Cmp(c) == 0 && b == d
}

// normalize strips common trailing zero digits so two Numbers with
// different Decimal but the same value compare equal.
func (n Number) normalize() (*big.Int, uint) {
	digits := new(big.Int).Set(n.Digits)
	decimal := n.Decimal

	ten := big.NewInt(10)
	zero := big.NewInt(0)
	mod := new(big.Int)

	for decimal > 0 {
		mod.Mod(digits, ten)
		if mod.Cmp(zero) != 0 {
			break
		}

		digits.Div(digits, ten)
		decimal--
	}

	return digits, decimal
}

// Int64 returns the number truncated to an int64 when it is an integer;
// ok is false for fractional numbers or values out of int64 range.
func (n Number) Int64() (v int64, ok bool) {
	if !n.IsInteger() || !n.Digits.IsInt64() {
		return 0, false
	}

	return n.Digits.Int64(), true
}
