// Package numeric provides the exact decimal scalar used by field cells
// that need precise arithmetic (money, counts) before being projected into
// the double-valued geometry the verification engine operates on.
package numeric

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// #region value

// Value is an exact decimal scalar. It wraps shopspring/decimal so that
// field cells carrying currency or other exact quantities never accumulate
// binary floating-point error across a chain of forges.
type Value struct {
	d decimal.Decimal
}

// #endregion value

// #region constructors

// FromString parses a decimal literal such as "100.00" or "-3.5".
func FromString(s string) (Value, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Value{}, fmt.Errorf("parse decimal %q: %w", s, err)
	}
	return Value{d: d}, nil
}

// FromInt builds a Value from an exact integer.
func FromInt(i int64) Value {
	return Value{d: decimal.NewFromInt(i)}
}

// FromFloat builds a Value from a float64. Lossy for values that are not
// exactly representable in binary; prefer FromString for literals.
func FromFloat(f float64) Value {
	return Value{d: decimal.NewFromFloat(f)}
}

// Zero is the additive identity.
func Zero() Value { return Value{d: decimal.Zero} }

// #endregion constructors

// #region arithmetic

// Add returns v + other.
func (v Value) Add(other Value) Value { return Value{d: v.d.Add(other.d)} }

// Sub returns v - other.
func (v Value) Sub(other Value) Value { return Value{d: v.d.Sub(other.d)} }

// Cmp returns -1, 0, or 1 as v is less than, equal to, or greater than other.
func (v Value) Cmp(other Value) int { return v.d.Cmp(other.d) }

// IsZero reports whether v is exactly zero.
func (v Value) IsZero() bool { return v.d.IsZero() }

// #endregion arithmetic

// #region conversion

// ToFloat64 projects the decimal value into the double-precision encoding
// used by state vectors and Bézier geometry (spec §3, "Typed encoding").
func (v Value) ToFloat64() float64 {
	f, _ := v.d.Float64()
	return f
}

// String renders the canonical decimal representation.
func (v Value) String() string { return v.d.String() }

// #endregion conversion
