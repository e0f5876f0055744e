package field

import "github.com/ashgrove/newtonforge/internal/numeric"

// #region kind

// Kind enumerates the typed value a field cell may carry (spec §3, "Typed
// encoding").
type Kind int

const (
	KindDecimal Kind = iota
	KindBool
	KindInt
	KindDouble
	KindLabel
)

// #endregion kind

// #region value

// Value is the typed union a field cell stores. Exactly one of the
// corresponding fields is meaningful, selected by Kind — the spec's "Sum
// types... implement as such, not as class hierarchies" (§9) applied to a
// language without tagged unions: an explicit Kind discriminant instead of
// dynamic dispatch.
type Value struct {
	Kind    Kind
	Decimal numeric.Value
	Bool    bool
	Int     int64
	Double  float64
	Label   string
}

// DecimalValue constructs a decimal-kind Value.
func DecimalValue(v numeric.Value) Value { return Value{Kind: KindDecimal, Decimal: v} }

// BoolValue constructs a boolean-kind Value.
func BoolValue(v bool) Value { return Value{Kind: KindBool, Bool: v} }

// IntValue constructs an integer-kind Value.
func IntValue(v int64) Value { return Value{Kind: KindInt, Int: v} }

// DoubleValue constructs a raw-double-kind Value.
func DoubleValue(v float64) Value { return Value{Kind: KindDouble, Double: v} }

// LabelValue constructs a labelled-string-kind Value.
func LabelValue(v string) Value { return Value{Kind: KindLabel, Label: v} }

// #endregion value

// #region state-path

// StatePath is a tiny ordered enum backing a labelled string field (spec
// §9: "prefer an integer-indexed enum with a name table"). Position within
// the path is what Cell.CurrentStateValue encodes as a double.
type StatePath struct {
	Labels []string
}

// NewStatePath builds a StatePath from an ordered label list.
func NewStatePath(labels ...string) StatePath {
	return StatePath{Labels: labels}
}

// IndexOf returns the zero-based position of label in the path, or -1 if
// label is not a member.
func (p StatePath) IndexOf(label string) int {
	for i, l := range p.Labels {
		if l == label {
			return i
		}
	}
	return -1
}

// #endregion state-path
