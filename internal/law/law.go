// Package law defines the predicate form the verification engine certifies
// a curve against (spec §3, §4.2). A Law is a plain named predicate over a
// state vector plus an optional continuous violation measure, generalizing
// the shape of internal/gate's fixed VetoSignal checklist (named condition,
// optional severity) into an open, user-supplied list.
package law

import "github.com/ashgrove/newtonforge/internal/vector"

// #region law

// Predicate reports whether state x satisfies the law.
type Predicate func(x vector.State) bool

// Measure is an optional continuous violation signal: Measure(x) >= 0 iff
// Predicate(x) holds, whenever a Law supplies one (spec §3 invariant).
// Used by the engine to estimate a repair direction (spec §4.4).
type Measure func(x vector.State) float64

// Law names one region Ωᵢ of the lawful region Ω = ⋂ᵢΩᵢ.
type Law struct {
	Name      string
	Predicate Predicate
	Measure   Measure // nil if this law has no continuous signal
}

// New constructs a Law with no measure.
func New(name string, pred Predicate) Law {
	return Law{Name: name, Predicate: pred}
}

// NewWithMeasure constructs a Law carrying a continuous violation measure.
func NewWithMeasure(name string, pred Predicate, measure Measure) Law {
	return Law{Name: name, Predicate: pred, Measure: measure}
}

// Holds reports whether x satisfies the law.
func (l Law) Holds(x vector.State) bool {
	return l.Predicate(x)
}

// #endregion law

// #region half-space

// HalfSpace builds a Law for the common case Ωᵢ = {x : sign*(x[dim]-bound) >= 0},
// i.e. x[dim] >= bound when sign=+1, or x[dim] <= bound when sign=-1. Half-spaces
// are convex, so the engine's hull quick-accept (spec §4.3 step 3) is exact
// for laws built this way (spec §8 invariant 6).
func HalfSpace(name string, dim int, bound float64, sign float64) Law {
	return NewWithMeasure(
		name,
		func(x vector.State) bool { return sign*(x[dim]-bound) >= 0 },
		func(x vector.State) float64 { return sign * (x[dim] - bound) },
	)
}

// #endregion half-space
