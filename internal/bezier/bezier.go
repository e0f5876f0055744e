// Package bezier implements the cubic Bézier / De Casteljau geometry the
// verification engine certifies (spec §4.1). No teacher package covers this
// directly — it is written fresh, following the region-comment and doc
// style of internal/gate and internal/update.
package bezier

import "github.com/ashgrove/newtonforge/internal/vector"

// #region control-points

// ControlPoints holds the four control points of a cubic Bézier curve.
// All four must share identical dimension (spec §3 invariant).
type ControlPoints struct {
	P0, P1, P2, P3 vector.State
}

// Dim returns the shared dimension of the four control points, or -1 if
// they disagree (callers that construct ControlPoints directly, bypassing
// Linear, are responsible for this invariant — spec §7 treats a mismatch
// as a programmer error).
func (cp ControlPoints) Dim() int {
	d := cp.P0.Dim()
	if cp.P1.Dim() != d || cp.P2.Dim() != d || cp.P3.Dim() != d {
		return -1
	}
	return d
}

// #endregion control-points

// #region linear

// Linear constructs the control points of the straight-line proposal from a
// to b: P0=a, P1=a+⅓(b-a), P2=a+⅔(b-a), P3=b (spec §4.1).
func Linear(a, b vector.State) ControlPoints {
	delta := b.Sub(a)
	return ControlPoints{
		P0: a.Clone(),
		P1: a.Add(delta.Scale(1.0 / 3.0)),
		P2: a.Add(delta.Scale(2.0 / 3.0)),
		P3: b.Clone(),
	}
}

// #endregion linear

// #region evaluate

// Evaluate returns γ(t) = (1-t)³P0 + 3(1-t)²t·P1 + 3(1-t)t²·P2 + t³·P3,
// componentwise.
func (cp ControlPoints) Evaluate(t float64) vector.State {
	u := 1 - t
	b0 := u * u * u
	b1 := 3 * u * u * t
	b2 := 3 * u * t * t
	b3 := t * t * t

	dim := cp.P0.Dim()
	out := make(vector.State, dim)
	for i := 0; i < dim; i++ {
		out[i] = b0*cp.P0[i] + b1*cp.P1[i] + b2*cp.P2[i] + b3*cp.P3[i]
	}
	return out
}

// #endregion evaluate

// #region derivative

// Derivative returns γ'(t) = 3[(1-t)²(P1-P0) + 2(1-t)t(P2-P1) + t²(P3-P2)].
func (cp ControlPoints) Derivative(t float64) vector.State {
	u := 1 - t
	c0 := u * u
	c1 := 2 * u * t
	c2 := t * t

	dim := cp.P0.Dim()
	out := make(vector.State, dim)
	for i := 0; i < dim; i++ {
		d01 := cp.P1[i] - cp.P0[i]
		d12 := cp.P2[i] - cp.P1[i]
		d23 := cp.P3[i] - cp.P2[i]
		out[i] = 3 * (c0*d01 + c1*d12 + c2*d23)
	}
	return out
}

// #endregion derivative

// #region de-casteljau

// DeCasteljauSplit splits cp into (left, right) at parameter s ∈ (0,1) by
// the standard triangular scheme. left.P0 = cp.P0, right.P3 = cp.P3,
// left.P3 = right.P0 = cp.Evaluate(s) (spec §4.1).
func DeCasteljauSplit(cp ControlPoints, s float64) (left, right ControlPoints) {
	// Triangular scheme, interpolating whole control-point vectors.
	p01 := cp.P0.Lerp(cp.P1, s)
	p12 := cp.P1.Lerp(cp.P2, s)
	p23 := cp.P2.Lerp(cp.P3, s)

	p012 := p01.Lerp(p12, s)
	p123 := p12.Lerp(p23, s)

	p0123 := p012.Lerp(p123, s)

	left = ControlPoints{P0: cp.P0.Clone(), P1: p01, P2: p012, P3: p0123}
	right = ControlPoints{P0: p0123.Clone(), P1: p123, P2: p23, P3: cp.P3.Clone()}
	return left, right
}

// #endregion de-casteljau

// #region bernstein

// Bernstein returns the degree-n Bernstein basis polynomial b_{i,n}(t) =
// C(n,i)·t^i·(1-t)^(n-i); it is 0 for i outside [0,n].
func Bernstein(i, n int, t float64) float64 {
	c := binomial(n, i)
	return c * pow(t, i) * pow(1-t, n-i)
}

func pow(x float64, n int) float64 {
	if n == 0 {
		return 1
	}
	r := 1.0
	for k := 0; k < n; k++ {
		r *= x
	}
	return r
}

func binomial(n, i int) float64 {
	if i < 0 || i > n {
		return 0
	}
	num := 1.0
	den := 1.0
	for k := 0; k < i; k++ {
		num *= float64(n - k)
		den *= float64(k + 1)
	}
	return num / den
}

// #endregion bernstein
