package bezier

import (
	"math"
	"testing"

	"github.com/ashgrove/newtonforge/internal/vector"
)

const eps = 1e-8

func almostEqualState(a, b vector.State, tol float64) bool {
	if a.Dim() != b.Dim() {
		return false
	}
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestEndpointInterpolation(t *testing.T) {
	cp := Linear(vector.State{1, 1}, vector.State{3, 3})
	if !almostEqualState(cp.Evaluate(0), cp.P0, 1e-12) {
		t.Errorf("eval(0) != P0")
	}
	if !almostEqualState(cp.Evaluate(1), cp.P3, 1e-12) {
		t.Errorf("eval(1) != P3")
	}
}

func TestLinearMidpoint(t *testing.T) {
	a := vector.State{1, 1}
	b := vector.State{3, 3}
	cp := Linear(a, b)
	mid := cp.Evaluate(0.5)
	want := vector.State{2, 2}
	if !almostEqualState(mid, want, eps) {
		t.Errorf("linear(a,b).eval(0.5) = %v, want %v", mid, want)
	}
}

func TestEndpointDerivatives(t *testing.T) {
	cp := ControlPoints{
		P0: vector.State{0, 0},
		P1: vector.State{1, 3},
		P2: vector.State{2, -1},
		P3: vector.State{3, 0},
	}
	d0 := cp.Derivative(0)
	want0 := cp.P1.Sub(cp.P0).Scale(3)
	if !almostEqualState(d0, want0, eps) {
		t.Errorf("deriv(0) = %v, want %v", d0, want0)
	}
	d1 := cp.Derivative(1)
	want1 := cp.P3.Sub(cp.P2).Scale(3)
	if !almostEqualState(d1, want1, eps) {
		t.Errorf("deriv(1) = %v, want %v", d1, want1)
	}
}

func TestDeCasteljauConsistency(t *testing.T) {
	cp := ControlPoints{
		P0: vector.State{0, 0},
		P1: vector.State{1, 3},
		P2: vector.State{2, -1},
		P3: vector.State{3, 0},
	}
	s := 0.37
	left, right := DeCasteljauSplit(cp, s)

	if !almostEqualState(left.P0, cp.P0, 1e-12) {
		t.Error("left.P0 != cp.P0")
	}
	if !almostEqualState(right.P3, cp.P3, 1e-12) {
		t.Error("right.P3 != cp.P3")
	}
	mid := cp.Evaluate(s)
	if !almostEqualState(left.P3, mid, eps) {
		t.Error("left.P3 != cp.Evaluate(s)")
	}
	if !almostEqualState(right.P0, mid, eps) {
		t.Error("right.P0 != cp.Evaluate(s)")
	}

	for _, u := range []float64{0, 0.1, 0.5, 0.9, 1.0} {
		gotLeft := left.Evaluate(u)
		wantLeft := cp.Evaluate(s * u)
		if !almostEqualState(gotLeft, wantLeft, eps) {
			t.Errorf("left.eval(%v) = %v, want %v", u, gotLeft, wantLeft)
		}

		gotRight := right.Evaluate(u)
		wantRight := cp.Evaluate(s + (1-s)*u)
		if !almostEqualState(gotRight, wantRight, eps) {
			t.Errorf("right.eval(%v) = %v, want %v", u, gotRight, wantRight)
		}
	}
}

func TestBernsteinPartitionOfUnity(t *testing.T) {
	for _, tt := range []float64{0, 0.1, 0.25, 0.5, 0.75, 0.9, 1.0} {
		sum := 0.0
		for i := 0; i <= 3; i++ {
			b := Bernstein(i, 3, tt)
			if b < -1e-12 {
				t.Errorf("Bernstein(%d,3,%v) = %v, want >= 0", i, tt, b)
			}
			sum += b
		}
		if math.Abs(sum-1) > eps {
			t.Errorf("sum of Bernstein basis at t=%v = %v, want 1", tt, sum)
		}
	}
}
