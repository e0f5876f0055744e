package numeric

import "testing"

func TestFromStringRoundTrip(t *testing.T) {
	v, err := FromString("100.25")
	if err != nil {
		t.Fatalf("FromString: %v", err)
	}
	if got := v.String(); got != "100.25" {
		t.Errorf("String() = %q, want %q", got, "100.25")
	}
}

func TestFromStringInvalid(t *testing.T) {
	if _, err := FromString("not-a-number"); err == nil {
		t.Fatal("expected error for invalid decimal literal")
	}
}

func TestArithmeticIsExact(t *testing.T) {
	a, _ := FromString("0.1")
	b, _ := FromString("0.2")
	sum := a.Add(b)
	if got := sum.String(); got != "0.3" {
		t.Errorf("0.1 + 0.2 = %q, want \"0.3\" (exact decimal, unlike float64)", got)
	}
}

func TestCmp(t *testing.T) {
	a := FromInt(5)
	b := FromInt(10)
	if a.Cmp(b) >= 0 {
		t.Errorf("5.Cmp(10) = %d, want negative", a.Cmp(b))
	}
	if b.Cmp(a) <= 0 {
		t.Errorf("10.Cmp(5) = %d, want positive", b.Cmp(a))
	}
	if a.Cmp(FromInt(5)) != 0 {
		t.Errorf("5.Cmp(5) != 0")
	}
}

func TestIsZero(t *testing.T) {
	if !Zero().IsZero() {
		t.Error("Zero() should be zero")
	}
	if FromInt(1).IsZero() {
		t.Error("FromInt(1) should not be zero")
	}
}

func TestToFloat64(t *testing.T) {
	v, _ := FromString("3.5")
	if got := v.ToFloat64(); got != 3.5 {
		t.Errorf("ToFloat64() = %v, want 3.5", got)
	}
}
