package matrix

import (
	"math"
	"testing"
)

func TestFormatParseRoundTrip(t *testing.T) {
	cases := []Matrix{
		NewVector(1, 1, 1),
		FromRows([][]float64{{1, 2}, {3, 4}}),
		Identity(3),
		New(0, 0),
		NewVector(math.Pi, math.E, 1.0 / 3.0),
		NewVector(-0.0001, 1e20, -1e-20),
	}

	for _, m := range cases {
		text := Format(m)
		got, err := Parse(text)
		if err != nil {
			t.Fatalf("Parse(%q) failed: %v", text, err)
		}
		if !got.Equal(m) {
			t.Errorf("round trip mismatch: got %v want %v (text=%q)", got.Elements(), m.Elements(), text)
		}
	}
}

func TestParseRejectsMalformed(t *testing.T) {
	bad := []string{
		"1,1]1",
		"[1,1]1;2",
		"[2,2]1,2;3",
		"[x,1]1",
	}
	for _, text := range bad {
		if _, err := Parse(text); err == nil {
			t.Errorf("Parse(%q) expected error, got nil", text)
		}
	}
}

func TestNorms(t *testing.T) {
	v := NewVector(3, -4)
	if got := v.L1Norm(); got != 7 {
		t.Errorf("L1Norm = %v, want 7", got)
	}
	if got := v.L2Norm(); got != 5 {
		t.Errorf("L2Norm = %v, want 5", got)
	}
	if got := v.LInfNorm(); got != 4 {
		t.Errorf("LInfNorm = %v, want 4", got)
	}
}

func TestSubAndEvery(t *testing.T) {
	a := NewVector(1, 1, 1)
	b := NewVector(1, 1, 1)
	d := a.Sub(b)
	if !d.Every(func(v float64) bool { return v == 0 }) {
		t.Errorf("expected zero difference, got %v", d.Elements())
	}
}
