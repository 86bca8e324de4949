package noise

import (
	"math"
	"testing"
)

func TestEval3Deterministic(t *testing.T) {
	a := New(1234)
	b := New(1234)

	points := [][3]float64{
		{0, 0, 0},
		{3, 0, 0},
		{0.25, -1.5, 7.75},
		{100.1, 42.42, -3.3},
	}

	for _, p := range points {
		first := a.Eval3(p[0], p[1], p[2])
		for i := 0; i < 5; i++ {
			if got := a.Eval3(p[0], p[1], p[2]); got != first {
				t.Errorf("Eval3(%v) call %d = %v, want %v", p, i, got, first)
			}
		}
		if got := b.Eval3(p[0], p[1], p[2]); got != first {
			t.Errorf("same seed, Eval3(%v) = %v, want %v", p, got, first)
		}
	}
}

func TestEval3Bounded(t *testing.T) {
	g := New(7)
	for i := 0; i < 5000; i++ {
		x := float64(i) * 0.137
		y := float64(i%97) * 0.31
		z := float64(i%13) * -0.77
		v := g.Eval3(x, y, z)
		if v < -1 || v > 1 {
			t.Fatalf("Eval3(%f, %f, %f) = %f, outside [-1, 1]", x, y, z, v)
		}
	}
}

func TestEval3Continuous(t *testing.T) {
	g := New(99)
	const step = 1e-4

	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.05
		v0 := g.Eval3(x, 0.5, 1.5)
		v1 := g.Eval3(x+step, 0.5, 1.5)
		if math.Abs(v1-v0) > 0.01 {
			t.Errorf("jump of %f between x=%f and x+%g", math.Abs(v1-v0), x, step)
		}
	}
}

func TestSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)

	same := 0
	for i := 0; i < 50; i++ {
		x := float64(i)*0.37 + 0.1
		if a.Eval3(x, x*0.5, -x) == b.Eval3(x, x*0.5, -x) {
			same++
		}
	}
	if same == 50 {
		t.Error("different seeds produced identical fields")
	}
}
