package linalg

import (
	"math"
	"testing"
)

func near(a, b Vector3, tol float64) bool {
	return math.Abs(a.X-b.X) <= tol && math.Abs(a.Y-b.Y) <= tol && math.Abs(a.Z-b.Z) <= tol
}

func TestArithmetic(t *testing.T) {
	a := V3(1, 2, 3)
	b := V3(-4, 0.5, 2)

	if got, want := a.Add(b), V3(-3, 2.5, 5); got != want {
		t.Fatalf("Add=%v want=%v", got, want)
	}
	if got, want := a.Sub(b), V3(5, 1.5, 1); got != want {
		t.Fatalf("Sub=%v want=%v", got, want)
	}
	if got, want := a.Mul(2), V3(2, 4, 6); got != want {
		t.Fatalf("Mul=%v want=%v", got, want)
	}
	if got, want := a.Div(2), V3(0.5, 1, 1.5); got != want {
		t.Fatalf("Div=%v want=%v", got, want)
	}
	if got := a.Dot(b); got != 3 {
		t.Fatalf("Dot=%v want=3", got)
	}
	if a != V3(1, 2, 3) {
		t.Fatalf("receiver mutated: %v", a)
	}
}

func TestLengthAndNormalize(t *testing.T) {
	v := V3(3, 4, 12)
	if got := v.Length(); got != 13 {
		t.Fatalf("Length=%v want=13", got)
	}
	n := v.Normalize()
	if math.Abs(n.Length()-1) > 1e-12 {
		t.Fatalf("Normalize length=%v", n.Length())
	}
	if (Vector3{}).Length() != 0 {
		t.Fatalf("zero vector length")
	}
}

func TestSwapXY(t *testing.T) {
	if got, want := V3(1, 2, 3).SwapXY(), V3(2, 1, 3); got != want {
		t.Fatalf("SwapXY=%v want=%v", got, want)
	}
}

func TestRotations(t *testing.T) {
	const tol = 1e-12
	half := math.Pi / 2

	if got := V3(1, 0, 0).RotateZ(half); !near(got, V3(0, 1, 0), tol) {
		t.Fatalf("RotateZ(x)=%v", got)
	}
	if got := V3(1, 0, 0).RotateY(half); !near(got, V3(0, 0, 1), tol) {
		t.Fatalf("RotateY(x)=%v", got)
	}
	if got := V3(0, 7, 0).RotateY(1.3); !near(got, V3(0, 7, 0), tol) {
		t.Fatalf("RotateY changed y axis: %v", got)
	}

	v := V3(0.3, -1.2, 2.5)
	if got := v.RotateZ(0.7).Length(); math.Abs(got-v.Length()) > tol {
		t.Fatalf("RotateZ length=%v want=%v", got, v.Length())
	}
}

func TestRotateMatchesAxisRotations(t *testing.T) {
	const tol = 1e-9
	v := V3(0.3, -1.2, 2.5)
	for _, theta := range []float64{0, 0.1, 1, math.Pi, -2.2} {
		if got, want := v.Rotate(V3(0, 0, 1), theta), v.RotateZ(theta); !near(got, want, tol) {
			t.Fatalf("theta=%v Rotate(z)=%v RotateZ=%v", theta, got, want)
		}
		// RotateY turns +x toward +z, which is a right-handed turn by -theta.
		if got, want := v.Rotate(V3(0, 2, 0), -theta), v.RotateY(theta); !near(got, want, tol) {
			t.Fatalf("theta=%v Rotate(y)=%v RotateY=%v", theta, got, want)
		}
	}
}

func TestIsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Fatalf("finite vector reported non-finite")
	}
	if V3(1, math.NaN(), 3).IsFinite() || V3(math.Inf(1), 0, 0).IsFinite() {
		t.Fatalf("non-finite vector reported finite")
	}
}
