package quartic

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// Largest |imag| (relative to the root magnitude) still treated as real.
const imagTol = 1e-7

// Companion finds the roots as eigenvalues of the quartic's companion
// matrix. It is slower than Solve but does not branch on discriminants,
// which makes it a useful cross-check near repeated roots.
func Companion(a, b, c, d, e float64) []float64 {
	if !finite(a, b, c, d, e) {
		return nil
	}
	if a == 0 {
		return Cubic(b, c, d, e)
	}
	B, C, D, E := b/a, c/a, d/a, e/a

	m := mat.NewDense(4, 4, []float64{
		0, 0, 0, -E,
		1, 0, 0, -D,
		0, 1, 0, -C,
		0, 0, 1, -B,
	})

	var eig mat.Eigen
	if ok := eig.Factorize(m, mat.EigenNone); !ok {
		return nil
	}

	coeffs := [5]float64{E, D, C, B, 1}
	var out []float64
	for _, z := range eig.Values(nil) {
		re, im := real(z), imag(z)
		if math.Abs(im) > imagTol*math.Max(1, math.Abs(re)) {
			continue
		}
		x := polish(coeffs[:], re)
		if math.IsNaN(x) || math.IsInf(x, 0) {
			continue
		}
		out = append(out, x)
	}
	return normalizeRoots(out)
}
