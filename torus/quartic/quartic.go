// Package quartic finds the real roots of polynomials up to degree four.
//
// Two solvers share one contract: given the coefficients of
//
//	a*x^4 + b*x^3 + c*x^2 + d*x + e
//
// they return every distinct real root in ascending order (0 to 4 values).
// Repeated roots are reported once. A zero leading coefficient degrades to
// the lower-degree equation.
package quartic

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Solver is the narrow interface the shader depends on.
type Solver func(a, b, c, d, e float64) []float64

var ErrUnknownSolver = errors.New("unknown quartic solver")

// Names lists the solvers accepted by ByName.
var Names = []string{"ferrari", "companion"}

// ByName returns the solver registered under name.
func ByName(name string) (Solver, error) {
	switch name {
	case "", "ferrari":
		return Solve, nil
	case "companion":
		return Companion, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSolver, name)
}

const (
	// Relative distance under which two roots are reported as one.
	dupTol = 1e-9
	// Relative slack for discriminants that rounding pushed just below zero.
	discTol = 1e-12
	// Newton polishing steps per root.
	polishIter = 4
)

// Solve is the closed-form (Ferrari) quartic solver.
func Solve(a, b, c, d, e float64) []float64 {
	if !finite(a, b, c, d, e) {
		return nil
	}
	if a == 0 {
		return Cubic(b, c, d, e)
	}

	// Monic form x^4 + B x^3 + C x^2 + D x + E.
	B, C, D, E := b/a, c/a, d/a, e/a

	// Depressed form y^4 + p y^2 + q y + r with x = y - B/4.
	B2 := B * B
	p := C - 3*B2/8
	q := D - B*C/2 + B2*B/8
	r := E - B*D/4 + B2*C/16 - 3*B2*B2/256

	var ys []float64
	scale := math.Max(1, math.Max(math.Abs(p), math.Max(math.Abs(r), math.Abs(B2))))
	if math.Abs(q) <= 1e-14*scale {
		ys = biquadratic(p, r)
	} else {
		ys = ferrari(p, q, r)
	}

	coeffs := [5]float64{E, D, C, B, 1}
	out := make([]float64, 0, len(ys))
	for _, y := range ys {
		x := polish(coeffs[:], y-B/4)
		if !math.IsNaN(x) && !math.IsInf(x, 0) {
			out = append(out, x)
		}
	}
	return normalizeRoots(out)
}

// biquadratic solves y^4 + p y^2 + r = 0.
func biquadratic(p, r float64) []float64 {
	var ys []float64
	for _, z := range Quadratic(1, p, r) {
		switch {
		case z > 0:
			s := math.Sqrt(z)
			ys = append(ys, -s, s)
		case z == 0:
			ys = append(ys, 0)
		}
	}
	return ys
}

// ferrari solves y^4 + p y^2 + q y + r = 0 for q != 0 by splitting it into
// two quadratics through a positive root of the resolvent cubic
//
//	m^3 + p m^2 + (p^2/4 - r) m - q^2/8 = 0.
func ferrari(p, q, r float64) []float64 {
	res := Cubic(1, p, p*p/4-r, -q*q/8)
	if len(res) == 0 {
		return nil
	}
	m := res[len(res)-1]
	if m <= 0 {
		return biquadratic(p, r)
	}
	s := math.Sqrt(2 * m)
	t := q / (2 * s)

	ys := Quadratic(1, -s, p/2+m+t)
	ys = append(ys, Quadratic(1, s, p/2+m-t)...)
	return ys
}

// Cubic returns the real roots of a*x^3 + b*x^2 + c*x + d.
func Cubic(a, b, c, d float64) []float64 {
	if !finite(a, b, c, d) {
		return nil
	}
	if a == 0 {
		return Quadratic(b, c, d)
	}
	A, B, C := b/a, c/a, d/a

	// Depressed form t^3 + p t + q with x = t - A/3.
	p := B - A*A/3
	q := 2*A*A*A/27 - A*B/3 + C
	shift := A / 3

	h := q / 2
	k := p / 3
	disc := h*h + k*k*k
	scale := math.Max(h*h, math.Abs(k*k*k))

	var ts []float64
	switch {
	case math.Abs(disc) <= discTol*scale || (h == 0 && k == 0):
		if k == 0 {
			ts = []float64{0}
		} else {
			// One simple and one double root.
			ts = []float64{3 * q / p, -3 * q / (2 * p)}
		}
	case disc > 0:
		sq := math.Sqrt(disc)
		ts = []float64{math.Cbrt(-h+sq) + math.Cbrt(-h-sq)}
	default:
		rr := 2 * math.Sqrt(-k)
		arg := clamp(3*q/(2*p)*math.Sqrt(-3/p), -1, 1)
		phi := math.Acos(arg) / 3
		ts = []float64{
			rr * math.Cos(phi),
			rr * math.Cos(phi-2*math.Pi/3),
			rr * math.Cos(phi-4*math.Pi/3),
		}
	}

	coeffs := [4]float64{C, B, A, 1}
	out := make([]float64, 0, len(ts))
	for _, t := range ts {
		out = append(out, polish(coeffs[:], t-shift))
	}
	return normalizeRoots(out)
}

// Quadratic returns the real roots of a*x^2 + b*x + c.
func Quadratic(a, b, c float64) []float64 {
	if !finite(a, b, c) {
		return nil
	}
	if a == 0 {
		if b == 0 {
			return nil
		}
		return []float64{-c / b}
	}
	disc := b*b - 4*a*c
	if disc < 0 {
		if disc < -discTol*math.Max(b*b, math.Abs(4*a*c)) {
			return nil
		}
		disc = 0
	}
	if disc == 0 {
		return []float64{-b / (2 * a)}
	}

	// Avoid cancellation between -b and sqrt(disc).
	sq := math.Sqrt(disc)
	var qq float64
	if b >= 0 {
		qq = -0.5 * (b + sq)
	} else {
		qq = -0.5 * (b - sq)
	}
	x1 := qq / a
	if qq == 0 {
		return []float64{x1}
	}
	x2 := c / qq
	return normalizeRoots([]float64{x1, x2})
}

// polish refines x with Newton steps on the polynomial with ascending
// coefficients, keeping a step only when it lowers |f|.
func polish(coeffs []float64, x float64) float64 {
	fx, dfx := evalDeriv(coeffs, x)
	for i := 0; i < polishIter; i++ {
		if fx == 0 || dfx == 0 {
			break
		}
		xn := x - fx/dfx
		fn, dfn := evalDeriv(coeffs, xn)
		if !(math.Abs(fn) < math.Abs(fx)) {
			break
		}
		x, fx, dfx = xn, fn, dfn
	}
	return x
}

// evalDeriv evaluates the polynomial and its derivative (Horner).
func evalDeriv(coeffs []float64, x float64) (f, df float64) {
	for i := len(coeffs) - 1; i >= 0; i-- {
		df = df*x + f
		f = f*x + coeffs[i]
	}
	return f, df
}

func normalizeRoots(xs []float64) []float64 {
	if len(xs) == 0 {
		return nil
	}
	sort.Float64s(xs)
	out := xs[:1]
	for _, x := range xs[1:] {
		last := out[len(out)-1]
		if math.Abs(x-last) <= dupTol*math.Max(1, math.Abs(x)) {
			continue
		}
		out = append(out, x)
	}
	return out
}

func finite(vs ...float64) bool {
	for _, v := range vs {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
