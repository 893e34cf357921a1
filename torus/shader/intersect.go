package shader

import (
	"math"

	"donut/torus/linalg"
	"donut/torus/quartic"
)

// Param selects which ray coordinate is solved for.
type Param uint8

const (
	// ParamZ solves for z; x and y follow as affine functions of z.
	ParamZ Param = iota
	// ParamX solves for x; y and z follow as affine functions of x.
	ParamX
	// ParamSwapXY is ParamX with the x and y roles exchanged.
	ParamSwapXY

	numParams
)

func (p Param) String() string {
	switch p {
	case ParamZ:
		return "z"
	case ParamX:
		return "x"
	case ParamSwapXY:
		return "swap-xy"
	}
	return "unknown"
}

// Hit is an accepted intersection.
type Hit struct {
	Point    linalg.Vector3
	Param    Param
	Residual float64
}

// trace returns the nearest intersection of the ray through eye along
// -rayV (rayV = eye - screen) with t.
func trace(solve quartic.Solver, t Torus, eye, rayV linalg.Vector3) (Hit, bool) {
	best := Hit{Residual: math.Inf(1)}
	found := false
	for p := ParamZ; p < numParams; p++ {
		pt, ok := candidate(solve, p, t, eye, rayV)
		if !ok {
			continue
		}
		res := t.Residual(pt)
		if math.IsNaN(res) || res >= best.Residual {
			continue
		}
		best = Hit{Point: pt, Param: p, Residual: res}
		found = true
	}
	if !found || best.Residual > t.Tolerance() {
		return Hit{}, false
	}
	return best, true
}

func candidate(solve quartic.Solver, p Param, t Torus, eye, rayV linalg.Vector3) (linalg.Vector3, bool) {
	switch p {
	case ParamZ:
		return alongZ(solve, t, eye, rayV)
	case ParamX:
		return alongX(solve, t, eye, rayV)
	case ParamSwapXY:
		pt, ok := alongX(solve, t, eye.SwapXY(), rayV.SwapXY())
		return pt.SwapXY(), ok
	}
	return linalg.Vector3{}, false
}

// alongZ writes x = ax*z + bx, y = ay*z + by and solves
//
//	(x^2 + y^2 + z^2 + R^2 - r^2)^2 = 4 R^2 (x^2 + y^2)
//
// as a quartic in z.
func alongZ(solve quartic.Solver, t Torus, eye, rayV linalg.Vector3) (linalg.Vector3, bool) {
	if rayV.Z == 0 {
		return linalg.Vector3{}, false
	}
	R := t.PathRadius()
	r := t.TubeRadius()

	ax := rayV.X / rayV.Z
	bx := eye.X - ax*eye.Z
	ay := rayV.Y / rayV.Z
	by := eye.Y - ay*eye.Z

	c2l := ax*ax + ay*ay + 1
	c1l := 2 * (ax*bx + ay*by)
	c0l := bx*bx + by*by + R*R - r*r

	k := 4 * R * R
	c2r := k * (ax*ax + ay*ay)
	c1r := k * 2 * (ax*bx + ay*by)
	c0r := k * (bx*bx + by*by)

	z, ok := nearestRoot(solve(quarticCoeffs(c2l, c1l, c0l, c2r, c1r, c0r)), eye.Z, rayV.Z)
	if !ok {
		return linalg.Vector3{}, false
	}
	return linalg.V3(ax*z+bx, ay*z+by, z), true
}

// alongX writes y = ay*x + by, z = az*x + bz and solves the torus equation
// as a quartic in x.
func alongX(solve quartic.Solver, t Torus, eye, rayV linalg.Vector3) (linalg.Vector3, bool) {
	if rayV.X == 0 {
		return linalg.Vector3{}, false
	}
	R := t.PathRadius()
	r := t.TubeRadius()

	ay := rayV.Y / rayV.X
	by := eye.Y - ay*eye.X
	az := rayV.Z / rayV.X
	bz := eye.Z - az*eye.X

	c2l := 1 + ay*ay + az*az
	c1l := 2 * (ay*by + az*bz)
	c0l := by*by + bz*bz + R*R - r*r

	k := 4 * R * R
	c2r := k * (1 + ay*ay)
	c1r := k * 2 * ay * by
	c0r := k * by * by

	x, ok := nearestRoot(solve(quarticCoeffs(c2l, c1l, c0l, c2r, c1r, c0r)), eye.X, rayV.X)
	if !ok {
		return linalg.Vector3{}, false
	}
	return linalg.V3(x, ay*x+by, az*x+bz), true
}

// quarticCoeffs squares the left-hand quadratic and subtracts the
// right-hand one.
func quarticCoeffs(c2l, c1l, c0l, c2r, c1r, c0r float64) (a, b, c, d, e float64) {
	a = c2l * c2l
	b = 2 * c2l * c1l
	c = 2*c2l*c0l + c1l*c1l - c2r
	d = 2*c1l*c0l - c1r
	e = c0l*c0l - c0r
	return a, b, c, d, e
}

// nearestRoot keeps the roots on the side of the eye the ray travels to,
// i.e. sign(eye - root) == sign(rayV), and returns the one closest to eye.
func nearestRoot(roots []float64, eye, rayV float64) (float64, bool) {
	var (
		best  float64
		bestD = math.Inf(1)
		found bool
	)
	for _, root := range roots {
		d := eye - root
		if math.Signbit(d) != math.Signbit(rayV) {
			continue
		}
		if ad := math.Abs(d); ad < bestD {
			best, bestD, found = root, ad, true
		}
	}
	return best, found
}
