package shader

import (
	"errors"
	"fmt"
	"math"

	"donut/torus/linalg"
)

var (
	ErrInvalidTorus  = errors.New("invalid torus")
	ErrInvalidView   = errors.New("invalid view")
	ErrDegenerateRay = errors.New("degenerate ray")
)

// Torus is described by its inner and outer radius; the tube center path
// and tube radius are derived.
type Torus struct {
	Inner float64
	Outer float64
}

// PathRadius is the radius of the circle traced by the tube's center.
func (t Torus) PathRadius() float64 { return (t.Inner + t.Outer) / 2 }

// TubeRadius is the radius of the torus cross-section.
func (t Torus) TubeRadius() float64 { return t.PathRadius() - t.Inner }

// Tolerance is the largest residual accepted for an intersection.
func (t Torus) Tolerance() float64 { return t.TubeRadius() / 20 }

func (t Torus) Validate() error {
	if math.IsNaN(t.Inner) || math.IsNaN(t.Outer) || math.IsInf(t.Inner, 0) || math.IsInf(t.Outer, 0) {
		return fmt.Errorf("%w: non-finite radius (inner=%v outer=%v)", ErrInvalidTorus, t.Inner, t.Outer)
	}
	if t.Inner <= 0 {
		return fmt.Errorf("%w: inner radius %v must be > 0", ErrInvalidTorus, t.Inner)
	}
	if t.Outer < t.Inner {
		return fmt.Errorf("%w: outer radius %v < inner radius %v", ErrInvalidTorus, t.Outer, t.Inner)
	}
	return nil
}

// Residual measures how far p is from the torus surface:
//
//	| sqrt(z^2 + (R - sqrt(x^2 + y^2))^2) - r |
func (t Torus) Residual(p linalg.Vector3) float64 {
	d1 := math.Abs(p.Z)
	d2 := math.Abs(t.PathRadius() - math.Sqrt(p.X*p.X+p.Y*p.Y))
	return math.Abs(math.Sqrt(d1*d1+d2*d2) - t.TubeRadius())
}

// TubeCenter returns the point of the tube's center circle nearest to p.
// ok is false when p lies on the z axis, where that point is undefined.
func (t Torus) TubeCenter(p linalg.Vector3) (c linalg.Vector3, ok bool) {
	flat := linalg.V3(p.X, p.Y, 0)
	l := flat.Length()
	if l == 0 {
		return linalg.Vector3{}, false
	}
	return flat.Mul(t.PathRadius() / l), true
}
