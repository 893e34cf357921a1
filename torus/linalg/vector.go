// Package linalg holds the 3D vector arithmetic used by the torus shader and
// the animation driver.
package linalg

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vector3 is an immutable 3D vector. Every method returns a new value.
type Vector3 struct {
	X, Y, Z float64
}

func V3(x, y, z float64) Vector3 { return Vector3{X: x, Y: y, Z: z} }

func (v Vector3) Add(o Vector3) Vector3 { return Vector3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vector3) Sub(o Vector3) Vector3 { return Vector3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vector3) Mul(s float64) Vector3 { return Vector3{v.X * s, v.Y * s, v.Z * s} }

// Div divides every component by s. s == 0 yields Inf/NaN components.
func (v Vector3) Div(s float64) Vector3 { return Vector3{v.X / s, v.Y / s, v.Z / s} }

func (v Vector3) Dot(o Vector3) float64 { return v.X*o.X + v.Y*o.Y + v.Z*o.Z }

func (v Vector3) Length() float64 {
	return math.Sqrt(v.X*v.X + v.Y*v.Y + v.Z*v.Z)
}

// Normalize returns v scaled to unit length. The zero vector is not guarded.
func (v Vector3) Normalize() Vector3 { return v.Div(v.Length()) }

// SwapXY exchanges the x and y components.
func (v Vector3) SwapXY() Vector3 { return Vector3{X: v.Y, Y: v.X, Z: v.Z} }

// RotateY rotates v about the y axis, carrying +x toward +z.
func (v Vector3) RotateY(theta float64) Vector3 {
	s, c := math.Sincos(theta)
	return Vector3{
		X: v.X*c - v.Z*s,
		Y: v.Y,
		Z: v.X*s + v.Z*c,
	}
}

// RotateZ rotates v about the z axis, carrying +x toward +y.
func (v Vector3) RotateZ(theta float64) Vector3 {
	s, c := math.Sincos(theta)
	return Vector3{
		X: v.X*c - v.Y*s,
		Y: v.X*s + v.Y*c,
		Z: v.Z,
	}
}

// Rotate rotates v by theta (right-handed) about an arbitrary axis.
// The axis does not need to be normalized but must not be zero.
func (v Vector3) Rotate(axis Vector3, theta float64) Vector3 {
	rot := r3.NewRotation(theta, axis.R3())
	return FromR3(rot.Rotate(v.R3()))
}

func (v Vector3) IsFinite() bool {
	return isFinite(v.X) && isFinite(v.Y) && isFinite(v.Z)
}

func (v Vector3) R3() r3.Vec { return r3.Vec{X: v.X, Y: v.Y, Z: v.Z} }

func FromR3(p r3.Vec) Vector3 { return Vector3{X: p.X, Y: p.Y, Z: p.Z} }

func isFinite(f float64) bool { return !math.IsNaN(f) && !math.IsInf(f, 0) }
