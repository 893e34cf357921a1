// Package anim spins the camera, screen and light around the torus.
package anim

import (
	"math"

	"donut/torus/linalg"
	"donut/torus/shader"
)

const (
	// ScreenDistance is how far the screen sits in front of the torus
	// center; the camera is one unit further back.
	ScreenDistance = 1.2

	StepZ = math.Pi / 300
	StepY = math.Pi / 60

	// CellAspect values for the output surface: terminal cells are about
	// twice as tall as they are wide.
	TerminalCell = 0.5
	PixelCell    = 1.0
)

// DefaultLight sits above and behind the camera.
var DefaultLight = linalg.V3(0, 30, -30)

var (
	axisY = linalg.V3(0, 1, 0)
	axisZ = linalg.V3(0, 0, 1)
)

// Animator holds the rotation angles of the scene. The zero value is not
// usable; call New.
type Animator struct {
	ThetaZ float64
	ThetaY float64

	// CellAspect is the width/height ratio of one output cell. Zero
	// disables aspect correction and keeps the square screen.
	CellAspect float64

	light linalg.Vector3
}

func New(cellAspect float64) *Animator {
	return &Animator{CellAspect: cellAspect, light: DefaultLight}
}

// Step advances the rotation by one frame.
func (a *Animator) Step() {
	a.ThetaZ += StepZ
	a.ThetaY += StepY
}

func (a *Animator) Reset() {
	a.ThetaZ = 0
	a.ThetaY = 0
}

// Aspect is the factor applied to the screen's x extent for a w x h grid.
func (a *Animator) Aspect(w, h int) float64 {
	if a.CellAspect <= 0 || w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) * a.CellAspect / float64(h)
}

// Frame returns the rotated view for a w x h grid and the rotated light.
func (a *Animator) Frame(w, h int) (shader.View, linalg.Vector3) {
	sx := a.Aspect(w, h)
	z := -ScreenDistance
	v := shader.View{
		Camera:      a.rotate(linalg.V3(0, 0, -1-ScreenDistance)),
		TopLeft:     a.rotate(linalg.V3(-sx, 1, z)),
		TopRight:    a.rotate(linalg.V3(sx, 1, z)),
		BottomLeft:  a.rotate(linalg.V3(-sx, -1, z)),
		BottomRight: a.rotate(linalg.V3(sx, -1, z)),
		Width:       w,
		Height:      h,
	}
	return v, a.rotate(a.light)
}

// rotate turns p about +z by ThetaZ, then carries +x toward +z by ThetaY,
// which is a right-handed turn by -ThetaY about +y.
func (a *Animator) rotate(p linalg.Vector3) linalg.Vector3 {
	return p.Rotate(axisZ, a.ThetaZ).Rotate(axisY, -a.ThetaY)
}
