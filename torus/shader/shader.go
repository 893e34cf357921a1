package shader

import (
	"fmt"

	"donut/torus/linalg"
	"donut/torus/quartic"

	"golang.org/x/sync/errgroup"
)

// Renderer shades frames. The zero value is ready to use: it solves with
// quartic.Solve on the calling goroutine.
//
// Create it once and reuse it; it keeps no state between frames.
type Renderer struct {
	// Solver finds the quartic roots. nil selects quartic.Solve.
	Solver quartic.Solver

	// Workers is the number of goroutines sharing the rows of a frame.
	// Values <= 1 render on the calling goroutine.
	Workers int
}

func NewRenderer(solver quartic.Solver, workers int) *Renderer {
	return &Renderer{Solver: solver, Workers: workers}
}

func (r *Renderer) solver() quartic.Solver {
	if r == nil || r.Solver == nil {
		return quartic.Solve
	}
	return r.Solver
}

// Render fills dst with one frame. dst is resized to the view's grid and
// every cell is written; the renderer only holds it for the call.
func (r *Renderer) Render(dst *Frame, t Torus, v View, light linalg.Vector3) error {
	if err := t.Validate(); err != nil {
		return err
	}
	if err := v.Validate(); err != nil {
		return err
	}
	if !light.IsFinite() {
		return fmt.Errorf("%w: non-finite light %v", ErrInvalidView, light)
	}
	if dst == nil {
		return fmt.Errorf("%w: nil frame", ErrInvalidView)
	}
	dst.Reset(v.Width, v.Height)

	workers := 1
	if r != nil && r.Workers > 1 {
		workers = r.Workers
	}
	if workers > v.Height {
		workers = v.Height
	}
	if workers == 1 {
		r.renderRows(dst, t, v, light, 0, v.Height)
		return nil
	}

	// Bands of whole rows; each goroutine owns the cells of its band.
	bands := workers * 4
	if bands > v.Height {
		bands = v.Height
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < bands; i++ {
		lo := i * v.Height / bands
		hi := (i + 1) * v.Height / bands
		g.Go(func() error {
			r.renderRows(dst, t, v, light, lo, hi)
			return nil
		})
	}
	return g.Wait()
}

func (r *Renderer) renderRows(dst *Frame, t Torus, v View, light linalg.Vector3, lo, hi int) {
	solve := r.solver()
	for row := lo; row < hi; row++ {
		out := dst.Row(row)
		for col := range out {
			out[col] = shade(solve, t, v.Camera, v.ScreenPoint(row, col), light)
		}
	}
}

// Trace returns the intersection nearest to eye of the ray from eye
// through screen.
func (r *Renderer) Trace(t Torus, eye, screen linalg.Vector3) (Hit, bool) {
	return trace(r.solver(), t, eye, eye.Sub(screen))
}

// ShadePixel returns the brightness of the ray from eye through screen.
func (r *Renderer) ShadePixel(t Torus, eye, screen, light linalg.Vector3) byte {
	return shade(r.solver(), t, eye, screen, light)
}

func shade(solve quartic.Solver, t Torus, eye, screen, light linalg.Vector3) byte {
	hit, ok := trace(solve, t, eye, eye.Sub(screen))
	if !ok {
		return 0
	}
	return Brightness(t, hit.Point, light)
}

// Brightness converts the Lambert term at surface point p into a byte in
// [1, 255]. A point whose normal or light direction is undefined (zero
// length) is reported as lit at the minimum level.
func Brightness(t Torus, p, light linalg.Vector3) byte {
	center, ok := t.TubeCenter(p)
	if !ok {
		return 1
	}
	normal := p.Sub(center)
	nl := normal.Length()
	toLight := light.Sub(p)
	ll := toLight.Length()
	if nl == 0 || ll == 0 {
		return 1
	}

	angle := normal.Div(nl).Dot(toLight.Div(ll))
	// NaN fails the comparison as well.
	if !(angle > 0) {
		angle = 0
	}
	if angle > 1 {
		angle = 1
	}
	b := byte(angle * 255.99)
	if b == 0 {
		return 1
	}
	return b
}

// Render is the allocating form of (*Renderer).Render with the default
// solver.
func Render(inner, outer float64, v View, light linalg.Vector3) (*Frame, error) {
	f := &Frame{}
	var r Renderer
	if err := r.Render(f, Torus{Inner: inner, Outer: outer}, v, light); err != nil {
		return nil, err
	}
	return f, nil
}

// ShadePixel shades a single ray with the default solver. Inputs are not
// validated.
func ShadePixel(inner, outer float64, eye, screen, light linalg.Vector3) byte {
	return shade(quartic.Solve, Torus{Inner: inner, Outer: outer}, eye, screen, light)
}
