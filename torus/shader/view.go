package shader

import (
	"fmt"

	"donut/torus/linalg"
)

// View is the camera plus the screen quad it looks through, and the size of
// the output grid.
type View struct {
	Camera      linalg.Vector3
	TopLeft     linalg.Vector3
	TopRight    linalg.Vector3
	BottomLeft  linalg.Vector3
	BottomRight linalg.Vector3

	Width  int
	Height int
}

func (v View) Validate() error {
	if v.Width < 2 || v.Height < 2 {
		return fmt.Errorf("%w: grid %dx%d, need at least 2x2", ErrInvalidView, v.Width, v.Height)
	}
	corners := [...]linalg.Vector3{v.TopLeft, v.TopRight, v.BottomLeft, v.BottomRight}
	if !v.Camera.IsFinite() {
		return fmt.Errorf("%w: non-finite camera %v", ErrInvalidView, v.Camera)
	}
	for i, c := range corners {
		if !c.IsFinite() {
			return fmt.Errorf("%w: non-finite screen corner %d: %v", ErrInvalidView, i, c)
		}
		if c == v.Camera {
			return fmt.Errorf("%w: camera coincides with screen corner %d", ErrDegenerateRay, i)
		}
	}
	return nil
}

// ScreenPoint returns the screen-quad point for a grid cell.
func (v View) ScreenPoint(row, col int) linalg.Vector3 {
	bottom := float64(row) / float64(v.Height-1)
	top := 1 - bottom
	right := float64(col) / float64(v.Width-1)
	left := 1 - right

	return v.TopLeft.Mul(top * left).
		Add(v.TopRight.Mul(top * right)).
		Add(v.BottomLeft.Mul(bottom * left)).
		Add(v.BottomRight.Mul(bottom * right))
}

// Frame is a row-major grid of brightness bytes.
type Frame struct {
	Width  int
	Height int
	Pix    []byte
}

func NewFrame(w, h int) *Frame {
	f := &Frame{}
	f.Reset(w, h)
	return f
}

// Reset resizes f to w*h cells, reusing its storage when large enough.
// Cell contents are unspecified afterwards.
func (f *Frame) Reset(w, h int) {
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	f.Width = w
	f.Height = h
	if cap(f.Pix) < w*h {
		f.Pix = make([]byte, w*h)
	} else {
		f.Pix = f.Pix[:w*h]
	}
}

func (f *Frame) At(row, col int) byte { return f.Pix[row*f.Width+col] }

func (f *Frame) Set(row, col int, b byte) { f.Pix[row*f.Width+col] = b }

// Row returns the cells of one row; the slice aliases f.Pix.
func (f *Frame) Row(row int) []byte {
	return f.Pix[row*f.Width : (row+1)*f.Width]
}

// Lit counts the cells with an intersection.
func (f *Frame) Lit() int {
	n := 0
	for _, b := range f.Pix {
		if b != 0 {
			n++
		}
	}
	return n
}
