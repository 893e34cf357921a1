// Package ascii maps brightness bytes to text glyphs.
package ascii

import (
	"errors"
	"strings"
	"unicode/utf8"

	"donut/torus/shader"
)

// DefaultRamp runs from empty to dense, the classic donut ramp.
const DefaultRamp = " .,-~:;=!*#$@"

var ErrEmptyRamp = errors.New("empty glyph ramp")

// Ramp is an ordered glyph table, lowest brightness first.
type Ramp struct {
	glyphs []rune
}

func NewRamp(s string) (Ramp, error) {
	if s == "" {
		return Ramp{}, ErrEmptyRamp
	}
	return Ramp{glyphs: []rune(s)}, nil
}

// MustRamp is NewRamp for package-level tables.
func MustRamp(s string) Ramp {
	r, err := NewRamp(s)
	if err != nil {
		panic(err)
	}
	return r
}

func (r Ramp) Len() int { return len(r.glyphs) }

func (r Ramp) String() string { return string(r.glyphs) }

// Glyph returns the glyph for brightness b, indexed by b*len/256.
func (r Ramp) Glyph(b byte) rune {
	if len(r.glyphs) == 0 {
		return ' '
	}
	return r.glyphs[int(b)*len(r.glyphs)/256]
}

// AppendRow appends the glyphs of one frame row to dst as UTF-8.
func (r Ramp) AppendRow(dst []byte, row []byte) []byte {
	for _, b := range row {
		dst = utf8.AppendRune(dst, r.Glyph(b))
	}
	return dst
}

// text renders the whole frame, rows separated by '\n' with no trailing
// newline.
func (r Ramp) text(f *shader.Frame) string {
	var sb strings.Builder
	buf := make([]byte, 0, f.Width*utf8.UTFMax)
	for row := 0; row < f.Height; row++ {
		if row > 0 {
			sb.WriteByte('\n')
		}
		buf = r.AppendRow(buf[:0], f.Row(row))
		sb.Write(buf)
	}
	return sb.String()
}

// Level maps brightness onto n display levels: 0 stays 0 and any hit maps
// to [1, n-1].
func Level(b byte, n int) int {
	if b == 0 || n <= 1 {
		return 0
	}
	return 1 + (int(b)-1)*(n-1)/255
}
