package ascii

import (
	"errors"
	"testing"

	"donut/torus/shader"
)

func TestGlyphIndex(t *testing.T) {
	r := MustRamp(DefaultRamp)
	n := r.Len()

	if got := r.Glyph(0); got != ' ' {
		t.Fatalf("Glyph(0)=%q want ' '", got)
	}
	if got := r.Glyph(255); got != '@' {
		t.Fatalf("Glyph(255)=%q want '@'", got)
	}
	for b := 0; b < 256; b++ {
		want := []rune(DefaultRamp)[b*n/256]
		if got := r.Glyph(byte(b)); got != want {
			t.Fatalf("Glyph(%d)=%q want %q", b, got, want)
		}
	}
}

func TestGlyphMonotonic(t *testing.T) {
	r := MustRamp("abcdefgh")
	prev := 'a'
	for b := 0; b < 256; b++ {
		g := r.Glyph(byte(b))
		if g < prev {
			t.Fatalf("Glyph(%d)=%q after %q", b, g, prev)
		}
		prev = g
	}
}

func TestNewRampEmpty(t *testing.T) {
	if _, err := NewRamp(""); !errors.Is(err, ErrEmptyRamp) {
		t.Fatalf("err=%v want ErrEmptyRamp", err)
	}
	var zero Ramp
	if got := zero.Glyph(200); got != ' ' {
		t.Fatalf("zero ramp Glyph=%q", got)
	}
}

func TestText(t *testing.T) {
	r := MustRamp(" ░▒▓█")
	f := shader.NewFrame(3, 2)
	copy(f.Pix, []byte{0, 60, 255, 255, 120, 0})

	want := " ░█\n█▒ "
	if got := r.text(f); got != want {
		t.Fatalf("text=%q want %q", got, want)
	}
}

func TestLevel(t *testing.T) {
	tests := []struct {
		b    byte
		n    int
		want int
	}{
		{0, 24, 0},
		{1, 24, 1},
		{255, 24, 23},
		{128, 3, 1},
		{200, 1, 0},
	}
	for _, tt := range tests {
		if got := Level(tt.b, tt.n); got != tt.want {
			t.Fatalf("Level(%d,%d)=%d want %d", tt.b, tt.n, got, tt.want)
		}
	}
}
