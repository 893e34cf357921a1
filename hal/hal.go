package hal

import "errors"

// Logger writes newline-delimited log lines.
type Logger interface {
	WriteLineString(s string)
	WriteLineBytes(b []byte)
}

// ErrStop is returned by an app step to end the runner cleanly.
var ErrStop = errors.New("stop")

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a simple pixel buffer plus a "present" hook.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// Cell is one character cell of a text console.
type Cell struct {
	Rune rune
	// Level is a gray level in [0, Levels()); 0 is the default color.
	Level int
	// Block paints Level as the background behind a blank cell.
	Block bool
}

// Console is a fixed grid of character cells.
type Console interface {
	Size() (cols, rows int)
	// Levels is the number of gray levels the console can show, or 0 when
	// it only shows runes.
	Levels() int
	Clear()
	SetCell(col, row int, c Cell)
	Flush() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyTab
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
}

// Time provides a base tick stream.
//
// Host runners tick once per elapsed millisecond.
type Time interface {
	Ticks() <-chan uint64
}

// HAL is everything an app may touch. Display and Console are nil when the
// runner has no such surface.
type HAL interface {
	Logger() Logger
	Display() Display
	Console() Console
	Input() Input
	Time() Time
}
