package app

import (
	"donut/hal"

	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
	"tinygo.org/x/tinyterm"
)

var (
	consoleFont       = &proggy.TinySZ8pt7b
	consoleFontHeight = int16(11)
	consoleFontOffset = int16(8)
)

// textScreen draws whole frames of text onto the framebuffer through a
// tinyterm terminal. The terminal has no cursor addressing, so every frame
// starts from a fresh terminal on a cleared framebuffer.
type textScreen struct {
	fb hal.Framebuffer
	d  *fbDisplay
	t  *tinyterm.Terminal

	cols int
	rows int
	buf  []byte
}

func newTextScreen(fb hal.Framebuffer) *textScreen {
	s := &textScreen{fb: fb, d: newFBDisplay(fb)}
	cw := fontWidth()
	if cw > 0 {
		// Leave the last column free so a full row never wraps.
		s.cols = fb.Width()/cw - 1
	}
	s.rows = fb.Height() / int(consoleFontHeight)
	return s
}

func fontWidth() int {
	_, w := tinyfont.LineWidth(consoleFont, "0")
	return int(w)
}

// cellAspect is the width/height ratio of one text cell.
func (s *textScreen) cellAspect() float64 {
	return float64(fontWidth()) / float64(consoleFontHeight)
}

func (s *textScreen) Size() (cols, rows int) { return s.cols, s.rows }

func (s *textScreen) reset() {
	s.fb.ClearRGB(0, 0, 0)
	s.t = tinyterm.NewTerminal(s.d)
	s.t.Configure(&tinyterm.Config{
		Font:       consoleFont,
		FontHeight: consoleFontHeight,
		FontOffset: consoleFontOffset,
	})
}

// draw writes rows, one per terminal line, and presents the framebuffer.
func (s *textScreen) draw(rows [][]byte) error {
	s.reset()
	s.buf = s.buf[:0]
	for i, row := range rows {
		if i >= s.rows {
			break
		}
		if i > 0 {
			s.buf = append(s.buf, '\r', '\n')
		}
		if len(row) > s.cols {
			row = row[:s.cols]
		}
		s.buf = append(s.buf, row...)
	}
	if _, err := s.t.Write(s.buf); err != nil {
		return err
	}
	return s.d.Display()
}
