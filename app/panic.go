package app

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"donut/hal"

	"tinygo.org/x/tinyfont"
)

// reportPanic logs a recovered render panic and, when there is a
// framebuffer, paints it as a white panic screen.
func reportPanic(h hal.HAL, value any, stack []byte) {
	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("donut panic: %v", value))
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			l.WriteLineString(line)
		}
	}

	disp := h.Display()
	if disp == nil {
		return
	}
	fb := disp.Framebuffer()
	if fb == nil {
		return
	}
	drawPanic(fb, value, stack)
}

func drawPanic(fb hal.Framebuffer, value any, stack []byte) {
	fb.ClearRGB(255, 255, 255)

	fw := int16(fontWidth())
	if fw <= 0 || consoleFontHeight <= 0 {
		_ = fb.Present()
		return
	}

	lines := []string{
		"donut panic:",
		fmt.Sprintf("panic: %v", value),
		"press q to quit",
	}
	if len(stack) > 0 {
		lines = append(lines, "stack:")
		for _, line := range strings.Split(string(stack), "\n") {
			if line == "" {
				continue
			}
			lines = append(lines, line)
		}
	} else {
		lines = append(lines, "stack: unavailable")
	}

	d := newFBDisplay(fb)
	fg := color.RGBA{R: 0, G: 0, B: 0, A: 255}

	cols := int16(fb.Width()) / fw
	if cols <= 0 {
		cols = 1
	}
	maxH := int16(fb.Height())

	y := int16(0)
	for _, line := range lines {
		for len(line) > 0 {
			if y+consoleFontHeight > maxH {
				_ = fb.Present()
				return
			}
			chunk, rest := takeRunes(line, cols)
			drawTextLine(d, fw, 0, y, chunk, fg)
			y += consoleFontHeight
			line = strings.TrimLeft(rest, " \t")
		}
	}
	_ = fb.Present()
}

func drawTextLine(d *fbDisplay, fw, x0, y0 int16, s string, fg color.RGBA) {
	x := x0
	for _, r := range s {
		tinyfont.DrawChar(d, consoleFont, x, y0+consoleFontOffset, r, fg)
		x += fw
	}
}

// takeRunes splits s after its first n runes.
func takeRunes(s string, n int16) (prefix, rest string) {
	if n <= 0 || s == "" {
		return "", s
	}
	if int64(len(s)) <= int64(n) {
		return s, ""
	}
	var i int
	var count int16
	for i < len(s) && count < n {
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		count++
	}
	if i >= len(s) {
		return s, ""
	}
	return s[:i], s[i:]
}
