package hal

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/nsf/termbox-go"
)

func TestWriterConsoleFlush(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriterConsole(&buf, 3, 2, true)
	c.SetCell(0, 0, Cell{Rune: '@'})
	c.SetCell(2, 1, Cell{Rune: '.', Level: 7, Block: true})
	c.SetCell(5, 5, Cell{Rune: 'x'})

	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "\x1b[H@  \n  .\n"
	if got := buf.String(); got != want {
		t.Fatalf("output=%q want=%q", got, want)
	}

	buf.Reset()
	c.Clear()
	if err := c.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	if got := buf.String(); got != "\x1b[H   \n   \n" {
		t.Fatalf("after Clear=%q", got)
	}
	if c.Levels() != 0 {
		t.Fatalf("Levels=%d want=0", c.Levels())
	}
}

func TestRunHeadlessStops(t *testing.T) {
	var out, logs bytes.Buffer
	steps := 0
	err := RunHeadless(context.Background(), func(h HAL) func() error {
		if h.Display() != nil {
			t.Fatalf("headless display should be nil")
		}
		con := h.Console()
		if cols, rows := con.Size(); cols != 4 || rows != 2 {
			t.Fatalf("console size=%dx%d", cols, rows)
		}
		h.Logger().WriteLineString("started")
		return func() error {
			steps++
			con.SetCell(0, 0, Cell{Rune: '#'})
			if err := con.Flush(); err != nil {
				return err
			}
			if steps == 3 {
				return ErrStop
			}
			return nil
		}
	}, HeadlessConfig{Hz: 1000, Cols: 4, Rows: 2, Out: &out, Log: &logs, NoHome: true})
	if err != nil {
		t.Fatalf("RunHeadless: %v", err)
	}
	if steps != 3 {
		t.Fatalf("steps=%d want=3", steps)
	}
	if got := strings.Count(out.String(), "#   \n    \n"); got != 3 {
		t.Fatalf("frames=%d want=3 (%q)", got, out.String())
	}
	if logs.String() != "started\n" {
		t.Fatalf("log=%q", logs.String())
	}
}

func TestRunHeadlessTickLimitAndErrors(t *testing.T) {
	var out bytes.Buffer
	err := RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return nil }
	}, HeadlessConfig{Hz: 1000, Ticks: 5, Out: &out})
	if err != nil {
		t.Fatalf("tick limit: %v", err)
	}

	boom := errors.New("boom")
	err = RunHeadless(context.Background(), func(HAL) func() error {
		return func() error { return boom }
	}, HeadlessConfig{Hz: 1000, Out: &out})
	if !errors.Is(err, boom) {
		t.Fatalf("err=%v want=%v", err, boom)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err = RunHeadless(ctx, func(HAL) func() error { return nil }, HeadlessConfig{Out: &out})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v want=context.Canceled", err)
	}
}

func TestHostTimeTicksPerMillisecond(t *testing.T) {
	now := time.Unix(100, 0)
	ht := newHostTime()
	ht.now = func() time.Time { return now }

	ht.step(1)
	now = now.Add(2500 * time.Microsecond)
	ht.step(1)
	now = now.Add(600 * time.Microsecond)
	ht.step(1)

	var last uint64
	n := 0
	for {
		select {
		case seq := <-ht.Ticks():
			last = seq
			n++
			continue
		default:
		}
		break
	}
	// 1 initial tick, then 2ms, then 3.1ms total leaves one more.
	if n != 4 || last != 4 {
		t.Fatalf("ticks=%d last=%d want=4/4", n, last)
	}
}

func TestKeyboardEmitDropsWhenFull(t *testing.T) {
	k := newHostKeyboard()
	for i := 0; i < cap(k.ch)+10; i++ {
		k.emit(KeyEvent{Press: true, Rune: 'a'})
	}
	if len(k.ch) != cap(k.ch) {
		t.Fatalf("queued=%d want=%d", len(k.ch), cap(k.ch))
	}
}

func TestTermKeyEvent(t *testing.T) {
	tests := []struct {
		ev   termbox.Event
		want KeyEvent
	}{
		{termbox.Event{Type: termbox.EventKey, Ch: 'q'}, KeyEvent{Press: true, Rune: 'q'}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEsc}, KeyEvent{Code: KeyEscape, Press: true}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyEnter}, KeyEvent{Code: KeyEnter, Press: true}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeySpace}, KeyEvent{Press: true, Rune: ' '}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyCtrlC}, KeyEvent{Press: true, Rune: 0x03}},
		{termbox.Event{Type: termbox.EventKey, Key: termbox.KeyF5}, KeyEvent{Code: KeyUnknown, Press: true}},
	}
	for _, tt := range tests {
		if got := termKeyEvent(tt.ev); got != tt.want {
			t.Fatalf("termKeyEvent(%+v)=%+v want=%+v", tt.ev, got, tt.want)
		}
	}
}

func TestTermGrayPalette(t *testing.T) {
	c := &termConsole{levels: termGrayLevels}
	if c.Levels() != 27 {
		t.Fatalf("Levels=%d want=27", c.Levels())
	}

	tests := []struct {
		cell   Cell
		ch     rune
		fg, bg termbox.Attribute
	}{
		{Cell{Rune: ' '}, ' ', termbox.ColorDefault, termbox.ColorDefault},
		{Cell{Rune: '.', Level: 1}, '.', 1, termbox.ColorDefault},
		{Cell{Rune: '@', Level: 26}, '@', 26, termbox.ColorDefault},
		{Cell{Rune: '@', Level: 40}, '@', 26, termbox.ColorDefault},
		{Cell{Rune: '#', Level: 26, Block: true}, ' ', termbox.ColorDefault, 26},
	}
	for _, tt := range tests {
		ch, fg, bg := c.cellAttrs(tt.cell)
		if ch != tt.ch || fg != tt.fg || bg != tt.bg {
			t.Fatalf("cellAttrs(%+v)=%q,%d,%d want=%q,%d,%d", tt.cell, ch, fg, bg, tt.ch, tt.fg, tt.bg)
		}
	}

	color := &termConsole{}
	if _, fg, _ := color.cellAttrs(Cell{Rune: '@', Level: 26}); fg != termbox.ColorDefault {
		t.Fatalf("color mode fg=%d want default", fg)
	}
}

func TestRGB565RoundTrip(t *testing.T) {
	for _, c := range [][3]uint8{{0, 0, 0}, {255, 255, 255}, {255, 0, 0}, {0, 255, 0}, {0, 0, 255}} {
		r, g, b := RGB888From565(RGB565(c[0], c[1], c[2]))
		if r != c[0] || g != c[1] || b != c[2] {
			t.Fatalf("round trip %v -> %d,%d,%d", c, r, g, b)
		}
	}
	if got := RGB565(255, 255, 255); got != 0xFFFF {
		t.Fatalf("white=%#x", got)
	}
}

func TestFramebufferClearAndSnapshot(t *testing.T) {
	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(255, 0, 0)
	dst := make([]byte, 2*2*4)
	fb.snapshotRGBA(dst)
	for i := 0; i < len(dst); i += 4 {
		if dst[i] != 255 || dst[i+1] != 0 || dst[i+2] != 0 || dst[i+3] != 255 {
			t.Fatalf("pixel %d=%v", i/4, dst[i:i+4])
		}
	}
}

func TestLoggerLines(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(&buf)
	l.WriteLineString("a")
	l.WriteLineBytes([]byte("b"))
	if buf.String() != "a\nb\n" {
		t.Fatalf("log=%q", buf.String())
	}
}
