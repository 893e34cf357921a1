package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/nsf/termbox-go"
)

// termGrayLevels covers termbox's grayscale palette: 0 is the default color,
// 1..26 run from black to white.
const termGrayLevels = 27

// TerminalConfig controls the full-screen terminal runner.
type TerminalConfig struct {
	Hz    int
	Ticks uint64
	// Log receives log lines; the terminal itself owns stdout.
	Log io.Writer
	// Color disables the grayscale palette.
	Color bool
}

// RunTerminal takes over the terminal with termbox and runs the app until it
// stops or ctx is done.
func RunTerminal(ctx context.Context, newApp func(HAL) func() error, cfg TerminalConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid terminal hz: %d", cfg.Hz)
	}

	if err := termbox.Init(); err != nil {
		return fmt.Errorf("termbox init: %w", err)
	}
	defer termbox.Close()

	con := &termConsole{levels: termGrayLevels}
	if cfg.Color {
		con.levels = 0
	} else {
		termbox.SetOutputMode(termbox.OutputGrayscale)
	}

	h := newHost(cfg.Log, nil, con)
	step := newApp(h)

	events := make(chan termbox.Event)
	done := make(chan struct{})
	defer close(done)
	go func() {
		for {
			ev := termbox.PollEvent()
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			switch ev.Type {
			case termbox.EventKey:
				h.kbd.emit(termKeyEvent(ev))
			case termbox.EventError:
				return fmt.Errorf("termbox: %w", ev.Err)
			}
		case <-t.C:
			h.t.step(1)
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrStop) {
						return nil
					}
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}

func termKeyEvent(ev termbox.Event) KeyEvent {
	if ev.Ch != 0 {
		return KeyEvent{Press: true, Rune: ev.Ch}
	}
	switch ev.Key {
	case termbox.KeyEsc:
		return KeyEvent{Code: KeyEscape, Press: true}
	case termbox.KeyEnter:
		return KeyEvent{Code: KeyEnter, Press: true}
	case termbox.KeySpace:
		return KeyEvent{Press: true, Rune: ' '}
	case termbox.KeyTab:
		return KeyEvent{Code: KeyTab, Press: true}
	case termbox.KeyBackspace, termbox.KeyBackspace2:
		return KeyEvent{Code: KeyBackspace, Press: true}
	case termbox.KeyArrowUp:
		return KeyEvent{Code: KeyUp, Press: true}
	case termbox.KeyArrowDown:
		return KeyEvent{Code: KeyDown, Press: true}
	case termbox.KeyArrowLeft:
		return KeyEvent{Code: KeyLeft, Press: true}
	case termbox.KeyArrowRight:
		return KeyEvent{Code: KeyRight, Press: true}
	case termbox.KeyCtrlC:
		return KeyEvent{Press: true, Rune: 0x03}
	}
	return KeyEvent{Code: KeyUnknown, Press: true}
}

type termConsole struct {
	levels int
}

func (c *termConsole) Size() (cols, rows int) { return termbox.Size() }
func (c *termConsole) Levels() int            { return c.levels }
func (c *termConsole) Flush() error           { return termbox.Flush() }

func (c *termConsole) Clear() {
	termbox.Clear(termbox.ColorDefault, termbox.ColorDefault)
}

func (c *termConsole) SetCell(col, row int, cell Cell) {
	ch, fg, bg := c.cellAttrs(cell)
	termbox.SetCell(col, row, ch, fg, bg)
}

// cellAttrs maps a cell onto termbox's rune and colors. Levels above the
// palette clamp to its brightest entry.
func (c *termConsole) cellAttrs(cell Cell) (rune, termbox.Attribute, termbox.Attribute) {
	attr := termbox.ColorDefault
	if c.levels > 0 && cell.Level > 0 {
		attr = termbox.Attribute(min(cell.Level, c.levels-1))
	}
	if cell.Block {
		return ' ', termbox.ColorDefault, attr
	}
	return cell.Rune, attr, termbox.ColorDefault
}
