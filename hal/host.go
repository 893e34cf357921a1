package hal

import (
	"fmt"
	"io"
	"sync"
)

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	con    Console
	kbd    *hostKeyboard
	t      *hostTime
}

// newHost builds a host HAL. fb and con may be nil.
func newHost(logw io.Writer, fb *hostFramebuffer, con Console) *hostHAL {
	if logw == nil {
		logw = io.Discard
	}
	return &hostHAL{
		logger: &hostLogger{w: logw},
		fb:     fb,
		con:    con,
		kbd:    newHostKeyboard(),
		t:      newHostTime(),
	}
}

func (h *hostHAL) Logger() Logger { return h.logger }
func (h *hostHAL) Input() Input   { return hostInput{kbd: h.kbd} }
func (h *hostHAL) Time() Time     { return h.t }

func (h *hostHAL) Display() Display {
	if h.fb == nil {
		return nil
	}
	return hostDisplay{fb: h.fb}
}

func (h *hostHAL) Console() Console { return h.con }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }

type hostKeyboard struct {
	ch chan KeyEvent
}

func newHostKeyboard() *hostKeyboard {
	return &hostKeyboard{ch: make(chan KeyEvent, 64)}
}

func (k *hostKeyboard) Events() <-chan KeyEvent { return k.ch }

// emit drops the event when the app is not keeping up.
func (k *hostKeyboard) emit(ev KeyEvent) {
	select {
	case k.ch <- ev:
	default:
	}
}

type hostLogger struct {
	mu sync.Mutex
	w  io.Writer
}

// NewLogger returns a Logger writing one line per call to w.
func NewLogger(w io.Writer) Logger {
	if w == nil {
		w = io.Discard
	}
	return &hostLogger{w: w}
}

func (l *hostLogger) WriteLineString(s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintln(l.w, s)
}

func (l *hostLogger) WriteLineBytes(b []byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.w.Write(b)
	l.w.Write([]byte{'\n'})
}
