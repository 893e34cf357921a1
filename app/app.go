package app

import (
	"errors"
	"fmt"
	"image/color"
	"runtime/debug"
	"time"
	"unicode"

	"donut/hal"
	"donut/internal/buildinfo"
	"donut/torus/anim"
	"donut/torus/ascii"
	"donut/torus/quartic"
	"donut/torus/shader"
)

var (
	ErrInvalidConfig = errors.New("invalid config")
	errNoSurface     = errors.New("no display surface")
)

const (
	// Frame timing is logged once per this many frames.
	logEveryFrames = 300

	// Side of one shaded cell in framebuffer pixels.
	shadeBlock = 4
)

type Config struct {
	Inner float64
	Outer float64

	// Width and Height fix the character grid; 0 fits the surface.
	Width  int
	Height int

	Workers int
	Solver  string
	Ramp    string
	// Shade starts in shaded mode instead of glyph mode.
	Shade bool

	FPS int
	// Frames stops the app after that many frames; 0 runs forever.
	Frames int
}

func DefaultConfig() Config {
	return Config{
		Inner:  0.8,
		Outer:  1.5,
		Solver: "ferrari",
		Ramp:   ascii.DefaultRamp,
		FPS:    30,
	}
}

func (c Config) Validate() error {
	if err := (shader.Torus{Inner: c.Inner, Outer: c.Outer}).Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.Width < 0 || c.Height < 0 || c.Width == 1 || c.Height == 1 {
		return fmt.Errorf("%w: grid %dx%d, need 0 (fit) or at least 2", ErrInvalidConfig, c.Width, c.Height)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers %d < 0", ErrInvalidConfig, c.Workers)
	}
	if _, err := quartic.ByName(c.Solver); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := ascii.NewRamp(c.Ramp); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if c.FPS < 1 || c.FPS > 1000 {
		return fmt.Errorf("%w: fps %d out of range [1, 1000]", ErrInvalidConfig, c.FPS)
	}
	if c.Frames < 0 {
		return fmt.Errorf("%w: frames %d < 0", ErrInvalidConfig, c.Frames)
	}
	return nil
}

// asciiRamp reports whether every glyph is a single printable byte, which
// the framebuffer text console needs.
func asciiRamp(s string) bool {
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}

type donut struct {
	h   hal.HAL
	cfg Config
	log hal.Logger

	torus  shader.Torus
	r      *shader.Renderer
	anim   *anim.Animator
	ramp   ascii.Ramp
	frame  *shader.Frame
	solver string

	shade    bool
	paused   bool
	panicked bool

	text *textScreen
	rows [][]byte

	interval  uint64
	tick      uint64
	lastFrame uint64
	started   bool

	frames     int
	renderTime time.Duration
}

// New returns the app's step function. An invalid cfg yields a step that
// always fails with ErrInvalidConfig.
func New(h hal.HAL, cfg Config) func() error {
	if err := cfg.Validate(); err != nil {
		return func() error { return err }
	}
	a := newDonut(h, cfg)
	return a.step
}

func newDonut(h hal.HAL, cfg Config) *donut {
	solve, _ := quartic.ByName(cfg.Solver)
	a := &donut{
		h:        h,
		cfg:      cfg,
		log:      h.Logger(),
		torus:    shader.Torus{Inner: cfg.Inner, Outer: cfg.Outer},
		r:        shader.NewRenderer(solve, cfg.Workers),
		anim:     anim.New(anim.TerminalCell),
		ramp:     ascii.MustRamp(cfg.Ramp),
		frame:    &shader.Frame{},
		solver:   cfg.Solver,
		shade:    cfg.Shade,
		interval: uint64(1000 / cfg.FPS),
	}
	if a.solver == "" {
		a.solver = quartic.Names[0]
	}
	if h.Console() == nil {
		if d := h.Display(); d != nil && d.Framebuffer() != nil {
			a.text = newTextScreen(d.Framebuffer())
			if !asciiRamp(cfg.Ramp) {
				a.logf("donut: ramp %q is not printable ASCII, using default", cfg.Ramp)
				a.ramp = ascii.MustRamp(ascii.DefaultRamp)
			}
		}
	}
	a.logf("donut: version=%s inner=%v outer=%v solver=%s workers=%d fps=%d mode=%s",
		buildinfo.Short(), cfg.Inner, cfg.Outer, a.solver, cfg.Workers, cfg.FPS, a.mode())
	return a
}

func (a *donut) logf(format string, args ...any) {
	if a.log == nil {
		return
	}
	a.log.WriteLineString(fmt.Sprintf(format, args...))
}

func (a *donut) mode() string {
	if a.shade {
		return "shade"
	}
	return "glyph"
}

func (a *donut) step() (err error) {
	if a.handleKeys() {
		a.logf("donut: quit after %d frames", a.frames)
		return hal.ErrStop
	}
	a.drainTicks()
	if a.panicked || a.paused {
		return nil
	}
	if a.started && a.tick-a.lastFrame < a.interval {
		return nil
	}
	a.started = true
	a.lastFrame = a.tick

	defer func() {
		if r := recover(); r != nil {
			a.panicked = true
			reportPanic(a.h, r, debug.Stack())
			if a.text == nil {
				err = fmt.Errorf("render panic: %v", r)
			}
		}
	}()

	if err := a.renderFrame(); err != nil {
		return err
	}
	a.frames++
	a.anim.Step()

	if a.frames%logEveryFrames == 0 {
		avg := a.renderTime / logEveryFrames
		a.logf("donut: frame=%d avg_render=%s lit=%d", a.frames, avg.Round(time.Microsecond), a.frame.Lit())
		a.renderTime = 0
	}
	if a.cfg.Frames > 0 && a.frames >= a.cfg.Frames {
		a.logf("donut: done after %d frames lit=%d", a.frames, a.frame.Lit())
		return hal.ErrStop
	}
	return nil
}

// handleKeys applies pending key events and reports whether to quit.
func (a *donut) handleKeys() bool {
	in := a.h.Input()
	if in == nil {
		return false
	}
	kbd := in.Keyboard()
	if kbd == nil {
		return false
	}
	ch := kbd.Events()
	for {
		select {
		case ev := <-ch:
			if !ev.Press {
				continue
			}
			switch {
			case ev.Code == hal.KeyEscape, ev.Rune == 'q', ev.Rune == 0x03:
				return true
			case ev.Code == hal.KeyEnter:
				a.shade = !a.shade
				a.logf("donut: mode=%s", a.mode())
			case ev.Rune == ' ':
				a.paused = !a.paused
			case ev.Rune == 's':
				a.nextSolver()
			case ev.Rune == 'r':
				a.anim.Reset()
			}
		default:
			return false
		}
	}
}

func (a *donut) nextSolver() {
	next := quartic.Names[0]
	for i, name := range quartic.Names {
		if name == a.solver {
			next = quartic.Names[(i+1)%len(quartic.Names)]
		}
	}
	solve, err := quartic.ByName(next)
	if err != nil {
		return
	}
	a.solver = next
	a.r.Solver = solve
	a.logf("donut: solver=%s", a.solver)
}

// drainTicks advances the tick clock to the newest published tick. Without
// a time source every step counts as one frame interval.
func (a *donut) drainTicks() {
	t := a.h.Time()
	if t == nil {
		a.tick += a.interval
		return
	}
	ch := t.Ticks()
	for {
		select {
		case seq := <-ch:
			a.tick = seq
		default:
			return
		}
	}
}

func (a *donut) renderFrame() error {
	var (
		w, h    int
		present func() error
	)
	switch con := a.h.Console(); {
	case con != nil:
		w, h = con.Size()
		a.anim.CellAspect = anim.TerminalCell
		present = func() error { return a.presentConsole(con) }
	case a.text != nil && !a.shade:
		w, h = a.text.Size()
		a.anim.CellAspect = a.text.cellAspect()
		present = a.presentText
	case a.text != nil:
		fb := a.text.fb
		w, h = fb.Width()/shadeBlock, fb.Height()/shadeBlock
		a.anim.CellAspect = anim.PixelCell
		present = a.presentShade
	default:
		return errNoSurface
	}
	w, h = fitGrid(a.cfg.Width, w), fitGrid(a.cfg.Height, h)

	v, light := a.anim.Frame(w, h)
	start := time.Now()
	if err := a.r.Render(a.frame, a.torus, v, light); err != nil {
		return err
	}
	a.renderTime += time.Since(start)
	return present()
}

// fitGrid picks the configured size when set, capped by the surface.
func fitGrid(want, have int) int {
	if want > 0 && want < have {
		return want
	}
	return have
}

func (a *donut) presentConsole(con hal.Console) error {
	f := a.frame
	levels := con.Levels()
	con.Clear()
	for row := 0; row < f.Height; row++ {
		for col, b := range f.Row(row) {
			con.SetCell(col, row, hal.Cell{
				Rune:  a.ramp.Glyph(b),
				Level: ascii.Level(b, levels),
				Block: a.shade,
			})
		}
	}
	return con.Flush()
}

func (a *donut) presentText() error {
	f := a.frame
	for len(a.rows) < f.Height {
		a.rows = append(a.rows, nil)
	}
	rows := a.rows[:f.Height]
	for i := range rows {
		rows[i] = a.ramp.AppendRow(rows[i][:0], f.Row(i))
	}
	return a.text.draw(rows)
}

func (a *donut) presentShade() error {
	f := a.frame
	fb := a.text.fb
	fb.ClearRGB(0, 0, 0)
	for row := 0; row < f.Height; row++ {
		for col, b := range f.Row(row) {
			if b == 0 {
				continue
			}
			c := color.RGBA{R: b, G: b, B: b, A: 255}
			if err := a.text.d.FillRectangle(int16(col*shadeBlock), int16(row*shadeBlock), shadeBlock, shadeBlock, c); err != nil {
				return err
			}
		}
	}
	return fb.Present()
}
