package hal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled    bool
	Hz         int
	Ticks      uint64
	StepBudget int

	// Cols and Rows size the text console printed to Out.
	Cols int
	Rows int
	Out  io.Writer
	Log  io.Writer
	// NoHome disables the cursor-home escape between frames.
	NoHome bool
}

// RunHeadless runs the app without opening a window, printing console frames
// as plain text.
func RunHeadless(ctx context.Context, newApp func(HAL) func() error, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = 1
	}
	if cfg.Cols <= 0 {
		cfg.Cols = 80
	}
	if cfg.Rows <= 0 {
		cfg.Rows = 40
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}

	h := newHost(cfg.Log, nil, NewWriterConsole(cfg.Out, cfg.Cols, cfg.Rows, !cfg.NoHome))
	step := newApp(h)

	t := time.NewTicker(d)
	defer t.Stop()

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			h.t.step(1)
			if step != nil {
				for i := 0; i < cfg.StepBudget; i++ {
					if err := step(); err != nil {
						if errors.Is(err, ErrStop) {
							return nil
						}
						return err
					}
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
