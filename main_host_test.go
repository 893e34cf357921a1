package main

import (
	"errors"
	"reflect"
	"testing"

	"donut/app"
	"donut/torus/quartic"
)

func TestWithEnvArgs(t *testing.T) {
	got, err := withEnvArgs([]string{"-fps", "20"}, `-ramp ' .:-=+*#%@' -workers 4`)
	if err != nil {
		t.Fatalf("withEnvArgs: %v", err)
	}
	want := []string{"-ramp", " .:-=+*#%@", "-workers", "4", "-fps", "20"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("args=%q want=%q", got, want)
	}

	if got, _ := withEnvArgs([]string{"-headless"}, ""); !reflect.DeepEqual(got, []string{"-headless"}) {
		t.Fatalf("empty env changed args: %q", got)
	}
	if _, err := withEnvArgs(nil, `-ramp "unterminated`); err == nil {
		t.Fatalf("unterminated quote accepted")
	}
}

func TestParseFlags(t *testing.T) {
	o, err := parseFlags([]string{"-headless", "-width", "60", "-height", "30", "-solver", "companion", "-frames", "5"})
	if err != nil {
		t.Fatalf("parseFlags: %v", err)
	}
	if !o.headless.Enabled || o.app.Width != 60 || o.app.Height != 30 || o.app.Solver != "companion" || o.app.Frames != 5 {
		t.Fatalf("options=%+v", o)
	}
	if o.app.Inner != 0.8 || o.app.Outer != 1.5 || o.app.FPS != 30 {
		t.Fatalf("defaults lost: %+v", o.app)
	}
}

func TestParseFlagsRejects(t *testing.T) {
	_, err := parseFlags([]string{"-solver", "newton"})
	if !errors.Is(err, app.ErrInvalidConfig) || !errors.Is(err, quartic.ErrUnknownSolver) {
		t.Fatalf("err=%v", err)
	}
	_, err = parseFlags([]string{"-headless", "-window"})
	if !errors.Is(err, app.ErrInvalidConfig) {
		t.Fatalf("err=%v", err)
	}
	if _, err = parseFlags([]string{"-inner", "2", "-outer", "1"}); !errors.Is(err, app.ErrInvalidConfig) {
		t.Fatalf("err=%v", err)
	}
}

func TestRunVersion(t *testing.T) {
	if code := run([]string{"-version"}); code != 0 {
		t.Fatalf("exit=%d", code)
	}
	if code := run([]string{"-fps", "0"}); code != 2 {
		t.Fatalf("exit=%d want=2", code)
	}
}
