package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sweeney/tempmon/internal/config"
	"github.com/sweeney/tempmon/internal/logic"
	"github.com/sweeney/tempmon/internal/temp"
)

func TestExitCode(t *testing.T) {
	if got := exitCode(config.ErrNoPins); got != 2 {
		t.Errorf("exitCode(ErrNoPins) = %d, want 2", got)
	}
	if got := exitCode(fmt.Errorf("loading: %w", config.ErrNoPins)); got != 2 {
		t.Errorf("exitCode(wrapped ErrNoPins) = %d, want 2", got)
	}
	if got := exitCode(errors.New("open config: no such file")); got != 1 {
		t.Errorf("exitCode(open failure) = %d, want 1", got)
	}
}

func TestRunMissingConfig(t *testing.T) {
	err := run(filepath.Join(t.TempDir(), "absent.json"),
		time.Second, 100*time.Millisecond, "gpiochip0", "", false)

	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if exitCode(err) != 1 {
		t.Errorf("exitCode = %d, want 1", exitCode(err))
	}
}

func TestRunEmptyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`[]`), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	err := run(path, time.Second, 100*time.Millisecond, "gpiochip0", "", false)

	if !errors.Is(err, config.ErrNoPins) {
		t.Fatalf("error = %v, want ErrNoPins", err)
	}
	if exitCode(err) != 2 {
		t.Errorf("exitCode = %d, want 2", exitCode(err))
	}
}

func TestRunCheckMode(t *testing.T) {
	dir := t.TempDir()

	thermal := filepath.Join(dir, "thermal")
	if err := os.WriteFile(thermal, []byte("55000\n"), 0o644); err != nil {
		t.Fatalf("write thermal: %v", err)
	}

	cfg := fmt.Sprintf(`[{"wpi_pin": 7, "output_val": true, "condition": ">",
		"temperature_degC": 50, "temperature_src": %q}]`, thermal)
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(cfg), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// Check mode never opens the GPIO chip, so this passes on any host.
	if err := run(path, time.Second, 100*time.Millisecond, "gpiochip0", "", true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestCheckConfigVerdicts(t *testing.T) {
	cfgs := []logic.PinConfig{
		{Pin: 7, Level: true, Op: logic.OpGreater, Threshold: 50, Source: "hot"},
		{Pin: 2, Level: false, Op: logic.OpLess, Threshold: 10, Source: "hot"},
		{Pin: 3, Level: true, Op: "!=", Threshold: 0, Source: "hot"},
		{Pin: 4, Level: true, Op: logic.OpEqual, Threshold: 0, Source: "nowhere"},
	}
	source := temp.NewFake(map[string][]float64{"hot": {55, 55}})

	var buf bytes.Buffer
	if err := checkConfig(&buf, cfgs, source); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"pin 7: 55 > 50: match",
		"pin 2: 55 < 10: no match",
		`pin 3: unsupported operator "!="`,
		`pin 4: read "nowhere" failed`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
