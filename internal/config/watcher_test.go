package config

import (
	"os"
	"testing"
	"time"
)

func TestWatcherReloadsOnChange(t *testing.T) {
	path := writeFile(t, "controls.toml", `
[cameras.CAM_A]
exposure_us = 8000
`)

	w := NewWatcher(path, LoadControlDefaults, nil)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan ControlDefaults, 1)
	w.OnReload(func(cd ControlDefaults) {
		select {
		case reloaded <- cd:
		default:
		}
	})

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte(`
[cameras.CAM_A]
exposure_us = 4000
`), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	select {
	case cd := <-reloaded:
		got := cd.Cameras["CAM_A"]
		if got.ExposureUs == nil || *got.ExposureUs != 4000 {
			t.Errorf("reloaded defaults = %+v", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no reload notification")
	}
}

func TestWatcherKeepsOldConfigOnBadFile(t *testing.T) {
	path := writeFile(t, "controls.toml", `
[cameras.CAM_A]
exposure_us = 8000
`)

	w := NewWatcher(path, LoadControlDefaults, nil)
	w.debounce = 50 * time.Millisecond

	reloaded := make(chan ControlDefaults, 1)
	w.OnReload(func(cd ControlDefaults) { reloaded <- cd })

	if err := w.Start(); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	defer w.Stop()

	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("rewrite file: %v", err)
	}

	// A failed load logs a warning and never notifies handlers.
	select {
	case cd := <-reloaded:
		t.Errorf("unexpected reload with %+v", cd)
	case <-time.After(500 * time.Millisecond):
	}
}
