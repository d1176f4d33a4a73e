package main

import (
	"os"
	"path/filepath"
	"testing"
)

func useTempDataDir(t *testing.T) {
	t.Helper()
	orig := dataDirPath
	origGS := gs
	origLoaded := settingsLoaded
	dataDirPath = t.TempDir()
	t.Cleanup(func() {
		dataDirPath = orig
		gs = origGS
		settingsLoaded = origLoaded
	})
}

func TestSettingsRoundTrip(t *testing.T) {
	useTempDataDir(t)

	gs = gsdef
	gs.MasterVolume = 0.5
	gs.Source = "piano"
	gs.Theme = "light"
	saveSettings()

	gs = gsdef
	loadSettings()

	if !settingsLoaded {
		t.Fatal("settings not loaded")
	}
	if gs.MasterVolume != 0.5 || gs.Source != "piano" || gs.Theme != "light" {
		t.Fatalf("settings not restored: %+v", gs)
	}
}

func TestLoadSettingsMissingFileKeepsDefaults(t *testing.T) {
	useTempDataDir(t)

	gs = gsdef
	loadSettings()

	if settingsLoaded {
		t.Fatal("settingsLoaded should be false without a file")
	}
	if gs != gsdef {
		t.Fatalf("defaults changed: %+v", gs)
	}
}

func TestLoadSettingsRejectsBadJSON(t *testing.T) {
	useTempDataDir(t)

	if err := os.WriteFile(filepath.Join(dataDirPath, settingsFile), []byte("{nope"), 0o644); err != nil {
		t.Fatal(err)
	}
	gs = gsdef
	loadSettings()
	if settingsLoaded {
		t.Fatal("corrupt settings should not load")
	}
}

func TestLoadSettingsVersionMismatch(t *testing.T) {
	useTempDataDir(t)

	data := []byte(`{"Version": 999, "MasterVolume": 0.1}`)
	if err := os.WriteFile(filepath.Join(dataDirPath, settingsFile), data, 0o644); err != nil {
		t.Fatal(err)
	}

	gs = gsdef
	loadSettings()
	if settingsLoaded {
		t.Fatal("mismatched version should not load")
	}
	if gs.MasterVolume != gsdef.MasterVolume {
		t.Fatalf("volume = %v, want default", gs.MasterVolume)
	}
}

func TestSanitizeSettings(t *testing.T) {
	origGS := gs
	t.Cleanup(func() { gs = origGS })

	gs = gsdef
	gs.MasterVolume = 3
	gs.Source = "theremin"
	gs.WindowWidth = 10
	sanitizeSettings()

	if gs.MasterVolume != 1 {
		t.Fatalf("volume = %v, want 1", gs.MasterVolume)
	}
	if gs.Source != "sine" {
		t.Fatalf("source = %q, want sine", gs.Source)
	}
	if gs.WindowWidth != gsdef.WindowWidth {
		t.Fatalf("width = %d, want default", gs.WindowWidth)
	}
}
