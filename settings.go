package main

import (
	"encoding/json"
	"os"
	"path/filepath"
)

const SETTINGS_VERSION = 1

var dataDirPath = "data"

const settingsFile = "settings.json"

type settings struct {
	Version int

	WindowWidth  int
	WindowHeight int

	MasterVolume float64
	Mute         bool

	// Source selects the tone source, "sine" or "piano".
	Source string

	// Theme is "dark", "light" or empty for OS autodetection.
	Theme string

	// SoundFontPath points at the SF2 file used by the piano source.
	SoundFontPath string

	ShowFPS bool
}

var gsdef = settings{
	Version: SETTINGS_VERSION,

	WindowWidth:  560,
	WindowHeight: 680,

	MasterVolume: 0.8,
	Source:       "sine",
}

var gs = gsdef

// settingsLoaded reports whether settings were successfully loaded from disk.
var settingsLoaded bool

func settingsPath() string {
	return filepath.Join(dataDirPath, settingsFile)
}

func loadSettings() {
	data, err := os.ReadFile(settingsPath())
	if err != nil {
		if !os.IsNotExist(err) {
			logError("read settings: %v", err)
		}
		return
	}
	loaded := gsdef
	if err := json.Unmarshal(data, &loaded); err != nil {
		logError("parse settings: %v", err)
		return
	}
	if loaded.Version != SETTINGS_VERSION {
		logWarn("settings version %d, want %d; using defaults", loaded.Version, SETTINGS_VERSION)
		return
	}
	gs = loaded
	settingsLoaded = true
	sanitizeSettings()
}

func saveSettings() {
	if err := os.MkdirAll(dataDirPath, 0o755); err != nil {
		logError("create data directory: %v", err)
		return
	}
	gs.Version = SETTINGS_VERSION
	data, err := json.MarshalIndent(&gs, "", "  ")
	if err != nil {
		logError("encode settings: %v", err)
		return
	}
	tmp := settingsPath() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		logError("write settings: %v", err)
		return
	}
	if err := os.Rename(tmp, settingsPath()); err != nil {
		logError("save settings: %v", err)
	}
}

func sanitizeSettings() {
	if gs.MasterVolume < 0 {
		gs.MasterVolume = 0
	} else if gs.MasterVolume > 1 {
		gs.MasterVolume = 1
	}
	if gs.WindowWidth < 320 {
		gs.WindowWidth = gsdef.WindowWidth
	}
	if gs.WindowHeight < 320 {
		gs.WindowHeight = gsdef.WindowHeight
	}
	if gs.Source != "sine" && gs.Source != "piano" {
		gs.Source = "sine"
	}
}
