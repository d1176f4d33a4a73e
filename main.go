package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	clipboard "golang.design/x/clipboard"
)

var audioContext *audio.Context

// initSoundContext initializes the global audio context.
func initSoundContext() {
	audioContext = audio.NewContext(sampleRate)
}

func main() {
	doDebug := flag.Bool("debug", false, "verbose/debug logging")
	mute := flag.Bool("mute", false, "start muted")
	source := flag.String("source", "", "tone source: sine or piano")
	soundFont := flag.String("soundfont", "", "path to an SF2 SoundFont for the piano source")
	dumpScale := flag.Bool("dumpScale", false, "print the cell/ratio/frequency table and exit")
	showFPS := flag.Bool("fps", false, "show frames per second")
	flag.Parse()

	if *dumpScale {
		// Minimal dump path: no window/audio init needed.
		for i := 0; i < gridCells; i++ {
			col, row := cellForIndex(i)
			fmt.Printf("%2d (%d,%d): %-5s %10.3f Hz\n", i, col, row, ratioLabel(i), frequencyForIndex(i))
		}
		return
	}

	loadSettings()
	setupLogging(*doDebug)
	if *mute {
		gs.Mute = true
	}
	if *source != "" {
		gs.Source = *source
		sanitizeSettings()
	}
	if *soundFont != "" {
		gs.SoundFontPath = *soundFont
	}
	if *showFPS {
		gs.ShowFPS = true
	}

	if err := clipboard.Init(); err != nil {
		log.Printf("clipboard init: %v", err)
	}

	applyTheme()
	initFont()
	initSoundContext()

	ebiten.SetWindowSize(gs.WindowWidth, gs.WindowHeight)
	ebiten.SetWindowTitle("overtone")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := newGame()
	if err := ebiten.RunGame(g); err != nil {
		log.Fatalf("run: %v", err)
	}

	g.reg.stopAll()
	if ww, wh := ebiten.WindowSize(); ww > 0 && wh > 0 {
		gs.WindowWidth, gs.WindowHeight = ww, wh
	}
	saveSettings()
}
