package main

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path"
	"sync"

	"github.com/hajimehoshi/ebiten/v2/audio"
	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

const (
	// The reference note is rendered once from the SoundFont and every
	// other pitch is derived from it by playback-rate scaling.
	pianoRefKey      = 69 // A4, 440 Hz
	pianoRefVelocity = 110
	pianoProgram     = 0 // Acoustic Grand

	pianoHoldSeconds = 2.0
	pianoTailSeconds = 2.0

	pianoBlock = 1024
)

// pianoSynth abstracts the subset of meltysynth.Synthesizer used for the
// reference-note render. Tests may override newPianoSynth to inject a mock.
type pianoSynth interface {
	ProcessMidiMessage(channel int32, command int32, data1, data2 int32)
	NoteOn(channel, key, vel int32)
	NoteOff(channel, key int32)
	Render(left, right []float32)
}

var newPianoSynth = func(sf *meltysynth.SoundFont, settings *meltysynth.SynthesizerSettings) (pianoSynth, error) {
	return meltysynth.NewSynthesizer(sf, settings)
}

// pianoBackend plays pitch-shifted copies of a single sampled reference
// note. Attack and release live in the sample itself; the registry never
// sees an envelope.
type pianoBackend struct {
	ctx *audio.Context

	mu       sync.Mutex
	refMono  []int16
	pcmCache map[float64][]byte
	loadErr  error
	loaded   bool
}

func newPianoBackend(ctx *audio.Context) *pianoBackend {
	return &pianoBackend{ctx: ctx, pcmCache: make(map[float64][]byte)}
}

// soundFontPath resolves the SF2 file to use: the configured path first,
// then the bundled default location.
func soundFontPath() string {
	if gs.SoundFontPath != "" {
		return gs.SoundFontPath
	}
	return path.Join(dataDirPath, "soundfont.sf2")
}

// ensureLoaded renders the reference note on first use. The result, good or
// bad, is sticky until reload.
func (b *pianoBackend) ensureLoaded() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.loaded {
		return b.loadErr
	}
	b.loaded = true
	b.refMono, b.loadErr = renderPianoReference(soundFontPath())
	return b.loadErr
}

// reload forgets any previous SoundFont state so a newly picked file takes
// effect.
func (b *pianoBackend) reload() {
	b.mu.Lock()
	b.loaded = false
	b.loadErr = nil
	b.refMono = nil
	b.pcmCache = make(map[float64][]byte)
	b.mu.Unlock()
}

func (b *pianoBackend) start(freq, vol float64, done func()) (toneVoice, error) {
	if b.ctx == nil {
		return nil, errors.New("no audio context")
	}
	if err := b.ensureLoaded(); err != nil {
		return nil, err
	}

	b.mu.Lock()
	pcm, ok := b.pcmCache[freq]
	if !ok {
		mono := resampleRate(b.refMono, freq/baseFreq)
		pcm = monoToStereoPCM(mono)
		b.pcmCache[freq] = pcm
	}
	b.mu.Unlock()

	p := b.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(vol)
	p.Play()

	v := &playerVoice{player: p}
	go v.watch(pcmDuration(pcm), done)
	return v, nil
}

// renderPianoReference loads the SoundFont and renders the reference note
// into a mono int16 buffer at the context sample rate.
func renderPianoReference(sfPath string) ([]int16, error) {
	data, err := os.ReadFile(sfPath)
	if err != nil {
		return nil, fmt.Errorf("read soundfont: %w", err)
	}
	sf, err := meltysynth.NewSoundFont(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse soundfont: %w", err)
	}
	return renderReferenceNote(sf)
}

func renderReferenceNote(sf *meltysynth.SoundFont) ([]int16, error) {
	settings := meltysynth.NewSynthesizerSettings(sampleRate)
	settings.BlockSize = pianoBlock
	syn, err := newPianoSynth(sf, settings)
	if err != nil {
		return nil, fmt.Errorf("create synthesizer: %w", err)
	}
	syn.ProcessMidiMessage(0, 0xC0, pianoProgram, 0)

	holdSamples := int(pianoHoldSeconds * sampleRate)
	totalSamples := holdSamples + int(pianoTailSeconds*sampleRate)

	mono := make([]int16, 0, totalSamples)
	left := make([]float32, pianoBlock)
	right := make([]float32, pianoBlock)
	syn.NoteOn(0, pianoRefKey, pianoRefVelocity)
	for pos := 0; pos < totalSamples; pos += pianoBlock {
		if pos <= holdSamples && pos+pianoBlock > holdSamples {
			syn.NoteOff(0, pianoRefKey)
		}
		syn.Render(left, right)
		n := pianoBlock
		if pos+n > totalSamples {
			n = totalSamples - pos
		}
		for i := 0; i < n; i++ {
			s := (left[i] + right[i]) * 0.5
			if s > 1 {
				s = 1
			} else if s < -1 {
				s = -1
			}
			mono = append(mono, int16(s*32767))
		}
	}
	return mono, nil
}

// resampleRate reads src at the given rate using linear interpolation.
// rate > 1 raises the pitch and shortens the sound, rate < 1 lowers it.
func resampleRate(src []int16, rate float64) []int16 {
	if len(src) == 0 || rate <= 0 {
		return nil
	}
	n := int(math.Round(float64(len(src)) / rate))
	if n < 1 {
		n = 1
	}
	out := make([]int16, n)
	pos := 0.0
	lastIdx := len(src) - 1
	for i := 0; i < n; i++ {
		idx := int(pos)
		if idx > lastIdx {
			idx = lastIdx
		}
		frac := pos - float64(idx)
		s0 := float64(src[idx])
		s1 := s0
		if idx < lastIdx {
			s1 = float64(src[idx+1])
		}
		out[i] = int16(math.Round(s0 + (s1-s0)*frac))
		pos += rate
	}
	return out
}

// monoToStereoPCM duplicates a mono buffer into interleaved 16-bit stereo.
func monoToStereoPCM(mono []int16) []byte {
	pcm := make([]byte, len(mono)*4)
	for i, s := range mono {
		binary.LittleEndian.PutUint16(pcm[4*i:], uint16(s))
		binary.LittleEndian.PutUint16(pcm[4*i+2:], uint16(s))
	}
	return pcm
}
