package main

import (
	"fmt"
	"sync"
)

type sourceKind int

const (
	sourceSine sourceKind = iota
	sourcePiano
)

func (k sourceKind) String() string {
	switch k {
	case sourcePiano:
		return "piano"
	default:
		return "sine"
	}
}

func sourceKindFromString(s string) sourceKind {
	if s == "piano" {
		return sourcePiano
	}
	return sourceSine
}

// toneVoice is a backend-specific handle for one sounding voice.
type toneVoice interface {
	stop()
}

// toneBackend starts a voice at the given frequency and volume. The done
// callback fires once when the voice drains naturally; it is never called
// for voices ended via stop.
type toneBackend interface {
	start(freq, vol float64, done func()) (toneVoice, error)
}

type activeVoice struct {
	freq   float64
	kind   sourceKind
	handle toneVoice
}

// voiceRegistry tracks every sounding voice, keyed by exact frequency.
// At most one voice exists per frequency value; triggering an already
// active frequency retriggers it rather than stacking a second voice.
type voiceRegistry struct {
	mu       sync.Mutex
	voices   map[float64]*activeVoice
	backends map[sourceKind]toneBackend
}

func newVoiceRegistry() *voiceRegistry {
	return &voiceRegistry{
		voices:   make(map[float64]*activeVoice),
		backends: make(map[sourceKind]toneBackend),
	}
}

func (r *voiceRegistry) setBackend(kind sourceKind, b toneBackend) {
	r.backends[kind] = b
}

// trigger starts a voice at freq using the requested source kind. Any voice
// already sounding at that exact frequency is released first. A backend
// failure for a non-default kind falls back to sine; failures never
// propagate to the caller.
func (r *voiceRegistry) trigger(freq float64, kind sourceKind) {
	r.release(freq)

	v := &activeVoice{freq: freq, kind: kind}
	done := func() { r.voiceDone(freq, v) }

	handle, err := r.startVoice(kind, freq, done)
	if err != nil && kind != sourceSine {
		logWarn("%v voice at %.2f Hz unavailable (%v), using sine", kind, freq, err)
		v.kind = sourceSine
		handle, err = r.startVoice(sourceSine, freq, done)
	}
	if err != nil {
		logError("start voice at %.2f Hz: %v", freq, err)
		return
	}

	v.handle = handle
	r.mu.Lock()
	r.voices[freq] = v
	r.mu.Unlock()
}

func (r *voiceRegistry) startVoice(kind sourceKind, freq float64, done func()) (toneVoice, error) {
	b := r.backends[kind]
	if b == nil {
		return nil, fmt.Errorf("no %v backend", kind)
	}
	return b.start(freq, voiceVolume(), done)
}

// release stops the voice at freq if one is sounding; unknown frequencies
// are a no-op.
func (r *voiceRegistry) release(freq float64) {
	r.mu.Lock()
	v := r.voices[freq]
	delete(r.voices, freq)
	r.mu.Unlock()
	if v != nil && v.handle != nil {
		v.handle.stop()
	}
}

// voiceDone removes a naturally finished voice. The entry is only removed
// if v is still the registered voice; a later trigger at the same frequency
// may have replaced it.
func (r *voiceRegistry) voiceDone(freq float64, v *activeVoice) {
	r.mu.Lock()
	if r.voices[freq] == v {
		delete(r.voices, freq)
	}
	r.mu.Unlock()
}

// stopAll releases every sounding voice.
func (r *voiceRegistry) stopAll() {
	r.mu.Lock()
	stopped := make([]*activeVoice, 0, len(r.voices))
	for freq, v := range r.voices {
		stopped = append(stopped, v)
		delete(r.voices, freq)
	}
	r.mu.Unlock()
	for _, v := range stopped {
		if v.handle != nil {
			v.handle.stop()
		}
	}
}

func (r *voiceRegistry) active(freq float64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.voices[freq]
	return ok
}

func (r *voiceRegistry) activeCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.voices)
}

func voiceVolume() float64 {
	if gs.Mute {
		return 0
	}
	return gs.MasterVolume
}
