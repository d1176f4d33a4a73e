package main

import (
	"encoding/binary"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

const (
	// sineSeconds bounds a sine voice; the decay envelope reaches near
	// silence well before the buffer ends.
	sineSeconds = 2.5
	sineDecay   = 3.0
	sineGain    = 0.30
)

var (
	sineCacheMu sync.Mutex
	sineCache   = make(map[float64][]byte)
)

// sineBackend synthesizes a decaying sine tone per frequency and plays it
// through the shared audio context. Rendered PCM is cached per frequency.
type sineBackend struct {
	ctx *audio.Context
}

func newSineBackend(ctx *audio.Context) *sineBackend {
	return &sineBackend{ctx: ctx}
}

func (b *sineBackend) start(freq, vol float64, done func()) (toneVoice, error) {
	if b.ctx == nil {
		return nil, errors.New("no audio context")
	}

	sineCacheMu.Lock()
	pcm, ok := sineCache[freq]
	sineCacheMu.Unlock()
	if !ok {
		pcm = renderSinePCM(freq, sineSeconds)
		sineCacheMu.Lock()
		sineCache[freq] = pcm
		sineCacheMu.Unlock()
	}

	p := b.ctx.NewPlayerFromBytes(pcm)
	p.SetVolume(vol)
	p.Play()

	v := &playerVoice{player: p}
	go v.watch(pcmDuration(pcm), done)
	return v, nil
}

// renderSinePCM renders an exponentially decaying sine at freq into
// interleaved 16-bit stereo PCM.
func renderSinePCM(freq float64, seconds float64) []byte {
	n := int(seconds * sampleRate)
	pcm := make([]byte, n*4)
	step := 1.0 / sampleRate
	t := 0.0
	for i := 0; i < n; i++ {
		env := math.Exp(-sineDecay * t)
		s := int16(math.Sin(2*math.Pi*freq*t) * env * sineGain * 32767)
		binary.LittleEndian.PutUint16(pcm[4*i:], uint16(s))
		binary.LittleEndian.PutUint16(pcm[4*i+2:], uint16(s))
		t += step
	}
	return pcm
}

// pcmDuration converts an interleaved 16-bit stereo buffer length to time.
func pcmDuration(pcm []byte) time.Duration {
	frames := len(pcm) / 4
	return time.Second * time.Duration(frames) / sampleRate
}

// playerVoice wraps an audio.Player as a registry voice handle.
type playerVoice struct {
	mu     sync.Mutex
	player *audio.Player
	closed bool
}

func (v *playerVoice) stop() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed {
		return
	}
	v.closed = true
	_ = v.player.Close()
}

// watch waits out the rendered duration plus a small grace period and fires
// done once the player drains. A stopped voice never reports done.
func (v *playerVoice) watch(dur time.Duration, done func()) {
	target := time.Now().Add(dur + 100*time.Millisecond)
	for time.Now().Before(target) {
		v.mu.Lock()
		closed := v.closed
		playing := !closed && v.player.IsPlaying()
		v.mu.Unlock()
		if closed {
			return
		}
		if !playing {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}
	v.mu.Lock()
	if v.closed {
		v.mu.Unlock()
		return
	}
	v.closed = true
	_ = v.player.Close()
	v.mu.Unlock()
	done()
}
