package main

import (
	"math"
	"testing"

	meltysynth "github.com/sinshu/go-meltysynth/meltysynth"
)

type mockPianoSynth struct {
	pos      int
	noteOns  []int
	noteOffs []int
}

func (m *mockPianoSynth) ProcessMidiMessage(channel, command, data1, data2 int32) {}

func (m *mockPianoSynth) NoteOn(channel, key, vel int32) {
	m.noteOns = append(m.noteOns, m.pos)
}

func (m *mockPianoSynth) NoteOff(channel, key int32) {
	m.noteOffs = append(m.noteOffs, m.pos)
}

func (m *mockPianoSynth) Render(left, right []float32) {
	for i := range left {
		left[i] = 0.25
		right[i] = 0.25
	}
	m.pos += len(left)
}

func TestRenderReferenceNoteTiming(t *testing.T) {
	ms := &mockPianoSynth{}
	orig := newPianoSynth
	newPianoSynth = func(*meltysynth.SoundFont, *meltysynth.SynthesizerSettings) (pianoSynth, error) {
		return ms, nil
	}
	defer func() { newPianoSynth = orig }()

	mono, err := renderReferenceNote(&meltysynth.SoundFont{})
	if err != nil {
		t.Fatalf("renderReferenceNote: %v", err)
	}

	wantLen := int(pianoHoldSeconds*sampleRate) + int(pianoTailSeconds*sampleRate)
	if len(mono) != wantLen {
		t.Fatalf("rendered %d samples, want %d", len(mono), wantLen)
	}
	if len(ms.noteOns) != 1 || ms.noteOns[0] != 0 {
		t.Fatalf("note ons = %v, want one at sample 0", ms.noteOns)
	}
	if len(ms.noteOffs) != 1 {
		t.Fatalf("note offs = %v, want exactly one", ms.noteOffs)
	}
	hold := int(pianoHoldSeconds * sampleRate)
	if off := ms.noteOffs[0]; off < hold-pianoBlock || off > hold+pianoBlock {
		t.Fatalf("note off at sample %d, want near %d", off, hold)
	}
}

func TestRenderPianoReferenceMissingFile(t *testing.T) {
	if _, err := renderPianoReference("does-not-exist.sf2"); err == nil {
		t.Fatal("expected error for missing soundfont")
	}
}

func TestResampleRateLengths(t *testing.T) {
	src := make([]int16, 1000)
	for i := range src {
		src[i] = int16(i)
	}

	if out := resampleRate(src, 2); len(out) != 500 {
		t.Fatalf("rate 2 length = %d, want 500", len(out))
	}
	if out := resampleRate(src, 0.5); len(out) != 2000 {
		t.Fatalf("rate 0.5 length = %d, want 2000", len(out))
	}
	out := resampleRate(src, 1)
	if len(out) != len(src) {
		t.Fatalf("rate 1 length = %d, want %d", len(out), len(src))
	}
	for i := range out {
		if out[i] != src[i] {
			t.Fatalf("rate 1 altered sample %d: %d != %d", i, out[i], src[i])
		}
	}
}

func TestResampleRateInterpolates(t *testing.T) {
	src := []int16{0, 100}
	out := resampleRate(src, 0.5)
	if len(out) != 4 {
		t.Fatalf("length = %d, want 4", len(out))
	}
	if out[1] != 50 {
		t.Fatalf("midpoint = %d, want 50", out[1])
	}
}

func TestResampleRateDegenerate(t *testing.T) {
	if out := resampleRate(nil, 2); out != nil {
		t.Fatalf("empty source gave %v", out)
	}
	if out := resampleRate([]int16{1, 2}, 0); out != nil {
		t.Fatalf("zero rate gave %v", out)
	}
}

func TestResamplePitchRatio(t *testing.T) {
	// A 100 Hz wave resampled at rate 2 should complete its cycles in half
	// the samples, i.e. sound an octave higher.
	n := sampleRate / 10
	src := make([]int16, n)
	for i := range src {
		src[i] = int16(math.Sin(2*math.Pi*100*float64(i)/sampleRate) * 10000)
	}
	out := resampleRate(src, 2)

	zeroCrossings := func(s []int16) int {
		count := 0
		for i := 1; i < len(s); i++ {
			if (s[i-1] < 0) != (s[i] < 0) {
				count++
			}
		}
		return count
	}
	srcCross := zeroCrossings(src)
	outCross := zeroCrossings(out)
	if d := srcCross - outCross; d < -1 || d > 1 {
		t.Fatalf("crossings changed: src %d, out %d", srcCross, outCross)
	}
	if len(out) != n/2 {
		t.Fatalf("length = %d, want %d", len(out), n/2)
	}
}

func TestMonoToStereoPCM(t *testing.T) {
	pcm := monoToStereoPCM([]int16{100, -200, 32767, -32768})
	if len(pcm) != 16 {
		t.Fatalf("pcm length = %d, want 16", len(pcm))
	}
	for frame, want := range []int16{100, -200, 32767, -32768} {
		l := pcmSample(pcm, frame)
		if l != want {
			t.Fatalf("frame %d left = %d, want %d", frame, l, want)
		}
	}
}
