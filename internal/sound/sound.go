package sound

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	noteLength = 70 * time.Millisecond
	noteGap    = 20 * time.Millisecond
	chimeBase  = 523.25 // C5
)

// chimeSteps are semitone offsets of the notes played for 1-4 cleared lines.
var chimeSteps = [...]float64{0, 4, 7, 12}

// SoundManager plays the game's sound effects. All methods are no-ops until
// Initialize succeeds, so the game runs silently without an audio device.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and closes the speaker.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	sm.mixer.Clear()
	speaker.Close()
	sm.initialized = false
}

// PlayLineClear plays a rising arpeggio with one note per cleared line.
func (sm *SoundManager) PlayLineClear(lines int) {
	if lines <= 0 {
		return
	}
	sm.play(lineClearStreamer(lines))
}

// PlayGameOver plays a falling two-tone buzz.
func (sm *SoundManager) PlayGameOver() {
	sm.play(gameOverStreamer())
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

func lineClearStreamer(lines int) beep.Streamer {
	lines = min(lines, len(chimeSteps))
	notes := make([]beep.Streamer, 0, 2*lines)
	for i := 0; i < lines; i++ {
		if i > 0 {
			notes = append(notes, beep.Silence(sampleRate.N(noteGap)))
		}
		freq := chimeBase * math.Pow(2, chimeSteps[i]/12)
		notes = append(notes, beep.Take(sampleRate.N(noteLength), NewToneGenerator(sampleRate, freq, 0.25)))
	}
	return beep.Seq(notes...)
}

func gameOverStreamer() beep.Streamer {
	return beep.Seq(
		beep.Take(sampleRate.N(200*time.Millisecond), NewToneGenerator(sampleRate, 220, 0.3)),
		beep.Take(sampleRate.N(400*time.Millisecond), NewToneGenerator(sampleRate, 147, 0.3)),
	)
}

// ToneGenerator generates a sine tone with a short attack and an
// exponential decay.
type ToneGenerator struct {
	sr   beep.SampleRate
	freq float64
	gain float64
	pos  int
}

// NewToneGenerator creates a tone generator
func NewToneGenerator(sr beep.SampleRate, freq, gain float64) *ToneGenerator {
	return &ToneGenerator{sr: sr, freq: freq, gain: gain}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// 5ms attack, then decay
		envelope := math.Min(t/0.005, 1.0) * math.Exp(-t*6)
		sample := g.gain * envelope * math.Sin(2*math.Pi*g.freq*t)

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
