package audio

import (
	"fmt"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Mshel/crumble/internal/game"
	"github.com/charmbracelet/log"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
)

const (
	sampleRate         = beep.SampleRate(48000)
	stepLength         = 90 * time.Millisecond
	synthesizedVariety = 3
)

var bufferFormat = beep.Format{SampleRate: sampleRate, NumChannels: 2, Precision: 2}

// SoundManager plays a randomly chosen footstep each time the player walks.
// Every operation is a safe no-op until Initialize succeeds.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	walkSounds  []*beep.Buffer
	volume      float64
	rng         game.Random
	initialized bool
	muted       bool
	logger      *log.Logger
}

func NewSoundManager(rng game.Random, volume float64, logger *log.Logger) *SoundManager {
	if logger == nil {
		logger = log.Default()
	}
	return &SoundManager{
		mixer:  &beep.Mixer{},
		volume: volume,
		rng:    rng,
		logger: logger,
	}
}

// Initialize opens the speaker.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("failed to init speaker: %w", err)
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// LoadWalkSounds decodes every wav file matching pattern. When nothing
// matches, synthesized footsteps are used instead.
func (sm *SoundManager) LoadWalkSounds(pattern string) (int, error) {
	paths, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("bad sound pattern %q: %w", pattern, err)
	}

	var sounds []*beep.Buffer
	for _, path := range paths {
		buffer, err := decodeWav(path)
		if err != nil {
			sm.logger.Warn("skipping walk sound", "path", path, "error", err)
			continue
		}
		sm.logger.Info("Found sound", "path", path)
		sounds = append(sounds, buffer)
	}

	if len(sounds) == 0 {
		for i := 0; i < synthesizedVariety; i++ {
			sounds = append(sounds, synthesizeStep(uint64(i+1), 140+40*float64(i)))
		}
		sm.logger.Debug("no walk sounds found, using synthesized steps", "pattern", pattern)
	}

	sm.mu.Lock()
	sm.walkSounds = sounds
	sm.mu.Unlock()
	return len(sounds), nil
}

func decodeWav(path string) (*beep.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	streamer, format, err := wav.Decode(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	defer streamer.Close()

	var source beep.Streamer = streamer
	if format.SampleRate != sampleRate {
		source = beep.Resample(4, format.SampleRate, sampleRate, streamer)
	}

	buffer := beep.NewBuffer(bufferFormat)
	buffer.Append(source)
	return buffer, nil
}

func (sm *SoundManager) WalkSoundCount() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return len(sm.walkSounds)
}

func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.muted = muted
}

func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}

// PlayWalk starts one footstep picked uniformly from the loaded sounds.
func (sm *SoundManager) PlayWalk() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted || len(sm.walkSounds) == 0 {
		return
	}

	buffer := game.Pick(sm.rng, sm.walkSounds)
	step := &effects.Gain{Streamer: buffer.Streamer(0, buffer.Len()), Gain: sm.volume - 1}

	speaker.Lock()
	sm.mixer.Add(step)
	speaker.Unlock()
}

// OnWalked lets the manager be registered as a walk listener.
func (sm *SoundManager) OnWalked(game.WalkEvent) {
	sm.PlayWalk()
}

// Cleanup stops every sound. The speaker itself stays open.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()

	sm.initialized = false
}

// synthesizeStep renders a short filtered noise thump with a low body tone.
func synthesizeStep(seed uint64, body float64) *beep.Buffer {
	buffer := beep.NewBuffer(bufferFormat)
	buffer.Append(beep.Take(sampleRate.N(stepLength), newStepGenerator(seed, body)))
	return buffer
}

type stepGenerator struct {
	noise *rand.Rand
	body  float64
	pos   int
	last  float64
}

func newStepGenerator(seed uint64, body float64) *stepGenerator {
	return &stepGenerator{noise: rand.New(rand.NewPCG(seed, seed*7919)), body: body}
}

func (g *stepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(sampleRate)
		envelope := math.Exp(-t * 45)

		// one-pole low-pass keeps the noise from hissing
		g.last += 0.2 * ((g.noise.Float64()*2 - 1) - g.last)
		sample := envelope * (0.6*g.last + 0.4*math.Sin(2*math.Pi*g.body*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *stepGenerator) Err() error {
	return nil
}
