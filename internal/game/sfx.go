package game

import (
	"encoding/binary"
	"log"
	"math"
	"math/rand"

	"shmup/internal/config"

	"github.com/hajimehoshi/ebiten/v2/audio"
)

// Sound identifies a synthesized effect
type Sound int

const (
	SoundPartDestroyed Sound = iota
	SoundEnemyDestroyed
)

// SoundBoard plays short synthesized effects. A nil board is silent.
type SoundBoard struct {
	context *audio.Context
	volume  float64
	clips   map[Sound][]byte
	players map[Sound]*audio.Player
}

// NewSoundBoard creates a board on the process audio context, creating the
// context at cfg.SampleRate when none exists yet.
func NewSoundBoard(cfg config.AudioConfig) *SoundBoard {
	sampleRate := cfg.SampleRate
	if sampleRate <= 0 {
		sampleRate = 48000
	}

	ctx := audio.CurrentContext()
	if ctx == nil {
		ctx = audio.NewContext(sampleRate)
	} else if ctx.SampleRate() != sampleRate {
		log.Printf("Warning: audio context already running at %d Hz, ignoring sample_rate %d", ctx.SampleRate(), sampleRate)
		sampleRate = ctx.SampleRate()
	}

	return &SoundBoard{
		context: ctx,
		volume:  cfg.Volume,
		clips: map[Sound][]byte{
			SoundPartDestroyed:  synthesize(SoundPartDestroyed, sampleRate),
			SoundEnemyDestroyed: synthesize(SoundEnemyDestroyed, sampleRate),
		},
		players: make(map[Sound]*audio.Player),
	}
}

// Play restarts the effect from the beginning
func (sb *SoundBoard) Play(s Sound) {
	if sb == nil {
		return
	}
	player, ok := sb.players[s]
	if !ok {
		clip, ok := sb.clips[s]
		if !ok {
			return
		}
		player = sb.context.NewPlayerFromBytes(clip)
		sb.players[s] = player
	}

	player.SetVolume(sb.volume)
	if err := player.Rewind(); err != nil {
		log.Printf("Warning: failed to rewind sound %d: %v", s, err)
	}
	player.Play()
}

// synthesize renders 16-bit little-endian stereo PCM for s
func synthesize(s Sound, sampleRate int) []byte {
	var (
		seconds float64
		sample  func(t, env float64) float64
	)
	rng := rand.New(rand.NewSource(int64(s) + 1))

	switch s {
	case SoundPartDestroyed:
		// Falling square blip
		seconds = 0.12
		sample = func(t, env float64) float64 {
			freq := 880 - 500*t/seconds
			if math.Sin(2*math.Pi*freq*t) >= 0 {
				return 0.5
			}
			return -0.5
		}
	case SoundEnemyDestroyed:
		// Noise burst over a low rumble
		seconds = 0.6
		sample = func(t, env float64) float64 {
			noise := rng.Float64()*2 - 1
			rumble := math.Sin(2 * math.Pi * 55 * t)
			return 0.7*noise*env + 0.3*rumble
		}
	default:
		return nil
	}

	frames := int(seconds * float64(sampleRate))
	buf := make([]byte, frames*4)
	for i := 0; i < frames; i++ {
		t := float64(i) / float64(sampleRate)
		env := 1 - t/seconds
		env *= env

		v := sample(t, env) * env
		if v > 1 {
			v = 1
		} else if v < -1 {
			v = -1
		}
		pcm := uint16(int16(v * math.MaxInt16))
		binary.LittleEndian.PutUint16(buf[i*4:], pcm)
		binary.LittleEndian.PutUint16(buf[i*4+2:], pcm)
	}
	return buf
}
