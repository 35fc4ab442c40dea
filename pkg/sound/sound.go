// Package sound plays the engine loop and the crash effect. Every failure
// is logged and leaves the game silent rather than stopping it.
package sound

import (
	"bytes"
	"log"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
)

const sampleRate = 44100

// Mixer owns the two players. A nil player means its clip is unavailable.
type Mixer struct {
	engine *audio.Player
	crash  *audio.Player
}

func audioContext() *audio.Context {
	if ctx := audio.CurrentContext(); ctx != nil {
		return ctx
	}
	return audio.NewContext(sampleRate)
}

// NewMixer decodes the two MP3 clips. Either may be empty.
func NewMixer(engineMP3, crashMP3 []byte) *Mixer {
	ctx := audioContext()
	m := &Mixer{}

	if len(engineMP3) > 0 {
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(engineMP3))
		if err != nil {
			log.Printf("sound: decode engine: %v", err)
		} else {
			loop := audio.NewInfiniteLoop(stream, stream.Length())
			if m.engine, err = ctx.NewPlayer(loop); err != nil {
				log.Printf("sound: engine player: %v", err)
			}
		}
	}

	if len(crashMP3) > 0 {
		stream, err := mp3.DecodeWithSampleRate(sampleRate, bytes.NewReader(crashMP3))
		if err != nil {
			log.Printf("sound: decode crash: %v", err)
		} else if m.crash, err = ctx.NewPlayer(stream); err != nil {
			log.Printf("sound: crash player: %v", err)
		}
	}

	return m
}

// PlayEngine starts the engine loop if it is not already running.
func (m *Mixer) PlayEngine() {
	if m.engine == nil || m.engine.IsPlaying() {
		return
	}
	m.engine.Play()
}

// StopEngine pauses the engine loop.
func (m *Mixer) StopEngine() {
	if m.engine == nil {
		return
	}
	m.engine.Pause()
}

// RewindEngine puts the engine loop back to its start, e.g. on restart.
func (m *Mixer) RewindEngine() {
	if m.engine == nil {
		return
	}
	if err := m.engine.SetPosition(0); err != nil {
		log.Printf("sound: rewind engine: %v", err)
	}
}

// PlayCrash plays the crash effect from the beginning.
func (m *Mixer) PlayCrash() {
	if m.crash == nil {
		return
	}
	if err := m.crash.SetPosition(0); err != nil {
		log.Printf("sound: rewind crash: %v", err)
	}
	m.crash.Play()
}
