// Package oto plays synthesized PCM on the system audio device.
package oto

import (
	"bytes"
	"fmt"
	"sync"
	"time"

	"blinkrest/internal/voice"

	ebitenoto "github.com/ebitengine/oto/v3"
)

const playbackPollInterval = 20 * time.Millisecond

// Player plays PCM through the system audio device.
type Player struct {
	context *ebitenoto.Context
}

// New opens the audio device. Only one device context may exist per process.
func New(sampleRate, channels int) (*Player, error) {
	context, ready, err := ebitenoto.NewContext(&ebitenoto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: channels,
		Format:       ebitenoto.FormatSignedInt16LE,
	})
	if err != nil {
		return nil, fmt.Errorf("open audio device: %w", err)
	}
	<-ready
	return &Player{context: context}, nil
}

// Play implements voice.Player.
func (player *Player) Play(pcm []byte) (voice.Playback, error) {
	source := player.context.NewPlayer(bytes.NewReader(pcm))
	source.Play()
	playback := &otoPlayback{
		source: source,
		done:   make(chan struct{}),
	}
	go playback.watch()
	return playback, nil
}

type otoPlayback struct {
	source *ebitenoto.Player
	done   chan struct{}
	once   sync.Once
}

func (playback *otoPlayback) Stop() {
	playback.once.Do(func() {
		playback.source.Pause()
		close(playback.done)
	})
}

func (playback *otoPlayback) Done() <-chan struct{} {
	return playback.done
}

func (playback *otoPlayback) watch() {
	ticker := time.NewTicker(playbackPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-playback.done:
			return
		case <-ticker.C:
			if !playback.source.IsPlaying() {
				playback.once.Do(func() {
					close(playback.done)
				})
				return
			}
		}
	}
}

var _ voice.Player = (*Player)(nil)
