// Package voice turns short instruction strings into spoken audio.
//
// The Announcer is the only component that owns a playback handle. It keeps at
// most one playback alive, stopping any prior audio before starting new audio,
// and it never reports failures to callers: the countdown on screen is the
// source of truth, speech is a courtesy.
package voice

import (
	"context"
	"errors"
)

// ErrNoAudio indicates the synthesizer answered without any audio payload.
var ErrNoAudio = errors.New("no audio in response")

// Speaker is the capability handed to session engines.
type Speaker interface {
	// Speak returns once playback has started or the attempt has failed.
	Speak(ctx context.Context, text string)
	// SpeakAndWait returns once playback has finished or the attempt has failed.
	SpeakAndWait(ctx context.Context, text string)
	// Stop halts in-flight or playing audio. Safe to call at any time.
	Stop()
}

// Synthesizer converts text into raw PCM audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Player starts playback of raw PCM audio.
type Player interface {
	Play(pcm []byte) (Playback, error)
}

// Playback is a single started playback.
type Playback interface {
	Stop()
	Done() <-chan struct{}
}

// Nop is a Speaker that stays silent.
type Nop struct{}

func (Nop) Speak(context.Context, string)        {}
func (Nop) SpeakAndWait(context.Context, string) {}
func (Nop) Stop()                                {}

// Preloader is implemented by speakers that can synthesize ahead of time.
type Preloader interface {
	Preload(ctx context.Context, texts ...string)
}

// Preload warms speaker with texts when it supports preloading.
func Preload(ctx context.Context, speaker Speaker, texts ...string) {
	if preloader, ok := speaker.(Preloader); ok {
		preloader.Preload(ctx, texts...)
	}
}
