package voice

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSynth struct {
	mu    sync.Mutex
	calls []string
	err   error
	gate  chan struct{}
}

func (synth *fakeSynth) Synthesize(ctx context.Context, text string) ([]byte, error) {
	synth.mu.Lock()
	synth.calls = append(synth.calls, text)
	gate := synth.gate
	err := synth.err
	synth.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if err != nil {
		return nil, err
	}
	return []byte(text), nil
}

func (synth *fakeSynth) callCount() int {
	synth.mu.Lock()
	defer synth.mu.Unlock()
	return len(synth.calls)
}

type fakePlayback struct {
	text    string
	stopped bool
	done    chan struct{}
}

func (playback *fakePlayback) Stop() {
	if !playback.stopped {
		playback.stopped = true
		close(playback.done)
	}
}

func (playback *fakePlayback) Done() <-chan struct{} { return playback.done }

type fakePlayer struct {
	mu        sync.Mutex
	playbacks []*fakePlayback
	err       error
}

func (player *fakePlayer) Play(pcm []byte) (Playback, error) {
	player.mu.Lock()
	defer player.mu.Unlock()
	if player.err != nil {
		return nil, player.err
	}
	playback := &fakePlayback{text: string(pcm), done: make(chan struct{})}
	player.playbacks = append(player.playbacks, playback)
	return playback, nil
}

func (player *fakePlayer) list() []*fakePlayback {
	player.mu.Lock()
	defer player.mu.Unlock()
	return append([]*fakePlayback(nil), player.playbacks...)
}

func TestSpeakStopsPreviousPlayback(t *testing.T) {
	player := &fakePlayer{}
	announcer := NewAnnouncer(&fakeSynth{}, player, nil)

	announcer.Speak(context.Background(), "Close eyes slowly")
	announcer.Speak(context.Background(), "Pause")

	playbacks := player.list()
	require.Len(t, playbacks, 2)
	assert.True(t, playbacks[0].stopped)
	assert.False(t, playbacks[1].stopped)
	assert.Equal(t, "Pause", playbacks[1].text)
}

func TestSpeakUsesCache(t *testing.T) {
	synth := &fakeSynth{}
	announcer := NewAnnouncer(synth, &fakePlayer{}, nil)

	announcer.Preload(context.Background(), "Pause", "Open gently")
	announcer.Speak(context.Background(), "Pause")
	announcer.Speak(context.Background(), "Pause")

	assert.Equal(t, 2, synth.callCount())
}

func TestSpeakSwallowsFailures(t *testing.T) {
	player := &fakePlayer{}
	announcer := NewAnnouncer(&fakeSynth{err: errors.New("quota exceeded")}, player, nil)

	announcer.Speak(context.Background(), "Pause")
	announcer.SpeakAndWait(context.Background(), "Pause")
	assert.Empty(t, player.list())

	failingPlayer := &fakePlayer{err: errors.New("no device")}
	announcer = NewAnnouncer(&fakeSynth{}, failingPlayer, nil)
	announcer.SpeakAndWait(context.Background(), "Pause")
}

func TestStopDiscardsInFlightAnnouncement(t *testing.T) {
	synth := &fakeSynth{gate: make(chan struct{})}
	player := &fakePlayer{}
	announcer := NewAnnouncer(synth, player, nil)

	done := make(chan struct{})
	go func() {
		announcer.Speak(context.Background(), "Open gently")
		close(done)
	}()
	require.Eventually(t, func() bool { return synth.callCount() == 1 }, time.Second, time.Millisecond)

	announcer.Stop()
	close(synth.gate)
	<-done

	assert.Empty(t, player.list())
	announcer.Stop()
}

func TestSpeakAndWaitReturnsWhenPlaybackEnds(t *testing.T) {
	player := &fakePlayer{}
	announcer := NewAnnouncer(&fakeSynth{}, player, nil)

	done := make(chan struct{})
	go func() {
		announcer.SpeakAndWait(context.Background(), "Blink twice")
		close(done)
	}()
	require.Eventually(t, func() bool { return len(player.list()) == 1 }, time.Second, time.Millisecond)

	select {
	case <-done:
		t.Fatal("returned before playback finished")
	case <-time.After(20 * time.Millisecond):
	}

	announcer.Stop()
	<-done
}
