package voice

import (
	"context"
	"log/slog"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

const defaultCacheSize = 64

// Announcer speaks instructions through a Synthesizer and a Player.
type Announcer struct {
	mu      sync.Mutex
	synth   Synthesizer
	player  Player
	cache   *lru.Cache[string, []byte]
	current Playback
	ticket  uint64
	logger  *slog.Logger
}

// NewAnnouncer creates an announcer with an in-memory audio cache.
func NewAnnouncer(synth Synthesizer, player Player, logger *slog.Logger) *Announcer {
	if logger == nil {
		logger = slog.Default()
	}
	cache, _ := lru.New[string, []byte](defaultCacheSize)
	return &Announcer{
		synth:  synth,
		player: player,
		cache:  cache,
		logger: logger.With("component", "voice"),
	}
}

// Preload synthesizes texts ahead of time so later announcements start quickly.
func (announcer *Announcer) Preload(ctx context.Context, texts ...string) {
	for _, text := range texts {
		if _, err := announcer.audio(ctx, text); err != nil {
			announcer.logger.Warn("preload failed", "text", text, "error", err)
		}
		if ctx.Err() != nil {
			return
		}
	}
}

// Speak implements Speaker.
func (announcer *Announcer) Speak(ctx context.Context, text string) {
	announcer.speak(ctx, text)
}

// SpeakAndWait implements Speaker.
func (announcer *Announcer) SpeakAndWait(ctx context.Context, text string) {
	playback := announcer.speak(ctx, text)
	if playback == nil {
		return
	}
	select {
	case <-playback.Done():
	case <-ctx.Done():
	}
}

// Stop implements Speaker. Announcements still synthesizing are discarded.
func (announcer *Announcer) Stop() {
	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	announcer.ticket++
	announcer.stopLocked()
}

func (announcer *Announcer) speak(ctx context.Context, text string) Playback {
	announcer.mu.Lock()
	announcer.ticket++
	ticket := announcer.ticket
	announcer.stopLocked()
	announcer.mu.Unlock()

	pcm, err := announcer.audio(ctx, text)
	if err != nil {
		if ctx.Err() == nil {
			announcer.logger.Warn("announcement failed", "text", text, "error", err)
		}
		return nil
	}
	if ctx.Err() != nil {
		return nil
	}

	announcer.mu.Lock()
	defer announcer.mu.Unlock()
	if ticket != announcer.ticket {
		// A newer announcement or a Stop superseded this one.
		return nil
	}
	announcer.stopLocked()
	playback, err := announcer.player.Play(pcm)
	if err != nil {
		announcer.logger.Warn("playback failed", "text", text, "error", err)
		return nil
	}
	announcer.current = playback
	return playback
}

func (announcer *Announcer) audio(ctx context.Context, text string) ([]byte, error) {
	if pcm, ok := announcer.cache.Get(text); ok {
		return pcm, nil
	}
	pcm, err := announcer.synth.Synthesize(ctx, text)
	if err != nil {
		return nil, err
	}
	if len(pcm) == 0 {
		return nil, ErrNoAudio
	}
	announcer.cache.Add(text, pcm)
	return pcm, nil
}

func (announcer *Announcer) stopLocked() {
	if announcer.current != nil {
		announcer.current.Stop()
		announcer.current = nil
	}
}
