package animation

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"blinkrest/internal/core/model"
)

// Range defines a duration range with random sampling.
type Range struct {
	Min time.Duration
	Max time.Duration
}

// Random returns a random duration within the range.
func (value Range) Random(rng *rand.Rand) time.Duration {
	if value.Max <= value.Min {
		return value.Min
	}
	delta := value.Max - value.Min
	return value.Min + time.Duration(rng.Int63n(int64(delta)))
}

// Config contains animation timing values.
type Config struct {
	FrameInterval time.Duration
	EaseDuration  time.Duration
	Targets       Targets

	BreathePeriod time.Duration
	BreatheLow    Openness
	BreatheHigh   Openness

	BlinkClosedDuration Range
	BlinkInterval       Range
	DoubleBlinkChance   float64
	DoubleBlinkGap      Range
}

// Engine animates the openness of the on-screen eye.
type Engine struct {
	mu      sync.Mutex
	config  Config
	update  func(Openness)
	current Openness
	cancel  context.CancelFunc
	rng     *rand.Rand
}

// New creates a new animation engine. update is called from the animation
// goroutine; callers marshal it onto their UI thread.
func New(config Config, update func(Openness)) *Engine {
	if config.FrameInterval <= 0 {
		config.FrameInterval = DefaultConfig().FrameInterval
	}
	return &Engine{
		config:  config,
		update:  update,
		current: Wide,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Current returns the last reported openness.
func (engine *Engine) Current() Openness {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	return engine.current
}

// ShowPhase eases the eye towards the openness of phase.
func (engine *Engine) ShowPhase(ctx context.Context, phase model.Phase) {
	target := engine.config.Targets.Target(phase)
	engine.start(ctx, func(runCtx context.Context) {
		engine.easeTo(runCtx, target, engine.config.EaseDuration)
	})
}

// StartBreathe pulses a nearly closed eye until stopped.
func (engine *Engine) StartBreathe(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		if !engine.easeTo(runCtx, engine.config.BreatheLow, engine.config.EaseDuration) {
			return
		}
		half := engine.config.BreathePeriod / 2
		for {
			if !engine.easeTo(runCtx, engine.config.BreatheHigh, half) {
				return
			}
			if !engine.easeTo(runCtx, engine.config.BreatheLow, half) {
				return
			}
		}
	})
}

// StartIdle blinks an open eye at random intervals.
func (engine *Engine) StartIdle(ctx context.Context) {
	engine.start(ctx, func(runCtx context.Context) {
		engine.set(Wide)
		for {
			if !sleepWithContext(runCtx, engine.config.BlinkInterval.Random(engine.rng)) {
				return
			}
			if !engine.blink(runCtx) {
				return
			}
			if engine.rng.Float64() <= engine.config.DoubleBlinkChance {
				if !sleepWithContext(runCtx, engine.config.DoubleBlinkGap.Random(engine.rng)) {
					return
				}
				if !engine.blink(runCtx) {
					return
				}
			}
		}
	})
}

// Stop terminates any active animation.
func (engine *Engine) Stop() {
	engine.mu.Lock()
	defer engine.mu.Unlock()
	if engine.cancel != nil {
		engine.cancel()
		engine.cancel = nil
	}
}

func (engine *Engine) start(parent context.Context, run func(context.Context)) {
	engine.mu.Lock()
	if engine.cancel != nil {
		engine.cancel()
	}
	runCtx, cancel := context.WithCancel(parent)
	engine.cancel = cancel
	engine.mu.Unlock()

	go run(runCtx)
}

func (engine *Engine) blink(ctx context.Context) bool {
	engine.set(Shut)
	if !sleepWithContext(ctx, engine.config.BlinkClosedDuration.Random(engine.rng)) {
		return false
	}
	engine.set(Wide)
	return true
}

// easeTo reports false when ctx ends before the target is reached.
func (engine *Engine) easeTo(ctx context.Context, target Openness, duration time.Duration) bool {
	from := engine.Current()
	if duration <= 0 || from == target {
		engine.set(target)
		return ctx.Err() == nil
	}
	frames := int(math.Ceil(float64(duration) / float64(engine.config.FrameInterval)))
	for frame := 1; frame <= frames; frame++ {
		if !sleepWithContext(ctx, engine.config.FrameInterval) {
			return false
		}
		engine.set(Ease(from, target, float64(frame)/float64(frames)))
	}
	return true
}

func (engine *Engine) set(value Openness) {
	engine.mu.Lock()
	engine.current = value
	update := engine.update
	engine.mu.Unlock()
	if update != nil {
		update(value)
	}
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
