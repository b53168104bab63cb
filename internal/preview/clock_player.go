package preview

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// DurationProber reports the length of a media file
type DurationProber interface {
	ProbeDuration(ctx context.Context, path string) (time.Duration, error)
}

// ClockPlayer is a Player without a decoder: its position advances with the
// wall clock while playing and stops at the probed media duration. The UI
// renders frames for the current position separately.
type ClockPlayer struct {
	mu         sync.Mutex
	prober     DurationProber
	now        func() time.Time
	path       string
	durationMs int64
	posMs      int64
	anchor     time.Time
	playing    bool
	muted      bool
}

// NewClockPlayer creates a player. prober may be nil, in which case the
// position is unbounded.
func NewClockPlayer(prober DurationProber) *ClockPlayer {
	return &ClockPlayer{prober: prober, now: time.Now}
}

// Load resets the clock for path and reads its duration
func (p *ClockPlayer) Load(path string) error {
	var durationMs int64
	if p.prober != nil {
		d, err := p.prober.ProbeDuration(context.Background(), path)
		if err != nil {
			return fmt.Errorf("probe duration: %w", err)
		}
		durationMs = d.Milliseconds()
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.path = path
	p.durationMs = durationMs
	p.posMs = 0
	p.playing = false
	return nil
}

// Path returns the loaded file
func (p *ClockPlayer) Path() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.path
}

// Duration returns the probed length in milliseconds, 0 if unknown
func (p *ClockPlayer) Duration() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.durationMs
}

func (p *ClockPlayer) Play() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing || p.path == "" {
		return
	}
	if p.durationMs > 0 && p.posMs >= p.durationMs {
		p.posMs = 0
	}
	p.anchor = p.now()
	p.playing = true
}

func (p *ClockPlayer) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.playing {
		return
	}
	p.posMs = p.positionLocked()
	p.playing = false
}

func (p *ClockPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.playing && p.durationMs > 0 && p.positionLocked() >= p.durationMs {
		p.posMs = p.durationMs
		p.playing = false
	}
	return p.playing
}

func (p *ClockPlayer) Time() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

func (p *ClockPlayer) SetTime(ms int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ms < 0 {
		ms = 0
	}
	if p.durationMs > 0 && ms > p.durationMs {
		ms = p.durationMs
	}
	p.posMs = ms
	p.anchor = p.now()
}

func (p *ClockPlayer) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

func (p *ClockPlayer) SetMuted(muted bool) {
	p.mu.Lock()
	p.muted = muted
	p.mu.Unlock()
}

func (p *ClockPlayer) positionLocked() int64 {
	pos := p.posMs
	if p.playing {
		pos += p.now().Sub(p.anchor).Milliseconds()
	}
	if p.durationMs > 0 && pos > p.durationMs {
		pos = p.durationMs
	}
	return pos
}
