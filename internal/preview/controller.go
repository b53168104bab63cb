package preview

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/ytget/clipfarm/internal/timecode"
)

// DefaultTickInterval is the period of the range-confinement tick
const DefaultTickInterval = 200 * time.Millisecond

// MillisPerSecond converts time code seconds to player milliseconds
const MillisPerSecond = 1000

// Player is the playback engine driven by the controller. Times are in milliseconds.
type Player interface {
	Load(path string) error
	Play()
	Pause()
	IsPlaying() bool
	Time() int64
	SetTime(ms int64)
	Muted() bool
	SetMuted(muted bool)
}

// Controller binds a Player to a range-scoped slider. It is safe for use
// from the UI goroutine and the tick goroutine at the same time.
type Controller struct {
	mu       sync.Mutex
	player   Player
	path     string
	startMs  int64
	endMs    int64
	dragging bool
}

// NewController creates a controller for player
func NewController(player Player) *Controller {
	return &Controller{player: player}
}

// Load hands path to the player
func (c *Controller) Load(path string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.player.Load(path); err != nil {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	c.path = path
	return nil
}

// Path returns the loaded file, or "" before the first Load
func (c *Controller) Path() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.path
}

// SetRange confines playback to [start, end] and seeks to start.
// Invalid time codes leave the current range unchanged.
func (c *Controller) SetRange(start, end string) error {
	startSec, err := timecode.Parse(start)
	if err != nil {
		return fmt.Errorf("start %q: %w", start, err)
	}
	endSec, err := timecode.Parse(end)
	if err != nil {
		return fmt.Errorf("end %q: %w", end, err)
	}
	if int64(startSec) > math.MaxInt64/MillisPerSecond || int64(endSec) > math.MaxInt64/MillisPerSecond {
		return fmt.Errorf("range %s-%s: %w", start, end, timecode.ErrInvalid)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.startMs = int64(startSec) * MillisPerSecond
	c.endMs = int64(endSec) * MillisPerSecond
	c.player.SetTime(c.startMs)
	return nil
}

// Range returns the current range in milliseconds
func (c *Controller) Range() (startMs, endMs int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.startMs, c.endMs
}

// SliderMax is the slider's upper bound: end-start, or 0 for an empty or inverted range
func (c *Controller) SliderMax() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.endMs > c.startMs {
		return c.endMs - c.startMs
	}
	return 0
}

// TogglePlay pauses a playing player and plays a paused one. It returns the new playing state.
func (c *Controller) TogglePlay() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.player.IsPlaying() {
		c.player.Pause()
		return false
	}
	c.player.Play()
	return true
}

// ToggleMute flips the mute state and returns the new one
func (c *Controller) ToggleMute() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	muted := !c.player.Muted()
	c.player.SetMuted(muted)
	return muted
}

// BeginDrag marks the slider as held by the user
func (c *Controller) BeginDrag() {
	c.mu.Lock()
	c.dragging = true
	c.mu.Unlock()
}

// Drag seeks to start+value while the slider is held; otherwise it is ignored
func (c *Controller) Drag(value int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.dragging {
		return
	}
	c.player.SetTime(c.startMs + value)
}

// EndDrag releases the slider
func (c *Controller) EndDrag() {
	c.mu.Lock()
	c.dragging = false
	c.mu.Unlock()
}

// Dragging reports whether the slider is held
func (c *Controller) Dragging() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dragging
}

// Tick applies range confinement once. When the player is playing and the
// slider is not held it clamps a position before start to start, seeks back
// to start on an overrun past end, and returns the slider value to show.
// ok is false when the slider should be left alone.
func (c *Controller) Tick() (value int64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.dragging || !c.player.IsPlaying() {
		return 0, false
	}

	current := c.player.Time()
	if current < c.startMs {
		current = c.startMs
	}
	if current > c.endMs {
		c.player.SetTime(c.startMs)
		current = c.startMs
	}
	return current - c.startMs, true
}

// Run calls Tick every interval until ctx is done and passes each slider
// value to onTick. onTick runs on the Run goroutine.
func (c *Controller) Run(ctx context.Context, interval time.Duration, onTick func(value int64)) {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if value, ok := c.Tick(); ok && onTick != nil {
				onTick(value)
			}
		}
	}
}
