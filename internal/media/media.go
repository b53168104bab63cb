// Package media reads stream properties of local video files with
// github.com/AlexEidt/Vidio and serves the frame at a player position to the
// trimmer's preview through a FrameDecoder.
package media

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"
	"sync"
	"time"

	vidio "github.com/AlexEidt/Vidio"
)

// ErrNoFrames is returned for media without a video stream
var ErrNoFrames = errors.New("media has no video frames")

// Info describes the video stream of a file
type Info struct {
	Width    int
	Height   int
	FPS      float64
	Frames   int
	Duration time.Duration
}

// Probe opens path and returns its stream properties
func Probe(path string) (Info, error) {
	video, err := vidio.NewVideo(path)
	if err != nil {
		return Info{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer video.Close()

	return infoOf(video), nil
}

func infoOf(video *vidio.Video) Info {
	return Info{
		Width:    video.Width(),
		Height:   video.Height(),
		FPS:      video.FPS(),
		Frames:   video.Frames(),
		Duration: time.Duration(video.Duration() * float64(time.Second)),
	}
}

// ProbeCache remembers the last probed file, so the preview player and the
// frame grabber share one ffprobe run per loaded video.
type ProbeCache struct {
	mu    sync.Mutex
	probe func(path string) (Info, error)
	path  string
	info  Info
	ok    bool
}

// NewProbeCache creates a cache over probe; nil uses Probe
func NewProbeCache(probe func(path string) (Info, error)) *ProbeCache {
	if probe == nil {
		probe = Probe
	}
	return &ProbeCache{probe: probe}
}

// Info returns the stream properties of path, probing only when path differs from the last call
func (c *ProbeCache) Info(path string) (Info, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.ok && c.path == path {
		return c.info, nil
	}
	info, err := c.probe(path)
	if err != nil {
		return Info{}, err
	}
	c.path, c.info, c.ok = path, info, true
	return info, nil
}

// ProbeDuration returns the duration of path
func (c *ProbeCache) ProbeDuration(ctx context.Context, path string) (time.Duration, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	info, err := c.Info(path)
	if err != nil {
		return 0, err
	}
	return info.Duration, nil
}

// FrameIndex maps a position in milliseconds to a frame number in [0, frames-1]
func FrameIndex(ms int64, fps float64, frames int) int {
	if frames <= 0 || fps <= 0 || ms <= 0 {
		return 0
	}
	idx := int(math.Floor(float64(ms) / 1000 * fps))
	if idx >= frames {
		idx = frames - 1
	}
	return idx
}

// FrameDecoder returns the single frame shown at a position of a file
type FrameDecoder interface {
	Frame(ctx context.Context, path string, at time.Duration) (image.Image, error)
}

// FrameGrabber serves frames of one file. Positions are snapped to frame
// boundaries and the last frame is cached, since the preview asks for the
// same position repeatedly while paused.
type FrameGrabber struct {
	mu      sync.Mutex
	path    string
	info    Info
	decoder FrameDecoder
	timeout time.Duration

	lastIdx  int
	lastImg  image.Image
	hasCache bool
}

// NewFrameGrabber prepares frame access to path using already probed info
func NewFrameGrabber(path string, info Info, decoder FrameDecoder) (*FrameGrabber, error) {
	if info.Frames <= 0 || info.FPS <= 0 {
		return nil, ErrNoFrames
	}
	if decoder == nil {
		return nil, errors.New("no frame decoder")
	}
	return &FrameGrabber{path: path, info: info, decoder: decoder, timeout: DefaultFrameTimeout}, nil
}

// DefaultFrameTimeout bounds one frame decode
const DefaultFrameTimeout = 5 * time.Second

// Path returns the file frames are read from
func (g *FrameGrabber) Path() string {
	return g.path
}

// Info returns the probed stream properties
func (g *FrameGrabber) Info() Info {
	return g.info
}

// FrameAt returns the frame shown at position ms
func (g *FrameGrabber) FrameAt(ms int64) (image.Image, error) {
	idx := FrameIndex(ms, g.info.FPS, g.info.Frames)

	g.mu.Lock()
	defer g.mu.Unlock()

	if g.hasCache && g.lastIdx == idx {
		return g.lastImg, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), g.timeout)
	defer cancel()

	at := time.Duration(float64(idx) * float64(time.Second) / g.info.FPS)
	img, err := g.decoder.Frame(ctx, g.path, at)
	if err != nil {
		return nil, fmt.Errorf("read frame %d: %w", idx, err)
	}

	g.lastIdx, g.lastImg, g.hasCache = idx, img, true
	return img, nil
}
