// Package ffmpeg wraps the ffmpeg and ffprobe executables used for
// stream-copy trimming, duration probing and single preview frames.
package ffmpeg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os/exec"
	"strconv"
	"strings"
	"time"
)

// Executable and argument constants
const (
	FFmpegCommand  = "ffmpeg"
	FFprobeCommand = "ffprobe"

	OverwriteFlag      = "-y"
	SeekFlag           = "-ss"
	InputFlag          = "-i"
	DurationFlag       = "-t"
	CodecFlag          = "-c"
	CodecCopy          = "copy"
	NegativeTSFlag     = "-avoid_negative_ts"
	NegativeTSMakeZero = "make_zero"

	FFprobeLogLevel     = "error"
	FFprobeShowEntries  = "format=duration"
	FFprobeOutputFormat = "default=noprint_wrappers=1:nokey=1"

	VersionFlag = "-version"
)

// Single frame extraction arguments
const (
	LogLevelFlag    = "-v"
	FrameCountFlag  = "-frames:v"
	FormatFlag      = "-f"
	FormatImagePipe = "image2pipe"
	VideoCodecFlag  = "-c:v"
	CodecPNG        = "png"
	StdoutTarget    = "pipe:1"
)

// TrimRequest describes one stream-copy cut
type TrimRequest struct {
	Input string
	// Start is passed to ffmpeg verbatim, e.g. "00:01:05".
	Start string
	// Duration of the cut in whole seconds.
	Duration int
	Output   string
}

// Adapter runs ffmpeg and ffprobe. The zero value uses the binaries from PATH.
type Adapter struct {
	ffmpeg  string
	ffprobe string
}

// New creates an adapter; empty paths fall back to the binaries on PATH
func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = FFmpegCommand
	}
	if ffprobePath == "" {
		ffprobePath = FFprobeCommand
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

// FFmpegPath returns the ffmpeg executable in use
func (a *Adapter) FFmpegPath() string {
	if a.ffmpeg == "" {
		return FFmpegCommand
	}
	return a.ffmpeg
}

// FFprobePath returns the ffprobe executable in use
func (a *Adapter) FFprobePath() string {
	if a.ffprobe == "" {
		return FFprobeCommand
	}
	return a.ffprobe
}

// BuildTrimArgs builds the ffmpeg arguments for a stream-copy cut
func BuildTrimArgs(req TrimRequest) []string {
	return []string{
		OverwriteFlag,
		SeekFlag, req.Start,
		InputFlag, req.Input,
		DurationFlag, strconv.Itoa(req.Duration),
		CodecFlag, CodecCopy,
		NegativeTSFlag, NegativeTSMakeZero,
		req.Output,
	}
}

// Trim cuts req.Duration seconds starting at req.Start without re-encoding.
// A non-zero exit returns an error carrying ffmpeg's stderr.
func (a *Adapter) Trim(ctx context.Context, req TrimRequest) error {
	cmd := exec.CommandContext(ctx, a.FFmpegPath(), BuildTrimArgs(req)...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return &ExitError{Err: err, Stderr: strings.TrimSpace(stderr.String())}
	}
	return nil
}

// ProbeDuration returns the container duration reported by ffprobe
func (a *Adapter) ProbeDuration(ctx context.Context, input string) (time.Duration, error) {
	cmd := exec.CommandContext(ctx, a.FFprobePath(),
		"-v", FFprobeLogLevel,
		"-show_entries", FFprobeShowEntries,
		"-of", FFprobeOutputFormat,
		input,
	)
	b, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe duration: %w", err)
	}
	return parseDuration(string(b))
}

// BuildFrameArgs builds the ffmpeg arguments writing the frame at position
// at as one PNG to stdout. Seeking before -i keeps the decode short.
func BuildFrameArgs(input string, at time.Duration) []string {
	if at < 0 {
		at = 0
	}
	return []string{
		LogLevelFlag, FFprobeLogLevel,
		SeekFlag, strconv.FormatFloat(at.Seconds(), 'f', 3, 64),
		InputFlag, input,
		FrameCountFlag, "1",
		FormatFlag, FormatImagePipe,
		VideoCodecFlag, CodecPNG,
		StdoutTarget,
	}
}

// Frame decodes the single frame shown at position at
func (a *Adapter) Frame(ctx context.Context, input string, at time.Duration) (image.Image, error) {
	cmd := exec.CommandContext(ctx, a.FFmpegPath(), BuildFrameArgs(input, at)...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("ffmpeg frame at %v: %w: %s", at, err, strings.TrimSpace(stderr.String()))
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg frame at %v: no image written", at)
	}
	img, err := png.Decode(&stdout)
	if err != nil {
		return nil, fmt.Errorf("decode frame at %v: %w", at, err)
	}
	return img, nil
}

// VerifyInstalled checks that the ffmpeg executable can be started
func (a *Adapter) VerifyInstalled(ctx context.Context) error {
	cmd := exec.CommandContext(ctx, a.FFmpegPath(), VersionFlag)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("ffmpeg not available at %q: %w", a.FFmpegPath(), err)
	}
	return nil
}

func parseDuration(out string) (time.Duration, error) {
	s := strings.TrimSpace(out)
	sec, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parse duration %q: %w", s, err)
	}
	if sec < 0 {
		return 0, fmt.Errorf("negative duration %q", s)
	}
	return time.Duration(sec * float64(time.Second)), nil
}

// ExitError is returned when ffmpeg fails
type ExitError struct {
	Err    error
	Stderr string
}

func (e *ExitError) Error() string {
	if e.Stderr == "" {
		return fmt.Sprintf("ffmpeg trim: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg trim: %v\n%s", e.Err, e.Stderr)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}
