package ui

import (
	"context"
	"errors"
	"image"
	"sync/atomic"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/clipfarm/internal/media"
)

type slowDecoder struct {
	delay time.Duration
	calls atomic.Int32
	err   error
}

func (d *slowDecoder) Frame(ctx context.Context, path string, at time.Duration) (image.Image, error) {
	d.calls.Add(1)
	select {
	case <-time.After(d.delay):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if d.err != nil {
		return nil, d.err
	}
	return image.NewRGBA(image.Rect(0, 0, 16, 9)), nil
}

func newTestPreviewPanel(t *testing.T, decoder media.FrameDecoder) (*PreviewPanel, *atomic.Int32) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	var probes atomic.Int32
	cache := media.NewProbeCache(func(path string) (media.Info, error) {
		probes.Add(1)
		if path == "broken.mp4" {
			return media.Info{}, errors.New("invalid data found when processing input")
		}
		return media.Info{Duration: 10 * time.Second, FPS: 25, Frames: 250}, nil
	})
	p := NewPreviewPanel(NewLocalization(), cache, decoder)
	test.NewWindow(p.Content())
	return p, &probes
}

func loadAndWait(t *testing.T, p *PreviewPanel, path string) error {
	t.Helper()
	done := make(chan error, 1)
	p.Load(path, func(err error) { done <- err })
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatalf("Load of %s did not finish", path)
		return nil
	}
}

func TestPreviewPanel_LoadReadsMetadataOnce(t *testing.T) {
	p, probes := newTestPreviewPanel(t, &slowDecoder{})

	if err := loadAndWait(t, p, "clip.mp4"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if n := probes.Load(); n != 1 {
		t.Errorf("Expected one probe per load, got %d", n)
	}
	if p.Controller().Path() != "clip.mp4" {
		t.Errorf("Expected clip.mp4 loaded, got %q", p.Controller().Path())
	}
	if start, end := p.Controller().Range(); start != 0 || end != 10000 {
		t.Errorf("Expected full range 0-10000ms, got %d-%d", start, end)
	}
	if p.slider.Max != 10000 {
		t.Errorf("Expected slider max 10000, got %v", p.slider.Max)
	}
}

func TestPreviewPanel_LoadError(t *testing.T) {
	p, _ := newTestPreviewPanel(t, &slowDecoder{})

	if err := loadAndWait(t, p, "broken.mp4"); err == nil {
		t.Fatal("Expected probe error")
	}
	if p.Controller().Path() != "" {
		t.Errorf("Expected nothing loaded, got %q", p.Controller().Path())
	}
}

func TestPreviewPanel_SlowFramesKeepRange(t *testing.T) {
	decoder := &slowDecoder{delay: 800 * time.Millisecond}
	p, _ := newTestPreviewPanel(t, decoder)

	if err := loadAndWait(t, p, "clip.mp4"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if err := p.SetRange("00:00:00", "00:00:01"); err != nil {
		t.Fatalf("SetRange failed: %v", err)
	}
	p.Play()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	var maxPos int64
	deadline := time.Now().Add(2500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if pos := p.player.Time(); pos > maxPos {
			maxPos = pos
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()

	// a tick every 200ms wraps an overrun within one interval of the range end
	if maxPos > 1000+2*200 {
		t.Errorf("Expected playback to wrap at the range end, max position %dms", maxPos)
	}
	if !p.player.IsPlaying() {
		t.Error("Expected playback to continue")
	}
	if decoder.calls.Load() == 0 {
		t.Error("Expected frames to be requested")
	}
}

func TestPreviewPanel_DecodeErrorReportedOnce(t *testing.T) {
	p, _ := newTestPreviewPanel(t, &slowDecoder{err: errors.New("exit status 1")})
	var reports atomic.Int32
	p.SetOnError(func(string) { reports.Add(1) })

	if err := loadAndWait(t, p, "clip.mp4"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	for i := 0; i < 3; i++ {
		p.frameAt(int64(i * 1000))
	}
	// the load also renders the first frame in the background
	time.Sleep(100 * time.Millisecond)

	if n := reports.Load(); n != 1 {
		t.Errorf("Expected one error report, got %d", n)
	}
}
