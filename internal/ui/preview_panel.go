package ui

import (
	"context"
	"fmt"
	"image"
	"log"
	"path/filepath"
	"sync"
	"sync/atomic"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/clipfarm/internal/media"
	"github.com/ytget/clipfarm/internal/preview"
	"github.com/ytget/clipfarm/internal/timecode"
)

// PreviewPanel shows a loaded video confined to the selected range
type PreviewPanel struct {
	localization *Localization
	probes       *media.ProbeCache
	player       *preview.ClockPlayer
	controller   *preview.Controller

	mu      sync.Mutex
	decoder media.FrameDecoder
	grabber *media.FrameGrabber
	// rendering is set while a frame is being decoded; ticks arriving meanwhile are dropped
	rendering atomic.Bool

	titleLabel    *widget.Label
	frame         *canvas.Image
	playBtn       *widget.Button
	muteBtn       *widget.Button
	slider        *widget.Slider
	positionLabel *widget.Label
	// programmatic is true while the slider is moved by code rather than by the user
	programmatic bool

	onError func(message string)
	content fyne.CanvasObject
}

// NewPreviewPanel creates a preview whose player and frames share the probes
// of probes. Frames are decoded by decoder; nil shows no frames.
func NewPreviewPanel(localization *Localization, probes *media.ProbeCache, decoder media.FrameDecoder) *PreviewPanel {
	player := preview.NewClockPlayer(probes)
	p := &PreviewPanel{
		localization: localization,
		probes:       probes,
		player:       player,
		controller:   preview.NewController(player),
		decoder:      decoder,
	}
	p.createUI()
	return p
}

// Content returns the preview widget tree
func (p *PreviewPanel) Content() fyne.CanvasObject {
	return p.content
}

// Controller exposes the playback controller
func (p *PreviewPanel) Controller() *preview.Controller {
	return p.controller
}

// SetFrameDecoder switches the frame decoder used for the next loaded video
func (p *PreviewPanel) SetFrameDecoder(decoder media.FrameDecoder) {
	p.mu.Lock()
	p.decoder = decoder
	p.mu.Unlock()
}

// SetOnError sets where load and decode errors are reported
func (p *PreviewPanel) SetOnError(onError func(message string)) {
	p.onError = onError
}

func (p *PreviewPanel) createUI() {
	p.titleLabel = widget.NewLabel("")

	p.frame = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, 16, 9)))
	p.frame.FillMode = canvas.ImageFillContain
	p.frame.SetMinSize(fyne.NewSize(PreviewMinWidth, PreviewMinHeight))
	background := canvas.NewRectangle(colorSurface)

	p.playBtn = widget.NewButtonWithIcon("", theme.MediaPlayIcon(), p.onTogglePlay)
	p.muteBtn = widget.NewButtonWithIcon("", theme.VolumeUpIcon(), p.onToggleMute)

	p.slider = widget.NewSlider(0, 0)
	p.slider.OnChanged = p.onSliderChanged
	p.slider.OnChangeEnded = p.onSliderReleased

	p.positionLabel = widget.NewLabel(timecode.Format(0))

	controls := container.NewBorder(nil, nil,
		container.NewHBox(p.playBtn, p.muteBtn),
		p.positionLabel,
		p.slider,
	)

	p.content = container.NewBorder(p.titleLabel, controls, nil, nil,
		container.NewStack(background, p.frame))
	p.RefreshTexts()
}

// RefreshTexts re-applies localized strings
func (p *PreviewPanel) RefreshTexts() {
	text := p.localization.GetText
	if p.controller.Path() == "" {
		p.titleLabel.SetText(text(KeyVideoPreview))
	}
	p.updatePlayButton(p.player.IsPlaying())
	p.updateMuteButton(p.player.Muted())
}

// Run drives the slider from the player clock until ctx is done
func (p *PreviewPanel) Run(ctx context.Context) {
	p.controller.Run(ctx, preview.DefaultTickInterval, p.onTick)
}

// Load probes path off the UI goroutine, then opens it in the player with the
// range covering the whole file. done runs on the UI goroutine with the result.
func (p *PreviewPanel) Load(path string, done func(error)) {
	go func() {
		info, err := p.probes.Info(path)
		fyne.Do(func() {
			if err == nil {
				err = p.open(path, info)
			}
			if done != nil {
				done(err)
			}
		})
	}()
}

// open applies a probed file. The player reads the duration from the probe cache.
func (p *PreviewPanel) open(path string, info media.Info) error {
	if err := p.controller.Load(path); err != nil {
		return err
	}

	p.mu.Lock()
	grabber, err := media.NewFrameGrabber(path, info, p.decoder)
	if err != nil {
		// playback position still works without frames
		log.Printf("Preview frames unavailable for %s: %v", path, err)
		grabber = nil
	}
	p.grabber = grabber
	p.mu.Unlock()

	p.titleLabel.SetText(filepath.Base(path))
	durationSec := int(p.player.Duration() / preview.MillisPerSecond)
	return p.SetRange(timecode.Format(0), timecode.Format(durationSec))
}

// SetRange confines playback to [start, end] and resets the slider
func (p *PreviewPanel) SetRange(start, end string) error {
	if err := p.controller.SetRange(start, end); err != nil {
		return err
	}
	p.setSlider(0, p.controller.SliderMax())
	p.renderAsync(0)
	return nil
}

// Play starts playback of the current range
func (p *PreviewPanel) Play() {
	if !p.player.IsPlaying() {
		p.updatePlayButton(p.controller.TogglePlay())
	}
}

func (p *PreviewPanel) onTogglePlay() {
	if p.controller.Path() == "" {
		return
	}
	p.updatePlayButton(p.controller.TogglePlay())
}

func (p *PreviewPanel) onToggleMute() {
	p.updateMuteButton(p.controller.ToggleMute())
}

func (p *PreviewPanel) updatePlayButton(playing bool) {
	text := p.localization.GetText
	if playing {
		p.playBtn.SetText(text(KeyPause))
		p.playBtn.SetIcon(theme.MediaPauseIcon())
		return
	}
	p.playBtn.SetText(text(KeyPlay))
	p.playBtn.SetIcon(theme.MediaPlayIcon())
}

func (p *PreviewPanel) updateMuteButton(muted bool) {
	text := p.localization.GetText
	if muted {
		p.muteBtn.SetText(text(KeyUnmute))
		p.muteBtn.SetIcon(theme.VolumeMuteIcon())
		return
	}
	p.muteBtn.SetText(text(KeyMute))
	p.muteBtn.SetIcon(theme.VolumeUpIcon())
}

// onSliderChanged fires for user drags and for programmatic updates; only the former seek
func (p *PreviewPanel) onSliderChanged(value float64) {
	if p.programmatic {
		return
	}
	if !p.controller.Dragging() {
		p.controller.BeginDrag()
	}
	p.controller.Drag(int64(value))
	p.updatePosition(int64(value))
	p.renderAsync(int64(value))
}

func (p *PreviewPanel) onSliderReleased(float64) {
	p.controller.EndDrag()
}

// setSlider moves the slider without it being treated as a user drag
func (p *PreviewPanel) setSlider(value, sliderMax int64) {
	p.programmatic = true
	defer func() { p.programmatic = false }()

	if sliderMax >= 0 && p.slider.Max != float64(sliderMax) {
		p.slider.Max = float64(sliderMax)
		p.slider.Refresh()
	}
	p.slider.SetValue(float64(value))
	p.updatePosition(value)
}

func (p *PreviewPanel) updatePosition(value int64) {
	startMs, endMs := p.controller.Range()
	current := int((startMs + value) / preview.MillisPerSecond)
	p.positionLabel.SetText(timecode.Format(current) + " / " + timecode.Format(int(endMs/preview.MillisPerSecond)))
}

// onTick runs on the controller goroutine. It never decodes, so a slow frame
// cannot delay the next Tick and its seek back to the range start.
func (p *PreviewPanel) onTick(value int64) {
	fyne.Do(func() {
		if p.controller.Dragging() {
			return
		}
		p.setSlider(value, -1)
		p.renderAsync(value)
	})
}

// renderAsync decodes the frame at slider value off the UI goroutine
func (p *PreviewPanel) renderAsync(value int64) {
	if !p.rendering.CompareAndSwap(false, true) {
		return
	}
	go func() {
		defer p.rendering.Store(false)
		img := p.frameAt(value)
		if img == nil {
			return
		}
		fyne.Do(func() { p.showFrame(img) })
	}()
}

// frameAt returns the frame for slider value, or nil when none can be decoded
func (p *PreviewPanel) frameAt(value int64) image.Image {
	p.mu.Lock()
	grabber := p.grabber
	p.mu.Unlock()
	if grabber == nil {
		return nil
	}

	startMs, _ := p.controller.Range()
	img, err := grabber.FrameAt(startMs + value)
	if err != nil {
		log.Printf("Failed to decode preview frame of %s: %v", grabber.Path(), err)
		// report once, then keep playing without frames
		p.mu.Lock()
		first := p.grabber == grabber
		if first {
			p.grabber = nil
		}
		p.mu.Unlock()
		if first && p.onError != nil {
			message := fmt.Sprintf("%s: %v", p.localization.GetText(KeyPreviewError), err)
			fyne.Do(func() { p.onError(message) })
		}
		return nil
	}
	return img
}

func (p *PreviewPanel) showFrame(img image.Image) {
	p.frame.Image = img
	p.frame.Refresh()
}
