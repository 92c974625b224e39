package raster

import (
	"errors"
	"fmt"
	"image"
	"io"
	"time"

	"github.com/HugoSmits86/nativewebp"
	"github.com/phanxgames/stickfall"
)

// ErrRecordTooLong is returned when a recording hits MaxFrames before the
// script finishes.
var ErrRecordTooLong = errors.New("raster: recording exceeded frame limit")

// RecordOptions controls a headless recording.
type RecordOptions struct {
	// Step is the simulated time per captured frame, in seconds.
	Step float32
	// ResumeAfter is how long the figure holds at the midpoint before the
	// default script resumes the fall, in seconds.
	ResumeAfter float32
	MaxFrames   int
	// Shatter, if set, is triggered ShatterDelay seconds after the figure
	// drops off the bottom and drawn over every frame.
	Shatter      *stickfall.Shatter
	ShatterDelay float32
}

// DefaultRecordOptions records at 30 frames per second with a one second
// hold at the midpoint.
func DefaultRecordOptions() RecordOptions {
	return RecordOptions{
		Step:         1.0 / 30,
		ResumeAfter:  1,
		MaxFrames:    3000,
		ShatterDelay: 0.4,
	}
}

// DefaultScript returns the script Record uses when none is given: start,
// hold at the midpoint for the given number of frames, resume, and run until
// landed.
func DefaultScript(holdFrames int) *stickfall.Script {
	s, err := stickfall.ParseScript(fmt.Appendf(nil, `{"steps": [
		{"action": "start"},
		{"action": "wait", "until": "settled"},
		{"action": "wait", "frames": %d},
		{"action": "resume"},
		{"action": "wait", "until": "landed"}
	]}`, max(holdFrames, 1)))
	if err != nil {
		panic("raster: default script: " + err.Error())
	}
	return s
}

// Record drives c with script at a fixed step and renders one image per
// step until the script is done. A nil script uses DefaultScript.
func Record(c *stickfall.FallController, r *Renderer, script *stickfall.Script, opts RecordOptions) ([]image.Image, error) {
	if opts.Step <= 0 {
		opts.Step = 1.0 / 30
	}
	if script == nil {
		script = DefaultScript(int(opts.ResumeAfter / opts.Step))
	}

	if opts.Shatter != nil {
		h := c.OnReachBottom(func(stickfall.FallEvent) { opts.Shatter.TriggerAfter(opts.ShatterDelay) })
		defer h.Remove()
	}

	var frames []image.Image
	for !script.Done() {
		if opts.MaxFrames > 0 && len(frames) >= opts.MaxFrames {
			return frames, ErrRecordTooLong
		}
		script.Step(c)
		c.Update(opts.Step)

		dst := r.NewCanvas()
		if opts.Shatter != nil {
			opts.Shatter.Update(opts.Step)
			r.DrawShatter(dst, opts.Shatter)
		}
		r.Draw(dst, c.Frame())
		frames = append(frames, dst)
	}
	return frames, nil
}

// EncodeWebP writes frames as a looping animated WebP with a fixed delay
// per frame.
func EncodeWebP(w io.Writer, frames []image.Image, delay time.Duration) error {
	if len(frames) == 0 {
		return errors.New("raster: encode webp: no frames")
	}
	ani := &nativewebp.Animation{
		Images:    frames,
		Durations: make([]uint, len(frames)),
		Disposals: make([]uint, len(frames)),
	}
	ms := uint(max(delay.Milliseconds(), 1))
	for i := range ani.Durations {
		ani.Durations[i] = ms
	}
	if err := nativewebp.EncodeAll(w, ani, nil); err != nil {
		return fmt.Errorf("raster: encode webp: %w", err)
	}
	return nil
}
