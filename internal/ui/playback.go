package ui

import (
	"image"
	"log"
	"sync"

	"StampBoard/internal/replay"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

type playbackItem = replay.Item[image.Image]

// Playback draws a replay on an overlay container. The player calls it from
// its own goroutine, so every scene change goes through fyne.Do.
type Playback struct {
	layer   *fyne.Container
	density float64

	mu    sync.Mutex
	views map[int]*canvas.Image
	anims []*fyne.Animation
}

var _ replay.Renderer[image.Image] = (*Playback)(nil)

// NewPlayback returns a renderer drawing into an empty overlay.
func NewPlayback(density float64) *Playback {
	return &Playback{
		layer:   container.NewWithoutLayout(),
		density: density,
		views:   make(map[int]*canvas.Image),
	}
}

// Layer is the overlay to stack above the board.
func (p *Playback) Layer() *fyne.Container { return p.layer }

// Viewport returns the overlay size in logical units.
func (p *Playback) Viewport() fyne.Size { return p.layer.Size() }

func (p *Playback) Show(items []playbackItem, t replay.Transform) {
	fyne.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, it := range items {
			view := canvas.NewImageFromImage(it.Image)
			view.FillMode = canvas.ImageFillContain
			p.place(view, it, t)
			p.views[it.Index] = view
			p.layer.Add(view)
		}
	})
}

func (p *Playback) Animate(items []playbackItem, step replay.Step) {
	fyne.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, it := range items {
			view, ok := p.views[it.Index]
			if !ok {
				continue
			}
			it := it
			a := fyne.NewAnimation(step.Duration, func(f float32) {
				p.place(view, it, lerp(step.From, step.To, float64(f)))
				view.Refresh()
			})
			a.Curve = animationCurve(step.Ease)
			p.anims = append(p.anims, a)
			a.Start()
		}
	})
}

func (p *Playback) Release(items []playbackItem) {
	fyne.Do(func() {
		p.mu.Lock()
		defer p.mu.Unlock()
		for _, a := range p.anims {
			a.Stop()
		}
		p.anims = nil
		for _, it := range items {
			if view, ok := p.views[it.Index]; ok {
				p.layer.Remove(view)
				delete(p.views, it.Index)
			}
		}
		p.layer.Refresh()
		log.Printf("[REPLAY] released %d stamps", len(items))
	})
}

// place sizes view around the item's centre for transform t.
func (p *Playback) place(view *canvas.Image, it playbackItem, t replay.Transform) {
	base := naturalSize(it.Image, p.density)
	if it.Size != nil {
		base = fyne.NewSize(float32(it.Size.Width), float32(it.Size.Height))
	}
	size := fyne.NewSize(base.Width*float32(t.Scale), base.Height*float32(t.Scale))
	view.Resize(size)
	view.Move(fyne.NewPos(float32(it.Position.X)-size.Width/2, float32(it.Position.Y)-size.Height/2))
	view.Translucency = 1 - t.Alpha
}

func animationCurve(e replay.Easing) fyne.AnimationCurve {
	if e == replay.EaseInOut {
		return fyne.AnimationEaseInOut
	}
	return fyne.AnimationLinear
}

func lerp(a, b replay.Transform, v float64) replay.Transform {
	return replay.Transform{
		Scale: a.Scale + (b.Scale-a.Scale)*v,
		Alpha: a.Alpha + (b.Alpha-a.Alpha)*v,
	}
}
