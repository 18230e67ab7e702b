package ui

import (
	"image"
	"image/color"
	"log"

	"StampBoard/internal/geom"
	"StampBoard/internal/record"
	"StampBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// StampBoard feeds pointer input to a placement engine and draws what it
// places. It holds no drawing state of its own beyond the views.
type StampBoard struct {
	widget.BaseWidget
	engine   *state.Engine
	images   map[string]image.Image
	layer    *fyne.Container
	views    []*canvas.Image // one per placement, in history order
	tracking bool
	density  float64

	OnLimitReached func(max int)
	OnCountChanged func(total int)
}

var _ fyne.Widget = (*StampBoard)(nil)
var _ fyne.Draggable = (*StampBoard)(nil)
var _ desktop.Mouseable = (*StampBoard)(nil)

// NewStampBoard wraps engine. density overrides the canvas scale used for
// records when positive.
func NewStampBoard(engine *state.Engine, images map[string]image.Image, density float64) *StampBoard {
	b := &StampBoard{
		engine:  engine,
		images:  images,
		layer:   container.NewWithoutLayout(),
		density: density,
	}
	b.ExtendBaseWidget(b)
	return b
}

// SetActiveStamp selects the brush for the next stroke.
func (b *StampBoard) SetActiveStamp(id string) {
	b.engine.SetActiveStamp(state.StampID(id))
}

// Resize keeps the engine bounds in step with the widget.
func (b *StampBoard) Resize(size fyne.Size) {
	b.BaseWidget.Resize(size)
	if err := b.engine.SetCanvas(geom.Sz(float64(size.Width), float64(size.Height))); err != nil {
		log.Printf("[BOARD] resize during stroke: %v", err)
	}
}

// Density returns pixels per logical unit for records.
func (b *StampBoard) Density() float64 {
	if b.density > 0 {
		return b.density
	}
	if app := fyne.CurrentApp(); app != nil {
		if c := app.Driver().CanvasForObject(b); c != nil {
			return float64(c.Scale())
		}
	}
	return 1
}

// Record encodes the current history.
func (b *StampBoard) Record() (record.Record, error) {
	c, err := record.NewCodec(b.Density())
	if err != nil {
		return record.Record{}, err
	}
	return record.FromHistory(b.engine.Strokes(), b.engine.Canvas(), c)
}

// Count returns the number of placements on the board.
func (b *StampBoard) Count() int { return b.engine.Count() }

// Undo removes the last stroke.
func (b *StampBoard) Undo() {
	_, events, err := b.engine.Undo()
	if err != nil {
		log.Printf("[BOARD] undo: %v", err)
		return
	}
	b.apply(events)
}

// Clear removes everything.
func (b *StampBoard) Clear() {
	_, events, err := b.engine.Clear()
	if err != nil {
		log.Printf("[BOARD] clear: %v", err)
		return
	}
	b.apply(events)
}

func (b *StampBoard) pointerDown(pos fyne.Position) {
	b.tracking = true
	b.apply(b.engine.Begin(geom.Pt(float64(pos.X), float64(pos.Y))))
}

func (b *StampBoard) pointerMoved(pos fyne.Position) {
	if !b.tracking {
		return
	}
	b.apply(b.engine.Extend(geom.Pt(float64(pos.X), float64(pos.Y))))
}

func (b *StampBoard) pointerUp() {
	if !b.tracking {
		return
	}
	b.tracking = false
	b.engine.End()
}

func (b *StampBoard) apply(events []state.Event) {
	for _, ev := range events {
		switch ev := ev.(type) {
		case state.PlacementAdded:
			b.addView(ev)
		case state.CountChanged:
			b.trimViews(ev.Total)
			if b.OnCountChanged != nil {
				b.OnCountChanged(ev.Total)
			}
		case state.LimitReached:
			if b.OnLimitReached != nil {
				b.OnLimitReached(ev.Max)
			}
		case state.StrokeRemoved:
			log.Printf("[BOARD] stroke %s removed (%d stamps)", ev.StrokeID, ev.Count)
		}
	}
}

func (b *StampBoard) addView(ev state.PlacementAdded) {
	img, ok := b.images[string(ev.Placement.Stamp)]
	if !ok {
		log.Printf("[BOARD] no image for stamp %q", ev.Placement.Stamp)
		img = image.NewNRGBA(image.Rect(0, 0, stampPixels, stampPixels))
	}
	view := canvas.NewImageFromImage(img)
	view.FillMode = canvas.ImageFillContain
	size := b.stampSize(img)
	view.Resize(size)
	p := ev.Placement.Position
	view.Move(fyne.NewPos(float32(p.X)-size.Width/2, float32(p.Y)-size.Height/2))
	b.views = append(b.views, view)
	b.layer.Add(view)
	if b.OnCountChanged != nil {
		b.OnCountChanged(ev.Index + 1)
	}
}

func (b *StampBoard) trimViews(total int) {
	for len(b.views) > total {
		last := b.views[len(b.views)-1]
		b.views = b.views[:len(b.views)-1]
		b.layer.Remove(last)
	}
	b.layer.Refresh()
}

func (b *StampBoard) stampSize(img image.Image) fyne.Size {
	if sz := b.engine.Config().StampSize; sz != nil {
		return fyne.NewSize(float32(sz.Width), float32(sz.Height))
	}
	return naturalSize(img, b.Density())
}

// naturalSize is the image's own size in logical units.
func naturalSize(img image.Image, density float64) fyne.Size {
	bounds := img.Bounds()
	if bounds.Empty() {
		return fyne.NewSize(32, 32)
	}
	if density <= 0 {
		density = 1
	}
	return fyne.NewSize(float32(float64(bounds.Dx())/density), float32(float64(bounds.Dy())/density))
}

func (b *StampBoard) MouseDown(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointerDown(e.Position)
	}
}

func (b *StampBoard) MouseUp(e *desktop.MouseEvent) {
	if e.Button == desktop.MouseButtonPrimary {
		b.pointerUp()
	}
}

// Dragged also starts the stroke on touch drivers, which send no MouseDown.
func (b *StampBoard) Dragged(e *fyne.DragEvent) {
	if !b.tracking {
		b.pointerDown(fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY))
	}
	b.pointerMoved(e.Position)
}

func (b *StampBoard) DragEnd() {
	b.pointerUp()
}

func (b *StampBoard) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.NRGBA{R: 24, G: 24, B: 28, A: 255})
	return widget.NewSimpleRenderer(container.NewStack(bg, b.layer))
}

func (b *StampBoard) MinSize() fyne.Size {
	return fyne.NewSize(300, 300)
}
