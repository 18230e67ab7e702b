package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// stampSwatch is a tappable preview of a brush.
type stampSwatch struct {
	widget.BaseWidget
	stamp    Stamp
	selected bool
	OnTapped func(Stamp)
	border   *canvas.Rectangle
}

func newStampSwatch(s Stamp, tapped func(Stamp)) *stampSwatch {
	sw := &stampSwatch{stamp: s, OnTapped: tapped}
	sw.ExtendBaseWidget(sw)
	return sw
}

func (s *stampSwatch) CreateRenderer() fyne.WidgetRenderer {
	img := canvas.NewImageFromImage(s.stamp.Image)
	img.FillMode = canvas.ImageFillContain
	img.SetMinSize(fyne.NewSize(32, 32))

	s.border = canvas.NewRectangle(color.Transparent)
	s.border.StrokeWidth = 2
	s.updateBorder()
	return widget.NewSimpleRenderer(container.NewStack(img, s.border))
}

func (s *stampSwatch) setSelected(v bool) {
	s.selected = v
	if s.border != nil {
		s.updateBorder()
		s.border.Refresh()
	}
}

func (s *stampSwatch) updateBorder() {
	if s.selected {
		s.border.StrokeColor = theme.Color(theme.ColorNamePrimary)
	} else {
		s.border.StrokeColor = color.Gray{Y: 150}
	}
}

func (s *stampSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped(s.stamp)
	}
}

// Actions are the toolbar buttons that need the window.
type Actions struct {
	Send   func()
	Save   func()
	Open   func()
	Export func()
}

// NewToolbar builds the brush palette and the board actions.
func NewToolbar(board *StampBoard, stamps []Stamp, counter *widget.Label, act Actions) fyne.CanvasObject {
	var swatches []*stampSwatch
	onStamp := func(s Stamp) {
		board.SetActiveStamp(s.ID)
		for _, sw := range swatches {
			sw.setSelected(sw.stamp.ID == s.ID)
		}
	}
	palette := container.NewHBox()
	for _, s := range stamps {
		sw := newStampSwatch(s, onStamp)
		swatches = append(swatches, sw)
		palette.Add(sw)
	}

	tb := widget.NewToolbar(
		widget.NewToolbarAction(theme.ContentUndoIcon(), board.Undo),
		widget.NewToolbarAction(theme.DeleteIcon(), board.Clear),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.MediaPlayIcon(), act.Send),
		widget.NewToolbarAction(theme.DocumentSaveIcon(), act.Save),
		widget.NewToolbarAction(theme.FolderOpenIcon(), act.Open),
		widget.NewToolbarAction(theme.DocumentPrintIcon(), act.Export),
	)

	return container.NewHBox(
		widget.NewLabel("Stamp:"),
		palette,
		widget.NewSeparator(),
		tb,
		layout.NewSpacer(),
		counter,
	)
}
