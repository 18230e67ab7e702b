package ui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log"
	"sync"

	"StampBoard/internal/config"
	"StampBoard/internal/geom"
	"StampBoard/internal/record"
	"StampBoard/internal/replay"
	"StampBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

// App is the demo window: a stamp board, its toolbar and a replay overlay.
type App struct {
	cfg     *config.Config
	win     fyne.Window
	board   *StampBoard
	images  map[string]image.Image
	counter *widget.Label
	overlay *fyne.Container

	ctx    context.Context
	cancel context.CancelFunc

	mu     sync.Mutex
	player *replay.Player[image.Image]
}

// RunApp opens the window and blocks until it is closed.
func RunApp(cfg *config.Config) error {
	engine, err := state.NewEngine(cfg.EngineConfig())
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}
	log.Printf("[BOARD] session %s", engine.SessionID())

	stamps := DefaultStamps()
	a := &App{
		cfg:     cfg,
		images:  StampImages(stamps),
		counter: widget.NewLabel(""),
		overlay: container.NewStack(),
	}
	a.ctx, a.cancel = context.WithCancel(context.Background())
	defer a.cancel()

	fyneApp := app.New()
	a.win = fyneApp.NewWindow("Stamp Board")
	a.win.Resize(fyne.NewSize(480, 800))

	a.board = NewStampBoard(engine, a.images, cfg.Display.Density)
	a.board.OnCountChanged = a.updateCounter
	a.board.OnLimitReached = func(max int) {
		dialog.ShowInformation("Limit reached", fmt.Sprintf("A drawing holds at most %d stamps.", max), a.win)
	}
	if len(stamps) > 0 {
		a.board.SetActiveStamp(stamps[0].ID)
	}
	a.updateCounter(0)

	toolbar := NewToolbar(a.board, stamps, a.counter, Actions{
		Send:   a.send,
		Save:   a.saveRecord,
		Open:   a.openRecord,
		Export: a.exportPDF,
	})
	a.win.SetContent(container.NewBorder(toolbar, nil, nil, nil, container.NewStack(a.board, a.overlay)))
	a.win.SetOnClosed(a.stopReplay)
	a.win.ShowAndRun()
	return nil
}

func (a *App) updateCounter(total int) {
	a.counter.SetText(fmt.Sprintf("%d / %d", total, a.cfg.Engine.MaxPlacements))
}

// send encodes the board the way it would be transmitted and replays it.
func (a *App) send() {
	rec, err := a.board.Record()
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	data, err := record.Marshal(rec)
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	log.Printf("[BOARD] record %s", data)
	a.play(data)
}

// play decodes data and replays it over the board, stopping any replay
// already running.
func (a *App) play(data []byte) {
	rec, err := record.Unmarshal(data)
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}
	a.stopReplay()

	pb := NewPlayback(a.board.Density())
	a.overlay.Objects = []fyne.CanvasObject{pb.Layer()}
	a.overlay.Refresh()

	vp := pb.Viewport()
	plan, err := replay.Schedule(rec, a.images, replay.Options{
		Viewport:  geom.Sz(float64(vp.Width), float64(vp.Height)),
		Insets:    a.cfg.Replay.Insets,
		StampSize: a.cfg.Engine.StampSize,
		Timing:    a.cfg.Timing(),
	})
	if err != nil {
		dialog.ShowError(err, a.win)
		return
	}

	player := replay.NewPlayer[image.Image](nil)
	a.mu.Lock()
	a.player = player
	a.mu.Unlock()

	log.Printf("[REPLAY] %d stamps, %d skipped, %v", len(plan.Items), plan.Skipped, plan.Duration())
	go func() {
		err := player.Run(a.ctx, plan, pb, func() {
			log.Printf("[REPLAY] finished")
		})
		if err != nil && !errors.Is(err, replay.ErrCancelled) {
			log.Printf("[REPLAY] failed: %v", err)
		}
	}()
}

func (a *App) stopReplay() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.player != nil {
		a.player.Cancel()
		a.player = nil
	}
}
