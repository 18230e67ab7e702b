package ui

import (
	"testing"

	"StampBoard/internal/replay"
	"StampBoard/internal/state"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"gonum.org/v1/gonum/floats/scalar"
)

func newTestBoard(t *testing.T, max int) *StampBoard {
	t.Helper()
	test.NewTempApp(t)
	e, err := state.NewEngine(state.Config{MinSpacing: 10, MaxPlacements: max})
	if err != nil {
		t.Fatal(err)
	}
	b := NewStampBoard(e, StampImages(DefaultStamps()), 2)
	b.Resize(fyne.NewSize(200, 200))
	b.SetActiveStamp("heart")
	return b
}

func press(b *StampBoard, x, y float32) {
	b.MouseDown(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary})
}

func drag(b *StampBoard, x, y, dx, dy float32) {
	b.Dragged(&fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Dragged: fyne.NewDelta(dx, dy)})
}

func release(b *StampBoard, x, y float32) {
	b.MouseUp(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}, Button: desktop.MouseButtonPrimary})
	b.DragEnd()
}

func TestBoardStrokeAndUndo(t *testing.T) {
	b := newTestBoard(t, 100)
	var counts []int
	b.OnCountChanged = func(n int) { counts = append(counts, n) }

	press(b, 10, 10)
	drag(b, 45, 10, 35, 0)
	release(b, 45, 10)
	if len(b.views) != 4 || len(b.layer.Objects) != 4 {
		t.Fatalf("views %d, layer %d, want 4", len(b.views), len(b.layer.Objects))
	}
	if b.Count() != 4 || counts[len(counts)-1] != 4 {
		t.Errorf("count %d, reported %v", b.Count(), counts)
	}

	press(b, 100, 100)
	release(b, 100, 100)
	b.Undo()
	if len(b.views) != 4 {
		t.Errorf("after undo views = %d", len(b.views))
	}
	b.Clear()
	if len(b.views) != 0 || len(b.layer.Objects) != 0 {
		t.Errorf("after clear views = %d", len(b.views))
	}
	if counts[len(counts)-1] != 0 {
		t.Errorf("last reported count = %d", counts[len(counts)-1])
	}
}

func TestBoardTouchDragStartsStroke(t *testing.T) {
	b := newTestBoard(t, 100)
	drag(b, 30, 20, 20, 0)
	b.DragEnd()
	// Down at (10,20), move to (30,20): two stamps.
	if len(b.views) != 3 {
		t.Errorf("views = %d, want 3", len(b.views))
	}
}

func TestBoardPressOutsideDrawsNothing(t *testing.T) {
	b := newTestBoard(t, 100)
	press(b, 250, 10)
	drag(b, 150, 10, -100, 0)
	release(b, 150, 10)
	if len(b.views) != 0 {
		t.Errorf("views = %d", len(b.views))
	}
}

func TestBoardLimitReportedOnce(t *testing.T) {
	b := newTestBoard(t, 3)
	limits := 0
	b.OnLimitReached = func(int) { limits++ }
	press(b, 10, 10)
	for x := float32(20); x <= 190; x += 10 {
		drag(b, x, 10, 10, 0)
	}
	release(b, 190, 10)
	if limits != 1 || len(b.views) != 3 {
		t.Errorf("limits %d, views %d", limits, len(b.views))
	}
}

func TestBoardRecord(t *testing.T) {
	b := newTestBoard(t, 100)
	press(b, 10.25, 10)
	release(b, 10.25, 10)
	rec, err := b.Record()
	if err != nil {
		t.Fatal(err)
	}
	if rec.OriginalWidth != 400 || rec.OriginalHeight != 400 {
		t.Errorf("size = %dx%d", rec.OriginalWidth, rec.OriginalHeight)
	}
	if len(rec.Points) != 1 || rec.Points[0].X != 21 || rec.Points[0].Y != 20 || rec.Points[0].ID != "heart" {
		t.Errorf("points = %+v", rec.Points)
	}
}

func TestNaturalSize(t *testing.T) {
	img := DefaultStamps()[0].Image
	if s := naturalSize(img, 2); s != fyne.NewSize(48, 48) {
		t.Errorf("naturalSize = %v", s)
	}
	if s := naturalSize(img, 0); s != fyne.NewSize(96, 96) {
		t.Errorf("naturalSize with no density = %v", s)
	}
}

func TestLerp(t *testing.T) {
	mid := lerp(replay.Hidden, replay.Shown, 0.5)
	if !scalar.EqualWithinAbs(mid.Scale, 0.65, 1e-12) || !scalar.EqualWithinAbs(mid.Alpha, 0.5, 1e-12) {
		t.Errorf("lerp = %+v", mid)
	}
	if end := lerp(replay.Shown, replay.Gone, 1); !scalar.EqualWithinAbs(end.Scale, 2, 1e-12) || end.Alpha != 0 {
		t.Error("lerp end")
	}
}

func TestAnimationCurve(t *testing.T) {
	if got, want := animationCurve(replay.EaseInOut)(0.25), fyne.AnimationEaseInOut(0.25); got != want {
		t.Errorf("EaseInOut at 0.25 = %v, want %v", got, want)
	}
	if got := animationCurve(replay.EaseLinear)(0.25); got != 0.25 {
		t.Errorf("EaseLinear at 0.25 = %v", got)
	}
}
