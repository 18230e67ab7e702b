package replay

import (
	"context"
	"errors"
	"testing"
	"time"

	"StampBoard/internal/geom"
	"StampBoard/internal/record"

	"gonum.org/v1/gonum/floats/scalar"
)

// instantClock fires every wait immediately and remembers what was asked.
type instantClock struct {
	waits []time.Duration
}

func (c *instantClock) After(d time.Duration) <-chan time.Time {
	c.waits = append(c.waits, d)
	ch := make(chan time.Time, 1)
	ch <- time.Time{}
	return ch
}

type call struct {
	op    string
	items []string
	kind  StepKind
}

type recorder struct {
	calls     []call
	onAnimate func(step Step)
}

func ids(items []Item[string]) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func (r *recorder) Show(items []Item[string], t Transform) {
	r.calls = append(r.calls, call{op: "show", items: ids(items)})
}

func (r *recorder) Animate(items []Item[string], step Step) {
	r.calls = append(r.calls, call{op: "animate", items: ids(items), kind: step.Kind})
	if r.onAnimate != nil {
		r.onAnimate(step)
	}
}

func (r *recorder) Release(items []Item[string]) {
	r.calls = append(r.calls, call{op: "release", items: ids(items)})
}

func testRecord() record.Record {
	return record.Record{
		Points: []record.Point{
			{ID: "a", X: 100, Y: 50},
			{ID: "missing", X: 10, Y: 10},
			{ID: "b", X: 0, Y: 0},
			{ID: "a", X: 200, Y: 100},
		},
		OriginalWidth:  200,
		OriginalHeight: 100,
	}
}

var testImages = map[string]string{"a": "img-a", "b": "img-b"}

func TestFitWiderRecord(t *testing.T) {
	l, err := Fit(geom.Sz(200, 100), geom.Sz(400, 400), geom.Insets{})
	if err != nil {
		t.Fatal(err)
	}
	if l.Scale != 2 {
		t.Errorf("Scale = %v, want 2", l.Scale)
	}
	if p := l.Map(100, 50); p != geom.Pt(200, 200) {
		t.Errorf("Map(100,50) = %v, want (200,200)", p)
	}
	if l.Frame.Origin != geom.Pt(0, 100) || l.Frame.Size != geom.Sz(400, 200) {
		t.Errorf("Frame = %+v", l.Frame)
	}
}

func TestFitTallerRecord(t *testing.T) {
	ins := geom.Insets{Top: 10, Left: 20, Bottom: 30, Right: 20}
	l, err := Fit(geom.Sz(100, 400), geom.Sz(300, 240), ins)
	if err != nil {
		t.Fatal(err)
	}
	// 200 tall available, so scale 0.5 and 50 wide, centred in 300.
	if !scalar.EqualWithinAbs(l.Scale, 0.5, 1e-12) {
		t.Errorf("Scale = %v", l.Scale)
	}
	if l.Frame.Origin != geom.Pt(125, 10) || l.Frame.Size != geom.Sz(50, 200) {
		t.Errorf("Frame = %+v", l.Frame)
	}
}

func TestFitWithInsetsWide(t *testing.T) {
	ins := geom.Insets{Top: 0, Left: 50, Bottom: 0, Right: 50}
	l, err := Fit(geom.Sz(400, 100), geom.Sz(500, 500), ins)
	if err != nil {
		t.Fatal(err)
	}
	if l.Scale != 1 || l.Frame.Origin != geom.Pt(50, 200) {
		t.Errorf("layout = %+v", l)
	}
}

func TestFitErrors(t *testing.T) {
	if _, err := Fit(geom.Sz(0, 10), geom.Sz(10, 10), geom.Insets{}); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("empty canvas err = %v", err)
	}
	if _, err := Fit(geom.Sz(10, 10), geom.Sz(10, 10), geom.Insets{Left: 6, Right: 6}); !errors.Is(err, ErrEmptyViewport) {
		t.Errorf("empty viewport err = %v", err)
	}
}

func TestScheduleTimeline(t *testing.T) {
	opts := Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()}
	plan, err := Schedule(testRecord(), testImages, opts)
	if err != nil {
		t.Fatal(err)
	}
	if plan.Skipped != 1 || len(plan.Items) != 3 {
		t.Fatalf("items %d skipped %d", len(plan.Items), plan.Skipped)
	}
	if plan.Items[0].Position != geom.Pt(200, 200) || plan.Items[0].Image != "img-a" {
		t.Errorf("item 0 = %+v", plan.Items[0])
	}
	if plan.Items[1].Index != 2 {
		t.Errorf("item 1 index = %d, want 2", plan.Items[1].Index)
	}
	if plan.Slice != time.Second {
		t.Errorf("Slice = %v, want 1s", plan.Slice)
	}

	want := []struct {
		kind  StepKind
		item  int
		start time.Duration
		dur   time.Duration
	}{
		{StepAppear, 0, 0, time.Second},
		{StepAppear, 1, time.Second, time.Second},
		{StepAppear, 2, 2 * time.Second, time.Second},
		{StepHold, -1, 3 * time.Second, time.Second},
		{StepDismiss, -1, 4 * time.Second, 500 * time.Millisecond},
		{StepComplete, -1, 4500 * time.Millisecond, 0},
	}
	if len(plan.Steps) != len(want) {
		t.Fatalf("steps = %d, want %d", len(plan.Steps), len(want))
	}
	for i, w := range want {
		s := plan.Steps[i]
		if s.Kind != w.kind || s.Item != w.item || s.Start != w.start || s.Duration != w.dur {
			t.Errorf("step %d = %v item %d at %v for %v", i, s.Kind, s.Item, s.Start, s.Duration)
		}
	}
	if plan.Duration() != 4500*time.Millisecond {
		t.Errorf("Duration = %v", plan.Duration())
	}
}

func TestScheduleValidatesTiming(t *testing.T) {
	bad := Timing{Total: time.Second, Hold: time.Second, Dismiss: time.Second}
	if _, err := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(1, 1), Timing: bad}); !errors.Is(err, ErrInvalidTiming) {
		t.Errorf("err = %v", err)
	}
}

func TestRunPlaysInOrder(t *testing.T) {
	plan, err := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()})
	if err != nil {
		t.Fatal(err)
	}
	clock := &instantClock{}
	r := &recorder{}
	completed := 0
	p := NewPlayer[string](clock)
	if err := p.Run(context.Background(), plan, r, func() { completed++ }); err != nil {
		t.Fatal(err)
	}
	if completed != 1 {
		t.Errorf("onComplete called %d times", completed)
	}
	if p.Status() != StatusCompleted {
		t.Errorf("Status = %v", p.Status())
	}

	wantOps := []string{"show", "animate", "animate", "animate", "animate", "release"}
	if len(r.calls) != len(wantOps) {
		t.Fatalf("calls = %+v", r.calls)
	}
	for i, op := range wantOps {
		if r.calls[i].op != op {
			t.Errorf("call %d = %s, want %s", i, r.calls[i].op, op)
		}
	}
	if got := r.calls[2].items; len(got) != 1 || got[0] != "b" {
		t.Errorf("second appear animates %v", got)
	}
	if r.calls[4].kind != StepDismiss || len(r.calls[4].items) != 3 {
		t.Errorf("dismiss call = %+v", r.calls[4])
	}

	wantWaits := []time.Duration{time.Second, time.Second, time.Second, time.Second, 500 * time.Millisecond}
	if len(clock.waits) != len(wantWaits) {
		t.Fatalf("waits = %v", clock.waits)
	}
	for i := range wantWaits {
		if clock.waits[i] != wantWaits[i] {
			t.Errorf("wait %d = %v, want %v", i, clock.waits[i], wantWaits[i])
		}
	}

	if err := p.Run(context.Background(), plan, r, nil); !errors.Is(err, ErrAlreadyStarted) {
		t.Errorf("second Run err = %v", err)
	}
}

func TestRunEmptyCompletesImmediately(t *testing.T) {
	rec := record.Record{Points: []record.Point{{ID: "ghost", X: 1, Y: 1}}, OriginalWidth: 10, OriginalHeight: 10}
	clock := &instantClock{}
	r := &recorder{}
	completed := 0
	plan, err := Schedule(rec, testImages, Options{Viewport: geom.Sz(10, 10), Timing: DefaultTiming()})
	if err != nil {
		t.Fatal(err)
	}
	if err := NewPlayer[string](clock).Run(context.Background(), plan, r, func() { completed++ }); err != nil {
		t.Fatal(err)
	}
	if completed != 1 || len(r.calls) != 0 || len(clock.waits) != 0 {
		t.Errorf("completed %d, calls %v, waits %v", completed, r.calls, clock.waits)
	}
}

func TestRunCancelReleases(t *testing.T) {
	plan, err := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()})
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r := &recorder{}
	r.onAnimate = func(step Step) {
		if step.Kind == StepAppear && step.Item == 1 {
			cancel()
		}
	}
	completed := false
	p := NewPlayer[string](&instantClock{})
	err = p.Run(ctx, plan, r, func() { completed = true })
	if !errors.Is(err, ErrCancelled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
	if completed {
		t.Error("onComplete called after cancel")
	}
	last := r.calls[len(r.calls)-1]
	if last.op != "release" || len(last.items) != 3 {
		t.Errorf("last call = %+v", last)
	}
	// show, appear a, appear b, release: nothing is scheduled after the cancel.
	if len(r.calls) != 4 {
		t.Errorf("calls = %+v", r.calls)
	}
	if p.Status() != StatusCancelled {
		t.Errorf("Status = %v", p.Status())
	}
	if err := p.Run(context.Background(), plan, r, nil); !errors.Is(err, ErrCancelled) {
		t.Errorf("rerun err = %v", err)
	}
}

func TestCancelBeforeRun(t *testing.T) {
	plan, _ := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()})
	p := NewPlayer[string](&instantClock{})
	p.Cancel()
	r := &recorder{}
	if err := p.Run(context.Background(), plan, r, func() { t.Error("completed") }); !errors.Is(err, ErrCancelled) {
		t.Errorf("err = %v", err)
	}
	if len(r.calls) != 0 {
		t.Errorf("calls = %v", r.calls)
	}
}

func TestCancelFromAnotherGoroutine(t *testing.T) {
	plan, _ := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()})
	p := NewPlayer[string](nil)
	r := &recorder{}
	started := make(chan struct{})
	r.onAnimate = func(Step) {
		select {
		case <-started:
		default:
			close(started)
		}
	}
	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background(), plan, r, nil) }()
	<-started
	p.Cancel()
	select {
	case err := <-done:
		if !errors.Is(err, ErrCancelled) {
			t.Errorf("err = %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("replay did not stop")
	}
}

func TestReplayEntryPoint(t *testing.T) {
	rec := record.Record{OriginalWidth: 10, OriginalHeight: 10, Points: []record.Point{}}
	done := false
	err := Replay(context.Background(), rec, testImages, Options{Viewport: geom.Sz(10, 10), Timing: DefaultTiming()}, &recorder{}, func() { done = true })
	if err != nil || !done {
		t.Errorf("Replay = %v, done %v", err, done)
	}
	if err := Replay(context.Background(), record.Record{}, testImages, Options{Viewport: geom.Sz(10, 10), Timing: DefaultTiming()}, &recorder{}, nil); !errors.Is(err, ErrEmptyCanvas) {
		t.Errorf("empty record err = %v", err)
	}
}

func TestStepEasing(t *testing.T) {
	plan, err := Schedule(testRecord(), testImages, Options{Viewport: geom.Sz(400, 400), Timing: DefaultTiming()})
	if err != nil {
		t.Fatal(err)
	}
	want := map[StepKind]Easing{StepAppear: EaseInOut, StepHold: EaseLinear, StepDismiss: EaseLinear}
	for _, st := range plan.Steps {
		if w, ok := want[st.Kind]; ok && st.Ease != w {
			t.Errorf("%v step eases %v, want %v", st.Kind, st.Ease, w)
		}
	}
	if got := Easing(7).String(); got != "Easing(7)" {
		t.Errorf("String = %q", got)
	}
}

func TestStepKindString(t *testing.T) {
	for k, want := range map[StepKind]string{StepAppear: "appear", StepHold: "hold", StepDismiss: "dismiss", StepComplete: "complete", 9: "StepKind(9)"} {
		if got := k.String(); got != want {
			t.Errorf("%d.String() = %q", int(k), got)
		}
	}
}
