package replay

import (
	"context"

	"StampBoard/internal/record"
)

// Replay schedules rec into the viewport described by opts and plays it on r,
// blocking until it finishes or ctx is cancelled. images maps stamp ids to
// whatever handle r draws with; ids without an entry are skipped. onComplete
// runs once when the replay finishes, including straight away when nothing is
// left to show.
func Replay[H any](ctx context.Context, rec record.Record, images map[string]H, opts Options, r Renderer[H], onComplete func()) error {
	plan, err := Schedule(rec, images, opts)
	if err != nil {
		return err
	}
	return NewPlayer[H](nil).Run(ctx, plan, r, onComplete)
}
