package bookingsvc

import (
	"context"
	"log/slog"
	"time"

	"github.com/ZakariaZack98/PH-vehicle-rental/model"
)

// OverdueSource lists ACTIVE bookings whose rent period has ended.
type OverdueSource interface {
	ListOverdueActiveIDs(ctx context.Context, now time.Time) ([]int64, error)
}

// Returner is the slice of Service the sweeper needs.
type Returner interface {
	Return(ctx context.Context, bookingID int64) (*model.Booking, error)
}

// Sweeper force-returns overdue bookings on a fixed interval. A failure on
// one booking is logged and the run continues; Return being idempotent makes
// overlapping runs harmless.
type Sweeper struct {
	src      OverdueSource
	ret      Returner
	log      *slog.Logger
	interval time.Duration
}

func NewSweeper(src OverdueSource, ret Returner, log *slog.Logger, interval time.Duration) *Sweeper {
	return &Sweeper{src: src, ret: ret, log: log, interval: interval}
}

// Run blocks until ctx is cancelled.
func (w *Sweeper) Run(ctx context.Context) {
	t := time.NewTicker(w.interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep processes one pass. Exported so a run can be triggered directly.
func (w *Sweeper) Sweep(ctx context.Context) {
	ids, err := w.src.ListOverdueActiveIDs(ctx, time.Now().UTC())
	if err != nil {
		w.log.Error("sweep: list overdue failed", "err", err)
		return
	}
	if len(ids) == 0 {
		return
	}

	returned := 0
	for _, id := range ids {
		if _, err := w.ret.Return(ctx, id); err != nil {
			w.log.Error("sweep: auto-return failed", "booking_id", id, "err", err)
			continue
		}
		returned++
	}
	w.log.Info("sweep: overdue bookings returned", "found", len(ids), "returned", returned)
}
