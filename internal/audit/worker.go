package audit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sandarbhasthana/pms-app-sub005/internal/metrics"
	"github.com/sandarbhasthana/pms-app-sub005/internal/opday"
	"github.com/sandarbhasthana/pms-app-sub005/internal/property"
)

// maxCatchUp bounds how many missed days one tick closes per property.
const maxCatchUp = 31

// Worker polls properties and closes every operational day that has ended
// since the last closure.
type Worker struct {
	Properties property.Store
	Sheets     DaySheeter
	Closures   ClosureStore
	Calc       opday.Calculator
	Clock      Clock
	Interval   time.Duration
	Logger     *slog.Logger

	wg sync.WaitGroup
}

func (w *Worker) Run(ctx context.Context) error {
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	// kick immediately
	w.Tick(ctx)

	for {
		select {
		case <-ctx.Done():
			w.wg.Wait()
			return ctx.Err()
		case <-t.C:
			w.Tick(ctx)
		}
	}
}

// Tick runs one audit pass over all properties and waits for it to finish.
func (w *Worker) Tick(ctx context.Context) {
	start := time.Now()
	defer func() { metrics.ObserveAuditTick(time.Since(start)) }()

	ps, err := w.Properties.List(ctx)
	if err != nil {
		w.logger().Error("audit.list_properties", "err", err)
		return
	}

	now := w.now()
	for _, p := range ps {
		p := p
		w.wg.Add(1)
		go func() {
			defer w.wg.Done()
			if err := w.closeProperty(ctx, p, now); err != nil {
				w.logger().Error("audit.close_failed", "property", p.ID, "timezone", p.Timezone, "err", err)
			}
		}()
	}
	w.wg.Wait()
}

func (w *Worker) closeProperty(ctx context.Context, p property.Property, now time.Time) error {
	z, err := w.Calc.Zone(p.Timezone)
	if err != nil {
		metrics.ObserveAuditClosure(err)
		return err
	}

	// the most recent operational day that has fully ended
	target := z.OperationalDate(now).AddDays(-1)

	last, ok, err := w.Closures.LastClosed(ctx, p.ID)
	if err != nil {
		return err
	}
	next := target
	if ok {
		next = last.AddDays(1)
		if opday.DaysBetween(next, target) >= maxCatchUp {
			w.logger().Warn("audit.catch_up_truncated", "property", p.ID, "last_closed", last, "target", target)
			next = target.AddDays(-(maxCatchUp - 1))
		}
	}

	for d := next; !d.After(target); d = d.AddDays(1) {
		err := w.closeDay(ctx, p, d, now)
		metrics.ObserveAuditClosure(err)
		if err != nil {
			return err
		}
		w.logger().Info("audit.day_closed", "property", p.ID, "business_date", d)
	}
	return nil
}

func (w *Worker) closeDay(ctx context.Context, p property.Property, d opday.Date, now time.Time) error {
	sheet, err := w.Sheets.DaySheet(ctx, p.ID, d)
	if err != nil {
		return err
	}
	return w.Closures.Close(ctx, Closure{
		PropertyID: p.ID,
		Date:       d,
		ClosedAt:   now.UTC(),
		Arrivals:   len(sheet.Arrivals),
		Departures: len(sheet.Departures),
		InHouse:    len(sheet.InHouse),
	})
}

func (w *Worker) now() time.Time {
	if w.Clock == nil {
		return time.Now()
	}
	return w.Clock.Now()
}

func (w *Worker) logger() *slog.Logger {
	if w.Logger == nil {
		return slog.Default()
	}
	return w.Logger
}
