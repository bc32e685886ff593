package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// ReportWarmerInterval is the default time between cache rebuilds.
const ReportWarmerInterval = 5 * time.Minute

// reportWarmer is the part of service.ReportService the warmer drives.
type reportWarmer interface {
	Warm(ctx context.Context) error
}

// ReportWarmer rebuilds the report cache on startup and then on a fixed
// interval, so the first report request after a write is rarely a cold one.
type ReportWarmer struct {
	reports  reportWarmer
	interval time.Duration
	log      zerolog.Logger
}

// NewReportWarmer creates a new ReportWarmer. A non-positive interval uses
// ReportWarmerInterval.
func NewReportWarmer(reports reportWarmer, interval time.Duration, log zerolog.Logger) *ReportWarmer {
	if interval <= 0 {
		interval = ReportWarmerInterval
	}
	return &ReportWarmer{
		reports:  reports,
		interval: interval,
		log:      log.With().Str("component", "report_warmer").Logger(),
	}
}

// Start runs until ctx is cancelled. Call in a goroutine.
func (w *ReportWarmer) Start(ctx context.Context) {
	w.log.Info().Dur("interval", w.interval).Msg("Worker started")

	w.warm(ctx)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.Info().Msg("Worker stopped")
			return
		case <-ticker.C:
			w.warm(ctx)
		}
	}
}

func (w *ReportWarmer) warm(ctx context.Context) {
	start := time.Now()
	if err := w.reports.Warm(ctx); err != nil {
		if ctx.Err() == nil {
			w.log.Error().Err(err).Msg("Report warm-up failed")
		}
		return
	}
	w.log.Debug().Dur("took", time.Since(start)).Msg("Report cache warmed")
}
