package library

import (
	"context"
	"sync"
	"time"

	"github.com/dmfalke/tunecast/internal/logger"
)

// Worker rescans the library in the background at a fixed interval.
type Worker struct {
	Scanner  *Scanner
	Interval time.Duration
	Logger   *logger.Logger
	wg       sync.WaitGroup
	ctx      context.Context
	cancel   context.CancelFunc
}

func NewWorker(scanner *Scanner, interval time.Duration, log *logger.Logger) *Worker {
	ctx, cancel := context.WithCancel(context.Background())
	return &Worker{
		Scanner:  scanner,
		Interval: interval,
		Logger:   log.WithComponent("scan-worker"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

// Start runs an initial scan and then rescans on the interval.
func (w *Worker) Start() {
	w.Logger.Info("Starting library worker", "interval", w.Interval)
	w.wg.Add(1)
	go w.run()
}

func (w *Worker) Stop() {
	w.Logger.Info("Stopping library worker")
	w.cancel()
	w.wg.Wait()
}

func (w *Worker) run() {
	defer w.wg.Done()

	w.scan()

	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-ticker.C:
			w.scan()
		}
	}
}

func (w *Worker) scan() {
	stats, err := w.Scanner.Scan(w.ctx)
	if err != nil {
		w.Logger.Error("Library scan failed", "error", err)
		return
	}
	w.Logger.Info("Library scan complete",
		"tracks", stats.Tracks,
		"albums", stats.Albums,
		"artists", stats.Artists,
		"skipped", stats.Skipped,
	)
}
