package worker

import (
	"log"
	"sync"

	"github.com/fluffyriot/deskpost/internal/config"
	"github.com/fluffyriot/deskpost/internal/fetcher"
	"github.com/fluffyriot/deskpost/internal/report"
	"github.com/fluffyriot/deskpost/internal/typist"
)

type Worker struct {
	Fetcher *fetcher.Client
	Typist  *typist.Typist
	Config  *config.AppConfig
	mu      sync.Mutex
	running bool
	lastRun *report.RunReport
}

func NewWorker(f *fetcher.Client, t *typist.Typist, cfg *config.AppConfig) *Worker {
	return &Worker{
		Fetcher: f,
		Typist:  t,
		Config:  cfg,
	}
}

func (w *Worker) IsRunning() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.running
}

func (w *Worker) LastRun() *report.RunReport {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastRun
}

// RunOnce performs the full fetch-and-type sequence. Only one run can be in
// flight at a time; the automation targets the focused window and cannot be
// interleaved.
func (w *Worker) RunOnce() (*report.RunReport, error) {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		log.Println("Worker: Run already in progress, skipping...")
		return nil, ErrRunInProgress
	}
	w.running = true
	w.mu.Unlock()

	rep, err := runSequence(w.Fetcher, w.Typist, w.Config)

	w.mu.Lock()
	w.running = false
	if rep != nil {
		w.lastRun = rep
	}
	w.mu.Unlock()

	return rep, err
}
