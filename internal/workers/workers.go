package workers

import (
	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
)

// Workers aggregates every configured background worker.
type Workers struct {
	workers []Worker
}

// NewWorkers builds the worker set from configuration. A zero PurgeInterval
// leaves the purge worker out entirely.
func NewWorkers(storages *store.Storages, cfg config.Workers, logger *logger.Logger) *Workers {
	workers := new(Workers)

	if cfg.PurgeInterval > 0 {
		workers.workers = append(workers.workers,
			newPurgeWorker(storages, cfg.PurgeInterval, cfg.PurgeRetention, logger))
	}

	return workers
}

func (w *Workers) Run() {
	for _, worker := range w.workers {
		worker.Run()
	}
}

func (w *Workers) Stop() {
	for _, worker := range w.workers {
		worker.Stop()
	}
}
