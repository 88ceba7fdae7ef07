package workers

import (
	"context"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
)

// purgeWorker periodically hard-deletes tombstones older than the retention
// window. Soft-deleted rows must outlive the longest expected client offline
// period so deletions still propagate through sync; after that they are only
// dead weight.
type purgeWorker struct {
	storages  *store.Storages
	interval  time.Duration
	retention time.Duration
	logger    *logger.Logger
	stop      chan struct{}
	done      chan struct{}
}

func newPurgeWorker(storages *store.Storages, interval, retention time.Duration, logger *logger.Logger) *purgeWorker {
	return &purgeWorker{
		storages:  storages,
		interval:  interval,
		retention: retention,
		logger:    logger,
		stop:      make(chan struct{}),
		done:      make(chan struct{}),
	}
}

func (w *purgeWorker) Run() {
	w.logger.Info().
		Dur("interval", w.interval).
		Dur("retention", w.retention).
		Msg("starting tombstone purge worker")

	go w.loop()
}

func (w *purgeWorker) Stop() {
	close(w.stop)
	<-w.done
	w.logger.Info().Msg("tombstone purge worker stopped")
}

func (w *purgeWorker) loop() {
	defer close(w.done)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-w.stop:
			return
		case <-ticker.C:
			w.sweep(context.Background())
		}
	}
}

// sweep runs one purge pass over every entity repository.
func (w *purgeWorker) sweep(ctx context.Context) {
	cutoff := time.Now().Add(-w.retention)

	for kind, repository := range w.storages.Entities() {
		purged, err := repository.PurgeDeletedBefore(ctx, cutoff)
		if err != nil {
			w.logger.Err(err).
				Str("func", "*purgeWorker.sweep").
				Str("entity_type", string(kind)).
				Msg("purge pass failed")
			continue
		}

		if purged > 0 {
			w.logger.Info().
				Str("entity_type", string(kind)).
				Int64("purged", purged).
				Msg("tombstones purged")
		}
	}
}
