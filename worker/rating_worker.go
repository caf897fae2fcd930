package worker

import (
	"go.uber.org/zap"

	"github.com/deepeshsaheb-tal/bookcritic/log"
	"github.com/deepeshsaheb-tal/bookcritic/model"
	"github.com/deepeshsaheb-tal/bookcritic/store"
)

// AggregatePool recomputes denormalized rating columns in the background.
// Review handlers push a job after every create, update or delete.
type AggregatePool struct {
	queue chan model.Job
}

func NewAggregatePool(store *store.Store, size int) *AggregatePool {
	pool := &AggregatePool{
		queue: make(chan model.Job),
	}

	for i := 0; i < size; i++ {
		worker := &AggregateWorker{id: i, store: store}
		go worker.Run(pool.queue)
	}

	return pool
}

func (p *AggregatePool) GetQueue() chan model.Job {
	return p.queue
}

// Implement WorkPool interface
func (p *AggregatePool) Push(job model.Job) {
	p.queue <- job
}

type AggregateWorker struct {
	id    int
	store *store.Store
}

func (w *AggregateWorker) Run(c <-chan model.Job) {
	log.Debug("AggregateWorker is running", zap.Int("worker_id", w.id))

	for job := range c {
		log.Debug("Job received by worker",
			zap.Int("worker_id", w.id),
			zap.String("type", job.Type),
			zap.Int32("book_id", job.BookID),
			zap.Int32("user_id", job.UserID))

		switch job.Type {
		case model.JobTypeBookAggregate:
			if err := w.store.RecomputeBookAggregates(job.BookID); err != nil {
				log.Error("Failed to recompute book aggregates",
					zap.Int32("book_id", job.BookID), zap.Error(err))
			}
		case model.JobTypeUserAggregate:
			if err := w.store.RecomputeUserReviewCount(job.UserID); err != nil {
				log.Error("Failed to recompute user review count",
					zap.Int32("user_id", job.UserID), zap.Error(err))
			}
		default:
			log.Warn("Unknown job type", zap.String("type", job.Type))
		}
	}
}
