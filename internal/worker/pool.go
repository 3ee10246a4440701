// Package worker runs background jobs on a fixed pool of goroutines.
// Jobs are fire-and-forget; a full queue drops the submission rather
// than blocking the caller, since every job here is periodic and the
// next scheduled run covers a dropped one.
package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/jakob/vocabdrill/internal/logger"
)

// ErrQueueFull is returned by Submit when the job queue is at capacity.
var ErrQueueFull = errors.New("worker: job queue full")

// Job is a unit of background work.
type Job interface {
	Run(context.Context) error
	Name() string
}

// Pool is a fixed-size worker pool with a bounded queue.
type Pool struct {
	queue   chan Job
	workers int
	cancel  context.CancelFunc
	wg      sync.WaitGroup
	log     *logger.Logger
}

// NewPool creates a stopped pool; call Start to launch the workers.
func NewPool(workers, queueSize int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 16
	}
	return &Pool{
		queue:   make(chan Job, queueSize),
		workers: workers,
		log:     logger.Default().WithPrefix("worker"),
	}
}

// Start launches the workers. They run until ctx is cancelled or Stop is
// called.
func (p *Pool) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)
	p.log.Info("starting %d workers (queue %d)", p.workers, cap(p.queue))

	for i := 1; i <= p.workers; i++ {
		p.wg.Add(1)
		go p.run(ctx, i)
	}
}

func (p *Pool) run(ctx context.Context, id int) {
	defer p.wg.Done()
	log := p.log.WithField("worker_id", id)

	for {
		select {
		case <-ctx.Done():
			log.Debug("worker stopped")
			return
		case job := <-p.queue:
			p.execute(ctx, log, job)
		}
	}
}

func (p *Pool) execute(ctx context.Context, log *logger.Logger, job Job) {
	jobLog := log.WithField("job", job.Name())
	start := time.Now()
	if err := job.Run(logger.NewContext(ctx, jobLog)); err != nil {
		jobLog.Error("job failed after %v: %v", time.Since(start), err)
		return
	}
	jobLog.Info("job done in %v", time.Since(start))
}

// Submit queues a job without blocking. A full queue returns
// ErrQueueFull and the job is dropped.
func (p *Pool) Submit(job Job) error {
	select {
	case p.queue <- job:
		p.log.Debug("queued job %s", job.Name())
		return nil
	default:
		p.log.Warn("queue full, dropping job %s", job.Name())
		return ErrQueueFull
	}
}

// QueueSize returns the current number of pending jobs.
func (p *Pool) QueueSize() int {
	return len(p.queue)
}

// Stop cancels the workers and waits for in-flight jobs to finish. The
// queue is left open: a straggling Submit from another goroutine simply
// queues a job no worker will pick up, instead of panicking on a closed
// channel.
func (p *Pool) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
	p.log.Info("worker pool stopped")
}
