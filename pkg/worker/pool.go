// Package worker provides an asynchronous worker pool that runs spontaneous
// memory capture over finished conversation turns.
//
// The pool decouples capture — sentence splitting, trigger matching, dedup,
// file appends — from the host's request hot path, so responding to the user
// never waits on memory I/O.
package worker

import (
	"context"
	"fmt"
	"math"
	"sync"

	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/memory"
)

var (
	defaultNumWorkers   uint = 3
	defaultJobQueueSize uint = 256
)

// Job is a unit of work for the worker pool to execute against.
type Job struct {
	// SessionID identifies the originating conversation, for logs only.
	SessionID string

	// Turns are the conversation messages to analyze for memory-worthy
	// content.
	Turns []memory.Turn
}

// Config is the configuration options for the worker pool.
type Config struct {
	// Engine runs the capture pipeline for each job.
	Engine *memory.Engine

	// NumWorkers is the number of background workers in the pool.
	NumWorkers uint

	// QueueSize is the capacity of the buffered job channel (defaults to 256).
	QueueSize uint

	// Logger is the provided zap logger
	Logger *zap.Logger
}

// Pool processes capture jobs asynchronously via a worker pool.
type Pool struct {
	config *Config
	queue  chan Job
	wg     sync.WaitGroup
	logger *zap.Logger
}

// NewPool creates a new Pool and starts its worker goroutines.
func NewPool(c *Config) (*Pool, error) {
	if c.Engine == nil {
		return nil, fmt.Errorf("engine is required")
	}

	if c.NumWorkers == 0 {
		c.NumWorkers = defaultNumWorkers
	}

	if c.QueueSize == 0 {
		c.QueueSize = defaultJobQueueSize
	}

	if c.NumWorkers > uint(math.MaxInt) {
		return nil, fmt.Errorf("NumWorkers %d exceeds max int", c.NumWorkers)
	}

	wp := &Pool{
		config: c,
		queue:  make(chan Job, c.QueueSize),
		logger: c.Logger,
	}

	wp.wg.Add(int(c.NumWorkers))
	for i := range c.NumWorkers {
		go wp.worker(i)
	}

	return wp, nil
}

// Enqueue submits a job for processing by the worker pool.
// Returns true if enqueued, false if the queue is full, resulting in the job being dropped
func (p *Pool) Enqueue(job Job) bool {
	select {
	case p.queue <- job:
		p.logger.Debug("capture job queued",
			zap.String("session_id", job.SessionID),
			zap.Int("turns", len(job.Turns)),
		)
		return true
	default:
		p.logger.Error("job not queued, queue full, job dropped",
			zap.String("session_id", job.SessionID),
		)
		return false
	}
}

// Close signals workers to stop and waits for in-flight jobs to drain.
// Call this during graceful shutdown after the host has stopped accepting work.
func (p *Pool) Close() {
	close(p.queue)
	p.wg.Wait()
}

// worker is the inner worker thread that continuously pulls jobs off the jobs queue
func (p *Pool) worker(id uint) {
	defer p.wg.Done()
	p.logger.Debug("worker started", zap.Uint("worker_id", id))

	for job := range p.queue {
		p.processJob(job)
	}

	p.logger.Debug("capture worker stopped", zap.Uint("worker_id", id))
}

// processJob runs spontaneous capture over the job's conversation turns.
func (p *Pool) processJob(job Job) {
	ctx := context.Background()

	results, err := p.config.Engine.CaptureConversation(ctx, job.Turns)
	if err != nil {
		p.logger.Error("async capture failed",
			zap.String("session_id", job.SessionID),
			zap.Error(err),
		)
		return
	}

	stored, skipped := 0, 0
	for _, r := range results {
		if r.Status == memory.StatusOK {
			stored++
		} else {
			skipped++
		}
	}

	p.logger.Info("conversation analyzed",
		zap.String("session_id", job.SessionID),
		zap.Int("stored", stored),
		zap.Int("skipped_duplicates", skipped),
	)
}
