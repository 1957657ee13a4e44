// Package worker provides background tempo prefetching. Track ids coming out
// of a recommendation are resolved off the request path so repeat seeds hit
// the tempo cache.
package worker

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
)

const resolveTimeout = 5 * time.Second

// TempoResolver resolves and caches a track's tempo.
type TempoResolver interface {
	ResolveTempo(ctx context.Context, trackID, userToken string) (float64, error)
}

// Pool manages background workers for tempo prefetch jobs.
type Pool struct {
	resolver TempoResolver
	jobs     chan string
	wg       sync.WaitGroup
	logger   *log.Logger
}

// NewPool creates a pool with the given queue size.
func NewPool(resolver TempoResolver, queueSize int, logger *log.Logger) *Pool {
	if queueSize < 1 {
		queueSize = 1
	}
	return &Pool{resolver: resolver, jobs: make(chan string, queueSize), logger: logger}
}

// Start launches the worker goroutines.
func (p *Pool) Start(workers int) {
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for trackID := range p.jobs {
				p.process(trackID)
			}
		}()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish.
func (p *Pool) Stop() {
	close(p.jobs)
	p.wg.Wait()
}

// Submit queues a track id without blocking; the job is dropped when the
// queue is full.
func (p *Pool) Submit(trackID string) {
	if trackID == "" {
		return
	}
	select {
	case p.jobs <- trackID:
	default:
		p.logger.Warn("prefetch queue full, dropping job", "track", trackID)
	}
}

func (p *Pool) process(trackID string) {
	ctx, cancel := context.WithTimeout(context.Background(), resolveTimeout)
	defer cancel()

	// Prefetch always runs under application credentials.
	if _, err := p.resolver.ResolveTempo(ctx, trackID, ""); err != nil {
		p.logger.Debug("tempo prefetch failed", "track", trackID, "err", err)
		return
	}
	p.logger.Debug("tempo prefetched", "track", trackID)
}
