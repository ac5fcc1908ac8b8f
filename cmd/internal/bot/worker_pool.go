package bot

import (
	"context"
	"errors"
	"runtime/debug"
	"sync"

	"excelbot/cmd/internal/contract"

	"github.com/labstack/gommon/log"
)

var ErrPoolStopped = errors.New("worker pool is stopped")

type Handler interface {
	Handle(ctx context.Context, upd contract.Update)
}

// WorkerPool handles updates concurrently across users while keeping the
// updates of a single user in arrival order: every user is pinned to one
// worker queue.
type WorkerPool struct {
	handler Handler
	queues  []chan contract.Update
	wg      sync.WaitGroup

	mu      sync.RWMutex
	stopped bool
}

func NewWorkerPool(handler Handler, workers, queueSize int) *WorkerPool {
	if workers < 1 {
		workers = 1
	}

	queues := make([]chan contract.Update, workers)
	for i := range queues {
		queues[i] = make(chan contract.Update, queueSize)
	}
	return &WorkerPool{handler: handler, queues: queues}
}

// Start launches the workers. ctx is passed on to every handled update.
func (p *WorkerPool) Start(ctx context.Context) {
	for i, queue := range p.queues {
		p.wg.Add(1)
		go p.run(ctx, i, queue)
	}
	log.Infof("worker pool started with %d workers", len(p.queues))
}

// Submit queues upd on its user's worker. It blocks while that queue is
// full, until ctx is done.
func (p *WorkerPool) Submit(ctx context.Context, upd contract.Update) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.stopped {
		return ErrPoolStopped
	}

	select {
	case p.queues[p.shard(upd.From.ID)] <- upd:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stop rejects new updates and waits for the queued ones to be handled.
func (p *WorkerPool) Stop() {
	p.mu.Lock()
	if p.stopped {
		p.mu.Unlock()
		return
	}
	p.stopped = true
	for _, queue := range p.queues {
		close(queue)
	}
	p.mu.Unlock()

	p.wg.Wait()
	log.Info("worker pool stopped")
}

func (p *WorkerPool) shard(userID int64) int {
	return int(uint64(userID) % uint64(len(p.queues)))
}

func (p *WorkerPool) run(ctx context.Context, id int, queue <-chan contract.Update) {
	defer p.wg.Done()

	for upd := range queue {
		p.handle(ctx, id, upd)
	}
}

func (p *WorkerPool) handle(ctx context.Context, id int, upd contract.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Errorf("worker %d: panic while handling update from user %d: %v\n%s", id, upd.From.ID, r, debug.Stack())
		}
	}()

	p.handler.Handle(ctx, upd)
}
