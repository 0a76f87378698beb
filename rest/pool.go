package rest

import (
	"errors"
	"sync"

	"github.com/kbukum/chatkit/logger"
)

// ErrPoolClosed is returned by Submit after Close.
var ErrPoolClosed = errors.New("rest: pool closed")

// Job runs on a worker with that worker's Client.
type Job func(c *Client)

// Pool runs jobs on a fixed set of workers, each owning a Client built
// from a clone of the base user agent. The rate-limit tracker is shared.
type Pool struct {
	jobs    chan Job
	clients []*Client
	wg      sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

// NewPool starts n workers (at least one) cloned from base. base itself is
// not used by the pool.
func NewPool(base *Client, n int) *Pool {
	if n <= 0 {
		n = 1
	}
	p := &Pool{jobs: make(chan Job, n)}
	for i := range n {
		c := &Client{
			ua:     base.ua.Clone(),
			limits: base.limits,
			retry:  base.retry,
			log:    base.log.WithFields(logger.Fields(logger.FieldWorker, i)),
		}
		p.clients = append(p.clients, c)
		p.wg.Add(1)
		go p.work(c)
	}
	return p
}

func (p *Pool) work(c *Client) {
	defer p.wg.Done()
	for job := range p.jobs {
		job(c)
	}
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.clients) }

// Submit queues job, blocking while every worker is busy and the queue is
// full.
func (p *Pool) Submit(job Job) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return ErrPoolClosed
	}
	p.jobs <- job
	return nil
}

// Close stops accepting jobs, waits for queued ones to finish and closes
// the workers' user agents.
func (p *Pool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.jobs)
	p.mu.Unlock()

	p.wg.Wait()
	var errs []error
	for _, c := range p.clients {
		errs = append(errs, c.ua.Close())
	}
	return errors.Join(errs...)
}
