package tracking

import (
	"context"
	"sync"
	"time"
)

// Poller periodically invokes a fetch function, giving dashboards a
// refresh path independent of the push channel. Either mechanism can be
// torn down without touching the other.
type Poller struct {
	interval time.Duration
	clock    Clock
	fetch    func(ctx context.Context)

	mu      sync.Mutex
	cancel  context.CancelFunc
	started bool
	stopped bool

	done chan struct{}
}

// NewPoller creates a poller that calls fetch every interval once
// started. A nil clock means real time.
func NewPoller(interval time.Duration, clock Clock, fetch func(ctx context.Context)) *Poller {
	if clock == nil {
		clock = realClock{}
	}
	return &Poller{
		interval: interval,
		clock:    clock,
		fetch:    fetch,
		done:     make(chan struct{}),
	}
}

// Start launches the polling loop. Subsequent calls are no-ops, as is
// starting a poller that was already stopped.
func (p *Poller) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.started || p.stopped {
		return
	}
	p.started = true

	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	go p.run(ctx)
}

// Stop cancels the loop. Idempotent and safe to call before Start.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.stopped {
		return
	}
	p.stopped = true

	if p.cancel != nil {
		p.cancel()
	} else {
		// Never started; nothing will close done, so do it here.
		close(p.done)
	}
}

// Done is closed when the polling loop has exited, or immediately when
// the poller was stopped without ever starting.
func (p *Poller) Done() <-chan struct{} {
	return p.done
}

func (p *Poller) run(ctx context.Context) {
	defer close(p.done)

	for {
		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.interval):
			p.fetch(ctx)
		}
	}
}
