package resolver

import (
	"context"
	"sync"
)

// Resolver is satisfied by *Client.
type Resolver interface {
	Resolve(ctx context.Context, sourceURL string) (*Response, error)
}

// Dispatcher serializes resolve requests coming from one view.
// At most one request is in flight; each request takes a generation token
// and a completion whose token is no longer the latest is reported as ErrStale.
type Dispatcher struct {
	resolver Resolver

	mu         sync.Mutex
	busy       bool
	generation uint64
	cancel     context.CancelFunc
}

// NewDispatcher returns a dispatcher over r.
func NewDispatcher(r Resolver) *Dispatcher {
	return &Dispatcher{resolver: r}
}

// Busy reports whether a request is in flight.
func (d *Dispatcher) Busy() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.busy
}

// Generation returns the token of the latest request.
func (d *Dispatcher) Generation() uint64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.generation
}

// Dispatch resolves sourceURL. The busy flag is cleared on every return path.
func (d *Dispatcher) Dispatch(ctx context.Context, sourceURL string) (*Response, uint64, error) {
	d.mu.Lock()
	if d.busy {
		d.mu.Unlock()
		return nil, 0, ErrBusy
	}
	d.busy = true
	d.generation++
	gen := d.generation
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.mu.Unlock()

	defer func() {
		cancel()
		d.mu.Lock()
		d.busy = false
		d.cancel = nil
		d.mu.Unlock()
	}()

	resp, err := d.resolver.Resolve(ctx, sourceURL)

	if d.Generation() != gen {
		return nil, gen, ErrStale
	}
	return resp, gen, err
}

// Supersede abandons the in-flight request, if any.
// Its completion is reported as ErrStale.
func (d *Dispatcher) Supersede() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.generation++
	if d.cancel != nil {
		d.cancel()
	}
}
