package acquire

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/muurk/wifipass/internal/logging"
	"github.com/muurk/wifipass/internal/platform"
	"go.uber.org/zap"
)

// Runner executes a chain asynchronously. At most one run is live: Start
// cancels whatever run is still in flight.
type Runner struct {
	chain *Chain

	mu      sync.Mutex
	current uuid.UUID
	cancel  context.CancelFunc
}

// NewRunner creates a Runner for chain.
func NewRunner(chain *Chain) *Runner {
	return &Runner{chain: chain}
}

// Start begins a run and returns a channel that receives exactly one
// Outcome and is then closed. A run superseded by a later Start reports
// StatusCancelled.
func (r *Runner) Start(ctx context.Context, caps platform.Capabilities) <-chan Outcome {
	runCtx, cancel := context.WithCancel(ctx)
	id := uuid.New()

	r.mu.Lock()
	if r.cancel != nil {
		logging.Debug("Cancelling superseded run", zap.String("run_id", r.current.String()))
		r.cancel()
	}
	r.current = id
	r.cancel = cancel
	r.mu.Unlock()

	results := make(chan Outcome, 1)
	go func() {
		defer close(results)
		defer cancel()

		out := r.chain.run(runCtx, id, caps)

		r.mu.Lock()
		if r.current == id {
			r.cancel = nil
		} else if out.Status != StatusCancelled {
			out = cancelled(out, context.Canceled)
		}
		r.mu.Unlock()

		results <- out.snapshot()
	}()
	return results
}

// Current returns the ID of the most recently started run.
func (r *Runner) Current() uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// IsCurrent reports whether id belongs to the most recently started run.
func (r *Runner) IsCurrent(id uuid.UUID) bool {
	return r.Current() == id
}

// Cancel stops the in-flight run, if any.
func (r *Runner) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
}
